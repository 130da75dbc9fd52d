package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKinds(t *testing.T) {
	assert.Equal(t, []string{
		"add", "add_task", "clear", "count_objects", "count_result_tasks",
		"count_tasks", "div", "expr", "mul", "sub",
	}, Kinds())
}

func TestRegKind_Dup(t *testing.T) {
	assert.Panics(t, func() {
		RegKind(KindClear, nil, nil)
	})
}

func TestFactory_Build(t *testing.T) {
	f, objs := newTestFactory()

	task, err := f.Build(&Config{
		Type: "sub",
		Args: map[string]interface{}{"a": 5, "b": "2"},
	})
	require.NoError(t, err)
	require.NoError(t, task.Execute())
	assert.Equal(t, "Binary task: 5.000000 - 2.000000 = 3.000000", task.String())

	task, err = f.Build(&Config{
		Type: "expr",
		Args: map[string]interface{}{
			"expr":   "x * x",
			"params": map[string]interface{}{"x": 3},
		},
	})
	require.NoError(t, err)
	require.NoError(t, task.Execute())
	assert.Equal(t, 9.0, task.(*exprTask).Output())

	task, err = f.Build(&Config{Type: "count_tasks"})
	require.NoError(t, err)
	assert.Equal(t, KindCountTasks, task.Kind())

	assert.EqualValues(t, 3, objs.Count())
}

func TestFactory_Build_AddTask(t *testing.T) {
	f, objs := newTestFactory()

	task, err := f.Build(&Config{
		Type: "add_task",
		Args: map[string]interface{}{
			"task": map[string]interface{}{
				"type": "add_task",
				"args": map[string]interface{}{
					"task": map[string]interface{}{"type": "count_objects"},
				},
			},
		},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, objs.Count())

	require.NoError(t, task.Execute())
	inner, err := f.Queue().PopFront()
	require.NoError(t, err)
	assert.Equal(t, KindAddTask, inner.Kind())
	require.NoError(t, inner.Execute())
	innermost, err := f.Queue().PopFront()
	require.NoError(t, err)
	assert.Equal(t, KindCountObjects, innermost.Kind())
}

func TestFactory_Build_Err(t *testing.T) {
	f, objs := newTestFactory()

	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown type", Config{Type: "pow"}},
		{"unused arg", Config{Type: "add", Args: map[string]interface{}{"c": 1}}},
		{"bad arg", Config{Type: "add", Args: map[string]interface{}{"a": "one"}}},
		{"bad expr", Config{Type: "expr", Args: map[string]interface{}{"expr": "(("}}},
		{"args for a kind without args", Config{Type: "count_tasks", Args: map[string]interface{}{"bogus": 1}}},
		{"add_task without task", Config{Type: "add_task"}},
		{"add_task bad inner", Config{Type: "add_task", Args: map[string]interface{}{
			"task": map[string]interface{}{"type": "pow"},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.Build(&tt.cfg)
			assert.Error(t, err)
		})
	}
	assert.Zero(t, objs.Count())
}
