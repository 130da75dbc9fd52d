package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmkol/tasklist/pkg/list"
)

func newTestFactory() (*Factory, *Objects) {
	objs := new(Objects)
	return NewFactory(list.New[Task](), objs), objs
}

func mustBinary(t *testing.T, f *Factory, op Op, a, b float64) Task {
	t.Helper()
	task, err := f.Binary(op, a, b)
	require.NoError(t, err)
	return task
}

func TestBinary(t *testing.T) {
	f, _ := newTestFactory()
	tests := []struct {
		op      Op
		a, b    float64
		pending string
		done    string
	}{
		{OpAdd, 813, 23, "Binary task: need to add 813.000000 and 23.000000", "Binary task: 813.000000 + 23.000000 = 836.000000"},
		{OpSub, 4, 8, "Binary task: need to subtract 4.000000 and 8.000000", "Binary task: 4.000000 - 8.000000 = -4.000000"},
		{OpMul, 12, 24, "Binary task: need to multiply 12.000000 and 24.000000", "Binary task: 12.000000 * 24.000000 = 288.000000"},
		{OpDiv, 0, 8, "Binary task: need to divide 0.000000 and 8.000000", "Binary task: 0.000000 / 8.000000 = 0.000000"},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			task := mustBinary(t, f, tt.op, tt.a, tt.b)
			assert.Equal(t, tt.op.String(), task.Kind())
			assert.True(t, task.HasOutput())
			assert.False(t, task.Completed())
			assert.Equal(t, tt.pending, task.String())

			require.NoError(t, task.Execute())
			assert.True(t, task.Completed())
			assert.Equal(t, tt.done, task.String())
		})
	}
}

func TestBinary_DivisionByZero(t *testing.T) {
	f, _ := newTestFactory()
	task := mustBinary(t, f, OpDiv, 1, 1e-6)
	assert.ErrorIs(t, task.Execute(), ErrDivisionByZero)
	assert.False(t, task.Completed())
}

func TestBinary_InvalidOp(t *testing.T) {
	f, objs := newTestFactory()
	_, err := f.Binary(Op(42), 1, 2)
	assert.Error(t, err)
	assert.Zero(t, objs.Count())
}

func TestExecuteTwice(t *testing.T) {
	f, _ := newTestFactory()
	tasks := []Task{
		mustBinary(t, f, OpAdd, 1, 2),
		f.CountTasks(),
		f.CountResultTasks(),
		f.AddTask(f.CountObjects()),
		f.Clear(),
		f.CountObjects(),
	}
	for _, task := range tasks {
		require.NoError(t, task.Execute(), task.Kind())
		assert.ErrorIs(t, task.Execute(), ErrAlreadyExecuted, task.Kind())
	}
}

func TestExpr(t *testing.T) {
	f, _ := newTestFactory()
	task, err := f.Expr("a * (b + 1)", map[string]float64{"a": 2, "b": 3})
	require.NoError(t, err)
	assert.Equal(t, "Expression task: need to evaluate a * (b + 1)", task.String())
	require.NoError(t, task.Execute())
	assert.Equal(t, "Expression task: a * (b + 1) = 8.000000", task.String())
	assert.Equal(t, 8.0, task.(*exprTask).Output())

	_, err = f.Expr("a +", nil)
	assert.Error(t, err)
	_, err = f.Expr("a + b", map[string]float64{"a": 1})
	assert.Error(t, err)

	task, err = f.Expr("1 / x", map[string]float64{"x": 0})
	require.NoError(t, err)
	assert.ErrorIs(t, task.Execute(), ErrDivisionByZero)

	task, err = f.Expr("x > 1", map[string]float64{"x": 2})
	require.NoError(t, err)
	assert.Error(t, task.Execute())
}

func TestQueueTasks(t *testing.T) {
	f, _ := newTestFactory()
	q := f.Queue()

	q.PushBack(mustBinary(t, f, OpAdd, 1, 1))
	q.PushBack(f.Clear())
	q.PushBack(mustBinary(t, f, OpMul, 1, 1))

	count := f.CountTasks()
	assert.Equal(t, "This will be task with result", count.String())
	require.NoError(t, count.Execute())
	assert.Equal(t, "Count of tasks in container: 3", count.String())

	countRes := f.CountResultTasks()
	require.NoError(t, countRes.Execute())
	assert.Equal(t, "Count of result tasks in container: 2", countRes.String())

	add := f.AddTask(f.CountTasks())
	assert.False(t, add.HasOutput())
	assert.Equal(t, "This will be task without result", add.String())
	require.NoError(t, add.Execute())
	assert.Equal(t, "Task added", add.String())
	assert.Equal(t, 4, q.Len())
	last, err := q.Last()
	require.NoError(t, err)
	assert.Equal(t, KindCountTasks, (*last).Kind())

	cl := f.Clear()
	require.NoError(t, cl.Execute())
	assert.Equal(t, "Container has been cleared", cl.String())
	assert.True(t, q.IsEmpty())
}

func TestObjects(t *testing.T) {
	f, objs := newTestFactory()
	q := f.Queue()

	a := mustBinary(t, f, OpAdd, 1, 1)
	q.PushBack(a)
	q.PushBack(f.AddTask(f.CountObjects()))
	assert.EqualValues(t, 3, objs.Count())

	a.Release()
	a.Release()
	assert.EqualValues(t, 2, objs.Count())

	counter := f.CountObjects()
	require.NoError(t, counter.Execute())
	assert.Equal(t, "Count of objects in program: 3", counter.String())
	counter.Release()

	// clearing releases the queued add_task and the task it wraps
	require.NoError(t, f.Clear().Execute())
	assert.EqualValues(t, 1, objs.Count())
}

func TestObjects_Nil(t *testing.T) {
	f := NewFactory(list.New[Task](), nil)
	task := f.CountObjects()
	require.NoError(t, task.Execute())
	assert.Equal(t, "Count of objects in program: 0", task.String())
	task.Release()
}
