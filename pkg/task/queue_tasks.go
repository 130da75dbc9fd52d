package task

import "fmt"

const (
	KindCountTasks       = "count_tasks"
	KindCountResultTasks = "count_result_tasks"
	KindAddTask          = "add_task"
	KindClear            = "clear"
	KindCountObjects     = "count_objects"
)

type AddTaskArgs struct {
	Task Config `yaml:"task"`
}

func init() {
	RegKind(KindCountTasks, func(f *Factory, _ any) (Task, error) {
		return f.CountTasks(), nil
	}, nil)
	RegKind(KindCountResultTasks, func(f *Factory, _ any) (Task, error) {
		return f.CountResultTasks(), nil
	}, nil)
	RegKind(KindClear, func(f *Factory, _ any) (Task, error) {
		return f.Clear(), nil
	}, nil)
	RegKind(KindCountObjects, func(f *Factory, _ any) (Task, error) {
		return f.CountObjects(), nil
	}, nil)
	RegKind(KindAddTask, func(f *Factory, args any) (Task, error) {
		a := args.(*AddTaskArgs)
		if len(a.Task.Type) == 0 {
			return nil, fmt.Errorf("%s: missing task", KindAddTask)
		}
		inner, err := f.Build(&a.Task)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KindAddTask, err)
		}
		return f.AddTask(inner), nil
	}, func() any { return new(AddTaskArgs) })
}

type countTasks struct {
	resultTask
	q *Queue
}

func (t *countTasks) Execute() error {
	if err := t.begin(); err != nil {
		return err
	}
	t.finish("Count of tasks in container: ", t.q.Len())
	return nil
}

type countResultTasks struct {
	resultTask
	q *Queue
}

func (t *countResultTasks) Execute() error {
	if err := t.begin(); err != nil {
		return err
	}

	n := 0
	for it := t.q.Begin(); !it.IsEnd(); {
		v, err := it.Value()
		if err != nil {
			return err
		}
		if (*v).HasOutput() {
			n++
		}
		if err := it.Next(); err != nil {
			return err
		}
	}
	t.finish("Count of result tasks in container: ", n)
	return nil
}

type addTask struct {
	noResultTask
	q    *Queue
	task Task
}

func (t *addTask) Execute() error {
	if err := t.begin(); err != nil {
		return err
	}
	t.q.PushBack(t.task)
	t.finish("Task added")
	return nil
}

// Release also releases the wrapped task if it was never queued.
func (t *addTask) Release() {
	if !t.completed && !t.released {
		t.task.Release()
	}
	t.noResultTask.Release()
}

type clearQueue struct {
	noResultTask
	q *Queue
}

// Execute releases every queued task before dropping them.
func (t *clearQueue) Execute() error {
	if err := t.begin(); err != nil {
		return err
	}
	for queued := range t.q.All() {
		queued.Release()
	}
	t.q.Clear()
	t.finish("Container has been cleared")
	return nil
}

type countObjects struct {
	resultTask
}

func (t *countObjects) Execute() error {
	if err := t.begin(); err != nil {
		return err
	}
	var n int64
	if t.objects != nil {
		n = t.objects.Count()
	}
	t.finish("Count of objects in program: ", int(n))
	return nil
}
