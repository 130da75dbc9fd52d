package task

import (
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/pmkol/tasklist/pkg/list"
)

var (
	ErrAlreadyExecuted = errors.New("task already executed")
	ErrDivisionByZero  = errors.New("division by zero")
)

// Task is a unit of work stored in a Queue.
type Task interface {
	// Kind returns the registered kind name, e.g. "add".
	Kind() string

	// Execute runs the task. A task can only be executed once.
	Execute() error

	// HasOutput reports whether the task produces a result value.
	HasOutput() bool

	Completed() bool

	// String describes the task, or its result once completed.
	String() string

	// Release drops the task from its Objects count.
	// It is safe to call Release more than once.
	Release()
}

// Queue is the container tasks are scheduled in.
type Queue = list.List[Task]

// Objects counts live tasks, i.e. tasks that were built by a Factory
// and not yet released.
type Objects struct {
	n atomic.Int64
}

func (o *Objects) Count() int64 {
	return o.n.Load()
}

type base struct {
	kind      string
	objects   *Objects
	completed bool
	released  bool
}

func (b *base) Kind() string {
	return b.kind
}

func (b *base) Completed() bool {
	return b.completed
}

func (b *base) Release() {
	if b.released {
		return
	}
	b.released = true
	if b.objects != nil {
		b.objects.n.Add(-1)
	}
}

// begin returns an error if the task was executed before.
func (b *base) begin() error {
	if b.completed {
		return fmt.Errorf("%s: %w", b.kind, ErrAlreadyExecuted)
	}
	return nil
}

// resultTask is the common part of tasks with an integer output.
type resultTask struct {
	base
	description string
	output      int
}

func (t *resultTask) HasOutput() bool {
	return true
}

func (t *resultTask) finish(description string, output int) {
	t.description = description
	t.output = output
	t.completed = true
}

func (t *resultTask) String() string {
	if !t.completed {
		return "This will be task with result"
	}
	return t.description + strconv.Itoa(t.output)
}

// Output returns the result. It is zero until the task is completed.
func (t *resultTask) Output() int {
	return t.output
}

type noResultTask struct {
	base
	description string
}

func (t *noResultTask) HasOutput() bool {
	return false
}

func (t *noResultTask) finish(description string) {
	t.description = description
	t.completed = true
}

func (t *noResultTask) String() string {
	if !t.completed {
		return "This will be task without result"
	}
	return t.description
}
