package task

import (
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
)

// Config describes a task in a config file.
type Config struct {
	// Type, required. One of the registered kinds.
	Type string `yaml:"type"`

	// Args, might be required by some kinds.
	// The type of Args is depended on RegKind.
	// If it's a map[string]interface{}, it will be converted by mapstruct.
	Args interface{} `yaml:"args"`
}

// NewTaskFunc builds a task of one kind. args is the value returned by the
// kind's NewArgsFunc after decoding, or nil if the kind takes no args.
type NewTaskFunc func(f *Factory, args interface{}) (Task, error)

// NewArgsFunc returns a pointer to a new args struct.
type NewArgsFunc func() interface{}

type kindInfo struct {
	newTask NewTaskFunc
	newArgs NewArgsFunc
}

var kindRegister = make(map[string]kindInfo)

// RegKind registers a task kind. It panics if kind was already registered.
// It is not concurrent safe and is intended to be called from init.
func RegKind(kind string, nf NewTaskFunc, af NewArgsFunc) {
	if _, dup := kindRegister[kind]; dup {
		panic(fmt.Sprintf("duplicate task kind %s", kind))
	}
	kindRegister[kind] = kindInfo{newTask: nf, newArgs: af}
}

// Kinds returns all registered kinds in order.
func Kinds() []string {
	s := make([]string, 0, len(kindRegister))
	for k := range kindRegister {
		s = append(s, k)
	}
	sort.Strings(s)
	return s
}

// Factory creates tasks bound to a Queue. Every created task is counted
// in the Factory's Objects until it is released.
type Factory struct {
	q       *Queue
	objects *Objects
}

// NewFactory returns a Factory for q. objects may be nil.
func NewFactory(q *Queue, objects *Objects) *Factory {
	return &Factory{q: q, objects: objects}
}

func (f *Factory) Queue() *Queue {
	return f.q
}

func (f *Factory) track(b *base, kind string) {
	b.kind = kind
	b.objects = f.objects
	if f.objects != nil {
		f.objects.n.Add(1)
	}
}

// Build creates a task from c.
func (f *Factory) Build(c *Config) (Task, error) {
	info, ok := kindRegister[c.Type]
	if !ok {
		return nil, fmt.Errorf("unknown task type %q", c.Type)
	}

	var args interface{}
	if info.newArgs == nil && c.Args != nil {
		return nil, fmt.Errorf("task type %s takes no args", c.Type)
	}
	if info.newArgs != nil {
		args = info.newArgs()
		if c.Args != nil {
			if err := decodeArgs(c.Args, args); err != nil {
				return nil, fmt.Errorf("invalid args for %s, %w", c.Type, err)
			}
		}
	}
	return info.newTask(f, args)
}

func decodeArgs(in, out interface{}) error {
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		Result:           out,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return d.Decode(in)
}

func (f *Factory) Binary(op Op, a, b float64) (Task, error) {
	if int(op) >= len(opInfo) {
		return nil, fmt.Errorf("invalid op %d", op)
	}
	t := &binaryTask{op: op, a: a, b: b}
	f.track(&t.base, op.String())
	return t, nil
}

// Expr returns a task that evaluates s with params.
func (f *Factory) Expr(s string, params map[string]float64) (Task, error) {
	t, err := newExprTask(s, params)
	if err != nil {
		return nil, err
	}
	f.track(&t.base, KindExpr)
	return t, nil
}

func (f *Factory) CountTasks() Task {
	t := &countTasks{q: f.q}
	f.track(&t.base, KindCountTasks)
	return t
}

func (f *Factory) CountResultTasks() Task {
	t := &countResultTasks{q: f.q}
	f.track(&t.base, KindCountResultTasks)
	return t
}

// AddTask returns a task that pushes inner to the back of the queue.
func (f *Factory) AddTask(inner Task) Task {
	t := &addTask{q: f.q, task: inner}
	f.track(&t.base, KindAddTask)
	return t
}

// Clear returns a task that empties the queue.
func (f *Factory) Clear() Task {
	t := &clearQueue{q: f.q}
	f.track(&t.base, KindClear)
	return t
}

func (f *Factory) CountObjects() Task {
	t := &countObjects{}
	f.track(&t.base, KindCountObjects)
	return t
}
