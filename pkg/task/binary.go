package task

import (
	"fmt"
	"math"
)

// Op is an arithmetic operation of a binary task.
type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
)

const divEpsilon = 1e-5

var opInfo = [...]struct {
	kind   string
	symbol string
	verb   string
}{
	OpAdd: {kind: "add", symbol: "+", verb: "add"},
	OpSub: {kind: "sub", symbol: "-", verb: "subtract"},
	OpMul: {kind: "mul", symbol: "*", verb: "multiply"},
	OpDiv: {kind: "div", symbol: "/", verb: "divide"},
}

func (op Op) String() string {
	if int(op) >= len(opInfo) {
		return fmt.Sprintf("Op(%d)", op)
	}
	return opInfo[op].kind
}

type BinaryArgs struct {
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
}

func init() {
	for op := range opInfo {
		op := Op(op)
		RegKind(op.String(), func(f *Factory, args any) (Task, error) {
			a := args.(*BinaryArgs)
			return f.Binary(op, a.A, a.B)
		}, func() any { return new(BinaryArgs) })
	}
}

type binaryTask struct {
	base
	op     Op
	a, b   float64
	output float64
}

func (t *binaryTask) HasOutput() bool {
	return true
}

func (t *binaryTask) Execute() error {
	if err := t.begin(); err != nil {
		return err
	}

	switch t.op {
	case OpAdd:
		t.output = t.a + t.b
	case OpSub:
		t.output = t.a - t.b
	case OpMul:
		t.output = t.a * t.b
	case OpDiv:
		if math.Abs(t.b) < divEpsilon {
			return fmt.Errorf("%f / %f: %w", t.a, t.b, ErrDivisionByZero)
		}
		t.output = t.a / t.b
	}
	t.completed = true
	return nil
}

// Output returns the result. It is zero until the task is completed.
func (t *binaryTask) Output() float64 {
	return t.output
}

func (t *binaryTask) String() string {
	info := opInfo[t.op]
	if t.completed {
		return fmt.Sprintf("Binary task: %f %s %f = %f", t.a, info.symbol, t.b, t.output)
	}
	return fmt.Sprintf("Binary task: need to %s %f and %f", info.verb, t.a, t.b)
}
