package task

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

const KindExpr = "expr"

type ExprArgs struct {
	Expr   string             `yaml:"expr"`
	Params map[string]float64 `yaml:"params"`
}

func init() {
	RegKind(KindExpr, func(f *Factory, args any) (Task, error) {
		a := args.(*ExprArgs)
		return f.Expr(a.Expr, a.Params)
	}, func() any { return new(ExprArgs) })
}

// exprTask evaluates an arithmetic expression over named parameters.
type exprTask struct {
	base
	src    string
	expr   *govaluate.EvaluableExpression
	params map[string]interface{}
	output float64
}

func newExprTask(s string, params map[string]float64) (*exprTask, error) {
	expr, err := govaluate.NewEvaluableExpression(s)
	if err != nil {
		return nil, fmt.Errorf("invalid expression %q, %w", s, err)
	}

	p := make(map[string]interface{}, len(params))
	for k, v := range params {
		p[k] = v
	}
	for _, v := range expr.Vars() {
		if _, ok := p[v]; !ok {
			return nil, fmt.Errorf("expression %q: missing param %s", s, v)
		}
	}
	return &exprTask{src: s, expr: expr, params: p}, nil
}

func (t *exprTask) HasOutput() bool {
	return true
}

func (t *exprTask) Execute() error {
	if err := t.begin(); err != nil {
		return err
	}

	res, err := t.expr.Evaluate(t.params)
	if err != nil {
		return fmt.Errorf("expression %q: %w", t.src, err)
	}
	v, ok := res.(float64)
	if !ok {
		return fmt.Errorf("expression %q: result %v is not a number", t.src, res)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return fmt.Errorf("expression %q: %w", t.src, ErrDivisionByZero)
	}
	t.output = v
	t.completed = true
	return nil
}

func (t *exprTask) Output() float64 {
	return t.output
}

func (t *exprTask) String() string {
	if t.completed {
		return fmt.Sprintf("Expression task: %s = %f", t.src, t.output)
	}
	return "Expression task: need to evaluate " + t.src
}
