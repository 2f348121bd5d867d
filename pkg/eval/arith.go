package eval

import (
	"fmt"
	"strconv"

	"src.mar.sh/pkg/eval/errs"
	"src.mar.sh/pkg/parse"
)

// evalArith evaluates an arithmetic expression over integers.
func (fm *Frame) evalArith(e parse.ArithExpr) (int, error) {
	switch e := e.(type) {
	case *parse.ArithNum:
		return e.Value, nil
	case *parse.ArithVar:
		v, err := fm.lookupVar(e.Name, e)
		if err != nil {
			return 0, err
		}
		if v.Kind() != ScalarKind {
			return 0, fm.errorp(e, errs.BadValue{
				What: "arithmetic operand $" + e.Name,
				Valid: "integer", Actual: "array"})
		}
		n, err := strconv.Atoi(v.Scalar())
		if err != nil {
			return 0, fm.errorp(e, errs.BadValue{
				What: "arithmetic operand $" + e.Name,
				Valid: "integer", Actual: fmt.Sprintf("%q", v.Scalar())})
		}
		return n, nil
	case *parse.ArithUnary:
		n, err := fm.evalArith(e.Operand)
		if err != nil {
			return 0, err
		}
		return -n, nil
	case *parse.ArithBinary:
		left, err := fm.evalArith(e.Left)
		if err != nil {
			return 0, err
		}
		right, err := fm.evalArith(e.Right)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case '+':
			return left + right, nil
		case '-':
			return left - right, nil
		case '*':
			return left * right, nil
		case '/':
			if right == 0 {
				return 0, fm.errorpf(e, "division by zero")
			}
			return left / right, nil
		case '%':
			if right == 0 {
				return 0, fm.errorpf(e, "division by zero")
			}
			return left % right, nil
		}
	}
	panic("unreachable")
}
