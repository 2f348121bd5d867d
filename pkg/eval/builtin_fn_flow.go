package eval

import (
	"strconv"

	"src.mar.sh/pkg/eval/errs"
)

func breakFn(fm *Frame, args []string) (int, error) {
	if len(args) > 0 {
		return 0, errs.ArityMismatch{
			What: "arguments to break", ValidLow: 0, ValidHigh: 0,
			Actual: len(args)}
	}
	return 0, ErrBreak
}

func continueFn(fm *Frame, args []string) (int, error) {
	if len(args) > 0 {
		return 0, errs.ArityMismatch{
			What: "arguments to continue", ValidLow: 0, ValidHigh: 0,
			Actual: len(args)}
	}
	return 0, ErrContinue
}

func returnFn(fm *Frame, args []string) (int, error) {
	status, err := optionalStatus(args, fm.Evaler.status)
	if err != nil {
		return 0, err
	}
	fm.Evaler.status = status
	return status, ErrReturn
}

// optionalStatus parses the single optional status argument of exit and
// return, defaulting to the current status.
func optionalStatus(args []string, current int) (int, error) {
	switch len(args) {
	case 0:
		return current, nil
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, errs.BadValue{
				What: "status", Valid: "integer", Actual: args[0]}
		}
		return n, nil
	default:
		return 0, errs.ArityMismatch{
			What: "arguments", ValidLow: 0, ValidHigh: 1, Actual: len(args)}
	}
}
