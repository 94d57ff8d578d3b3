package ds

import (
	"fmt"
)

type (
	// ErrUnreachableCode marks a switch over a closed set that fell through.
	ErrUnreachableCode struct {
		Caller string
		Value  any
	}
)

func (r ErrUnreachableCode) Error() string {
	if r.Value == nil {
		return fmt.Sprintf("%s: unreachable code", r.Caller)
	}
	return fmt.Sprintf("%s: unreachable code for %v", r.Caller, r.Value)
}
