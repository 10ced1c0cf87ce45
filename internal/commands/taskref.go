package commands

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrTaskNumberRequired indicates no task number was provided.
var ErrTaskNumberRequired = errors.New("task number required")

// ParseTaskNumber parses the 1-based task number in args[0] and returns the
// zero-based list index along with the remaining args.
//
// The number is not range-checked here: an index past either end of the
// list is left to the store, which treats it as a no-op.
func ParseTaskNumber(args []string) (int, []string, error) {
	if len(args) == 0 {
		return 0, nil, ErrTaskNumberRequired
	}

	ref := args[0]
	if !isAllDigits(ref) {
		return 0, nil, fmt.Errorf("invalid task number: %s", ref)
	}
	num, err := strconv.Atoi(ref)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid task number: %s", ref)
	}
	return num - 1, args[1:], nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
