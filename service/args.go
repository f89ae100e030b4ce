package service

import (
	"fmt"
	"strconv"
	"strings"
)

const argsSep = "|"

// Target is an entity name optionally narrowed by the park and the destination names.
type Target struct {
	Name        string
	Park        string
	Destination string
}

// ParseTarget parses "name[ | park[ | destination]]".
func ParseTarget(payload, usage string) (t Target, err error) {
	parts := strings.Split(payload, argsSep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	switch {
	case len(parts) > 3:
		err = fmt.Errorf("%w: too many \"%s\" separators\nUsage: %s", ErrInvalidArgs, argsSep, usage)
	case parts[0] == "":
		err = fmt.Errorf("%w: missing name\nUsage: %s", ErrInvalidArgs, usage)
	default:
		t.Name = parts[0]
		if len(parts) > 1 {
			t.Park = parts[1]
		}
		if len(parts) > 2 {
			t.Destination = parts[2]
		}
	}
	return
}

// ParseThresholdTarget parses "minutes name[ | park[ | destination]]".
func ParseThresholdTarget(payload, usage string) (threshold uint32, t Target, err error) {
	payload = strings.TrimSpace(payload)
	head, tail, _ := strings.Cut(payload, " ")
	var v uint64
	v, err = strconv.ParseUint(head, 10, 31)
	switch err {
	case nil:
		threshold = uint32(v)
		t, err = ParseTarget(tail, usage)
	default:
		err = fmt.Errorf("%w: wait threshold should be a non-negative number of minutes, got \"%s\"\nUsage: %s", ErrInvalidArgs, head, usage)
	}
	return
}
