package resolver

import (
	"errors"
	"fmt"
	"github.com/themeparkify/bot-telegram/api/http/themeparks"
)

// MaxListed is the max number of alternatives shown to a user for an ambiguous query.
const MaxListed = 25

var ErrNotFound = errors.New("not found")
var ErrAmbiguous = errors.New("ambiguous")

// Single returns the only match or the error describing why there is not exactly one.
func Single(matches []themeparks.Entity) (e themeparks.Entity, err error) {
	switch len(matches) {
	case 0:
		err = ErrNotFound
	case 1:
		e = matches[0]
	default:
		err = fmt.Errorf("%w: %d matches", ErrAmbiguous, len(matches))
	}
	return
}
