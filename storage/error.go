package storage

import "errors"

var ErrCapacityExceeded = errors.New("capacity exceeded")
var ErrDuplicateSubscription = errors.New("already subscribed")
var ErrInternal = errors.New("internal failure")
