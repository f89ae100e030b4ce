package storage

import (
	"context"
	"io"
)

// CountLimit is the max number of tracks and, separately, destinations a user may hold.
const CountLimit = 25

type Storage interface {
	io.Closer
	Ping(ctx context.Context) (err error)

	// ListAllTracks returns the tracks of every user, used by the poll cycle.
	ListAllTracks(ctx context.Context) (tracks []Track, err error)
	ListTracks(ctx context.Context, userId int64) (tracks []Track, err error)
	// UpsertTrack creates the track or, when it exists, sets the new threshold and
	// resets the reached flag. Creating one beyond CountLimit fails with ErrCapacityExceeded.
	UpsertTrack(ctx context.Context, userId int64, attractionId string, threshold uint32) (err error)
	DeleteTrack(ctx context.Context, userId int64, attractionId string) (err error)
	ClearTracks(ctx context.Context, userId int64) (err error)
	SetReached(ctx context.Context, userId int64, attractionId string, reached bool) (err error)

	ListDestinationIds(ctx context.Context, userId int64) (ids []string, err error)
	// AddDestination fails with ErrDuplicateSubscription when already added and
	// with ErrCapacityExceeded beyond CountLimit.
	AddDestination(ctx context.Context, userId int64, destinationId string) (err error)
	RemoveDestination(ctx context.Context, userId int64, destinationId string) (err error)
	ClearDestinations(ctx context.Context, userId int64) (err error)
}

type Track struct {
	UserId           int64
	AttractionId     string
	WaitThreshold    uint32
	ReachedThreshold bool
}
