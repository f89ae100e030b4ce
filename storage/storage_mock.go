package storage

import (
	"context"
	"fmt"
	"sync"
)

// UserIdFail makes every write of the mock storage fail with ErrInternal.
const UserIdFail int64 = -1

type storageMock struct {
	lock   *sync.Mutex
	tracks []Track
	dsts   map[int64][]string
}

func NewStorageMock() Storage {
	return &storageMock{
		lock: &sync.Mutex{},
		dsts: map[int64][]string{},
	}
}

func (sm *storageMock) Close() error {
	return nil
}

func (sm *storageMock) Ping(ctx context.Context) (err error) {
	return
}

func (sm *storageMock) ListAllTracks(ctx context.Context) (tracks []Track, err error) {
	sm.lock.Lock()
	defer sm.lock.Unlock()
	tracks = append(tracks, sm.tracks...)
	return
}

func (sm *storageMock) ListTracks(ctx context.Context, userId int64) (tracks []Track, err error) {
	sm.lock.Lock()
	defer sm.lock.Unlock()
	for _, t := range sm.tracks {
		if t.UserId == userId {
			tracks = append(tracks, t)
		}
	}
	return
}

func (sm *storageMock) UpsertTrack(ctx context.Context, userId int64, attractionId string, threshold uint32) (err error) {
	if userId == UserIdFail {
		return fmt.Errorf("%w: upsert track", ErrInternal)
	}
	sm.lock.Lock()
	defer sm.lock.Unlock()
	var count int
	for i, t := range sm.tracks {
		if t.UserId == userId {
			if t.AttractionId == attractionId {
				sm.tracks[i].WaitThreshold = threshold
				sm.tracks[i].ReachedThreshold = false
				return
			}
			count++
		}
	}
	if count >= CountLimit {
		return fmt.Errorf("%w: %d tracks", ErrCapacityExceeded, count)
	}
	sm.tracks = append(sm.tracks, Track{
		UserId:        userId,
		AttractionId:  attractionId,
		WaitThreshold: threshold,
	})
	return
}

func (sm *storageMock) DeleteTrack(ctx context.Context, userId int64, attractionId string) (err error) {
	if userId == UserIdFail {
		return fmt.Errorf("%w: delete track", ErrInternal)
	}
	sm.lock.Lock()
	defer sm.lock.Unlock()
	var kept []Track
	for _, t := range sm.tracks {
		if t.UserId != userId || t.AttractionId != attractionId {
			kept = append(kept, t)
		}
	}
	sm.tracks = kept
	return
}

func (sm *storageMock) ClearTracks(ctx context.Context, userId int64) (err error) {
	if userId == UserIdFail {
		return fmt.Errorf("%w: clear tracks", ErrInternal)
	}
	sm.lock.Lock()
	defer sm.lock.Unlock()
	var kept []Track
	for _, t := range sm.tracks {
		if t.UserId != userId {
			kept = append(kept, t)
		}
	}
	sm.tracks = kept
	return
}

func (sm *storageMock) SetReached(ctx context.Context, userId int64, attractionId string, reached bool) (err error) {
	if userId == UserIdFail {
		return fmt.Errorf("%w: set reached", ErrInternal)
	}
	sm.lock.Lock()
	defer sm.lock.Unlock()
	for i, t := range sm.tracks {
		if t.UserId == userId && t.AttractionId == attractionId {
			sm.tracks[i].ReachedThreshold = reached
		}
	}
	return
}

func (sm *storageMock) ListDestinationIds(ctx context.Context, userId int64) (ids []string, err error) {
	sm.lock.Lock()
	defer sm.lock.Unlock()
	ids = append(ids, sm.dsts[userId]...)
	return
}

func (sm *storageMock) AddDestination(ctx context.Context, userId int64, destinationId string) (err error) {
	if userId == UserIdFail {
		return fmt.Errorf("%w: add destination", ErrInternal)
	}
	sm.lock.Lock()
	defer sm.lock.Unlock()
	ids := sm.dsts[userId]
	for _, id := range ids {
		if id == destinationId {
			return fmt.Errorf("%w: destination %s", ErrDuplicateSubscription, destinationId)
		}
	}
	if len(ids) >= CountLimit {
		return fmt.Errorf("%w: %d destinations", ErrCapacityExceeded, len(ids))
	}
	sm.dsts[userId] = append(ids, destinationId)
	return
}

func (sm *storageMock) RemoveDestination(ctx context.Context, userId int64, destinationId string) (err error) {
	if userId == UserIdFail {
		return fmt.Errorf("%w: remove destination", ErrInternal)
	}
	sm.lock.Lock()
	defer sm.lock.Unlock()
	var kept []string
	for _, id := range sm.dsts[userId] {
		if id != destinationId {
			kept = append(kept, id)
		}
	}
	sm.dsts[userId] = kept
	return
}

func (sm *storageMock) ClearDestinations(ctx context.Context, userId int64) (err error) {
	if userId == UserIdFail {
		return fmt.Errorf("%w: clear destinations", ErrInternal)
	}
	sm.lock.Lock()
	defer sm.lock.Unlock()
	delete(sm.dsts, userId)
	return
}
