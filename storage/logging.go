package storage

import (
	"context"
	"fmt"
	"log/slog"
)

type storageLogging struct {
	stor Storage
	log  *slog.Logger
}

func NewStorageLogging(stor Storage, log *slog.Logger) Storage {
	return storageLogging{
		stor: stor,
		log:  log,
	}
}

func (sl storageLogging) Close() (err error) {
	err = sl.stor.Close()
	sl.log.Log(context.TODO(), sl.logLevel(err), fmt.Sprintf("storage.Close(): err=%s", err))
	return
}

func (sl storageLogging) Ping(ctx context.Context) (err error) {
	err = sl.stor.Ping(ctx)
	sl.log.Log(ctx, sl.logLevel(err), fmt.Sprintf("storage.Ping(): err=%s", err))
	return
}

func (sl storageLogging) ListAllTracks(ctx context.Context) (tracks []Track, err error) {
	tracks, err = sl.stor.ListAllTracks(ctx)
	sl.log.Log(ctx, sl.logLevel(err), fmt.Sprintf("storage.ListAllTracks(): %d, err=%s", len(tracks), err))
	return
}

func (sl storageLogging) ListTracks(ctx context.Context, userId int64) (tracks []Track, err error) {
	tracks, err = sl.stor.ListTracks(ctx, userId)
	sl.log.Log(ctx, sl.logLevel(err), fmt.Sprintf("storage.ListTracks(%d): %d, err=%s", userId, len(tracks), err))
	return
}

func (sl storageLogging) UpsertTrack(ctx context.Context, userId int64, attractionId string, threshold uint32) (err error) {
	err = sl.stor.UpsertTrack(ctx, userId, attractionId, threshold)
	sl.log.Log(ctx, sl.logLevel(err), fmt.Sprintf("storage.UpsertTrack(%d, %s, %d): err=%s", userId, attractionId, threshold, err))
	return
}

func (sl storageLogging) DeleteTrack(ctx context.Context, userId int64, attractionId string) (err error) {
	err = sl.stor.DeleteTrack(ctx, userId, attractionId)
	sl.log.Log(ctx, sl.logLevel(err), fmt.Sprintf("storage.DeleteTrack(%d, %s): err=%s", userId, attractionId, err))
	return
}

func (sl storageLogging) ClearTracks(ctx context.Context, userId int64) (err error) {
	err = sl.stor.ClearTracks(ctx, userId)
	sl.log.Log(ctx, sl.logLevel(err), fmt.Sprintf("storage.ClearTracks(%d): err=%s", userId, err))
	return
}

func (sl storageLogging) SetReached(ctx context.Context, userId int64, attractionId string, reached bool) (err error) {
	err = sl.stor.SetReached(ctx, userId, attractionId, reached)
	sl.log.Log(ctx, sl.logLevel(err), fmt.Sprintf("storage.SetReached(%d, %s, %t): err=%s", userId, attractionId, reached, err))
	return
}

func (sl storageLogging) ListDestinationIds(ctx context.Context, userId int64) (ids []string, err error) {
	ids, err = sl.stor.ListDestinationIds(ctx, userId)
	sl.log.Log(ctx, sl.logLevel(err), fmt.Sprintf("storage.ListDestinationIds(%d): %d, err=%s", userId, len(ids), err))
	return
}

func (sl storageLogging) AddDestination(ctx context.Context, userId int64, destinationId string) (err error) {
	err = sl.stor.AddDestination(ctx, userId, destinationId)
	sl.log.Log(ctx, sl.logLevel(err), fmt.Sprintf("storage.AddDestination(%d, %s): err=%s", userId, destinationId, err))
	return
}

func (sl storageLogging) RemoveDestination(ctx context.Context, userId int64, destinationId string) (err error) {
	err = sl.stor.RemoveDestination(ctx, userId, destinationId)
	sl.log.Log(ctx, sl.logLevel(err), fmt.Sprintf("storage.RemoveDestination(%d, %s): err=%s", userId, destinationId, err))
	return
}

func (sl storageLogging) ClearDestinations(ctx context.Context, userId int64) (err error) {
	err = sl.stor.ClearDestinations(ctx, userId)
	sl.log.Log(ctx, sl.logLevel(err), fmt.Sprintf("storage.ClearDestinations(%d): err=%s", userId, err))
	return
}

func (sl storageLogging) logLevel(err error) (lvl slog.Level) {
	switch err {
	case nil:
		lvl = slog.LevelDebug
	default:
		lvl = slog.LevelWarn
	}
	return
}
