package service

import (
	"context"
	"github.com/themeparkify/bot-telegram/storage"
)

// RequireDestinations returns the ids of the user's destinations or ErrNoDestinations when there are none.
func RequireDestinations(ctx context.Context, stor storage.Storage, userId int64) (ids []string, err error) {
	ids, err = stor.ListDestinationIds(ctx, userId)
	if err == nil && len(ids) == 0 {
		err = ErrNoDestinations
	}
	return
}
