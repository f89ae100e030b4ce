package notify

import (
	"context"
	"errors"
	"fmt"
	"github.com/themeparkify/bot-telegram/model"
	"log/slog"
)

type notifierLogging struct {
	n   Notifier
	log *slog.Logger
}

func NewNotifierLogging(n Notifier, log *slog.Logger) Notifier {
	return notifierLogging{
		n:   n,
		log: log,
	}
}

func (nl notifierLogging) Notify(ctx context.Context, userId int64, c model.Card) (err error) {
	err = nl.n.Notify(ctx, userId, c)
	nl.log.Log(ctx, nl.logLevel(err), fmt.Sprintf("notify.Notify(%d, %q): err=%s", userId, c.Title, err))
	return
}

func (nl notifierLogging) logLevel(err error) (lvl slog.Level) {
	switch {
	case err == nil:
		lvl = slog.LevelInfo
	case errors.Is(err, ErrRecipientUnavailable):
		lvl = slog.LevelWarn
	default:
		lvl = slog.LevelError
	}
	return
}
