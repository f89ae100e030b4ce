package themeparks

import (
	"context"
	"fmt"
	"log/slog"
)

type serviceLogging struct {
	svc Service
	log *slog.Logger
}

func NewServiceLogging(svc Service, log *slog.Logger) Service {
	return serviceLogging{
		svc: svc,
		log: log,
	}
}

func (sl serviceLogging) Destinations(ctx context.Context) (dsts []Destination, err error) {
	dsts, err = sl.svc.Destinations(ctx)
	sl.log.Log(ctx, sl.logLevel(err), fmt.Sprintf("themeparks.Destinations(): %d, err=%s", len(dsts), err))
	return
}

func (sl serviceLogging) Entity(ctx context.Context, id string) (e Entity, err error) {
	e, err = sl.svc.Entity(ctx, id)
	sl.log.Log(ctx, sl.logLevel(err), fmt.Sprintf("themeparks.Entity(%s): %s, err=%s", id, e.Name, err))
	return
}

func (sl serviceLogging) Live(ctx context.Context, id string) (l Live, err error) {
	l, err = sl.svc.Live(ctx, id)
	sl.log.Log(ctx, sl.logLevel(err), fmt.Sprintf("themeparks.Live(%s): %d, err=%s", id, len(l.LiveData), err))
	return
}

func (sl serviceLogging) Children(ctx context.Context, id string) (c Children, err error) {
	c, err = sl.svc.Children(ctx, id)
	sl.log.Log(ctx, sl.logLevel(err), fmt.Sprintf("themeparks.Children(%s): %d, err=%s", id, len(c.Children), err))
	return
}

func (sl serviceLogging) Schedule(ctx context.Context, id string, year, month int) (s Schedule, err error) {
	s, err = sl.svc.Schedule(ctx, id, year, month)
	sl.log.Log(ctx, sl.logLevel(err), fmt.Sprintf("themeparks.Schedule(%s, %d, %d): %d, err=%s", id, year, month, len(s.Schedule), err))
	return
}

func (sl serviceLogging) logLevel(err error) (lvl slog.Level) {
	switch err {
	case nil:
		lvl = slog.LevelDebug
	default:
		lvl = slog.LevelError
	}
	return
}
