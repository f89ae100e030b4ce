package resolver

import (
	"context"
	"fmt"
	"github.com/themeparkify/bot-telegram/api/http/themeparks"
	"log/slog"
)

type resolverLogging struct {
	r   Resolver
	log *slog.Logger
}

func NewResolverLogging(r Resolver, log *slog.Logger) Resolver {
	return resolverLogging{
		r:   r,
		log: log,
	}
}

func (rl resolverLogging) Resolve(ctx context.Context, q Query) (matches []themeparks.Entity, err error) {
	matches, err = rl.r.Resolve(ctx, q)
	rl.log.Log(ctx, rl.logLevel(err), fmt.Sprintf("resolver.Resolve(%+v): %d, err=%s", q, len(matches), err))
	return
}

func (rl resolverLogging) Destinations(ctx context.Context, text string, ids []string) (dsts []themeparks.Destination, err error) {
	dsts, err = rl.r.Destinations(ctx, text, ids)
	rl.log.Log(ctx, rl.logLevel(err), fmt.Sprintf("resolver.Destinations(%s, %v): %d, err=%s", text, ids, len(dsts), err))
	return
}

func (rl resolverLogging) logLevel(err error) (lvl slog.Level) {
	switch err {
	case nil:
		lvl = slog.LevelDebug
	default:
		lvl = slog.LevelWarn
	}
	return
}
