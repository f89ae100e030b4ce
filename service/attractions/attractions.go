package attractions

import (
	"context"
	"errors"
	"fmt"
	"github.com/themeparkify/bot-telegram/api/http/themeparks"
	"github.com/themeparkify/bot-telegram/service"
	"github.com/themeparkify/bot-telegram/service/entries"
	"github.com/themeparkify/bot-telegram/service/messages"
	"github.com/themeparkify/bot-telegram/service/resolver"
	"github.com/themeparkify/bot-telegram/service/tracker"
	"github.com/themeparkify/bot-telegram/storage"
	"github.com/themeparkify/bot-telegram/util"
	"gopkg.in/telebot.v3"
)

const CmdUntrackCallback = "untrack"

const titleList = "Tracked attractions"
const titleFmtTracked = "Tracked %s!"
const titleFmtUntracked = "Untracked %s!"
const titleCleared = "Cleared tracked attractions!"
const msgEmpty = "You have no tracked attractions."
const whatAmbiguous = "attractions"
const fmtDetailThreshold = "Threshold: %s"
const fmtBtnUntrack = "✖ %s"

type Handlers struct {
	Resolver    resolver.Resolver
	Storage     storage.Storage
	ThemeParks  themeparks.Service
	Format      messages.Format
	Concurrency int
}

func (h Handlers) Track(tgCtx telebot.Context) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), service.CmdTimeout)
	defer cancel()
	var userId int64
	userId, err = util.SenderId(tgCtx)
	var dstIds []string
	if err == nil {
		dstIds, err = service.RequireDestinations(ctx, h.Storage, userId)
	}
	var threshold uint32
	var t service.Target
	if err == nil {
		threshold, t, err = service.ParseThresholdTarget(tgCtx.Message().Payload, service.UsageTrack)
	}
	var matches []themeparks.Entity
	if err == nil {
		matches, err = h.resolve(ctx, t, dstIds)
	}
	var e themeparks.Entity
	var ok bool
	if err == nil {
		e, ok, err = h.single(ctx, tgCtx, matches, t, service.UsageTrack)
	}
	if err == nil && ok {
		err = h.Storage.UpsertTrack(ctx, userId, e.Id, threshold)
		if err == nil {
			err = h.sendList(ctx, tgCtx, userId, fmt.Sprintf(titleFmtTracked, e.Name))
		}
	}
	return
}

// Untrack prefers the matching attractions the user tracks. Untracking an attraction that is not tracked succeeds.
func (h Handlers) Untrack(tgCtx telebot.Context) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), service.CmdTimeout)
	defer cancel()
	var userId int64
	userId, err = util.SenderId(tgCtx)
	var dstIds []string
	if err == nil {
		dstIds, err = service.RequireDestinations(ctx, h.Storage, userId)
	}
	var t service.Target
	if err == nil {
		t, err = service.ParseTarget(tgCtx.Message().Payload, service.UsageUntrack)
	}
	var matches []themeparks.Entity
	if err == nil {
		matches, err = h.resolve(ctx, t, dstIds)
	}
	var tracks []storage.Track
	if err == nil {
		tracks, err = h.Storage.ListTracks(ctx, userId)
	}
	if err == nil {
		tracked := make(map[string]bool, len(tracks))
		for _, tr := range tracks {
			tracked[tr.AttractionId] = true
		}
		var matchesTracked []themeparks.Entity
		for _, m := range matches {
			if tracked[m.Id] {
				matchesTracked = append(matchesTracked, m)
			}
		}
		if len(matchesTracked) > 0 {
			matches = matchesTracked
		}
		var e themeparks.Entity
		var ok bool
		e, ok, err = h.single(ctx, tgCtx, matches, t, service.UsageUntrack)
		if err == nil && ok {
			err = h.Storage.DeleteTrack(ctx, userId, e.Id)
			if err == nil {
				err = h.sendList(ctx, tgCtx, userId, fmt.Sprintf(titleFmtUntracked, e.Name))
			}
		}
	}
	return
}

// UntrackById handles the inline button of the tracked attractions list.
func (h Handlers) UntrackById(tgCtx telebot.Context, args ...string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), service.CmdTimeout)
	defer cancel()
	var userId int64
	userId, err = util.SenderId(tgCtx)
	if err == nil && len(args) != 1 {
		err = fmt.Errorf("%w: expected attraction id, got %v", service.ErrInvalidArgs, args)
	}
	if err == nil {
		err = h.Storage.DeleteTrack(ctx, userId, args[0])
	}
	if err == nil {
		var name string
		e, errEntity := h.ThemeParks.Entity(ctx, args[0])
		switch errEntity {
		case nil:
			name = e.Name
		default:
			name = args[0]
		}
		err = h.sendList(ctx, tgCtx, userId, fmt.Sprintf(titleFmtUntracked, name))
	}
	return
}

func (h Handlers) List(tgCtx telebot.Context) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), service.CmdTimeout)
	defer cancel()
	var userId int64
	userId, err = util.SenderId(tgCtx)
	if err == nil {
		err = h.sendList(ctx, tgCtx, userId, titleList)
	}
	return
}

func (h Handlers) Clear(tgCtx telebot.Context) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), service.CmdTimeout)
	defer cancel()
	var userId int64
	userId, err = util.SenderId(tgCtx)
	if err == nil {
		err = h.Storage.ClearTracks(ctx, userId)
	}
	if err == nil {
		err = service.SendList(tgCtx, h.Format, titleCleared, msgEmpty, nil)
	}
	return
}

func (h Handlers) resolve(ctx context.Context, t service.Target, dstIds []string) (matches []themeparks.Entity, err error) {
	matches, err = h.Resolver.Resolve(ctx, resolver.Query{
		Text:           t.Name,
		Kind:           resolver.KindAttraction,
		Park:           t.Park,
		Destination:    t.Destination,
		DestinationIds: dstIds,
	})
	return
}

// single returns false without an error when the alternatives were sent to the user instead.
func (h Handlers) single(
	ctx context.Context,
	tgCtx telebot.Context,
	matches []themeparks.Entity,
	t service.Target,
	usage string,
) (e themeparks.Entity, ok bool, err error) {
	e, err = resolver.Single(matches)
	switch {
	case err == nil:
		ok = true
	case errors.Is(err, resolver.ErrAmbiguous):
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.Id
		}
		err = service.SendAmbiguous(ctx, tgCtx, h.ThemeParks, h.Format, h.Concurrency, whatAmbiguous, t.Name, usage, ids)
	default:
		err = fmt.Errorf("%w: %s", err, t.Name)
	}
	return
}

func (h Handlers) sendList(ctx context.Context, tgCtx telebot.Context, userId int64, title string) (err error) {
	var tracks []storage.Track
	tracks, err = h.Storage.ListTracks(ctx, userId)
	if err == nil {
		ids := make([]string, len(tracks))
		for i, tr := range tracks {
			ids[i] = tr.AttractionId
		}
		items := entries.Describe(ctx, h.ThemeParks, ids, h.Concurrency)
		m := &telebot.ReplyMarkup{}
		var rows []telebot.Row
		for i, tr := range tracks {
			items[i].Detail = fmt.Sprintf(fmtDetailThreshold, tracker.Minutes(int(tr.WaitThreshold)))
			data, errData := service.CallbackData(CmdUntrackCallback, tr.AttractionId)
			if errData == nil {
				rows = append(rows, m.Row(telebot.Btn{
					Text: fmt.Sprintf(fmtBtnUntrack, items[i].Name),
					Data: data,
				}))
			}
		}
		var opts []any
		if len(rows) > 0 {
			m.Inline(rows...)
			opts = append(opts, m)
		}
		err = service.SendList(tgCtx, h.Format, title, msgEmpty, items, opts...)
	}
	return
}
