package attractions

import (
	"context"
	"fmt"
	"github.com/themeparkify/bot-telegram/api/http/themeparks"
	"github.com/themeparkify/bot-telegram/model"
	"github.com/themeparkify/bot-telegram/service"
	"github.com/themeparkify/bot-telegram/service/entries"
	"github.com/themeparkify/bot-telegram/service/tracker"
	"github.com/themeparkify/bot-telegram/util"
	"golang.org/x/sync/errgroup"
	"gopkg.in/telebot.v3"
)

const fmtClock = "15:04"
const valUnknown = "unknown"

func (h Handlers) Ride(tgCtx telebot.Context) (err error) {
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
		t, err = service.ParseTarget(tgCtx.Message().Payload, service.UsageRide)
	}
	var matches []themeparks.Entity
	if err == nil {
		matches, err = h.resolve(ctx, t, dstIds)
	}
	var e themeparks.Entity
	var ok bool
	if err == nil {
		e, ok, err = h.single(ctx, tgCtx, matches, t, service.UsageRide)
	}
	var c model.Card
	if err == nil && ok {
		c, err = h.rideCard(ctx, e.Id)
	}
	if err == nil && ok {
		err = tgCtx.Send(h.Format.CardHtml(c), telebot.ModeHTML, telebot.NoPreview)
	}
	return
}

func (h Handlers) rideCard(ctx context.Context, id string) (c model.Card, err error) {
	var l themeparks.Live
	var e themeparks.Entity
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		l, err = h.ThemeParks.Live(gCtx, id)
		return
	})
	g.Go(func() (err error) {
		e, err = h.ThemeParks.Entity(gCtx, id)
		return
	})
	err = g.Wait()
	var ld themeparks.LiveData
	if err == nil {
		var ok bool
		ld, ok = l.Of(id)
		if !ok {
			err = fmt.Errorf("%w: no live data for %s", themeparks.ErrFetchFailed, id)
		}
	}
	if err == nil {
		addr := entries.Addresses(ctx, h.ThemeParks, []themeparks.Entity{e}, h.Concurrency)[0]
		c = RideCard(e, ld, addr)
	}
	return
}

// RideCard summarizes the current state of the attraction.
func RideCard(e themeparks.Entity, ld themeparks.LiveData, addr *model.Address) (c model.Card) {
	c.Title = ld.Name
	if c.Title == "" {
		c.Title = e.Name
	}
	if addr != nil {
		c.Body = addr.Park
	}
	c.Address = addr
	wait := valUnknown
	if w, ok := ld.StandbyWait(); ok {
		wait = tracker.Minutes(w)
	}
	status := string(ld.Status)
	if status == "" {
		status = valUnknown
	}
	c.Fields = append(
		c.Fields,
		model.Field{
			Name:  "Wait time",
			Value: wait,
		},
		model.Field{
			Name:  "Status",
			Value: status,
		},
	)
	if q, ok := ld.ReturnTime(); ok {
		c.Fields = append(c.Fields, model.Field{
			Name:  "Return time",
			Value: returnTime(q),
		})
	}
	for _, oh := range ld.OperatingHours {
		c.Fields = append(c.Fields, model.Field{
			Name:  fmt.Sprintf("%s hours", oh.Type),
			Value: fmt.Sprintf("%s to %s", oh.StartTime.Format(fmtClock), oh.EndTime.Format(fmtClock)),
		})
	}
	return
}

func returnTime(q themeparks.Queue) (txt string) {
	switch {
	case q.State == themeparks.ReturnStateAvailable && q.ReturnStart != nil:
		txt = q.ReturnStart.Format(fmtClock)
	case q.State != "":
		txt = q.State
	default:
		txt = valUnknown
	}
	if q.Price != nil {
		if q.State == themeparks.ReturnStateAvailable {
			txt = "Time: " + txt
		}
		txt += fmt.Sprintf(", Price: %.2f %s", float64(q.Price.Amount)/100, q.Price.Currency)
	}
	return
}
