package destinations

import (
	"context"
	"fmt"
	"github.com/themeparkify/bot-telegram/api/http/themeparks"
	"github.com/themeparkify/bot-telegram/model"
	"github.com/themeparkify/bot-telegram/service"
	"github.com/themeparkify/bot-telegram/service/entries"
	"github.com/themeparkify/bot-telegram/service/messages"
	"github.com/themeparkify/bot-telegram/service/resolver"
	"github.com/themeparkify/bot-telegram/storage"
	"github.com/themeparkify/bot-telegram/util"
	"gopkg.in/telebot.v3"
	"strings"
)

const titleList = "Destinations"
const titleFmtAdded = "Added %s!"
const titleFmtRemoved = "Removed %s!"
const titleCleared = "Destinations cleared!"
const msgEmpty = "You have no added destinations."
const whatAmbiguous = "destinations"

type Handlers struct {
	Resolver    resolver.Resolver
	Storage     storage.Storage
	ThemeParks  themeparks.Service
	Format      messages.Format
	Concurrency int
}

func (h Handlers) Add(tgCtx telebot.Context) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), service.CmdTimeout)
	defer cancel()
	var userId int64
	userId, err = util.SenderId(tgCtx)
	name := strings.TrimSpace(tgCtx.Message().Payload)
	if err == nil && name == "" {
		err = fmt.Errorf("%w: missing destination name\nUsage: %s", service.ErrInvalidArgs, service.UsageDestAdd)
	}
	var dsts []themeparks.Destination
	if err == nil {
		dsts, err = h.Resolver.Destinations(ctx, name, nil)
	}
	if err == nil {
		switch len(dsts) {
		case 0:
			err = fmt.Errorf("%w: %s", resolver.ErrNotFound, name)
		case 1:
			err = h.Storage.AddDestination(ctx, userId, dsts[0].Id)
			if err == nil {
				err = h.sendList(ctx, tgCtx, userId, fmt.Sprintf(titleFmtAdded, dsts[0].Name))
			}
		default:
			ids := make([]string, len(dsts))
			for i, d := range dsts {
				ids[i] = d.Id
			}
			err = service.SendAmbiguous(ctx, tgCtx, h.ThemeParks, h.Format, h.Concurrency, whatAmbiguous, name, service.UsageDestAdd, ids)
		}
	}
	return
}

// Remove matches the name only among the destinations the user has added.
func (h Handlers) Remove(tgCtx telebot.Context) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), service.CmdTimeout)
	defer cancel()
	var userId int64
	userId, err = util.SenderId(tgCtx)
	name := strings.TrimSpace(tgCtx.Message().Payload)
	if err == nil && name == "" {
		err = fmt.Errorf("%w: missing destination name\nUsage: %s", service.ErrInvalidArgs, service.UsageDestRemove)
	}
	var ids []string
	if err == nil {
		ids, err = h.Storage.ListDestinationIds(ctx, userId)
	}
	if err == nil {
		items := entries.Describe(ctx, h.ThemeParks, ids, h.Concurrency)
		var matchIds, restIds []string
		var matched model.Entry
		var rest []model.Entry
		for i, item := range items {
			switch resolver.Contains(item.Name, name) {
			case true:
				matchIds = append(matchIds, ids[i])
				matched = item
			default:
				restIds = append(restIds, ids[i])
				rest = append(rest, item)
			}
		}
		switch len(matchIds) {
		case 0:
			err = fmt.Errorf("%w: %s", resolver.ErrNotFound, name)
		case 1:
			err = h.Storage.RemoveDestination(ctx, userId, matchIds[0])
			if err == nil {
				err = service.SendList(tgCtx, h.Format, fmt.Sprintf(titleFmtRemoved, matched.Name), msgEmpty, rest)
			}
		default:
			err = service.SendAmbiguous(ctx, tgCtx, h.ThemeParks, h.Format, h.Concurrency, whatAmbiguous, name, service.UsageDestRemove, matchIds)
		}
	}
	return
}

func (h Handlers) Clear(tgCtx telebot.Context) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), service.CmdTimeout)
	defer cancel()
	var userId int64
	userId, err = util.SenderId(tgCtx)
	if err == nil {
		err = h.Storage.ClearDestinations(ctx, userId)
	}
	if err == nil {
		err = service.SendList(tgCtx, h.Format, titleCleared, msgEmpty, nil)
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

func (h Handlers) sendList(ctx context.Context, tgCtx telebot.Context, userId int64, title string) (err error) {
	var ids []string
	ids, err = h.Storage.ListDestinationIds(ctx, userId)
	if err == nil {
		items := entries.Describe(ctx, h.ThemeParks, ids, h.Concurrency)
		err = service.SendList(tgCtx, h.Format, title, msgEmpty, items)
	}
	return
}
