package service

import (
	"errors"
	"fmt"
	"github.com/themeparkify/bot-telegram/api/http/themeparks"
	"github.com/themeparkify/bot-telegram/service/resolver"
	"github.com/themeparkify/bot-telegram/storage"
	"gopkg.in/telebot.v3"
)

var ErrNoDestinations = errors.New("no destinations")
var ErrInvalidArgs = errors.New("invalid arguments")
var ErrChatType = errors.New("unsupported chat type")

const msgNoDestinations = "You have no destinations to search.\nTry using /dest_add first!"
const msgNotFound = "Nothing was found for your query."
const msgCapacityExceeded = "You have reached the max number of items allowed (%d).\nTry removing some first!"
const msgDuplicate = "This is already in your list!"
const msgFetchFailed = "The theme parks service is not available now, please try again later."
const msgChatType = "Please talk to me in a private chat."
const msgInternal = "Unexpected failure, please try again later."

// UserMessage converts the error to the text the user sees.
func UserMessage(err error) (msg string) {
	switch {
	case errors.Is(err, ErrNoDestinations):
		msg = msgNoDestinations
	case errors.Is(err, ErrInvalidArgs):
		msg = err.Error()
	case errors.Is(err, resolver.ErrNotFound):
		msg = msgNotFound
	case errors.Is(err, storage.ErrCapacityExceeded):
		msg = fmt.Sprintf(msgCapacityExceeded, storage.CountLimit)
	case errors.Is(err, storage.ErrDuplicateSubscription):
		msg = msgDuplicate
	case errors.Is(err, themeparks.ErrFetchFailed):
		msg = msgFetchFailed
	case errors.Is(err, ErrChatType):
		msg = msgChatType
	default:
		msg = msgInternal
	}
	return
}

func ErrorHandlerFunc(h telebot.HandlerFunc) telebot.HandlerFunc {
	return func(tgCtx telebot.Context) (err error) {
		err = h(tgCtx)
		if err != nil {
			_ = tgCtx.Send(UserMessage(err))
		}
		return
	}
}
