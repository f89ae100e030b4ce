package notify

import (
	"context"
	"errors"
	"fmt"
	"github.com/themeparkify/bot-telegram/model"
	"github.com/themeparkify/bot-telegram/service/messages"
	"go.uber.org/ratelimit"
	"gopkg.in/telebot.v3"
	"log/slog"
	"time"
)

// Notifier delivers a card to a user as a private message.
type Notifier interface {
	Notify(ctx context.Context, userId int64, c model.Card) (err error)
}

// Sender is the part of the bot API used to deliver messages, implemented by *telebot.Bot.
type Sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

var ErrDispatchFailed = errors.New("notification dispatch failed")
var ErrRecipientUnavailable = errors.New("recipient unavailable")

type notifier struct {
	sender Sender
	format messages.Format
	rl     ratelimit.Limiter
	log    *slog.Logger
}

func NewNotifier(sender Sender, format messages.Format, rl ratelimit.Limiter, log *slog.Logger) Notifier {
	return notifier{
		sender: sender,
		format: format,
		rl:     rl,
		log:    log,
	}
}

func (n notifier) Notify(ctx context.Context, userId int64, c model.Card) (err error) {
	to := &telebot.User{
		ID: userId,
	}
	err = n.sendHtml(ctx, to, c)
	var errFlood telebot.FloodError
	if errors.As(err, &errFlood) {
		d := time.Second * time.Duration(errFlood.RetryAfter)
		n.log.Warn(fmt.Sprintf("Flood error, retry in %s", d))
		select {
		case <-ctx.Done():
			err = ctx.Err()
		case <-time.After(d):
			err = n.sendHtml(ctx, to, c)
		}
	}
	switch {
	case err == nil:
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
	case unavailable(err):
		err = fmt.Errorf("%w: %d, cause: %s", ErrRecipientUnavailable, userId, err)
	case errors.As(err, &errFlood):
		err = fmt.Errorf("%w: flood limit, retry after %d s", ErrDispatchFailed, errFlood.RetryAfter)
	default:
		n.log.Warn(fmt.Sprintf("Failed to send message to %d in HTML mode, cause: %s", userId, err))
		// fallback: try to re-send as a plain text
		n.rl.Take()
		_, err = n.sender.Send(to, n.format.CardPlain(c), telebot.NoPreview)
		if err != nil {
			err = fmt.Errorf("%w: %s", ErrDispatchFailed, err)
		}
	}
	return
}

func (n notifier) sendHtml(ctx context.Context, to *telebot.User, c model.Card) (err error) {
	if err = ctx.Err(); err == nil {
		n.rl.Take()
		_, err = n.sender.Send(to, n.format.CardHtml(c), telebot.ModeHTML, telebot.NoPreview)
	}
	return
}

func unavailable(err error) bool {
	return errors.Is(err, telebot.ErrBlockedByUser) ||
		errors.Is(err, telebot.ErrUserIsDeactivated) ||
		errors.Is(err, telebot.ErrChatNotFound)
}
