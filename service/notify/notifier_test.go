package notify

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/themeparkify/bot-telegram/model"
	"github.com/themeparkify/bot-telegram/service/messages"
	"go.uber.org/ratelimit"
	"gopkg.in/telebot.v3"
	"log/slog"
	"os"
	"testing"
)

var log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

type sent struct {
	to   string
	what any
	html bool
}

type senderMock struct {
	errs []error
	sent []sent
}

func (sm *senderMock) Send(to telebot.Recipient, what interface{}, opts ...interface{}) (msg *telebot.Message, err error) {
	if len(sm.errs) > 0 {
		err, sm.errs = sm.errs[0], sm.errs[1:]
	}
	var html bool
	for _, opt := range opts {
		if opt == telebot.ModeHTML {
			html = true
		}
	}
	sm.sent = append(sm.sent, sent{
		to:   to.Recipient(),
		what: what,
		html: html,
	})
	if err == nil {
		msg = &telebot.Message{}
	}
	return
}

func TestNotifier_Notify(t *testing.T) {
	card := model.Card{
		Title: "Reached threshold!",
		Body:  "Space Mountain has reached your threshold.",
	}
	cases := map[string]struct {
		errs  []error
		sent  []bool
		err   error
		cause error
	}{
		"ok": {
			sent: []bool{true},
		},
		"html rejected, plain ok": {
			errs: []error{
				telebot.ErrBadButtonData,
			},
			sent: []bool{true, false},
		},
		"html and plain rejected": {
			errs: []error{
				telebot.ErrBadButtonData,
				telebot.ErrBadButtonData,
			},
			sent: []bool{true, false},
			err:  ErrDispatchFailed,
		},
		"blocked": {
			errs: []error{
				telebot.ErrBlockedByUser,
			},
			sent: []bool{true},
			err:  ErrRecipientUnavailable,
		},
		"flood then ok": {
			errs: []error{
				telebot.FloodError{},
			},
			sent: []bool{true, true},
		},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			sm := &senderMock{
				errs: c.errs,
			}
			fmtMsg := messages.Format{
				HtmlPolicy: messages.NewHtmlPolicy(),
			}
			n := NewNotifierLogging(NewNotifier(sm, fmtMsg, ratelimit.NewUnlimited(), log), log)
			err := n.Notify(context.TODO(), 42, card)
			assert.ErrorIs(t, err, c.err)
			assert.Len(t, sm.sent, len(c.sent))
			for i, html := range c.sent {
				assert.Equal(t, "42", sm.sent[i].to)
				assert.Equal(t, html, sm.sent[i].html)
			}
		})
	}
}

func TestNotifier_Notify_Cancelled(t *testing.T) {
	sm := &senderMock{}
	fmtMsg := messages.Format{
		HtmlPolicy: messages.NewHtmlPolicy(),
	}
	n := NewNotifier(sm, fmtMsg, ratelimit.NewUnlimited(), log)
	ctx, cancel := context.WithCancel(context.TODO())
	cancel()
	err := n.Notify(ctx, 42, model.Card{})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, sm.sent)
}

func TestNotifierMock(t *testing.T) {
	nm := NewNotifierMock()
	assert.Nil(t, nm.Notify(context.TODO(), 1, model.Card{Title: "a"}))
	assert.ErrorIs(t, nm.Notify(context.TODO(), UserIdFail, model.Card{Title: "b"}), ErrDispatchFailed)
	assert.Equal(t, []Sent{{UserId: 1, Card: model.Card{Title: "a"}}}, nm.Flush())
	assert.Empty(t, nm.Flush())
}
