package service

import (
	"context"
	"fmt"
	"github.com/themeparkify/bot-telegram/api/http/themeparks"
	"github.com/themeparkify/bot-telegram/model"
	"github.com/themeparkify/bot-telegram/service/entries"
	"github.com/themeparkify/bot-telegram/service/messages"
	"github.com/themeparkify/bot-telegram/service/resolver"
	"gopkg.in/telebot.v3"
	"time"
)

// CmdTimeout limits the upstream requests and the storage calls made by a single command.
const CmdTimeout = time.Minute

const msgFmtAmbiguous = "Multiple %s were found containing \"%s\"."
const msgFmtMoreNotListed = "...and %d more. Try to narrow the query down, e.g. %s"

// SendList replies with the entries under the title or with the empty note when there are none.
func SendList(tgCtx telebot.Context, fmtMsg messages.Format, title, empty string, items []model.Entry, opts ...any) (err error) {
	txt := fmtMsg.ListHtml(title, items)
	if len(items) == 0 {
		txt += "\n" + fmtMsg.HtmlPolicy.Sanitize(empty)
	}
	opts = append(opts, telebot.ModeHTML, telebot.NoPreview)
	err = tgCtx.Send(txt, opts...)
	return
}

// SendAmbiguous replies with the alternatives matching the query, at most resolver.MaxListed of them.
func SendAmbiguous(
	ctx context.Context,
	tgCtx telebot.Context,
	svcParks themeparks.Service,
	fmtMsg messages.Format,
	concurrency int,
	what, query, usage string,
	ids []string,
) (err error) {
	listed := ids
	if len(listed) > resolver.MaxListed {
		listed = listed[:resolver.MaxListed]
	}
	items := entries.Describe(ctx, svcParks, listed, concurrency)
	txt := fmtMsg.ListHtml(fmt.Sprintf(msgFmtAmbiguous, what, query), items)
	if len(ids) > len(listed) {
		txt += "\n" + fmtMsg.HtmlPolicy.Sanitize(fmt.Sprintf(msgFmtMoreNotListed, len(ids)-len(listed), usage))
	}
	err = tgCtx.Send(txt, telebot.ModeHTML, telebot.NoPreview)
	return
}
