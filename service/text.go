package service

import (
	"gopkg.in/telebot.v3"
	"strings"
)

// TextHandlerFunc handles the reply keyboard labels and answers any other text with the help.
func TextHandlerFunc(txtHandlers map[string]telebot.HandlerFunc) telebot.HandlerFunc {
	return func(tgCtx telebot.Context) (err error) {
		txt := strings.TrimSpace(tgCtx.Text())
		h, hOk := txtHandlers[txt]
		switch hOk {
		case true:
			err = h(tgCtx)
		default:
			err = tgCtx.Send(HelpText())
		}
		return
	}
}
