package util

import (
	"errors"
	"gopkg.in/telebot.v3"
)

var ErrNoSender = errors.New("update has no sender")

// SenderId returns the Telegram id of the user who sent the update.
func SenderId(tgCtx telebot.Context) (id int64, err error) {
	sender := tgCtx.Sender()
	switch sender {
	case nil:
		err = ErrNoSender
	default:
		id = sender.ID
	}
	return
}
