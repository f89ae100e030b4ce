package service

import (
	"errors"
	"fmt"
	"gopkg.in/telebot.v3"
	"strings"
)

type ArgHandlerFunc func(tgCtx telebot.Context, args ...string) (err error)

// CmdLimit is the max length of the inline button data accepted by Telegram.
const CmdLimit = 64

var errInvalidCallbackData = errors.New("invalid callback data")
var errInvalidCallbackCmd = errors.New("invalid callback command")

// CallbackData builds the inline button data dispatched by Callback.
func CallbackData(cmd string, args ...string) (data string, err error) {
	data = strings.Join(append([]string{cmd}, args...), " ")
	if len(data) > CmdLimit {
		err = fmt.Errorf("%w: too long: %s", errInvalidCallbackData, data)
	}
	return
}

func Callback(handlers map[string]ArgHandlerFunc) telebot.HandlerFunc {
	return func(tgCtx telebot.Context) (err error) {
		data := strings.TrimSpace(tgCtx.Callback().Data)
		parts := strings.Fields(data)
		if len(parts) < 1 {
			err = fmt.Errorf("%w: %s", errInvalidCallbackData, data)
		}
		var f ArgHandlerFunc
		if err == nil {
			cmd := parts[0]
			var ok bool
			f, ok = handlers[cmd]
			if !ok {
				err = fmt.Errorf("%w: %s", errInvalidCallbackCmd, cmd)
			}
		}
		if err == nil {
			err = f(tgCtx, parts[1:]...)
		}
		_ = tgCtx.Respond()
		return
	}
}
