package service

import (
	"context"
	"fmt"
	"github.com/bytedance/sonic"
	"gopkg.in/telebot.v3"
	"log/slog"
)

func LoggingHandlerFunc(next telebot.HandlerFunc, log *slog.Logger) telebot.HandlerFunc {
	return func(tgCtx telebot.Context) (err error) {
		if log.Enabled(context.TODO(), slog.LevelDebug) {
			data, _ := sonic.Marshal(tgCtx.Update())
			log.Debug(string(data))
		}
		err = next(tgCtx)
		if err != nil {
			log.Warn(fmt.Sprintf("Update %d handling failed: %s", tgCtx.Update().ID, err))
		}
		return
	}
}
