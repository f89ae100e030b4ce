package service

import (
	"gopkg.in/telebot.v3"
)

// ContextMock is a private chat update from a single user that records the bot replies.
// Methods not overridden here are not supported.
type ContextMock struct {
	telebot.Context
	UserId       int64
	Payload      string
	CallbackData string
	Sent         []any
	Opts         [][]any
	Answered     bool
}

var _ telebot.Context = (*ContextMock)(nil)

func NewContextMock(userId int64, payload string) *ContextMock {
	return &ContextMock{
		UserId:  userId,
		Payload: payload,
	}
}

func (cm *ContextMock) Sender() *telebot.User {
	return &telebot.User{
		ID: cm.UserId,
	}
}

func (cm *ContextMock) Chat() *telebot.Chat {
	return &telebot.Chat{
		ID:   cm.UserId,
		Type: telebot.ChatPrivate,
	}
}

func (cm *ContextMock) Message() *telebot.Message {
	return &telebot.Message{
		Sender:  cm.Sender(),
		Chat:    cm.Chat(),
		Text:    cm.Payload,
		Payload: cm.Payload,
	}
}

func (cm *ContextMock) Text() string {
	return cm.Payload
}

func (cm *ContextMock) Callback() *telebot.Callback {
	return &telebot.Callback{
		Sender: cm.Sender(),
		Data:   cm.CallbackData,
	}
}

func (cm *ContextMock) Update() telebot.Update {
	return telebot.Update{
		Message: cm.Message(),
	}
}

func (cm *ContextMock) Send(what interface{}, opts ...interface{}) error {
	cm.Sent = append(cm.Sent, what)
	cm.Opts = append(cm.Opts, opts)
	return nil
}

func (cm *ContextMock) Respond(resp ...*telebot.CallbackResponse) error {
	cm.Answered = true
	return nil
}

// LastText returns the last reply sent as a text.
func (cm *ContextMock) LastText() (txt string) {
	for i := len(cm.Sent) - 1; i >= 0; i-- {
		if s, ok := cm.Sent[i].(string); ok {
			return s
		}
	}
	return
}

// LastMarkup returns the reply markup of the last reply, if any.
func (cm *ContextMock) LastMarkup() (m *telebot.ReplyMarkup) {
	if len(cm.Opts) > 0 {
		for _, opt := range cm.Opts[len(cm.Opts)-1] {
			if rm, ok := opt.(*telebot.ReplyMarkup); ok {
				m = rm
			}
		}
	}
	return
}
