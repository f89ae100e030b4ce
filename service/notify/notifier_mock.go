package notify

import (
	"context"
	"fmt"
	"github.com/themeparkify/bot-telegram/model"
	"sync"
)

// UserIdFail is the recipient the mock always fails to deliver to.
const UserIdFail int64 = -2

type Sent struct {
	UserId int64
	Card   model.Card
}

type NotifierMock struct {
	lock *sync.Mutex
	sent []Sent
}

func NewNotifierMock() *NotifierMock {
	return &NotifierMock{
		lock: &sync.Mutex{},
	}
}

func (nm *NotifierMock) Notify(ctx context.Context, userId int64, c model.Card) (err error) {
	if userId == UserIdFail {
		err = fmt.Errorf("%w: %d", ErrDispatchFailed, userId)
		return
	}
	nm.lock.Lock()
	defer nm.lock.Unlock()
	nm.sent = append(nm.sent, Sent{
		UserId: userId,
		Card:   c,
	})
	return
}

// Flush returns the cards sent since the previous call.
func (nm *NotifierMock) Flush() (sent []Sent) {
	nm.lock.Lock()
	defer nm.lock.Unlock()
	sent, nm.sent = nm.sent, nil
	return
}
