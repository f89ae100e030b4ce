package tracker

import (
	"fmt"
	"github.com/themeparkify/bot-telegram/api/http/themeparks"
	"github.com/themeparkify/bot-telegram/model"
	"strings"
)

const titleReached = "Reached threshold!"
const titleAbove = "Above threshold"
const msgFmtReached = "%s has reached your threshold."
const msgFmtAbove = "%s is over your threshold."
const msgFmtNonOperating = "%s is %s."
const msgRearm = "You will be notified when the attraction is up and has reached your threshold."

func newCard(t Transition, name string, ld themeparks.LiveData, threshold uint32, addr *model.Address) (c model.Card) {
	c.Address = addr
	wait, _ := ld.StandbyWait()
	switch t {
	case TransitionReached:
		c.Title = titleReached
		c.Body = fmt.Sprintf(msgFmtReached, name)
		c.Fields = []model.Field{
			{
				Name:  "Threshold",
				Value: Minutes(int(threshold)),
			},
			{
				Name:  "Wait time",
				Value: Minutes(wait),
			},
		}
	case TransitionAbove:
		c.Title = titleAbove
		c.Body = fmt.Sprintf(msgFmtAbove, name)
		c.Fields = []model.Field{
			{
				Name:  "Wait time",
				Value: Minutes(wait),
			},
			{
				Name:  "Threshold",
				Value: Minutes(int(threshold)),
			},
		}
	case TransitionNonOperating:
		c.Title = fmt.Sprintf(msgFmtNonOperating, name, StatusText(ld.Status))
		c.Body = msgRearm
	}
	return
}

// StatusText renders the status for a sentence like "Space Mountain is under refurbishment."
func StatusText(s themeparks.Status) (txt string) {
	switch s {
	case themeparks.StatusRefurbishment:
		txt = "under refurbishment"
	case "":
		txt = "unavailable"
	default:
		txt = strings.ToLower(string(s))
	}
	return
}

func Minutes(m int) string {
	return fmt.Sprintf("%d minutes", m)
}
