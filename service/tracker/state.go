package tracker

import "github.com/themeparkify/bot-telegram/api/http/themeparks"

// State is the live condition of a tracked attraction relative to the user's threshold.
type State int

const (
	StateAbove State = iota
	StateReached
	StateNonOperating
)

func (s State) String() string {
	switch s {
	case StateAbove:
		return "above"
	case StateReached:
		return "reached"
	default:
		return "non-operating"
	}
}

type Transition int

const (
	TransitionNone Transition = iota
	TransitionReached
	TransitionAbove
	TransitionNonOperating
)

func (t Transition) String() string {
	switch t {
	case TransitionReached:
		return "reached"
	case TransitionAbove:
		return "above"
	case TransitionNonOperating:
		return "non-operating"
	default:
		return "none"
	}
}

// Classify returns false when the entry is operating but has no standby wait to compare against.
func Classify(ld themeparks.LiveData, threshold uint32) (s State, ok bool) {
	switch ld.Status {
	case themeparks.StatusOperating:
		var wait int
		wait, ok = ld.StandbyWait()
		switch {
		case !ok:
		case wait <= int(threshold):
			s = StateReached
		default:
			s = StateAbove
		}
	default:
		s, ok = StateNonOperating, true
	}
	return
}

// Decide returns the notification to send, if any, and the reached flag to persist.
func Decide(reached bool, s State) (t Transition, nextReached bool) {
	nextReached = reached
	switch {
	case !reached && s == StateReached:
		t, nextReached = TransitionReached, true
	case reached && s == StateAbove:
		t, nextReached = TransitionAbove, false
	case reached && s == StateNonOperating:
		t, nextReached = TransitionNonOperating, false
	}
	return
}
