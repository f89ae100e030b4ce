package tracker

import (
	"context"
	"fmt"
	"github.com/segmentio/ksuid"
	"github.com/themeparkify/bot-telegram/api/http/themeparks"
	"github.com/themeparkify/bot-telegram/model"
	"github.com/themeparkify/bot-telegram/service/entries"
	"github.com/themeparkify/bot-telegram/service/notify"
	"github.com/themeparkify/bot-telegram/storage"
	"golang.org/x/sync/errgroup"
	"log/slog"
	"sync"
	"time"
)

// Tracker compares the live wait of every tracked attraction against its threshold and notifies the users.
type Tracker interface {

	// Poll runs a single cycle once the cycle in progress, if any, completes. Only a failure
	// to list the tracks fails the whole cycle, any other failure affects only the rows of the
	// attraction involved.
	Poll(ctx context.Context) (r Report, err error)

	// Run polls until the context is done, waiting for the interval after each completed cycle.
	Run(ctx context.Context, interval time.Duration) (err error)
}

type Report struct {
	CycleId        string        `json:"cycleId"`
	Tracks         int           `json:"tracks"`
	Attractions    int           `json:"attractions"`
	Skipped        int           `json:"skipped"`
	Notified       int           `json:"notified"`
	PersistFailed  int           `json:"persistFailed"`
	DispatchFailed int           `json:"dispatchFailed"`
	Duration       time.Duration `json:"duration"`
}

type tracker struct {
	svcParks    themeparks.Service
	stor        storage.Storage
	notifier    notify.Notifier
	concurrency int
	log         *slog.Logger
	lock        *sync.Mutex
}

type snapshot struct {
	live      themeparks.Live
	errLive   error
	entity    themeparks.Entity
	errEntity error
}

func NewTracker(svcParks themeparks.Service, stor storage.Storage, notifier notify.Notifier, concurrency int, log *slog.Logger) Tracker {
	return tracker{
		svcParks:    svcParks,
		stor:        stor,
		notifier:    notifier,
		concurrency: concurrency,
		log:         log,
		lock:        &sync.Mutex{},
	}
}

func (t tracker) Poll(ctx context.Context) (r Report, err error) {
	t.lock.Lock()
	defer t.lock.Unlock()
	start := time.Now()
	r.CycleId = ksuid.New().String()
	log := t.log.With("cycleId", r.CycleId)
	var tracks []storage.Track
	tracks, err = t.stor.ListAllTracks(ctx)
	if err == nil {
		r.Tracks = len(tracks)
		snaps := t.fetchAttractions(ctx, log, tracks)
		r.Attractions = len(snaps)
		addrs := t.addresses(ctx, snaps)
		for _, tr := range tracks {
			if err = ctx.Err(); err != nil {
				break
			}
			t.process(ctx, log, tr, snaps[tr.AttractionId], addrs[tr.AttractionId], &r)
		}
	}
	r.Duration = time.Since(start)
	return
}

func (t tracker) fetchAttractions(ctx context.Context, log *slog.Logger, tracks []storage.Track) (snaps map[string]*snapshot) {
	snaps = make(map[string]*snapshot)
	for _, tr := range tracks {
		if _, ok := snaps[tr.AttractionId]; !ok {
			snaps[tr.AttractionId] = &snapshot{}
		}
	}
	g := t.newGroup()
	for id, s := range snaps {
		g.Go(func() error {
			s.live, s.errLive = t.svcParks.Live(ctx, id)
			if s.errLive != nil {
				log.Warn(fmt.Sprintf("Failed to fetch the live data for %s: %s", id, s.errLive))
			}
			return nil
		})
		g.Go(func() error {
			s.entity, s.errEntity = t.svcParks.Entity(ctx, id)
			if s.errEntity != nil {
				log.Warn(fmt.Sprintf("Failed to fetch the entity %s: %s", id, s.errEntity))
			}
			return nil
		})
	}
	_ = g.Wait()
	return
}

func (t tracker) addresses(ctx context.Context, snaps map[string]*snapshot) (addrs map[string]*model.Address) {
	var ids []string
	var entities []themeparks.Entity
	for id, s := range snaps {
		if s.errEntity == nil {
			ids = append(ids, id)
			entities = append(entities, s.entity)
		}
	}
	addrs = make(map[string]*model.Address, len(ids))
	for i, addr := range entries.Addresses(ctx, t.svcParks, entities, t.concurrency) {
		if addr != nil {
			addrs[ids[i]] = addr
		}
	}
	return
}

func (t tracker) process(ctx context.Context, log *slog.Logger, tr storage.Track, s *snapshot, addr *model.Address, r *Report) {
	if s.errLive != nil {
		r.Skipped++
		return
	}
	ld, ok := s.live.Of(tr.AttractionId)
	var state State
	if ok {
		state, ok = Classify(ld, tr.WaitThreshold)
	}
	if !ok {
		log.Debug(fmt.Sprintf("No usable live data for %s, skipping", tr.AttractionId))
		r.Skipped++
		return
	}
	transition, reached := Decide(tr.ReachedThreshold, state)
	if reached != tr.ReachedThreshold {
		err := t.stor.SetReached(ctx, tr.UserId, tr.AttractionId, reached)
		if err != nil {
			log.Error(fmt.Sprintf("Failed to persist the state of %s for %d: %s", tr.AttractionId, tr.UserId, err))
			r.PersistFailed++
			return
		}
	}
	if transition != TransitionNone {
		name := ld.Name
		if name == "" {
			name = s.entity.Name
		}
		if name == "" {
			name = tr.AttractionId
		}
		c := newCard(transition, name, ld, tr.WaitThreshold, addr)
		err := t.notifier.Notify(ctx, tr.UserId, c)
		switch err {
		case nil:
			r.Notified++
		default:
			log.Warn(fmt.Sprintf("Failed to notify %d about %s %s: %s", tr.UserId, tr.AttractionId, transition, err))
			r.DispatchFailed++
		}
	}
}

func (t tracker) Run(ctx context.Context, interval time.Duration) (err error) {
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		case <-timer.C:
			r, errPoll := t.Poll(ctx)
			switch {
			case errPoll != nil:
				t.log.Error(fmt.Sprintf("Poll cycle %s failed: %s", r.CycleId, errPoll))
			case r.Notified > 0 || r.Skipped > 0 || r.PersistFailed > 0 || r.DispatchFailed > 0:
				t.log.Info(fmt.Sprintf("Poll cycle done: %+v", r))
			default:
				t.log.Debug(fmt.Sprintf("Poll cycle done: %+v", r))
			}
			timer.Reset(interval)
		}
	}
}

func (t tracker) newGroup() (g *errgroup.Group) {
	g = &errgroup.Group{}
	if t.concurrency > 0 {
		g.SetLimit(t.concurrency)
	}
	return
}
