package resolver

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/themeparkify/bot-telegram/api/http/themeparks"
	"log/slog"
	"os"
	"testing"
)

var log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

func TestResolver_Resolve(t *testing.T) {
	r := NewResolverLogging(NewResolver(themeparks.NewServiceMock(), 4), log)
	cases := map[string]struct {
		q   Query
		ids []string
		err error
	}{
		"single in scope": {
			q: Query{
				Text:           "space",
				DestinationIds: []string{"dst-dlr"},
			},
			ids: []string{"att-space-dl"},
		},
		"two in scope keep upstream order": {
			q: Query{
				Text:           "  SPACE ",
				DestinationIds: []string{"dst-wdw"},
			},
			ids: []string{"att-space-mk", "att-mission-space"},
		},
		"park hint": {
			q: Query{
				Text:           "space",
				Park:           "epcot",
				DestinationIds: []string{"dst-wdw"},
			},
			ids: []string{"att-mission-space"},
		},
		"destination hint": {
			q: Query{
				Text:        "space mountain",
				Destination: "disneyland",
			},
			ids: []string{"att-space-dl"},
		},
		"unscoped across destinations": {
			q: Query{
				Text: "space mountain",
				DestinationIds: []string{
					"dst-dlr",
					"dst-wdw",
				},
			},
			ids: []string{"att-space-mk", "att-space-dl"},
		},
		"kind excludes shows": {
			q: Query{
				Text:           "parade",
				DestinationIds: []string{"dst-wdw"},
			},
		},
		"other kind": {
			q: Query{
				Text:           "parade",
				Kind:           KindOther,
				DestinationIds: []string{"dst-wdw"},
			},
			ids: []string{"show-parade-mk"},
		},
		"empty query matches all in park": {
			q: Query{
				Park:           "california",
				DestinationIds: []string{"dst-dlr"},
			},
			ids: []string{"att-incredicoaster"},
		},
		"empty scope": {
			q: Query{
				Text:           "space",
				DestinationIds: []string{},
			},
		},
		"unknown destination id": {
			q: Query{
				Text:           "space",
				DestinationIds: []string{"dst-missing"},
			},
		},
		"fetch failure fails the whole call": {
			q: Query{
				Text: "space",
			},
			err: themeparks.ErrFetchFailed,
		},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			matches, err := r.Resolve(context.TODO(), c.q)
			assert.ErrorIs(t, err, c.err)
			if c.err != nil {
				assert.Nil(t, matches)
			} else {
				var ids []string
				for _, m := range matches {
					ids = append(ids, m.Id)
				}
				assert.Equal(t, c.ids, ids)
			}
		})
	}
}

func TestResolver_Destinations(t *testing.T) {
	r := NewResolver(themeparks.NewServiceMock(), 0)
	cases := map[string]struct {
		text string
		ids  []string
		out  []string
	}{
		"all": {
			out: []string{"dst-wdw", "dst-dlr", "dst-broken"},
		},
		"by name": {
			text: "disney",
			out:  []string{"dst-wdw", "dst-dlr"},
		},
		"by name within ids": {
			text: "resort",
			ids:  []string{"dst-dlr"},
			out:  []string{"dst-dlr"},
		},
		"none": {
			text: "universal",
		},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			dsts, err := r.Destinations(context.TODO(), c.text, c.ids)
			assert.Nil(t, err)
			var ids []string
			for _, d := range dsts {
				ids = append(ids, d.Id)
			}
			assert.Equal(t, c.out, ids)
		})
	}
}

func TestSingle(t *testing.T) {
	cases := map[string]struct {
		in  []themeparks.Entity
		out string
		err error
	}{
		"none": {
			err: ErrNotFound,
		},
		"one": {
			in: []themeparks.Entity{
				{Id: "att0"},
			},
			out: "att0",
		},
		"many": {
			in: []themeparks.Entity{
				{Id: "att0"},
				{Id: "att1"},
			},
			err: ErrAmbiguous,
		},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			e, err := Single(c.in)
			assert.ErrorIs(t, err, c.err)
			assert.Equal(t, c.out, e.Id)
		})
	}
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("Space Mountain", ""))
	assert.True(t, Contains("Space Mountain", " mountain "))
	assert.False(t, Contains("Space Mountain", "matterhorn"))
}
