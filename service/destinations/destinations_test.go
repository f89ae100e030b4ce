package destinations

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/themeparkify/bot-telegram/api/http/themeparks"
	"github.com/themeparkify/bot-telegram/service"
	"github.com/themeparkify/bot-telegram/service/messages"
	"github.com/themeparkify/bot-telegram/service/resolver"
	"github.com/themeparkify/bot-telegram/storage"
	"testing"
)

const userId = 42

func newHandlers() Handlers {
	svcParks := themeparks.NewServiceMock()
	return Handlers{
		Resolver:    resolver.NewResolver(svcParks, 2),
		Storage:     storage.NewStorageMock(),
		ThemeParks:  svcParks,
		Format:      messages.Format{HtmlPolicy: messages.NewHtmlPolicy()},
		Concurrency: 2,
	}
}

func TestHandlers_Add(t *testing.T) {
	cases := map[string]struct {
		existing []string
		payload  string
		ids      []string
		contains []string
		err      error
	}{
		"ok": {
			payload: " walt ",
			ids:     []string{"dst-wdw"},
			contains: []string{
				"<b>Added Walt Disney World Resort!</b>",
				`<a href="https://www.google.com/maps/place/28.3852,-81.5639">Google Maps</a>`,
			},
		},
		"appended to existing": {
			existing: []string{"dst-dlr"},
			payload:  "walt",
			ids:      []string{"dst-dlr", "dst-wdw"},
			contains: []string{
				"<b>Disneyland Resort</b>",
				"<b>Walt Disney World Resort</b>",
			},
		},
		"ambiguous": {
			payload: "disney",
			contains: []string{
				"Multiple destinations were found",
				"<b>Walt Disney World Resort</b>",
				"<b>Disneyland Resort</b>",
			},
		},
		"not found": {
			payload: "universal",
			err:     resolver.ErrNotFound,
		},
		"duplicate": {
			existing: []string{"dst-wdw"},
			payload:  "walt",
			ids:      []string{"dst-wdw"},
			err:      storage.ErrDuplicateSubscription,
		},
		"missing name": {
			err: service.ErrInvalidArgs,
		},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			h := newHandlers()
			for _, id := range c.existing {
				require.Nil(t, h.Storage.AddDestination(context.TODO(), userId, id))
			}
			tgCtx := service.NewContextMock(userId, c.payload)
			err := h.Add(tgCtx)
			assert.ErrorIs(t, err, c.err)
			ids, _ := h.Storage.ListDestinationIds(context.TODO(), userId)
			assert.Equal(t, c.ids, ids)
			for _, s := range c.contains {
				assert.Contains(t, tgCtx.LastText(), s)
			}
		})
	}
}

func TestHandlers_Remove(t *testing.T) {
	cases := map[string]struct {
		payload  string
		ids      []string
		contains []string
		err      error
	}{
		"ok": {
			payload: "land",
			ids:     []string{"dst-wdw"},
			contains: []string{
				"<b>Removed Disneyland Resort!</b>",
				"<b>Walt Disney World Resort</b>",
			},
		},
		"ambiguous": {
			payload: "disney",
			ids:     []string{"dst-wdw", "dst-dlr"},
			contains: []string{
				"Multiple destinations were found",
			},
		},
		"not among own": {
			payload: "broken",
			ids:     []string{"dst-wdw", "dst-dlr"},
			err:     resolver.ErrNotFound,
		},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			h := newHandlers()
			require.Nil(t, h.Storage.AddDestination(context.TODO(), userId, "dst-wdw"))
			require.Nil(t, h.Storage.AddDestination(context.TODO(), userId, "dst-dlr"))
			tgCtx := service.NewContextMock(userId, c.payload)
			err := h.Remove(tgCtx)
			assert.ErrorIs(t, err, c.err)
			ids, _ := h.Storage.ListDestinationIds(context.TODO(), userId)
			assert.Equal(t, c.ids, ids)
			for _, s := range c.contains {
				assert.Contains(t, tgCtx.LastText(), s)
			}
		})
	}
}

func TestHandlers_RemoveLast(t *testing.T) {
	h := newHandlers()
	require.Nil(t, h.Storage.AddDestination(context.TODO(), userId, "dst-dlr"))
	tgCtx := service.NewContextMock(userId, "disneyland")
	require.Nil(t, h.Remove(tgCtx))
	assert.Contains(t, tgCtx.LastText(), msgEmpty)
}

func TestHandlers_ClearAndList(t *testing.T) {
	h := newHandlers()
	require.Nil(t, h.Storage.AddDestination(context.TODO(), userId, "dst-dlr"))
	tgCtx := service.NewContextMock(userId, "")
	require.Nil(t, h.List(tgCtx))
	assert.Contains(t, tgCtx.LastText(), "<b>Disneyland Resort</b>")
	require.Nil(t, h.Clear(tgCtx))
	assert.Contains(t, tgCtx.LastText(), titleCleared)
	assert.Contains(t, tgCtx.LastText(), msgEmpty)
	require.Nil(t, h.List(tgCtx))
	assert.Contains(t, tgCtx.LastText(), msgEmpty)
}
