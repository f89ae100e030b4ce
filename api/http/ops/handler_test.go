package ops

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/themeparkify/bot-telegram/api/http/themeparks"
	"github.com/themeparkify/bot-telegram/service/notify"
	"github.com/themeparkify/bot-telegram/service/tracker"
	"github.com/themeparkify/bot-telegram/storage"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

var log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

type storageDown struct {
	storage.Storage
}

func (sd storageDown) Ping(ctx context.Context) error {
	return errors.New("connection refused")
}

func (sd storageDown) ListAllTracks(ctx context.Context) ([]storage.Track, error) {
	return nil, storage.ErrInternal
}

func newRouter(stor storage.Storage, svcParks themeparks.Service, notifier notify.Notifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	t := tracker.NewTracker(svcParks, stor, notifier, 4, log)
	return NewRouter(NewHandler(stor, t))
}

func TestHandler_Healthz(t *testing.T) {
	cases := map[string]struct {
		stor   storage.Storage
		status int
	}{
		"ok": {
			stor:   storage.NewStorageMock(),
			status: http.StatusOK,
		},
		"storage down": {
			stor:   storageDown{Storage: storage.NewStorageMock()},
			status: http.StatusServiceUnavailable,
		},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			r := newRouter(c.stor, themeparks.NewServiceMock(), notify.NewNotifierMock())
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, PathHealthz, nil)
			r.ServeHTTP(w, req)
			assert.Equal(t, c.status, w.Code)
		})
	}
}

func TestHandler_Poll(t *testing.T) {
	ctx := context.TODO()
	stor := storage.NewStorageMock()
	require.Nil(t, stor.UpsertTrack(ctx, 1, "att-space-mk", 30))
	require.Nil(t, stor.UpsertTrack(ctx, 2, "att-space-mk", 10))
	svcParks := themeparks.NewServiceMock()
	svcParks.SetWait("att-space-mk", 20)
	notifier := notify.NewNotifierMock()
	r := newRouter(stor, svcParks, notifier)
	//
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, PathPoll, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var report tracker.Report
	require.Nil(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.NotEmpty(t, report.CycleId)
	assert.Equal(t, 2, report.Tracks)
	assert.Equal(t, 1, report.Attractions)
	assert.Equal(t, 1, report.Notified)
	assert.Len(t, notifier.Flush(), 1)
}

func TestHandler_Poll_Fail(t *testing.T) {
	r := newRouter(storageDown{Storage: storage.NewStorageMock()}, themeparks.NewServiceMock(), notify.NewNotifierMock())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, PathPoll, nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandler_Poll_MethodNotAllowed(t *testing.T) {
	r := newRouter(storage.NewStorageMock(), themeparks.NewServiceMock(), notify.NewNotifierMock())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, PathPoll, nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
