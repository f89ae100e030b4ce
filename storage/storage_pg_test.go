package storage

import (
	"context"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/themeparkify/bot-telegram/config"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"
)

var dbUri = os.Getenv("DB_URI_TEST_PG")

func newTestStoragePg(t *testing.T) Storage {
	if dbUri == "" {
		t.Skip("DB_URI_TEST_PG not set; skipping integration test")
	}
	cfgDb := config.DbConfig{
		Uri:     dbUri,
		Migrate: true,
	}
	cfgDb.Conn.RetryMax = 10 * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := NewStorage(ctx, cfgDb, log)
	require.Nil(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return NewStorageLogging(s, log)
}

func TestStoragePg(t *testing.T) {
	testStorage(t, newTestStoragePg(t))
}

func TestStoragePg_ConcurrentUpsertRespectsCapacity(t *testing.T) {
	s := newTestStoragePg(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	userId := newUserId()
	defer s.ClearTracks(ctx, userId)
	//
	var wg sync.WaitGroup
	errs := make([]error, 2*CountLimit)
	for i := 0; i < 2*CountLimit; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.UpsertTrack(ctx, userId, fmt.Sprintf("att%d", i), 10)
		}(i)
	}
	wg.Wait()
	var countFailed int
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, ErrCapacityExceeded)
			countFailed++
		}
	}
	assert.Equal(t, CountLimit, countFailed)
	tracks, err := s.ListTracks(ctx, userId)
	require.Nil(t, err)
	assert.Len(t, tracks, CountLimit)
}

func TestDecodeError(t *testing.T) {
	cases := map[string]struct {
		in  error
		out error
	}{
		"nil": {},
		"unique violation": {
			in:  &pgconn.PgError{Code: pgCodeUniqueViolation},
			out: ErrDuplicateSubscription,
		},
		"capacity": {
			in:  fmt.Errorf("%w: 25 tracks", ErrCapacityExceeded),
			out: ErrCapacityExceeded,
		},
		"timeout": {
			in:  context.DeadlineExceeded,
			out: context.DeadlineExceeded,
		},
		"other": {
			in:  errors.New("connection reset"),
			out: ErrInternal,
		},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			assert.ErrorIs(t, decodeError(c.in), c.out)
		})
	}
}
