package storage

import (
	"context"
	"errors"
	"fmt"
	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/themeparkify/bot-telegram/config"
	"github.com/themeparkify/bot-telegram/storage/migrations"
	"log/slog"
	"time"
)

type storagePg struct {
	pool *pgxpool.Pool
}

const pgCodeUniqueViolation = "23505"
const backOffInit = 500 * time.Millisecond

// lockUser serializes the check-then-insert sequences of a single user until the transaction ends.
const lockUser = `SELECT pg_advisory_xact_lock(@user_id)`

func NewStorage(ctx context.Context, cfgDb config.DbConfig, log *slog.Logger) (s Storage, err error) {
	var pool *pgxpool.Pool
	pool, err = pgxpool.New(ctx, cfgDb.Uri)
	if err == nil {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = backOffInit
		b.MaxElapsedTime = cfgDb.Conn.RetryMax
		err = backoff.RetryNotify(
			func() error {
				return pool.Ping(ctx)
			},
			backoff.WithContext(b, ctx),
			func(err error, d time.Duration) {
				log.Warn(fmt.Sprintf("Failed to connect the database, cause: %s, retrying in %s...", err, d))
			},
		)
		if err != nil {
			pool.Close()
		}
	}
	if err == nil && cfgDb.Migrate {
		var results []*goose.MigrationResult
		results, err = Migrate(ctx, pool)
		for _, r := range results {
			log.Info(fmt.Sprintf("Applied migration %s", r))
		}
		if err != nil {
			pool.Close()
		}
	}
	if err == nil {
		s = storagePg{
			pool: pool,
		}
	}
	err = decodeError(err)
	return
}

// Migrate applies the pending embedded migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool) (results []*goose.MigrationResult, err error) {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	var provider *goose.Provider
	provider, err = goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err == nil {
		results, err = provider.Up(ctx)
	}
	return
}

func (sp storagePg) Close() error {
	sp.pool.Close()
	return nil
}

func (sp storagePg) Ping(ctx context.Context) (err error) {
	err = decodeError(sp.pool.Ping(ctx))
	return
}

func (sp storagePg) ListAllTracks(ctx context.Context) (tracks []Track, err error) {
	const q = `
		SELECT user_id, attraction_id, wait_threshold, reached_threshold
		FROM tracks
		ORDER BY seq`
	tracks, err = sp.listTracks(ctx, q, nil)
	return
}

func (sp storagePg) ListTracks(ctx context.Context, userId int64) (tracks []Track, err error) {
	const q = `
		SELECT user_id, attraction_id, wait_threshold, reached_threshold
		FROM tracks
		WHERE user_id = @user_id
		ORDER BY seq`
	tracks, err = sp.listTracks(ctx, q, pgx.NamedArgs{"user_id": userId})
	return
}

func (sp storagePg) listTracks(ctx context.Context, q string, args pgx.NamedArgs) (tracks []Track, err error) {
	var queryArgs []any
	if args != nil {
		queryArgs = append(queryArgs, args)
	}
	var rows pgx.Rows
	rows, err = sp.pool.Query(ctx, q, queryArgs...)
	if err == nil {
		tracks, err = pgx.CollectRows(rows, scanTrack)
	}
	err = decodeError(err)
	return
}

func scanTrack(row pgx.CollectableRow) (t Track, err error) {
	var threshold int32
	err = row.Scan(&t.UserId, &t.AttractionId, &threshold, &t.ReachedThreshold)
	t.WaitThreshold = uint32(threshold)
	return
}

func (sp storagePg) UpsertTrack(ctx context.Context, userId int64, attractionId string, threshold uint32) (err error) {
	const qUpdate = `
		UPDATE tracks
		SET wait_threshold = @wait_threshold, reached_threshold = FALSE
		WHERE user_id = @user_id AND attraction_id = @attraction_id`
	const qCount = `SELECT count(*) FROM tracks WHERE user_id = @user_id`
	const qInsert = `
		INSERT INTO tracks (user_id, attraction_id, wait_threshold)
		VALUES (@user_id, @attraction_id, @wait_threshold)`
	args := pgx.NamedArgs{
		"user_id":        userId,
		"attraction_id":  attractionId,
		"wait_threshold": int64(threshold),
	}
	err = pgx.BeginFunc(ctx, sp.pool, func(tx pgx.Tx) (err error) {
		_, err = tx.Exec(ctx, lockUser, args)
		var tag pgconn.CommandTag
		if err == nil {
			tag, err = tx.Exec(ctx, qUpdate, args)
		}
		if err == nil && tag.RowsAffected() == 0 {
			var count int64
			err = tx.QueryRow(ctx, qCount, args).Scan(&count)
			if err == nil && count >= CountLimit {
				err = fmt.Errorf("%w: %d tracks", ErrCapacityExceeded, count)
			}
			if err == nil {
				_, err = tx.Exec(ctx, qInsert, args)
			}
		}
		return
	})
	err = decodeError(err)
	return
}

func (sp storagePg) DeleteTrack(ctx context.Context, userId int64, attractionId string) (err error) {
	const q = `DELETE FROM tracks WHERE user_id = @user_id AND attraction_id = @attraction_id`
	_, err = sp.pool.Exec(ctx, q, pgx.NamedArgs{"user_id": userId, "attraction_id": attractionId})
	err = decodeError(err)
	return
}

func (sp storagePg) ClearTracks(ctx context.Context, userId int64) (err error) {
	const q = `DELETE FROM tracks WHERE user_id = @user_id`
	_, err = sp.pool.Exec(ctx, q, pgx.NamedArgs{"user_id": userId})
	err = decodeError(err)
	return
}

func (sp storagePg) SetReached(ctx context.Context, userId int64, attractionId string, reached bool) (err error) {
	const q = `
		UPDATE tracks
		SET reached_threshold = @reached
		WHERE user_id = @user_id AND attraction_id = @attraction_id`
	_, err = sp.pool.Exec(ctx, q, pgx.NamedArgs{"user_id": userId, "attraction_id": attractionId, "reached": reached})
	err = decodeError(err)
	return
}

func (sp storagePg) ListDestinationIds(ctx context.Context, userId int64) (ids []string, err error) {
	const q = `SELECT destination_id FROM destinations WHERE user_id = @user_id ORDER BY seq`
	var rows pgx.Rows
	rows, err = sp.pool.Query(ctx, q, pgx.NamedArgs{"user_id": userId})
	if err == nil {
		ids, err = pgx.CollectRows(rows, pgx.RowTo[string])
	}
	err = decodeError(err)
	return
}

func (sp storagePg) AddDestination(ctx context.Context, userId int64, destinationId string) (err error) {
	const qExists = `SELECT EXISTS (SELECT 1 FROM destinations WHERE user_id = @user_id AND destination_id = @destination_id)`
	const qCount = `SELECT count(*) FROM destinations WHERE user_id = @user_id`
	const qInsert = `
		INSERT INTO destinations (user_id, destination_id)
		VALUES (@user_id, @destination_id)
		ON CONFLICT (user_id, destination_id) DO NOTHING`
	args := pgx.NamedArgs{
		"user_id":        userId,
		"destination_id": destinationId,
	}
	err = pgx.BeginFunc(ctx, sp.pool, func(tx pgx.Tx) (err error) {
		_, err = tx.Exec(ctx, lockUser, args)
		var exists bool
		if err == nil {
			err = tx.QueryRow(ctx, qExists, args).Scan(&exists)
		}
		if err == nil && exists {
			err = fmt.Errorf("%w: destination %s", ErrDuplicateSubscription, destinationId)
		}
		var count int64
		if err == nil {
			err = tx.QueryRow(ctx, qCount, args).Scan(&count)
		}
		if err == nil && count >= CountLimit {
			err = fmt.Errorf("%w: %d destinations", ErrCapacityExceeded, count)
		}
		var tag pgconn.CommandTag
		if err == nil {
			tag, err = tx.Exec(ctx, qInsert, args)
		}
		if err == nil && tag.RowsAffected() == 0 {
			err = fmt.Errorf("%w: destination %s", ErrDuplicateSubscription, destinationId)
		}
		return
	})
	err = decodeError(err)
	return
}

func (sp storagePg) RemoveDestination(ctx context.Context, userId int64, destinationId string) (err error) {
	const q = `DELETE FROM destinations WHERE user_id = @user_id AND destination_id = @destination_id`
	_, err = sp.pool.Exec(ctx, q, pgx.NamedArgs{"user_id": userId, "destination_id": destinationId})
	err = decodeError(err)
	return
}

func (sp storagePg) ClearDestinations(ctx context.Context, userId int64) (err error) {
	const q = `DELETE FROM destinations WHERE user_id = @user_id`
	_, err = sp.pool.Exec(ctx, q, pgx.NamedArgs{"user_id": userId})
	err = decodeError(err)
	return
}

func decodeError(src error) (dst error) {
	var errPg *pgconn.PgError
	switch {
	case src == nil:
	case errors.Is(src, ErrCapacityExceeded), errors.Is(src, ErrDuplicateSubscription), errors.Is(src, ErrInternal):
		dst = src
	case errors.Is(src, context.Canceled), errors.Is(src, context.DeadlineExceeded):
		dst = src
	case errors.As(src, &errPg) && errPg.Code == pgCodeUniqueViolation:
		dst = fmt.Errorf("%w: %s", ErrDuplicateSubscription, src)
	default:
		dst = fmt.Errorf("%w: %s", ErrInternal, src)
	}
	return
}
