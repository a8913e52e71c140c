// Package store is the game repository. Every mutation runs inside a database
// transaction and is applied as a conditional write whose predicate restates
// the game rules, so the affected row count is the authoritative answer.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"playlist-rater/internal/db"
	"playlist-rater/internal/game"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// maxCodeAttempts bounds retries when a freshly generated code collides with
// an existing one.
const maxCodeAttempts = 3

type Store struct {
	db  *gorm.DB
	now func() time.Time
}

func New(conn *gorm.DB) *Store {
	return &Store{
		db:  conn,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) withTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

// withCodeRetry reruns fn while it fails on a unique violation, which is how a
// colliding generated code surfaces.
func withCodeRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		err = fn()
		if err == nil || !isUniqueViolation(err) {
			return err
		}
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// SongInput is a song submitted by a player.
type SongInput struct {
	Title  string
	Artist string
}

func normalizeLink(link *string) *string {
	if !game.HasLink(link) {
		return nil
	}
	trimmed := strings.TrimSpace(*link)
	return &trimmed
}

func settingsOf(g db.Game) game.Settings {
	return game.Settings{
		MinSongs:            g.MinSongsPerPlaylist,
		MaxSongs:            g.MaxSongsPerPlaylist,
		RequirePlaylistLink: g.RequirePlaylistLink,
	}
}
