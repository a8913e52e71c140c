package store

import (
	"context"
	"fmt"

	"playlist-rater/internal/code"
	"playlist-rater/internal/db"
	"playlist-rater/internal/game"

	"gorm.io/gorm"
)

type NewGame struct {
	Name        string
	Description string
	Settings    game.Settings
}

type CreatedGame struct {
	AdminCode  string `json:"admin_code"`
	InviteCode string `json:"invite_code"`
}

// CreateGame stores a new game waiting for players.
func (s *Store) CreateGame(ctx context.Context, in NewGame) (CreatedGame, error) {
	if err := in.Settings.Validate(); err != nil {
		return CreatedGame{}, err
	}
	var created CreatedGame
	err := withCodeRetry(func() error {
		adminCode, err := code.Generate(code.Admin)
		if err != nil {
			return err
		}
		inviteCode, err := code.Generate(code.Invite)
		if err != nil {
			return err
		}
		return s.withTx(ctx, func(tx *gorm.DB) error {
			record := db.Game{
				AdminCode:           adminCode,
				InviteCode:          &inviteCode,
				Name:                in.Name,
				Description:         in.Description,
				MinSongsPerPlaylist: in.Settings.MinSongs,
				MaxSongsPerPlaylist: in.Settings.MaxSongs,
				RequirePlaylistLink: in.Settings.RequirePlaylistLink,
				Status:              string(game.StatusWaitingForPlayers),
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			created = CreatedGame{AdminCode: adminCode, InviteCode: inviteCode}
			return recordEvent(tx, record.ID, nil, EventGameCreated, eventPayload{
				GameName: record.Name,
				Status:   record.Status,
			})
		})
	})
	if err != nil {
		return CreatedGame{}, fmt.Errorf("create game: %w", err)
	}
	return created, nil
}

// CheckCode reports whether a well formed code currently grants access to
// something. Invite codes only exist while their game is recruiting.
func (s *Store) CheckCode(ctx context.Context, value string) (bool, error) {
	kind, ok := code.KindOf(value)
	if !ok {
		return false, nil
	}
	conn := s.db.WithContext(ctx)
	switch kind {
	case code.Admin:
		return exists(conn, &db.Game{}, "admin_code = ?", value)
	case code.Invite:
		return exists(conn, &db.Game{}, "invite_code = ? AND status = ?", value, string(game.StatusWaitingForPlayers))
	case code.Player:
		return exists(conn, &db.Player{}, "code = ?", value)
	}
	return false, nil
}

// Begin closes the join window and starts the rating phase.
func (s *Store) Begin(ctx context.Context, adminCode string) error {
	from := game.StatusWaitingForPlayers
	to, err := advance(from)
	if err != nil {
		return err
	}
	return s.withTx(ctx, func(tx *gorm.DB) error {
		if err := lockGameForUpdate(tx, "admin_code", adminCode); err != nil {
			return err
		}
		mutation := guardedMutation{
			stmt: `UPDATE games SET status = ?, invite_code = NULL, updated_at = ?
				WHERE admin_code = ? AND status = ?
				AND (SELECT COUNT(*) FROM players p WHERE p.game_id = games.id) >= ?`,
			args: []any{
				string(to), s.now(),
				adminCode, string(from), game.MinPlayers,
			},
			probe:   gameExists("admin_code", adminCode),
			missing: "game not found",
			explain: func(tx *gorm.DB) error {
				g, err := gameByAdminCode(tx, adminCode)
				if err != nil {
					return err
				}
				players, err := countPlayers(tx, g.ID)
				if err != nil {
					return err
				}
				return game.BeginConflict(game.Status(g.Status), players)
			},
		}
		if _, err := mutation.apply(tx); err != nil {
			return err
		}
		g, err := gameByAdminCode(tx, adminCode)
		if err != nil {
			return err
		}
		players, err := countPlayers(tx, g.ID)
		if err != nil {
			return err
		}
		return recordEvent(tx, g.ID, nil, EventGameBegun, eventPayload{
			Status:      g.Status,
			PlayerCount: players,
		})
	})
}

// End finishes a game once every song has been rated by every other player.
func (s *Store) End(ctx context.Context, adminCode string) error {
	from := game.StatusActive
	to, err := advance(from)
	if err != nil {
		return err
	}
	return s.withTx(ctx, func(tx *gorm.DB) error {
		if err := lockGameForUpdate(tx, "admin_code", adminCode); err != nil {
			return err
		}
		mutation := guardedMutation{
			stmt: `UPDATE games SET status = ?, updated_at = ?
				WHERE admin_code = ? AND status = ?
				AND (SELECT COUNT(*) FROM ratings r JOIN players rp ON rp.id = r.player_id
					WHERE rp.game_id = games.id)
				= (SELECT COUNT(*) FROM songs s JOIN players sp ON sp.id = s.player_id
					WHERE sp.game_id = games.id)
				* ((SELECT COUNT(*) FROM players p WHERE p.game_id = games.id) - 1)`,
			args: []any{
				string(to), s.now(),
				adminCode, string(from),
			},
			probe:   gameExists("admin_code", adminCode),
			missing: "game not found",
			explain: func(tx *gorm.DB) error {
				g, err := gameByAdminCode(tx, adminCode)
				if err != nil {
					return err
				}
				ratings, songs, players, err := ratingProgress(tx, g.ID)
				if err != nil {
					return err
				}
				return game.EndConflict(game.Status(g.Status), ratings, songs, players)
			},
		}
		if _, err := mutation.apply(tx); err != nil {
			return err
		}
		g, err := gameByAdminCode(tx, adminCode)
		if err != nil {
			return err
		}
		return recordEvent(tx, g.ID, nil, EventGameEnded, eventPayload{Status: g.Status})
	})
}

// advance returns the status a game moves to when it leaves from.
func advance(from game.Status) (game.Status, error) {
	next, ok := from.Next()
	if !ok {
		return "", fmt.Errorf("no status follows %s", from)
	}
	return next, nil
}

func ratingProgress(tx *gorm.DB, gameID uint) (ratings, songs, players int64, err error) {
	if ratings, err = countGameRatings(tx, gameID); err != nil {
		return
	}
	if songs, err = countGameSongs(tx, gameID); err != nil {
		return
	}
	players, err = countPlayers(tx, gameID)
	return
}

// CountByStatus returns how many games are in each status.
func (s *Store) CountByStatus(ctx context.Context) (map[game.Status]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := s.db.WithContext(ctx).
		Model(&db.Game{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := map[game.Status]int64{
		game.StatusWaitingForPlayers: 0,
		game.StatusActive:            0,
		game.StatusFinished:          0,
	}
	for _, row := range rows {
		counts[game.Status(row.Status)] = row.Count
	}
	return counts, nil
}
