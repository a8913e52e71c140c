package store

import (
	"context"

	"playlist-rater/internal/code"
	"playlist-rater/internal/db"
	"playlist-rater/internal/game"

	"gorm.io/gorm"
)

// PlayerInfo is everything a player supplies when joining or when replacing
// their details wholesale.
type PlayerInfo struct {
	Name         string
	PlaylistLink *string
	Songs        []SongInput
}

// Join adds a player and their playlist to a game that is still recruiting.
// The player and every song are inserted together or not at all.
func (s *Store) Join(ctx context.Context, inviteCode string, info PlayerInfo) (string, error) {
	link := normalizeLink(info.PlaylistLink)
	var playerCode string
	err := withCodeRetry(func() error {
		generated, err := code.Generate(code.Player)
		if err != nil {
			return err
		}
		return s.withTx(ctx, func(tx *gorm.DB) error {
			if err := lockGameForUpdate(tx, "invite_code", inviteCode); err != nil {
				return err
			}
			g, err := gameByInviteCode(tx, inviteCode)
			if err != nil {
				return err
			}
			if g == nil {
				return game.NotFound("invalid or expired invite code")
			}
			settings := settingsOf(*g)
			if err := settings.CheckPlaylistLink(link); err != nil {
				return err
			}
			if err := settings.CheckSongCount(len(info.Songs)); err != nil {
				return err
			}
			now := s.now()
			mutation := guardedMutation{
				stmt: `INSERT INTO players (game_id, code, name, playlist_link, created_at, updated_at)
					SELECT g.id, ?, ?, ?, ?, ? FROM games g
					WHERE g.invite_code = ? AND g.status = ?
					AND (SELECT COUNT(*) FROM players p WHERE p.game_id = g.id) < ?
					AND NOT EXISTS (SELECT 1 FROM players p WHERE p.game_id = g.id AND p.name = ?)`,
				args: []any{
					generated, info.Name, link, now, now,
					inviteCode, string(game.StatusWaitingForPlayers), game.MaxPlayers, info.Name,
				},
				probe:   gameExists("invite_code", inviteCode),
				missing: "invalid or expired invite code",
				explain: func(tx *gorm.DB) error {
					players, err := countPlayers(tx, g.ID)
					if err != nil {
						return err
					}
					taken, err := nameTaken(tx, g.ID, info.Name, 0)
					if err != nil {
						return err
					}
					current, err := gameByID(tx, g.ID)
					if err != nil {
						return err
					}
					return game.JoinConflict(game.Status(current.Status), players, taken)
				},
			}
			if _, err := mutation.apply(tx); err != nil {
				return err
			}
			player, err := playerByCode(tx, generated)
			if err != nil {
				return err
			}
			if _, err := insertSongs(tx, player.ID, info.Songs); err != nil {
				return err
			}
			playerCode = generated
			return recordEvent(tx, g.ID, &player.ID, EventPlayerJoined, eventPayload{
				PlayerName:   player.Name,
				PlaylistLink: link,
				SongCount:    len(info.Songs),
			})
		})
	})
	if err != nil {
		return "", err
	}
	return playerCode, nil
}

// RemovePlayer deletes a player from the admin's game. Their songs and every
// rating they gave or received go with them.
func (s *Store) RemovePlayer(ctx context.Context, adminCode, playerCode string) error {
	return s.withTx(ctx, func(tx *gorm.DB) error {
		if err := lockGameForUpdate(tx, "admin_code", adminCode); err != nil {
			return err
		}
		target, err := playerByCode(tx, playerCode)
		if err != nil {
			return err
		}
		mutation := guardedMutation{
			stmt: `DELETE FROM players WHERE code = ? AND game_id IN (
					SELECT g.id FROM games g WHERE g.admin_code = ?
					AND (g.status = ? OR (SELECT COUNT(*) FROM players p WHERE p.game_id = g.id) > ?))`,
			args: []any{
				playerCode, adminCode, string(game.StatusWaitingForPlayers), game.MinPlayers,
			},
			probe:   gameExists("admin_code", adminCode),
			missing: "game not found",
			explain: func(tx *gorm.DB) error {
				g, err := gameByAdminCode(tx, adminCode)
				if err != nil {
					return err
				}
				if target == nil || target.GameID != g.ID {
					return game.NotFound("player not found in this game")
				}
				players, err := countPlayers(tx, g.ID)
				if err != nil {
					return err
				}
				return game.RemovePlayerConflict(game.Status(g.Status), players)
			},
		}
		if _, err := mutation.apply(tx); err != nil {
			return err
		}
		return recordEvent(tx, target.GameID, &target.ID, EventPlayerRemoved, eventPayload{
			PlayerName: target.Name,
		})
	})
}

// ChangePlaylistLink sets or clears a player's playlist link while the game
// is recruiting.
func (s *Store) ChangePlaylistLink(ctx context.Context, playerCode string, link *string) error {
	link = normalizeLink(link)
	return s.withTx(ctx, func(tx *gorm.DB) error {
		if err := lockPlayer(tx, playerCode); err != nil {
			return err
		}
		player, g, err := playerContext(tx, playerCode)
		if err != nil {
			return err
		}
		mutation := guardedMutation{
			stmt: `UPDATE players SET playlist_link = ?, updated_at = ?
				WHERE code = ? AND EXISTS (
					SELECT 1 FROM games g WHERE g.id = players.game_id AND g.status = ?
					AND (NOT g.require_playlist_link OR ?))`,
			args: []any{
				link, s.now(),
				playerCode, string(game.StatusWaitingForPlayers), link != nil,
			},
			probe:   playerExists(playerCode),
			missing: "player not found",
			explain: func(tx *gorm.DB) error {
				current, err := gameByID(tx, g.ID)
				if err != nil {
					return err
				}
				return game.PlaylistLinkConflict(game.Status(current.Status), settingsOf(*current), link)
			},
		}
		if _, err := mutation.apply(tx); err != nil {
			return err
		}
		return recordEvent(tx, g.ID, &player.ID, EventPlayerUpdated, eventPayload{
			PlayerName:   player.Name,
			PlaylistLink: link,
		})
	})
}

// UpdateInfo replaces a player's name, link and whole playlist at once. It
// returns the player's code, which does not change.
func (s *Store) UpdateInfo(ctx context.Context, playerCode string, info PlayerInfo) (string, error) {
	link := normalizeLink(info.PlaylistLink)
	err := s.withTx(ctx, func(tx *gorm.DB) error {
		if err := lockPlayer(tx, playerCode); err != nil {
			return err
		}
		player, g, err := playerContext(tx, playerCode)
		if err != nil {
			return err
		}
		if !game.Status(g.Status).AcceptsPlayers() {
			return game.UpdateInfoConflict(game.Status(g.Status), false)
		}
		settings := settingsOf(*g)
		if err := settings.CheckPlaylistLink(link); err != nil {
			return err
		}
		if err := settings.CheckSongCount(len(info.Songs)); err != nil {
			return err
		}
		mutation := guardedMutation{
			stmt: `UPDATE players SET name = ?, playlist_link = ?, updated_at = ?
				WHERE code = ? AND EXISTS (
					SELECT 1 FROM games g WHERE g.id = players.game_id AND g.status = ?
					AND (NOT g.require_playlist_link OR ?))
				AND NOT EXISTS (
					SELECT 1 FROM players o WHERE o.game_id = players.game_id
					AND o.name = ? AND o.id <> players.id)`,
			args: []any{
				info.Name, link, s.now(),
				playerCode, string(game.StatusWaitingForPlayers), link != nil,
				info.Name,
			},
			probe:   playerExists(playerCode),
			missing: "player not found",
			explain: func(tx *gorm.DB) error {
				current, err := gameByID(tx, g.ID)
				if err != nil {
					return err
				}
				taken, err := nameTaken(tx, g.ID, info.Name, player.ID)
				if err != nil {
					return err
				}
				return game.UpdateInfoConflict(game.Status(current.Status), taken)
			},
		}
		if _, err := mutation.apply(tx); err != nil {
			return err
		}
		if err := tx.Where("player_id = ?", player.ID).Delete(&db.Song{}).Error; err != nil {
			return err
		}
		if _, err := insertSongs(tx, player.ID, info.Songs); err != nil {
			return err
		}
		return recordEvent(tx, g.ID, &player.ID, EventPlayerUpdated, eventPayload{
			PlayerName:   info.Name,
			PreviousName: player.Name,
			PlaylistLink: link,
			SongCount:    len(info.Songs),
		})
	})
	if err != nil {
		return "", err
	}
	return playerCode, nil
}
