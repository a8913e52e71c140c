package store

import (
	"context"

	"playlist-rater/internal/db"
	"playlist-rater/internal/game"

	"gorm.io/gorm"
)

// songConflict loads what the song explainers need: the game's current state,
// the player's song count and whether songID is one of the player's songs.
func songConflict(tx *gorm.DB, player *db.Player, songID uint) (*db.Game, int64, bool, error) {
	g, err := gameByID(tx, player.GameID)
	if err != nil {
		return nil, 0, false, err
	}
	count, err := countSongs(tx, player.ID)
	if err != nil {
		return nil, 0, false, err
	}
	owned := false
	if songID != 0 {
		owned, err = exists(tx, &db.Song{}, "id = ? AND player_id = ?", songID, player.ID)
		if err != nil {
			return nil, 0, false, err
		}
	}
	return g, count, owned, nil
}

// AddSong appends a song to the player's playlist and returns its id.
func (s *Store) AddSong(ctx context.Context, playerCode string, song SongInput) (uint, error) {
	var songID uint
	err := s.withTx(ctx, func(tx *gorm.DB) error {
		if err := lockPlayer(tx, playerCode); err != nil {
			return err
		}
		player, _, err := playerContext(tx, playerCode)
		if err != nil {
			return err
		}
		mutation := guardedMutation{
			stmt: `INSERT INTO songs (player_id, title, artist)
				SELECT p.id, ?, ? FROM players p JOIN games g ON g.id = p.game_id
				WHERE p.code = ? AND g.status = ?
				AND (SELECT COUNT(*) FROM songs s WHERE s.player_id = p.id) < g.max_songs_per_playlist`,
			args: []any{
				song.Title, song.Artist,
				playerCode, string(game.StatusWaitingForPlayers),
			},
			probe:   playerExists(playerCode),
			missing: "player not found",
			explain: func(tx *gorm.DB) error {
				g, count, _, err := songConflict(tx, player, 0)
				if err != nil {
					return err
				}
				return game.AddSongConflict(game.Status(g.Status), settingsOf(*g), count)
			},
		}
		if _, err := mutation.apply(tx); err != nil {
			return err
		}
		var latest db.Song
		if err := tx.Where("player_id = ?", player.ID).Order("id DESC").First(&latest).Error; err != nil {
			return err
		}
		songID = latest.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return songID, nil
}

// RemoveSong deletes one of the player's songs, keeping the playlist at or
// above the game's minimum.
func (s *Store) RemoveSong(ctx context.Context, playerCode string, songID uint) error {
	return s.withTx(ctx, func(tx *gorm.DB) error {
		if err := lockPlayer(tx, playerCode); err != nil {
			return err
		}
		player, _, err := playerContext(tx, playerCode)
		if err != nil {
			return err
		}
		mutation := guardedMutation{
			stmt: `DELETE FROM songs WHERE id = ? AND player_id IN (
					SELECT p.id FROM players p JOIN games g ON g.id = p.game_id
					WHERE p.code = ? AND g.status = ?
					AND (SELECT COUNT(*) FROM songs s WHERE s.player_id = p.id) > g.min_songs_per_playlist)`,
			args: []any{
				songID, playerCode, string(game.StatusWaitingForPlayers),
			},
			probe:   playerExists(playerCode),
			missing: "player not found",
			explain: func(tx *gorm.DB) error {
				g, count, owned, err := songConflict(tx, player, songID)
				if err != nil {
					return err
				}
				return game.RemoveSongConflict(game.Status(g.Status), settingsOf(*g), count, owned)
			},
		}
		_, err = mutation.apply(tx)
		return err
	})
}

// ReplaceSong swaps one of the player's songs for a new one. The new song
// gets a new id and goes to the end of the playlist.
func (s *Store) ReplaceSong(ctx context.Context, playerCode string, songID uint, song SongInput) (uint, error) {
	var newID uint
	err := s.withTx(ctx, func(tx *gorm.DB) error {
		if err := lockPlayer(tx, playerCode); err != nil {
			return err
		}
		player, _, err := playerContext(tx, playerCode)
		if err != nil {
			return err
		}
		mutation := guardedMutation{
			stmt: `DELETE FROM songs WHERE id = ? AND player_id IN (
					SELECT p.id FROM players p JOIN games g ON g.id = p.game_id
					WHERE p.code = ? AND g.status = ?)`,
			args: []any{
				songID, playerCode, string(game.StatusWaitingForPlayers),
			},
			probe:   playerExists(playerCode),
			missing: "player not found",
			explain: func(tx *gorm.DB) error {
				g, _, owned, err := songConflict(tx, player, songID)
				if err != nil {
					return err
				}
				return game.ReplaceSongConflict(game.Status(g.Status), owned)
			},
		}
		if _, err := mutation.apply(tx); err != nil {
			return err
		}
		ids, err := insertSongs(tx, player.ID, []SongInput{song})
		if err != nil {
			return err
		}
		newID = ids[0]
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newID, nil
}
