package store

import (
	"context"

	"playlist-rater/internal/db"
	"playlist-rater/internal/game"

	"gorm.io/gorm"
)

// RateSong records the player's score for another player's song in the same
// game. A later score for the same song replaces the earlier one.
func (s *Store) RateSong(ctx context.Context, playerCode string, songID uint, score float64) error {
	if err := game.CheckRating(score); err != nil {
		return err
	}
	return s.withTx(ctx, func(tx *gorm.DB) error {
		if err := lockPlayer(tx, playerCode); err != nil {
			return err
		}
		rater, g, err := playerContext(tx, playerCode)
		if err != nil {
			return err
		}
		now := s.now()
		mutation := guardedMutation{
			stmt: `INSERT INTO ratings (song_id, player_id, score, created_at, updated_at)
				SELECT s.id, r.id, ?, ?, ? FROM songs s
				JOIN players o ON o.id = s.player_id
				JOIN players r ON r.game_id = o.game_id
				JOIN games g ON g.id = r.game_id
				WHERE s.id = ? AND r.code = ? AND g.status = ? AND o.id <> r.id
				ON CONFLICT (song_id, player_id)
				DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at`,
			args: []any{
				score, now, now,
				songID, playerCode, string(game.StatusActive),
			},
			probe:   playerExists(playerCode),
			missing: "player not found",
			explain: func(tx *gorm.DB) error {
				current, err := gameByID(tx, g.ID)
				if err != nil {
					return err
				}
				var owner db.Player
				result := tx.Model(&db.Player{}).
					Joins("JOIN songs ON songs.player_id = players.id").
					Where("songs.id = ?", songID).
					Limit(1).
					Find(&owner)
				if result.Error != nil {
					return result.Error
				}
				inGame := result.RowsAffected > 0 && owner.GameID == g.ID
				return game.RateConflict(game.Status(current.Status), inGame, inGame && owner.ID == rater.ID)
			},
		}
		_, err = mutation.apply(tx)
		return err
	})
}
