package db

import "time"

// Rating is one player's score for another player's song. PlayerID is the
// rater.
type Rating struct {
	ID        uint      `gorm:"primaryKey"`
	SongID    uint      `gorm:"not null;uniqueIndex:idx_ratings_song_player"`
	PlayerID  uint      `gorm:"index;not null;uniqueIndex:idx_ratings_song_player"`
	Score     float64   `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
