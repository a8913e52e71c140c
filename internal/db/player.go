package db

import "time"

type Player struct {
	ID           uint      `gorm:"primaryKey"`
	GameID       uint      `gorm:"index;not null;uniqueIndex:idx_players_game_name"`
	Code         string    `gorm:"size:16;uniqueIndex;not null"`
	Name         string    `gorm:"size:255;not null;uniqueIndex:idx_players_game_name"`
	PlaylistLink *string   `gorm:"size:255"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
	Songs        []Song    `gorm:"constraint:OnDelete:CASCADE"`
	// Ratings given by this player.
	Ratings []Rating `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
}
