package db

import "time"

type Game struct {
	ID                  uint      `gorm:"primaryKey"`
	AdminCode           string    `gorm:"size:16;uniqueIndex;not null"`
	InviteCode          *string   `gorm:"size:16;uniqueIndex"`
	Name                string    `gorm:"size:255;not null"`
	Description         string    `gorm:"size:2500;not null;default:''"`
	MinSongsPerPlaylist int       `gorm:"not null;default:1"`
	MaxSongsPerPlaylist int       `gorm:"not null;default:100"`
	RequirePlaylistLink bool      `gorm:"not null;default:false"`
	Status              string    `gorm:"size:32;not null;index"`
	CreatedAt           time.Time `gorm:"not null"`
	UpdatedAt           time.Time `gorm:"not null"`
	Players             []Player  `gorm:"constraint:OnDelete:CASCADE"`
	Events              []Event   `gorm:"constraint:OnDelete:CASCADE"`
}
