package db

type Song struct {
	ID       uint     `gorm:"primaryKey"`
	PlayerID uint     `gorm:"index;not null"`
	Title    string   `gorm:"size:255;not null"`
	Artist   string   `gorm:"size:255;not null"`
	Ratings  []Rating `gorm:"constraint:OnDelete:CASCADE"`
}
