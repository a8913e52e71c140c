package store

import (
	"playlist-rater/internal/db"
	"playlist-rater/internal/game"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// guardedMutation is a single conditional statement whose WHERE clause
// restates every rule the write depends on. When it affects no rows the probe
// decides between not-found and a conflict, and explain describes the
// conflict from the current state.
type guardedMutation struct {
	stmt    string
	args    []any
	probe   func(tx *gorm.DB) (bool, error)
	missing string
	explain func(tx *gorm.DB) error
}

func (m guardedMutation) apply(tx *gorm.DB) (int64, error) {
	result := tx.Exec(m.stmt, m.args...)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		return result.RowsAffected, nil
	}
	found, err := m.probe(tx)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, game.NotFound(m.missing)
	}
	if err := m.explain(tx); err != nil {
		return 0, err
	}
	return 0, game.Conflict("the request conflicts with the current state of the game")
}

func exists(tx *gorm.DB, model any, query string, args ...any) (bool, error) {
	var count int64
	if err := tx.Model(model).Where(query, args...).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func gameExists(column, code string) func(tx *gorm.DB) (bool, error) {
	return func(tx *gorm.DB) (bool, error) {
		return exists(tx, &db.Game{}, column+" = ?", code)
	}
}

func playerExists(code string) func(tx *gorm.DB) (bool, error) {
	return func(tx *gorm.DB) (bool, error) {
		return exists(tx, &db.Player{}, "code = ?", code)
	}
}

// lockRows takes a row lock on the rows matching query. SQLite has no row
// locks and serialises writers on its own, so the lock is skipped there.
func lockRows(tx *gorm.DB, model any, strength, query string, args ...any) error {
	if tx.Dialector.Name() == "sqlite" {
		return nil
	}
	var ids []uint
	return tx.Model(model).
		Clauses(clause.Locking{Strength: strength}).
		Where(query, args...).
		Pluck("id", &ids).Error
}

func lockGameForUpdate(tx *gorm.DB, column, code string) error {
	return lockRows(tx, &db.Game{}, clause.LockingStrengthUpdate, column+" = ?", code)
}

// lockPlayer locks the player's game for share and then the player for
// update. Games are always locked before players.
func lockPlayer(tx *gorm.DB, code string) error {
	if err := lockRows(tx, &db.Game{}, clause.LockingStrengthShare,
		"id = (SELECT game_id FROM players WHERE code = ?)", code); err != nil {
		return err
	}
	return lockRows(tx, &db.Player{}, clause.LockingStrengthUpdate, "code = ?", code)
}

func findGame(tx *gorm.DB, column, code string) (*db.Game, error) {
	var g db.Game
	result := tx.Where(column+" = ?", code).Limit(1).Find(&g)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &g, nil
}

func gameByAdminCode(tx *gorm.DB, code string) (*db.Game, error) {
	return findGame(tx, "admin_code", code)
}

func gameByInviteCode(tx *gorm.DB, code string) (*db.Game, error) {
	return findGame(tx, "invite_code", code)
}

func gameByID(tx *gorm.DB, id uint) (*db.Game, error) {
	var g db.Game
	if err := tx.First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func playerByCode(tx *gorm.DB, code string) (*db.Player, error) {
	var p db.Player
	result := tx.Where("code = ?", code).Limit(1).Find(&p)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &p, nil
}

// playerContext resolves a player code to the player and its game.
func playerContext(tx *gorm.DB, code string) (*db.Player, *db.Game, error) {
	p, err := playerByCode(tx, code)
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		return nil, nil, game.NotFound("player not found")
	}
	g, err := gameByID(tx, p.GameID)
	if err != nil {
		return nil, nil, err
	}
	return p, g, nil
}

func countPlayers(tx *gorm.DB, gameID uint) (int64, error) {
	var count int64
	err := tx.Model(&db.Player{}).Where("game_id = ?", gameID).Count(&count).Error
	return count, err
}

func countSongs(tx *gorm.DB, playerID uint) (int64, error) {
	var count int64
	err := tx.Model(&db.Song{}).Where("player_id = ?", playerID).Count(&count).Error
	return count, err
}

func countGameSongs(tx *gorm.DB, gameID uint) (int64, error) {
	var count int64
	err := tx.Model(&db.Song{}).
		Joins("JOIN players ON players.id = songs.player_id").
		Where("players.game_id = ?", gameID).
		Count(&count).Error
	return count, err
}

func countGameRatings(tx *gorm.DB, gameID uint) (int64, error) {
	var count int64
	err := tx.Model(&db.Rating{}).
		Joins("JOIN players ON players.id = ratings.player_id").
		Where("players.game_id = ?", gameID).
		Count(&count).Error
	return count, err
}

func nameTaken(tx *gorm.DB, gameID uint, name string, exceptPlayerID uint) (bool, error) {
	return exists(tx, &db.Player{}, "game_id = ? AND name = ? AND id <> ?", gameID, name, exceptPlayerID)
}

// insertSongs adds every song for one player in a single multi-row INSERT and
// returns the new ids in input order.
func insertSongs(tx *gorm.DB, playerID uint, songs []SongInput) ([]uint, error) {
	if len(songs) == 0 {
		return nil, nil
	}
	rows := make([]db.Song, len(songs))
	for i, song := range songs {
		rows[i] = db.Song{PlayerID: playerID, Title: song.Title, Artist: song.Artist}
	}
	if err := tx.Create(&rows).Error; err != nil {
		return nil, err
	}
	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids, nil
}
