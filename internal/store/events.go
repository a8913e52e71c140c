package store

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"playlist-rater/internal/db"
	"playlist-rater/internal/game"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EventGameCreated   = "game_created"
	EventPlayerJoined  = "player_joined"
	EventPlayerRemoved = "player_removed"
	EventPlayerUpdated = "player_updated"
	EventGameBegun     = "game_begun"
	EventGameEnded     = "game_ended"
)

type eventPayload struct {
	GameName     string  `json:"game_name,omitempty"`
	PlayerName   string  `json:"player_name,omitempty"`
	PreviousName string  `json:"previous_name,omitempty"`
	PlaylistLink *string `json:"playlist_link,omitempty"`
	Status       string  `json:"status,omitempty"`
	SongID       uint    `json:"song_id,omitempty"`
	SongCount    int     `json:"song_count,omitempty"`
	PlayerCount  int64   `json:"player_count,omitempty"`
}

// recordEvent appends to the game log inside the caller's transaction.
func recordEvent(tx *gorm.DB, gameID uint, playerID *uint, eventType string, payload eventPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := db.Event{
		GameID:   gameID,
		PlayerID: playerID,
		Type:     eventType,
		Payload:  datatypes.JSON(data),
	}
	return tx.Create(&event).Error
}

type EventEntry struct {
	Type      string          `json:"type"`
	PlayerID  *uint           `json:"player_id"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// Events returns one page of the log of the game behind an admin code,
// oldest first, along with the total number of events.
func (s *Store) Events(ctx context.Context, adminCode string, page, perPage int) ([]EventEntry, int64, error) {
	conn := s.db.WithContext(ctx)
	g, err := gameByAdminCode(conn, adminCode)
	if err != nil {
		return nil, 0, err
	}
	if g == nil {
		return nil, 0, game.NotFound("game not found")
	}
	if page < 1 {
		page = 1
	}
	var total int64
	if err := conn.Model(&db.Event{}).Where("game_id = ?", g.ID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query := conn.Where("game_id = ?", g.ID).Order("id")
	if perPage > 0 && page-1 > math.MaxInt32/perPage {
		return []EventEntry{}, total, nil
	}
	if perPage > 0 {
		query = query.Offset((page - 1) * perPage).Limit(perPage)
	}
	var rows []db.Event
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	entries := make([]EventEntry, len(rows))
	for i, row := range rows {
		entries[i] = EventEntry{
			Type:      row.Type,
			PlayerID:  row.PlayerID,
			Payload:   json.RawMessage(row.Payload),
			CreatedAt: row.CreatedAt,
		}
	}
	return entries, total, nil
}
