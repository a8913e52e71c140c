package store

import (
	"context"

	"playlist-rater/internal/code"
	"playlist-rater/internal/db"
	"playlist-rater/internal/game"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Summary is what anyone holding a code may learn about a recruiting game.
type Summary struct {
	Name                string `json:"game_name"`
	Description         string `json:"game_description"`
	MinSongsPerPlaylist int    `json:"min_songs_per_playlist"`
	MaxSongsPerPlaylist int    `json:"max_songs_per_playlist"`
	RequirePlaylistLink bool   `json:"require_playlist_link"`
}

type GameInfo struct {
	Summary
	Status string `json:"game_status"`
}

type AdminPlayer struct {
	Name         string  `json:"player_name"`
	Code         string  `json:"player_code"`
	PlaylistLink *string `json:"playlist_link"`
}

type PublicPlayer struct {
	Name         string  `json:"player_name"`
	PlaylistLink *string `json:"playlist_link"`
}

type SongEntry struct {
	SongID     uint   `json:"song_id"`
	PlayerName string `json:"player_name"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
}

type AdminRating struct {
	RaterPlayerName string  `json:"rater_player_name"`
	SongID          uint    `json:"song_id"`
	Rating          float64 `json:"rating"`
}

type PlayerRating struct {
	SongID uint    `json:"song_id"`
	Rating float64 `json:"rating"`
}

type AdminView struct {
	GameInfo
	AdminCode  string        `json:"admin_code"`
	InviteCode *string       `json:"invite_code"`
	Players    []AdminPlayer `json:"players"`
	Songs      []SongEntry   `json:"songs"`
	Ratings    []AdminRating `json:"ratings"`
}

type PlayerView struct {
	GameInfo
	PlayerName string         `json:"player_name"`
	Players    []PublicPlayer `json:"players"`
	Songs      []SongEntry    `json:"songs"`
	Ratings    []PlayerRating `json:"ratings"`
}

func summaryOf(g *db.Game) Summary {
	return Summary{
		Name:                g.Name,
		Description:         g.Description,
		MinSongsPerPlaylist: g.MinSongsPerPlaylist,
		MaxSongsPerPlaylist: g.MaxSongsPerPlaylist,
		RequirePlaylistLink: g.RequirePlaylistLink,
	}
}

func infoOf(g *db.Game) GameInfo {
	return GameInfo{Summary: summaryOf(g), Status: g.Status}
}

// Peek describes the game behind any kind of code, but only while the game is
// still recruiting. Afterwards the code reads as expired.
func (s *Store) Peek(ctx context.Context, value string) (Summary, error) {
	expired := game.NotFound("invalid or expired code")
	kind, ok := code.KindOf(value)
	if !ok {
		return Summary{}, expired
	}
	conn := s.db.WithContext(ctx)
	var (
		g   *db.Game
		err error
	)
	switch kind {
	case code.Admin:
		g, err = gameByAdminCode(conn, value)
	case code.Invite:
		g, err = gameByInviteCode(conn, value)
	case code.Player:
		var p *db.Player
		p, err = playerByCode(conn, value)
		if err == nil && p != nil {
			g, err = gameByID(conn, p.GameID)
		}
	}
	if err != nil {
		return Summary{}, err
	}
	if g == nil || !game.Status(g.Status).AcceptsPlayers() {
		return Summary{}, expired
	}
	return summaryOf(g), nil
}

func songsQuery(conn *gorm.DB, gameID uint) *gorm.DB {
	return conn.Table("songs s").
		Select("s.id AS song_id, p.name AS player_name, s.title, s.artist").
		Joins("JOIN players p ON p.id = s.player_id").
		Where("p.game_id = ?", gameID).
		Order("p.id, s.id")
}

// AdminView returns everything about the game behind an admin code.
func (s *Store) AdminView(ctx context.Context, adminCode string) (AdminView, error) {
	g, err := gameByAdminCode(s.db.WithContext(ctx), adminCode)
	if err != nil {
		return AdminView{}, err
	}
	if g == nil {
		return AdminView{}, game.NotFound("game not found")
	}
	view := AdminView{
		GameInfo:   infoOf(g),
		AdminCode:  g.AdminCode,
		InviteCode: g.InviteCode,
		Players:    []AdminPlayer{},
		Songs:      []SongEntry{},
		Ratings:    []AdminRating{},
	}
	group, gctx := errgroup.WithContext(ctx)
	conn := s.db.WithContext(gctx)
	group.Go(func() error {
		return conn.Model(&db.Player{}).
			Select("name, code, playlist_link").
			Where("game_id = ?", g.ID).
			Order("id").
			Scan(&view.Players).Error
	})
	group.Go(func() error {
		return songsQuery(conn, g.ID).Scan(&view.Songs).Error
	})
	group.Go(func() error {
		return conn.Table("ratings r").
			Select("rp.name AS rater_player_name, r.song_id, r.score AS rating").
			Joins("JOIN songs s ON s.id = r.song_id").
			Joins("JOIN players o ON o.id = s.player_id").
			Joins("JOIN players rp ON rp.id = r.player_id").
			Where("o.game_id = ?", g.ID).
			Order("o.id, s.id, rp.id").
			Scan(&view.Ratings).Error
	})
	if err := group.Wait(); err != nil {
		return AdminView{}, err
	}
	return view, nil
}

// PlayerView returns the game as seen by one player: no codes, and only the
// ratings that player gave.
func (s *Store) PlayerView(ctx context.Context, playerCode string) (PlayerView, error) {
	player, g, err := playerContext(s.db.WithContext(ctx), playerCode)
	if err != nil {
		return PlayerView{}, err
	}
	view := PlayerView{
		GameInfo:   infoOf(g),
		PlayerName: player.Name,
		Players:    []PublicPlayer{},
		Songs:      []SongEntry{},
		Ratings:    []PlayerRating{},
	}
	group, gctx := errgroup.WithContext(ctx)
	conn := s.db.WithContext(gctx)
	group.Go(func() error {
		return conn.Model(&db.Player{}).
			Select("name, playlist_link").
			Where("game_id = ?", g.ID).
			Order("id").
			Scan(&view.Players).Error
	})
	group.Go(func() error {
		return songsQuery(conn, g.ID).Scan(&view.Songs).Error
	})
	group.Go(func() error {
		return conn.Table("ratings r").
			Select("r.song_id, r.score AS rating").
			Joins("JOIN songs s ON s.id = r.song_id").
			Joins("JOIN players o ON o.id = s.player_id").
			Where("r.player_id = ?", player.ID).
			Order("o.id, s.id").
			Scan(&view.Ratings).Error
	})
	if err := group.Wait(); err != nil {
		return PlayerView{}, err
	}
	return view, nil
}
