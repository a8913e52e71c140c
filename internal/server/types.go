package server

import (
	"strings"

	"playlist-rater/internal/store"
)

type adminURI struct {
	AdminCode string `uri:"admin_code" binding:"required,admin_code"`
}

type playerURI struct {
	PlayerCode string `uri:"player_code" binding:"required,player_code"`
}

type inviteURI struct {
	InviteCode string `uri:"invite_code" binding:"required,invite_code"`
}

type anyCodeURI struct {
	Code string `uri:"code" binding:"required,any_code"`
}

type songRequest struct {
	Title  string `json:"title" binding:"required,notblank,max=255"`
	Artist string `json:"artist" binding:"required,notblank,max=255"`
}

func (r songRequest) input() store.SongInput {
	return store.SongInput{
		Title:  strings.TrimSpace(r.Title),
		Artist: strings.TrimSpace(r.Artist),
	}
}

type createGameRequest struct {
	GameName            string  `json:"game_name" binding:"required,notblank,max=255"`
	GameDescription     *string `json:"game_description" binding:"omitempty,max=2500"`
	MinSongsPerPlaylist *int    `json:"min_songs_per_playlist" binding:"omitempty,min=1,max=100"`
	MaxSongsPerPlaylist *int    `json:"max_songs_per_playlist" binding:"omitempty,min=1,max=100"`
	RequirePlaylistLink *bool   `json:"require_playlist_link" binding:"required"`
}

// playerInfoRequest is the body of both join and update_info.
type playerInfoRequest struct {
	PlayerName   string        `json:"player_name" binding:"required,notblank,max=255"`
	PlaylistLink *string       `json:"playlist_link" binding:"omitempty,min=1,max=255"`
	Songs        []songRequest `json:"songs" binding:"required,min=1,max=100,dive"`
}

func (r playerInfoRequest) info() store.PlayerInfo {
	songs := make([]store.SongInput, len(r.Songs))
	for i, song := range r.Songs {
		songs[i] = song.input()
	}
	return store.PlayerInfo{
		Name:         strings.TrimSpace(r.PlayerName),
		PlaylistLink: r.PlaylistLink,
		Songs:        songs,
	}
}

type removePlayerRequest struct {
	PlayerCode string `json:"player_code" binding:"required,player_code"`
}

type addSongRequest struct {
	SongToAdd *songRequest `json:"song_to_add" binding:"required"`
}

type removeSongRequest struct {
	SongIDToRemove int64 `json:"song_id_to_remove" binding:"required,min=1,max=2147483647"`
}

type replaceSongRequest struct {
	SongIDToRemove int64        `json:"song_id_to_remove" binding:"required,min=1,max=2147483647"`
	SongToAdd      *songRequest `json:"song_to_add" binding:"required"`
}

type changePlaylistLinkRequest struct {
	PlaylistLink *string `json:"playlist_link" binding:"omitempty,min=1,max=255"`
}

type rateSongRequest struct {
	SongID int64    `json:"song_id" binding:"required,min=1,max=2147483647"`
	Rating *float64 `json:"rating" binding:"required,min=0,max=10"`
}

type eventsQuery struct {
	Page    int `form:"page" binding:"omitempty,min=1,max=1000000"`
	PerPage int `form:"per_page" binding:"omitempty,min=1"`
}

var createGameMessages = bindMessages{
	"GameName": {
		"required": "game_name is required",
		"notblank": "game_name is required",
		"max":      "game_name must be 255 characters or fewer",
	},
	"GameDescription":     {"max": "game_description must be 2500 characters or fewer"},
	"MinSongsPerPlaylist": {"*": "min_songs_per_playlist must be between 1 and 100"},
	"MaxSongsPerPlaylist": {"*": "max_songs_per_playlist must be between 1 and 100"},
	"RequirePlaylistLink": {"required": "require_playlist_link is required"},
}

var playerInfoMessages = bindMessages{
	"PlayerName": {
		"required": "player_name is required",
		"notblank": "player_name is required",
		"max":      "player_name must be 255 characters or fewer",
	},
	"PlaylistLink": {"*": "playlist_link must be between 1 and 255 characters"},
	"Songs": {
		"required": "songs are required",
		"min":      "at least one song is required",
		"max":      "at most 100 songs may be submitted",
	},
	"Title":  {"*": "song title must be between 1 and 255 characters"},
	"Artist": {"*": "song artist must be between 1 and 255 characters"},
}

var songMessages = bindMessages{
	"SongToAdd":      {"required": "song_to_add is required"},
	"SongIDToRemove": {"*": "song_id_to_remove must be a positive integer"},
	"Title":          {"*": "song title must be between 1 and 255 characters"},
	"Artist":         {"*": "song artist must be between 1 and 255 characters"},
	"PlaylistLink":   {"*": "playlist_link must be between 1 and 255 characters"},
}

var eventsQueryMessages = bindMessages{
	"Page":    {"*": "page must be between 1 and 1000000"},
	"PerPage": {"*": "per_page must be a positive integer"},
}

var rateSongMessages = bindMessages{
	"SongID": {"*": "song_id must be a positive integer"},
	"Rating": {"*": "rating must be between 0 and 10"},
}
