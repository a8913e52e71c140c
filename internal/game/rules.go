package game

import "strings"

// Settings are the per-game playlist rules chosen when the game is created.
type Settings struct {
	MinSongs            int
	MaxSongs            int
	RequirePlaylistLink bool
}

// Validate checks settings supplied for a new game.
func (s Settings) Validate() error {
	if s.MinSongs < MinSongsLimit || s.MinSongs > MaxSongsLimit {
		return Invalidf("min_songs_per_playlist must be between %d and %d", MinSongsLimit, MaxSongsLimit)
	}
	if s.MaxSongs < MinSongsLimit || s.MaxSongs > MaxSongsLimit {
		return Invalidf("max_songs_per_playlist must be between %d and %d", MinSongsLimit, MaxSongsLimit)
	}
	if s.MinSongs > s.MaxSongs {
		return Invalidf("min_songs_per_playlist must be less than or equal to max_songs_per_playlist")
	}
	return nil
}

// CheckSongCount rejects a playlist of n songs that falls outside the bounds.
func (s Settings) CheckSongCount(n int) error {
	if n < s.MinSongs {
		return Conflictf("a playlist needs at least %d song%s", s.MinSongs, plural(s.MinSongs))
	}
	if n > s.MaxSongs {
		return Conflictf("a playlist allows at most %d song%s", s.MaxSongs, plural(s.MaxSongs))
	}
	return nil
}

// CheckPlaylistLink rejects a missing link when the game requires one.
func (s Settings) CheckPlaylistLink(link *string) error {
	if s.RequirePlaylistLink && !HasLink(link) {
		return Conflict("a playlist link is required for this game")
	}
	return nil
}

// HasLink reports whether a playlist link was supplied.
func HasLink(link *string) bool {
	return link != nil && strings.TrimSpace(*link) != ""
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// The functions below explain why a guarded write affected no rows once the
// code behind it is known to exist.

func BeginConflict(status Status, players int64) error {
	if !CanTransition(status, StatusActive) {
		return Conflict("the game has already begun")
	}
	if !CanBegin(status, int(players)) {
		return Conflictf("at least %d players are needed to begin the game", MinPlayers)
	}
	return Conflict("the game cannot begin right now")
}

func EndConflict(status Status, ratings, songs, players int64) error {
	switch status {
	case StatusWaitingForPlayers:
		return Conflict("the game has not begun yet")
	case StatusFinished:
		return Conflict("the game has already ended")
	}
	if !CanEnd(status, ratings, songs, players) {
		if missing := RequiredRatings(songs, players) - ratings; missing > 0 {
			return Conflictf("every song must be rated by every other player before the game can end (%d rating%s missing)", missing, plural(int(missing)))
		}
	}
	return Conflict("the game cannot end right now")
}

func JoinConflict(status Status, players int64, nameTaken bool) error {
	if status != StatusWaitingForPlayers {
		return Conflict("the game is no longer accepting players")
	}
	if nameTaken {
		return Conflict("the player name is already taken in this game")
	}
	if players >= MaxPlayers {
		return Conflictf("the game already has the maximum of %d players", MaxPlayers)
	}
	return Conflict("the player cannot join right now")
}

func RemovePlayerConflict(status Status, players int64) error {
	if !CanRemovePlayer(status, int(players)) {
		return Conflictf("a game that has begun must keep at least %d players", MinPlayers)
	}
	return Conflict("the player cannot be removed right now")
}

func songsFrozen() error {
	return Conflict("playlists can no longer be changed once the game has begun")
}

func AddSongConflict(status Status, s Settings, count int64) error {
	if !status.AcceptsPlayers() {
		return songsFrozen()
	}
	if count >= int64(s.MaxSongs) {
		return Conflictf("a playlist allows at most %d song%s", s.MaxSongs, plural(s.MaxSongs))
	}
	return Conflict("the song cannot be added right now")
}

func RemoveSongConflict(status Status, s Settings, count int64, owned bool) error {
	if !status.AcceptsPlayers() {
		return songsFrozen()
	}
	if !owned {
		return Conflict("the song is not in your playlist")
	}
	if count <= int64(s.MinSongs) {
		return Conflictf("a playlist needs at least %d song%s", s.MinSongs, plural(s.MinSongs))
	}
	return Conflict("the song cannot be removed right now")
}

func ReplaceSongConflict(status Status, owned bool) error {
	if !status.AcceptsPlayers() {
		return songsFrozen()
	}
	if !owned {
		return Conflict("the song is not in your playlist")
	}
	return Conflict("the song cannot be replaced right now")
}

func PlaylistLinkConflict(status Status, s Settings, link *string) error {
	if !status.AcceptsPlayers() {
		return Conflict("the playlist link can no longer be changed once the game has begun")
	}
	if err := s.CheckPlaylistLink(link); err != nil {
		return err
	}
	return Conflict("the playlist link cannot be changed right now")
}

// UpdateInfoConflict answers Gone once the game has begun: the player's info
// is frozen for good.
func UpdateInfoConflict(status Status, nameTaken bool) error {
	if !status.AcceptsPlayers() {
		return Gone("the game has already begun")
	}
	if nameTaken {
		return Conflict("the player name is already taken in this game")
	}
	return Conflict("the player info cannot be updated right now")
}

func RateConflict(status Status, songInGame, ownSong bool) error {
	if !status.AcceptsRatings() {
		return Conflict("ratings are only accepted while the game is active")
	}
	if !songInGame {
		return Conflict("the song is not part of this game")
	}
	if ownSong {
		return Conflict("you cannot rate your own song")
	}
	return Conflict("the rating cannot be submitted right now")
}

// CheckRating rejects scores outside the allowed range.
func CheckRating(score float64) error {
	if score < MinRating || score > MaxRating {
		return Invalidf("rating must be between %g and %g", MinRating, MaxRating)
	}
	return nil
}
