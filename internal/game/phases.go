// Package game holds the rules of a song rating game: its statuses, the legal
// transitions between them, and the limits every mutation must respect. The
// store enforces these rules inside conditional writes; this package decides
// what the rules are and how a rejected write is explained to the caller.
package game

// Status is the lifecycle stage of a game.
type Status string

const (
	StatusWaitingForPlayers Status = "waiting_for_players"
	StatusActive            Status = "active"
	StatusFinished          Status = "finished"
)

const (
	MinPlayers = 2
	MaxPlayers = 50

	MinSongsLimit = 1
	MaxSongsLimit = 100

	MinRating = 0.0
	MaxRating = 10.0
)

var transitions = map[Status]Status{
	StatusWaitingForPlayers: StatusActive,
	StatusActive:            StatusFinished,
}

// Next returns the status that follows s, if any.
func (s Status) Next() (Status, bool) {
	next, ok := transitions[s]
	return next, ok
}

// CanTransition reports whether a game may move directly from one status to
// another. Statuses only move forward, one step at a time.
func CanTransition(from, to Status) bool {
	next, ok := from.Next()
	return ok && next == to
}

// AcceptsPlayers reports whether players may join or edit their playlists.
func (s Status) AcceptsPlayers() bool {
	return s == StatusWaitingForPlayers
}

// AcceptsRatings reports whether ratings may be submitted.
func (s Status) AcceptsRatings() bool {
	return s == StatusActive
}

// CanRemovePlayer reports whether one of playerCount players may be removed.
func CanRemovePlayer(status Status, playerCount int) bool {
	if status == StatusWaitingForPlayers {
		return true
	}
	return playerCount-1 >= MinPlayers
}

// CanBegin reports whether a game may move to active.
func CanBegin(status Status, playerCount int) bool {
	return CanTransition(status, StatusActive) && playerCount >= MinPlayers
}

// CanEnd reports whether a game may move to finished: every song has been
// rated by every player other than its owner.
func CanEnd(status Status, ratings, songs, players int64) bool {
	return CanTransition(status, StatusFinished) && ratings == RequiredRatings(songs, players)
}

// RequiredRatings is the number of ratings a finished game holds.
func RequiredRatings(songs, players int64) int64 {
	if players < 1 {
		return 0
	}
	return songs * (players - 1)
}
