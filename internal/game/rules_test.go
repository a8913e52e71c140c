package game

import (
	"errors"
	"testing"
)

func TestTransitionsOnlyMoveForward(t *testing.T) {
	if !CanTransition(StatusWaitingForPlayers, StatusActive) {
		t.Fatal("expected waiting -> active")
	}
	if !CanTransition(StatusActive, StatusFinished) {
		t.Fatal("expected active -> finished")
	}
	if CanTransition(StatusWaitingForPlayers, StatusFinished) {
		t.Fatal("expected waiting -> finished to be rejected")
	}
	if CanTransition(StatusActive, StatusWaitingForPlayers) {
		t.Fatal("expected active -> waiting to be rejected")
	}
	if _, ok := StatusFinished.Next(); ok {
		t.Fatal("expected finished to be terminal")
	}
}

func TestCanBegin(t *testing.T) {
	if CanBegin(StatusWaitingForPlayers, 1) {
		t.Fatal("expected one player to be too few")
	}
	if !CanBegin(StatusWaitingForPlayers, 2) {
		t.Fatal("expected two players to be enough")
	}
	if CanBegin(StatusActive, 5) {
		t.Fatal("expected active game not to begin again")
	}
}

func TestCanEnd(t *testing.T) {
	// 3 players with 2 songs each: 6 songs, each rated by 2 others.
	if !CanEnd(StatusActive, 12, 6, 3) {
		t.Fatal("expected complete ratings to allow ending")
	}
	if CanEnd(StatusActive, 11, 6, 3) {
		t.Fatal("expected incomplete ratings to block ending")
	}
	if CanEnd(StatusWaitingForPlayers, 0, 0, 0) {
		t.Fatal("expected waiting game not to end")
	}
}

func TestCanRemovePlayer(t *testing.T) {
	if !CanRemovePlayer(StatusWaitingForPlayers, 1) {
		t.Fatal("expected removal while waiting to always be allowed")
	}
	if CanRemovePlayer(StatusActive, 2) {
		t.Fatal("expected removal leaving one player to be rejected")
	}
	if !CanRemovePlayer(StatusFinished, 3) {
		t.Fatal("expected removal leaving two players to be allowed")
	}
}

func TestSettingsValidate(t *testing.T) {
	cases := []struct {
		settings Settings
		ok       bool
	}{
		{Settings{MinSongs: 1, MaxSongs: 100}, true},
		{Settings{MinSongs: 5, MaxSongs: 5}, true},
		{Settings{MinSongs: 0, MaxSongs: 5}, false},
		{Settings{MinSongs: 1, MaxSongs: 101}, false},
		{Settings{MinSongs: 6, MaxSongs: 5}, false},
	}
	for _, tc := range cases {
		err := tc.settings.Validate()
		if (err == nil) != tc.ok || (err != nil && !errors.Is(err, ErrInvalid)) {
			t.Fatalf("Validate(%+v): expected ok=%v, got %v", tc.settings, tc.ok, err)
		}
	}
}

func TestCheckSongCount(t *testing.T) {
	s := Settings{MinSongs: 2, MaxSongs: 3}
	if err := s.CheckSongCount(1); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for too few songs, got %v", err)
	}
	if err := s.CheckSongCount(4); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for too many songs, got %v", err)
	}
	if err := s.CheckSongCount(3); err != nil {
		t.Fatalf("expected 3 songs to fit, got %v", err)
	}
}

func TestCheckPlaylistLink(t *testing.T) {
	required := Settings{MinSongs: 1, MaxSongs: 1, RequirePlaylistLink: true}
	blank := "   "
	link := "https://example.com/list"
	if err := required.CheckPlaylistLink(nil); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for missing link, got %v", err)
	}
	if err := required.CheckPlaylistLink(&blank); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for blank link, got %v", err)
	}
	if err := required.CheckPlaylistLink(&link); err != nil {
		t.Fatalf("expected link to satisfy rule, got %v", err)
	}
	optional := Settings{MinSongs: 1, MaxSongs: 1}
	if err := optional.CheckPlaylistLink(nil); err != nil {
		t.Fatalf("expected optional link to pass, got %v", err)
	}
}

func TestUpdateInfoConflictIsGoneAfterBegin(t *testing.T) {
	err := UpdateInfoConflict(StatusActive, false)
	if !errors.Is(err, ErrGone) {
		t.Fatalf("expected gone, got %v", err)
	}
	msg, ok := Message(err)
	if !ok || msg == "" {
		t.Fatalf("expected caller message, got %q", msg)
	}
	if err := UpdateInfoConflict(StatusWaitingForPlayers, true); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for taken name, got %v", err)
	}
}

func TestRateConflictOrder(t *testing.T) {
	if msg, _ := Message(RateConflict(StatusFinished, true, true)); msg != "ratings are only accepted while the game is active" {
		t.Fatalf("expected status message first, got %q", msg)
	}
	if msg, _ := Message(RateConflict(StatusActive, true, true)); msg != "you cannot rate your own song" {
		t.Fatalf("expected own song message, got %q", msg)
	}
}

func TestCheckRating(t *testing.T) {
	for _, score := range []float64{0, 7.25, 10} {
		if err := CheckRating(score); err != nil {
			t.Fatalf("expected %v to be accepted, got %v", score, err)
		}
	}
	for _, score := range []float64{-0.25, 10.5} {
		if err := CheckRating(score); err == nil {
			t.Fatalf("expected %v to be rejected", score)
		}
	}
}
