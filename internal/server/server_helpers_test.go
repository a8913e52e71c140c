package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func createGame(t *testing.T, ts *httptest.Server, payload map[string]any) (string, string) {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/game/new", payload)
	expectStatus(t, resp, http.StatusCreated)
	body := decodeBody(t, resp)
	assertString(t, body["admin_code"])
	assertString(t, body["invite_code"])
	return body["admin_code"].(string), body["invite_code"].(string)
}

func simpleGame(t *testing.T, ts *httptest.Server, minSongs, maxSongs int) (string, string) {
	t.Helper()
	return createGame(t, ts, map[string]any{
		"game_name":              "Road trip",
		"min_songs_per_playlist": minSongs,
		"max_songs_per_playlist": maxSongs,
		"require_playlist_link":  false,
	})
}

func songList(titles ...string) []map[string]string {
	out := make([]map[string]string, len(titles))
	for i, title := range titles {
		out[i] = map[string]string{"title": title, "artist": "Artist " + title}
	}
	return out
}

func joinPlayer(t *testing.T, ts *httptest.Server, inviteCode, name string, titles ...string) string {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/game/join/"+inviteCode, map[string]any{
		"player_name": name,
		"songs":       songList(titles...),
	})
	expectStatus(t, resp, http.StatusCreated)
	body := decodeBody(t, resp)
	assertString(t, body["player_code"])
	return body["player_code"].(string)
}

func adminReview(t *testing.T, ts *httptest.Server, adminCode string) map[string]any {
	t.Helper()
	resp := doRequest(t, ts, http.MethodGet, "/admin/review/"+adminCode, nil)
	expectStatus(t, resp, http.StatusOK)
	return decodeBody(t, resp)
}

func songIDs(t *testing.T, review map[string]any) []int {
	t.Helper()
	songs, ok := review["songs"].([]any)
	if !ok {
		t.Fatalf("expected songs list, got %T", review["songs"])
	}
	ids := make([]int, len(songs))
	for i, song := range songs {
		ids[i] = int(song.(map[string]any)["song_id"].(float64))
	}
	return ids
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func expectStatus(t *testing.T, resp *http.Response, status int) {
	t.Helper()
	if resp.StatusCode != status {
		t.Fatalf("expected status %d, got %d", status, resp.StatusCode)
	}
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func assertString(t *testing.T, value any) {
	t.Helper()
	if _, ok := value.(string); !ok {
		t.Fatalf("expected string, got %T", value)
	}
}

func assertError(t *testing.T, resp *http.Response, status int, message string) {
	t.Helper()
	expectStatus(t, resp, status)
	body := decodeBody(t, resp)
	if message != "" && body["message"] != message {
		t.Fatalf("expected message %q, got %v", message, body["message"])
	}
}

// expectCreated checks a 201 whose body carries only a confirmation message.
func expectCreated(t *testing.T, resp *http.Response, message string) {
	t.Helper()
	expectStatus(t, resp, http.StatusCreated)
	body := decodeBody(t, resp)
	if body["message"] != message {
		t.Fatalf("expected message %q, got %v", message, body["message"])
	}
}

func playerPath(action, playerCode string) string {
	return fmt.Sprintf("/player/%s/%s", action, playerCode)
}
