package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/midnighthunt/hunt-server-go/internal/game"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := zaptest.NewLogger(t)
	srv := New(logger, game.NewEngine(logger), NewHub(logger), nil, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func createGame(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp := postJSON(t, ts.URL+"/games", map[string]any{
		"players": []map[string]any{
			{"name": "ada"}, {"name": "ben"}, {"name": "cleo"}, {"name": "dara"},
		},
		"seed": 11,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create game returned %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body["game_id"] == "" {
		t.Fatal("missing game_id")
	}
	return body["game_id"]
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestCreateAndSnapshot(t *testing.T) {
	ts := newTestServer(t)
	gameID := createGame(t, ts)

	resp, err := http.Get(fmt.Sprintf("%s/games/%s", ts.URL, gameID))
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var view game.SnapshotView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if view.Turn != 1 || view.Phase != "MOVEMENT" {
		t.Errorf("unexpected opening state: turn=%d phase=%s", view.Turn, view.Phase)
	}
	if len(view.Players) != 4 {
		t.Errorf("expected 4 players, got %d", len(view.Players))
	}
	for _, p := range view.Players {
		if p.Character != "" || p.Faction != "" {
			t.Errorf("player %d identity leaked over the wire", p.ID)
		}
	}
}

func TestCreateGameRejectsBadCount(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/games", map[string]any{
		"players": []map[string]any{{"name": "solo"}},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestActionRouting(t *testing.T) {
	ts := newTestServer(t)
	gameID := createGame(t, ts)
	actions := ts.URL + "/games/" + gameID + "/actions"

	// Off-turn actions surface as conflicts.
	resp := postJSON(t, actions, map[string]any{"action": "roll_movement", "player_id": 2})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("off-turn roll: expected 409, got %d", resp.StatusCode)
	}

	resp = postJSON(t, actions, map[string]any{"action": "roll_movement", "player_id": 0})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("roll: expected 200, got %d", resp.StatusCode)
	}

	resp = postJSON(t, actions, map[string]any{"action": "attack", "player_id": 0})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("attack without target: expected 400, got %d", resp.StatusCode)
	}

	resp = postJSON(t, actions, map[string]any{"action": "somersault", "player_id": 0})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown action: expected 400, got %d", resp.StatusCode)
	}

	resp = postJSON(t, actions, map[string]any{"action": "end_turn", "player_id": 0})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("end turn: expected 200, got %d", resp.StatusCode)
	}
}

func TestDiscardEquipmentRouting(t *testing.T) {
	ts := newTestServer(t)
	gameID := createGame(t, ts)
	actions := ts.URL + "/games/" + gameID + "/actions"

	resp := postJSON(t, actions, map[string]any{"action": "discard_equipment", "player_id": 0})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("discard without card_id: expected 400, got %d", resp.StatusCode)
	}

	resp = postJSON(t, actions, map[string]any{
		"action": "discard_equipment", "player_id": 0, "card_id": "ghost",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("discard of unheld card: expected 409, got %d", resp.StatusCode)
	}
}

func TestResultsWithoutRepository(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/results")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 without persistence, got %d", resp.StatusCode)
	}
}

func TestActionUnknownGame(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/games/ghost/actions", map[string]any{
		"action": "end_turn", "player_id": 0,
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}
