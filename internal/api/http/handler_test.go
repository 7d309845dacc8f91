package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"economic-wars/internal/config"
	"economic-wars/internal/game"
	"economic-wars/internal/room"
)

type fakeRooms struct {
	summaries map[string]room.Summary
	state     *game.State
	saved     []string
	savedErr  error
}

func (f *fakeRooms) Rooms() []room.Summary {
	out := []room.Summary{}
	for _, s := range f.summaries {
		out = append(out, s)
	}
	return out
}

func (f *fakeRooms) Summary(code string) (room.Summary, error) {
	s, ok := f.summaries[code]
	if !ok {
		return room.Summary{}, room.ErrRoomNotFound
	}
	return s, nil
}

func (f *fakeRooms) Roster(code string) (room.Roster, error) {
	if _, ok := f.summaries[code]; !ok {
		return room.Roster{}, room.ErrRoomNotFound
	}
	return room.Roster{Players: []string{"Ana", "Budi"}}, nil
}

func (f *fakeRooms) State(code string) (*game.State, error) {
	s, ok := f.summaries[code]
	if !ok {
		return nil, room.ErrRoomNotFound
	}
	if !s.Started {
		return nil, room.ErrNotStarted
	}
	return f.state, nil
}

func (f *fakeRooms) Standings(code string) ([]game.Standing, error) {
	if code == "BROKE" {
		return nil, errors.New("boom")
	}
	if _, err := f.State(code); err != nil {
		return nil, err
	}
	return []game.Standing{{PlayerID: "p1", Name: "Ana", Wealth: 9000}}, nil
}

func (f *fakeRooms) SavedGames(context.Context) ([]string, error) { return f.saved, f.savedErr }

func (f *fakeRooms) Stats() room.Stats { return room.Stats{Rooms: len(f.summaries), Sessions: 3} }

type fakeHub struct{}

func (fakeHub) Count() int               { return 4 }
func (fakeHub) HandleWS(c *gin.Context) { c.Status(http.StatusTeapot) }

func newTestRouter(rooms Rooms) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := config.Config{AllowedOrigins: []string{"http://localhost:5173"}}
	return NewRouter(rooms, fakeHub{}, cfg, zap.NewNop())
}

func get(t *testing.T, r http.Handler, path string, out any) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w, req)
	if out != nil {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s: %v (%s)", path, err, w.Body.String())
		}
	}
	return w
}

func TestRoomEndpoints(t *testing.T) {
	rooms := &fakeRooms{
		summaries: map[string]room.Summary{
			"ABCDE": {Code: "ABCDE", Started: true, Members: 2},
			"LOBBY": {Code: "LOBBY", Members: 1},
			"BROKE": {Code: "BROKE", Started: true},
		},
		state: &game.State{TurnNumber: 4},
	}
	r := newTestRouter(rooms)

	var health HealthResponse
	if w := get(t, r, "/healthz", &health); w.Code != http.StatusOK {
		t.Fatalf("healthz: %d", w.Code)
	}
	if health.Status != "ok" || health.Rooms != 3 || health.Connections != 4 {
		t.Fatalf("unexpected health %+v", health)
	}

	var list RoomListResponse
	get(t, r, "/rooms", &list)
	if len(list.Rooms) != 3 {
		t.Fatalf("expected 3 rooms, got %d", len(list.Rooms))
	}

	var one RoomResponse
	if w := get(t, r, "/rooms/abcde", &one); w.Code != http.StatusOK {
		t.Fatalf("room lookup should normalise the code, got %d", w.Code)
	}
	if one.Code != "ABCDE" || len(one.Players) != 2 {
		t.Fatalf("unexpected room %+v", one)
	}

	var state StateResponse
	if w := get(t, r, "/rooms/ABCDE/state", &state); w.Code != http.StatusOK || state.State.TurnNumber != 4 {
		t.Fatalf("unexpected state response %d %+v", w.Code, state)
	}

	var standings StandingsResponse
	get(t, r, "/rooms/ABCDE/standings", &standings)
	if len(standings.Standings) != 1 || standings.Standings[0].Wealth != 9000 {
		t.Fatalf("unexpected standings %+v", standings)
	}
}

func TestRoomEndpointErrors(t *testing.T) {
	rooms := &fakeRooms{summaries: map[string]room.Summary{
		"LOBBY": {Code: "LOBBY"},
		"BROKE": {Code: "BROKE", Started: true},
	}}
	r := newTestRouter(rooms)

	cases := []struct {
		path string
		code int
	}{
		{"/rooms/NOPE1", http.StatusNotFound},
		{"/rooms/NOPE1/state", http.StatusNotFound},
		{"/rooms/LOBBY/state", http.StatusNotFound},
		{"/rooms/LOBBY/standings", http.StatusNotFound},
		{"/rooms/BROKE/standings", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			var body ErrorResponse
			w := get(t, r, tc.path, &body)
			if w.Code != tc.code || body.Error == "" {
				t.Fatalf("expected %d with an error body, got %d %s", tc.code, w.Code, w.Body.String())
			}
		})
	}
}

func TestSnapshots(t *testing.T) {
	var list SnapshotListResponse
	get(t, newTestRouter(&fakeRooms{}), "/snapshots", &list)
	if list.Codes == nil || len(list.Codes) != 0 {
		t.Fatalf("expected an empty list, got %#v", list.Codes)
	}

	get(t, newTestRouter(&fakeRooms{saved: []string{"ABCDE"}}), "/snapshots", &list)
	if len(list.Codes) != 1 || list.Codes[0] != "ABCDE" {
		t.Fatalf("unexpected codes %v", list.Codes)
	}

	w := get(t, newTestRouter(&fakeRooms{savedErr: errors.New("redis down")}), "/snapshots", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestRulesAndCORS(t *testing.T) {
	r := newTestRouter(&fakeRooms{})
	var rules RulesResponse
	w := get(t, r, "/config/rules", &rules)
	if rules.Settings != game.DefaultSettings() || rules.MaxPlayers != 8 || len(rules.Maps) == 0 {
		t.Fatalf("unexpected rules %+v", rules)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("expected CORS header for an allowed origin, got %q", got)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected foreign origin to be refused, got %d", w.Code)
	}
}

func TestWebSocketRoute(t *testing.T) {
	w := get(t, newTestRouter(&fakeRooms{}), "/ws", nil)
	if w.Code != http.StatusTeapot {
		t.Fatalf("expected /ws to reach the hub, got %d", w.Code)
	}
}
