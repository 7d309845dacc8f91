package ws

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"economic-wars/internal/config"
	"economic-wars/internal/game"
	"economic-wars/internal/room"
	"economic-wars/internal/store"
)

func testConfig() config.Config {
	return config.Config{
		AllowedOrigins:  []string{"http://localhost:5173"},
		ReconnectGrace:  time.Hour,
		RoomTTL:         time.Hour,
		SweepInterval:   time.Minute,
		SnapshotTimeout: time.Second,
		ActionRate:      100,
		ActionBurst:     100,
	}
}

func newTestServer(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	manager := room.NewManager(store.NewMemoryStore(), cfg, zap.NewNop())
	hub := NewHub(manager, cfg, zap.NewNop())
	r := gin.New()
	r.GET("/ws", hub.HandleWS)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		hub.Shutdown()
		manager.Shutdown()
		srv.Close()
	})
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string, data any) {
	t.Helper()
	if err := conn.WriteJSON(map[string]any{"type": typ, "data": data}); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

// expect reads until a message of the given type arrives.
func expect(t *testing.T, conn *websocket.Conn, typ string) map[string]any {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		var msg struct {
			Type string         `json:"type"`
			Data map[string]any `json:"data"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("waiting for %s: %v", typ, err)
		}
		if msg.Type == typ {
			return msg.Data
		}
	}
}

func TestCreateJoinStartOverWebSocket(t *testing.T) {
	srv := newTestServer(t, testConfig())
	host, guest := dial(t, srv), dial(t, srv)

	send(t, host, inCreateRoom, map[string]any{"name": "Ana", "clientId": "ana-device"})
	created := expect(t, host, room.MsgRoomCreated)
	code, _ := created["code"].(string)
	if len(code) != 5 || created["clientId"] != "ana-device" {
		t.Fatalf("unexpected room-created %v", created)
	}

	send(t, guest, inJoinRoom, map[string]any{"code": strings.ToLower(code), "name": "Budi", "clientId": "budi-device", "avatar": "3"})
	joined := expect(t, guest, room.MsgJoined)
	if players, _ := joined["players"].([]any); len(players) != 2 {
		t.Fatalf("unexpected joined %v", joined)
	}
	expect(t, host, room.MsgPlayerJoined)

	send(t, host, inStartGame, map[string]any{"mapId": "classic"})
	hostStart := expect(t, host, room.MsgGameStart)
	guestStart := expect(t, guest, room.MsgGameStart)
	if hostStart["localId"] == "" || hostStart["localId"] == guestStart["localId"] {
		t.Fatalf("game-start not personalised: %v / %v", hostStart["localId"], guestStart["localId"])
	}
	if guestStart["playerIndex"] != float64(1) {
		t.Fatalf("expected guest at seat 1, got %v", guestStart["playerIndex"])
	}

	send(t, host, inGameAction, map[string]any{"actionType": "roll-dice", "fromPlayerId": "spoofed"})
	// The first update is the one sent at start.
	var state map[string]any
	for state == nil || state["lastDice"] == nil {
		state, _ = expect(t, guest, room.MsgStateUpdate)["state"].(map[string]any)
	}
	if deck, _ := state["diplomaticDeck"].([]any); len(deck) != 0 {
		t.Fatalf("decks leaked to clients")
	}
}

func TestChatRelay(t *testing.T) {
	srv := newTestServer(t, testConfig())
	host, guest := dial(t, srv), dial(t, srv)
	send(t, host, inCreateRoom, map[string]any{"name": "Ana"})
	code := expect(t, host, room.MsgRoomCreated)["code"]
	send(t, guest, inJoinRoom, map[string]any{"code": code, "name": "Budi"})
	expect(t, guest, room.MsgJoined)

	send(t, guest, inChat, map[string]any{"text": "selamat pagi"})
	msg := expect(t, host, room.MsgChat)
	if msg["text"] != "selamat pagi" || msg["name"] != "Budi" {
		t.Fatalf("unexpected chat %v", msg)
	}
}

func TestErrorsAreReported(t *testing.T) {
	srv := newTestServer(t, testConfig())
	conn := dial(t, srv)

	cases := []struct {
		name string
		send func(t *testing.T)
		want string
	}{
		{"unknown type", func(t *testing.T) { send(t, conn, "teleport", nil) }, errUnknownType.Error()},
		{"missing room", func(t *testing.T) { send(t, conn, inJoinRoom, map[string]any{"code": "QQQQQ", "name": "Ana"}) }, room.ErrRoomNotFound.Error()},
		{"not in a room", func(t *testing.T) { send(t, conn, inGameAction, map[string]any{"actionType": "end-turn"}) }, room.ErrNotInRoom.Error()},
		{"missing space", func(t *testing.T) { send(t, conn, inGameAction, map[string]any{"actionType": "mortgage-property"}) }, errMalformed.Error()},
		{"bad field type", func(t *testing.T) { send(t, conn, inKick, map[string]any{"playerId": []int{1}}) }, errMalformed.Error()},
		{"not json", func(*testing.T) { _ = conn.WriteMessage(websocket.TextMessage, []byte("{")) }, errMalformed.Error()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.send(t)
			if got := expect(t, conn, room.MsgError)["message"]; got != tc.want {
				t.Fatalf("expected %q, got %v", tc.want, got)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.ActionRate = 0.01
	cfg.ActionBurst = 1
	srv := newTestServer(t, cfg)
	conn := dial(t, srv)

	send(t, conn, inChat, map[string]any{"text": "one"})
	if got := expect(t, conn, room.MsgError)["message"]; got != room.ErrNotInRoom.Error() {
		t.Fatalf("first message should reach the manager, got %v", got)
	}
	send(t, conn, inChat, map[string]any{"text": "two"})
	if got := expect(t, conn, room.MsgError)["message"]; got != errRateLimited.Error() {
		t.Fatalf("expected rate limit, got %v", got)
	}
}

func TestRejectsForeignOrigin(t *testing.T) {
	srv := newTestServer(t, testConfig())
	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
	if !errors.Is(err, websocket.ErrBadHandshake) {
		t.Fatalf("expected bad handshake, got %v", err)
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %+v", resp)
	}

	header = http.Header{"Origin": []string{"http://localhost:5173"}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
	if err != nil {
		t.Fatalf("allowed origin rejected: %v", err)
	}
	conn.Close()
}

func TestDecodeAction(t *testing.T) {
	cases := []struct {
		name string
		data map[string]any
		want game.Action
		err  error
	}{
		{"roll", map[string]any{"actionType": "roll-dice"}, game.RollDice{}, nil},
		{"develop from string", map[string]any{"actionType": "develop-property", "spaceId": "6"}, game.Develop{SpaceID: 6}, nil},
		{"sell from number", map[string]any{"actionType": "sell-property", "spaceId": float64(9)}, game.SellProperty{SpaceID: 9}, nil},
		{"influence", map[string]any{"actionType": "influence-action", "action": "embargo", "targetId": "p2"},
			game.UseInfluence{Kind: game.InfluenceEmbargo, TargetID: "p2"}, nil},
		{"trade", map[string]any{
			"actionType": "propose-trade",
			"partnerId":  "p2",
			"offer":      map[string]any{"giveMoney": float64(200), "getProperties": []any{float64(3), "6"}},
		}, game.ProposeTrade{PartnerID: "p2", Offer: game.Offer{GiveMoney: 200, GetProperties: []int{3, 6}}}, nil},
		{"accept", map[string]any{"actionType": "accept-trade", "tradeId": "t1"}, game.AcceptTrade{TradeID: "t1"}, nil},
		{"missing space", map[string]any{"actionType": "unmortgage-property"}, nil, errMalformed},
		{"bad space", map[string]any{"actionType": "free-upgrade", "spaceId": "six"}, nil, errMalformed},
		{"unknown", map[string]any{"actionType": "nationalise"}, nil, errUnknownAction},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeAction(tc.data)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("expected %v, got %v", tc.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %#v, got %#v", tc.want, got)
			}
		})
	}
}
