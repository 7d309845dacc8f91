package room

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"economic-wars/internal/catalog"
	"economic-wars/internal/config"
	"economic-wars/internal/game"
	"economic-wars/internal/store"
)

const (
	msgHostGone = "Host disconnected. The game session has ended."
	msgExpired  = "Room expired due to inactivity."
	msgRemoved  = "You were removed by the host."
)

// session records which room and seat a connection is bound to.
type session struct {
	code     string
	clientID string
}

// Manager maps room codes to rooms. Lock order is room.mu before m.mu;
// m.mu is never held while a room lock is taken.
type Manager struct {
	cfg    config.Config
	store  store.SnapshotStore
	logger *zap.Logger
	now    func() time.Time
	newRNG func() game.Randomizer

	mu       sync.RWMutex
	rooms    map[string]*Room
	sessions map[string]session
}

type Option func(*Manager)

// WithClock replaces time.Now for activity tracking.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithRandomizer sets the dice and deck source for games started later.
func WithRandomizer(f func() game.Randomizer) Option {
	return func(m *Manager) { m.newRNG = f }
}

func NewManager(s store.SnapshotStore, cfg config.Config, logger *zap.Logger, opts ...Option) *Manager {
	m := &Manager{
		cfg:      cfg,
		store:    s,
		logger:   logger.Named("room"),
		now:      time.Now,
		newRNG:   game.NewRandomizer,
		rooms:    map[string]*Room{},
		sessions: map[string]session{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type CreateRequest struct {
	Name     string `json:"name"`
	ClientID string `json:"clientId"`
	Avatar   *int   `json:"avatar"`
}

type JoinRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	ClientID string `json:"clientId"`
	Avatar   *int   `json:"avatar"`
}

func avatarOf(a *int) int {
	if a == nil {
		return -1
	}
	return normalizeAvatar(*a)
}

// CreateRoom opens a lobby with conn as its creator and returns the code.
func (m *Manager) CreateRoom(conn Conn, req CreateRequest) (string, error) {
	m.Leave(conn)

	clientID := normalizeClientID(req.ClientID, conn.ID())
	seat := &Member{
		ClientID:    clientID,
		Name:        normalizeName(req.Name, "Host"),
		Avatar:      avatarOf(req.Avatar),
		Connected:   true,
		PlayerIndex: -1,
		conn:        conn,
	}

	m.mu.Lock()
	code := randCode(codeLength)
	for m.rooms[code] != nil {
		code = randCode(codeLength)
	}
	r := newRoom(code, m.now())
	r.members = []*Member{seat}
	r.creator = clientID
	m.rooms[code] = r
	m.sessions[conn.ID()] = session{code: code, clientID: clientID}
	m.mu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	m.logger.Info("room created", zap.String("room", code), zap.String("client", clientID), zap.String("name", seat.Name))
	r.sendTo(seat, MsgRoomCreated, RosterEvent{Roster: r.roster(), Code: code, ClientID: clientID})
	return code, nil
}

// JoinRoom seats conn in a lobby, or re-attaches it to the seat held by
// the same client id.
func (m *Manager) JoinRoom(conn Conn, req JoinRequest) error {
	code := NormalizeCode(req.Code)
	clientID := normalizeClientID(req.ClientID, conn.ID())

	if s, ok := m.session(conn); ok && (s.code != code || s.clientID != clientID) {
		m.Leave(conn)
	}
	r := m.room(code)
	if r == nil {
		return ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRoomNotFound
	}

	if seat := r.member(clientID); seat != nil {
		if seat.Kicked {
			return ErrKicked
		}
		m.reattach(r, seat, conn)
		return nil
	}
	if r.started() {
		return ErrGameStarted
	}
	members := r.ordered()
	if len(members) >= catalog.MaxPlayers {
		return ErrRoomFull
	}
	name := normalizeName(req.Name, "Player")
	for _, other := range members {
		if other.Name == name {
			return ErrDuplicateName
		}
	}

	seat := &Member{
		ClientID:    clientID,
		Name:        name,
		Avatar:      avatarOf(req.Avatar),
		Connected:   true,
		PlayerIndex: -1,
		conn:        conn,
	}
	r.members = append(r.members, seat)
	m.bind(conn, code, clientID)
	m.touch(r)

	m.logger.Info("player joined", zap.String("room", code), zap.String("client", clientID), zap.Int("members", len(r.ordered())))
	roster := r.roster()
	r.sendTo(seat, MsgJoined, RosterEvent{Roster: roster, ClientID: clientID})
	r.broadcast(MsgPlayerJoined, RosterEvent{Roster: roster, NewPlayer: name}, conn)
	return nil
}

func (m *Manager) reattach(r *Room, seat *Member, conn Conn) {
	if old := seat.conn; old != nil && old != conn {
		m.unbind(old)
		old.Close()
	}
	seat.conn = conn
	seat.Connected = true
	m.bind(conn, r.Code, seat.ClientID)
	m.touch(r)
	if seat.ClientID == r.creator {
		m.stopGrace(r)
	}

	m.logger.Info("player rejoined", zap.String("room", r.Code), zap.String("client", seat.ClientID))
	r.sendTo(seat, MsgJoined, RosterEvent{Roster: r.roster(), ClientID: seat.ClientID, Rejoined: true})
	if r.started() {
		if seat.PlayerID != "" {
			r.engine.SetConnected(seat.PlayerID, true)
		}
		r.sendTo(seat, MsgGameStart, GameStart{
			State:       r.engine.State().Stripped(),
			LocalID:     seat.PlayerID,
			PlayerIndex: seat.PlayerIndex,
			Rejoined:    true,
		})
		if creator := r.creatorMember(); creator != seat {
			r.sendTo(creator, MsgPlayerConnection, connectionOf(seat))
		}
	}
	r.broadcast(MsgPlayerJoined, RosterEvent{Roster: r.roster(), NewPlayer: seat.Name, Reconnected: true}, conn)
	if r.started() {
		m.stateChanged(r, r.engine.State())
	}
}

func connectionOf(m *Member) Connection {
	return Connection{Name: m.Name, ClientID: m.ClientID, PlayerID: m.PlayerID, Connected: m.Connected}
}

// StartGame builds the game from the lobby roster in join order.
func (m *Manager) StartGame(conn Conn, mapID string) error {
	r, seat, err := m.enter(conn)
	if err != nil {
		return err
	}
	defer r.mu.Unlock()
	if seat.ClientID != r.creator {
		return ErrNotCreator
	}
	if r.started() {
		return ErrAlreadyStarted
	}
	members := r.ordered()
	if len(members) < catalog.MinPlayers {
		return ErrNotEnoughPlayers
	}

	seats := make([]game.Seat, len(members))
	for i, mem := range members {
		seats[i] = game.Seat{Name: mem.Name, Avatar: mem.Avatar}
	}
	state, err := game.NewState(game.Setup{Seats: seats, MapID: mapID, Settings: m.cfg.GameSettings()}, m.newRNG())
	if errors.Is(err, game.ErrUnknownMap) {
		return ErrUnknownMap
	}
	if err != nil {
		return err
	}
	for i, mem := range members {
		mem.PlayerID = state.Players[i].ID
		mem.PlayerIndex = i
		state.Players[i].Connected = mem.Connected
	}

	m.attach(r, state)
	m.touch(r)
	m.logger.Info("game started", zap.String("room", r.Code), zap.String("map", state.Map.ID), zap.Int("players", len(members)))
	m.sendGameStart(r)
	m.settle(r)
	return nil
}

// ResumeGame restores the snapshot saved under code into this lobby. Lobby
// members take over saved players with the same name; saved players nobody
// claims start disconnected.
func (m *Manager) ResumeGame(conn Conn, code string) error {
	r, seat, err := m.enter(conn)
	if err != nil {
		return err
	}
	defer r.mu.Unlock()
	if seat.ClientID != r.creator {
		return ErrNotCreator
	}
	if r.started() {
		return ErrAlreadyStarted
	}

	code = NormalizeCode(code)
	// A live room keeps saving under its code; resuming it would fork the game.
	if live := m.room(code); live != nil && live != r {
		return ErrGameInProgress
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.SnapshotTimeout)
	defer cancel()
	data, err := m.store.Load(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return ErrSnapshotNotFound
	}
	if err != nil {
		m.logger.Warn("load snapshot", zap.String("room", r.Code), zap.String("snapshot", code), zap.Error(err))
		return ErrResumeFailed
	}
	state, err := game.Decode(data)
	if err != nil {
		m.logger.Warn("decode snapshot", zap.String("room", r.Code), zap.String("snapshot", code), zap.Error(err))
		return ErrResumeFailed
	}
	if state.GameOver {
		return ErrSnapshotNotFound
	}

	claimed := make([]bool, len(state.Players))
	type claim struct {
		mem   *Member
		index int
	}
	var claims []claim
	for _, mem := range r.ordered() {
		for i, p := range state.Players {
			if !claimed[i] && p.Name == mem.Name {
				claimed[i] = true
				claims = append(claims, claim{mem, i})
				break
			}
		}
	}
	if len(claims) == 0 {
		return ErrNoSeatMatch
	}
	for i := range state.Players {
		state.Players[i].Connected = false
	}
	for _, c := range claims {
		c.mem.PlayerID = state.Players[c.index].ID
		c.mem.PlayerIndex = c.index
		state.Players[c.index].Connected = c.mem.Connected
	}

	m.attach(r, state)
	m.touch(r)
	m.logger.Info("game resumed", zap.String("room", r.Code), zap.String("snapshot", code), zap.Int("seated", len(claims)))
	m.sendGameStart(r)
	m.settle(r)
	return nil
}

func (m *Manager) attach(r *Room, state *game.State) {
	r.engine = game.NewEngine(state,
		game.WithRandomizer(m.newRNG()),
		game.WithObserver(&observer{m: m, r: r}),
	)
}

func (m *Manager) sendGameStart(r *Room) {
	stripped := r.engine.State().Stripped()
	for _, mem := range r.ordered() {
		r.sendTo(mem, MsgGameStart, GameStart{State: stripped, LocalID: mem.PlayerID, PlayerIndex: mem.PlayerIndex})
	}
}

// settle skips disconnected players and makes sure the latest state went
// out and was saved.
func (m *Manager) settle(r *Room) {
	if !r.engine.SkipDisconnected() {
		m.stateChanged(r, r.engine.State())
	}
}

// Act relays a game action from conn. The sender's identity comes from the
// roster, never from the message. Rejected actions change nothing and are
// not reported back.
func (m *Manager) Act(conn Conn, a game.Action) error {
	r, seat, err := m.enter(conn)
	if err != nil {
		return err
	}
	defer r.mu.Unlock()
	if !r.started() {
		return ErrNotStarted
	}
	if seat.PlayerID == "" {
		return nil
	}
	m.touch(r)
	if !r.engine.Apply(seat.PlayerID, a) {
		m.logger.Debug("action rejected", zap.String("room", r.Code), zap.String("player", seat.PlayerID), zap.String("action", string(a.Type())))
	}
	r.engine.SkipDisconnected()
	return nil
}

// Kick removes a seat for good. Only the creator may kick, and only once
// the game is running.
func (m *Manager) Kick(conn Conn, playerID string) error {
	r, seat, err := m.enter(conn)
	if err != nil {
		return err
	}
	defer r.mu.Unlock()
	if seat.ClientID != r.creator {
		return ErrNotCreator
	}
	if !r.started() {
		return ErrNotStarted
	}
	target := r.memberByPlayer(playerID)
	if target == nil || target == seat {
		return ErrPlayerNotFound
	}

	target.Kicked = true
	target.Connected = false
	if c := target.conn; c != nil {
		target.conn = nil
		m.unbind(c)
		c.Send(Message{Type: MsgKicked, Data: gin.H{"message": msgRemoved}})
		c.Close()
	}
	r.engine.SetConnected(target.PlayerID, false)

	m.logger.Info("player kicked", zap.String("room", r.Code), zap.String("client", target.ClientID))
	r.sendTo(seat, MsgPlayerKicked, connectionOf(target))
	r.broadcast(MsgPlayerLeft, RosterEvent{Roster: r.roster(), LeftPlayer: target.Name, Kicked: true}, nil)
	m.settle(r)
	return nil
}

// Chat passes a message through to the rest of the room.
func (m *Manager) Chat(conn Conn, text string) error {
	r, seat, err := m.enter(conn)
	if err != nil {
		return err
	}
	defer r.mu.Unlock()
	text = truncate(strings.TrimSpace(text), maxChatLen)
	if text == "" {
		return nil
	}
	m.touch(r)
	r.broadcast(MsgChat, gin.H{
		"name":     seat.Name,
		"clientId": seat.ClientID,
		"playerId": seat.PlayerID,
		"text":     text,
	}, conn)
	return nil
}

// Leave detaches conn on request. In a lobby the seat is given up; in a
// running game it is kept for a later rejoin. A creator who leaves hands
// the room over at once.
func (m *Manager) Leave(conn Conn) {
	m.detach(conn, true)
}

// Disconnect is called by the transport when conn is gone.
func (m *Manager) Disconnect(conn Conn) {
	m.detach(conn, false)
}

func (m *Manager) detach(conn Conn, explicit bool) {
	m.mu.Lock()
	s, ok := m.sessions[conn.ID()]
	if ok {
		delete(m.sessions, conn.ID())
	}
	r := m.rooms[s.code]
	m.mu.Unlock()
	if !ok || r == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	seat := r.member(s.clientID)
	// A superseded connection closing must not touch the seat.
	if r.closed || seat == nil || seat.conn != conn {
		return
	}
	seat.conn = nil
	seat.Connected = false
	isCreator := seat.ClientID == r.creator

	if !r.started() && (explicit || !isCreator) {
		r.members = slices.DeleteFunc(r.members, func(o *Member) bool { return o == seat })
		m.logger.Info("player left", zap.String("room", r.Code), zap.String("client", seat.ClientID), zap.Int("members", len(r.members)))
		if len(r.members) == 0 {
			m.closeRoom(r, "")
			return
		}
		r.broadcast(MsgPlayerLeft, RosterEvent{Roster: r.roster(), LeftPlayer: seat.Name}, nil)
		if isCreator {
			m.migrate(r)
		}
		return
	}

	m.logger.Info("player disconnected", zap.String("room", r.Code), zap.String("client", seat.ClientID), zap.Bool("creator", isCreator))
	if r.started() && seat.PlayerID != "" {
		r.engine.SetConnected(seat.PlayerID, false)
		if creator := r.creatorMember(); creator != nil && creator != seat {
			r.sendTo(creator, MsgPlayerConnection, connectionOf(seat))
		}
	}
	r.broadcast(MsgPlayerLeft, RosterEvent{Roster: r.roster(), LeftPlayer: seat.Name, Disconnected: true}, nil)
	if isCreator {
		if explicit {
			m.migrate(r)
		} else {
			m.startGrace(r)
		}
	}
	if !r.closed && r.started() {
		m.settle(r)
	}
}

func (m *Manager) startGrace(r *Room) {
	m.stopGrace(r)
	gen := r.graceGen
	r.grace = time.AfterFunc(m.cfg.ReconnectGrace, func() { m.graceExpired(r, gen) })
}

func (m *Manager) stopGrace(r *Room) {
	if r.grace != nil {
		r.grace.Stop()
		r.grace = nil
	}
	r.graceGen++
}

func (m *Manager) graceExpired(r *Room, gen int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || gen != r.graceGen {
		return
	}
	r.grace = nil
	if c := r.creatorMember(); c != nil && c.Connected {
		return
	}
	m.migrate(r)
}

// migrate hands the creator role to the first connected seat, or ends
// the session when nobody is left.
func (m *Manager) migrate(r *Room) {
	for _, mem := range r.ordered() {
		if mem.Connected && mem.ClientID != r.creator {
			r.creator = mem.ClientID
			m.logger.Info("host changed", zap.String("room", r.Code), zap.String("client", mem.ClientID))
			r.broadcast(MsgHostChanged, HostChanged{
				RosterEvent: RosterEvent{Roster: r.roster(), ClientID: mem.ClientID},
				Name:        mem.Name,
			}, nil)
			return
		}
	}
	m.closeRoom(r, msgHostGone)
}

// closeRoom ends a session. Connections stay open but are unbound, so they
// can create or join another room.
func (m *Manager) closeRoom(r *Room, message string) {
	r.closed = true
	m.stopGrace(r)
	if message != "" {
		r.broadcast(MsgSessionEnded, gin.H{"message": message}, nil)
	}
	for _, mem := range r.members {
		if mem.conn != nil {
			m.unbind(mem.conn)
			mem.conn = nil
		}
	}
	m.mu.Lock()
	if m.rooms[r.Code] == r {
		delete(m.rooms, r.Code)
	}
	m.mu.Unlock()
	m.logger.Info("room closed", zap.String("room", r.Code), zap.String("reason", message))
}

// Sweep closes rooms idle for longer than the configured TTL and reports
// how many were closed.
func (m *Manager) Sweep(now time.Time) int {
	n := 0
	for _, r := range m.snapshot() {
		r.mu.Lock()
		if !r.closed && now.Sub(r.lastActivity) > m.cfg.RoomTTL {
			m.closeRoom(r, msgExpired)
			n++
		}
		r.mu.Unlock()
	}
	return n
}

// Run sweeps on the configured interval until ctx is done.
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.Shutdown()
			return nil
		case <-ticker.C:
			if n := m.Sweep(m.now()); n > 0 {
				m.logger.Info("expired rooms swept", zap.Int("count", n))
			}
		}
	}
}

// Shutdown stops pending grace timers.
func (m *Manager) Shutdown() {
	for _, r := range m.snapshot() {
		r.mu.Lock()
		m.stopGrace(r)
		r.mu.Unlock()
	}
}

func (m *Manager) snapshot() []*Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Collect(maps.Values(m.rooms))
}

func (m *Manager) room(code string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[code]
}

func (m *Manager) session(conn Conn) (session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[conn.ID()]
	return s, ok
}

func (m *Manager) bind(conn Conn, code, clientID string) {
	m.mu.Lock()
	m.sessions[conn.ID()] = session{code: code, clientID: clientID}
	m.mu.Unlock()
}

func (m *Manager) unbind(conn Conn) {
	m.mu.Lock()
	delete(m.sessions, conn.ID())
	m.mu.Unlock()
}

// enter resolves conn to its room and seat and returns with the room
// locked. The caller unlocks.
func (m *Manager) enter(conn Conn) (*Room, *Member, error) {
	s, ok := m.session(conn)
	if !ok {
		return nil, nil, ErrNotInRoom
	}
	r := m.room(s.code)
	if r == nil {
		return nil, nil, ErrNotInRoom
	}
	r.mu.Lock()
	seat := r.member(s.clientID)
	if r.closed || seat == nil || seat.Kicked || seat.conn != conn {
		r.mu.Unlock()
		return nil, nil, ErrNotInRoom
	}
	return r, seat, nil
}

func (m *Manager) touch(r *Room) { r.lastActivity = m.now() }
