package http

import (
	"economic-wars/internal/catalog"
	"economic-wars/internal/game"
	"economic-wars/internal/room"
)

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status      string `json:"status"`
	Rooms       int    `json:"rooms"`
	Sessions    int    `json:"sessions"`
	Connections int    `json:"connections"`
}

// ErrorResponse wraps every non-2xx body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RoomListResponse is returned by /rooms.
type RoomListResponse struct {
	Rooms []room.Summary `json:"rooms"`
}

// RoomResponse is returned by /rooms/:code.
type RoomResponse struct {
	room.Summary
	room.Roster
}

type StateResponse struct {
	Code  string      `json:"code"`
	State *game.State `json:"state"`
}

type StandingsResponse struct {
	Code      string          `json:"code"`
	Standings []game.Standing `json:"standings"`
}

type SnapshotListResponse struct {
	Codes []string `json:"codes"`
}

// RulesResponse describes the rules new games start with.
type RulesResponse struct {
	Settings   game.Settings `json:"settings"`
	MinPlayers int           `json:"minPlayers"`
	MaxPlayers int           `json:"maxPlayers"`
	Maps       []catalog.Map `json:"maps"`
	Avatars    []string      `json:"avatars"`
}
