package ws

import (
	"economic-wars/internal/game"
	"economic-wars/internal/room"
)

// RoomManager is the part of room.Manager the transport drives.
type RoomManager interface {
	CreateRoom(conn room.Conn, req room.CreateRequest) (string, error)
	JoinRoom(conn room.Conn, req room.JoinRequest) error
	StartGame(conn room.Conn, mapID string) error
	ResumeGame(conn room.Conn, code string) error
	Act(conn room.Conn, a game.Action) error
	Kick(conn room.Conn, playerID string) error
	Chat(conn room.Conn, text string) error
	Leave(conn room.Conn)
	Disconnect(conn room.Conn)
}
