package room

import "errors"

// Each message is shown to the player as is.
var (
	ErrRoomNotFound     = errors.New("Room not found. Check the code and try again.")
	ErrRoomFull         = errors.New("Room is full (max 8 players).")
	ErrDuplicateName    = errors.New("A player with that name is already in the room.")
	ErrKicked           = errors.New("You were removed from this game by the host.")
	ErrGameStarted      = errors.New("Game already started. Rejoin is only available from the same browser/device.")
	ErrAlreadyStarted   = errors.New("The game has already started.")
	ErrNotStarted       = errors.New("The game has not started yet.")
	ErrNotCreator       = errors.New("Only the host can do that.")
	ErrNotInRoom        = errors.New("You are not in a room.")
	ErrNotEnoughPlayers = errors.New("At least 2 players are needed to start.")
	ErrUnknownMap       = errors.New("Unknown map.")
	ErrPlayerNotFound   = errors.New("Player not found.")
	ErrSnapshotNotFound = errors.New("No saved game found for that code.")
	ErrNoSeatMatch      = errors.New("Nobody in this room matches a player in the saved game.")
	ErrResumeFailed     = errors.New("The saved game could not be restored.")
	ErrGameInProgress   = errors.New("That game is still being played. Join its room instead.")
)
