package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"economic-wars/internal/game"
	"economic-wars/internal/room"
)

// Rooms is the read side of room.Manager.
type Rooms interface {
	Rooms() []room.Summary
	Summary(code string) (room.Summary, error)
	Roster(code string) (room.Roster, error)
	State(code string) (*game.State, error)
	Standings(code string) ([]game.Standing, error)
	SavedGames(ctx context.Context) ([]string, error)
	Stats() room.Stats
}

// Counter reports open transport connections.
type Counter interface {
	Count() int
}

type RoomHandler struct {
	rooms  Rooms
	conns  Counter
	logger *zap.Logger
}

func NewRoomHandler(rooms Rooms, conns Counter, logger *zap.Logger) *RoomHandler {
	return &RoomHandler{rooms: rooms, conns: conns, logger: logger}
}

// Health reports liveness with room and connection counts.
// @Summary Health check
// @Tags Ops
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (h *RoomHandler) Health(c *gin.Context) {
	stats := h.rooms.Stats()
	resp := HealthResponse{Status: "ok", Rooms: stats.Rooms, Sessions: stats.Sessions}
	if h.conns != nil {
		resp.Connections = h.conns.Count()
	}
	c.JSON(http.StatusOK, resp)
}

// ListRooms returns every open room.
// @Summary List rooms
// @Tags Room
// @Produce json
// @Success 200 {object} RoomListResponse
// @Router /rooms [get]
func (h *RoomHandler) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, RoomListResponse{Rooms: h.rooms.Rooms()})
}

// GetRoom returns a room summary with its roster.
// @Summary Get room
// @Tags Room
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} RoomResponse
// @Failure 404 {object} ErrorResponse
// @Router /rooms/{code} [get]
func (h *RoomHandler) GetRoom(c *gin.Context) {
	code := room.NormalizeCode(c.Param("code"))
	summary, err := h.rooms.Summary(code)
	if err != nil {
		h.fail(c, err)
		return
	}
	roster, err := h.rooms.Roster(code)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, RoomResponse{Summary: summary, Roster: roster})
}

// GetState returns the live state with decks hidden.
// @Summary Get game state
// @Tags Game
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} StateResponse
// @Failure 404 {object} ErrorResponse
// @Router /rooms/{code}/state [get]
func (h *RoomHandler) GetState(c *gin.Context) {
	code := room.NormalizeCode(c.Param("code"))
	state, err := h.rooms.State(code)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, StateResponse{Code: code, State: state})
}

// GetStandings ranks the players of a running game.
// @Summary Get standings
// @Tags Game
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} StandingsResponse
// @Failure 404 {object} ErrorResponse
// @Router /rooms/{code}/standings [get]
func (h *RoomHandler) GetStandings(c *gin.Context) {
	code := room.NormalizeCode(c.Param("code"))
	standings, err := h.rooms.Standings(code)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, StandingsResponse{Code: code, Standings: standings})
}

// ListSnapshots returns the codes of saved games that can be resumed.
// @Summary List saved games
// @Tags Game
// @Produce json
// @Success 200 {object} SnapshotListResponse
// @Router /snapshots [get]
func (h *RoomHandler) ListSnapshots(c *gin.Context) {
	codes, err := h.rooms.SavedGames(c.Request.Context())
	if err != nil {
		h.logger.Error("list snapshots", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not list saved games"})
		return
	}
	if codes == nil {
		codes = []string{}
	}
	c.JSON(http.StatusOK, SnapshotListResponse{Codes: codes})
}

func (h *RoomHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, room.ErrRoomNotFound), errors.Is(err, room.ErrNotStarted):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		h.logger.Error("room request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
