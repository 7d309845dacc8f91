package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"economic-wars/internal/config"
)

// NewRouter wires the read-only HTTP endpoints and the WebSocket upgrade.
func NewRouter(rooms Rooms, hub WebSocket, cfg config.Config, logger *zap.Logger) *gin.Engine {
	logger = logger.Named("http")
	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))

	rh := NewRoomHandler(rooms, hub, logger)
	ch := NewConfigHandler(cfg)

	// WebSocket for the game protocol
	r.GET("/ws", hub.HandleWS)

	r.GET("/healthz", rh.Health)

	// --- ROOM ENDPOINTS ---
	r.GET("/rooms", rh.ListRooms)
	r.GET("/rooms/:code", rh.GetRoom)
	r.GET("/rooms/:code/state", rh.GetState)
	r.GET("/rooms/:code/standings", rh.GetStandings)
	r.GET("/snapshots", rh.ListSnapshots)

	// --- CONFIG ENDPOINTS ---
	r.GET("/config/rules", ch.GetRulesHandler)

	return r
}

// WebSocket is the transport mounted at /ws.
type WebSocket interface {
	Counter
	HandleWS(c *gin.Context)
}

func corsConfig(cfg config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if cfg.AllowAllOrigins() {
		c.AllowAllOrigins = true
	} else {
		// Same rule as the WebSocket origin check, and valid with an empty list.
		c.AllowOriginFunc = cfg.OriginAllowed
	}
	return c
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if c.FullPath() == "/ws" {
			return
		}
		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client", c.ClientIP()),
		)
	}
}
