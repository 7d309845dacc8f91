package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"economic-wars/internal/catalog"
	"economic-wars/internal/config"
	"economic-wars/internal/game"
)

type ConfigHandler struct {
	settings game.Settings
}

func NewConfigHandler(cfg config.Config) *ConfigHandler {
	settings := cfg.GameSettings()
	if settings == (game.Settings{}) {
		settings = game.DefaultSettings()
	}
	return &ConfigHandler{settings: settings}
}

// GetRulesHandler returns the rule constants, board variants and avatars
// new games use.
// @Summary Get game rules
// @Tags Config
// @Produce json
// @Success 200 {object} RulesResponse
// @Router /config/rules [get]
func (h *ConfigHandler) GetRulesHandler(c *gin.Context) {
	avatars := make([]string, catalog.AvatarCount())
	for i := range avatars {
		avatars[i] = catalog.Avatar(i)
	}
	c.JSON(http.StatusOK, RulesResponse{
		Settings:   h.settings,
		MinPlayers: catalog.MinPlayers,
		MaxPlayers: catalog.MaxPlayers,
		Maps:       catalog.Maps(),
		Avatars:    avatars,
	})
}
