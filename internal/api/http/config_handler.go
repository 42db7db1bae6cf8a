package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tabletop/internal/config"
)

type ConfigHandler struct {
	weights config.Weights
}

func NewConfigHandler(w config.Weights) *ConfigHandler {
	return &ConfigHandler{weights: w}
}

// GetWeightsHandler returns the bot heuristic weights
// @Summary Get heuristic weights
// @Description Weights the fallback opponent scores candidate moves with, for both games
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/config/weights [get]
func (h *ConfigHandler) GetWeightsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"weights": h.weights,
	})
}
