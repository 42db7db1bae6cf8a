package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"tabletop/internal/api/ws"
	"tabletop/internal/obslog"
	"tabletop/internal/room"
)

func NewRouter(rm *room.Manager, hub *ws.Hub, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(), gin.Recovery(), cors(allowedOrigins))

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/health", HealthHandler)
	r.GET("/stats", StatsHandler(rm))

	// WebSocket game sessions
	r.GET("/ws/:gameType", hub.HandleWS)

	// --- ROOM ENDPOINTS ---
	r.GET("/rooms", ListRoomsHandler(rm))
	r.POST("/rooms", CreateRoomHandler(rm))
	r.GET("/rooms/:gameType/:roomID", GetRoomHandler(rm))

	// --- CONFIG ENDPOINTS ---
	cfg := NewConfigHandler(rm.Weights())
	r.GET("/api/config/weights", cfg.GetWeightsHandler)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		obslog.L().Info("http_request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// cors lets the browser front-end on allowedOrigins call the REST routes.
func cors(allowedOrigins []string) gin.HandlerFunc {
	allowed := map[string]bool{}
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowed["*"] || allowed[origin]) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			h.Add("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
