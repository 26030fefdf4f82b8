package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/glowbook/salon-platform/internal/config"
	dbpkg "github.com/glowbook/salon-platform/internal/db"
	"github.com/glowbook/salon-platform/internal/logger"
	"github.com/glowbook/salon-platform/internal/routes"
)

func main() {

	cfg := config.Load()

	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
