package main

import (
	"context"
	"net/http"

	"museum-map-api/internal/config"
	"museum-map-api/internal/handler"
	"museum-map-api/internal/repository"
	"museum-map-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	// Database connection
	conn, err := pgxpool.New(context.Background(), config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	// Initialize layers
	repo := repository.NewRepository(conn)

	snap := service.NewSnapshot(log.Logger)
	go func() {
		if err := snap.Load(context.Background(), repo); err != nil {
			log.Error().Err(err).Msg("loading data snapshot failed")
		}
	}()

	catalog := service.NewCatalog(snap)
	sessions := service.NewSessions(snap)

	museumsHandler := handler.NewMuseumsHandler(catalog)
	eventsHandler := handler.NewEventsHandler(catalog)
	sessionsHandler := handler.NewSessionsHandler(sessions)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/museums", museumsHandler.List)
	r.GET("/events", eventsHandler.List)
	sessionsHandler.Register(r.Group("/sessions"))

	r.Run(config.ServerAddress)
}
