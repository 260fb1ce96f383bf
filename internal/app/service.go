package app

import (
	"context"
	"log"
	"net"
	"time"

	"drink-service/internal/config"
	"drink-service/internal/http"
	"drink-service/internal/repository/postgres"
)

// Service represents the drink menu application
type Service struct {
	config *config.Config
	db     *postgres.DB
	server *http.Server
}

// NewService creates and initializes a new Service instance
// This is a convenience wrapper around InitializeService
func NewService() (*Service, error) {
	return InitializeService()
}

// Start starts the HTTP server
func (s *Service) Start() error {
	address := net.JoinHostPort("", s.config.Server.Port)
	log.Printf("Starting drink service on %s", address)
	return s.server.Start(address)
}

// ShutdownTimeout reports how long a graceful shutdown may take.
func (s *Service) ShutdownTimeout() time.Duration {
	return s.config.Server.ShutdownTimeout
}

// Shutdown gracefully shuts down the service and closes the database pool
func (s *Service) Shutdown(ctx context.Context) error {
	defer s.db.Close()
	return s.server.Shutdown(ctx)
}
