package app

import (
	"context"
	"fmt"

	"drink-service/internal/audit"
	"drink-service/internal/auth"
	"drink-service/internal/config"
	"drink-service/internal/http"
	"drink-service/internal/repository/postgres"
)

// InitializeService wires up all dependencies and returns a configured Service
func InitializeService() (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	drinkRepo := postgres.NewDrinkRepository(db)
	auditLogger := audit.NewLogger(db.Pool)

	resolver := auth.NewKeySetResolver(
		cfg.Auth.JWKSURL(),
		auth.WithKeySetTTL(cfg.Auth.KeySetTTL),
		auth.WithFetchTimeout(cfg.Auth.FetchTimeout),
	)

	verifier := auth.NewVerifier(auth.VerifierConfig{
		Issuer:     cfg.Auth.IssuerURL(),
		Audience:   cfg.Auth.Audience,
		Algorithms: cfg.Auth.Algorithms,
	}, resolver)

	server := http.NewServer(&http.ServerDependencies{
		Config:         cfg,
		DrinkRepo:      drinkRepo,
		AuthMiddleware: auth.NewMiddleware(verifier),
		AuditLogger:    auditLogger,
		Health:         db,
	})

	return &Service{
		config: cfg,
		db:     db,
		server: server,
	}, nil
}
