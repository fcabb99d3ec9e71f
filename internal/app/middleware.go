package app

import (
	"github.com/PontyConecta/ponty-conecta-sub002/internal/http/middleware"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
)

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, cfg Config, r Repos) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, cfg.JWTSecretKey, r.User),
	}
}
