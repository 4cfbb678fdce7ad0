package service

import (
	"github.com/mobilenest/nestauth/internal/config"
	"github.com/mobilenest/nestauth/internal/logger"
	"github.com/mobilenest/nestauth/internal/session"
	"github.com/mobilenest/nestauth/internal/store"
)

// Services bundles the business-logic layer handed to the transport.
type Services struct {
	AuthService AuthService
	Sessions    session.Manager
}

// NewServices wires the session manager and authentication service over the
// given storages.
func NewServices(storages *store.Storages, cfg config.Auth, logger *logger.Logger) *Services {
	sessions := session.NewManager(cfg.SessionTTL, logger)
	return &Services{
		AuthService: NewAuthService(storages, sessions, cfg, logger),
		Sessions:    sessions,
	}
}
