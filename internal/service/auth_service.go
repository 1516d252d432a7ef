package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	config "github.com/ankithstudio/mediadesk/configs"
	"github.com/ankithstudio/mediadesk/pkg/utils"
)

const sessionDuration = 24 * time.Hour

type AuthService interface {
	Login(ctx context.Context, password string) (string, error)
}

type authService struct {
	cfg config.Config
}

func NewAuthService(cfg config.Config) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) Login(ctx context.Context, password string) (string, error) {
	var err error

	if s.cfg.AdminPassword == "" {
		err = errors.New("admin password is not configured")
		slog.Info(err.Error())
		return "", err
	}

	if subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) != 1 {
		err = errors.New("invalid password")
		slog.Info(err.Error())
		return "", err
	}

	token, err := utils.GenerateToken(s.cfg.SecretKey, "admin", sessionDuration)
	if err != nil {
		return "", err
	}

	return token, nil
}
