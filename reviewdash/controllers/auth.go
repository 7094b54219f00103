// reviewdash/controllers/auth.go
package controllers

import (
	"errors"
	"time"

	"reviewdash/reviewdash/config"
	"reviewdash/reviewdash/middlewares"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoSecret = errors.New("JWT_SECRET is not set")

// AuthController mints tokens for operators triggering imports.
type AuthController struct {
	cfg config.Config
}

func NewAuthController(cfg config.Config) *AuthController {
	return &AuthController{cfg: cfg}
}

func (c *AuthController) IssueAdminToken(subject string, ttl time.Duration) (string, error) {
	if c.cfg.JWTSecret == "" {
		return "", ErrNoSecret
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": middlewares.RoleAdmin,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.cfg.JWTSecret))
}
