package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"salarypay-service/internal/model"
	"salarypay-service/pkg/config"
)

// SessionClaims carries the acting identity plus an optional impersonation
// overlay. ImpersonatedID is set only on tokens issued through the admin
// view-as flow; its presence makes the session read-only.
type SessionClaims struct {
	UserID         string     `json:"user_id"`
	Email          string     `json:"email"`
	Name           string     `json:"name,omitempty"`
	Role           model.Role `json:"role"`
	ImpersonatedID string     `json:"impersonated_id,omitempty"`
	jwt.RegisteredClaims
}

// JWTUtil issues and validates session tokens.
type JWTUtil struct {
	cfg *config.JWTConfig
}

// NewJWTUtil creates a token utility from configuration.
func NewJWTUtil(cfg *config.JWTConfig) *JWTUtil {
	return &JWTUtil{cfg: cfg}
}

// GenerateToken creates a session token for the given user.
func (j *JWTUtil) GenerateToken(user model.User) (string, error) {
	return j.generate(user, "")
}

// GenerateImpersonationToken creates a session token for user with a
// read-only impersonation overlay on target.
func (j *JWTUtil) GenerateImpersonationToken(user model.User, targetID string) (string, error) {
	return j.generate(user, targetID)
}

func (j *JWTUtil) generate(user model.User, impersonatedID string) (string, error) {
	claims := &SessionClaims{
		UserID:         user.ID,
		Email:          user.Email,
		Name:           user.Name,
		Role:           user.Role,
		ImpersonatedID: impersonatedID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.cfg.ExpirationTime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.cfg.SigningKey))
}

// ValidateToken validates the token and returns the claims
func (j *JWTUtil) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&SessionClaims{},
		func(token *jwt.Token) (interface{}, error) {
			// Validate the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(j.cfg.SigningKey), nil
		},
	)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
