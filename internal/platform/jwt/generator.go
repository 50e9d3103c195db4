// Package jwtmw は管理用エンドポイントを保護するJWTの発行と検証を提供します。
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// EnvKeyJWTSecret は署名鍵を保持する環境変数名です。
	EnvKeyJWTSecret = "JWT_SECRET"
	// RoleAdmin は管理APIへのアクセスを許可するロールです。
	RoleAdmin = "admin"
	// Issuer はこのサービスが発行するトークンの iss クレームです。
	Issuer = "umkm_backend"
)

// ErrEmptySecret は署名鍵が空の場合に返ります。
var ErrEmptySecret = errors.New("jwt secret is empty")

// Claims は管理トークンのクレームです。
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Generator defines the interface for admin token generation.
type Generator interface {
	// GenerateToken creates a signed admin token for the given subject.
	GenerateToken(subject string) (string, error)
}

type generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) (Generator, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}, nil
}

// GenerateToken は subject に対する admin ロールのトークンをHS256で署名して返します。
func (g *generator) GenerateToken(subject string) (string, error) {
	if subject == "" {
		return "", errors.New("subject is required")
	}
	now := g.now()
	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
