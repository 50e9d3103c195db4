package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		secret     string
		expiration time.Duration
		wantErr    error
	}{
		{"success: standard config", "my-secret-key", time.Hour, nil},
		{"success: long expiration", "secret", 24 * time.Hour * 30, nil},
		{"error: empty secret", "", time.Hour, ErrEmptySecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen, err := NewGenerator(tt.secret, tt.expiration)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, gen)
				return
			}
			require.NoError(t, err)
			g := gen.(*generator)
			assert.Equal(t, tt.secret, string(g.secret))
			assert.Equal(t, tt.expiration, g.expiration)
		})
	}
}

// TestGenerator_GenerateToken は生成されたトークンが正しいクレームを含むことを検証します。
func TestGenerator_GenerateToken(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	gen := &generator{secret: []byte("test-secret"), expiration: 2 * time.Hour, now: func() time.Time { return fixed }}

	tokenStr, err := gen.GenerateToken("ops@umkm")
	require.NoError(t, err)

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(tok *jwt.Token) (interface{}, error) {
		_, ok := tok.Method.(*jwt.SigningMethodHMAC)
		assert.True(t, ok, "unexpected signing method: %v", tok.Header["alg"])
		return []byte("test-secret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return fixed.Add(time.Minute) }))
	require.NoError(t, err)
	require.True(t, token.Valid)

	assert.Equal(t, "ops@umkm", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.Equal(t, fixed.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixed.Add(2*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestGenerator_GenerateToken_EmptySubject(t *testing.T) {
	t.Parallel()

	gen, err := NewGenerator("test-secret", time.Hour)
	require.NoError(t, err)

	_, err = gen.GenerateToken("")
	assert.Error(t, err)
}

func TestGenerator_GenerateToken_DifferentSubjectsProduceDifferentTokens(t *testing.T) {
	t.Parallel()

	gen, err := NewGenerator("test-secret", time.Hour)
	require.NoError(t, err)

	token1, _ := gen.GenerateToken("alice")
	token2, _ := gen.GenerateToken("bob")

	assert.NotEqual(t, token1, token2)
}
