package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-compass/internal/config"
	"github.com/jonathan/career-compass/internal/server"
)

func TestIssueToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "0123456789abcdef-secret", JWTExpirationHours: 2}
	var out bytes.Buffer

	require.NoError(t, issueToken(&out, cfg, "frontend"))

	jwtConfig, err := cfg.JWT()
	require.NoError(t, err)
	claims, err := server.NewJWTService(jwtConfig).ValidateToken(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "frontend", claims.Caller())
}

func TestIssueToken_Errors(t *testing.T) {
	var out bytes.Buffer

	err := issueToken(&out, &config.Config{}, "frontend")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is not set")

	err = issueToken(&out, &config.Config{JWTSecret: "short"}, "frontend")
	require.Error(t, err)

	err = issueToken(&out, &config.Config{JWTSecret: "0123456789abcdef-secret"}, "")
	require.Error(t, err)
	assert.Empty(t, out.String())
}
