package main

import (
	"testing"

	"golang-insider-scanner/internal/scanner/config"
	pkgconfig "golang-insider-scanner/pkg/config"
	"golang-insider-scanner/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_NotifierFailureOpensNoConnections(t *testing.T) {
	cfg := &config.Config{
		App:      pkgconfig.App{Name: "insider-scanner", TimeZone: "UTC"},
		Database: pkgconfig.Database{Host: "127.0.0.1", Port: 1, DBName: "unreachable"},
		Redis:    pkgconfig.Redis{Host: "127.0.0.1", Port: 1},
		Notifier: config.Notifier{Provider: "pigeon"},
	}

	a, err := newApp(cfg, logger.NewNop())

	require.Error(t, err)
	assert.Nil(t, a)
	assert.Contains(t, err.Error(), "unknown notifier provider")
}

func TestNewApp_InvalidTimeZone(t *testing.T) {
	cfg := &config.Config{App: pkgconfig.App{TimeZone: "Nowhere/Invalid"}}

	_, err := newApp(cfg, logger.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid time zone")
}

func TestRedisKey(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, "scan:lock", redisKey(cfg, "scan:lock"))
	cfg.Redis.Prefix = "insider"
	assert.Equal(t, "insider:scan:lock", redisKey(cfg, "scan:lock"))
}
