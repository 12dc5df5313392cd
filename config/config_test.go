package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestParseDurationWithDays(t *testing.T) {
	assert.Equal(t, 48*time.Hour, parseDurationWithDays("2d"))
	assert.Equal(t, 15*time.Minute, parseDurationWithDays("15m"))
	assert.Equal(t, time.Duration(0), parseDurationWithDays("garbage"))
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, splitAndTrim(" a:9092, ,b:9092 "))
}

func TestLoad_PanicsOnMissingRequired(t *testing.T) {
	t.Setenv("APP_PORT", ":8080")
	t.Setenv("DB_HOST", "")
	os.Unsetenv("DB_HOST")
	// без DB_HOST конфиг обязан упасть сразу
	assert.Panics(t, func() { Load(zap.NewNop()) })
}

func TestLoad_AllRequiredPresent(t *testing.T) {
	env := map[string]string{
		"APP_PORT":      ":8080",
		"DB_HOST":       "localhost",
		"DB_PORT":       "3306",
		"DB_USER":       "root",
		"DB_PASSWORD":   "secret",
		"DB_NAME":       "store",
		"JWT_SECRET":    "s3cr3t",
		"ACCESS_EXP":    "1d",
		"REDIS_ENABLED": "false",
		"KAFKA_BROKERS": "k1:9092,k2:9092",
	}
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg := Load(zap.NewNop())
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "store", cfg.DB.Name)
	assert.Equal(t, 10, cfg.DB.MaxOpenConns)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessExp)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, time.Hour, cfg.ReconcileInterval)
}
