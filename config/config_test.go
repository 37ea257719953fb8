package config

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppConfig_MissingFileKeepsDefaults(t *testing.T) {
	require.NoError(t, LoadAppConfig(filepath.Join(t.TempDir(), "missing.yml")))

	assert.Equal(t, 30*time.Minute, App.Convocation.AcceptanceWindow)
	assert.True(t, App.Fees.Convocation.Equal(decimal.NewFromInt(10)))
}

func TestLoadAppConfig_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yml")
	require.NoError(t, ioutil.WriteFile(path, []byte(`
convocation:
  acceptance_window: 15m
fees:
  convocation: "12.5"
events:
  subject_prefix: test.events
`), 0o644))
	t.Cleanup(func() { App = DefaultAppConfig() })

	require.NoError(t, LoadAppConfig(path))

	assert.Equal(t, 15*time.Minute, App.Convocation.AcceptanceWindow)
	assert.Equal(t, 24*time.Hour, App.Convocation.ReleaseGrace)
	assert.True(t, App.Fees.Convocation.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, App.Fees.Withdrawal.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, "test.events", App.Events.SubjectPrefix)
}

func TestLoadAppConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yml")
	require.NoError(t, ioutil.WriteFile(path, []byte("convocation: ["), 0o644))

	assert.Error(t, LoadAppConfig(path))
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("RATE_LIMIT_RPS", "5")
	os.Unsetenv("DATABASE_HOST")

	env, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "from-env", env.JWTSecret)
	assert.Equal(t, 5, env.RateLimitRPS)
	assert.Equal(t, "localhost", env.DatabaseHost)
	assert.Equal(t, "720h", env.JWTTTL)
}

func TestPingDatabase(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	assert.NoError(t, PingDatabase(context.Background(), db))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.EqualError(t, PingDatabase(context.Background(), db), "connection refused")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNilServices(t *testing.T) {
	var cache *CacheService
	var target map[string]string

	assert.Error(t, cache.GetKey("k", &target))
	assert.NoError(t, cache.SetKey("k", "v", time.Minute))
	assert.NoError(t, cache.DeleteKey("k"))

	var influx *InfluxClient
	influx.NewPoint("m", nil, map[string]interface{}{"v": 1})
	assert.NoError(t, influx.Close())
}
