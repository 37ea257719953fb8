package cron

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/models"
	"github.com/goleiroon/goleiroon/types"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func setupDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.Migrate(db))
	config.DataBase = db
	config.App = config.DefaultAppConfig()
	models.Now = func() time.Time { return now }

	t.Cleanup(func() {
		models.Now = time.Now
		sqlDB.Close()
	})
}

func createUser(t *testing.T, email string, userType types.UserType, coins int64) *models.User {
	t.Helper()

	user := &models.User{Name: email, Email: email, PasswordHash: "x", Type: userType, Status: types.ApprovalApproved}
	require.NoError(t, config.DataBase.Create(user).Error)
	require.NoError(t, config.DataBase.Create(&models.Saldo{
		UserID:   user.ID,
		Coins:    decimal.NewFromInt(coins),
		Retained: decimal.Zero,
	}).Error)

	return user
}

func book(t *testing.T, organizer, goalkeeper *models.User, gameAt time.Time) *models.Convocation {
	t.Helper()

	convocation, err := models.CreateConvocation(organizer, models.CreateConvocationParams{
		GoalkeeperID:    goalkeeper.ID,
		GameAt:          gameAt,
		DurationMinutes: 60,
		Amount:          decimal.NewNullDecimal(decimal.NewFromInt(50)),
	})
	require.NoError(t, err)

	return convocation
}

func TestConvocationExpiryJob_Run(t *testing.T) {
	setupDB(t)
	organizer := createUser(t, "org@goleiroon.test", types.UserTypeOrganizer, 200)
	goalkeeper := createUser(t, "gk@goleiroon.test", types.UserTypeGoalkeeper, 0)

	stale := book(t, organizer, goalkeeper, now.Add(24*time.Hour))
	answered := book(t, organizer, goalkeeper, now.Add(48*time.Hour))
	_, err := models.AcceptConvocation(goalkeeper, answered.ID)
	require.NoError(t, err)

	job := &ConvocationExpiryJob{}

	expired, failed := job.Run(now.Add(10 * time.Minute))
	assert.Zero(t, expired)
	assert.Zero(t, failed)

	expired, failed = job.Run(now.Add(31 * time.Minute))
	assert.Equal(t, 1, expired)
	assert.Zero(t, failed)

	expired, _ = job.Run(now.Add(time.Hour))
	assert.Zero(t, expired)

	c, err := models.FindConvocation(stale.ID)
	require.NoError(t, err)
	assert.Equal(t, types.ConvocationLost, c.Status)

	saldo, err := models.GetSaldo(organizer.ID)
	require.NoError(t, err)
	assert.True(t, saldo.Coins.Equal(decimal.NewFromInt(150)))
	assert.True(t, saldo.Retained.Equal(decimal.NewFromInt(50)))
}

func TestCoinReleaseJob_Run(t *testing.T) {
	setupDB(t)
	organizer := createUser(t, "org@goleiroon.test", types.UserTypeOrganizer, 100)
	goalkeeper := createUser(t, "gk@goleiroon.test", types.UserTypeGoalkeeper, 0)

	gameAt := now.Add(2 * time.Hour)
	convocation := book(t, organizer, goalkeeper, gameAt)
	_, err := models.AcceptConvocation(goalkeeper, convocation.ID)
	require.NoError(t, err)

	job := &CoinReleaseJob{}
	ends := gameAt.Add(time.Hour)

	released, failed := job.Run(ends.Add(time.Hour))
	assert.Zero(t, released)
	assert.Zero(t, failed)

	released, failed = job.Run(ends.Add(config.App.Convocation.ReleaseGrace))
	assert.Equal(t, 1, released)
	assert.Zero(t, failed)

	released, _ = job.Run(ends.Add(48 * time.Hour))
	assert.Zero(t, released)

	saldo, err := models.GetSaldo(goalkeeper.ID)
	require.NoError(t, err)
	assert.True(t, saldo.Coins.Equal(decimal.NewFromInt(45)))

	saldo, err = models.GetSaldo(organizer.ID)
	require.NoError(t, err)
	assert.True(t, saldo.Total().Equal(decimal.NewFromInt(50)))
}
