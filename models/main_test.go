package models

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/mq_client"
	"github.com/goleiroon/goleiroon/types"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type eventRecorder struct {
	mu     sync.Mutex
	events []*mq_client.Event
}

func (r *eventRecorder) Publish(subject string, data []byte) error {
	event, err := mq_client.DecodeEvent(data)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)

	return nil
}

func (r *eventRecorder) Count(kind mq_client.EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}

	return n
}

func (r *eventRecorder) Last(kind mq_client.EventKind) *mq_client.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Kind == kind {
			return r.events[i]
		}
	}

	return nil
}

// setupDB points config.DataBase at a fresh in-memory sqlite database and pins the clock.
func setupDB(t *testing.T) *eventRecorder {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))

	config.DataBase = db
	config.Redis = nil
	config.App = config.DefaultAppConfig()

	recorder := &eventRecorder{}
	mq_client.SetPublisher(recorder)

	setNow(testNow)

	t.Cleanup(func() {
		mq_client.SetPublisher(nil)
		Now = time.Now
		sqlDB.Close()
	})

	return recorder
}

func setNow(now time.Time) {
	Now = func() time.Time { return now }
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func createUser(t *testing.T, name string, userType types.UserType) *User {
	t.Helper()

	user := &User{
		Name:         name,
		Email:        name + "@goleiroon.test",
		PasswordHash: "x",
		Type:         userType,
		Status:       types.ApprovalApproved,
	}
	require.NoError(t, config.DataBase.Create(user).Error)
	require.NoError(t, config.DataBase.Create(&Saldo{UserID: user.ID, Coins: decimal.Zero, Retained: decimal.Zero}).Error)

	return user
}

func fund(t *testing.T, user *User, amount string) {
	t.Helper()

	err := config.DataBase.Transaction(func(tx *gorm.DB) error {
		saldo, err := LockSaldo(tx, user.ID)
		if err != nil {
			return err
		}

		return saldo.PlusFunds(tx, dec(amount), Reference{Type: ReferenceRecharge}, types.MovementRecharge)
	})
	require.NoError(t, err)
}

func saldoOf(t *testing.T, user *User) *Saldo {
	t.Helper()

	saldo, err := GetSaldo(user.ID)
	require.NoError(t, err)

	return saldo
}

func requireSaldo(t *testing.T, user *User, coins, retained string) {
	t.Helper()

	saldo := saldoOf(t, user)
	require.True(t, saldo.Coins.Equal(dec(coins)), "saldo_coins: want %s, got %s", coins, saldo.Coins)
	require.True(t, saldo.Retained.Equal(dec(retained)), "saldo_retido: want %s, got %s", retained, saldo.Retained)
}
