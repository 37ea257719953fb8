package models

import (
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/metrics"
	"github.com/goleiroon/goleiroon/mq_client"
	"github.com/goleiroon/goleiroon/types"
)

// Saldo is a user's coin wallet: spendable coins plus coins held in escrow.
type Saldo struct {
	ID        uint64          `json:"id" gorm:"primaryKey"`
	UserID    uint64          `json:"usuario_id" gorm:"column:usuario_id;uniqueIndex;not null"`
	Coins     decimal.Decimal `json:"saldo_coins" gorm:"column:saldo_coins;type:decimal(20,2);not null;default:0"`
	Retained  decimal.Decimal `json:"saldo_retido" gorm:"column:saldo_retido;type:decimal(20,2);not null;default:0"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	pending []*Movement
}

func (Saldo) TableName() string {
	return "saldos"
}

func (s *Saldo) Total() decimal.Decimal {
	return s.Coins.Add(s.Retained)
}

func (s *Saldo) fundsError(op string, amount decimal.Decimal, cause *Error) error {
	config.Logger.WithFields(map[string]interface{}{
		"usuario_id":   s.UserID,
		"amount":       amount.String(),
		"saldo_coins":  s.Coins.String(),
		"saldo_retido": s.Retained.String(),
	}).Warnf("Cannot %s funds", op)

	return cause
}

func (s *Saldo) PlusFunds(tx *gorm.DB, amount decimal.Decimal, ref Reference, kind types.MovementKind) error {
	if !amount.IsPositive() {
		return s.fundsError("add", amount, ErrInvalidAmount)
	}

	s.Coins = s.Coins.Add(amount)
	return s.save(tx, amount, ref, kind)
}

func (s *Saldo) SubFunds(tx *gorm.DB, amount decimal.Decimal, ref Reference, kind types.MovementKind) error {
	if !amount.IsPositive() {
		return s.fundsError("subtract", amount, ErrInvalidAmount)
	}
	if amount.GreaterThan(s.Coins) {
		return s.fundsError("subtract", amount, ErrInsufficientBalance)
	}

	s.Coins = s.Coins.Sub(amount)
	return s.save(tx, amount, ref, kind)
}

// LockFunds moves amount from saldo_coins into saldo_retido.
func (s *Saldo) LockFunds(tx *gorm.DB, amount decimal.Decimal, ref Reference, kind types.MovementKind) error {
	if !amount.IsPositive() {
		return s.fundsError("lock", amount, ErrInvalidAmount)
	}
	if amount.GreaterThan(s.Coins) {
		return s.fundsError("lock", amount, ErrInsufficientBalance)
	}

	s.Coins = s.Coins.Sub(amount)
	s.Retained = s.Retained.Add(amount)
	return s.save(tx, amount, ref, kind)
}

// UnlockFunds returns amount from saldo_retido to saldo_coins.
func (s *Saldo) UnlockFunds(tx *gorm.DB, amount decimal.Decimal, ref Reference, kind types.MovementKind) error {
	if !amount.IsPositive() {
		return s.fundsError("unlock", amount, ErrInvalidAmount)
	}
	if amount.GreaterThan(s.Retained) {
		return s.fundsError("unlock", amount, ErrInsufficientBalance)
	}

	s.Coins = s.Coins.Add(amount)
	s.Retained = s.Retained.Sub(amount)
	return s.save(tx, amount, ref, kind)
}

// UnlockAndSubFunds takes amount out of saldo_retido for good.
func (s *Saldo) UnlockAndSubFunds(tx *gorm.DB, amount decimal.Decimal, ref Reference, kind types.MovementKind) error {
	if !amount.IsPositive() {
		return s.fundsError("unlock", amount, ErrInvalidAmount)
	}
	if amount.GreaterThan(s.Retained) {
		return s.fundsError("unlock", amount, ErrInsufficientBalance)
	}

	s.Retained = s.Retained.Sub(amount)
	return s.save(tx, amount, ref, kind)
}

func (s *Saldo) save(tx *gorm.DB, amount decimal.Decimal, ref Reference, kind types.MovementKind) error {
	if err := tx.Save(s).Error; err != nil {
		return err
	}

	movement := &Movement{
		UserID:        s.UserID,
		Kind:          kind,
		Amount:        amount,
		ReferenceType: ref.Type,
		ReferenceID:   ref.ID,
		CoinsAfter:    s.Coins,
		RetainedAfter: s.Retained,
	}
	if err := tx.Create(movement).Error; err != nil {
		return err
	}

	s.pending = append(s.pending, movement)

	return nil
}

// Flush reports movements recorded since the last flush. Call it after the transaction commits.
func (s *Saldo) Flush() {
	for _, m := range s.pending {
		metrics.RecordCoinMovement(string(m.Kind))
		amount, _ := m.Amount.Float64()
		config.InfluxDB.NewPoint("coin_movements", map[string]string{
			"kind":       string(m.Kind),
			"usuario_id": strconv.FormatUint(m.UserID, 10),
		}, map[string]interface{}{
			"amount": amount,
		})
	}

	if len(s.pending) > 0 {
		mq_client.EnqueueEvent(mq_client.EventBalanceUpdated, s.ToJSON(), s.UserID)
	}

	s.pending = nil
}

type SaldoJSON struct {
	UserID   uint64          `json:"usuario_id"`
	Coins    decimal.Decimal `json:"saldo_coins"`
	Retained decimal.Decimal `json:"saldo_retido"`
	Total    decimal.Decimal `json:"saldo_total"`
}

func (s *Saldo) ToJSON() SaldoJSON {
	return SaldoJSON{
		UserID:   s.UserID,
		Coins:    s.Coins,
		Retained: s.Retained,
		Total:    s.Total(),
	}
}

// LockSaldo loads the user's wallet FOR UPDATE, creating an empty one if missing.
func LockSaldo(tx *gorm.DB, userID uint64) (*Saldo, error) {
	saldo := &Saldo{}

	err := Lock(tx).Where("usuario_id = ?", userID).First(saldo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		saldo = &Saldo{UserID: userID, Coins: decimal.Zero, Retained: decimal.Zero}
		if err := tx.Create(saldo).Error; err != nil {
			return nil, err
		}

		return saldo, nil
	}
	if err != nil {
		return nil, err
	}

	return saldo, nil
}

// LockSaldos locks several wallets in ascending user id order so concurrent
// settlements touching the same pair never deadlock.
func LockSaldos(tx *gorm.DB, userIDs ...uint64) (map[uint64]*Saldo, error) {
	ids := append([]uint64(nil), userIDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	saldos := make(map[uint64]*Saldo, len(ids))
	for _, id := range ids {
		if _, ok := saldos[id]; ok {
			continue
		}

		saldo, err := LockSaldo(tx, id)
		if err != nil {
			return nil, err
		}
		saldos[id] = saldo
	}

	return saldos, nil
}

// GetSaldo is the read-only view of a user's wallet.
func GetSaldo(userID uint64) (*Saldo, error) {
	saldo := &Saldo{}

	err := config.DataBase.Where("usuario_id = ?", userID).First(saldo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Saldo{UserID: userID, Coins: decimal.Zero, Retained: decimal.Zero}, nil
	}
	if err != nil {
		return nil, err
	}

	return saldo, nil
}

func flushAll(saldos ...*Saldo) {
	for _, s := range saldos {
		if s != nil {
			s.Flush()
		}
	}
}
