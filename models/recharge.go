package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
	"gorm.io/gorm"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/mq_client"
	"github.com/goleiroon/goleiroon/services/pix"
	"github.com/goleiroon/goleiroon/types"
)

// Recharge is a PIX payment in reais that buys coins once an admin confirms it.
type Recharge struct {
	ID              uint64               `json:"id" gorm:"primaryKey"`
	UserID          uint64               `json:"usuario_id" gorm:"column:usuario_id;index;not null;uniqueIndex:idx_recargas_idempotencia,priority:1"`
	AmountBRL       decimal.Decimal      `json:"valor_reais" gorm:"column:valor_reais;type:decimal(20,2);not null"`
	Coins           decimal.Decimal      `json:"quantidade_coins" gorm:"column:quantidade_coins;type:decimal(20,2);not null"`
	FeeRate         decimal.Decimal      `json:"taxa_percentual" gorm:"column:taxa_percentual;type:decimal(5,2);not null"`
	FeeAmount       decimal.Decimal      `json:"valor_taxa" gorm:"column:valor_taxa;type:decimal(20,2);not null"`
	TxID            string               `json:"txid" gorm:"column:txid;uniqueIndex;not null"`
	IdempotencyKey  null.String          `json:"-" gorm:"column:chave_idempotencia;uniqueIndex:idx_recargas_idempotencia,priority:2"`
	PixPayload      string               `json:"pix_copia_cola" gorm:"column:pix_copia_cola;type:text"`
	Status          types.ApprovalStatus `json:"status" gorm:"index;not null"`
	RejectionReason null.String          `json:"motivo_rejeicao" gorm:"column:motivo_rejeicao"`
	ReviewedBy      null.Uint64          `json:"aprovado_por" gorm:"column:aprovado_por"`
	ProcessedAt     null.Time            `json:"processado_em" gorm:"column:processado_em"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func (Recharge) TableName() string {
	return "recargas_coins"
}

func (r *Recharge) Reference() Reference {
	return Reference{ID: r.ID, Type: ReferenceRecharge}
}

// Credit is what lands in saldo_coins on approval.
func (r *Recharge) Credit() decimal.Decimal {
	return r.Coins.Sub(r.FeeAmount)
}

// RequestRecharge opens a pending recharge and its PIX charge. Repeating a request
// with the same idempotency key returns the first recharge untouched.
func RequestRecharge(user *User, amount decimal.Decimal, idempotencyKey string) (*Recharge, error) {
	idempotencyKey = strings.TrimSpace(idempotencyKey)

	if len(idempotencyKey) > 0 {
		existing, err := findKeyedRecharge(user.ID, idempotencyKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	fee, err := CurrentFeeConfig(config.DataBase)
	if err != nil {
		return nil, err
	}

	amount = amount.Round(2)
	if amount.LessThan(fee.MinRecharge) {
		return nil, ErrBelowMinimum
	}

	coins := amount.Mul(fee.CoinsPerReal).Round(2)
	recharge := &Recharge{
		UserID:         user.ID,
		AmountBRL:      amount,
		Coins:          coins,
		FeeRate:        fee.RechargeRate,
		FeeAmount:      FeeFor(coins, fee.RechargeRate),
		TxID:           pix.NewTxID(),
		IdempotencyKey: nullString(idempotencyKey),
		Status:         types.ApprovalPending,
	}
	recharge.PixPayload = pix.Payload(pix.Charge{
		Merchant: pix.Merchant{
			Key:  config.App.Pix.MerchantKey,
			Name: config.App.Pix.MerchantName,
			City: config.App.Pix.MerchantCity,
		},
		Amount: amount,
		TxID:   recharge.TxID,
	})

	return insertRecharge(recharge)
}

func findKeyedRecharge(userID uint64, idempotencyKey string) (*Recharge, error) {
	recharge := &Recharge{}
	err := config.DataBase.Where("usuario_id = ? AND chave_idempotencia = ?", userID, idempotencyKey).First(recharge).Error
	if err != nil {
		return nil, err
	}

	return recharge, nil
}

// insertRecharge stores r. When a concurrent request stored the same idempotency
// key first, that recharge is returned instead.
func insertRecharge(r *Recharge) (*Recharge, error) {
	err := config.DataBase.Create(r).Error
	if err == nil {
		return r, nil
	}
	if !r.IdempotencyKey.Valid || !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	existing, findErr := findKeyedRecharge(r.UserID, r.IdempotencyKey.String)
	if findErr != nil {
		return nil, err
	}

	return existing, nil
}

// lockPendingRecharge loads a recharge FOR UPDATE and refuses anything already reviewed.
func lockPendingRecharge(tx *gorm.DB, id uint64) (*Recharge, error) {
	recharge := &Recharge{}
	if err := Lock(tx).First(recharge, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	if recharge.Status != types.ApprovalPending {
		return nil, ErrAlreadyProcessed
	}

	return recharge, nil
}

// ApproveRecharge credits the coins net of fee to the user's saldo.
func ApproveRecharge(admin *User, id uint64) (*Recharge, error) {
	var recharge *Recharge
	var saldo *Saldo

	err := config.DataBase.Transaction(func(tx *gorm.DB) error {
		var err error
		recharge, err = lockPendingRecharge(tx, id)
		if err != nil {
			return err
		}

		saldo, err = LockSaldo(tx, recharge.UserID)
		if err != nil {
			return err
		}
		if credit := recharge.Credit(); credit.IsPositive() {
			if err := saldo.PlusFunds(tx, credit, recharge.Reference(), types.MovementRecharge); err != nil {
				return err
			}
		}
		if err := RevenueCredit(tx, recharge.FeeAmount, recharge.Reference(), recharge.UserID); err != nil {
			return err
		}

		recharge.Status = types.ApprovalApproved
		recharge.ReviewedBy = null.Uint64From(admin.ID)
		recharge.ProcessedAt = null.TimeFrom(Now())

		return tx.Save(recharge).Error
	})
	if err != nil {
		return nil, err
	}

	saldo.Flush()
	mq_client.EnqueueEvent(mq_client.EventRechargeApproved, recharge, recharge.UserID)

	return recharge, nil
}

func RejectRecharge(admin *User, id uint64, reason string) (*Recharge, error) {
	var recharge *Recharge

	err := config.DataBase.Transaction(func(tx *gorm.DB) error {
		var err error
		recharge, err = lockPendingRecharge(tx, id)
		if err != nil {
			return err
		}

		recharge.Status = types.ApprovalRejected
		recharge.RejectionReason = nullString(reason)
		recharge.ReviewedBy = null.Uint64From(admin.ID)
		recharge.ProcessedAt = null.TimeFrom(Now())

		return tx.Save(recharge).Error
	})
	if err != nil {
		return nil, err
	}

	mq_client.EnqueueEvent(mq_client.EventRechargeRejected, recharge, recharge.UserID)

	return recharge, nil
}

func FindRecharge(id uint64) (*Recharge, error) {
	recharge := &Recharge{}
	if err := config.DataBase.First(recharge, id).Error; err != nil {
		return nil, notFoundOr(err)
	}

	return recharge, nil
}

// Recharges lists recharges, restricted to userID when it is not zero.
func Recharges(userID uint64, status types.ApprovalStatus, page, limit int) ([]*Recharge, error) {
	var recharges []*Recharge

	tx := config.DataBase.Model(&Recharge{})
	if userID > 0 {
		tx = tx.Where("usuario_id = ?", userID)
	}
	if len(status) > 0 {
		tx = tx.Where("status = ?", status)
	}

	err := tx.Order("id desc").Scopes(Paginate(page, limit)).Find(&recharges).Error

	return recharges, err
}
