package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
	"gorm.io/gorm"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/mq_client"
	"github.com/goleiroon/goleiroon/types"
)

// Withdrawal converts coins back to reais through a manual PIX transfer.
// The coins stay in saldo_retido until an admin pays or rejects it.
type Withdrawal struct {
	ID              uint64               `json:"id" gorm:"primaryKey"`
	UserID          uint64               `json:"usuario_id" gorm:"column:usuario_id;index;not null"`
	Coins           decimal.Decimal      `json:"quantidade_coins" gorm:"column:quantidade_coins;type:decimal(20,2);not null"`
	FeeRate         decimal.Decimal      `json:"taxa_percentual" gorm:"column:taxa_percentual;type:decimal(5,2);not null"`
	FeeAmount       decimal.Decimal      `json:"valor_taxa" gorm:"column:valor_taxa;type:decimal(20,2);not null"`
	NetAmount       decimal.Decimal      `json:"valor_liquido" gorm:"column:valor_liquido;type:decimal(20,2);not null"`
	PixKey          string               `json:"chave_pix" gorm:"column:chave_pix;not null"`
	PixKeyType      types.PixKeyType     `json:"tipo_chave" gorm:"column:tipo_chave"`
	Status          types.ApprovalStatus `json:"status" gorm:"index;not null"`
	RejectionReason null.String          `json:"motivo_rejeicao" gorm:"column:motivo_rejeicao"`
	ReviewedBy      null.Uint64          `json:"aprovado_por" gorm:"column:aprovado_por"`
	ProcessedAt     null.Time            `json:"processado_em" gorm:"column:processado_em"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func (Withdrawal) TableName() string {
	return "saques_pix"
}

func (w *Withdrawal) Reference() Reference {
	return Reference{ID: w.ID, Type: ReferenceWithdrawal}
}

type WithdrawalParams struct {
	Amount     decimal.Decimal
	PixKey     string
	PixKeyType types.PixKeyType
}

func RequestWithdrawal(user *User, params WithdrawalParams) (*Withdrawal, error) {
	if !params.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	pixKey, pixKeyType := params.PixKey, params.PixKeyType
	if len(pixKey) == 0 {
		pixKey, pixKeyType = user.PixKey.String, types.PixKeyType(user.PixKeyType.String)
	}
	if len(pixKey) == 0 {
		return nil, ErrPixKeyRequired
	}

	var saldo *Saldo
	withdrawal := &Withdrawal{
		UserID:     user.ID,
		Coins:      params.Amount.Round(2),
		PixKey:     pixKey,
		PixKeyType: pixKeyType,
		Status:     types.ApprovalPending,
	}

	err := config.DataBase.Transaction(func(tx *gorm.DB) error {
		fee, err := CurrentFeeConfig(tx)
		if err != nil {
			return err
		}
		if withdrawal.Coins.LessThan(fee.MinWithdrawal) {
			return ErrBelowMinimum
		}

		withdrawal.FeeRate = fee.WithdrawalRate
		withdrawal.FeeAmount = FeeFor(withdrawal.Coins, fee.WithdrawalRate)
		withdrawal.NetAmount = withdrawal.Coins.Sub(withdrawal.FeeAmount).Div(fee.CoinsPerReal).Round(2)

		if err := tx.Create(withdrawal).Error; err != nil {
			return err
		}

		saldo, err = LockSaldo(tx, user.ID)
		if err != nil {
			return err
		}

		return saldo.LockFunds(tx, withdrawal.Coins, withdrawal.Reference(), types.MovementWithdrawalLock)
	})
	if err != nil {
		return nil, err
	}

	saldo.Flush()

	return withdrawal, nil
}

func lockPendingWithdrawal(tx *gorm.DB, id uint64) (*Withdrawal, error) {
	withdrawal := &Withdrawal{}
	if err := Lock(tx).First(withdrawal, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	if withdrawal.Status != types.ApprovalPending {
		return nil, ErrAlreadyProcessed
	}

	return withdrawal, nil
}

// reviewWithdrawal settles the retained coins: paid out when approve, returned otherwise.
func reviewWithdrawal(admin *User, id uint64, approve bool, reason string) (*Withdrawal, error) {
	var withdrawal *Withdrawal
	var saldo *Saldo

	err := config.DataBase.Transaction(func(tx *gorm.DB) error {
		var err error
		withdrawal, err = lockPendingWithdrawal(tx, id)
		if err != nil {
			return err
		}

		saldo, err = LockSaldo(tx, withdrawal.UserID)
		if err != nil {
			return err
		}

		ref := withdrawal.Reference()
		if approve {
			if err := saldo.UnlockAndSubFunds(tx, withdrawal.Coins, ref, types.MovementWithdrawalPaid); err != nil {
				return err
			}
			if err := RevenueCredit(tx, withdrawal.FeeAmount, ref, withdrawal.UserID); err != nil {
				return err
			}
			withdrawal.Status = types.ApprovalApproved
		} else {
			if err := saldo.UnlockFunds(tx, withdrawal.Coins, ref, types.MovementWithdrawalRefund); err != nil {
				return err
			}
			withdrawal.Status = types.ApprovalRejected
			withdrawal.RejectionReason = nullString(reason)
		}

		withdrawal.ReviewedBy = null.Uint64From(admin.ID)
		withdrawal.ProcessedAt = null.TimeFrom(Now())

		return tx.Save(withdrawal).Error
	})
	if err != nil {
		return nil, err
	}

	saldo.Flush()

	kind := mq_client.EventWithdrawalRejected
	if approve {
		kind = mq_client.EventWithdrawalApproved
	}
	mq_client.EnqueueEvent(kind, withdrawal, withdrawal.UserID)

	return withdrawal, nil
}

func ApproveWithdrawal(admin *User, id uint64) (*Withdrawal, error) {
	return reviewWithdrawal(admin, id, true, "")
}

func RejectWithdrawal(admin *User, id uint64, reason string) (*Withdrawal, error) {
	return reviewWithdrawal(admin, id, false, reason)
}

func FindWithdrawal(id uint64) (*Withdrawal, error) {
	withdrawal := &Withdrawal{}
	if err := config.DataBase.First(withdrawal, id).Error; err != nil {
		return nil, notFoundOr(err)
	}

	return withdrawal, nil
}

// Withdrawals lists withdrawals, restricted to userID when it is not zero.
func Withdrawals(userID uint64, status types.ApprovalStatus, page, limit int) ([]*Withdrawal, error) {
	var withdrawals []*Withdrawal

	tx := config.DataBase.Model(&Withdrawal{})
	if userID > 0 {
		tx = tx.Where("usuario_id = ?", userID)
	}
	if len(status) > 0 {
		tx = tx.Where("status = ?", status)
	}

	err := tx.Order("id desc").Scopes(Paginate(page, limit)).Find(&withdrawals).Error

	return withdrawals, err
}
