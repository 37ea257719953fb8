package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/types"
)

// Movement is one ledger line written next to every wallet change.
type Movement struct {
	ID            uint64             `json:"id" gorm:"primaryKey"`
	UserID        uint64             `json:"usuario_id" gorm:"column:usuario_id;index;not null"`
	Kind          types.MovementKind `json:"tipo" gorm:"column:tipo;not null"`
	Amount        decimal.Decimal    `json:"valor" gorm:"column:valor;type:decimal(20,2);not null"`
	ReferenceType string             `json:"referencia_tipo" gorm:"column:referencia_tipo"`
	ReferenceID   uint64             `json:"referencia_id" gorm:"column:referencia_id"`
	CoinsAfter    decimal.Decimal    `json:"saldo_coins_apos" gorm:"column:saldo_coins_apos;type:decimal(20,2)"`
	RetainedAfter decimal.Decimal    `json:"saldo_retido_apos" gorm:"column:saldo_retido_apos;type:decimal(20,2)"`
	CreatedAt     time.Time          `json:"created_at"`
}

func (Movement) TableName() string {
	return "movimentacoes_coins"
}

func MovementsByUser(userID uint64, kind types.MovementKind, page, limit int) ([]*Movement, error) {
	var movements []*Movement

	tx := config.DataBase.Where("usuario_id = ?", userID)
	if len(kind) > 0 {
		tx = tx.Where("tipo = ?", kind)
	}

	err := tx.Order("id desc").Scopes(Paginate(page, limit)).Find(&movements).Error

	return movements, err
}
