package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/goleiroon/goleiroon/config"
)

// Revenue records platform fees. Credit is income, Debit a reversal.
type Revenue struct {
	ID            uint64          `json:"id" gorm:"primaryKey"`
	UserID        uint64          `json:"usuario_id" gorm:"column:usuario_id;index"`
	ReferenceType string          `json:"referencia_tipo" gorm:"column:referencia_tipo"`
	ReferenceID   uint64          `json:"referencia_id" gorm:"column:referencia_id"`
	Debit         decimal.Decimal `json:"debito" gorm:"column:debito;type:decimal(20,2);not null;default:0"`
	Credit        decimal.Decimal `json:"credito" gorm:"column:credito;type:decimal(20,2);not null;default:0"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (Revenue) TableName() string {
	return "receitas_plataforma"
}

func RevenueCredit(tx *gorm.DB, amount decimal.Decimal, reference Reference, userID uint64) error {
	if !amount.IsPositive() {
		return nil
	}

	return tx.Create(&Revenue{
		UserID:        userID,
		ReferenceType: reference.Type,
		ReferenceID:   reference.ID,
		Credit:        amount,
		Debit:         decimal.Zero,
	}).Error
}

func TotalRevenue() (decimal.Decimal, error) {
	var total decimal.NullDecimal

	err := config.DataBase.Model(&Revenue{}).
		Select("COALESCE(SUM(credito), 0) - COALESCE(SUM(debito), 0)").
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}

	return total.Decimal, nil
}
