package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
	"gorm.io/gorm"

	"github.com/goleiroon/goleiroon/config"
)

const feeConfigCacheKey = "goleiroon:configuracoes_taxas"

var hundred = decimal.NewFromInt(100)

// FeeConfig is the admin-controlled economy settings. Rates are percentages.
type FeeConfig struct {
	ID              uint64          `json:"id" gorm:"primaryKey"`
	ConvocationRate decimal.Decimal `json:"taxa_convocacao" gorm:"column:taxa_convocacao;type:decimal(5,2);not null"`
	RechargeRate    decimal.Decimal `json:"taxa_recarga" gorm:"column:taxa_recarga;type:decimal(5,2);not null"`
	WithdrawalRate  decimal.Decimal `json:"taxa_saque" gorm:"column:taxa_saque;type:decimal(5,2);not null"`
	CoinsPerReal    decimal.Decimal `json:"coins_por_real" gorm:"column:coins_por_real;type:decimal(20,4);not null"`
	MinWithdrawal   decimal.Decimal `json:"saque_minimo" gorm:"column:saque_minimo;type:decimal(20,2);not null"`
	MinRecharge     decimal.Decimal `json:"recarga_minima" gorm:"column:recarga_minima;type:decimal(20,2);not null"`
	UpdatedBy       null.Uint64     `json:"atualizado_por" gorm:"column:atualizado_por"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (FeeConfig) TableName() string {
	return "configuracoes_taxas"
}

// FeeFor returns amount * rate%, rounded to cents.
func FeeFor(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Div(hundred).Round(2)
}

func (f *FeeConfig) Validate() error {
	for _, rate := range []decimal.Decimal{f.ConvocationRate, f.RechargeRate, f.WithdrawalRate} {
		if rate.IsNegative() || rate.GreaterThan(hundred) {
			return ErrInvalidFeeConfig
		}
	}
	if !f.CoinsPerReal.IsPositive() || f.MinWithdrawal.IsNegative() || f.MinRecharge.IsNegative() {
		return ErrInvalidFeeConfig
	}

	return nil
}

func defaultFeeConfig() *FeeConfig {
	fees := config.App.Fees

	return &FeeConfig{
		ConvocationRate: fees.Convocation,
		RechargeRate:    fees.Recharge,
		WithdrawalRate:  fees.Withdrawal,
		CoinsPerReal:    fees.CoinsPerReal,
		MinWithdrawal:   fees.MinWithdrawal,
		MinRecharge:     fees.MinRecharge,
	}
}

// CurrentFeeConfig returns the active row, seeding it from app.yml on first use.
func CurrentFeeConfig(tx *gorm.DB) (*FeeConfig, error) {
	fee := &FeeConfig{}
	if err := config.Redis.GetKey(feeConfigCacheKey, fee); err == nil && fee.ID > 0 {
		return fee, nil
	}

	fee = &FeeConfig{}
	err := tx.Order("id desc").First(fee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fee = defaultFeeConfig()
		if err := tx.Create(fee).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if err := config.Redis.SetKey(feeConfigCacheKey, fee, 10*time.Minute); err != nil {
		config.Logger.Warnf("Failed to cache fee config: %v", err)
	}

	return fee, nil
}

type FeeConfigParams struct {
	ConvocationRate decimal.NullDecimal
	RechargeRate    decimal.NullDecimal
	WithdrawalRate  decimal.NullDecimal
	CoinsPerReal    decimal.NullDecimal
	MinWithdrawal   decimal.NullDecimal
	MinRecharge     decimal.NullDecimal
}

func UpdateFeeConfig(admin *User, params FeeConfigParams) (*FeeConfig, error) {
	fee, err := CurrentFeeConfig(config.DataBase)
	if err != nil {
		return nil, err
	}

	if params.ConvocationRate.Valid {
		fee.ConvocationRate = params.ConvocationRate.Decimal
	}
	if params.RechargeRate.Valid {
		fee.RechargeRate = params.RechargeRate.Decimal
	}
	if params.WithdrawalRate.Valid {
		fee.WithdrawalRate = params.WithdrawalRate.Decimal
	}
	if params.CoinsPerReal.Valid {
		fee.CoinsPerReal = params.CoinsPerReal.Decimal
	}
	if params.MinWithdrawal.Valid {
		fee.MinWithdrawal = params.MinWithdrawal.Decimal
	}
	if params.MinRecharge.Valid {
		fee.MinRecharge = params.MinRecharge.Decimal
	}

	if err := fee.Validate(); err != nil {
		return nil, err
	}

	fee.UpdatedBy = null.Uint64From(admin.ID)
	if err := config.DataBase.Save(fee).Error; err != nil {
		return nil, err
	}

	if err := config.Redis.DeleteKey(feeConfigCacheKey); err != nil {
		config.Logger.Warnf("Failed to drop fee config cache: %v", err)
	}

	return fee, nil
}
