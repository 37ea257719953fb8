package models

import (
	"github.com/shopspring/decimal"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/types"
)

type Dashboard struct {
	UsersByType          map[types.UserType]int64          `json:"usuarios_por_tipo"`
	UsersByStatus        map[types.ApprovalStatus]int64    `json:"usuarios_por_status"`
	ConvocationsByStatus map[types.ConvocationStatus]int64 `json:"convocacoes_por_status"`
	PendingRecharges     int64                             `json:"recargas_pendentes"`
	PendingWithdrawals   int64                             `json:"saques_pendentes"`
	OpenTickets          int64                             `json:"chamados_abertos"`
	TotalCoins           decimal.Decimal                   `json:"total_saldo_coins"`
	TotalRetained        decimal.Decimal                   `json:"total_saldo_retido"`
	Revenue              decimal.Decimal                   `json:"receita_plataforma"`
}

type groupCount struct {
	Name  string
	Count int64
}

func countBy(model interface{}, column string) ([]groupCount, error) {
	var rows []groupCount

	err := config.DataBase.Model(model).
		Select(column + " AS name, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error

	return rows, err
}

func GetDashboard() (*Dashboard, error) {
	dashboard := &Dashboard{
		UsersByType:          map[types.UserType]int64{},
		UsersByStatus:        map[types.ApprovalStatus]int64{},
		ConvocationsByStatus: map[types.ConvocationStatus]int64{},
	}

	rows, err := countBy(&User{}, "tipo")
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		dashboard.UsersByType[types.UserType(row.Name)] = row.Count
	}

	if rows, err = countBy(&User{}, "status"); err != nil {
		return nil, err
	}
	for _, row := range rows {
		dashboard.UsersByStatus[types.ApprovalStatus(row.Name)] = row.Count
	}

	if rows, err = countBy(&Convocation{}, "status"); err != nil {
		return nil, err
	}
	for _, row := range rows {
		dashboard.ConvocationsByStatus[types.ConvocationStatus(row.Name)] = row.Count
	}

	if err := config.DataBase.Model(&Recharge{}).Where("status = ?", types.ApprovalPending).Count(&dashboard.PendingRecharges).Error; err != nil {
		return nil, err
	}
	if err := config.DataBase.Model(&Withdrawal{}).Where("status = ?", types.ApprovalPending).Count(&dashboard.PendingWithdrawals).Error; err != nil {
		return nil, err
	}
	if err := config.DataBase.Model(&SupportTicket{}).Where("status <> ?", types.TicketClosed).Count(&dashboard.OpenTickets).Error; err != nil {
		return nil, err
	}

	var totals struct {
		Coins    decimal.NullDecimal
		Retained decimal.NullDecimal
	}
	err = config.DataBase.Model(&Saldo{}).
		Select("SUM(saldo_coins) AS coins, SUM(saldo_retido) AS retained").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	dashboard.TotalCoins = totals.Coins.Decimal
	dashboard.TotalRetained = totals.Retained.Decimal

	if dashboard.Revenue, err = TotalRevenue(); err != nil {
		return nil, err
	}

	return dashboard, nil
}
