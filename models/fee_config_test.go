package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/types"
)

func TestFeeFor(t *testing.T) {
	tests := []struct {
		amount, rate, fee string
	}{
		{"100", "10", "10"},
		{"33.33", "10", "3.33"},
		{"12.35", "15", "1.85"},
		{"50", "0", "0"},
	}

	for _, tt := range tests {
		assert.True(t, FeeFor(dec(tt.amount), dec(tt.rate)).Equal(dec(tt.fee)), "%s at %s%%", tt.amount, tt.rate)
	}
}

func TestCurrentFeeConfig_SeedsDefaults(t *testing.T) {
	setupDB(t)

	fee, err := CurrentFeeConfig(config.DataBase)
	require.NoError(t, err)
	assert.True(t, fee.ConvocationRate.Equal(config.App.Fees.Convocation))
	assert.True(t, fee.MinWithdrawal.Equal(config.App.Fees.MinWithdrawal))

	again, err := CurrentFeeConfig(config.DataBase)
	require.NoError(t, err)
	assert.Equal(t, fee.ID, again.ID)

	var count int64
	require.NoError(t, config.DataBase.Model(&FeeConfig{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateFeeConfig(t *testing.T) {
	setupDB(t)
	admin := createUser(t, "admin", types.UserTypeAdmin)

	fee, err := UpdateFeeConfig(admin, FeeConfigParams{
		ConvocationRate: decimal.NewNullDecimal(dec("12.5")),
		MinRecharge:     decimal.NewNullDecimal(dec("5")),
	})
	require.NoError(t, err)
	assert.True(t, fee.ConvocationRate.Equal(dec("12.5")))
	assert.True(t, fee.WithdrawalRate.Equal(config.App.Fees.Withdrawal))
	assert.Equal(t, admin.ID, fee.UpdatedBy.Uint64)

	invalid := []FeeConfigParams{
		{ConvocationRate: decimal.NewNullDecimal(dec("-1"))},
		{WithdrawalRate: decimal.NewNullDecimal(dec("100.01"))},
		{CoinsPerReal: decimal.NewNullDecimal(dec("0"))},
		{MinWithdrawal: decimal.NewNullDecimal(dec("-5"))},
	}
	for _, params := range invalid {
		_, err := UpdateFeeConfig(admin, params)
		assert.Equal(t, ErrInvalidFeeConfig, err)
	}

	current, err := CurrentFeeConfig(config.DataBase)
	require.NoError(t, err)
	assert.True(t, current.ConvocationRate.Equal(dec("12.5")))
	assert.True(t, current.MinRecharge.Equal(dec("5")))
}

func TestGetDashboard(t *testing.T) {
	setupDB(t)
	organizer, goalkeeper := convocationParties(t)

	book(t, organizer, goalkeeper, gameAt)
	_, err := RequestRecharge(organizer, dec("20"), "")
	require.NoError(t, err)
	_, err = OpenTicket(goalkeeper, "Ajuda", "Como saco?")
	require.NoError(t, err)

	dashboard, err := GetDashboard()
	require.NoError(t, err)

	assert.Equal(t, int64(1), dashboard.UsersByType[types.UserTypeOrganizer])
	assert.Equal(t, int64(1), dashboard.UsersByType[types.UserTypeGoalkeeper])
	assert.Equal(t, int64(2), dashboard.UsersByStatus[types.ApprovalApproved])
	assert.Equal(t, int64(1), dashboard.ConvocationsByStatus[types.ConvocationPending])
	assert.Equal(t, int64(1), dashboard.PendingRecharges)
	assert.Zero(t, dashboard.PendingWithdrawals)
	assert.Equal(t, int64(1), dashboard.OpenTickets)
	assert.True(t, dashboard.TotalCoins.Equal(dec("100")))
	assert.True(t, dashboard.TotalRetained.Equal(dec("100")))
	assert.True(t, dashboard.Revenue.IsZero())
}

func TestPushTokens(t *testing.T) {
	setupDB(t)
	ana := createUser(t, "ana", types.UserTypeOrganizer)
	beto := createUser(t, "beto", types.UserTypeGoalkeeper)

	_, err := RegisterPushToken(ana.ID, "ExponentPushToken[a]", "ios")
	require.NoError(t, err)
	_, err = RegisterPushToken(beto.ID, "ExponentPushToken[b]", "android")
	require.NoError(t, err)

	moved, err := RegisterPushToken(beto.ID, "ExponentPushToken[a]", "android")
	require.NoError(t, err)
	assert.Equal(t, beto.ID, moved.UserID)

	tokens, err := PushTokensFor([]uint64{ana.ID})
	require.NoError(t, err)
	assert.Empty(t, tokens)

	tokens, err = PushTokensFor([]uint64{beto.ID})
	require.NoError(t, err)
	assert.Len(t, tokens, 2)

	require.NoError(t, DeletePushTokens([]string{"ExponentPushToken[a]"}))
	require.NoError(t, DeletePushToken(beto.ID, "ExponentPushToken[b]"))

	tokens, err = PushTokensFor([]uint64{ana.ID, beto.ID})
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestVenues(t *testing.T) {
	setupDB(t)

	name, city := "Arena Central", "Recife"
	active := true
	venue := &Venue{}
	require.NoError(t, SaveVenue(venue, VenueParams{Name: &name, City: &city, Active: &active}))

	closedName := "Quadra Velha"
	closed := &Venue{}
	require.NoError(t, SaveVenue(closed, VenueParams{Name: &closedName, City: &city}))

	venues, err := ActiveVenues("recife")
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, venue.ID, venues[0].ID)

	blank := ""
	assert.Equal(t, ErrInvalidVenue, SaveVenue(&Venue{}, VenueParams{Name: &blank}))
}
