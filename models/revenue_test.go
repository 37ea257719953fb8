package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goleiroon/goleiroon/config"
)

func TestTotalRevenue(t *testing.T) {
	setupDB(t)

	total, err := TotalRevenue()
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	ref := Reference{ID: 1, Type: ReferenceConvocation}
	require.NoError(t, RevenueCredit(config.DataBase, dec("10"), ref, 1))
	require.NoError(t, RevenueCredit(config.DataBase, dec("2.50"), Reference{ID: 2, Type: ReferenceWithdrawal}, 2))
	require.NoError(t, RevenueCredit(config.DataBase, dec("0"), ref, 1))
	require.NoError(t, config.DataBase.Create(&Revenue{
		UserID:        1,
		ReferenceType: ref.Type,
		ReferenceID:   ref.ID,
		Debit:         dec("1.25"),
		Credit:        dec("0"),
	}).Error)

	total, err = TotalRevenue()
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("11.25")), total.String())
}
