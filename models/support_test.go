package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goleiroon/goleiroon/mq_client"
	"github.com/goleiroon/goleiroon/types"
)

func TestSupportTicketFlow(t *testing.T) {
	recorder := setupDB(t)
	user := createUser(t, "ana", types.UserTypeOrganizer)
	admin := createUser(t, "admin", types.UserTypeAdmin)
	stranger := createUser(t, "estranho", types.UserTypeGoalkeeper)

	_, err := OpenTicket(user, "Recarga", "   ")
	assert.Equal(t, ErrEmptyMessage, err)

	ticket, err := OpenTicket(user, "Recarga", "Minha recarga não caiu")
	require.NoError(t, err)
	assert.Equal(t, types.TicketOpen, ticket.Status)

	_, err = FindTicket(stranger, ticket.ID)
	assert.Equal(t, ErrNotTicketUser, err)
	_, err = PostMessage(stranger, ticket.ID, "oi")
	assert.Equal(t, ErrNotTicketUser, err)

	first, err := TicketMessages(user, ticket.ID, 0)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.False(t, first[0].FromAdmin)

	reply, err := PostMessage(admin, ticket.ID, "Vamos verificar")
	require.NoError(t, err)
	assert.True(t, reply.FromAdmin)

	stored, err := FindTicket(admin, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, types.TicketInProgress, stored.Status)

	event := recorder.Last(mq_client.EventSupportReplied)
	require.NotNil(t, event)
	assert.Equal(t, []uint64{user.ID}, event.Recipients)

	newer, err := TicketMessages(user, ticket.ID, first[0].ID)
	require.NoError(t, err)
	require.Len(t, newer, 1)
	assert.Equal(t, reply.ID, newer[0].ID)

	closed, err := CloseTicket(user, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, types.TicketClosed, closed.Status)

	_, err = PostMessage(user, ticket.ID, "mais uma coisa")
	assert.Equal(t, ErrTicketClosed, err)
	_, err = CloseTicket(admin, ticket.ID)
	assert.Equal(t, ErrTicketClosed, err)

	assert.Equal(t, 1, recorder.Count(mq_client.EventSupportReplied))
}

func TestTicketsListing(t *testing.T) {
	setupDB(t)
	user := createUser(t, "ana", types.UserTypeOrganizer)
	other := createUser(t, "bia", types.UserTypeOrganizer)

	_, err := OpenTicket(user, "Saque", "Quando cai?")
	require.NoError(t, err)
	closed, err := OpenTicket(other, "Conta", "Trocar email")
	require.NoError(t, err)
	_, err = CloseTicket(other, closed.ID)
	require.NoError(t, err)

	mine, err := TicketsByUser(user.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	open, err := Tickets(types.TicketOpen, 1, 10)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, user.ID, open[0].UserID)

	all, err := Tickets("", 1, 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
