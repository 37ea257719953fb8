package engines

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/models"
	"github.com/goleiroon/goleiroon/mq_client"
	"github.com/goleiroon/goleiroon/services/push_service"
)

type fakeSender struct {
	sent    []push_service.Message
	tickets func(messages []push_service.Message) []push_service.Ticket
	err     error
}

func (s *fakeSender) Send(ctx context.Context, messages []push_service.Message) ([]push_service.Ticket, error) {
	s.sent = append(s.sent, messages...)

	if s.tickets == nil {
		tickets := make([]push_service.Ticket, 0, len(messages))
		for _, m := range messages {
			tickets = append(tickets, push_service.Ticket{To: m.To, Status: push_service.StatusOK})
		}
		return tickets, s.err
	}

	return s.tickets(messages), s.err
}

func setupDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.Migrate(db))
	config.DataBase = db

	t.Cleanup(func() { sqlDB.Close() })
}

func eventPayload(t *testing.T, kind mq_client.EventKind, data interface{}, recipients ...uint64) []byte {
	t.Helper()

	raw, err := json.Marshal(data)
	require.NoError(t, err)

	payload, err := json.Marshal(mq_client.Event{Kind: kind, Recipients: recipients, Data: raw})
	require.NoError(t, err)

	return payload
}

func TestNotification(t *testing.T) {
	tests := []struct {
		kind  mq_client.EventKind
		data  string
		title string
		body  string
		ok    bool
	}{
		{mq_client.EventConvocationCreated, `{"id":1}`, "Nova convocação", "Você foi convocado para um jogo. Responda em até 30 minutos.", true},
		{mq_client.EventRechargeApproved, `{"id":12}`, "Recarga aprovada", "Sua recarga #12 foi creditada.", true},
		{mq_client.EventWithdrawalRejected, `{"id":3}`, "Saque rejeitado", "Seu saque #3 foi rejeitado e os coins devolvidos.", true},
		{mq_client.EventSupportReplied, `{"id":5,"assunto":"Recarga"}`, "Suporte", "Nova resposta no chamado \"Recarga\".", true},
		{mq_client.EventBalanceUpdated, `{"usuario_id":1}`, "", "", false},
		{"something.else", ``, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			title, body, ok := Notification(&mq_client.Event{Kind: tt.kind, Data: json.RawMessage(tt.data)})

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.title, title)
			assert.Equal(t, tt.body, body)
		})
	}
}

func TestNotificationWorker_Process(t *testing.T) {
	setupDB(t)

	_, err := models.RegisterPushToken(1, "ExponentPushToken[ok]", "ios")
	require.NoError(t, err)
	_, err = models.RegisterPushToken(1, "ExponentPushToken[gone]", "android")
	require.NoError(t, err)
	_, err = models.RegisterPushToken(2, "ExponentPushToken[other]", "ios")
	require.NoError(t, err)

	sender := &fakeSender{
		tickets: func(messages []push_service.Message) []push_service.Ticket {
			tickets := make([]push_service.Ticket, 0, len(messages))
			for _, m := range messages {
				if m.To == "ExponentPushToken[gone]" {
					tickets = append(tickets, push_service.Ticket{To: m.To, Status: push_service.StatusError, Error: push_service.ErrorDeviceNotRegistered})
					continue
				}
				tickets = append(tickets, push_service.Ticket{To: m.To, Status: push_service.StatusOK})
			}
			return tickets
		},
	}
	worker := NewNotificationWorker(sender)

	require.NoError(t, worker.Process(eventPayload(t, mq_client.EventRechargeApproved, map[string]interface{}{"id": 9}, 1)))

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "Recarga aprovada", sender.sent[0].Title)
	assert.Equal(t, "default", sender.sent[0].Sound)

	tokens, err := models.PushTokensFor([]uint64{1, 2})
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	for _, token := range tokens {
		assert.NotEqual(t, "ExponentPushToken[gone]", token.Token)
	}
}

func TestNotificationWorker_Skips(t *testing.T) {
	setupDB(t)

	_, err := models.RegisterPushToken(1, "ExponentPushToken[ok]", "ios")
	require.NoError(t, err)

	sender := &fakeSender{}
	worker := NewNotificationWorker(sender)

	require.NoError(t, worker.Process(eventPayload(t, mq_client.EventBalanceUpdated, map[string]interface{}{}, 1)))
	require.NoError(t, worker.Process(eventPayload(t, mq_client.EventUserApproved, map[string]interface{}{})))
	require.NoError(t, worker.Process(eventPayload(t, mq_client.EventUserApproved, map[string]interface{}{}, 99)))
	assert.Empty(t, sender.sent)

	assert.Error(t, worker.Process([]byte("{")))
}

func TestNotificationWorker_SendError(t *testing.T) {
	setupDB(t)

	_, err := models.RegisterPushToken(1, "ExponentPushToken[ok]", "ios")
	require.NoError(t, err)

	sender := &fakeSender{err: errors.New("expo down")}
	worker := NewNotificationWorker(sender)

	err = worker.Process(eventPayload(t, mq_client.EventUserApproved, map[string]interface{}{}, 1))
	assert.EqualError(t, err, "expo down")
}
