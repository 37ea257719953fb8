package push_service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Send(t *testing.T) {
	var batches []int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var messages []Message
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&messages))
		batches = append(batches, len(messages))

		data := make([]map[string]interface{}, 0, len(messages))
		for _, m := range messages {
			if m.To == "ExponentPushToken[gone]" {
				data = append(data, map[string]interface{}{
					"status":  "error",
					"message": "not registered",
					"details": map[string]string{"error": ErrorDeviceNotRegistered},
				})
				continue
			}
			data = append(data, map[string]interface{}{"status": "ok", "id": "ticket"})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
	}))
	defer server.Close()

	messages := make([]Message, 0, BatchSize+1)
	for i := 0; i < BatchSize; i++ {
		messages = append(messages, Message{To: fmt.Sprintf("ExponentPushToken[%d]", i), Title: "Oi"})
	}
	messages = append(messages, Message{To: "ExponentPushToken[gone]", Title: "Oi"})

	tickets, err := NewClient(server.URL).Send(context.Background(), messages)
	require.NoError(t, err)

	assert.Equal(t, []int{BatchSize, 1}, batches)
	require.Len(t, tickets, BatchSize+1)
	assert.Equal(t, StatusOK, tickets[0].Status)
	assert.False(t, tickets[0].DeviceNotRegistered())

	last := tickets[BatchSize]
	assert.Equal(t, "ExponentPushToken[gone]", last.To)
	assert.True(t, last.DeviceNotRegistered())
}

func TestClient_SendMissingTickets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"status":"ok"}]}`))
	}))
	defer server.Close()

	tickets, err := NewClient(server.URL).Send(context.Background(), []Message{{To: "a"}, {To: "b"}})
	require.NoError(t, err)
	require.Len(t, tickets, 2)

	assert.Equal(t, StatusOK, tickets[0].Status)
	assert.Equal(t, StatusError, tickets[1].Status)
	assert.False(t, tickets[1].DeviceNotRegistered())
}

func TestClient_SendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"errors":[{"code":"RATE_LIMIT","message":"slow down"}]}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Send(context.Background(), []Message{{To: "a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "slow down")
}
