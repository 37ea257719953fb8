package mq_client

import (
	"encoding/json"
	"time"
)

type EventKind = string

var (
	EventConvocationCreated   EventKind = "convocation.created"
	EventConvocationAccepted  EventKind = "convocation.accepted"
	EventConvocationDeclined  EventKind = "convocation.declined"
	EventConvocationExpired   EventKind = "convocation.expired"
	EventConvocationCancelled EventKind = "convocation.cancelled"
	EventConvocationCompleted EventKind = "convocation.completed"

	EventRechargeApproved   EventKind = "recharge.approved"
	EventRechargeRejected   EventKind = "recharge.rejected"
	EventWithdrawalApproved EventKind = "withdrawal.approved"
	EventWithdrawalRejected EventKind = "withdrawal.rejected"

	EventBalanceUpdated EventKind = "balance.updated"
	EventSupportReplied EventKind = "support.replied"
	EventUserApproved   EventKind = "user.approved"
	EventUserRejected   EventKind = "user.rejected"
)

// Event is the envelope published for every domain change.
type Event struct {
	Kind       EventKind       `json:"kind"`
	Recipients []uint64        `json:"recipients"`
	Data       json.RawMessage `json:"data"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type Binding struct {
	Subject string
	Queue   string
}
