package engines

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/metrics"
	"github.com/goleiroon/goleiroon/models"
	"github.com/goleiroon/goleiroon/mq_client"
	"github.com/goleiroon/goleiroon/services/push_service"
)

type PushSender interface {
	Send(ctx context.Context, messages []push_service.Message) ([]push_service.Ticket, error)
}

// NotificationWorker turns domain events into Expo pushes for their recipients.
type NotificationWorker struct {
	Sender PushSender
}

func NewNotificationWorker(sender PushSender) *NotificationWorker {
	return &NotificationWorker{Sender: sender}
}

type notificationPayload struct {
	ID        uint64 `json:"id"`
	Subject   string `json:"assunto"`
	Status    string `json:"status"`
	GameAt    string `json:"data_jogo"`
	Coins     string `json:"quantidade_coins"`
	Rejection string `json:"motivo_rejeicao"`
}

// Notification returns the push text for an event. ok is false for events users are not notified about.
func Notification(event *mq_client.Event) (title string, body string, ok bool) {
	payload := notificationPayload{}
	if len(event.Data) > 0 {
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			config.Logger.Warnf("notification: cannot decode %s payload: %v", event.Kind, err)
		}
	}

	switch event.Kind {
	case mq_client.EventConvocationCreated:
		return "Nova convocação", "Você foi convocado para um jogo. Responda em até 30 minutos.", true
	case mq_client.EventConvocationAccepted:
		return "Convocação aceita", "O goleiro confirmou presença no seu jogo.", true
	case mq_client.EventConvocationDeclined:
		return "Convocação recusada", "O goleiro recusou a convocação. Seus coins foram devolvidos.", true
	case mq_client.EventConvocationExpired:
		return "Convocação perdida", "A convocação expirou sem resposta.", true
	case mq_client.EventConvocationCancelled:
		return "Convocação cancelada", "O organizador cancelou a convocação.", true
	case mq_client.EventConvocationCompleted:
		return "Jogo concluído", "Os coins do jogo foram liberados. Não esqueça de avaliar!", true
	case mq_client.EventRechargeApproved:
		return "Recarga aprovada", fmt.Sprintf("Sua recarga #%d foi creditada.", payload.ID), true
	case mq_client.EventRechargeRejected:
		return "Recarga rejeitada", fmt.Sprintf("Sua recarga #%d foi rejeitada.", payload.ID), true
	case mq_client.EventWithdrawalApproved:
		return "Saque pago", fmt.Sprintf("Seu saque #%d foi pago via PIX.", payload.ID), true
	case mq_client.EventWithdrawalRejected:
		return "Saque rejeitado", fmt.Sprintf("Seu saque #%d foi rejeitado e os coins devolvidos.", payload.ID), true
	case mq_client.EventSupportReplied:
		return "Suporte", fmt.Sprintf("Nova resposta no chamado \"%s\".", payload.Subject), true
	case mq_client.EventUserApproved:
		return "Cadastro aprovado", "Seu cadastro foi aprovado. Bons jogos!", true
	case mq_client.EventUserRejected:
		return "Cadastro rejeitado", "Seu cadastro não foi aprovado.", true
	default:
		return "", "", false
	}
}

func (w *NotificationWorker) Process(payload []byte) error {
	event, err := mq_client.DecodeEvent(payload)
	if err != nil {
		return err
	}

	title, body, ok := Notification(event)
	if !ok || len(event.Recipients) == 0 {
		return nil
	}

	tokens, err := models.PushTokensFor(event.Recipients)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	messages := make([]push_service.Message, 0, len(tokens))
	for _, token := range tokens {
		messages = append(messages, push_service.Message{
			To:    token.Token,
			Title: title,
			Body:  body,
			Sound: "default",
			Data:  map[string]interface{}{"kind": event.Kind, "data": event.Data},
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tickets, err := w.Sender.Send(ctx, messages)

	var stale []string
	for _, ticket := range tickets {
		metrics.RecordPush(ticket.Status)
		if ticket.DeviceNotRegistered() {
			stale = append(stale, ticket.To)
		} else if ticket.Status != push_service.StatusOK {
			config.Logger.WithField("token", ticket.To).Warnf("push failed: %s %s", ticket.Error, ticket.Message)
		}
	}

	if len(stale) > 0 {
		if err := models.DeletePushTokens(stale); err != nil {
			config.Logger.Errorf("Failed to delete stale push tokens: %v", err)
		}
	}

	return err
}
