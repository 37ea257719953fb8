package models

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/mq_client"
	"github.com/goleiroon/goleiroon/types"
)

type SupportTicket struct {
	ID        uint64             `json:"id" gorm:"primaryKey"`
	UserID    uint64             `json:"usuario_id" gorm:"column:usuario_id;index;not null"`
	Subject   string             `json:"assunto" gorm:"column:assunto;not null"`
	Status    types.TicketStatus `json:"status" gorm:"index;not null"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (SupportTicket) TableName() string {
	return "chamados_suporte"
}

type SupportMessage struct {
	ID        uint64    `json:"id" gorm:"primaryKey"`
	TicketID  uint64    `json:"chamado_id" gorm:"column:chamado_id;index;not null"`
	SenderID  uint64    `json:"remetente_id" gorm:"column:remetente_id;not null"`
	Content   string    `json:"conteudo" gorm:"column:conteudo;type:text;not null"`
	FromAdmin bool      `json:"do_admin" gorm:"column:do_admin;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (SupportMessage) TableName() string {
	return "mensagens_suporte"
}

func (t *SupportTicket) visibleTo(user *User) bool {
	return user.IsAdmin() || t.UserID == user.ID
}

// OpenTicket creates a ticket together with its first message.
func OpenTicket(user *User, subject, content string) (*SupportTicket, error) {
	subject, content = strings.TrimSpace(subject), strings.TrimSpace(content)
	if len(subject) == 0 || len(content) == 0 {
		return nil, ErrEmptyMessage
	}

	ticket := &SupportTicket{UserID: user.ID, Subject: subject, Status: types.TicketOpen}

	err := config.DataBase.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ticket).Error; err != nil {
			return err
		}

		return tx.Create(&SupportMessage{TicketID: ticket.ID, SenderID: user.ID, Content: content}).Error
	})
	if err != nil {
		return nil, err
	}

	return ticket, nil
}

// PostMessage appends to a ticket. An admin reply moves an open ticket to em_atendimento.
func PostMessage(user *User, ticketID uint64, content string) (*SupportMessage, error) {
	content = strings.TrimSpace(content)
	if len(content) == 0 {
		return nil, ErrEmptyMessage
	}

	ticket := &SupportTicket{}
	message := &SupportMessage{TicketID: ticketID, SenderID: user.ID, Content: content, FromAdmin: user.IsAdmin()}

	err := config.DataBase.Transaction(func(tx *gorm.DB) error {
		if err := Lock(tx).First(ticket, ticketID).Error; err != nil {
			return notFoundOr(err)
		}
		if !ticket.visibleTo(user) {
			return ErrNotTicketUser
		}
		if ticket.Status == types.TicketClosed {
			return ErrTicketClosed
		}

		if err := tx.Create(message).Error; err != nil {
			return err
		}

		if message.FromAdmin && ticket.Status == types.TicketOpen {
			ticket.Status = types.TicketInProgress
		}

		return tx.Save(ticket).Error
	})
	if err != nil {
		return nil, err
	}

	if message.FromAdmin && ticket.UserID != user.ID {
		mq_client.EnqueueEvent(mq_client.EventSupportReplied, ticket, ticket.UserID)
	}

	return message, nil
}

func CloseTicket(user *User, ticketID uint64) (*SupportTicket, error) {
	ticket := &SupportTicket{}

	err := config.DataBase.Transaction(func(tx *gorm.DB) error {
		if err := Lock(tx).First(ticket, ticketID).Error; err != nil {
			return notFoundOr(err)
		}
		if !ticket.visibleTo(user) {
			return ErrNotTicketUser
		}
		if ticket.Status == types.TicketClosed {
			return ErrTicketClosed
		}

		ticket.Status = types.TicketClosed

		return tx.Save(ticket).Error
	})
	if err != nil {
		return nil, err
	}

	return ticket, nil
}

func FindTicket(user *User, ticketID uint64) (*SupportTicket, error) {
	ticket := &SupportTicket{}
	if err := config.DataBase.First(ticket, ticketID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	if !ticket.visibleTo(user) {
		return nil, ErrNotTicketUser
	}

	return ticket, nil
}

// TicketMessages returns the messages of a ticket with id greater than afterID, for polling.
func TicketMessages(user *User, ticketID uint64, afterID uint64) ([]*SupportMessage, error) {
	if _, err := FindTicket(user, ticketID); err != nil {
		return nil, err
	}

	var messages []*SupportMessage
	err := config.DataBase.
		Where("chamado_id = ? AND id > ?", ticketID, afterID).
		Order("id asc").
		Find(&messages).Error

	return messages, err
}

func TicketsByUser(userID uint64, page, limit int) ([]*SupportTicket, error) {
	var tickets []*SupportTicket

	err := config.DataBase.Where("usuario_id = ?", userID).
		Order("updated_at desc").
		Scopes(Paginate(page, limit)).
		Find(&tickets).Error

	return tickets, err
}

func Tickets(status types.TicketStatus, page, limit int) ([]*SupportTicket, error) {
	var tickets []*SupportTicket

	tx := config.DataBase.Model(&SupportTicket{})
	if len(status) > 0 {
		tx = tx.Where("status = ?", status)
	}

	err := tx.Order("updated_at desc").Scopes(Paginate(page, limit)).Find(&tickets).Error

	return tickets, err
}
