package queries

import (
	"github.com/goleiroon/goleiroon/controllers/helpers"
	"github.com/goleiroon/goleiroon/types"
)

type Pagination struct {
	Limit int `query:"limit" validate:"uint|max:100"`
	Page  int `query:"page" validate:"uint"`
}

type GoalkeeperFilters struct {
	City  string `query:"cidade"`
	Limit int    `query:"limit" validate:"uint|max:100"`
	Page  int    `query:"page" validate:"uint"`
}

func (t GoalkeeperFilters) Messages() map[string]string {
	return helpers.VaildateMessage("resource.goalkeeper")
}

type ConvocationFilters struct {
	Role     types.UserType          `query:"papel" validate:"ValidateRole"`
	Status   types.ConvocationStatus `query:"status" validate:"ValidateStatus"`
	TimeFrom int64                   `query:"time_from" validate:"uint"`
	TimeTo   int64                   `query:"time_to" validate:"uint"`
	OrderBy  types.OrderBy           `query:"order_by" validate:"ValidateOrderBy"`
	Limit    int                     `query:"limit" validate:"uint|max:100"`
	Page     int                     `query:"page" validate:"uint"`
}

func (t ConvocationFilters) ValidateRole(val types.UserType) bool {
	return len(val) == 0 || val == types.UserTypeOrganizer || val == types.UserTypeGoalkeeper
}

func (t ConvocationFilters) ValidateStatus(val types.ConvocationStatus) bool {
	switch val {
	case "", types.ConvocationPending, types.ConvocationAccepted, types.ConvocationDeclined,
		types.ConvocationLost, types.ConvocationCancelled, types.ConvocationCompleted:
		return true
	default:
		return false
	}
}

func (t ConvocationFilters) ValidateOrderBy(val types.OrderBy) bool {
	return helpers.ValidateOrderBy(val)
}

func (t ConvocationFilters) Messages() map[string]string {
	return helpers.VaildateMessage("convocation")
}

type MovementFilters struct {
	Kind  types.MovementKind `query:"tipo"`
	Limit int                `query:"limit" validate:"uint|max:100"`
	Page  int                `query:"page" validate:"uint"`
}

func (t MovementFilters) Messages() map[string]string {
	return helpers.VaildateMessage("account.movement")
}

type ReviewFilters struct {
	Status types.ApprovalStatus `query:"status" validate:"ValidateStatus"`
	Limit  int                  `query:"limit" validate:"uint|max:100"`
	Page   int                  `query:"page" validate:"uint"`
}

func (t ReviewFilters) ValidateStatus(val types.ApprovalStatus) bool {
	return len(val) == 0 || val == types.ApprovalPending || val == types.ApprovalApproved || val == types.ApprovalRejected
}

func (t ReviewFilters) Messages() map[string]string {
	return helpers.VaildateMessage("account.request")
}

type TicketFilters struct {
	Status types.TicketStatus `query:"status" validate:"ValidateStatus"`
	Limit  int                `query:"limit" validate:"uint|max:100"`
	Page   int                `query:"page" validate:"uint"`
}

func (t TicketFilters) ValidateStatus(val types.TicketStatus) bool {
	return len(val) == 0 || val == types.TicketOpen || val == types.TicketInProgress || val == types.TicketClosed
}

func (t TicketFilters) Messages() map[string]string {
	return helpers.VaildateMessage("support.ticket")
}

type MessageQuery struct {
	AfterID uint64 `query:"after_id"`
}

type CategoryFilters struct {
	Target types.RatingTarget `query:"tipo" validate:"in:goleiro,organizador"`
}

func (t CategoryFilters) Messages() map[string]string {
	return helpers.VaildateMessage("rating.category")
}

type VenueFilters struct {
	City string `query:"cidade"`
}
