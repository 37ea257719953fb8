package models

import (
	"errors"

	"gorm.io/gorm"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is a domain failure. Key is the i18n message returned to clients.
type Error struct {
	Kind ErrorKind
	Key  string
}

func (e *Error) Error() string {
	return e.Key
}

func newError(kind ErrorKind, key string) *Error {
	return &Error{Kind: kind, Key: key}
}

var (
	ErrRecordNotFound = newError(KindNotFound, "record.not_found")

	ErrInvalidAmount       = newError(KindValidation, "balance.invalid_amount")
	ErrInsufficientBalance = newError(KindValidation, "balance.insufficient")
	ErrBelowMinimum        = newError(KindValidation, "balance.below_minimum")

	ErrEmailTaken          = newError(KindConflict, "user.email_taken")
	ErrInvalidCredentials  = newError(KindUnauthorized, "auth.invalid_credentials")
	ErrUserNotApproved     = newError(KindForbidden, "user.not_approved")
	ErrWrongUserType       = newError(KindForbidden, "user.wrong_type")
	ErrInvalidUserType     = newError(KindValidation, "user.invalid_type")
	ErrPixKeyRequired      = newError(KindValidation, "user.pix_key_required")
	ErrPasswordTooShort    = newError(KindValidation, "user.password_too_short")
	ErrUserAlreadyReviewed = newError(KindConflict, "user.already_reviewed")

	ErrGoalkeeperUnavailable = newError(KindValidation, "convocation.goalkeeper_unavailable")
	ErrInvalidGameTime       = newError(KindValidation, "convocation.invalid_game_time")
	ErrScheduleConflict      = newError(KindConflict, "convocation.schedule_conflict")
	ErrInvalidTransition     = newError(KindConflict, "convocation.invalid_transition")
	ErrConvocationExpired    = newError(KindConflict, "convocation.expired")
	ErrNotParticipant        = newError(KindForbidden, "convocation.not_participant")
	ErrGameNotFinished       = newError(KindConflict, "convocation.game_not_finished")
	ErrInvalidVenue          = newError(KindValidation, "convocation.invalid_venue")

	ErrAlreadyProcessed = newError(KindConflict, "request.already_processed")
	ErrInvalidFeeConfig = newError(KindValidation, "fees.invalid")

	ErrRatingNotAllowed = newError(KindForbidden, "rating.not_allowed")
	ErrAlreadyRated     = newError(KindConflict, "rating.already_submitted")
	ErrInvalidScore     = newError(KindValidation, "rating.invalid_score")
	ErrInvalidCategory  = newError(KindValidation, "rating.invalid_category")

	ErrTicketClosed  = newError(KindConflict, "support.ticket_closed")
	ErrEmptyMessage  = newError(KindValidation, "support.empty_message")
	ErrNotTicketUser = newError(KindForbidden, "support.not_owner")
)

// KindOf classifies any error coming out of this package.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return KindNotFound
	}

	return KindInternal
}

// KeyOf returns the i18n key for err, "server.internal_error" when unclassified.
func KeyOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Key
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound.Key
	}

	return "server.internal_error"
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}

	return err
}
