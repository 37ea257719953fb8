package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
	"gorm.io/gorm"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/metrics"
	"github.com/goleiroon/goleiroon/mq_client"
	"github.com/goleiroon/goleiroon/types"
)

// Convocation is an organizer's booking of a goalkeeper. Its value sits in the
// organizer's saldo_retido until the booking is settled or refunded.
type Convocation struct {
	ID              uint64                  `json:"id" gorm:"primaryKey"`
	OrganizerID     uint64                  `json:"organizador_id" gorm:"column:organizador_id;index;not null"`
	GoalkeeperID    uint64                  `json:"goleiro_id" gorm:"column:goleiro_id;index;not null"`
	VenueID         null.Uint64             `json:"local_id" gorm:"column:local_id"`
	GameAt          time.Time               `json:"data_jogo" gorm:"column:data_jogo;not null"`
	DurationMinutes int                     `json:"duracao_minutos" gorm:"column:duracao_minutos;not null"`
	Amount          decimal.Decimal         `json:"valor_retido" gorm:"column:valor_retido;type:decimal(20,2);not null"`
	FeeRate         decimal.Decimal         `json:"taxa_percentual" gorm:"column:taxa_percentual;type:decimal(5,2);not null"`
	FeeAmount       decimal.Decimal         `json:"valor_taxa" gorm:"column:valor_taxa;type:decimal(20,2);not null"`
	Status          types.ConvocationStatus `json:"status" gorm:"index;not null"`
	ExpiresAt       time.Time               `json:"expira_em" gorm:"column:expira_em;index;not null"`
	RespondedAt     null.Time               `json:"respondido_em" gorm:"column:respondido_em"`
	CompletedAt     null.Time               `json:"concluida_em" gorm:"column:concluida_em"`
	Notes           null.String             `json:"observacoes" gorm:"column:observacoes"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

func (Convocation) TableName() string {
	return "convocacoes"
}

var convocationTransitions = map[types.ConvocationStatus][]types.ConvocationStatus{
	types.ConvocationPending: {
		types.ConvocationAccepted,
		types.ConvocationDeclined,
		types.ConvocationLost,
		types.ConvocationCancelled,
	},
	types.ConvocationAccepted: {
		types.ConvocationCompleted,
	},
}

func (c *Convocation) CanTransitionTo(next types.ConvocationStatus) bool {
	for _, s := range convocationTransitions[c.Status] {
		if s == next {
			return true
		}
	}

	return false
}

func (c *Convocation) EndsAt() time.Time {
	return c.GameAt.Add(time.Duration(c.DurationMinutes) * time.Minute)
}

func (c *Convocation) IsExpired(now time.Time) bool {
	return c.Status == types.ConvocationPending && !now.Before(c.ExpiresAt)
}

// IsReleasable reports whether an accepted game is old enough to be paid out automatically.
func (c *Convocation) IsReleasable(now time.Time) bool {
	return c.Status == types.ConvocationAccepted && !now.Before(c.EndsAt().Add(config.App.Convocation.ReleaseGrace))
}

func (c *Convocation) Overlaps(other *Convocation) bool {
	return c.GameAt.Before(other.EndsAt()) && other.GameAt.Before(c.EndsAt())
}

func (c *Convocation) IsParticipant(user *User) bool {
	return c.OrganizerID == user.ID || c.GoalkeeperID == user.ID
}

// GoalkeeperPayout is what the goalkeeper receives on settlement.
func (c *Convocation) GoalkeeperPayout() decimal.Decimal {
	return c.Amount.Sub(c.FeeAmount)
}

func (c *Convocation) Reference() Reference {
	return Reference{ID: c.ID, Type: ReferenceConvocation}
}

func (c *Convocation) setStatus(next types.ConvocationStatus) error {
	if !c.CanTransitionTo(next) {
		return ErrInvalidTransition
	}

	c.Status = next
	return nil
}

type CreateConvocationParams struct {
	GoalkeeperID    uint64
	VenueID         uint64
	GameAt          time.Time
	DurationMinutes int
	Amount          decimal.NullDecimal
	Notes           string
}

// CreateConvocation books a goalkeeper and retains the value from the organizer's coins.
func CreateConvocation(organizer *User, params CreateConvocationParams) (*Convocation, error) {
	now := Now()

	if !organizer.IsOrganizer() {
		return nil, ErrWrongUserType
	}
	if !organizer.IsApproved() {
		return nil, ErrUserNotApproved
	}
	if !params.GameAt.After(now) {
		return nil, ErrInvalidGameTime
	}

	goalkeeper, err := FindUser(params.GoalkeeperID)
	if err != nil {
		if err == ErrRecordNotFound {
			return nil, ErrGoalkeeperUnavailable
		}
		return nil, err
	}
	if !goalkeeper.IsGoalkeeper() || !goalkeeper.IsApproved() {
		return nil, ErrGoalkeeperUnavailable
	}

	amount := params.Amount.Decimal
	if !params.Amount.Valid {
		if !goalkeeper.MatchPrice.Valid {
			return nil, ErrInvalidAmount
		}
		amount = goalkeeper.MatchPrice.Decimal
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	duration := params.DurationMinutes
	if duration <= 0 {
		duration = config.App.Convocation.DefaultDuration
	}

	convocation := &Convocation{
		OrganizerID:     organizer.ID,
		GoalkeeperID:    goalkeeper.ID,
		GameAt:          params.GameAt,
		DurationMinutes: duration,
		Amount:          amount.Round(2),
		Status:          types.ConvocationPending,
		ExpiresAt:       now.Add(config.App.Convocation.AcceptanceWindow),
		Notes:           nullString(params.Notes),
	}

	if params.VenueID > 0 {
		venue, err := FindVenue(params.VenueID)
		if err != nil || !venue.Active {
			return nil, ErrInvalidVenue
		}
		convocation.VenueID = null.Uint64From(venue.ID)
	}

	var saldo *Saldo
	err = config.DataBase.Transaction(func(tx *gorm.DB) error {
		fee, err := CurrentFeeConfig(tx)
		if err != nil {
			return err
		}
		convocation.FeeRate = fee.ConvocationRate
		convocation.FeeAmount = FeeFor(convocation.Amount, fee.ConvocationRate)

		if conflict, err := hasScheduleConflict(tx, convocation); err != nil {
			return err
		} else if conflict {
			return ErrScheduleConflict
		}

		if err := tx.Create(convocation).Error; err != nil {
			return err
		}

		saldo, err = LockSaldo(tx, organizer.ID)
		if err != nil {
			return err
		}

		return saldo.LockFunds(tx, convocation.Amount, convocation.Reference(), types.MovementConvocationLock)
	})
	if err != nil {
		return nil, err
	}

	saldo.Flush()
	metrics.RecordConvocationTransition(string(types.ConvocationPending))
	mq_client.EnqueueEvent(mq_client.EventConvocationCreated, convocation, convocation.GoalkeeperID)

	return convocation, nil
}

// hasScheduleConflict looks for an accepted game of the same goalkeeper overlapping c.
func hasScheduleConflict(tx *gorm.DB, c *Convocation) (bool, error) {
	var accepted []*Convocation

	err := tx.Where(
		"goleiro_id = ? AND status = ? AND id <> ? AND data_jogo BETWEEN ? AND ?",
		c.GoalkeeperID, types.ConvocationAccepted, c.ID, c.GameAt.Add(-24*time.Hour), c.EndsAt(),
	).Find(&accepted).Error
	if err != nil {
		return false, err
	}

	for _, other := range accepted {
		if c.Overlaps(other) {
			return true, nil
		}
	}

	return false, nil
}

// transition runs fn against the convocation row locked FOR UPDATE and saves it
// together with every wallet fn touched. Wallet events go out after commit.
func transition(id uint64, fn func(tx *gorm.DB, c *Convocation) ([]*Saldo, error)) (*Convocation, error) {
	convocation := &Convocation{}
	var saldos []*Saldo
	from := types.ConvocationStatus("")

	err := config.DataBase.Transaction(func(tx *gorm.DB) error {
		if err := Lock(tx).First(convocation, id).Error; err != nil {
			return notFoundOr(err)
		}
		from = convocation.Status

		var err error
		saldos, err = fn(tx, convocation)
		if err != nil {
			return err
		}
		if convocation.Status == from {
			return nil
		}

		return tx.Save(convocation).Error
	})
	if err != nil {
		return nil, err
	}

	flushAll(saldos...)

	if convocation.Status != from {
		metrics.RecordConvocationTransition(string(convocation.Status))
		publishConvocation(convocation)
	}

	return convocation, nil
}

func publishConvocation(c *Convocation) {
	switch c.Status {
	case types.ConvocationAccepted:
		mq_client.EnqueueEvent(mq_client.EventConvocationAccepted, c, c.OrganizerID)
	case types.ConvocationDeclined:
		mq_client.EnqueueEvent(mq_client.EventConvocationDeclined, c, c.OrganizerID)
	case types.ConvocationLost:
		mq_client.EnqueueEvent(mq_client.EventConvocationExpired, c, c.OrganizerID, c.GoalkeeperID)
	case types.ConvocationCancelled:
		mq_client.EnqueueEvent(mq_client.EventConvocationCancelled, c, c.GoalkeeperID)
	case types.ConvocationCompleted:
		mq_client.EnqueueEvent(mq_client.EventConvocationCompleted, c, c.OrganizerID, c.GoalkeeperID)
	}
}

// refund returns the retained value to the organizer and moves c to next.
func refund(tx *gorm.DB, c *Convocation, next types.ConvocationStatus, now time.Time) ([]*Saldo, error) {
	if err := c.setStatus(next); err != nil {
		return nil, err
	}
	c.RespondedAt = null.TimeFrom(now)

	saldo, err := LockSaldo(tx, c.OrganizerID)
	if err != nil {
		return nil, err
	}
	if err := saldo.UnlockFunds(tx, c.Amount, c.Reference(), types.MovementConvocationRefund); err != nil {
		return nil, err
	}

	return []*Saldo{saldo}, nil
}

// settle pays the goalkeeper out of the organizer's retained coins and books the fee.
func settle(tx *gorm.DB, c *Convocation, now time.Time) ([]*Saldo, error) {
	if err := c.setStatus(types.ConvocationCompleted); err != nil {
		return nil, err
	}
	c.CompletedAt = null.TimeFrom(now)

	saldos, err := LockSaldos(tx, c.OrganizerID, c.GoalkeeperID)
	if err != nil {
		return nil, err
	}

	organizer := saldos[c.OrganizerID]
	goalkeeper := saldos[c.GoalkeeperID]
	ref := c.Reference()

	if err := organizer.UnlockAndSubFunds(tx, c.Amount, ref, types.MovementConvocationPaid); err != nil {
		return nil, err
	}
	if payout := c.GoalkeeperPayout(); payout.IsPositive() {
		if err := goalkeeper.PlusFunds(tx, payout, ref, types.MovementConvocationEarn); err != nil {
			return nil, err
		}
	}
	if err := RevenueCredit(tx, c.FeeAmount, ref, c.GoalkeeperID); err != nil {
		return nil, err
	}

	return []*Saldo{organizer, goalkeeper}, nil
}

// AcceptConvocation lets the booked goalkeeper take the game inside the acceptance
// window. A late answer expires the convocation and reports ErrConvocationExpired.
func AcceptConvocation(goalkeeper *User, id uint64) (*Convocation, error) {
	now := Now()
	expired := false

	if !goalkeeper.IsApproved() {
		return nil, ErrUserNotApproved
	}

	convocation, err := transition(id, func(tx *gorm.DB, c *Convocation) ([]*Saldo, error) {
		if c.GoalkeeperID != goalkeeper.ID {
			return nil, ErrNotParticipant
		}
		if c.Status != types.ConvocationPending {
			return nil, ErrInvalidTransition
		}
		if c.IsExpired(now) {
			expired = true
			return refund(tx, c, types.ConvocationLost, now)
		}

		if conflict, err := hasScheduleConflict(tx, c); err != nil {
			return nil, err
		} else if conflict {
			return nil, ErrScheduleConflict
		}

		c.RespondedAt = null.TimeFrom(now)
		return nil, c.setStatus(types.ConvocationAccepted)
	})
	if err != nil {
		return nil, err
	}
	if expired {
		return convocation, ErrConvocationExpired
	}

	return convocation, nil
}

func DeclineConvocation(goalkeeper *User, id uint64) (*Convocation, error) {
	now := Now()

	return transition(id, func(tx *gorm.DB, c *Convocation) ([]*Saldo, error) {
		if c.GoalkeeperID != goalkeeper.ID {
			return nil, ErrNotParticipant
		}

		return refund(tx, c, types.ConvocationDeclined, now)
	})
}

func CancelConvocation(organizer *User, id uint64) (*Convocation, error) {
	now := Now()

	return transition(id, func(tx *gorm.DB, c *Convocation) ([]*Saldo, error) {
		if c.OrganizerID != organizer.ID {
			return nil, ErrNotParticipant
		}

		return refund(tx, c, types.ConvocationCancelled, now)
	})
}

// CompleteConvocation is the organizer confirming the game happened.
func CompleteConvocation(user *User, id uint64) (*Convocation, error) {
	now := Now()

	return transition(id, func(tx *gorm.DB, c *Convocation) ([]*Saldo, error) {
		if c.OrganizerID != user.ID && !user.IsAdmin() {
			return nil, ErrNotParticipant
		}
		if c.Status != types.ConvocationAccepted {
			return nil, ErrInvalidTransition
		}
		if now.Before(c.GameAt) {
			return nil, ErrGameNotFinished
		}

		return settle(tx, c, now)
	})
}

// ExpireConvocation marks a pending convocation past its window as perdida and
// refunds the organizer. It reports false when there was nothing to do.
func ExpireConvocation(id uint64, now time.Time) (bool, error) {
	changed := false

	_, err := transition(id, func(tx *gorm.DB, c *Convocation) ([]*Saldo, error) {
		if !c.IsExpired(now) {
			return nil, nil
		}

		changed = true
		return refund(tx, c, types.ConvocationLost, now)
	})

	return changed, err
}

// ReleaseConvocation settles an accepted convocation once its release grace has passed.
func ReleaseConvocation(id uint64, now time.Time) (bool, error) {
	changed := false

	_, err := transition(id, func(tx *gorm.DB, c *Convocation) ([]*Saldo, error) {
		if !c.IsReleasable(now) {
			return nil, nil
		}

		changed = true
		return settle(tx, c, now)
	})

	return changed, err
}

// ExpiredConvocationIDs lists pending convocations whose window closed at or before now.
func ExpiredConvocationIDs(now time.Time) ([]uint64, error) {
	var ids []uint64

	err := config.DataBase.Model(&Convocation{}).
		Where("status = ? AND expira_em <= ?", types.ConvocationPending, now).
		Order("expira_em asc").
		Pluck("id", &ids).Error

	return ids, err
}

// ReleasableConvocationIDs lists accepted convocations whose game ended more than the grace period ago.
func ReleasableConvocationIDs(now time.Time) ([]uint64, error) {
	var candidates []*Convocation

	err := config.DataBase.
		Where("status = ? AND data_jogo <= ?", types.ConvocationAccepted, now.Add(-config.App.Convocation.ReleaseGrace)).
		Order("data_jogo asc").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(candidates))
	for _, c := range candidates {
		if c.IsReleasable(now) {
			ids = append(ids, c.ID)
		}
	}

	return ids, nil
}

type PendingDeadline struct {
	ID        uint64
	ExpiresAt time.Time
}

func PendingDeadlines() ([]PendingDeadline, error) {
	var deadlines []PendingDeadline

	err := config.DataBase.Model(&Convocation{}).
		Select("id", "expira_em AS expires_at").
		Where("status = ?", types.ConvocationPending).
		Scan(&deadlines).Error

	return deadlines, err
}

func FindConvocation(id uint64) (*Convocation, error) {
	convocation := &Convocation{}
	if err := config.DataBase.First(convocation, id).Error; err != nil {
		return nil, notFoundOr(err)
	}

	return convocation, nil
}

type ConvocationFilter struct {
	Role    types.UserType
	Status  types.ConvocationStatus
	From    time.Time
	To      time.Time
	OrderBy string
	Page    int
	Limit   int
}

// ConvocationsFor lists a user's convocations on the side given by filter.Role.
func ConvocationsFor(user *User, filter ConvocationFilter) ([]*Convocation, error) {
	var convocations []*Convocation

	tx := config.DataBase.Model(&Convocation{})

	switch filter.Role {
	case types.UserTypeOrganizer:
		tx = tx.Where("organizador_id = ?", user.ID)
	case types.UserTypeGoalkeeper:
		tx = tx.Where("goleiro_id = ?", user.ID)
	default:
		if !user.IsAdmin() {
			tx = tx.Where("organizador_id = ? OR goleiro_id = ?", user.ID, user.ID)
		}
	}

	if len(filter.Status) > 0 {
		tx = tx.Where("status = ?", filter.Status)
	}
	if !filter.From.IsZero() {
		tx = tx.Where("data_jogo >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		tx = tx.Where("data_jogo < ?", filter.To)
	}

	orderBy := types.OrderByDesc
	if filter.OrderBy == types.OrderByAsc {
		orderBy = types.OrderByAsc
	}

	err := tx.Order("data_jogo " + orderBy).Scopes(Paginate(filter.Page, filter.Limit)).Find(&convocations).Error

	return convocations, err
}
