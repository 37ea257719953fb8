package entities

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/goleiroon/goleiroon/models"
	"github.com/goleiroon/goleiroon/types"
)

// GoalkeeperEntity is the public card of a goalkeeper shown to organizers.
type GoalkeeperEntity struct {
	ID         uint64                `json:"id"`
	Name       string                `json:"nome"`
	City       null.String           `json:"cidade"`
	MatchPrice decimal.NullDecimal   `json:"valor_partida"`
	PhotoURL   null.String           `json:"foto_url"`
	Bio        null.String           `json:"bio"`
	Rating     *models.RatingSummary `json:"avaliacao,omitempty"`
}

type UserEntity struct {
	ID         uint64               `json:"id"`
	Name       string               `json:"nome"`
	Email      string               `json:"email"`
	Phone      null.String          `json:"telefone"`
	Type       types.UserType       `json:"tipo"`
	Status     types.ApprovalStatus `json:"status"`
	City       null.String          `json:"cidade"`
	PixKey     null.String          `json:"chave_pix"`
	PixKeyType null.String          `json:"tipo_chave_pix"`
	MatchPrice decimal.NullDecimal  `json:"valor_partida"`
	PhotoURL   null.String          `json:"foto_url"`
	Bio        null.String          `json:"bio"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

type MeEntity struct {
	UserEntity
	Saldo models.SaldoJSON `json:"saldo"`
}

type SessionEntity struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expira_em"`
	User      UserEntity `json:"usuario"`
}

func UserToEntity(user *models.User) UserEntity {
	return UserEntity{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone,
		Type:       user.Type,
		Status:     user.Status,
		City:       user.City,
		PixKey:     user.PixKey,
		PixKeyType: user.PixKeyType,
		MatchPrice: user.MatchPrice,
		PhotoURL:   user.PhotoURL,
		Bio:        user.Bio,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

func GoalkeeperToEntity(user *models.User, rating *models.RatingSummary) GoalkeeperEntity {
	return GoalkeeperEntity{
		ID:         user.ID,
		Name:       user.Name,
		City:       user.City,
		MatchPrice: user.MatchPrice,
		PhotoURL:   user.PhotoURL,
		Bio:        user.Bio,
		Rating:     rating,
	}
}
