package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/mq_client"
	"github.com/goleiroon/goleiroon/types"
)

const MinPasswordLength = 6

type User struct {
	ID           uint64               `json:"id" gorm:"primaryKey"`
	Name         string               `json:"nome" gorm:"column:nome;not null"`
	Email        string               `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string               `json:"-" gorm:"column:senha_hash;not null"`
	Phone        null.String          `json:"telefone" gorm:"column:telefone"`
	Type         types.UserType       `json:"tipo" gorm:"column:tipo;index;not null"`
	Status       types.ApprovalStatus `json:"status" gorm:"index;not null"`
	City         null.String          `json:"cidade" gorm:"column:cidade;index"`
	PixKey       null.String          `json:"chave_pix" gorm:"column:chave_pix"`
	PixKeyType   null.String          `json:"tipo_chave_pix" gorm:"column:tipo_chave_pix"`
	MatchPrice   decimal.NullDecimal  `json:"valor_partida" gorm:"column:valor_partida;type:decimal(20,2)"`
	PhotoURL     null.String          `json:"foto_url" gorm:"column:foto_url"`
	Bio          null.String          `json:"bio" gorm:"column:bio"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func (User) TableName() string {
	return "usuarios"
}

func (u *User) IsApproved() bool {
	return u.Status == types.ApprovalApproved
}

func (u *User) IsAdmin() bool {
	return u.Type == types.UserTypeAdmin
}

func (u *User) IsGoalkeeper() bool {
	return u.Type == types.UserTypeGoalkeeper
}

func (u *User) IsOrganizer() bool {
	return u.Type == types.UserTypeOrganizer
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

type RegisterParams struct {
	Name       string
	Email      string
	Password   string
	Phone      string
	Type       types.UserType
	City       string
	PixKey     string
	PixKeyType string
	MatchPrice decimal.NullDecimal
}

// RegisterUser creates the account and its empty wallet. Organizers are approved
// right away, goalkeepers wait for an admin.
func RegisterUser(params RegisterParams) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))

	if len(params.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	status := types.ApprovalApproved
	switch params.Type {
	case types.UserTypeOrganizer:
	case types.UserTypeGoalkeeper:
		status = types.ApprovalPending
	default:
		return nil, ErrInvalidUserType
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:         strings.TrimSpace(params.Name),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        nullString(params.Phone),
		Type:         params.Type,
		Status:       status,
		City:         nullString(params.City),
		PixKey:       nullString(params.PixKey),
		PixKeyType:   nullString(params.PixKeyType),
		MatchPrice:   params.MatchPrice,
	}

	err = config.DataBase.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}

		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return err
		}

		return tx.Create(&Saldo{UserID: user.ID, Coins: decimal.Zero, Retained: decimal.Zero}).Error
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func AuthenticateUser(email, password string) (*User, error) {
	user := &User{}

	err := config.DataBase.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func FindUser(id uint64) (*User, error) {
	user := &User{}
	if err := config.DataBase.First(user, id).Error; err != nil {
		return nil, notFoundOr(err)
	}

	return user, nil
}

type ProfileParams struct {
	Name       *string
	Phone      *string
	City       *string
	PixKey     *string
	PixKeyType *string
	MatchPrice decimal.NullDecimal
	PhotoURL   *string
	Bio        *string
}

// profileColumns are the only columns UpdateProfile writes; status, tipo and
// senha_hash change through their own flows.
var profileColumns = []string{"nome", "telefone", "cidade", "chave_pix", "tipo_chave_pix", "valor_partida", "foto_url", "bio"}

func (u *User) UpdateProfile(params ProfileParams) error {
	if params.Name != nil && len(strings.TrimSpace(*params.Name)) > 0 {
		u.Name = strings.TrimSpace(*params.Name)
	}
	if params.Phone != nil {
		u.Phone = nullString(*params.Phone)
	}
	if params.City != nil {
		u.City = nullString(*params.City)
	}
	if params.PixKey != nil {
		u.PixKey = nullString(*params.PixKey)
	}
	if params.PixKeyType != nil {
		u.PixKeyType = nullString(*params.PixKeyType)
	}
	if params.MatchPrice.Valid {
		if !params.MatchPrice.Decimal.IsPositive() {
			return ErrInvalidAmount
		}
		u.MatchPrice = params.MatchPrice
	}
	if params.PhotoURL != nil {
		u.PhotoURL = nullString(*params.PhotoURL)
	}
	if params.Bio != nil {
		u.Bio = nullString(*params.Bio)
	}

	return config.DataBase.Model(u).
		Select(profileColumns).
		Updates(u).Error
}

// PendingUsers lists accounts waiting for admin review, oldest first.
func PendingUsers() ([]*User, error) {
	var users []*User

	err := config.DataBase.Where("status = ?", types.ApprovalPending).Order("created_at asc").Find(&users).Error

	return users, err
}

// ReviewUser approves or rejects a pending account.
func ReviewUser(id uint64, approve bool) (*User, error) {
	user := &User{}

	err := config.DataBase.Transaction(func(tx *gorm.DB) error {
		if err := Lock(tx).First(user, id).Error; err != nil {
			return notFoundOr(err)
		}
		if user.Status != types.ApprovalPending {
			return ErrUserAlreadyReviewed
		}

		if approve {
			user.Status = types.ApprovalApproved
		} else {
			user.Status = types.ApprovalRejected
		}

		return tx.Save(user).Error
	})
	if err != nil {
		return nil, err
	}

	if approve {
		mq_client.EnqueueEvent(mq_client.EventUserApproved, user, user.ID)
	} else {
		mq_client.EnqueueEvent(mq_client.EventUserRejected, user, user.ID)
	}

	return user, nil
}

type GoalkeeperFilter struct {
	City  string
	Page  int
	Limit int
}

func ApprovedGoalkeepers(filter GoalkeeperFilter) ([]*User, error) {
	var users []*User

	tx := config.DataBase.Where("tipo = ? AND status = ?", types.UserTypeGoalkeeper, types.ApprovalApproved)
	if len(filter.City) > 0 {
		tx = tx.Where("LOWER(cidade) = ?", strings.ToLower(filter.City))
	}

	err := tx.Order("nome asc").Scopes(Paginate(filter.Page, filter.Limit)).Find(&users).Error

	return users, err
}

func nullString(s string) null.String {
	s = strings.TrimSpace(s)
	return null.NewString(s, len(s) > 0)
}
