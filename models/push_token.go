package models

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/goleiroon/goleiroon/config"
)

type PushToken struct {
	ID        uint64    `json:"id" gorm:"primaryKey"`
	UserID    uint64    `json:"usuario_id" gorm:"column:usuario_id;index;not null"`
	Token     string    `json:"token" gorm:"uniqueIndex;not null"`
	Platform  string    `json:"plataforma" gorm:"column:plataforma"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PushToken) TableName() string {
	return "user_push_tokens"
}

// RegisterPushToken binds token to userID. A token moves to the last user that registered it.
func RegisterPushToken(userID uint64, token, platform string) (*PushToken, error) {
	pushToken := &PushToken{}

	err := config.DataBase.Where("token = ?", token).First(pushToken).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		pushToken = &PushToken{UserID: userID, Token: token, Platform: platform}
		return pushToken, config.DataBase.Create(pushToken).Error
	}
	if err != nil {
		return nil, err
	}

	pushToken.UserID = userID
	pushToken.Platform = platform

	return pushToken, config.DataBase.Save(pushToken).Error
}

func DeletePushToken(userID uint64, token string) error {
	return config.DataBase.Where("usuario_id = ? AND token = ?", userID, token).Delete(&PushToken{}).Error
}

func DeletePushTokens(tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}

	return config.DataBase.Where("token IN ?", tokens).Delete(&PushToken{}).Error
}

func PushTokensFor(userIDs []uint64) ([]*PushToken, error) {
	var tokens []*PushToken
	if len(userIDs) == 0 {
		return tokens, nil
	}

	err := config.DataBase.Where("usuario_id IN ?", userIDs).Find(&tokens).Error

	return tokens, err
}
