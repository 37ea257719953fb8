package models

import (
	"time"

	"github.com/goleiroon/goleiroon/config"
)

// AppUpdate announces a new mobile app release.
type AppUpdate struct {
	ID          uint64    `json:"id" gorm:"primaryKey"`
	Version     string    `json:"versao" gorm:"column:versao;not null"`
	Title       string    `json:"titulo" gorm:"column:titulo;not null"`
	Description string    `json:"descricao" gorm:"column:descricao;type:text"`
	Mandatory   bool      `json:"obrigatoria" gorm:"column:obrigatoria;not null;default:false"`
	CreatedAt   time.Time `json:"created_at"`
}

func (AppUpdate) TableName() string {
	return "updates"
}

func LatestAppUpdate() (*AppUpdate, error) {
	update := &AppUpdate{}
	if err := config.DataBase.Order("id desc").First(update).Error; err != nil {
		return nil, notFoundOr(err)
	}

	return update, nil
}
