package models

import (
	"strings"
	"time"

	"github.com/volatiletech/null"

	"github.com/goleiroon/goleiroon/config"
)

// Venue is a pitch where games are played.
type Venue struct {
	ID        uint64      `json:"id" gorm:"primaryKey"`
	Name      string      `json:"nome" gorm:"column:nome;not null"`
	Address   null.String `json:"endereco" gorm:"column:endereco"`
	City      null.String `json:"cidade" gorm:"column:cidade;index"`
	Active    bool        `json:"ativo" gorm:"column:ativo;not null"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (Venue) TableName() string {
	return "locais"
}

func ActiveVenues(city string) ([]*Venue, error) {
	var venues []*Venue

	tx := config.DataBase.Where("ativo = ?", true)
	if len(city) > 0 {
		tx = tx.Where("LOWER(cidade) = ?", strings.ToLower(city))
	}

	err := tx.Order("nome asc").Find(&venues).Error

	return venues, err
}

func FindVenue(id uint64) (*Venue, error) {
	venue := &Venue{}
	if err := config.DataBase.First(venue, id).Error; err != nil {
		return nil, notFoundOr(err)
	}

	return venue, nil
}

type VenueParams struct {
	Name    *string
	Address *string
	City    *string
	Active  *bool
}

// SaveVenue creates a venue when venue.ID is zero, otherwise updates it.
func SaveVenue(venue *Venue, params VenueParams) error {
	if params.Name != nil {
		venue.Name = strings.TrimSpace(*params.Name)
	}
	if params.Address != nil {
		venue.Address = nullString(*params.Address)
	}
	if params.City != nil {
		venue.City = nullString(*params.City)
	}
	if params.Active != nil {
		venue.Active = *params.Active
	}

	if len(venue.Name) == 0 {
		return ErrInvalidVenue
	}

	return config.DataBase.Save(venue).Error
}
