package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
	"gorm.io/gorm"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/types"
)

const (
	MinScore = 1
	MaxScore = 5
)

// RatingCategory is one criterion a side of a game is scored on.
type RatingCategory struct {
	ID          uint64             `json:"id" gorm:"primaryKey"`
	Name        string             `json:"nome" gorm:"column:nome;not null"`
	Description null.String        `json:"descricao" gorm:"column:descricao"`
	Target      types.RatingTarget `json:"tipo" gorm:"column:tipo;index;not null"`
	Active      bool               `json:"ativa" gorm:"column:ativa;not null"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func (RatingCategory) TableName() string {
	return "categorias_avaliacao"
}

// GoalkeeperRating is an organizer's score of the goalkeeper in one category.
type GoalkeeperRating struct {
	ID            uint64      `json:"id" gorm:"primaryKey"`
	ConvocationID uint64      `json:"convocacao_id" gorm:"column:convocacao_id;not null;uniqueIndex:idx_avaliacoes_goleiro_convocacao_categoria,priority:1"`
	RaterID       uint64      `json:"avaliador_id" gorm:"column:avaliador_id;not null"`
	RatedID       uint64      `json:"avaliado_id" gorm:"column:avaliado_id;index;not null"`
	CategoryID    uint64      `json:"categoria_id" gorm:"column:categoria_id;not null;uniqueIndex:idx_avaliacoes_goleiro_convocacao_categoria,priority:2"`
	Score         int         `json:"nota" gorm:"column:nota;not null"`
	Comment       null.String `json:"comentario" gorm:"column:comentario"`
	CreatedAt     time.Time   `json:"created_at"`
}

func (GoalkeeperRating) TableName() string {
	return "avaliacoes_goleiro"
}

// OrganizerRating is a goalkeeper's score of the organizer in one category.
type OrganizerRating struct {
	ID            uint64      `json:"id" gorm:"primaryKey"`
	ConvocationID uint64      `json:"convocacao_id" gorm:"column:convocacao_id;not null;uniqueIndex:idx_avaliacoes_organizador_convocacao_categoria,priority:1"`
	RaterID       uint64      `json:"avaliador_id" gorm:"column:avaliador_id;not null"`
	RatedID       uint64      `json:"avaliado_id" gorm:"column:avaliado_id;index;not null"`
	CategoryID    uint64      `json:"categoria_id" gorm:"column:categoria_id;not null;uniqueIndex:idx_avaliacoes_organizador_convocacao_categoria,priority:2"`
	Score         int         `json:"nota" gorm:"column:nota;not null"`
	Comment       null.String `json:"comentario" gorm:"column:comentario"`
	CreatedAt     time.Time   `json:"created_at"`
}

func (OrganizerRating) TableName() string {
	return "avaliacoes_organizador"
}

func ratingTable(target types.RatingTarget) string {
	if target == types.RatingTargetOrganizer {
		return OrganizerRating{}.TableName()
	}

	return GoalkeeperRating{}.TableName()
}

func ratingCacheKey(target types.RatingTarget, userID uint64) string {
	return fmt.Sprintf("goleiroon:avaliacoes:%s:%d", target, userID)
}

type RatingInput struct {
	CategoryID uint64
	Score      int
	Comment    string
}

// SubmitRatings scores the other participant of a finished convocation. Each side
// rates once, with at most one score per category.
func SubmitRatings(rater *User, convocationID uint64, inputs []RatingInput) error {
	if len(inputs) == 0 {
		return ErrInvalidCategory
	}

	convocation, err := FindConvocation(convocationID)
	if err != nil {
		return err
	}
	if convocation.Status != types.ConvocationCompleted {
		return ErrRatingNotAllowed
	}

	var target types.RatingTarget
	var ratedID uint64
	switch rater.ID {
	case convocation.OrganizerID:
		target, ratedID = types.RatingTargetGoalkeeper, convocation.GoalkeeperID
	case convocation.GoalkeeperID:
		target, ratedID = types.RatingTargetOrganizer, convocation.OrganizerID
	default:
		return ErrRatingNotAllowed
	}

	seen := make(map[uint64]bool, len(inputs))
	for _, input := range inputs {
		if input.Score < MinScore || input.Score > MaxScore {
			return ErrInvalidScore
		}
		if seen[input.CategoryID] {
			return ErrInvalidCategory
		}
		seen[input.CategoryID] = true
	}

	err = config.DataBase.Transaction(func(tx *gorm.DB) error {
		var categories int64
		err := tx.Model(&RatingCategory{}).
			Where("id IN ? AND tipo = ? AND ativa = ?", keys(seen), target, true).
			Count(&categories).Error
		if err != nil {
			return err
		}
		if int(categories) != len(seen) {
			return ErrInvalidCategory
		}

		var existing int64
		err = tx.Table(ratingTable(target)).
			Where("convocacao_id = ? AND avaliador_id = ?", convocation.ID, rater.ID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyRated
		}

		return insertRatings(tx, target, convocation.ID, rater.ID, ratedID, inputs)
	})
	if err != nil {
		return err
	}

	if err := config.Redis.DeleteKey(ratingCacheKey(target, ratedID)); err != nil {
		config.Logger.Warnf("Failed to drop rating summary cache: %v", err)
	}

	return nil
}

// insertRatings writes one row per input. A concurrent submission that got there
// first surfaces as ErrAlreadyRated.
func insertRatings(tx *gorm.DB, target types.RatingTarget, convocationID, raterID, ratedID uint64, inputs []RatingInput) error {
	var rows interface{}

	if target == types.RatingTargetGoalkeeper {
		ratings := make([]*GoalkeeperRating, 0, len(inputs))
		for _, input := range inputs {
			ratings = append(ratings, &GoalkeeperRating{
				ConvocationID: convocationID,
				RaterID:       raterID,
				RatedID:       ratedID,
				CategoryID:    input.CategoryID,
				Score:         input.Score,
				Comment:       nullString(input.Comment),
			})
		}
		rows = &ratings
	} else {
		ratings := make([]*OrganizerRating, 0, len(inputs))
		for _, input := range inputs {
			ratings = append(ratings, &OrganizerRating{
				ConvocationID: convocationID,
				RaterID:       raterID,
				RatedID:       ratedID,
				CategoryID:    input.CategoryID,
				Score:         input.Score,
				Comment:       nullString(input.Comment),
			})
		}
		rows = &ratings
	}

	err := tx.Create(rows).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyRated
	}

	return err
}

func keys(set map[uint64]bool) []uint64 {
	ids := make([]uint64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}

	return ids
}

type CategorySummary struct {
	CategoryID uint64          `json:"categoria_id"`
	Name       string          `json:"nome"`
	Average    decimal.Decimal `json:"media"`
	Count      int64           `json:"total"`
}

type RatingSummary struct {
	UserID     uint64             `json:"usuario_id"`
	Target     types.RatingTarget `json:"tipo"`
	Average    decimal.Decimal    `json:"media"`
	Reviews    int64              `json:"avaliacoes"`
	Categories []CategorySummary  `json:"categorias"`
}

// GetRatingSummary aggregates the scores userID received as target.
func GetRatingSummary(userID uint64, target types.RatingTarget) (*RatingSummary, error) {
	key := ratingCacheKey(target, userID)

	summary := &RatingSummary{}
	if err := config.Redis.GetKey(key, summary); err == nil && summary.UserID == userID {
		return summary, nil
	}

	summary = &RatingSummary{UserID: userID, Target: target, Average: decimal.Zero, Categories: []CategorySummary{}}
	table := ratingTable(target)

	var rows []struct {
		CategoryID uint64
		Name       string
		Average    float64
		Total      int64
		Count      int64
	}
	err := config.DataBase.Table(table+" AS a").
		Select("a.categoria_id AS category_id, c.nome AS name, AVG(a.nota) AS average, SUM(a.nota) AS total, COUNT(*) AS count").
		Joins("JOIN categorias_avaliacao c ON c.id = a.categoria_id").
		Where("a.avaliado_id = ?", userID).
		Group("a.categoria_id, c.nome").
		Order("a.categoria_id asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var total, scores int64
	for _, row := range rows {
		summary.Categories = append(summary.Categories, CategorySummary{
			CategoryID: row.CategoryID,
			Name:       row.Name,
			Average:    decimal.NewFromFloat(row.Average).Round(2),
			Count:      row.Count,
		})
		total += row.Total
		scores += row.Count
	}
	if scores > 0 {
		summary.Average = decimal.NewFromInt(total).Div(decimal.NewFromInt(scores)).Round(2)
	}

	err = config.DataBase.Table(table).
		Where("avaliado_id = ?", userID).
		Distinct("convocacao_id").
		Count(&summary.Reviews).Error
	if err != nil {
		return nil, err
	}

	if err := config.Redis.SetKey(key, summary, 30*time.Minute); err != nil {
		config.Logger.Warnf("Failed to cache rating summary: %v", err)
	}

	return summary, nil
}

func RatingCategories(target types.RatingTarget, onlyActive bool) ([]*RatingCategory, error) {
	var categories []*RatingCategory

	tx := config.DataBase.Model(&RatingCategory{})
	if len(target) > 0 {
		tx = tx.Where("tipo = ?", target)
	}
	if onlyActive {
		tx = tx.Where("ativa = ?", true)
	}

	err := tx.Order("id asc").Find(&categories).Error

	return categories, err
}

func FindRatingCategory(id uint64) (*RatingCategory, error) {
	category := &RatingCategory{}
	if err := config.DataBase.First(category, id).Error; err != nil {
		return nil, notFoundOr(err)
	}

	return category, nil
}

type RatingCategoryParams struct {
	Name        *string
	Description *string
	Target      *types.RatingTarget
	Active      *bool
}

// SaveRatingCategory creates a category when category.ID is zero, otherwise updates it.
func SaveRatingCategory(category *RatingCategory, params RatingCategoryParams) error {
	if params.Name != nil {
		category.Name = strings.TrimSpace(*params.Name)
	}
	if params.Description != nil {
		category.Description = nullString(*params.Description)
	}
	if params.Target != nil {
		category.Target = *params.Target
	}
	if params.Active != nil {
		category.Active = *params.Active
	}

	if len(category.Name) == 0 {
		return ErrInvalidCategory
	}
	if category.Target != types.RatingTargetGoalkeeper && category.Target != types.RatingTargetOrganizer {
		return ErrInvalidCategory
	}

	return config.DataBase.Save(category).Error
}
