package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/types"
)

func createCategory(t *testing.T, name string, target types.RatingTarget) *RatingCategory {
	t.Helper()

	category := &RatingCategory{Active: true}
	require.NoError(t, SaveRatingCategory(category, RatingCategoryParams{Name: &name, Target: &target}))

	return category
}

// completedGames plays n accepted games one day apart and confirms them all.
func completedGames(t *testing.T, organizer, goalkeeper *User, n int) []*Convocation {
	t.Helper()

	games := make([]*Convocation, 0, n)
	for i := 0; i < n; i++ {
		c := book(t, organizer, goalkeeper, gameAt.Add(time.Duration(i)*24*time.Hour))
		_, err := AcceptConvocation(goalkeeper, c.ID)
		require.NoError(t, err)
		games = append(games, c)
	}

	setNow(gameAt.Add(time.Duration(n) * 24 * time.Hour))
	for _, c := range games {
		_, err := CompleteConvocation(organizer, c.ID)
		require.NoError(t, err)
	}

	return games
}

func TestSubmitRatings_Rules(t *testing.T) {
	setupDB(t)
	organizer, goalkeeper := convocationParties(t)
	stranger := createUser(t, "estranho", types.UserTypeOrganizer)

	reflexes := createCategory(t, "Reflexos", types.RatingTargetGoalkeeper)
	punctuality := createCategory(t, "Pontualidade", types.RatingTargetOrganizer)

	pending := book(t, organizer, goalkeeper, gameAt.Add(72*time.Hour))
	err := SubmitRatings(organizer, pending.ID, []RatingInput{{CategoryID: reflexes.ID, Score: 5}})
	assert.Equal(t, ErrRatingNotAllowed, err)

	game := completedGames(t, organizer, goalkeeper, 1)[0]

	tests := []struct {
		name   string
		rater  *User
		inputs []RatingInput
		err    error
	}{
		{"empty", organizer, nil, ErrInvalidCategory},
		{"outsider", stranger, []RatingInput{{CategoryID: reflexes.ID, Score: 5}}, ErrRatingNotAllowed},
		{"score too low", organizer, []RatingInput{{CategoryID: reflexes.ID, Score: 0}}, ErrInvalidScore},
		{"score too high", organizer, []RatingInput{{CategoryID: reflexes.ID, Score: 6}}, ErrInvalidScore},
		{"repeated category", organizer, []RatingInput{{CategoryID: reflexes.ID, Score: 5}, {CategoryID: reflexes.ID, Score: 4}}, ErrInvalidCategory},
		{"wrong side category", organizer, []RatingInput{{CategoryID: punctuality.ID, Score: 5}}, ErrInvalidCategory},
		{"unknown category", goalkeeper, []RatingInput{{CategoryID: 999, Score: 5}}, ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.err, SubmitRatings(tt.rater, game.ID, tt.inputs))
		})
	}

	require.NoError(t, SubmitRatings(organizer, game.ID, []RatingInput{{CategoryID: reflexes.ID, Score: 5, Comment: "fechou o gol"}}))
	require.NoError(t, SubmitRatings(goalkeeper, game.ID, []RatingInput{{CategoryID: punctuality.ID, Score: 4}}))

	assert.Equal(t, ErrAlreadyRated, SubmitRatings(organizer, game.ID, []RatingInput{{CategoryID: reflexes.ID, Score: 1}}))
}

func TestInsertRatings_DuplicateIsAlreadyRated(t *testing.T) {
	setupDB(t)
	organizer, goalkeeper := convocationParties(t)
	reflexes := createCategory(t, "Reflexos", types.RatingTargetGoalkeeper)
	punctuality := createCategory(t, "Pontualidade", types.RatingTargetOrganizer)

	game := completedGames(t, organizer, goalkeeper, 1)[0]

	require.NoError(t, config.DataBase.Create(&GoalkeeperRating{
		ConvocationID: game.ID,
		RaterID:       organizer.ID,
		RatedID:       goalkeeper.ID,
		CategoryID:    reflexes.ID,
		Score:         4,
	}).Error)

	err := insertRatings(config.DataBase, types.RatingTargetGoalkeeper, game.ID, organizer.ID, goalkeeper.ID,
		[]RatingInput{{CategoryID: reflexes.ID, Score: 5}})
	assert.Equal(t, ErrAlreadyRated, err)

	err = insertRatings(config.DataBase, types.RatingTargetOrganizer, game.ID, goalkeeper.ID, organizer.ID,
		[]RatingInput{{CategoryID: punctuality.ID, Score: 5}})
	assert.NoError(t, err)
}

func TestSubmitRatings_InactiveCategory(t *testing.T) {
	setupDB(t)
	organizer, goalkeeper := convocationParties(t)

	category := createCategory(t, "Saída do gol", types.RatingTargetGoalkeeper)
	inactive := false
	require.NoError(t, SaveRatingCategory(category, RatingCategoryParams{Active: &inactive}))

	game := completedGames(t, organizer, goalkeeper, 1)[0]

	err := SubmitRatings(organizer, game.ID, []RatingInput{{CategoryID: category.ID, Score: 3}})
	assert.Equal(t, ErrInvalidCategory, err)

	active, err := RatingCategories(types.RatingTargetGoalkeeper, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := RatingCategories(types.RatingTargetGoalkeeper, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetRatingSummary(t *testing.T) {
	setupDB(t)
	organizer, goalkeeper := convocationParties(t)

	reflexes := createCategory(t, "Reflexos", types.RatingTargetGoalkeeper)
	positioning := createCategory(t, "Posicionamento", types.RatingTargetGoalkeeper)

	games := completedGames(t, organizer, goalkeeper, 2)

	require.NoError(t, SubmitRatings(organizer, games[0].ID, []RatingInput{
		{CategoryID: reflexes.ID, Score: 5},
		{CategoryID: positioning.ID, Score: 4},
	}))
	require.NoError(t, SubmitRatings(organizer, games[1].ID, []RatingInput{
		{CategoryID: reflexes.ID, Score: 4},
	}))

	summary, err := GetRatingSummary(goalkeeper.ID, types.RatingTargetGoalkeeper)
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.Reviews)
	assert.True(t, summary.Average.Equal(dec("4.33")), "got %s", summary.Average)
	require.Len(t, summary.Categories, 2)
	assert.Equal(t, "Reflexos", summary.Categories[0].Name)
	assert.True(t, summary.Categories[0].Average.Equal(dec("4.5")))
	assert.Equal(t, int64(2), summary.Categories[0].Count)
	assert.True(t, summary.Categories[1].Average.Equal(dec("4")))

	empty, err := GetRatingSummary(organizer.ID, types.RatingTargetOrganizer)
	require.NoError(t, err)
	assert.Zero(t, empty.Reviews)
	assert.True(t, empty.Average.IsZero())
	assert.Empty(t, empty.Categories)
}

func TestSaveRatingCategory_Validation(t *testing.T) {
	setupDB(t)

	blank := "  "
	target := types.RatingTargetGoalkeeper
	assert.Equal(t, ErrInvalidCategory, SaveRatingCategory(&RatingCategory{}, RatingCategoryParams{Name: &blank, Target: &target}))

	name := "Comunicação"
	bogus := types.RatingTarget("juiz")
	assert.Equal(t, ErrInvalidCategory, SaveRatingCategory(&RatingCategory{}, RatingCategoryParams{Name: &name, Target: &bogus}))

	_, err := FindRatingCategory(1)
	assert.Equal(t, ErrRecordNotFound, err)
}
