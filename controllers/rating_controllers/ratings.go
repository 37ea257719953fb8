package rating_controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goleiroon/goleiroon/controllers/auth"
	"github.com/goleiroon/goleiroon/controllers/helpers"
	"github.com/goleiroon/goleiroon/controllers/queries"
	"github.com/goleiroon/goleiroon/models"
	"github.com/goleiroon/goleiroon/types"
)

func GetCategories(c *fiber.Ctx) error {
	params := new(queries.CategoryFilters)
	if ok, err := helpers.ParseQuery(c, params); !ok {
		return err
	}

	categories, err := models.RatingCategories(params.Target, true)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(categories)
}

// SubmitRatings rates the other participant of a finished convocation.
func SubmitRatings(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	id, ok := helpers.ParseID(c, "id")
	if !ok {
		return helpers.ResponseError(c, models.ErrRecordNotFound)
	}

	payload := new(helpers.RatingParams)
	if ok, err := helpers.ParseBody(c, payload); !ok {
		return err
	}

	if err := models.SubmitRatings(CurrentUser, id, payload.ToModel()); err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.SendStatus(201)
}

func GetUserRatings(c *fiber.Ctx) error {
	id, ok := helpers.ParseID(c, "id")
	if !ok {
		return helpers.ResponseError(c, models.ErrRecordNotFound)
	}

	user, err := models.FindUser(id)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	target := types.RatingTargetOrganizer
	if user.IsGoalkeeper() {
		target = types.RatingTargetGoalkeeper
	}

	summary, err := models.GetRatingSummary(user.ID, target)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(summary)
}
