package user_controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/controllers/auth"
	"github.com/goleiroon/goleiroon/controllers/entities"
	"github.com/goleiroon/goleiroon/controllers/helpers"
	"github.com/goleiroon/goleiroon/controllers/queries"
	"github.com/goleiroon/goleiroon/models"
	"github.com/goleiroon/goleiroon/types"
)

func GetMe(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	saldo, err := models.GetSaldo(CurrentUser.ID)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(entities.MeEntity{
		UserEntity: entities.UserToEntity(CurrentUser),
		Saldo:      saldo.ToJSON(),
	})
}

func UpdateMe(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	payload := new(helpers.ProfileParams)
	if ok, err := helpers.ParseBody(c, payload); !ok {
		return err
	}

	if err := CurrentUser.UpdateProfile(payload.ToModel()); err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(entities.UserToEntity(CurrentUser))
}

func GetGoalkeepers(c *fiber.Ctx) error {
	params := new(queries.GoalkeeperFilters)
	if ok, err := helpers.ParseQuery(c, params); !ok {
		return err
	}

	users, err := models.ApprovedGoalkeepers(models.GoalkeeperFilter{
		City:  params.City,
		Page:  params.Page,
		Limit: params.Limit,
	})
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	goalkeepers := make([]entities.GoalkeeperEntity, 0, len(users))
	for _, user := range users {
		summary, err := models.GetRatingSummary(user.ID, types.RatingTargetGoalkeeper)
		if err != nil {
			config.Logger.Warnf("Failed to load rating of goalkeeper %d: %v", user.ID, err)
		}
		goalkeepers = append(goalkeepers, entities.GoalkeeperToEntity(user, summary))
	}

	return c.Status(200).JSON(goalkeepers)
}

func GetGoalkeeper(c *fiber.Ctx) error {
	id, ok := helpers.ParseID(c, "id")
	if !ok {
		return helpers.ResponseError(c, models.ErrRecordNotFound)
	}

	user, err := models.FindUser(id)
	if err != nil {
		return helpers.ResponseError(c, err)
	}
	if !user.IsGoalkeeper() || !user.IsApproved() {
		return helpers.ResponseError(c, models.ErrRecordNotFound)
	}

	summary, err := models.GetRatingSummary(user.ID, types.RatingTargetGoalkeeper)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(entities.GoalkeeperToEntity(user, summary))
}

func RegisterPushToken(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	payload := new(helpers.PushTokenParams)
	if ok, err := helpers.ParseBody(c, payload); !ok {
		return err
	}

	token, err := models.RegisterPushToken(CurrentUser.ID, payload.Token, payload.Platform)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(201).JSON(token)
}

func DeletePushToken(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if err := models.DeletePushToken(CurrentUser.ID, c.Params("token")); err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.SendStatus(204)
}
