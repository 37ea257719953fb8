package admin_controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/controllers/auth"
	"github.com/goleiroon/goleiroon/controllers/helpers"
	"github.com/goleiroon/goleiroon/models"
)

func GetFees(c *fiber.Ctx) error {
	fee, err := models.CurrentFeeConfig(config.DataBase)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(fee)
}

func UpdateFees(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	payload := new(helpers.FeeParams)
	if ok, err := helpers.ParseBody(c, payload); !ok {
		return err
	}

	fee, err := models.UpdateFeeConfig(CurrentUser, payload.ToModel())
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(fee)
}
