package admin_controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goleiroon/goleiroon/controllers/entities"
	"github.com/goleiroon/goleiroon/controllers/helpers"
	"github.com/goleiroon/goleiroon/models"
)

func GetPendingUsers(c *fiber.Ctx) error {
	users, err := models.PendingUsers()
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	users_json := make([]entities.UserEntity, 0, len(users))
	for _, user := range users {
		users_json = append(users_json, entities.UserToEntity(user))
	}

	return c.Status(200).JSON(users_json)
}

func reviewUser(approve bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := helpers.ParseID(c, "id")
		if !ok {
			return helpers.ResponseError(c, models.ErrRecordNotFound)
		}

		user, err := models.ReviewUser(id, approve)
		if err != nil {
			return helpers.ResponseError(c, err)
		}

		return c.Status(200).JSON(entities.UserToEntity(user))
	}
}

var (
	ApproveUser = reviewUser(true)
	RejectUser  = reviewUser(false)
)
