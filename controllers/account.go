package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goleiroon/goleiroon/controllers/auth"
	"github.com/goleiroon/goleiroon/controllers/entities"
	"github.com/goleiroon/goleiroon/controllers/helpers"
	"github.com/goleiroon/goleiroon/models"
)

func Register(c *fiber.Ctx) error {
	payload := new(helpers.RegisterParams)
	if ok, err := helpers.ParseBody(c, payload); !ok {
		return err
	}

	user, err := models.RegisterUser(payload.ToModel())
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(201).JSON(entities.UserToEntity(user))
}

func Login(c *fiber.Ctx) error {
	payload := new(helpers.LoginParams)
	if ok, err := helpers.ParseBody(c, payload); !ok {
		return err
	}

	user, err := models.AuthenticateUser(payload.Email, payload.Password)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	token, expiresAt, err := auth.IssueToken(user)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(entities.SessionEntity{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      entities.UserToEntity(user),
	})
}
