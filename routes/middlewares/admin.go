package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goleiroon/goleiroon/controllers/auth"
	"github.com/goleiroon/goleiroon/controllers/helpers"
)

var AuthzInvalidPermission = "authz.invalid_permission"

func AdminVaildator(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil || !CurrentUser.IsAdmin() {
		return helpers.ResponseErrors(c, fiber.StatusForbidden, AuthzInvalidPermission)
	}

	return c.Next()
}
