package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/goleiroon/goleiroon/controllers/auth"
	"github.com/goleiroon/goleiroon/controllers/helpers"
	"github.com/goleiroon/goleiroon/models"
)

var (
	AuthzInvalidSession = "authz.invalid_session"
	JwtDecodeAndVerify  = "jwt.decode_and_verify"
)

func Authenticate(c *fiber.Ctx) error {
	token := c.Get(fiber.HeaderAuthorization)

	if len(token) == 0 {
		return helpers.ResponseErrors(c, fiber.StatusUnauthorized, AuthzInvalidSession)
	}

	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))

	claims, err := auth.ParseToken(token)
	if err == auth.ErrMissingSecret {
		return helpers.ResponseErrors(c, fiber.StatusInternalServerError, helpers.ServerInternal)
	}
	if err != nil {
		return helpers.ResponseErrors(c, fiber.StatusUnauthorized, JwtDecodeAndVerify)
	}

	id, err := claims.UserID()
	if err != nil {
		return helpers.ResponseErrors(c, fiber.StatusUnauthorized, JwtDecodeAndVerify)
	}

	user, err := models.FindUser(id)
	if err == models.ErrRecordNotFound {
		return helpers.ResponseErrors(c, fiber.StatusUnauthorized, AuthzInvalidSession)
	}
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	c.Locals(auth.CurrentUserKey, user)

	return c.Next()
}
