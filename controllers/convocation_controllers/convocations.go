package convocation_controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/goleiroon/goleiroon/controllers/auth"
	"github.com/goleiroon/goleiroon/controllers/helpers"
	"github.com/goleiroon/goleiroon/controllers/queries"
	"github.com/goleiroon/goleiroon/models"
)

func CreateConvocation(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	payload := new(helpers.CreateConvocationParams)
	if ok, err := helpers.ParseBody(c, payload); !ok {
		return err
	}

	convocation, err := models.CreateConvocation(CurrentUser, payload.ToModel())
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(201).JSON(convocation)
}

func GetConvocations(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	params := new(queries.ConvocationFilters)
	if ok, err := helpers.ParseQuery(c, params); !ok {
		return err
	}

	filter := models.ConvocationFilter{
		Role:    params.Role,
		Status:  params.Status,
		OrderBy: params.OrderBy,
		Page:    params.Page,
		Limit:   params.Limit,
	}
	if params.TimeFrom > 0 {
		filter.From = time.Unix(params.TimeFrom, 0)
	}
	if params.TimeTo > 0 {
		filter.To = time.Unix(params.TimeTo, 0)
	}

	convocations, err := models.ConvocationsFor(CurrentUser, filter)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(convocations)
}

func GetConvocation(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	id, ok := helpers.ParseID(c, "id")
	if !ok {
		return helpers.ResponseError(c, models.ErrRecordNotFound)
	}

	convocation, err := models.FindConvocation(id)
	if err != nil {
		return helpers.ResponseError(c, err)
	}
	if !convocation.IsParticipant(CurrentUser) && !CurrentUser.IsAdmin() {
		return helpers.ResponseError(c, models.ErrRecordNotFound)
	}

	return c.Status(200).JSON(convocation)
}

type action func(user *models.User, id uint64) (*models.Convocation, error)

func transition(fn action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		CurrentUser := auth.GetCurrentUser(c)

		id, ok := helpers.ParseID(c, "id")
		if !ok {
			return helpers.ResponseError(c, models.ErrRecordNotFound)
		}

		convocation, err := fn(CurrentUser, id)
		if err != nil {
			return helpers.ResponseError(c, err)
		}

		return c.Status(200).JSON(convocation)
	}
}

var (
	AcceptConvocation   = transition(models.AcceptConvocation)
	DeclineConvocation  = transition(models.DeclineConvocation)
	CancelConvocation   = transition(models.CancelConvocation)
	CompleteConvocation = transition(models.CompleteConvocation)
)
