package support_controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goleiroon/goleiroon/controllers/auth"
	"github.com/goleiroon/goleiroon/controllers/helpers"
	"github.com/goleiroon/goleiroon/controllers/queries"
	"github.com/goleiroon/goleiroon/models"
)

func OpenTicket(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	payload := new(helpers.TicketParams)
	if ok, err := helpers.ParseBody(c, payload); !ok {
		return err
	}

	ticket, err := models.OpenTicket(CurrentUser, payload.Subject, payload.Content)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(201).JSON(ticket)
}

func GetTickets(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	params := new(queries.Pagination)
	if ok, err := helpers.ParseQuery(c, params); !ok {
		return err
	}

	tickets, err := models.TicketsByUser(CurrentUser.ID, params.Page, params.Limit)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(tickets)
}

func GetTicket(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	id, ok := helpers.ParseID(c, "id")
	if !ok {
		return helpers.ResponseError(c, models.ErrRecordNotFound)
	}

	ticket, err := models.FindTicket(CurrentUser, id)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(ticket)
}

// GetMessages supports polling with ?after_id= to fetch only new messages.
func GetMessages(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	id, ok := helpers.ParseID(c, "id")
	if !ok {
		return helpers.ResponseError(c, models.ErrRecordNotFound)
	}

	params := new(queries.MessageQuery)
	if ok, err := helpers.ParseQuery(c, params); !ok {
		return err
	}

	messages, err := models.TicketMessages(CurrentUser, id, params.AfterID)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(messages)
}

func PostMessage(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	id, ok := helpers.ParseID(c, "id")
	if !ok {
		return helpers.ResponseError(c, models.ErrRecordNotFound)
	}

	payload := new(helpers.MessageParams)
	if ok, err := helpers.ParseBody(c, payload); !ok {
		return err
	}

	message, err := models.PostMessage(CurrentUser, id, payload.Content)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(201).JSON(message)
}

func CloseTicket(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	id, ok := helpers.ParseID(c, "id")
	if !ok {
		return helpers.ResponseError(c, models.ErrRecordNotFound)
	}

	ticket, err := models.CloseTicket(CurrentUser, id)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(ticket)
}
