package admin_controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goleiroon/goleiroon/controllers/helpers"
	"github.com/goleiroon/goleiroon/controllers/queries"
	"github.com/goleiroon/goleiroon/models"
)

func GetTickets(c *fiber.Ctx) error {
	params := new(queries.TicketFilters)
	if ok, err := helpers.ParseQuery(c, params); !ok {
		return err
	}

	tickets, err := models.Tickets(params.Status, params.Page, params.Limit)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(tickets)
}

func GetDashboard(c *fiber.Ctx) error {
	dashboard, err := models.GetDashboard()
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(dashboard)
}
