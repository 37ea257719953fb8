package admin_controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goleiroon/goleiroon/controllers/auth"
	"github.com/goleiroon/goleiroon/controllers/helpers"
	"github.com/goleiroon/goleiroon/controllers/queries"
	"github.com/goleiroon/goleiroon/models"
)

func GetRecharges(c *fiber.Ctx) error {
	params := new(queries.ReviewFilters)
	if ok, err := helpers.ParseQuery(c, params); !ok {
		return err
	}

	recharges, err := models.Recharges(0, params.Status, params.Page, params.Limit)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(recharges)
}

func ApproveRecharge(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	id, ok := helpers.ParseID(c, "id")
	if !ok {
		return helpers.ResponseError(c, models.ErrRecordNotFound)
	}

	recharge, err := models.ApproveRecharge(CurrentUser, id)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(recharge)
}

func RejectRecharge(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	id, ok := helpers.ParseID(c, "id")
	if !ok {
		return helpers.ResponseError(c, models.ErrRecordNotFound)
	}

	payload := new(helpers.RejectParams)
	if len(c.Body()) > 0 {
		if ok, err := helpers.ParseBody(c, payload); !ok {
			return err
		}
	}

	recharge, err := models.RejectRecharge(CurrentUser, id, payload.Reason)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(recharge)
}

func GetWithdrawals(c *fiber.Ctx) error {
	params := new(queries.ReviewFilters)
	if ok, err := helpers.ParseQuery(c, params); !ok {
		return err
	}

	withdrawals, err := models.Withdrawals(0, params.Status, params.Page, params.Limit)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(withdrawals)
}

func ApproveWithdrawal(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	id, ok := helpers.ParseID(c, "id")
	if !ok {
		return helpers.ResponseError(c, models.ErrRecordNotFound)
	}

	withdrawal, err := models.ApproveWithdrawal(CurrentUser, id)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(withdrawal)
}

func RejectWithdrawal(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	id, ok := helpers.ParseID(c, "id")
	if !ok {
		return helpers.ResponseError(c, models.ErrRecordNotFound)
	}

	payload := new(helpers.RejectParams)
	if len(c.Body()) > 0 {
		if ok, err := helpers.ParseBody(c, payload); !ok {
			return err
		}
	}

	withdrawal, err := models.RejectWithdrawal(CurrentUser, id, payload.Reason)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(withdrawal)
}
