package wallet_controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goleiroon/goleiroon/controllers/auth"
	"github.com/goleiroon/goleiroon/controllers/helpers"
	"github.com/goleiroon/goleiroon/controllers/queries"
	"github.com/goleiroon/goleiroon/models"
)

func GetSaldo(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	saldo, err := models.GetSaldo(CurrentUser.ID)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(saldo.ToJSON())
}

func GetMovements(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	params := new(queries.MovementFilters)
	if ok, err := helpers.ParseQuery(c, params); !ok {
		return err
	}

	movements, err := models.MovementsByUser(CurrentUser.ID, params.Kind, params.Page, params.Limit)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(movements)
}

func CreateRecharge(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	payload := new(helpers.RechargeParams)
	if ok, err := helpers.ParseBody(c, payload); !ok {
		return err
	}

	key := payload.IdempotencyKey
	if header := c.Get("Idempotency-Key"); len(header) > 0 {
		key = header
	}

	recharge, err := models.RequestRecharge(CurrentUser, payload.Amount, key)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(201).JSON(recharge)
}

func GetRecharges(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	params := new(queries.ReviewFilters)
	if ok, err := helpers.ParseQuery(c, params); !ok {
		return err
	}

	recharges, err := models.Recharges(CurrentUser.ID, params.Status, params.Page, params.Limit)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(recharges)
}

func GetRecharge(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	id, ok := helpers.ParseID(c, "id")
	if !ok {
		return helpers.ResponseError(c, models.ErrRecordNotFound)
	}

	recharge, err := models.FindRecharge(id)
	if err != nil {
		return helpers.ResponseError(c, err)
	}
	if recharge.UserID != CurrentUser.ID && !CurrentUser.IsAdmin() {
		return helpers.ResponseError(c, models.ErrRecordNotFound)
	}

	return c.Status(200).JSON(recharge)
}

func CreateWithdrawal(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	payload := new(helpers.WithdrawalParams)
	if ok, err := helpers.ParseBody(c, payload); !ok {
		return err
	}

	withdrawal, err := models.RequestWithdrawal(CurrentUser, payload.ToModel())
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(201).JSON(withdrawal)
}

func GetWithdrawals(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	params := new(queries.ReviewFilters)
	if ok, err := helpers.ParseQuery(c, params); !ok {
		return err
	}

	withdrawals, err := models.Withdrawals(CurrentUser.ID, params.Status, params.Page, params.Limit)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(withdrawals)
}
