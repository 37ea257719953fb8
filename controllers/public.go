package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/controllers/helpers"
	"github.com/goleiroon/goleiroon/controllers/queries"
	"github.com/goleiroon/goleiroon/models"
)

func GetTimestamp(c *fiber.Ctx) error {
	return c.Status(200).JSON(time.Now())
}

// GetHealth reports whether the database answers. Redis and NATS are optional.
func GetHealth(c *fiber.Ctx) error {
	db, err := config.DataBase.DB()
	if err == nil {
		err = config.PingDatabase(context.Background(), db)
	}

	if err != nil {
		config.Logger.Errorf("Health check failed: %v", err)
		return c.Status(503).JSON(fiber.Map{"status": "unavailable"})
	}

	return c.Status(200).JSON(fiber.Map{
		"status": "ok",
		"redis":  config.Redis != nil,
		"nats":   config.Nats != nil && config.Nats.IsConnected(),
	})
}

func GetVenues(c *fiber.Ctx) error {
	params := new(queries.VenueFilters)
	if ok, err := helpers.ParseQuery(c, params); !ok {
		return err
	}

	venues, err := models.ActiveVenues(params.City)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(venues)
}

func GetLatestUpdate(c *fiber.Ctx) error {
	update, err := models.LatestAppUpdate()
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(update)
}
