package admin_controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/controllers/helpers"
	"github.com/goleiroon/goleiroon/models"
	"github.com/goleiroon/goleiroon/types"
)

func GetCategories(c *fiber.Ctx) error {
	categories, err := models.RatingCategories(types.RatingTarget(c.Query("tipo")), false)
	if err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(categories)
}

func CreateCategory(c *fiber.Ctx) error {
	payload := new(helpers.CategoryParams)
	if ok, err := helpers.ParseBody(c, payload); !ok {
		return err
	}

	category := &models.RatingCategory{Active: true}
	if err := models.SaveRatingCategory(category, payload.ToModel()); err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(201).JSON(category)
}

func UpdateCategory(c *fiber.Ctx) error {
	id, ok := helpers.ParseID(c, "id")
	if !ok {
		return helpers.ResponseError(c, models.ErrRecordNotFound)
	}

	payload := new(helpers.CategoryParams)
	if ok, err := helpers.ParseBody(c, payload); !ok {
		return err
	}

	category, err := models.FindRatingCategory(id)
	if err != nil {
		return helpers.ResponseError(c, err)
	}
	if err := models.SaveRatingCategory(category, payload.ToModel()); err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(category)
}

func GetVenues(c *fiber.Ctx) error {
	var venues []*models.Venue

	if err := config.DataBase.Order("nome asc").Find(&venues).Error; err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(venues)
}

func CreateVenue(c *fiber.Ctx) error {
	payload := new(helpers.VenueParams)
	if ok, err := helpers.ParseBody(c, payload); !ok {
		return err
	}

	venue := &models.Venue{Active: true}
	if err := models.SaveVenue(venue, payload.ToModel()); err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(201).JSON(venue)
}

func UpdateVenue(c *fiber.Ctx) error {
	id, ok := helpers.ParseID(c, "id")
	if !ok {
		return helpers.ResponseError(c, models.ErrRecordNotFound)
	}

	payload := new(helpers.VenueParams)
	if ok, err := helpers.ParseBody(c, payload); !ok {
		return err
	}

	venue, err := models.FindVenue(id)
	if err != nil {
		return helpers.ResponseError(c, err)
	}
	if err := models.SaveVenue(venue, payload.ToModel()); err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(200).JSON(venue)
}

func PublishUpdate(c *fiber.Ctx) error {
	payload := new(helpers.AppUpdateParams)
	if ok, err := helpers.ParseBody(c, payload); !ok {
		return err
	}

	update := &models.AppUpdate{
		Version:     payload.Version,
		Title:       payload.Title,
		Description: payload.Description,
		Mandatory:   payload.Mandatory,
	}

	if err := config.DataBase.Create(update).Error; err != nil {
		return helpers.ResponseError(c, err)
	}

	return c.Status(201).JSON(update)
}
