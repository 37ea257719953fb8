package helpers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gookit/validate"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/models"
	"github.com/goleiroon/goleiroon/types"
)

var (
	InvalidMessageBody = "server.method.invalid_message_body"
	InvalidQuery       = "server.method.invalid_query"
	ServerInternal     = "server.internal_error"
)

type Errors struct {
	Errors []string `json:"errors"`
}

func (e Errors) Size() int {
	return len(e.Errors)
}

func Vaildate(payload interface{}, err_src *Errors) {
	v := validate.Struct(payload)
	if !v.Validate() {
		for _, errs := range v.Errors.All() {
			for _, err := range errs {
				err_src.Errors = append(err_src.Errors, err)
			}
		}
	}
}

// VaildateMessage maps every rule failure of a payload to "<prefix>.invalid_{field}".
func VaildateMessage(prefix string) validate.MS {
	invalid_message := prefix + ".invalid_{field}"

	return validate.MS{
		"required": prefix + ".missing_{field}",
		"email":    invalid_message,
		"minLen":   invalid_message,
		"maxLen":   invalid_message,
		"uint":     invalid_message,
		"in":       invalid_message,
		"min":      invalid_message,
		"max":      invalid_message,
		"_":        invalid_message,
	}
}

func ValidateOrderBy(val types.OrderBy) bool {
	return len(val) == 0 || val == types.OrderByAsc || val == types.OrderByDesc
}

// StatusOf maps a domain error kind to its HTTP status.
func StatusOf(err error) int {
	switch models.KindOf(err) {
	case models.KindValidation:
		return fiber.StatusUnprocessableEntity
	case models.KindUnauthorized:
		return fiber.StatusUnauthorized
	case models.KindForbidden:
		return fiber.StatusForbidden
	case models.KindNotFound:
		return fiber.StatusNotFound
	case models.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// ResponseError writes err as {"errors": [key]}. Unclassified errors are logged and hidden.
func ResponseError(c *fiber.Ctx, err error) error {
	status := StatusOf(err)
	if status == fiber.StatusInternalServerError {
		config.Logger.WithFields(map[string]interface{}{
			"method": c.Method(),
			"path":   c.Path(),
		}).Errorf("Request failed: %v", err)
	}

	return c.Status(status).JSON(Errors{
		Errors: []string{models.KeyOf(err)},
	})
}

func ResponseErrors(c *fiber.Ctx, status int, keys ...string) error {
	return c.Status(status).JSON(Errors{Errors: keys})
}

// ParseID reads a positive numeric route param.
func ParseID(c *fiber.Ctx, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}

	return id, true
}

// ParseBody decodes and validates the request body. On failure the response is
// already written and the returned error must be passed back to fiber.
func ParseBody(c *fiber.Ctx, payload interface{}) (bool, error) {
	if err := c.BodyParser(payload); err != nil {
		return false, ResponseErrors(c, fiber.StatusUnprocessableEntity, InvalidMessageBody)
	}

	errors := new(Errors)
	Vaildate(payload, errors)
	if errors.Size() > 0 {
		return false, c.Status(fiber.StatusUnprocessableEntity).JSON(errors)
	}

	return true, nil
}

func ParseQuery(c *fiber.Ctx, params interface{}) (bool, error) {
	if err := c.QueryParser(params); err != nil {
		return false, ResponseErrors(c, fiber.StatusUnprocessableEntity, InvalidQuery)
	}

	errors := new(Errors)
	Vaildate(params, errors)
	if errors.Size() > 0 {
		return false, c.Status(fiber.StatusUnprocessableEntity).JSON(errors)
	}

	return true, nil
}
