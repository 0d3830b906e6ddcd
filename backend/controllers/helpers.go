package controllers

import (
	"strconv"

	"studybuddy/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// paramID reads a positive integer path parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, utils.ValidationErr("Invalid " + name)
	}
	return uint(id), nil
}

// queryID reads an optional positive integer query parameter. ok is false
// when the parameter is absent.
func queryID(c *fiber.Ctx, name string) (id uint, ok bool, err error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, nil
	}
	v, perr := strconv.ParseUint(raw, 10, 64)
	if perr != nil || v == 0 {
		return 0, false, utils.ValidationErr("Invalid " + name)
	}
	return uint(v), true, nil
}

// parseBody decodes the JSON body and runs validator tags on it.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return utils.ValidationErr("Cannot parse JSON")
	}
	if err := utils.Validate(out); err != nil {
		return utils.ValidationErr(utils.ValidationMessage(err))
	}
	return nil
}
