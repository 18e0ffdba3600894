package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"countries-inquiry-service/internal/service"
)

const (
	defaultLimit  = 100
	maxLimit      = 1000
	defaultRandom = 1
	maxRandom     = 100
)

// listOptions reads fields, sort, limit and skip. limit must be within
// [1, maxLimit] and skip non-negative.
func listOptions(c *fiber.Ctx) (service.ListOptions, error) {
	limit, err := intQuery(c, "limit", defaultLimit)
	if err != nil {
		return service.ListOptions{}, err
	}
	if limit < 1 || limit > maxLimit {
		return service.ListOptions{}, fmt.Errorf("limit must be between 1 and %d", maxLimit)
	}
	skip, err := intQuery(c, "skip", 0)
	if err != nil {
		return service.ListOptions{}, err
	}
	if skip < 0 {
		return service.ListOptions{}, fmt.Errorf("skip must not be negative")
	}
	return service.ListOptions{
		Fields: c.Query("fields"),
		Sort:   c.Query("sort"),
		Skip:   int64(skip),
		Limit:  int64(limit),
	}, nil
}

func intQuery(c *fiber.Ctx, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

func optionalBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be true or false", key)
	}
	return &b, nil
}

func optionalFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", key)
	}
	if f < 0 {
		return nil, fmt.Errorf("%s must not be negative", key)
	}
	return &f, nil
}

func optionalInt(c *fiber.Ctx, key string) (*int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	if n < 0 {
		return nil, fmt.Errorf("%s must not be negative", key)
	}
	return &n, nil
}

func splitCodes(raw string) []string {
	var codes []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
