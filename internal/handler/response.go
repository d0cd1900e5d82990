package handler

import (
	"github.com/gofiber/fiber/v2"

	"internship-portal/internal/domain"
)

type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Total   *int64      `json:"total,omitempty"`
	Page    *int        `json:"page,omitempty"`
	Pages   *int        `json:"pages,omitempty"`
}

func jsonOK(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(envelope{Success: true, Message: message, Data: data})
}

func jsonCreated(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(envelope{Success: true, Message: message, Data: data})
}

func jsonPage[T any](c *fiber.Ctx, res domain.PaginatedResponse[T]) error {
	return c.Status(fiber.StatusOK).JSON(envelope{
		Success: true,
		Data:    res.Data,
		Total:   &res.TotalItems,
		Page:    &res.Page,
		Pages:   &res.TotalPages,
	})
}
