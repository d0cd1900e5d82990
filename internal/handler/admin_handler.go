package handler

import (
	"github.com/gofiber/fiber/v2"

	"internship-portal/internal/domain"
	"internship-portal/internal/service/admin"
)

type AdminHandler struct {
	adminService admin.Service
}

func NewAdminHandler(adminService admin.Service) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateAdminInput
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}

	created, err := h.adminService.Create(c.Context(), input)
	if err != nil {
		return err
	}

	return jsonCreated(c, "Admin created successfully. Credentials have been sent by e-mail.", created)
}

func (h *AdminHandler) List(c *fiber.Ctx) error {
	admins, err := h.adminService.List(c.Context())
	if err != nil {
		return err
	}

	return jsonOK(c, "", admins)
}
