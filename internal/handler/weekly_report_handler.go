package handler

import (
	"github.com/gofiber/fiber/v2"

	"internship-portal/internal/domain"
	"internship-portal/internal/middleware"
	"internship-portal/internal/service/attachment"
	"internship-portal/internal/service/report"
)

type WeeklyReportHandler struct {
	reportService report.Service
}

func NewWeeklyReportHandler(reportService report.Service) *WeeklyReportHandler {
	return &WeeklyReportHandler{reportService: reportService}
}

func (h *WeeklyReportHandler) Submit(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var input domain.CreateWeeklyReportInput
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}

	created, err := h.reportService.Submit(c.Context(), identity, input)
	if err != nil {
		return err
	}

	return jsonCreated(c, "Weekly report submitted successfully", created)
}

func (h *WeeklyReportHandler) List(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	query, err := parseReportQuery(c, false)
	if err != nil {
		return err
	}

	result, err := h.reportService.List(c.Context(), query, domain.AdminActor(identity.ID, identity.Name))
	if err != nil {
		return err
	}

	return jsonPage(c, result)
}

func (h *WeeklyReportHandler) Get(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	id, err := parseReportID(c)
	if err != nil {
		return err
	}

	found, err := h.reportService.Get(c.Context(), id, identity)
	if err != nil {
		return err
	}

	return jsonOK(c, "", found)
}

func (h *WeeklyReportHandler) Update(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	id, err := parseReportID(c)
	if err != nil {
		return err
	}

	var input domain.UpdateWeeklyReportInput
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}

	updated, err := h.reportService.Update(c.Context(), id, identity, input)
	if err != nil {
		return err
	}

	return jsonOK(c, "Weekly report updated successfully", updated)
}

func (h *WeeklyReportHandler) Delete(c *fiber.Ctx) error {
	id, err := parseReportID(c)
	if err != nil {
		return err
	}

	if err := h.reportService.Delete(c.Context(), id); err != nil {
		return err
	}

	return jsonOK(c, "Weekly report deleted successfully", nil)
}

func (h *WeeklyReportHandler) Restore(c *fiber.Ctx) error {
	id, err := parseReportID(c)
	if err != nil {
		return err
	}

	restored, err := h.reportService.Restore(c.Context(), id)
	if err != nil {
		return err
	}

	return jsonOK(c, "Weekly report restored successfully", restored)
}

func (h *WeeklyReportHandler) UpdateApproval(c *fiber.Ctx) error {
	return h.setApproval(c, domain.ScopeAdmin)
}

func (h *WeeklyReportHandler) UpdateMarks(c *fiber.Ctx) error {
	return h.setMarks(c, domain.ScopeAdmin)
}

func (h *WeeklyReportHandler) UploadAttachment(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	id, err := parseReportID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer file.Close()

	updated, err := h.reportService.UploadAttachment(c.Context(), id, identity, attachment.File{
		Name:        fileHeader.Filename,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Reader:      file,
	})
	if err != nil {
		return err
	}

	return jsonOK(c, "Attachment uploaded successfully", updated)
}

func (h *WeeklyReportHandler) GuideList(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	query, err := parseReportQuery(c, true)
	if err != nil {
		return err
	}

	result, err := h.reportService.List(c.Context(), query, domain.GuideActor(identity.ID, identity.Name))
	if err != nil {
		return err
	}

	return jsonPage(c, result)
}

func (h *WeeklyReportHandler) GuideGet(c *fiber.Ctx) error {
	return h.Get(c)
}

func (h *WeeklyReportHandler) GuideUpdateApproval(c *fiber.Ctx) error {
	return h.setApproval(c, domain.ScopeGuide)
}

func (h *WeeklyReportHandler) GuideUpdateMarks(c *fiber.Ctx) error {
	return h.setMarks(c, domain.ScopeGuide)
}

func (h *WeeklyReportHandler) setApproval(c *fiber.Ctx, scope domain.ActorScope) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	id, err := parseReportID(c)
	if err != nil {
		return err
	}

	var input domain.ApprovalInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	actor := domain.Actor{ID: identity.ID, Name: identity.Name, Scope: scope}
	updated, err := h.reportService.SetApproval(c.Context(), id, input, actor)
	if err != nil {
		return err
	}

	return jsonOK(c, "Approval status updated successfully", updated)
}

func (h *WeeklyReportHandler) setMarks(c *fiber.Ctx, scope domain.ActorScope) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	id, err := parseReportID(c)
	if err != nil {
		return err
	}

	var input domain.MarksInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	actor := domain.Actor{ID: identity.ID, Name: identity.Name, Scope: scope}
	updated, err := h.reportService.SetMarks(c.Context(), id, input, actor)
	if err != nil {
		return err
	}

	return jsonOK(c, "Marks updated successfully", updated)
}
