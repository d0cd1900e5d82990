package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"internship-portal/internal/domain"
	"internship-portal/internal/middleware"
)

const maxPageSize = 100

// parsePagination reads page/limit, defaulting to 1/10. Non-numeric or
// non-positive values are rejected.
func parsePagination(c *fiber.Ctx) (domain.PaginationParams, error) {
	params := domain.DefaultPagination()

	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return params, domain.NewValidationError("Invalid pagination parameters")
		}
		params.Page = page
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return params, domain.NewValidationError("Invalid pagination parameters")
		}
		params.PageSize = limit
	}

	if err := params.Validate(); err != nil {
		return params, err
	}
	params.Clamp(maxPageSize)
	return params, nil
}

// parseReportQuery reads list filters. The direction comes from order, with
// sortOrder accepted as an alias; defaultDesc applies when neither is given.
func parseReportQuery(c *fiber.Ctx, defaultDesc bool) (domain.ReportQuery, error) {
	pagination, err := parsePagination(c)
	if err != nil {
		return domain.ReportQuery{}, err
	}

	q := domain.ReportQuery{
		Filter: domain.ReportFilter{
			StudentName:    strings.TrimSpace(c.Query("studentName")),
			IncludeDeleted: c.QueryBool("includeDeleted", false),
		},
		SortBy:     c.Query("sortBy", domain.DefaultReportSort),
		SortDesc:   defaultDesc,
		Pagination: pagination,
	}

	order := c.Query("order")
	if order == "" {
		order = c.Query("sortOrder")
	}
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "asc":
		q.SortDesc = false
	case "desc":
		q.SortDesc = true
	}

	if raw := strings.TrimSpace(c.Query("reportWeek")); raw != "" {
		week, err := strconv.Atoi(raw)
		if err != nil || week < 1 {
			return q, domain.NewValidationError("Invalid report week")
		}
		q.Filter.ReportWeek = &week
	}

	if raw := strings.TrimSpace(c.Query("approvalStatus")); raw != "" {
		status := domain.ApprovalStatus(raw)
		if !status.IsValid() {
			return q, domain.NewValidationError("Invalid approval status")
		}
		q.Filter.ApprovalStatus = &status
	}

	return q, nil
}

func parseReportID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid report ID")
	}
	return id, nil
}

func currentIdentity(c *fiber.Ctx) (domain.Identity, error) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return domain.Identity{}, middleware.Unauthorized("Invalid user")
	}
	return identity, nil
}
