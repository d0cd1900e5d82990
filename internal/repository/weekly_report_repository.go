package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"internship-portal/internal/domain"
)

type WeeklyReportRepository interface {
	Create(ctx context.Context, report *domain.WeeklyReport) error
	GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*domain.WeeklyReport, error)
	UpdateContent(ctx context.Context, report *domain.WeeklyReport) error
	UpdateApproval(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus, comments *string, approvedBy *uuid.UUID) (*domain.WeeklyReport, error)
	UpdateMarks(ctx context.Context, id uuid.UUID, marks int, markedBy *uuid.UUID) (*domain.WeeklyReport, error)
	SetAttachment(ctx context.Context, id uuid.UUID, key *string) error
	SoftDelete(ctx context.Context, id uuid.UUID) (*domain.WeeklyReport, error)
	Restore(ctx context.Context, id uuid.UUID) (*domain.WeeklyReport, error)
	List(ctx context.Context, q domain.ReportQuery) ([]domain.WeeklyReport, int64, error)
}

type weeklyReportRepository struct {
	db *sqlx.DB
}

func NewWeeklyReportRepository(db *sqlx.DB) WeeklyReportRepository {
	return &weeklyReportRepository{db: db}
}

const reportColumns = `id, student_id, student_name, project_title, report_week, content,
	attachment_key, approval_status, comments, marks, approved_by, approval_date,
	marked_by, marking_date, status_updated_at, is_deleted, deleted_at, created_at, updated_at`

func (r *weeklyReportRepository) Create(ctx context.Context, report *domain.WeeklyReport) error {
	query := `
		INSERT INTO weekly_reports (id, student_id, student_name, project_title, report_week, content, approval_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		report.ID, report.StudentID, report.StudentName, report.ProjectTitle,
		report.ReportWeek, report.Content, report.ApprovalStatus,
	).Scan(&report.CreatedAt, &report.UpdatedAt)
}

func (r *weeklyReportRepository) GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*domain.WeeklyReport, error) {
	var report domain.WeeklyReport
	query := `SELECT ` + reportColumns + ` FROM weekly_reports WHERE id = $1`
	if !includeDeleted {
		query += ` AND is_deleted = false`
	}

	err := r.db.GetContext(ctx, &report, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *weeklyReportRepository) UpdateContent(ctx context.Context, report *domain.WeeklyReport) error {
	query := `
		UPDATE weekly_reports
		SET project_title = $2, report_week = $3, content = $4, updated_at = NOW()
		WHERE id = $1 AND is_deleted = false
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		report.ID, report.ProjectTitle, report.ReportWeek, report.Content,
	).Scan(&report.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrReportNotFound
	}
	return err
}

// UpdateApproval writes status and comments unconditionally; approvedBy, when
// set, also stamps the approval date.
func (r *weeklyReportRepository) UpdateApproval(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus, comments *string, approvedBy *uuid.UUID) (*domain.WeeklyReport, error) {
	query := `
		UPDATE weekly_reports
		SET approval_status = $2,
			comments = $3,
			status_updated_at = NOW(),
			approved_by = COALESCE($4::uuid, approved_by),
			approval_date = CASE WHEN $4::uuid IS NULL THEN approval_date ELSE NOW() END,
			updated_at = NOW()
		WHERE id = $1 AND is_deleted = false
		RETURNING ` + reportColumns

	return r.updateReturning(ctx, query, id, status, comments, approvedBy)
}

func (r *weeklyReportRepository) UpdateMarks(ctx context.Context, id uuid.UUID, marks int, markedBy *uuid.UUID) (*domain.WeeklyReport, error) {
	query := `
		UPDATE weekly_reports
		SET marks = $2,
			marked_by = COALESCE($3::uuid, marked_by),
			marking_date = CASE WHEN $3::uuid IS NULL THEN marking_date ELSE NOW() END,
			updated_at = NOW()
		WHERE id = $1 AND is_deleted = false
		RETURNING ` + reportColumns

	return r.updateReturning(ctx, query, id, marks, markedBy)
}

func (r *weeklyReportRepository) SetAttachment(ctx context.Context, id uuid.UUID, key *string) error {
	query := `UPDATE weekly_reports SET attachment_key = $2, updated_at = NOW() WHERE id = $1 AND is_deleted = false`
	result, err := r.db.ExecContext(ctx, query, id, key)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

func (r *weeklyReportRepository) SoftDelete(ctx context.Context, id uuid.UUID) (*domain.WeeklyReport, error) {
	query := `
		UPDATE weekly_reports
		SET is_deleted = true, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND is_deleted = false
		RETURNING ` + reportColumns

	return r.updateReturning(ctx, query, id)
}

func (r *weeklyReportRepository) Restore(ctx context.Context, id uuid.UUID) (*domain.WeeklyReport, error) {
	query := `
		UPDATE weekly_reports
		SET is_deleted = false, deleted_at = NULL, updated_at = NOW()
		WHERE id = $1 AND is_deleted = true
		RETURNING ` + reportColumns

	return r.updateReturning(ctx, query, id)
}

// updateReturning runs a single-row UPDATE ... RETURNING; no row means the
// report is missing or not in the state the statement requires.
func (r *weeklyReportRepository) updateReturning(ctx context.Context, query string, args ...interface{}) (*domain.WeeklyReport, error) {
	var report domain.WeeklyReport
	err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&report)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *weeklyReportRepository) List(ctx context.Context, q domain.ReportQuery) ([]domain.WeeklyReport, int64, error) {
	where, args := buildReportWhere(q.Filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM weekly_reports` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	order := "ASC"
	if q.SortDesc {
		order = "DESC"
	}

	query := fmt.Sprintf(`SELECT %s FROM weekly_reports%s ORDER BY %s %s, id %s LIMIT $%d OFFSET $%d`,
		reportColumns, where, q.SortColumn(), order, order, len(args)+1, len(args)+2)
	args = append(args, q.Pagination.PageSize, q.Pagination.Offset())

	var reports []domain.WeeklyReport
	if err := r.db.SelectContext(ctx, &reports, query, args...); err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func buildReportWhere(f domain.ReportFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if !f.IncludeDeleted {
		conds = append(conds, "is_deleted = false")
	}
	if name := strings.TrimSpace(f.StudentName); name != "" {
		add(`student_name ILIKE $%d ESCAPE '\'`, "%"+escapeLike(name)+"%")
	}
	if f.ReportWeek != nil {
		add("report_week = $%d", *f.ReportWeek)
	}
	if f.ApprovalStatus != nil {
		add("approval_status = $%d", *f.ApprovalStatus)
	}
	if f.ReportIDs != nil {
		add("id = ANY($%d::uuid[])", pq.Array(uuidStrings(f.ReportIDs)))
	}
	if f.StudentIDs != nil {
		add("student_id = ANY($%d::uuid[])", pq.Array(uuidStrings(f.StudentIDs)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
