package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"internship-portal/internal/domain"
)

type InternshipRepository interface {
	GetByStudent(ctx context.Context, studentID uuid.UUID) (*domain.StudentInternship, error)
	AppendReport(ctx context.Context, internshipID, reportID uuid.UUID) error
	GuideOwnsReport(ctx context.Context, guideID, reportID uuid.UUID) (bool, error)
	ListByGuide(ctx context.Context, guideID uuid.UUID) ([]domain.StudentInternship, error)
}

type internshipRepository struct {
	db *sqlx.DB
}

func NewInternshipRepository(db *sqlx.DB) InternshipRepository {
	return &internshipRepository{db: db}
}

const internshipColumns = `id, student_id, guide_id, company_name, weekly_reports, is_deleted`

func (r *internshipRepository) GetByStudent(ctx context.Context, studentID uuid.UUID) (*domain.StudentInternship, error) {
	var internship domain.StudentInternship
	query := `SELECT ` + internshipColumns + ` FROM student_internships WHERE student_id = $1 AND is_deleted = false`

	err := r.db.GetContext(ctx, &internship, query, studentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &internship, nil
}

func (r *internshipRepository) AppendReport(ctx context.Context, internshipID, reportID uuid.UUID) error {
	query := `UPDATE student_internships SET weekly_reports = array_append(weekly_reports, $2::uuid) WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, internshipID, reportID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrInternshipNotFound
	}
	return nil
}

func (r *internshipRepository) GuideOwnsReport(ctx context.Context, guideID, reportID uuid.UUID) (bool, error) {
	var owns bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM student_internships si
			JOIN weekly_reports wr ON wr.id = $2::uuid AND wr.student_id = si.student_id
			WHERE si.guide_id = $1 AND si.is_deleted = false AND $2::uuid = ANY(si.weekly_reports)
		)`
	err := r.db.GetContext(ctx, &owns, query, guideID, reportID)
	return owns, err
}

func (r *internshipRepository) ListByGuide(ctx context.Context, guideID uuid.UUID) ([]domain.StudentInternship, error) {
	var internships []domain.StudentInternship
	query := `SELECT ` + internshipColumns + ` FROM student_internships WHERE guide_id = $1 AND is_deleted = false`

	err := r.db.SelectContext(ctx, &internships, query, guideID)
	return internships, err
}
