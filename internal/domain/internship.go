package domain

import (
	"database/sql/driver"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type StudentInternship struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	StudentID     uuid.UUID  `json:"student" db:"student_id"`
	GuideID       *uuid.UUID `json:"guide" db:"guide_id"`
	CompanyName   *string    `json:"companyName,omitempty" db:"company_name"`
	WeeklyReports UUIDList   `json:"weeklyReports" db:"weekly_reports"`
	IsDeleted     bool       `json:"isDeleted" db:"is_deleted"`
}

// UUIDList is an ordered uuid[] column.
type UUIDList []uuid.UUID

func (l UUIDList) Value() (driver.Value, error) {
	arr := make(pq.StringArray, len(l))
	for i, id := range l {
		arr[i] = id.String()
	}
	return arr.Value()
}

func (l *UUIDList) Scan(src interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}

	out := make(UUIDList, 0, len(arr))
	for _, s := range arr {
		id, err := uuid.Parse(s)
		if err != nil {
			return fmt.Errorf("scan uuid list: %w", err)
		}
		out = append(out, id)
	}
	*l = out
	return nil
}
