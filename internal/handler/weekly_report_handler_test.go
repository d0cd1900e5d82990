package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"internship-portal/internal/domain"
	"internship-portal/internal/service/attachment"
)

func TestWeeklyReportHandler_Submit(t *testing.T) {
	ta := newTestApp(t)
	student := newIdentity(domain.RoleStudent, "Asha Verma")
	created := &domain.WeeklyReport{ID: uuid.New(), StudentID: student.ID, ProjectTitle: "Project X", ReportWeek: 3, ApprovalStatus: domain.StatusPending}

	ta.reports.On("Submit", mock.Anything, *student, domain.CreateWeeklyReportInput{ProjectTitle: "Project X", ReportWeek: 3, Content: "done"}).
		Return(created, nil).Once()

	status, body := ta.do(t, jsonRequest(t, http.MethodPost, "/api/weekly-reports", map[string]interface{}{
		"projectTitle": "Project X",
		"reportWeek":   3,
		"content":      "done",
	}), student)

	require.Equal(t, http.StatusCreated, status)
	assert.True(t, body.Success)

	var got domain.WeeklyReport
	require.NoError(t, json.Unmarshal(body.Data, &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, domain.StatusPending, got.ApprovalStatus)
	ta.reports.AssertExpectations(t)
}

func TestWeeklyReportHandler_SubmitValidation(t *testing.T) {
	ta := newTestApp(t)
	student := newIdentity(domain.RoleStudent, "Asha Verma")

	status, body := ta.do(t, jsonRequest(t, http.MethodPost, "/api/weekly-reports", map[string]interface{}{
		"reportWeek": 0,
	}), student)

	require.Equal(t, http.StatusBadRequest, status)
	assert.False(t, body.Success)
	assert.Contains(t, body.Errors, "projectTitle")
	assert.Contains(t, body.Errors, "reportWeek")
}

func TestWeeklyReportHandler_SubmitWithoutInternship(t *testing.T) {
	ta := newTestApp(t)
	student := newIdentity(domain.RoleStudent, "Asha Verma")

	ta.reports.On("Submit", mock.Anything, *student, mock.Anything).Return(nil, domain.ErrInternshipNotFound).Once()

	status, body := ta.do(t, jsonRequest(t, http.MethodPost, "/api/weekly-reports", map[string]interface{}{
		"projectTitle": "Project X",
		"reportWeek":   1,
	}), student)

	require.Equal(t, http.StatusNotFound, status)
	assert.False(t, body.Success)
}

func TestWeeklyReportHandler_AdminListDefaults(t *testing.T) {
	ta := newTestApp(t)
	admin := newIdentity(domain.RoleAdmin, "Office")

	ta.reports.On("List", mock.Anything, mock.MatchedBy(func(q domain.ReportQuery) bool {
		return !q.SortDesc && q.Pagination.Page == 1 && q.Pagination.PageSize == 10 &&
			q.Filter.StudentName == "asha" && q.Filter.IncludeDeleted
	}), domain.AdminActor(admin.ID, admin.Name)).Return(domain.PaginatedResponse[domain.WeeklyReport]{
		Data:       []domain.WeeklyReport{{ID: uuid.New()}},
		Page:       1,
		PageSize:   10,
		TotalItems: 1,
		TotalPages: 1,
	}, nil).Once()

	status, body := ta.do(t, httptest.NewRequest(http.MethodGet, "/api/weekly-reports?studentName=asha&includeDeleted=true", nil), admin)

	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, body.Total)
	assert.EqualValues(t, 1, *body.Total)
	assert.Equal(t, 1, *body.Page)
	assert.Equal(t, 1, *body.Pages)
	ta.reports.AssertExpectations(t)
}

func TestWeeklyReportHandler_ListOrderParam(t *testing.T) {
	cases := []struct {
		query    string
		wantDesc bool
	}{
		{"sortBy=reportWeek&order=desc", true},
		{"sortBy=reportWeek&sortOrder=desc", true},
		{"sortBy=reportWeek&order=asc&sortOrder=desc", false},
		{"sortBy=reportWeek", false},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			ta := newTestApp(t)
			admin := newIdentity(domain.RoleAdmin, "Office")

			ta.reports.On("List", mock.Anything, mock.MatchedBy(func(q domain.ReportQuery) bool {
				return q.SortDesc == tc.wantDesc && q.SortBy == "reportWeek"
			}), mock.Anything).Return(domain.PaginatedResponse[domain.WeeklyReport]{Page: 1, PageSize: 10}, nil).Once()

			status, _ := ta.do(t, httptest.NewRequest(http.MethodGet, "/api/weekly-reports?"+tc.query, nil), admin)

			require.Equal(t, http.StatusOK, status)
			ta.reports.AssertExpectations(t)
		})
	}
}

func TestWeeklyReportHandler_GuideListDefaultsToNewestFirst(t *testing.T) {
	ta := newTestApp(t)
	guide := newIdentity(domain.RoleGuide, "Dr. Rao")

	ta.reports.On("List", mock.Anything, mock.MatchedBy(func(q domain.ReportQuery) bool {
		return q.SortDesc && q.Pagination.PageSize == 100
	}), domain.GuideActor(guide.ID, guide.Name)).Return(domain.PaginatedResponse[domain.WeeklyReport]{
		Data: []domain.WeeklyReport{}, Page: 1, PageSize: 100,
	}, nil).Once()

	status, _ := ta.do(t, httptest.NewRequest(http.MethodGet, "/api/weeklyReport/guide?limit=500", nil), guide)

	require.Equal(t, http.StatusOK, status)
	ta.reports.AssertExpectations(t)
}

func TestWeeklyReportHandler_InvalidQuery(t *testing.T) {
	ta := newTestApp(t)
	admin := newIdentity(domain.RoleAdmin, "Office")

	for _, target := range []string{
		"/api/weekly-reports?page=abc",
		"/api/weekly-reports?page=0",
		"/api/weekly-reports?approvalStatus=Maybe",
		"/api/weekly-reports?reportWeek=-2",
	} {
		status, body := ta.do(t, httptest.NewRequest(http.MethodGet, target, nil), admin)
		assert.Equal(t, http.StatusBadRequest, status, target)
		assert.False(t, body.Success, target)
	}
}

func TestWeeklyReportHandler_GuideForeignReportIsNotFound(t *testing.T) {
	ta := newTestApp(t)
	guide := newIdentity(domain.RoleGuide, "Dr. Rao")
	reportID := uuid.New()

	ta.reports.On("SetApproval", mock.Anything, reportID, mock.Anything, domain.GuideActor(guide.ID, guide.Name)).
		Return(nil, domain.ErrReportNotAssigned).Once()

	status, body := ta.do(t, jsonRequest(t, http.MethodPatch, "/api/weeklyReport/guide/"+reportID.String()+"/approval", map[string]string{
		"approvalStatus": "Approved",
	}), guide)

	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, domain.ErrReportNotAssigned.Error(), body.Message)
}

func TestWeeklyReportHandler_AdminApproval(t *testing.T) {
	ta := newTestApp(t)
	admin := newIdentity(domain.RoleAdmin, "Office")
	reportID := uuid.New()
	comments := "Missing hours"

	ta.reports.On("SetApproval", mock.Anything, reportID, domain.ApprovalInput{
		ApprovalStatus: domain.StatusRejected,
		Comments:       &comments,
	}, domain.AdminActor(admin.ID, admin.Name)).Return(&domain.WeeklyReport{ID: reportID, ApprovalStatus: domain.StatusRejected}, nil).Once()

	status, body := ta.do(t, jsonRequest(t, http.MethodPatch, "/api/weekly-reports/"+reportID.String()+"/approval", map[string]string{
		"approvalStatus": "Rejected",
		"comments":       comments,
	}), admin)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Approval status updated successfully", body.Message)
	ta.reports.AssertExpectations(t)
}

func TestWeeklyReportHandler_RejectWithoutCommentsIsBadRequest(t *testing.T) {
	ta := newTestApp(t)
	admin := newIdentity(domain.RoleAdmin, "Office")
	reportID := uuid.New()

	input := domain.ApprovalInput{ApprovalStatus: domain.StatusRejected}
	ta.reports.On("SetApproval", mock.Anything, reportID, input, mock.Anything).Return(nil, input.Validate()).Once()

	status, _ := ta.do(t, jsonRequest(t, http.MethodPatch, "/api/weekly-reports/"+reportID.String()+"/approval", map[string]string{
		"approvalStatus": "Rejected",
	}), admin)

	require.Equal(t, http.StatusBadRequest, status)
}

func TestWeeklyReportHandler_GuideMarks(t *testing.T) {
	ta := newTestApp(t)
	guide := newIdentity(domain.RoleGuide, "Dr. Rao")
	reportID := uuid.New()

	ta.reports.On("SetMarks", mock.Anything, reportID, mock.MatchedBy(func(in domain.MarksInput) bool {
		return in.Marks != nil && *in.Marks == 8
	}), domain.GuideActor(guide.ID, guide.Name)).Return(&domain.WeeklyReport{ID: reportID}, nil).Once()

	status, body := ta.do(t, jsonRequest(t, http.MethodPatch, "/api/weeklyReport/guide/"+reportID.String()+"/marks", map[string]int{
		"marks": 8,
	}), guide)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Marks updated successfully", body.Message)
	ta.reports.AssertExpectations(t)
}

func TestWeeklyReportHandler_InvalidID(t *testing.T) {
	ta := newTestApp(t)
	admin := newIdentity(domain.RoleAdmin, "Office")

	status, body := ta.do(t, httptest.NewRequest(http.MethodGet, "/api/weekly-reports/not-a-uuid", nil), admin)

	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid report ID", body.Message)
}

func TestWeeklyReportHandler_DeleteAndRestore(t *testing.T) {
	ta := newTestApp(t)
	admin := newIdentity(domain.RoleAdmin, "Office")
	reportID := uuid.New()

	ta.reports.On("Delete", mock.Anything, reportID).Return(nil).Once()
	ta.reports.On("Restore", mock.Anything, reportID).Return(&domain.WeeklyReport{ID: reportID}, nil).Once()

	status, _ := ta.do(t, httptest.NewRequest(http.MethodDelete, "/api/weekly-reports/"+reportID.String(), nil), admin)
	require.Equal(t, http.StatusOK, status)

	status, body := ta.do(t, httptest.NewRequest(http.MethodPatch, "/api/weekly-reports/"+reportID.String()+"/restore", nil), admin)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Weekly report restored successfully", body.Message)
	ta.reports.AssertExpectations(t)
}

func TestWeeklyReportHandler_StudentGetsOwnReport(t *testing.T) {
	ta := newTestApp(t)
	student := newIdentity(domain.RoleStudent, "Asha Verma")
	reportID := uuid.New()

	ta.reports.On("Get", mock.Anything, reportID, *student).Return(nil, domain.ErrReportNotFound).Once()

	status, body := ta.do(t, httptest.NewRequest(http.MethodGet, "/api/weekly-reports/"+reportID.String(), nil), student)

	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Weekly report not found", body.Message)
}

func TestWeeklyReportHandler_UploadAttachment(t *testing.T) {
	ta := newTestApp(t)
	student := newIdentity(domain.RoleStudent, "Asha Verma")
	reportID := uuid.New()
	key := "weekly-reports/2026/10/" + reportID.String() + "/a.pdf"

	ta.reports.On("UploadAttachment", mock.Anything, reportID, *student, mock.MatchedBy(func(f attachment.File) bool {
		return f.Name == "week3.pdf" && f.ContentType == "application/pdf" && f.Size == 9
	})).Return(&domain.WeeklyReport{ID: reportID, AttachmentKey: &key}, nil).Once()

	status, body := ta.do(t, multipartRequest(t, "/api/weekly-reports/"+reportID.String()+"/attachment", "week3.pdf", "application/pdf", []byte("%PDF-1.4\n")), student)

	require.Equal(t, http.StatusOK, status)
	assert.True(t, body.Success)
	ta.reports.AssertExpectations(t)
}

func TestWeeklyReportHandler_UploadWithoutFile(t *testing.T) {
	ta := newTestApp(t)
	student := newIdentity(domain.RoleStudent, "Asha Verma")

	status, body := ta.do(t, jsonRequest(t, http.MethodPost, "/api/weekly-reports/"+uuid.NewString()+"/attachment", nil), student)

	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "File is required", body.Message)
}
