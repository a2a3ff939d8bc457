package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clinic-scheduling-server/internal/models"
	"clinic-scheduling-server/internal/repository"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListRequest carries the query parameters of the appointment list.
type ListRequest struct {
	Page            int    `form:"page" binding:"omitempty,min=1"`
	Size            int    `form:"size" binding:"omitempty,min=1,max=100"`
	SortBy          string `form:"sortBy" binding:"omitempty,oneof=dateTime patientName providerName status"`
	SortDirection   string `form:"sortDirection" binding:"omitempty,oneof=asc desc ASC DESC"`
	Status          string `form:"status" binding:"omitempty,oneof=SCHEDULED CHECKED_IN IN_EXAM COMPLETED CANCELLED"`
	AppointmentType string `form:"appointmentType" binding:"omitempty,oneof=NEW FOLLOW_UP CONSULTATION ROUTINE_CHECKUP URGENT"`
	Mode            string `form:"mode" binding:"omitempty,oneof=IN_PERSON TELEHEALTH"`
	StartDate       string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate         string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	PatientName     string `form:"patientName"`
	ProviderName    string `form:"providerName"`
	ProviderID      string `form:"providerId"`
	PatientID       string `form:"patientId"`
}

// AppointmentItem is one projected row of the appointment list.
type AppointmentItem struct {
	AppointmentID          string                   `json:"appointmentId"`
	DateTime               time.Time                `json:"dateTime"`
	AppointmentType        models.AppointmentType   `json:"appointmentType"`
	Mode                   models.AppointmentMode   `json:"mode"`
	PatientName            string                   `json:"patientName"`
	PatientGender          models.Gender            `json:"patientGender"`
	PatientDateOfBirth     string                   `json:"patientDateOfBirth"`
	PatientAge             int                      `json:"patientAge"`
	PatientPhone           string                   `json:"patientPhone"`
	ProviderName           string                   `json:"providerName"`
	ProviderSpecialization models.Specialization    `json:"providerSpecialization"`
	ReasonForVisit         string                   `json:"reasonForVisit"`
	EstimatedAmount        float64                  `json:"estimatedAmount"`
	Status                 models.AppointmentStatus `json:"status"`
	CanStart               bool                     `json:"canStart"`
	CanEdit                bool                     `json:"canEdit"`
}

// PaginationInfo describes where a page sits in the filtered set.
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

// SummaryInfo counts the filtered set per status. The counts sum to TotalAppointments.
type SummaryInfo struct {
	TotalAppointments int64 `json:"totalAppointments"`
	ScheduledCount    int64 `json:"scheduledCount"`
	CheckedInCount    int64 `json:"checkedInCount"`
	InExamCount       int64 `json:"inExamCount"`
	CompletedCount    int64 `json:"completedCount"`
	CancelledCount    int64 `json:"cancelledCount"`
}

// AppointmentList is the list payload.
type AppointmentList struct {
	Appointments []AppointmentItem `json:"appointments"`
	Pagination   PaginationInfo    `json:"pagination"`
	Summary      SummaryInfo       `json:"summary"`
}

// List returns one page of active appointments with the summary of the whole
// filtered set.
func (s *AppointmentService) List(ctx context.Context, req ListRequest) (*AppointmentList, error) {
	filter, page, size, err := buildFilter(req)
	if err != nil {
		return nil, err
	}

	rows, total, err := s.store.Appointments().List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	counts, err := s.store.Appointments().CountByStatus(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count appointments: %w", err)
	}

	today := s.now().UTC()
	items := make([]AppointmentItem, 0, len(rows))
	for i := range rows {
		items = append(items, projectAppointment(&rows[i], today))
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}

	return &AppointmentList{
		Appointments: items,
		Pagination: PaginationInfo{
			CurrentPage: page,
			PageSize:    size,
			TotalItems:  total,
			TotalPages:  totalPages,
			HasNext:     int64(filter.Offset+filter.Limit) < total,
			HasPrevious: page > 1,
		},
		Summary: summarize(counts),
	}, nil
}

func buildFilter(req ListRequest) (repository.AppointmentFilter, int, int, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.Size
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	filter := repository.AppointmentFilter{
		Status:          models.AppointmentStatus(req.Status),
		AppointmentType: models.AppointmentType(req.AppointmentType),
		Mode:            models.AppointmentMode(req.Mode),
		PatientName:     nameTokens(req.PatientName),
		ProviderName:    nameTokens(strings.TrimPrefix(strings.TrimSpace(req.ProviderName), "Dr.")),
		PatientID:       strings.TrimSpace(req.PatientID),
		ProviderID:      strings.TrimSpace(req.ProviderID),
		SortBy:          req.SortBy,
		Descending:      !strings.EqualFold(req.SortDirection, "asc"),
		Limit:           size,
		Offset:          (page - 1) * size,
	}
	if filter.SortBy == "" {
		filter.SortBy = repository.SortByDateTime
	}

	if req.StartDate != "" {
		start, err := time.ParseInLocation(models.DateLayout, req.StartDate, time.UTC)
		if err != nil {
			return filter, 0, 0, &DomainError{Kind: ErrValidation, Field: "startDate", Message: "startDate must use the format YYYY-MM-DD"}
		}
		filter.From = &start
	}
	if req.EndDate != "" {
		end, err := time.ParseInLocation(models.DateLayout, req.EndDate, time.UTC)
		if err != nil {
			return filter, 0, 0, &DomainError{Kind: ErrValidation, Field: "endDate", Message: "endDate must use the format YYYY-MM-DD"}
		}
		until := end.AddDate(0, 0, 1)
		filter.Until = &until
	}
	if filter.From != nil && filter.Until != nil && !filter.From.Before(*filter.Until) {
		return filter, 0, 0, &DomainError{Kind: ErrValidation, Field: "endDate", Message: "endDate must not be before startDate"}
	}
	return filter, page, size, nil
}

func nameTokens(raw string) []string {
	var tokens []string
	for _, f := range strings.Fields(raw) {
		tokens = append(tokens, strings.ToLower(f))
	}
	return tokens
}

func projectAppointment(a *models.Appointment, today time.Time) AppointmentItem {
	return AppointmentItem{
		AppointmentID:          a.ID,
		DateTime:               a.DateTime.UTC(),
		AppointmentType:        a.AppointmentType,
		Mode:                   a.Mode,
		PatientName:            a.Patient.FullName(),
		PatientGender:          a.Patient.Gender,
		PatientDateOfBirth:     a.Patient.DateOfBirth.Format(models.DateLayout),
		PatientAge:             AgeOn(a.Patient.DateOfBirth, today),
		PatientPhone:           a.Patient.PhoneNumber,
		ProviderName:           a.Provider.DisplayName(),
		ProviderSpecialization: a.Provider.Specialization,
		ReasonForVisit:         a.ReasonForVisit,
		EstimatedAmount:        a.EstimatedAmount,
		Status:                 a.Status,
		CanStart:               a.Status.CanStart(),
		CanEdit:                a.Status.CanEdit(),
	}
}

func summarize(counts map[models.AppointmentStatus]int64) SummaryInfo {
	summary := SummaryInfo{
		ScheduledCount: counts[models.StatusScheduled],
		CheckedInCount: counts[models.StatusCheckedIn],
		InExamCount:    counts[models.StatusInExam],
		CompletedCount: counts[models.StatusCompleted],
		CancelledCount: counts[models.StatusCancelled],
	}
	summary.TotalAppointments = summary.ScheduledCount + summary.CheckedInCount +
		summary.InExamCount + summary.CompletedCount + summary.CancelledCount
	return summary
}

// AgeOn returns the number of whole calendar years between birth and day.
func AgeOn(birth, day time.Time) int {
	by, bm, bd := birth.Date()
	y, m, d := day.Date()
	age := y - by
	if m < bm || (m == bm && d < bd) {
		age--
	}
	return age
}
