package services

import (
	"context"
	"testing"
	"time"

	"clinic-scheduling-server/internal/models"
	"clinic-scheduling-server/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeOn(t *testing.T) {
	birth := time.Date(2017, time.March, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 13, AgeOn(birth, time.Date(2030, time.March, 10, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, 12, AgeOn(birth, time.Date(2030, time.March, 9, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, 13, AgeOn(birth, time.Date(2030, time.December, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, AgeOn(birth, birth))
}

func TestList_ProjectionAndSummary(t *testing.T) {
	store := newMemStore()
	patient := seedPatient(store, "pat@example.com")
	provider := seedProvider(store, "doc@example.com")

	statuses := []models.AppointmentStatus{
		models.StatusScheduled, models.StatusScheduled, models.StatusCheckedIn,
		models.StatusInExam, models.StatusCompleted, models.StatusCancelled,
	}
	for i, st := range statuses {
		store.addAppointment(models.Appointment{
			PatientID:       patient.ID,
			ProviderID:      provider.ID,
			AppointmentType: models.AppointmentTypeFollowUp,
			Mode:            models.ModeTelehealth,
			DateTime:        testNow.Add(time.Duration(i+1) * time.Hour),
			ReasonForVisit:  "Check-up",
			EstimatedAmount: 99.5,
			Status:          st,
			IsActive:        true,
		})
	}
	store.addAppointment(models.Appointment{PatientID: patient.ID, ProviderID: provider.ID, DateTime: testNow, Status: models.StatusScheduled, IsActive: false})

	svc := newTestAppointmentService(store, time.Hour)
	list, err := svc.List(context.Background(), ListRequest{})
	require.NoError(t, err)

	s := list.Summary
	assert.Equal(t, int64(6), s.TotalAppointments)
	assert.Equal(t, int64(2), s.ScheduledCount)
	assert.Equal(t, int64(1), s.CheckedInCount)
	assert.Equal(t, int64(1), s.InExamCount)
	assert.Equal(t, int64(1), s.CompletedCount)
	assert.Equal(t, int64(1), s.CancelledCount)
	assert.Equal(t, s.TotalAppointments, s.ScheduledCount+s.CheckedInCount+s.InExamCount+s.CompletedCount+s.CancelledCount)

	require.Len(t, list.Appointments, 6)
	// Default order is newest first.
	first := list.Appointments[0]
	assert.Equal(t, models.StatusCancelled, first.Status)
	assert.False(t, first.CanStart)
	assert.False(t, first.CanEdit)

	last := list.Appointments[5]
	assert.Equal(t, "Jane Smith", last.PatientName)
	assert.Equal(t, "Dr. John Doe", last.ProviderName)
	assert.Equal(t, models.SpecializationCardiology, last.ProviderSpecialization)
	assert.Equal(t, "1990-05-15", last.PatientDateOfBirth)
	assert.Equal(t, 39, last.PatientAge)
	assert.Equal(t, models.GenderFemale, last.PatientGender)
	assert.True(t, last.CanStart)
	assert.True(t, last.CanEdit)

	for _, item := range list.Appointments {
		assert.Equal(t, item.Status == models.StatusScheduled || item.Status == models.StatusCheckedIn, item.CanStart)
		assert.Equal(t, item.Status != models.StatusCancelled, item.CanEdit)
	}
}

func TestList_Pagination(t *testing.T) {
	store := newMemStore()
	patient := seedPatient(store, "pat@example.com")
	provider := seedProvider(store, "doc@example.com")
	for i := 0; i < 25; i++ {
		store.addAppointment(models.Appointment{
			PatientID:  patient.ID,
			ProviderID: provider.ID,
			DateTime:   testNow.Add(time.Duration(i+1) * time.Hour),
			Status:     models.StatusScheduled,
			IsActive:   true,
		})
	}
	svc := newTestAppointmentService(store, time.Hour)

	list, err := svc.List(context.Background(), ListRequest{Page: 3, Size: 10, SortDirection: "asc"})
	require.NoError(t, err)
	assert.Len(t, list.Appointments, 5)
	assert.Equal(t, PaginationInfo{CurrentPage: 3, PageSize: 10, TotalItems: 25, TotalPages: 3, HasNext: false, HasPrevious: true}, list.Pagination)
	assert.Equal(t, int64(25), list.Summary.TotalAppointments)

	list, err = svc.List(context.Background(), ListRequest{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Len(t, list.Appointments, 10)
	assert.True(t, list.Pagination.HasNext)
	assert.False(t, list.Pagination.HasPrevious)

	list, err = svc.List(context.Background(), ListRequest{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, list.Appointments)
	assert.NotNil(t, list.Appointments)
}

func TestList_Empty(t *testing.T) {
	svc := newTestAppointmentService(newMemStore(), time.Hour)
	list, err := svc.List(context.Background(), ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, list.Pagination.TotalPages)
	assert.Equal(t, int64(0), list.Summary.TotalAppointments)
}

func TestBuildFilter(t *testing.T) {
	f, page, size, err := buildFilter(ListRequest{
		Page:          2,
		Size:          500,
		SortBy:        repository.SortByPatientName,
		SortDirection: "ASC",
		Status:        "CHECKED_IN",
		StartDate:     "2030-03-01",
		EndDate:       "2030-03-31",
		PatientName:   " Jane  SMITH ",
		ProviderName:  "Dr. John",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, page)
	assert.Equal(t, MaxPageSize, size)
	assert.Equal(t, MaxPageSize, f.Offset)
	assert.False(t, f.Descending)
	assert.Equal(t, models.StatusCheckedIn, f.Status)
	assert.Equal(t, []string{"jane", "smith"}, f.PatientName)
	assert.Equal(t, []string{"john"}, f.ProviderName)
	assert.Equal(t, time.Date(2030, time.March, 1, 0, 0, 0, 0, time.UTC), *f.From)
	assert.Equal(t, time.Date(2030, time.April, 1, 0, 0, 0, 0, time.UTC), *f.Until)

	f, page, size, err = buildFilter(ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, size)
	assert.Equal(t, repository.SortByDateTime, f.SortBy)
	assert.True(t, f.Descending)
	assert.Nil(t, f.From)

	_, _, _, err = buildFilter(ListRequest{StartDate: "2030-03-05", EndDate: "2030-03-01"})
	assert.ErrorIs(t, err, ErrValidation)

	_, _, _, err = buildFilter(ListRequest{StartDate: "03/05/2030"})
	assert.ErrorIs(t, err, ErrValidation)
}
