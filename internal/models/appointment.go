package models

import (
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates such as date of birth.
const DateLayout = "2006-01-02"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "SCHEDULED"
	StatusCheckedIn AppointmentStatus = "CHECKED_IN"
	StatusInExam    AppointmentStatus = "IN_EXAM"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

// AllStatuses lists every appointment status in workflow order.
var AllStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusCheckedIn,
	StatusInExam,
	StatusCompleted,
	StatusCancelled,
}

var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled: {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn: {StatusInExam, StatusCancelled},
	StatusInExam:    {StatusCompleted},
	StatusCompleted: nil,
	StatusCancelled: nil,
}

// Valid reports whether s is a known status.
func (s AppointmentStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// Terminal reports whether no further transitions are possible.
func (s AppointmentStatus) Terminal() bool {
	return s.Valid() && len(statusTransitions[s]) == 0
}

// CanTransitionTo reports whether the workflow allows moving from s to next.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CanStart is true while the patient has not yet entered the exam.
func (s AppointmentStatus) CanStart() bool {
	return s == StatusScheduled || s == StatusCheckedIn
}

// CanEdit is true for every status except CANCELLED.
func (s AppointmentStatus) CanEdit() bool {
	return s != StatusCancelled
}

// Lower returns the lowercase wire form, e.g. "scheduled".
func (s AppointmentStatus) Lower() string {
	return strings.ToLower(string(s))
}

// AppointmentType enum
type AppointmentType string

const (
	AppointmentTypeNew            AppointmentType = "NEW"
	AppointmentTypeFollowUp       AppointmentType = "FOLLOW_UP"
	AppointmentTypeConsultation   AppointmentType = "CONSULTATION"
	AppointmentTypeRoutineCheckup AppointmentType = "ROUTINE_CHECKUP"
	AppointmentTypeUrgent         AppointmentType = "URGENT"
)

// AppointmentMode enum
type AppointmentMode string

const (
	ModeInPerson   AppointmentMode = "IN_PERSON"
	ModeTelehealth AppointmentMode = "TELEHEALTH"
)

// Appointment represents a scheduled visit between a patient and a provider
type Appointment struct {
	BaseModel
	PatientID       string            `gorm:"size:36;not null;index" json:"patientId"`
	ProviderID      string            `gorm:"size:36;not null;index:idx_appointments_provider_time,priority:1" json:"providerId"`
	AppointmentType AppointmentType   `gorm:"size:20;not null" json:"appointmentType"`
	Mode            AppointmentMode   `gorm:"size:20;not null" json:"mode"`
	DateTime        time.Time         `gorm:"not null;index:idx_appointments_provider_time,priority:2" json:"dateTime"`
	ReasonForVisit  string            `gorm:"size:250;not null" json:"reasonForVisit"`
	EstimatedAmount float64           `gorm:"type:decimal(10,2);not null" json:"estimatedAmount"`
	ClinicAddress   Address           `gorm:"embedded;embeddedPrefix:clinic_" json:"clinicAddress"`
	Status          AppointmentStatus `gorm:"size:20;not null;index" json:"status"`
	IsActive        bool              `gorm:"not null;index" json:"isActive"`

	// Relations
	Patient  Patient  `gorm:"foreignKey:PatientID" json:"-"`
	Provider Provider `gorm:"foreignKey:ProviderID" json:"-"`
}
