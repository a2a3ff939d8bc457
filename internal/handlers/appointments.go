package handlers

import (
	"net/http"
	"time"

	"clinic-scheduling-server/internal/models"
	"clinic-scheduling-server/internal/services"
	"clinic-scheduling-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// localDateTimeLayout accepts date-times without an offset; they are read as UTC.
const localDateTimeLayout = "2006-01-02T15:04:05"

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	Appointments *services.AppointmentService
	Logger       zerolog.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointments *services.AppointmentService, logger zerolog.Logger) *AppointmentHandler {
	return &AppointmentHandler{Appointments: appointments, Logger: logger}
}

// BookAppointmentRequest represents the request body for booking an appointment.
type BookAppointmentRequest struct {
	PatientID       string         `json:"patientId" binding:"required,uuid"`
	ProviderID      string         `json:"providerId" binding:"required,uuid"`
	AppointmentType string         `json:"appointmentType" binding:"required,oneof=NEW FOLLOW_UP CONSULTATION ROUTINE_CHECKUP URGENT"`
	Mode            string         `json:"mode" binding:"required,oneof=IN_PERSON TELEHEALTH"`
	DateTime        string         `json:"dateTime" binding:"required"`
	ReasonForVisit  string         `json:"reasonForVisit" binding:"required,min=5,max=250"`
	EstimatedAmount float64        `json:"estimatedAmount" binding:"required,gte=0.01,lte=10000"`
	ClinicAddress   AddressRequest `json:"clinicAddress"`
}

// UpdateStatusRequest represents the request body for a status transition.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=SCHEDULED CHECKED_IN IN_EXAM COMPLETED CANCELLED"`
}

// AppointmentResponse is the detail view of one appointment.
type AppointmentResponse struct {
	models.Appointment
	PatientName            string                `json:"patientName"`
	ProviderName           string                `json:"providerName"`
	ProviderSpecialization models.Specialization `json:"providerSpecialization"`
	CanStart               bool                  `json:"canStart"`
	CanEdit                bool                  `json:"canEdit"`
}

func newAppointmentResponse(a *models.Appointment) AppointmentResponse {
	return AppointmentResponse{
		Appointment:            *a,
		PatientName:            a.Patient.FullName(),
		ProviderName:           a.Provider.DisplayName(),
		ProviderSpecialization: a.Provider.Specialization,
		CanStart:               a.Status.CanStart(),
		CanEdit:                a.Status.CanEdit(),
	}
}

// BookAppointment handles booking a new appointment.
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	var req BookAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	at, err := parseDateTime(req.DateTime)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, utils.ErrorBody{
			Code:    utils.CodeValidationError,
			Message: "dateTime must be an ISO-8601 date-time",
			Field:   "dateTime",
		})
		return
	}

	result, err := h.Appointments.Book(c.Request.Context(), actor, services.BookingRequest{
		PatientID:       req.PatientID,
		ProviderID:      req.ProviderID,
		AppointmentType: models.AppointmentType(req.AppointmentType),
		Mode:            models.AppointmentMode(req.Mode),
		DateTime:        at,
		ReasonForVisit:  req.ReasonForVisit,
		EstimatedAmount: req.EstimatedAmount,
		ClinicAddress:   req.ClinicAddress.toModel(),
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	utils.Created(c, "Appointment booked successfully", result)
}

// ListAppointments handles the provider appointment list.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	var req services.ListRequest
	if !utils.BindQuery(c, &req) {
		return
	}

	list, err := h.Appointments.List(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	utils.Success(c, "Appointments retrieved successfully", list)
}

// GetAppointment returns one appointment to its patient or provider.
func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	appointment, err := h.Appointments.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	utils.Success(c, "Appointment retrieved successfully", newAppointmentResponse(appointment))
}

// UpdateAppointmentStatus advances an appointment's status.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	appointment, err := h.Appointments.UpdateStatus(c.Request.Context(), actor, c.Param("id"), models.AppointmentStatus(req.Status))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	utils.Success(c, "Appointment status updated successfully", newAppointmentResponse(appointment))
}

func parseDateTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.ParseInLocation(localDateTimeLayout, raw, time.UTC)
}
