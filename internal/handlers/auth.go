package handlers

import (
	"time"

	"clinic-scheduling-server/internal/models"
	"clinic-scheduling-server/internal/services"
	"clinic-scheduling-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler handles registration and login for patients and providers.
type AuthHandler struct {
	Auth         *services.AuthService
	Registration *services.RegistrationService
	Logger       zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *services.AuthService, registration *services.RegistrationService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Registration: registration, Logger: logger}
}

// AddressRequest is a postal address in a request body.
type AddressRequest struct {
	Street string `json:"street" binding:"required,max=200"`
	City   string `json:"city" binding:"required,max=100"`
	State  string `json:"state" binding:"required,max=50"`
	Zip    string `json:"zip" binding:"required,us_zip"`
}

func (a AddressRequest) toModel() models.Address {
	return models.Address{Street: a.Street, City: a.City, State: a.State, Zip: a.Zip}
}

// EmergencyContactRequest is the optional emergency contact of a patient.
type EmergencyContactRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Phone        string `json:"phone" binding:"required,phone_e164"`
	Relationship string `json:"relationship" binding:"required,max=50"`
}

// InsuranceInfoRequest is the optional insurance information of a patient.
type InsuranceInfoRequest struct {
	Provider     string `json:"provider" binding:"max=100"`
	PolicyNumber string `json:"policyNumber" binding:"max=100"`
}

// PatientRegisterRequest represents the request body for patient registration.
type PatientRegisterRequest struct {
	FirstName        string                   `json:"firstName" binding:"required,min=2,max=50"`
	LastName         string                   `json:"lastName" binding:"required,min=2,max=50"`
	Email            string                   `json:"email" binding:"required,email"`
	PhoneNumber      string                   `json:"phoneNumber" binding:"required,phone_e164"`
	Password         string                   `json:"password" binding:"required,password_strength"`
	ConfirmPassword  string                   `json:"confirmPassword" binding:"required"`
	DateOfBirth      string                   `json:"dateOfBirth" binding:"required,datetime=2006-01-02"`
	Gender           string                   `json:"gender" binding:"required,oneof=MALE FEMALE OTHER"`
	Address          AddressRequest           `json:"address"`
	EmergencyContact *EmergencyContactRequest `json:"emergencyContact" binding:"omitempty"`
	MedicalHistory   []string                 `json:"medicalHistory" binding:"omitempty,dive,max=255"`
	InsuranceInfo    *InsuranceInfoRequest    `json:"insuranceInfo" binding:"omitempty"`
}

// ProviderRegisterRequest represents the request body for provider registration.
type ProviderRegisterRequest struct {
	FirstName         string         `json:"firstName" binding:"required,min=2,max=50"`
	LastName          string         `json:"lastName" binding:"required,min=2,max=50"`
	Email             string         `json:"email" binding:"required,email"`
	PhoneNumber       string         `json:"phoneNumber" binding:"required,phone_e164"`
	Password          string         `json:"password" binding:"required,password_strength"`
	ConfirmPassword   string         `json:"confirmPassword" binding:"required"`
	Specialization    string         `json:"specialization" binding:"required,oneof=CARDIOLOGY DERMATOLOGY FAMILY_MEDICINE INTERNAL_MEDICINE NEUROLOGY ORTHOPEDICS PEDIATRICS PSYCHIATRY GENERAL_PRACTICE"`
	LicenseNumber     string         `json:"licenseNumber" binding:"required,alphanum"`
	YearsOfExperience int            `json:"yearsOfExperience" binding:"min=0,max=50"`
	ClinicAddress     AddressRequest `json:"clinicAddress"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterPatient handles patient registration.
func (h *AuthHandler) RegisterPatient(c *gin.Context) {
	var req PatientRegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return // Error response handled by BindAndValidate
	}

	dob, err := time.ParseInLocation(models.DateLayout, req.DateOfBirth, time.UTC)
	if err != nil {
		utils.BadRequest(c, "dateOfBirth must use the format YYYY-MM-DD")
		return
	}

	input := services.PatientRegistration{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		DateOfBirth:     dob,
		Gender:          models.Gender(req.Gender),
		Address:         req.Address.toModel(),
		MedicalHistory:  req.MedicalHistory,
	}
	if req.EmergencyContact != nil {
		input.EmergencyContact = &models.EmergencyContact{
			Name:         req.EmergencyContact.Name,
			Phone:        req.EmergencyContact.Phone,
			Relationship: req.EmergencyContact.Relationship,
		}
	}
	if req.InsuranceInfo != nil {
		input.InsuranceInfo = &models.InsuranceInfo{
			Provider:     req.InsuranceInfo.Provider,
			PolicyNumber: req.InsuranceInfo.PolicyNumber,
		}
	}

	out, err := h.Registration.RegisterPatient(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	utils.Created(c, "Patient registered successfully", out)
}

// RegisterProvider handles provider registration.
func (h *AuthHandler) RegisterProvider(c *gin.Context) {
	var req ProviderRegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	out, err := h.Registration.RegisterProvider(c.Request.Context(), services.ProviderRegistration{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		PhoneNumber:       req.PhoneNumber,
		Password:          req.Password,
		ConfirmPassword:   req.ConfirmPassword,
		Specialization:    models.Specialization(req.Specialization),
		LicenseNumber:     req.LicenseNumber,
		YearsOfExperience: req.YearsOfExperience,
		ClinicAddress:     req.ClinicAddress.toModel(),
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	utils.Created(c, "Provider registered successfully", out)
}

// LoginPatient handles patient login.
func (h *AuthHandler) LoginPatient(c *gin.Context) {
	h.login(c, models.RolePatient)
}

// LoginProvider handles provider login.
func (h *AuthHandler) LoginProvider(c *gin.Context) {
	h.login(c, models.RoleProvider)
}

func (h *AuthHandler) login(c *gin.Context, role models.Role) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	result, err := h.Auth.Authenticate(c.Request.Context(), req.Email, req.Password, role)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	utils.Success(c, "Login successful", result)
}
