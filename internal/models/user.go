package models

import (
	"time"

	"gorm.io/datatypes"
)

// Role enum
type Role string

const (
	RolePatient  Role = "PATIENT"
	RoleProvider Role = "PROVIDER"
)

// Gender enum
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// VerificationStatus gates provider login. Only VERIFIED providers may authenticate.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// Specialization enum
type Specialization string

const (
	SpecializationCardiology       Specialization = "CARDIOLOGY"
	SpecializationDermatology      Specialization = "DERMATOLOGY"
	SpecializationFamilyMedicine   Specialization = "FAMILY_MEDICINE"
	SpecializationInternalMedicine Specialization = "INTERNAL_MEDICINE"
	SpecializationNeurology        Specialization = "NEUROLOGY"
	SpecializationOrthopedics      Specialization = "ORTHOPEDICS"
	SpecializationPediatrics       Specialization = "PEDIATRICS"
	SpecializationPsychiatry       Specialization = "PSYCHIATRY"
	SpecializationGeneralPractice  Specialization = "GENERAL_PRACTICE"
)

// Label renders CARDIOLOGY as "Cardiology".
func (s Specialization) Label() string {
	if s == "" {
		return ""
	}
	b := []byte(string(s))
	for i := 1; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
		if b[i] == '_' {
			b[i] = ' '
		}
	}
	return string(b)
}

// Address is a postal address embedded into patient, provider and appointment rows.
type Address struct {
	Street string `gorm:"size:200" json:"street"`
	City   string `gorm:"size:100" json:"city"`
	State  string `gorm:"size:50" json:"state"`
	Zip    string `gorm:"size:10" json:"zip"`
}

// EmergencyContact is optional; an empty Name means none was supplied.
type EmergencyContact struct {
	Name         string `gorm:"size:100" json:"name"`
	Phone        string `gorm:"size:20" json:"phone"`
	Relationship string `gorm:"size:50" json:"relationship"`
}

// InsuranceInfo is optional.
type InsuranceInfo struct {
	Provider     string `gorm:"size:100" json:"provider"`
	PolicyNumber string `gorm:"size:100" json:"policyNumber"`
}

// Patient represents a registered patient
type Patient struct {
	BaseModel
	Credentials
	FirstName        string                      `gorm:"size:50;not null" json:"firstName"`
	LastName         string                      `gorm:"size:50;not null" json:"lastName"`
	Email            string                      `gorm:"uniqueIndex:idx_patients_email;size:255;not null" json:"email"`
	PhoneNumber      string                      `gorm:"uniqueIndex:idx_patients_phone;size:20;not null" json:"phoneNumber"`
	DateOfBirth      time.Time                   `gorm:"type:date;not null" json:"dateOfBirth"`
	Gender           Gender                      `gorm:"size:20;not null" json:"gender"`
	Address          Address                     `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	EmergencyContact EmergencyContact            `gorm:"embedded;embeddedPrefix:emergency_" json:"emergencyContact"`
	MedicalHistory   datatypes.JSONSlice[string] `json:"medicalHistory"`
	InsuranceInfo    InsuranceInfo               `gorm:"embedded;embeddedPrefix:insurance_" json:"insuranceInfo"`
	EmailVerified    bool                        `gorm:"not null;default:false" json:"emailVerified"`
	PhoneVerified    bool                        `gorm:"not null;default:false" json:"phoneVerified"`
	IsActive         bool                        `gorm:"not null" json:"isActive"`

	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
}

// FullName joins first and last name.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Provider represents a clinician who can be booked
type Provider struct {
	BaseModel
	Credentials
	FirstName          string             `gorm:"size:50;not null" json:"firstName"`
	LastName           string             `gorm:"size:50;not null" json:"lastName"`
	Email              string             `gorm:"uniqueIndex:idx_providers_email;size:255;not null" json:"email"`
	PhoneNumber        string             `gorm:"uniqueIndex:idx_providers_phone;size:20;not null" json:"phoneNumber"`
	Specialization     Specialization     `gorm:"size:50;not null" json:"specialization"`
	LicenseNumber      string             `gorm:"uniqueIndex:idx_providers_license;size:50;not null" json:"licenseNumber"`
	YearsOfExperience  int                `gorm:"not null" json:"yearsOfExperience"`
	ClinicAddress      Address            `gorm:"embedded;embeddedPrefix:clinic_" json:"clinicAddress"`
	VerificationStatus VerificationStatus `gorm:"size:20;not null;default:'PENDING'" json:"verificationStatus"`
	IsActive           bool               `gorm:"not null" json:"isActive"`

	Appointments []Appointment `gorm:"foreignKey:ProviderID" json:"-"`
}

// DisplayName prefixes the provider's name with "Dr.".
func (p *Provider) DisplayName() string {
	return "Dr. " + p.FirstName + " " + p.LastName
}

// CanAuthenticate reports whether the provider may log in.
func (p *Provider) CanAuthenticate() bool {
	return p.IsActive && p.VerificationStatus == VerificationVerified
}

// PatientSanitized represents the patient data that is safe to send in API responses.
type PatientSanitized struct {
	ID               string            `json:"id"`
	FirstName        string            `json:"firstName"`
	LastName         string            `json:"lastName"`
	Email            string            `json:"email"`
	PhoneNumber      string            `json:"phoneNumber"`
	DateOfBirth      string            `json:"dateOfBirth"`
	Gender           Gender            `json:"gender"`
	Address          Address           `json:"address"`
	EmergencyContact *EmergencyContact `json:"emergencyContact,omitempty"`
	MedicalHistory   []string          `json:"medicalHistory,omitempty"`
	InsuranceInfo    *InsuranceInfo    `json:"insuranceInfo,omitempty"`
	EmailVerified    bool              `json:"emailVerified"`
	PhoneVerified    bool              `json:"phoneVerified"`
	IsActive         bool              `json:"isActive"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// Sanitize creates a PatientSanitized struct, excluding the password hash.
func (p *Patient) Sanitize() PatientSanitized {
	out := PatientSanitized{
		ID:             p.ID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		PhoneNumber:    p.PhoneNumber,
		DateOfBirth:    p.DateOfBirth.Format(DateLayout),
		Gender:         p.Gender,
		Address:        p.Address,
		MedicalHistory: p.MedicalHistory,
		EmailVerified:  p.EmailVerified,
		PhoneVerified:  p.PhoneVerified,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.EmergencyContact.Name != "" {
		ec := p.EmergencyContact
		out.EmergencyContact = &ec
	}
	if p.InsuranceInfo.Provider != "" || p.InsuranceInfo.PolicyNumber != "" {
		ins := p.InsuranceInfo
		out.InsuranceInfo = &ins
	}
	return out
}

// ProviderSanitized represents the provider data that is safe to send in API responses.
type ProviderSanitized struct {
	ID                 string             `json:"id"`
	FirstName          string             `json:"firstName"`
	LastName           string             `json:"lastName"`
	Email              string             `json:"email"`
	PhoneNumber        string             `json:"phoneNumber"`
	Specialization     Specialization     `json:"specialization"`
	LicenseNumber      string             `json:"licenseNumber"`
	YearsOfExperience  int                `json:"yearsOfExperience"`
	ClinicAddress      Address            `json:"clinicAddress"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	IsActive           bool               `json:"isActive"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// Sanitize creates a ProviderSanitized struct, excluding the password hash.
func (p *Provider) Sanitize() ProviderSanitized {
	return ProviderSanitized{
		ID:                 p.ID,
		FirstName:          p.FirstName,
		LastName:           p.LastName,
		Email:              p.Email,
		PhoneNumber:        p.PhoneNumber,
		Specialization:     p.Specialization,
		LicenseNumber:      p.LicenseNumber,
		YearsOfExperience:  p.YearsOfExperience,
		ClinicAddress:      p.ClinicAddress,
		VerificationStatus: p.VerificationStatus,
		IsActive:           p.IsActive,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
