package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clinic-scheduling-server/internal/models"
	"clinic-scheduling-server/internal/repository"
	"clinic-scheduling-server/internal/utils"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ProviderInfo is the provider summary returned on login.
type ProviderInfo struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Specialization     string `json:"specialization"`
	VerificationStatus string `json:"verification_status"`
}

// PatientInfo is the patient summary returned on login.
type PatientInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Gender        string `json:"gender"`
	EmailVerified bool   `json:"email_verified"`
	PhoneVerified bool   `json:"phone_verified"`
	IsActive      bool   `json:"is_active"`
}

// LoginResult carries the issued token and the authenticated principal.
// Exactly one of Provider and Patient is set.
type LoginResult struct {
	AccessToken string        `json:"access_token"`
	ExpiresIn   int           `json:"expires_in"`
	TokenType   string        `json:"token_type"`
	Provider    *ProviderInfo `json:"provider,omitempty"`
	Patient     *PatientInfo  `json:"patient,omitempty"`
}

// AuthService verifies credentials and issues tokens.
type AuthService struct {
	store     repository.Store
	issuer    *utils.JWTIssuer
	logger    zerolog.Logger
	dummyHash []byte
}

// NewAuthService creates a new AuthService. bcryptCost should match the cost
// used for stored hashes so failed lookups take as long as real comparisons.
func NewAuthService(store repository.Store, issuer *utils.JWTIssuer, bcryptCost int, logger zerolog.Logger) (*AuthService, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &AuthService{
		store:     store,
		issuer:    issuer,
		logger:    logger.With().Str("component", "auth").Logger(),
		dummyHash: dummy,
	}, nil
}

// Authenticate verifies email and password for the given role. Every
// credential failure returns the same ErrInvalidCredentials error.
func (s *AuthService) Authenticate(ctx context.Context, email, password string, role models.Role) (*LoginResult, error) {
	email = strings.TrimSpace(email)

	switch role {
	case models.RoleProvider:
		return s.authenticateProvider(ctx, email, password)
	case models.RolePatient:
		return s.authenticatePatient(ctx, email, password)
	default:
		return nil, fmt.Errorf("unsupported role %q", role)
	}
}

func (s *AuthService) authenticateProvider(ctx context.Context, email, password string) (*LoginResult, error) {
	provider, err := s.store.Providers().FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.burn(password)
		s.logger.Warn().Str("email", email).Msg("provider login failed: unknown email")
		return nil, invalidCredentials()
	}
	if err != nil {
		return nil, fmt.Errorf("find provider by email: %w", err)
	}

	// Compare first so every path pays the bcrypt cost.
	passwordOK := provider.CheckPassword(password)
	if !provider.CanAuthenticate() || !passwordOK {
		s.logger.Warn().Str("provider_id", provider.ID).Msg("provider login failed")
		return nil, invalidCredentials()
	}

	token, err := s.issuer.IssueProviderToken(provider)
	if err != nil {
		return nil, fmt.Errorf("issue provider token: %w", err)
	}
	s.logger.Info().Str("provider_id", provider.ID).Msg("provider logged in")

	return &LoginResult{
		AccessToken: token.Token,
		ExpiresIn:   token.ExpiresIn,
		TokenType:   token.TokenType,
		Provider: &ProviderInfo{
			ID:                 provider.ID,
			Email:              provider.Email,
			FirstName:          provider.FirstName,
			LastName:           provider.LastName,
			Specialization:     provider.Specialization.Label(),
			VerificationStatus: strings.ToLower(string(provider.VerificationStatus)),
		},
	}, nil
}

func (s *AuthService) authenticatePatient(ctx context.Context, email, password string) (*LoginResult, error) {
	patient, err := s.store.Patients().FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.burn(password)
		s.logger.Warn().Str("email", email).Msg("patient login failed: unknown email")
		return nil, invalidCredentials()
	}
	if err != nil {
		return nil, fmt.Errorf("find patient by email: %w", err)
	}

	passwordOK := patient.CheckPassword(password)
	if !patient.IsActive || !passwordOK {
		s.logger.Warn().Str("patient_id", patient.ID).Msg("patient login failed")
		return nil, invalidCredentials()
	}

	token, err := s.issuer.IssuePatientToken(patient)
	if err != nil {
		return nil, fmt.Errorf("issue patient token: %w", err)
	}
	s.logger.Info().Str("patient_id", patient.ID).Msg("patient logged in")

	return &LoginResult{
		AccessToken: token.Token,
		ExpiresIn:   token.ExpiresIn,
		TokenType:   token.TokenType,
		Patient: &PatientInfo{
			ID:            patient.ID,
			Email:         patient.Email,
			FirstName:     patient.FirstName,
			LastName:      patient.LastName,
			Gender:        strings.ToLower(string(patient.Gender)),
			EmailVerified: patient.EmailVerified,
			PhoneVerified: patient.PhoneVerified,
			IsActive:      patient.IsActive,
		},
	}, nil
}

// burn runs a bcrypt comparison against a throwaway hash.
func (s *AuthService) burn(password string) {
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
}
