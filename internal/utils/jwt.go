package utils

import (
	"errors"
	"fmt"
	"time"

	"clinic-scheduling-server/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// PatientTokenTTL is the fixed lifetime of patient access tokens.
const PatientTokenTTL = 30 * time.Minute

// Claims represents the JWT claims.
type Claims struct {
	PrincipalID        string                    `json:"principal_id"`
	Email              string                    `json:"email"`
	Role               models.Role               `json:"role"`
	Specialization     models.Specialization     `json:"specialization,omitempty"`
	VerificationStatus models.VerificationStatus `json:"verification_status,omitempty"`
	jwt.RegisteredClaims
}

// IssuedToken is a signed token together with its lifetime.
type IssuedToken struct {
	Token     string
	ExpiresIn int // seconds
	TokenType string
}

// JWTIssuer signs and validates access tokens. It is immutable after
// construction and safe for concurrent use.
type JWTIssuer struct {
	secret      []byte
	providerTTL time.Duration
	patientTTL  time.Duration
	now         func() time.Time
}

// NewJWTIssuer creates a JWTIssuer. providerTTL comes from configuration;
// patient tokens always use PatientTokenTTL.
func NewJWTIssuer(secret string, providerTTL time.Duration) *JWTIssuer {
	return &JWTIssuer{
		secret:      []byte(secret),
		providerTTL: providerTTL,
		patientTTL:  PatientTokenTTL,
		now:         time.Now,
	}
}

// IssueProviderToken signs a token carrying the provider's specialization and verification status.
func (j *JWTIssuer) IssueProviderToken(provider *models.Provider) (*IssuedToken, error) {
	claims := &Claims{
		PrincipalID:        provider.ID,
		Email:              provider.Email,
		Role:               models.RoleProvider,
		Specialization:     provider.Specialization,
		VerificationStatus: provider.VerificationStatus,
	}
	return j.sign(claims, provider.Email, j.providerTTL)
}

// IssuePatientToken signs a token for a patient.
func (j *JWTIssuer) IssuePatientToken(patient *models.Patient) (*IssuedToken, error) {
	claims := &Claims{
		PrincipalID: patient.ID,
		Email:       patient.Email,
		Role:        models.RolePatient,
	}
	return j.sign(claims, patient.Email, j.patientTTL)
}

func (j *JWTIssuer) sign(claims *Claims, subject string, ttl time.Duration) (*IssuedToken, error) {
	now := j.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Subject:   subject,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	return &IssuedToken{
		Token:     tokenString,
		ExpiresIn: int(ttl / time.Second),
		TokenType: "Bearer",
	}, nil
}

// ValidateToken validates a JWT token.
func (j *JWTIssuer) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithTimeFunc(j.now))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.Role != models.RolePatient && claims.Role != models.RoleProvider {
		return nil, fmt.Errorf("unknown role %q", claims.Role)
	}

	return claims, nil
}
