package utils

import (
	"testing"
	"time"

	"clinic-scheduling-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueProviderToken(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", time.Hour)
	provider := &models.Provider{
		BaseModel:          models.BaseModel{ID: "prov-1"},
		Email:              "doc@example.com",
		Specialization:     models.SpecializationCardiology,
		VerificationStatus: models.VerificationVerified,
	}

	issued, err := issuer.IssueProviderToken(provider)
	require.NoError(t, err)
	assert.Equal(t, 3600, issued.ExpiresIn)
	assert.Equal(t, "Bearer", issued.TokenType)

	claims, err := issuer.ValidateToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "prov-1", claims.PrincipalID)
	assert.Equal(t, "doc@example.com", claims.Email)
	assert.Equal(t, "doc@example.com", claims.Subject)
	assert.Equal(t, models.RoleProvider, claims.Role)
	assert.Equal(t, models.SpecializationCardiology, claims.Specialization)
	assert.Equal(t, models.VerificationVerified, claims.VerificationStatus)
}

func TestIssuePatientToken(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", time.Hour)
	patient := &models.Patient{BaseModel: models.BaseModel{ID: "pat-1"}, Email: "jane@example.com"}

	issued, err := issuer.IssuePatientToken(patient)
	require.NoError(t, err)
	assert.Equal(t, 1800, issued.ExpiresIn)

	claims, err := issuer.ValidateToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RolePatient, claims.Role)
	assert.Empty(t, claims.Specialization)
	assert.Equal(t, time.Duration(1800)*time.Second, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issued, err := NewJWTIssuer("one", time.Hour).IssuePatientToken(&models.Patient{Email: "a@b.co"})
	require.NoError(t, err)

	_, err = NewJWTIssuer("two", time.Hour).ValidateToken(issued.Token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	issued, err := issuer.IssueProviderToken(&models.Provider{Email: "doc@example.com"})
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.ValidateToken(issued.Token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := NewJWTIssuer("secret", time.Hour).ValidateToken("not-a-token")
	assert.Error(t, err)
}
