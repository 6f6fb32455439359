package jwt

import (
	"testing"
	"time"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	ts := NewTokenService("secret", time.Hour)
	id := uuid.New()

	token, err := ts.GenerateToken(&domain.Operator{ID: id, Name: "Ventanilla 1", Role: domain.RoleInspector})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.True(t, token.ExpiresAt.After(time.Now()))

	claims, err := ts.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, id, claims.OperatorID)
	assert.Equal(t, domain.RoleInspector, claims.Role)
	assert.Equal(t, "Ventanilla 1", claims.Operator().Name)
}

func TestTokenService_GeneratesOperatorID(t *testing.T) {
	ts := NewTokenService("secret", time.Hour)

	op := &domain.Operator{Name: "Caja", Role: domain.RoleOperator}
	_, err := ts.GenerateToken(op)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, op.ID)
}

func TestTokenService_Rejections(t *testing.T) {
	ts := NewTokenService("secret", time.Hour)

	_, err := ts.GenerateToken(&domain.Operator{Name: "X", Role: "guard"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	token, err := ts.GenerateToken(&domain.Operator{Name: "Caja", Role: domain.RoleOperator})
	require.NoError(t, err)

	_, err = NewTokenService("other", time.Hour).ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = ts.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	expired, err := NewTokenService("secret", -time.Minute).GenerateToken(&domain.Operator{Name: "Caja", Role: domain.RoleOperator})
	require.NoError(t, err)
	_, err = ts.ValidateToken(expired.AccessToken)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestOperator_HasRole(t *testing.T) {
	admin := &domain.Operator{Role: domain.RoleAdmin}
	inspector := &domain.Operator{Role: domain.RoleInspector}

	assert.True(t, admin.HasRole(domain.RoleInspector))
	assert.True(t, inspector.HasRole(domain.RoleInspector))
	assert.False(t, inspector.HasRole(domain.RoleOperator))
	assert.False(t, inspector.HasRole())
}
