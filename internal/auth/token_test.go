package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaint-service/internal/auth"
	"complaint-service/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:    42,
		Name:  "Asha Rao",
		Email: "asha@example.com",
		Role:  model.UserRoleUser,
	}
}

func TestIssueAndParse_RoundTrip(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)
	parser := auth.NewParser("test-secret")

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := parser.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, model.UserRoleUser, claims.Role)
	assert.NotEmpty(t, claims.ID, "token must carry a jti for revocation")
	assert.Equal(t, "complaint-service", claims.Issuer)
}

func TestParse_RejectsWrongSecret(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)
	parser := auth.NewParser("another-secret")

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = parser.Parse(token)
	assert.Error(t, err)
}

func TestParse_RejectsExpiredToken(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", -time.Minute)
	parser := auth.NewParser("test-secret")

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = parser.Parse(token)
	assert.Error(t, err)
}

func TestParse_RejectsGarbage(t *testing.T) {
	parser := auth.NewParser("test-secret")

	_, err := parser.Parse("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, auth.CheckPassword(hash, "secret1"))
	assert.False(t, auth.CheckPassword(hash, "secret2"))
	assert.False(t, auth.CheckPassword("", "secret1"))
}

func TestUniqueTokenIDs(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)
	parser := auth.NewParser("test-secret")

	first, err := issuer.Issue(testUser())
	require.NoError(t, err)
	second, err := issuer.Issue(testUser())
	require.NoError(t, err)

	a, err := parser.Parse(first)
	require.NoError(t, err)
	b, err := parser.Parse(second)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}
