package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureAdmin_RejectsMalformedEmail(t *testing.T) {
	svc := NewAuthService(nil, nil, nil)

	created, err := svc.EnsureAdmin(context.Background(), RegisterInput{Email: "root@local"})

	assert.False(t, created)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "email", verrs[0].Field)
	assert.Equal(t, "Valid email is required", verrs[0].Message)
}
