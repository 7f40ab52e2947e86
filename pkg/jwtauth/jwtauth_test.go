package jwtauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IssueAndVerify(t *testing.T) {
	m, err := NewManager("secret", 5*time.Hour)
	require.NoError(t, err)

	token, err := m.Issue(17)
	require.NoError(t, err)

	userID, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(17), userID)
}

func TestManager_Verify_Rejects(t *testing.T) {
	m, err := NewManager("secret", time.Hour)
	require.NoError(t, err)

	t.Run("foreign signature", func(t *testing.T) {
		other, err := NewManager("other-secret", time.Hour)
		require.NoError(t, err)
		token, err := other.Issue(1)
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		issued := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
		m.now = func() time.Time { return issued }
		token, err := m.Issue(1)
		require.NoError(t, err)

		m.now = func() time.Time { return issued.Add(2 * time.Hour) }
		_, err = m.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewManager_EmptySecret(t *testing.T) {
	_, err := NewManager("", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
}
