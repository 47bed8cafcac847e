package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tvqhuy/Classboard/config"
)

func newTokenConfig(expiryMinutes int) *config.Config {
	return &config.Config{JWT: config.JWT{Secret: "test-secret", ExpiryMinutes: expiryMinutes}}
}

func TestTokenRoundTrip(t *testing.T) {
	userRepo := newFakeUserRepo()
	teacher := newTeacher()
	require.NoError(t, userRepo.Create(teacher))

	tokens := NewTokenService(newTokenConfig(30), userRepo)

	token, err := tokens.Generate(teacher)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := tokens.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, teacher.ID, got.ID)
	assert.Equal(t, teacher.Role, got.Role)
}

func TestTokenFailuresAreIndistinguishable(t *testing.T) {
	userRepo := newFakeUserRepo()
	teacher := newTeacher()
	require.NoError(t, userRepo.Create(teacher))

	tokens := NewTokenService(newTokenConfig(30), userRepo)
	valid, err := tokens.Generate(teacher)
	require.NoError(t, err)

	otherSecret := NewTokenService(&config.Config{JWT: config.JWT{Secret: "other-secret", ExpiryMinutes: 30}}, userRepo)
	badSignature, err := otherSecret.Generate(teacher)
	require.NoError(t, err)

	expired, err := NewTokenService(newTokenConfig(-1), userRepo).Generate(teacher)
	require.NoError(t, err)

	unknownUser, err := tokens.Generate(newStudent()) // never stored in the repo
	require.NoError(t, err)

	cases := map[string]string{
		"malformed":     "not-a-token",
		"tampered":      valid + "x",
		"bad signature": badSignature,
		"expired":       expired,
		"unknown user":  unknownUser,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.Authenticate(token)
			require.Error(t, err)
			// every failure collapses to a single message
			assert.EqualError(t, err, "invalid authentication credentials")
		})
	}
}
