package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		reason   string
	}{
		{"valid", "ada", "validPass1!", ""},
		{"valid with every special", "a_b-c.d", "Aa1!@#$%^&*()-_+=[]:;,.", ""},
		{"blank username", "", "validPass1!", ReasonBlank},
		{"blank password", "ada", "", ReasonBlank},
		{"too short", "ada", "short1!", ReasonPasswordLength},
		{"too long", "ada", "a1!" + strings.Repeat("x", 48), ReasonPasswordLength},
		{"exactly fifty", "ada", "a1!" + strings.Repeat("x", 47), ""},
		{"no digit", "ada", "validPass!", ReasonPasswordWeak},
		{"no letter", "ada", "12345678!", ReasonPasswordWeak},
		{"no special", "ada", "validPass1", ReasonPasswordWeak},
		{"space in password", "ada", "valid Pass1!", ReasonPasswordInvalid},
		{"unicode in password", "ada", "välidPass1!", ReasonPasswordInvalid},
		{"username too long", strings.Repeat("u", 51), "validPass1!", ReasonUsernameInvalid},
		{"username bad char", "ada lovelace", "validPass1!", ReasonUsernameInvalid},
		{"username slash", "ada/", "validPass1!", ReasonUsernameInvalid},
		// Rule order: the weak password is reported before the invalid username.
		{"first failure wins", "bad name", "password", ReasonPasswordWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistration(tt.username, tt.password)
			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Equal(t, tt.reason, Reason(err))
		})
	}
}

func TestReasonsAreDistinct(t *testing.T) {
	reasons := []string{
		ReasonBlank, ReasonPasswordLength, ReasonPasswordWeak,
		ReasonPasswordInvalid, ReasonUsernameInvalid, ReasonUsernameTaken,
	}
	seen := map[string]bool{}
	for _, r := range reasons {
		assert.False(t, seen[r], r)
		seen[r] = true
	}
}

func TestUserPassword(t *testing.T) {
	u := NewUser("ada", "validPass1!")
	assert.NoError(t, u.HashPassword())
	assert.NotEqual(t, "validPass1!", u.Password)
	assert.NoError(t, u.CheckPassword("validPass1!"))
	assert.Error(t, u.CheckPassword("wrongPass1!"))
	assert.NotNil(t, u.Lists)
}
