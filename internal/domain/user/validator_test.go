package user

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsValidator_ValidateLogin(t *testing.T) {
	v := NewCredentialsValidator()

	tests := []struct {
		name    string
		login   string
		wantErr string
	}{
		{name: "short name", login: "ann.lee"},
		{name: "email", login: "ann.lee@uni.example"},
		{name: "registration code", login: "CS-2023-0042"},
		{name: "unicode letters", login: "анна_ли"},
		{name: "too short", login: "ab", wantErr: "login must be 3 to 64 characters"},
		{name: "too long", login: strings.Repeat("a", MaxLoginLen+1), wantErr: "login must be 3 to 64 characters"},
		{name: "space", login: "ann lee", wantErr: `unexpected character ' '`},
		{name: "two at signs", login: "a@b@c", wantErr: "more than one '@'"},
		{name: "dangling at", login: "ann@", wantErr: "incomplete email address"},
		{name: "leading at", login: "@ann", wantErr: "incomplete email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateLogin(tt.login)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestCredentialsValidator_ValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		opts     []ValidatorOption
		password string
		wantErr  string
	}{
		{name: "letters and digits", password: "studentcard1"},
		{name: "too short", password: "abc1", wantErr: "password must be 8 to 72 characters"},
		{name: "too long", password: strings.Repeat("a1", 40), wantErr: "password must be 8 to 72 characters"},
		{name: "no digit", password: "onlyletters", wantErr: "must contain a digit"},
		{name: "no letter", password: "1234567890", wantErr: "must contain a letter"},
		{name: "strong ok", opts: []ValidatorOption{WithStrongPasswords()}, password: "P@ssw0rd123!"},
		{name: "strong without upper", opts: []ValidatorOption{WithStrongPasswords()}, password: "p@ssw0rd123!", wantErr: "must contain an uppercase letter"},
		{name: "strong without special", opts: []ValidatorOption{WithStrongPasswords()}, password: "Passw0rd123", wantErr: "must contain a special character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewCredentialsValidator(tt.opts...).ValidatePassword(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestCredentialsValidator_ValidateRegister(t *testing.T) {
	v := NewCredentialsValidator()

	assert.NoError(t, v.ValidateRegister("ann.lee", "studentcard1"))

	err := v.ValidateRegister("a", "studentcard1")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "login: "))

	err = v.ValidateRegister("ann.lee", "short")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "password: "))
}

func TestWithPasswordRules(t *testing.T) {
	errDenied := errors.New("password is on the deny list")
	deny := func(s string) error {
		if s == "password1" {
			return errDenied
		}
		return nil
	}

	v := NewCredentialsValidator(WithPasswordRules(deny))

	assert.ErrorIs(t, v.ValidatePassword("password1"), errDenied)
	assert.NoError(t, v.ValidatePassword("password2"))
}
