package validation

import (
	"errors"
	"testing"

	"github.com/SscSPs/social_media_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegister() RegisterInput {
	return RegisterInput{
		Name:            "Alice",
		Email:           "a@x.com",
		Password:        "Abc123!",
		ConfirmPassword: "Abc123!",
		DateOfBirth:     "1990-01-01T00:00:00Z",
	}
}

func TestRegister_Valid(t *testing.T) {
	res := Register(validRegister())
	assert.True(t, res.OK())
	assert.NoError(t, res.Err())
}

func TestRegister_Failures(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*RegisterInput)
		field string
		kind  Kind
	}{
		{"missing name", func(in *RegisterInput) { in.Name = "" }, "name", KindRequired},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }, "email", KindFormat},
		{"weak password", func(in *RegisterInput) { in.Password, in.ConfirmPassword = "abcdef", "abcdef" }, "password", KindWeak},
		{"short password", func(in *RegisterInput) { in.Password = "Ab1!" }, "password", KindLength},
		{"confirm mismatch", func(in *RegisterInput) { in.ConfirmPassword = "Xyz123!" }, "confirm_password", KindMismatch},
		{"bad date", func(in *RegisterInput) { in.DateOfBirth = "01/01/1990" }, "date_of_birth", KindFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRegister()
			tt.edit(&in)

			err := Register(in).Err()
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)

			var verr *Error
			require.True(t, errors.As(err, &verr))
			fe, ok := verr.ByField()[tt.field]
			require.True(t, ok, "expected failure on %s, got %v", tt.field, verr.Fields)
			assert.Equal(t, tt.kind, fe.Kind)
		})
	}
}

func TestRun_KeepsFirstFailurePerField(t *testing.T) {
	res := Run(Required("password", ""), Length("password", "", 6, 50), StrongPassword("password", ""))

	require.Len(t, res.Errors, 1)
	assert.Equal(t, KindRequired, res.Errors[0].Kind)
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, IsStrongPassword("Abc123!"))
	assert.False(t, IsStrongPassword("Ab1!"))
	assert.False(t, IsStrongPassword("abc123!"))
	assert.False(t, IsStrongPassword("ABC123!"))
	assert.False(t, IsStrongPassword("Abcdef!"))
	assert.False(t, IsStrongPassword("Abc1234"))
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("1990-01-01")
	assert.NoError(t, err)
	_, err = ParseDate("1990-01-01T10:00:00+02:00")
	assert.NoError(t, err)
	_, err = ParseDate("yesterday")
	assert.Error(t, err)
}

func TestUpdateMe(t *testing.T) {
	good := "alice_99"
	digits := "123456"
	short := "abc"
	site := "https://alice.dev"
	badSite := "alice"

	assert.True(t, UpdateMe(UpdateMeInput{Username: &good, Website: &site}).OK())
	assert.True(t, UpdateMe(UpdateMeInput{}).OK())

	res := UpdateMe(UpdateMeInput{Username: &digits})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "username", res.Errors[0].Field)

	assert.False(t, UpdateMe(UpdateMeInput{Username: &short}).OK())
	assert.False(t, UpdateMe(UpdateMeInput{Website: &badSite}).OK())
}

func TestFollow(t *testing.T) {
	assert.True(t, Follow("6f1c1a84-6c3e-4c57-9d0b-4c0f5f9f5d11").OK())
	assert.False(t, Follow("").OK())
	assert.False(t, Follow("not-a-uuid").OK())
}

func TestLoginAndPasswordPipelines(t *testing.T) {
	assert.True(t, Login("a@x.com", "anything").OK())
	assert.False(t, Login("a@x.com", "").OK())
	assert.True(t, EmailOnly("a@x.com").OK())
	assert.False(t, EmailOnly("").OK())
	assert.True(t, ResetPassword("NewPass1!", "NewPass1!").OK())
	assert.False(t, ResetPassword("NewPass1!", "NewPass2!").OK())
	assert.True(t, ChangePassword("old", "NewPass1!", "NewPass1!").OK())
	assert.False(t, ChangePassword("", "NewPass1!", "NewPass1!").OK())
}
