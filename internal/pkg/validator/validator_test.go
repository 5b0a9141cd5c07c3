package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@example.co.id",
		"user+tag@example.org",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"user",
		"user@",
		"@example.com",
		"user@example",
		"user @example.com",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidUsername(t *testing.T) {
	assert.True(t, IsValidUsername("jdoe"))
	assert.True(t, IsValidUsername("j.doe_01"))
	assert.False(t, IsValidUsername("ab"))
	assert.False(t, IsValidUsername("has space"))
	assert.False(t, IsValidUsername("way@wrong"))
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "username", Message: "username is required"},
		{Field: "email", Message: "email is invalid"},
	}

	m := errs.ToMap()
	assert.Equal(t, "username is required", m["username"])
	assert.Equal(t, "email is invalid", m["email"])
	assert.Contains(t, errs.Error(), "username: username is required")
}
