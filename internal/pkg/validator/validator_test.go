package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   \t"))
	assert.False(t, IsEmpty("x"))
}

func TestIsValidEmail(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidEmail("jane.doe@example.com"))
	assert.True(t, IsValidEmail("a+b@sub.example.co"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidUUID(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidUUID("6f6b8c0e-1234-4abc-9def-000000000001"))
	assert.True(t, IsValidUUID("6F6B8C0E-1234-4ABC-9DEF-000000000001"))
	assert.False(t, IsValidUUID("6f6b8c0e"))
	assert.False(t, IsValidUUID(""))
}

func TestIsValidHexColor(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidHexColor("#1a2b3c"))
	assert.True(t, IsValidHexColor("#FFF"))
	assert.False(t, IsValidHexColor("1a2b3c"))
	assert.False(t, IsValidHexColor("#12345"))
	assert.False(t, IsValidHexColor("#gggggg"))
}

func TestIsValidDate(t *testing.T) {
	t.Parallel()

	date, ok := IsValidDate("2026-08-31")
	assert.True(t, ok)
	assert.Equal(t, 2026, date.Year())

	_, ok = IsValidDate("31-08-2026")
	assert.False(t, ok)

	_, ok = IsValidDate("2026-02-30")
	assert.False(t, ok)
}

func TestIsValidGender(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidGender("male"))
	assert.True(t, IsValidGender("Female"))
	assert.False(t, IsValidGender("unknown"))
	assert.False(t, IsValidGender(""))
}
