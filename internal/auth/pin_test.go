package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePIN(t *testing.T) {
	hashed, err := HashPIN("1234", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "1234", hashed)

	assert.NoError(t, ComparePIN(hashed, "1234"))
	assert.Error(t, ComparePIN(hashed, "4321"))
}

func TestValidPIN(t *testing.T) {
	cases := []struct {
		pin  string
		want bool
	}{
		{"1234", true},
		{"0000", true},
		{" 5555 ", true},
		{"123", false},
		{"12345", false},
		{"12a4", false},
		{"", false},
		{"١٢٣٤", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidPIN(tc.pin), "pin %q", tc.pin)
	}
}
