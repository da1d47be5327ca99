package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		valid    bool
	}{
		{name: "canonical", input: "+375291234567", expected: "+375291234567", valid: true},
		{name: "spaces", input: "+375 29 123 45 67", expected: "+375291234567", valid: true},
		{name: "dashes", input: "+375-29-123-45-67", expected: "+375291234567", valid: true},
		{name: "surrounding whitespace", input: "  +375291234567\n", expected: "+375291234567", valid: true},
		{name: "wrong prefix", input: "+376291234567", valid: false},
		{name: "missing plus", input: "375291234567", valid: false},
		{name: "too short", input: "+37529123456", valid: false},
		{name: "too long", input: "+3752912345678", valid: false},
		{name: "letter after prefix", input: "+37529123456a", valid: false},
		{name: "plus inside", input: "+375+91234567", valid: false},
		{name: "empty", input: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phone, err := NormalizePhone(tt.input)

			if !tt.valid {
				assert.ErrorIs(t, err, ErrInvalidPhone)
				assert.False(t, ValidPhone(tt.input))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, phone)
			assert.True(t, ValidPhone(tt.input))
		})
	}
}
