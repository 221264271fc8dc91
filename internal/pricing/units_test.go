package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMonthly(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		unit     string
		expected float64
	}{
		{"annual spanish", 1200, "año", 100},
		{"annual spanish no tilde", 1200, "ano", 100},
		{"annual english", 2400, "year", 200},
		{"annual uppercase", 1200, "AÑO", 100},
		{"semester", 600, "semestre", 100},
		{"semester english", 1200, "semester", 200},
		{"monthly", 5000, "mes", 5000},
		{"empty unit", 5000, "", 5000},
		{"unknown unit stays monthly", 5000, "trimestre", 5000},
		{"padded unit", 1200, "  año  ", 100},
		{"zero amount", 0, "año", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, NormalizeMonthly(tt.amount, tt.unit), 1e-9)
		})
	}
}

func TestNormalizeMonthlyIdempotentOnMonthly(t *testing.T) {
	once := NormalizeMonthly(5000, "mes")
	twice := NormalizeMonthly(once, "mes")
	assert.Equal(t, once, twice)
}
