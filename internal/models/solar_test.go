package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolarPatch_ValidateReportsFirstFieldInOrder(t *testing.T) {
	neg := decimal.NewFromInt(-1)
	p := SolarPatch{ImportKWh: &neg, ExportKWh: &neg, GenerationKWh: &neg}

	for i := 0; i < 20; i++ {
		assert.EqualError(t, p.Validate(), "import_kwh must not be negative")
	}

	ok := decimal.NewFromInt(1)
	p = SolarPatch{ImportKWh: &ok, ExportKWh: &neg, GenerationKWh: &neg}
	assert.EqualError(t, p.Validate(), "export_kwh must not be negative")
}

func TestSolarPatch_Changes(t *testing.T) {
	gen := decimal.RequireFromString("3.75")
	notes := "cloudy"
	ch := SolarPatch{GenerationKWh: &gen, Notes: &notes}.Changes()

	require.Len(t, ch, 2)
	assert.Equal(t, gen, ch["generation_kwh"])
	assert.Equal(t, "cloudy", ch["notes"])
}

func TestBorrowing_ValidateRejectsNegativeAmount(t *testing.T) {
	b := Borrowing{TxnDate: "2024-03-01", CustomerName: "Ravi", Amount: decimal.NewFromInt(-5)}
	assert.EqualError(t, b.Validate(), "amount must not be negative")
}
