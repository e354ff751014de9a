package commerce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMinorUnits(t *testing.T) {
	t.Run("parses standard amount", func(t *testing.T) {
		assert.Equal(t, int64(19999), ParseMinorUnits("199.99"))
	})

	t.Run("parses whole amount", func(t *testing.T) {
		assert.Equal(t, int64(5000), ParseMinorUnits("50"))
		assert.Equal(t, int64(5000), ParseMinorUnits("50.00"))
	})

	t.Run("parses zero", func(t *testing.T) {
		assert.Equal(t, int64(0), ParseMinorUnits("0.00"))
	})

	t.Run("rounds sub-cent amounts without float error", func(t *testing.T) {
		// 0.005 * 100 = 0.5 exactly under fixed-point arithmetic
		assert.Equal(t, int64(1), ParseMinorUnits("0.005"))
		assert.Equal(t, int64(2679), ParseMinorUnits("26.785"))
	})

	t.Run("parses negative amounts", func(t *testing.T) {
		assert.Equal(t, int64(-1050), ParseMinorUnits("-10.50"))
	})

	t.Run("unparsable input yields zero", func(t *testing.T) {
		assert.Equal(t, int64(0), ParseMinorUnits(""))
		assert.Equal(t, int64(0), ParseMinorUnits("not-a-number"))
	})
}

func TestFormatMinorUnits(t *testing.T) {
	assert.Equal(t, "199.99", FormatMinorUnits(19999))
	assert.Equal(t, "0.00", FormatMinorUnits(0))
	assert.Equal(t, "0.05", FormatMinorUnits(5))
	assert.Equal(t, "-10.50", FormatMinorUnits(-1050))
}

func TestMinorUnitsRoundTrip(t *testing.T) {
	for _, s := range []string{"199.99", "0.01", "12345.67", "0.00"} {
		assert.Equal(t, s, FormatMinorUnits(ParseMinorUnits(s)))
	}
}
