package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocaleDecimal(t *testing.T) {
	t.Run("parses plain decimal", func(t *testing.T) {
		d, err := ParseLocaleDecimal("15,00")
		require.NoError(t, err)
		assert.Equal(t, "15", d.String())
	})

	t.Run("parses thousands separator", func(t *testing.T) {
		d, err := ParseLocaleDecimal("1.234,56")
		require.NoError(t, err)
		assert.Equal(t, "1234.56", d.String())
	})

	t.Run("parses four decimal places", func(t *testing.T) {
		d, err := ParseLocaleDecimal("2,0000")
		require.NoError(t, err)
		assert.Equal(t, "2", d.String())
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := ParseLocaleDecimal("  ")
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParseLocaleDecimal("abc")
		assert.Error(t, err)
	})
}

func TestMaterialKey(t *testing.T) {
	t.Run("regroups 8 digits", func(t *testing.T) {
		assert.Equal(t, "12.773.524", MaterialKey("NM12773524"))
	})

	t.Run("keeps pre-punctuated keys", func(t *testing.T) {
		assert.Equal(t, "12.773.524", MaterialKey("12.773.524"))
	})

	t.Run("is idempotent on its own output", func(t *testing.T) {
		keys := []string{"NM12753068", "12.773.524", "NM00000001"}
		for _, k := range keys {
			once := MaterialKey(k)
			assert.Equal(t, once, MaterialKey(once))
		}
	})

	t.Run("falls back to thousands grouping", func(t *testing.T) {
		assert.Equal(t, "1.234.567", MaterialKey("1234567"))
		assert.Equal(t, "123", MaterialKey("NM123"))
	})

	t.Run("returns empty without digits", func(t *testing.T) {
		assert.Equal(t, "", MaterialKey("NM"))
		assert.Equal(t, "", MaterialKey(""))
	})
}

func TestSequenceNumber(t *testing.T) {
	assert.Equal(t, "200", SequenceNumber("IT200"))
	assert.Equal(t, "200", SequenceNumber("IT 200"))
	assert.Equal(t, "", SequenceNumber("IT"))
}

func TestFormatItemCode(t *testing.T) {
	t.Run("BJ followed by 8 digits", func(t *testing.T) {
		assert.Equal(t, "BJ 080.00200", FormatItemCode("AC0505BJ08000200"))
	})

	t.Run("BJ with 3+5 digit groups", func(t *testing.T) {
		assert.Equal(t, "BJ 028.00629", FormatItemCode("BJ02800629"))
	})

	t.Run("BX with 3 digits", func(t *testing.T) {
		assert.Equal(t, "BX 156", FormatItemCode("XYZBX156"))
	})

	t.Run("unknown family unchanged", func(t *testing.T) {
		assert.Equal(t, "NOMATCH123", FormatItemCode("NOMATCH123"))
	})

	t.Run("empty unchanged", func(t *testing.T) {
		assert.Equal(t, "", FormatItemCode(""))
	})
}

func TestUnitVocabulary(t *testing.T) {
	assert.True(t, IsUnit("KG"))
	assert.False(t, IsUnit("XX"))
	assert.Contains(t, UnitAlternation(), "KIT")
}
