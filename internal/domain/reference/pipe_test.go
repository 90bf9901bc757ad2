package reference

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePipeDelimited(t *testing.T) {
	t.Run("parses piped rows and skips the header", func(t *testing.T) {
		text := strings.Join([]string{
			"| NM         | Texto breve material | QTD | UM | Centro | Elemento PEP |",
			"| 12.753.068 | BUCHA DE REDUCAO     | 100,000 | KG | 0803 | IN-3668-15-951-MRP |",
			"| 12773524   | PARAFUSO SEXT        | 2 | UN | 0803 | IN-3668-15-951-MRP |",
		}, "\n")

		items, err := parsePipeDelimited(text)
		require.NoError(t, err)
		require.Len(t, items, 2)

		assert.Equal(t, "12.753.068", items[0].MaterialKey)
		assert.Equal(t, "BUCHA DE REDUCAO", items[0].ShortDescription)
		assert.Equal(t, "100,000", items[0].QuantityText)
		assert.Equal(t, "KG", items[0].Unit)
		assert.Equal(t, "0803", items[0].CostCenter)
		assert.Equal(t, "IN-3668-15-951-MRP", items[0].ProjectElement)

		// Raw 8-digit keys are accepted and normalized.
		assert.Equal(t, "12.773.524", items[1].MaterialKey)
	})

	t.Run("skips rows with fewer than 6 fields", func(t *testing.T) {
		items, err := parsePipeDelimited("| 12.753.068 | BUCHA | 2 |")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("skips rows with invalid keys", func(t *testing.T) {
		items, err := parsePipeDelimited("| 99 | BUCHA | 2 | UN | 0803 | IN-3668 |")
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}
