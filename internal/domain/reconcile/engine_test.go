package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diugotfmc/nfrecon/internal/domain/invoice/parser"
	"github.com/diugotfmc/nfrecon/internal/domain/reference"
)

func inv(desc, key string) parser.Item {
	return parser.Item{Description: desc, MaterialKey: key}
}

func ref(desc, key string) reference.Item {
	return reference.Item{ShortDescription: desc, MaterialKey: key}
}

func TestJoin(t *testing.T) {
	t.Run("partitions the outer join", func(t *testing.T) {
		result := Join(
			[]parser.Item{inv("A", "11.111.111"), inv("B", "")},
			[]reference.Item{ref("X", "11.111.111"), ref("Y", "22.222.222")},
		)

		require.Len(t, result.Matched, 1)
		assert.Equal(t, "A", result.Matched[0].Invoice.Description)
		assert.Equal(t, "X", result.Matched[0].Reference.ShortDescription)

		require.Len(t, result.InvoiceOnly, 1)
		assert.Equal(t, "B", result.InvoiceOnly[0].Description)

		require.Len(t, result.ReferenceOnly, 1)
		assert.Equal(t, "Y", result.ReferenceOnly[0].ShortDescription)

		// Every one of the 4 input records is covered exactly once:
		// each matched pair covers one record from each side.
		c := result.Counts()
		assert.Equal(t, 4, 2*c.Matched+c.InvoiceOnly+c.ReferenceOnly)
	})

	t.Run("null keys never match each other", func(t *testing.T) {
		result := Join(
			[]parser.Item{inv("A", "")},
			[]reference.Item{ref("X", "")},
		)

		assert.Empty(t, result.Matched)
		assert.Len(t, result.InvoiceOnly, 1)
		assert.Len(t, result.ReferenceOnly, 1)
	})

	t.Run("duplicate keys join pairwise", func(t *testing.T) {
		result := Join(
			[]parser.Item{inv("A1", "11.111.111"), inv("A2", "11.111.111")},
			[]reference.Item{ref("X1", "11.111.111"), ref("X2", "11.111.111")},
		)

		assert.Len(t, result.Matched, 4)
		assert.Empty(t, result.InvoiceOnly)
		assert.Empty(t, result.ReferenceOnly)
	})

	t.Run("empty inputs yield empty partitions", func(t *testing.T) {
		result := Join(nil, nil)
		c := result.Counts()
		assert.Equal(t, Counts{}, c)
	})
}
