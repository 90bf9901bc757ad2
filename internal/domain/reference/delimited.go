package reference

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/diugotfmc/nfrecon/internal/domain/invoice/normalizer"
)

// Canonical column names for delimited and xlsx sources.
const (
	colMaterial    = "material"
	colDescription = "description"
	colQuantity    = "quantity"
	colUnit        = "unit"
	colCostCenter  = "costcenter"
	colProjectElem = "projectelement"
)

// canonicalColumns is the fixed column order assumed for headerless
// 6-column files, matching the ERP export layout.
var canonicalColumns = []string{
	colMaterial, colDescription, colQuantity, colUnit, colCostCenter, colProjectElem,
}

// headerSynonyms maps normalized header cells to canonical columns. The
// exact sets carry the names our exports and the known ERP variants use;
// the contains sets catch suffixed forms like "QTD (REF)".
var headerSynonyms = map[string]struct{ exact, contains []string }{
	colMaterial:    {exact: []string{"nm", "material", "materialkey", "codmaterial", "codigomaterial", "chave"}},
	colDescription: {contains: []string{"texto", "descr", "text"}},
	colQuantity:    {exact: []string{"qtd"}, contains: []string{"qtd", "quant", "qty"}},
	colUnit:        {exact: []string{"um", "un", "umref", "unref"}, contains: []string{"unidade", "unit"}},
	colCostCenter:  {contains: []string{"centro", "costcenter"}},
	colProjectElem: {contains: []string{"pep", "wbs", "elemento", "projectelement"}},
}

// fuzzyHeaderDistance is the maximum Levenshtein distance accepted when
// matching a slightly misspelled header against an exact synonym.
const fuzzyHeaderDistance = 2

var (
	ErrEmptySource     = errors.New("reference file is empty")
	ErrNoDelimiter     = errors.New("could not detect a delimiter (tried ';', tab, '|' and ',')")
	ErrColumnsNotFound = errors.New("could not identify required columns: expected a header naming the material key (NM/Material) or exactly 6 columns in fixed order")
)

// delimiterCandidates in evaluation order.
var delimiterCandidates = []rune{';', '\t', '|', ','}

// DetectDelimiter samples up to 50 non-blank lines and, for each
// candidate delimiter, computes the most frequent column count across the
// sample. The winner maximizes (column count, lines matching that count)
// lexicographically. At least two columns are required.
func DetectDelimiter(lines []string) (rune, error) {
	sample := make([]string, 0, 50)
	for _, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		sample = append(sample, ln)
		if len(sample) == 50 {
			break
		}
	}
	if len(sample) == 0 {
		return 0, ErrEmptySource
	}

	best := rune(0)
	bestCols, bestLines := 0, 0
	for _, d := range delimiterCandidates {
		counts := make(map[int]int)
		for _, ln := range sample {
			counts[len(strings.Split(ln, string(d)))]++
		}
		cols, matching := 0, 0
		for c, n := range counts {
			if n > matching || (n == matching && c > cols) {
				cols, matching = c, n
			}
		}
		if cols > bestCols || (cols == bestCols && matching > bestLines) {
			best, bestCols, bestLines = d, cols, matching
		}
	}
	if bestCols < 2 {
		return 0, ErrNoDelimiter
	}
	return best, nil
}

// parseDelimited parses a delimited text file with automatic delimiter
// detection and header mapping. Header detection happens on the first
// record: exact synonym match, then a fuzzy pass for misspellings, then
// the fixed 6-column order when no header is present. Identification
// failure is a structural error for the whole file.
func parseDelimited(text string, opts Options) ([]Item, error) {
	lines := strings.Split(text, "\n")
	delim, err := DetectDelimiter(lines)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read delimited reference: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptySource
	}

	columns, hasHeader, err := resolveColumns(records[0], opts)
	if err != nil {
		return nil, err
	}
	if hasHeader {
		records = records[1:]
	}

	return itemsFromRecords(records, columns), nil
}

// resolveColumns maps canonical fields to column indices from the first
// record. Returns whether the record is a header row to skip.
func resolveColumns(first []string, opts Options) (map[string]int, bool, error) {
	normalized := make([]string, len(first))
	for i, cell := range first {
		normalized[i] = normalizeHeaderCell(cell)
	}

	columns := make(map[string]int)
	for _, field := range canonicalColumns {
		for i, cell := range normalized {
			if taken(columns, i) {
				continue
			}
			if matchesField(field, cell, opts) {
				columns[field] = i
				break
			}
		}
	}

	// Fuzzy pass for fields still missing: tolerate small misspellings
	// of the exact synonyms.
	for _, field := range canonicalColumns {
		if _, ok := columns[field]; ok {
			continue
		}
		for i, cell := range normalized {
			if taken(columns, i) || cell == "" {
				continue
			}
			if fuzzyMatchesField(field, cell) {
				columns[field] = i
				break
			}
		}
	}

	if _, ok := columns[colMaterial]; ok {
		return columns, true, nil
	}

	// No recognizable header: assume the fixed export order when the
	// column count matches exactly.
	if len(first) == len(canonicalColumns) {
		columns = make(map[string]int, len(canonicalColumns))
		for i, field := range canonicalColumns {
			columns[field] = i
		}
		return columns, false, nil
	}

	return nil, false, ErrColumnsNotFound
}

func taken(columns map[string]int, idx int) bool {
	for _, v := range columns {
		if v == idx {
			return true
		}
	}
	return false
}

// matchesField applies the exact and contains synonym sets, plus any
// configured extras, for one canonical field.
func matchesField(field, cell string, opts Options) bool {
	if cell == "" {
		return false
	}
	syn := headerSynonyms[field]
	for _, s := range syn.exact {
		if cell == s {
			return true
		}
	}
	for _, s := range syn.contains {
		if strings.Contains(cell, s) {
			return true
		}
	}
	for _, s := range opts.ExtraHeaderSynonyms[field] {
		if cell == normalizeHeaderCell(s) {
			return true
		}
	}
	return false
}

func fuzzyMatchesField(field, cell string) bool {
	for _, s := range headerSynonyms[field].exact {
		if len(s) < 3 {
			continue // too short for distance matching to mean anything
		}
		if d := fuzzy.LevenshteinDistance(cell, s); d >= 0 && d <= fuzzyHeaderDistance {
			return true
		}
	}
	return false
}

// normalizeHeaderCell lowercases and strips everything except letters and
// digits, so "Texto breve material (REF)" and "texto_breve_material"
// compare equal.
func normalizeHeaderCell(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}

// itemsFromRecords builds reference items from data records. Rows whose
// material key does not normalize to the canonical form are discarded;
// that is the one mandatory field.
func itemsFromRecords(records [][]string, columns map[string]int) []Item {
	cell := func(record []string, field string) string {
		idx, ok := columns[field]
		if !ok || idx < 0 || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var items []Item
	for _, record := range records {
		key := normalizer.MaterialKey(cell(record, colMaterial))
		if !materialKeyRe.MatchString(key) {
			continue
		}
		items = append(items, Item{
			MaterialKey:      key,
			ShortDescription: cell(record, colDescription),
			QuantityText:     cell(record, colQuantity),
			Unit:             cell(record, colUnit),
			CostCenter:       cell(record, colCostCenter),
			ProjectElement:   cell(record, colProjectElem),
		})
	}
	return items
}
