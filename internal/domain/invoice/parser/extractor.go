package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/diugotfmc/nfrecon/internal/domain/invoice/normalizer"
)

// Item is one extracted invoice line. All fields are best-effort: a block
// that passes the header match always yields an Item, with unmatched
// fields left empty.
type Item struct {
	RawCodeBase  string // product code as printed, without the ITEM/POS suffix
	RawCode      string // base code with the ITEM/POS suffix appended
	Code         string // formatted code, suffix on its own line
	Sequence     string // IT sub-item number, digits only
	MaterialKey  string // NM key in canonical "DD.DDD.DDD" form, join key
	Description  string
	NCM          string // 8-digit fiscal classification
	CFOP         string // 4-digit fiscal operation code
	Unit         string
	QuantityText string // quantity exactly as printed, never re-rendered
	UnitPrice    *decimal.Decimal
	TotalPrice   *decimal.Decimal
}

var (
	// headerRe anchors an item block: code, free-text core, NCM, a
	// 3-digit filler column and CFOP.
	headerRe = regexp.MustCompile(`^([A-Z0-9]{2,}\d{2,}[A-Z0-9]*)\s+(.+?)\s+(\d{8})\s+\d{3}\s+(\d{4})`)

	itTokenRe = regexp.MustCompile(`\bIT\s*\d+\b`)
	nmTokenRe = regexp.MustCompile(`\bNM\d+\b`)

	suffixRe = regexp.MustCompile(`(?i)\b(ITEM\s*\d+|POS\s*\d+)\b`)

	hyphenRunRe = regexp.MustCompile(`\s*-\s*`)
	spaceRunRe  = regexp.MustCompile(`\s{2,}`)
	wsRe        = regexp.MustCompile(`\s+`)
)

// header holds the anchored match of an item block.
type header struct {
	code string
	core string // free-text span between code and NCM, carries IT/NM/description
	ncm  string
	cfop string
	end  int // offset just past the match; the rest carries qty/unit/prices
}

// ExtractItems runs the full pipeline on already-extracted document text.
// Blocks that fail the header match are dropped silently: free text around
// the item table is expected noise, not an error.
func ExtractItems(text string) []Item {
	blocks := SegmentBlocks(Lines(text))
	items := make([]Item, 0, len(blocks))
	for _, block := range blocks {
		if item, ok := parseBlock(block); ok {
			items = append(items, item)
		}
	}
	return items
}

// parseBlock recovers a single Item from one block of lines.
func parseBlock(block []string) (Item, bool) {
	flat := strings.Join(block, " ")

	h, ok := matchHeader(flat)
	if !ok {
		return Item{}, false
	}
	rest := flat[h.end:]

	seq, key := recoverSubIdentifiers(h.core)
	suffix := recoverSuffix(block)
	qty, unit := recoverQuantityUnit(rest)
	unitPrice, totalPrice := reconstructPrices(qty, rest)

	code := normalizer.FormatItemCode(h.code)
	if suffix != "" {
		code += "\n" + suffix
	}

	return Item{
		RawCodeBase:  h.code,
		RawCode:      h.code + suffix,
		Code:         code,
		Sequence:     seq,
		MaterialKey:  key,
		Description:  cleanCoreText(h.core),
		NCM:          h.ncm,
		CFOP:         h.cfop,
		Unit:         unit,
		QuantityText: qty,
		UnitPrice:    unitPrice,
		TotalPrice:   totalPrice,
	}, true
}

// matchHeader applies the anchored header pattern to the flattened block.
func matchHeader(flat string) (header, bool) {
	idx := headerRe.FindStringSubmatchIndex(flat)
	if idx == nil {
		return header{}, false
	}
	return header{
		code: flat[idx[2]:idx[3]],
		core: strings.TrimSpace(flat[idx[4]:idx[5]]),
		ncm:  flat[idx[6]:idx[7]],
		cfop: flat[idx[8]:idx[9]],
		end:  idx[1],
	}, true
}

// recoverSubIdentifiers finds the optional IT sequence number and NM
// material key inside the core span.
func recoverSubIdentifiers(core string) (sequence, materialKey string) {
	if m := itTokenRe.FindString(core); m != "" {
		sequence = normalizer.SequenceNumber(m)
	}
	if m := nmTokenRe.FindString(core); m != "" {
		materialKey = normalizer.MaterialKey(m)
	}
	return sequence, materialKey
}

// cleanCoreText strips the IT/NM tokens out of the core span and
// normalizes the leftover separators into a readable description.
func cleanCoreText(core string) string {
	desc := itTokenRe.ReplaceAllString(core, "")
	desc = nmTokenRe.ReplaceAllString(desc, "")
	desc = hyphenRunRe.ReplaceAllString(desc, " - ")
	desc = spaceRunRe.ReplaceAllString(desc, " ")
	return strings.Trim(desc, " -")
}

// recoverSuffix looks for an ITEM/POS marker on the block's second line,
// then on any later line. The marker disambiguates sub-items that share
// one physical product code. Internal whitespace is stripped and the
// token uppercased ("item 15" -> "ITEM15").
func recoverSuffix(block []string) string {
	if len(block) > 1 {
		if m := suffixRe.FindString(block[1]); m != "" {
			return wsRe.ReplaceAllString(strings.ToUpper(m), "")
		}
	}
	if len(block) > 2 {
		for _, ln := range block[2:] {
			if m := suffixRe.FindString(ln); m != "" {
				return wsRe.ReplaceAllString(strings.ToUpper(m), "")
			}
		}
	}
	return ""
}
