// Package reference parses externally supplied expected-items listings
// into a uniform record set keyed by NM material key. Sources arrive in a
// handful of export formats (6-line text blocks, delimited rows, piped
// rows, columnar PDF text, XLSX); each format is a strategy producing the
// same Item shape. The strategy is a deployment-time choice made by the
// caller, never guessed across formats at runtime.
package reference

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/diugotfmc/nfrecon/pkg/pdftext"
	"github.com/diugotfmc/nfrecon/pkg/textenc"
)

// Item is one reference record. MaterialKey is mandatory and always in
// canonical "DD.DDD.DDD" form: rows without a valid key are discarded.
type Item struct {
	MaterialKey      string
	ShortDescription string
	QuantityText     string // kept verbatim, never re-rendered
	Unit             string
	CostCenter       string // 3-5 digit string
	ProjectElement   string // PEP element, e.g. IN-3668-15-951-MRP
}

// Format selects the parsing strategy for a reference source.
type Format string

const (
	FormatFixedBlock    Format = "fixed-block"
	FormatDelimitedAuto Format = "delimited"
	FormatPipeDelimited Format = "pipe"
	FormatColumnarPDF   Format = "columnar-pdf"
	FormatXLSX          Format = "xlsx"
)

// ErrUnknownFormat is returned for format names outside the known set.
var ErrUnknownFormat = errors.New("unknown reference format")

// ParseFormat maps a configuration string to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatFixedBlock, FormatDelimitedAuto, FormatPipeDelimited, FormatColumnarPDF, FormatXLSX:
		return Format(s), nil
	}
	return "", fmt.Errorf("%w: %q (expected fixed-block, delimited, pipe, columnar-pdf or xlsx)", ErrUnknownFormat, s)
}

// Options tunes strategy behavior without touching the fixed defaults.
type Options struct {
	// ExtraHeaderSynonyms adds header names to the synonym table of the
	// delimited and xlsx strategies, keyed by canonical field name
	// (material, description, quantity, unit, costcenter, projectelement).
	ExtraHeaderSynonyms map[string][]string
}

// materialKeyRe is the canonical punctuated key shape.
var materialKeyRe = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}$`)

// Parse decodes the raw bytes and applies the selected strategy. Byte
// decoding tries UTF-8, then Windows-1252, then lossy Latin-1; the
// columnar strategy additionally accepts PDF bytes and extracts their
// text first. Structural failures (format not recognizable at all) are
// returned as errors; individually malformed rows are skipped.
func Parse(data []byte, format Format, opts Options) ([]Item, error) {
	switch format {
	case FormatFixedBlock:
		return parseFixedBlock(textenc.Decode(data)), nil
	case FormatDelimitedAuto:
		return parseDelimited(textenc.Decode(data), opts)
	case FormatPipeDelimited:
		return parsePipeDelimited(textenc.Decode(data))
	case FormatColumnarPDF:
		text := textenc.Decode(data)
		if pdftext.IsPDF(data) {
			extracted, err := pdftext.Extract(data)
			if err != nil {
				return nil, fmt.Errorf("columnar reference: %w", err)
			}
			text = extracted
		}
		return parseColumnar(text), nil
	case FormatXLSX:
		return parseXLSX(data, opts)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
