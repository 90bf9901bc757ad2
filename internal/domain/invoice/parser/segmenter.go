// Package parser turns NF-e plain text (as extracted from the PDF) into
// typed invoice items. Extraction is layered: block segmentation, header
// match, sub-identifier recovery, quantity/unit recovery and price
// reconstruction are each independent, pure steps.
package parser

import (
	"regexp"
	"strings"
)

// blockStartRe marks the first line of an invoice item: 2-4 uppercase
// letters, at least 2 digits, optional trailing alphanumerics.
var blockStartRe = regexp.MustCompile(`^[A-Z]{2,4}\d{2,}[A-Z0-9]*`)

// Lines splits raw document text into trimmed, non-empty lines.
func Lines(text string) []string {
	var out []string
	for _, ln := range strings.Split(text, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			out = append(out, ln)
		}
	}
	return out
}

// SegmentBlocks groups lines into per-item blocks. A line matching the
// item-code pattern opens a new block; every following line belongs to
// the open block until the next starter. Lines before the first starter
// never produce a block. One pass, no backtracking.
func SegmentBlocks(lines []string) [][]string {
	var blocks [][]string
	var current []string

	for _, ln := range lines {
		if blockStartRe.MatchString(ln) {
			if len(current) > 0 {
				blocks = append(blocks, current)
			}
			current = []string{ln}
			continue
		}
		if len(current) > 0 {
			current = append(current, ln)
		}
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}
