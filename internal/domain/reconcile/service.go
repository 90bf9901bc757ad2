package reconcile

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/diugotfmc/nfrecon/internal/domain/invoice/parser"
	"github.com/diugotfmc/nfrecon/internal/domain/reference"
	"github.com/diugotfmc/nfrecon/pkg/pdftext"
)

// Service orchestrates one extraction-and-reconciliation run: decode,
// extract, parse the reference, join. Runs are independent; the service
// holds no per-run state and may be shared.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// RunRequest carries the raw inputs of one run. InvoicePDF takes
// precedence; InvoiceText accepts already-extracted text for sources that
// are not PDFs.
type RunRequest struct {
	InvoicePDF  []byte
	InvoiceText string

	ReferenceData    []byte
	ReferenceFormat  reference.Format
	ReferenceOptions reference.Options
}

// RunResult is the outcome of one run. Reconciliation is nil when it was
// skipped; SkipReason says why. ReferenceErr carries a structural failure
// of the reference file, which aborts that file only — invoice extraction
// still completes.
type RunResult struct {
	RunID uuid.UUID

	InvoiceItems   []parser.Item
	ReferenceItems []reference.Item
	ReferenceErr   error

	Reconciliation *Result
	SkipReason     string
}

// Run processes one document pair start to finish. Parsing anomalies
// degrade individual records instead of failing the run; only an
// unreadable invoice PDF is returned as an error.
func (s *Service) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &RunResult{RunID: uuid.New()}
	logger := s.logger.With(slog.String("run_id", res.RunID.String()))

	text := req.InvoiceText
	if len(req.InvoicePDF) > 0 {
		extracted, err := pdftext.Extract(req.InvoicePDF)
		if err != nil {
			logger.Error("invoice pdf extraction failed", slog.Any("error", err))
			return nil, err
		}
		text = extracted
	}

	if text != "" {
		res.InvoiceItems = parser.ExtractItems(text)
	}
	logger.Info("invoice extracted", slog.Int("items", len(res.InvoiceItems)))

	if len(req.ReferenceData) > 0 {
		items, err := reference.Parse(req.ReferenceData, req.ReferenceFormat, req.ReferenceOptions)
		if err != nil {
			// Structural failure of the reference file: surface it, keep
			// the invoice side of the run.
			logger.Error("reference parsing failed",
				slog.String("format", string(req.ReferenceFormat)),
				slog.Any("error", err))
			res.ReferenceErr = err
		} else {
			res.ReferenceItems = items
			logger.Info("reference parsed",
				slog.String("format", string(req.ReferenceFormat)),
				slog.Int("items", len(items)))
		}
	}

	switch {
	case len(res.InvoiceItems) == 0 && len(res.ReferenceItems) == 0:
		res.SkipReason = "no invoice items and no reference items: supply both documents"
	case len(res.InvoiceItems) == 0:
		res.SkipReason = "no invoice items extracted: supply the invoice PDF"
	case len(res.ReferenceItems) == 0:
		res.SkipReason = "no reference items parsed: supply the reference listing"
	default:
		res.Reconciliation = Join(res.InvoiceItems, res.ReferenceItems)
		c := res.Reconciliation.Counts()
		logger.Info("reconciliation complete",
			slog.Int("matched", c.Matched),
			slog.Int("invoice_only", c.InvoiceOnly),
			slog.Int("reference_only", c.ReferenceOnly))
	}

	return res, nil
}
