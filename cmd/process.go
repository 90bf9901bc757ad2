package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diugotfmc/nfrecon/internal/domain/export"
	"github.com/diugotfmc/nfrecon/internal/domain/reconcile"
	"github.com/diugotfmc/nfrecon/internal/domain/reference"
	"github.com/diugotfmc/nfrecon/pkg/config"
	"github.com/diugotfmc/nfrecon/pkg/pdftext"
	"github.com/diugotfmc/nfrecon/pkg/textenc"
)

var (
	invoicePath   string
	referencePath string
	formatName    string
	outputDir     string
	overridesPath string
	writeCSV      bool
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Extract invoice items, parse the reference listing and reconcile them",
	Long: `The process command extracts line items from the invoice document,
parses the reference listing with the selected strategy and writes the
reconciliation tables to the output directory:

  nf_itens.xlsx          extracted invoice items
  referencia_itens.xlsx  parsed reference items
  conciliados.xlsx       matched pairs
  somente_nf.xlsx        invoice items without a reference match
  somente_txt.xlsx       reference items without an invoice match

Either side may be supplied alone; reconciliation then degrades to the
extraction tables for the side that is present.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&invoicePath, "invoice", "",
		"path to the invoice document (PDF or plain text)")
	processCmd.Flags().StringVar(&referencePath, "reference", "",
		"path to the reference listing (text, PDF or XLSX)")
	processCmd.Flags().StringVar(&formatName, "format", "",
		"reference format: fixed-block, delimited, pipe, columnar-pdf or xlsx")
	processCmd.Flags().StringVar(&outputDir, "output", "",
		"directory for the exported tables")
	processCmd.Flags().StringVar(&overridesPath, "overrides", "",
		"YAML file with extra header synonyms for delimited sources")
	processCmd.Flags().BoolVar(&writeCSV, "csv", false,
		"also write CSV versions of the exported tables")
}

func runProcess(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger := newLogger(cfg)

	// Flags win over environment configuration.
	if formatName == "" {
		formatName = cfg.Run.ReferenceFormat
	}
	if outputDir == "" {
		outputDir = cfg.Run.OutputDir
	}
	if overridesPath == "" {
		overridesPath = cfg.Run.OverridesFile
	}
	if !cmd.Flags().Changed("csv") {
		writeCSV = cfg.Run.WriteCSV
	}

	if invoicePath == "" && referencePath == "" {
		return fmt.Errorf("nothing to process: pass --invoice and/or --reference")
	}

	req := reconcile.RunRequest{}

	if invoicePath != "" {
		data, err := os.ReadFile(invoicePath)
		if err != nil {
			return fmt.Errorf("read invoice: %w", err)
		}
		if pdftext.IsPDF(data) {
			req.InvoicePDF = data
		} else {
			req.InvoiceText = textenc.Decode(data)
		}
	}

	if referencePath != "" {
		format, err := reference.ParseFormat(formatName)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(referencePath)
		if err != nil {
			return fmt.Errorf("read reference: %w", err)
		}
		ov, err := config.LoadOverrides(overridesPath)
		if err != nil {
			return err
		}
		req.ReferenceData = data
		req.ReferenceFormat = format
		req.ReferenceOptions = reference.Options{ExtraHeaderSynonyms: ov.HeaderSynonyms}
	}

	svc := reconcile.NewService(logger)
	res, err := svc.Run(context.Background(), req)
	if err != nil {
		return err
	}

	if res.ReferenceErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: reference listing not usable: %v\n", res.ReferenceErr)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err := writeTables(res, logger); err != nil {
		return err
	}

	fmt.Printf("Invoice items:   %d\n", len(res.InvoiceItems))
	fmt.Printf("Reference items: %d\n", len(res.ReferenceItems))
	if res.Reconciliation != nil {
		c := res.Reconciliation.Counts()
		fmt.Printf("Matched:         %d\n", c.Matched)
		fmt.Printf("Only invoice:    %d\n", c.InvoiceOnly)
		fmt.Printf("Only reference:  %d\n", c.ReferenceOnly)
	} else if res.SkipReason != "" {
		fmt.Printf("Reconciliation skipped: %s\n", res.SkipReason)
	}

	return nil
}

func writeTables(res *reconcile.RunResult, logger *slog.Logger) error {
	type table struct {
		name string
		xlsx func() ([]byte, error)
		csv  func() ([]byte, error)
	}

	var tables []table
	if len(res.InvoiceItems) > 0 {
		tables = append(tables, table{
			name: "nf_itens",
			xlsx: func() ([]byte, error) { return export.InvoiceXLSX(res.InvoiceItems) },
			csv:  func() ([]byte, error) { return export.InvoiceCSV(res.InvoiceItems) },
		})
	}
	if len(res.ReferenceItems) > 0 {
		tables = append(tables, table{
			name: "referencia_itens",
			xlsx: func() ([]byte, error) { return export.ReferenceXLSX(res.ReferenceItems) },
			csv:  func() ([]byte, error) { return export.ReferenceCSV(res.ReferenceItems) },
		})
	}
	if rec := res.Reconciliation; rec != nil {
		tables = append(tables,
			table{
				name: "conciliados",
				xlsx: func() ([]byte, error) { return export.MatchedXLSX(rec.Matched) },
				csv:  func() ([]byte, error) { return export.MatchedCSV(rec.Matched) },
			},
			table{
				name: "somente_nf",
				xlsx: func() ([]byte, error) { return export.InvoiceOnlyXLSX(rec.InvoiceOnly) },
				csv:  func() ([]byte, error) { return export.InvoiceOnlyCSV(rec.InvoiceOnly) },
			},
			table{
				name: "somente_txt",
				xlsx: func() ([]byte, error) { return export.ReferenceOnlyXLSX(rec.ReferenceOnly) },
				csv:  func() ([]byte, error) { return export.ReferenceOnlyCSV(rec.ReferenceOnly) },
			},
		)
	}

	for _, tb := range tables {
		data, err := tb.xlsx()
		if err != nil {
			return fmt.Errorf("render %s: %w", tb.name, err)
		}
		if err := writeOutput(tb.name+".xlsx", data, logger); err != nil {
			return err
		}

		if !writeCSV {
			continue
		}
		data, err = tb.csv()
		if err != nil {
			return fmt.Errorf("render %s: %w", tb.name, err)
		}
		if err := writeOutput(tb.name+".csv", data, logger); err != nil {
			return err
		}
	}
	return nil
}

func writeOutput(name string, data []byte, logger *slog.Logger) error {
	path := filepath.Join(outputDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	logger.Info("table written",
		slog.String("path", path),
		slog.Int("bytes", len(data)))
	fmt.Printf("  %s\n", strings.TrimPrefix(path, "./"))
	return nil
}
