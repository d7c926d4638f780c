package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"pix-limit-service/internal/domain"
	customersvc "pix-limit-service/internal/service/customer"
)

// CustomerWriter registers customers; satisfied by the customer service.
type CustomerWriter interface {
	Create(ctx context.Context, in customersvc.CreateInput) (*domain.Customer, error)
}

// CSVImporter reads customer rows from a CSV export and registers them.
// Expected header: document_number, name, email, agency_code, account_number,
// initial_limit, initial_limit_description.
type CSVImporter struct {
	reader *csv.Reader
	writer CustomerWriter
}

func NewCSVImporter(r io.Reader, writer CustomerWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{reader: csvr, writer: writer}
}

// Run parses CSV rows and creates one customer per row. Rows whose document
// number is already registered are skipped; malformed rows abort the import.
func (i *CSVImporter) Run(ctx context.Context) (imported, skipped int, err error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, required := range []string{"document_number", "name", "email", "agency_code", "account_number"} {
		if _, ok := index[required]; !ok {
			return 0, 0, fmt.Errorf("missing required column %q", required)
		}
	}

	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, skipped, fmt.Errorf("read row: %w", err)
		}
		line++

		in, err := parseRow(record, index)
		if err != nil {
			return imported, skipped, fmt.Errorf("line %d: %w", line, err)
		}
		if _, err := i.writer.Create(ctx, in); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				skipped++
				continue
			}
			return imported, skipped, fmt.Errorf("line %d: %w", line, err)
		}
		imported++
	}

	return imported, skipped, nil
}

func parseRow(record []string, index map[string]int) (customersvc.CreateInput, error) {
	field := func(name string) string {
		idx, ok := index[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	in := customersvc.CreateInput{
		DocumentNumber: field("document_number"),
		Name:           field("name"),
		Email:          field("email"),
		AgencyCode:     field("agency_code"),
		AccountNumber:  field("account_number"),
	}

	if raw := field("initial_limit"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return customersvc.CreateInput{}, fmt.Errorf("invalid initial_limit %q", raw)
		}
		in.InitialLimitAmount = &amount
		in.InitialLimitDescription = field("initial_limit_description")
		if in.InitialLimitDescription == "" {
			in.InitialLimitDescription = "imported initial limit"
		}
	}

	return in, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}
