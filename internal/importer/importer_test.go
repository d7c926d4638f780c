package importer

import (
	"context"
	"strings"
	"testing"

	"pix-limit-service/internal/domain"
	customersvc "pix-limit-service/internal/service/customer"
)

type stubWriter struct {
	created []customersvc.CreateInput
	known   map[string]bool
}

func (s *stubWriter) Create(_ context.Context, in customersvc.CreateInput) (*domain.Customer, error) {
	doc, err := domain.NormalizeDocument(in.DocumentNumber)
	if err != nil {
		return nil, err
	}
	if s.known[doc] {
		return nil, domain.ErrAlreadyExists
	}
	s.known[doc] = true
	s.created = append(s.created, in)
	return &domain.Customer{DocumentNumber: doc}, nil
}

const sampleCSV = `document_number,name,email,agency_code,account_number,initial_limit,initial_limit_description
529.982.247-25,Maria Silva,maria@example.com,0001,123456-7,1000,starting limit
12.345.678/0001-95,Padaria Centro,contato@example.com,0002,765432-1,,
529.982.247-25,Maria Duplicada,dup@example.com,0001,123456-7,500,dup
`

func TestRun_ImportsAndSkipsDuplicates(t *testing.T) {
	writer := &stubWriter{known: make(map[string]bool)}
	imp := NewCSVImporter(strings.NewReader(sampleCSV), writer)

	imported, skipped, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if imported != 2 || skipped != 1 {
		t.Fatalf("imported=%d skipped=%d, want 2/1", imported, skipped)
	}

	first := writer.created[0]
	if first.InitialLimitAmount == nil || first.InitialLimitAmount.String() != "1000" {
		t.Fatalf("first row initial limit %v", first.InitialLimitAmount)
	}
	if first.InitialLimitDescription != "starting limit" {
		t.Fatalf("first row description %q", first.InitialLimitDescription)
	}

	second := writer.created[1]
	if second.InitialLimitAmount != nil {
		t.Fatalf("second row should have no initial limit, got %v", second.InitialLimitAmount)
	}
}

func TestRun_RejectsMissingColumns(t *testing.T) {
	imp := NewCSVImporter(strings.NewReader("name,email\nMaria,m@example.com\n"), &stubWriter{})
	if _, _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("missing columns should fail")
	}
}

func TestRun_AbortsOnMalformedLimit(t *testing.T) {
	csv := "document_number,name,email,agency_code,account_number,initial_limit\n52998224725,Maria,m@example.com,0001,123456-7,lots\n"
	imp := NewCSVImporter(strings.NewReader(csv), &stubWriter{known: make(map[string]bool)})
	if _, _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("malformed initial_limit should fail")
	}
}
