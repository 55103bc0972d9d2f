//go:build integration

package store

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/google/uuid"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func TestIntegration_SaveAndFetchForm(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	companyID := "integration-test-" + uuid.New().String()[:8]

	payload := map[string]any{
		"date": "2026-08-31",
		"applicant_information": map[string]any{
			"named_insured": map[string]any{"name": "Acme Construction Co."},
		},
	}

	id, err := s.SaveForm(ctx, companyID, "acord125", payload)
	if err != nil {
		t.Fatalf("SaveForm failed: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("expected non-nil form ID")
	}

	rec, err := s.LatestForm(ctx, companyID, "acord125")
	if err != nil {
		t.Fatalf("LatestForm failed: %v", err)
	}
	if rec.ID != id {
		t.Errorf("expected form %s, got %s", id, rec.ID)
	}
	if rec.FormType != "acord125" {
		t.Errorf("expected form_type acord125, got %q", rec.FormType)
	}

	var stored map[string]any
	if err := json.Unmarshal(rec.Payload, &stored); err != nil {
		t.Fatalf("failed to unmarshal stored payload: %v", err)
	}
	if stored["date"] != "2026-08-31" {
		t.Errorf("expected stored date, got %v", stored["date"])
	}

	recs, err := s.ListForms(ctx, companyID)
	if err != nil {
		t.Fatalf("ListForms failed: %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("expected 1 form, got %d", len(recs))
	}
}

func TestIntegration_SaveAndListTurns(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	conversationID := "integration-test-" + uuid.New().String()[:8]

	updates := map[string]any{"deductibleAmount": 5000}
	id, err := s.SaveTurn(ctx, conversationID, "c-1", "Update the deductible to $5,000",
		"Perfect! I've updated the Deductible Amount to $5,000.", updates)
	if err != nil {
		t.Fatalf("SaveTurn failed: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("expected non-nil turn ID")
	}

	turns, err := s.ListTurns(ctx, conversationID)
	if err != nil {
		t.Fatalf("ListTurns failed: %v", err)
	}
	if len(turns) != 1 {
		t.Fatalf("expected 1 turn, got %d", len(turns))
	}
	if turns[0].UserMessage != "Update the deductible to $5,000" {
		t.Errorf("unexpected user message %q", turns[0].UserMessage)
	}

	var stored map[string]any
	if err := json.Unmarshal(turns[0].Updates, &stored); err != nil {
		t.Fatalf("failed to unmarshal stored updates: %v", err)
	}
	if stored["deductibleAmount"] != float64(5000) {
		t.Errorf("expected stored update, got %v", stored["deductibleAmount"])
	}
}
