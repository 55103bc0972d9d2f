package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FormRecord is one stored form generation.
// Table: forms (id, company_id, form_type, payload jsonb, created_at).
type FormRecord struct {
	ID        uuid.UUID
	CompanyID string
	FormType  string
	Payload   []byte
	CreatedAt time.Time
}

// SaveForm stores a generated form payload for a company. form type is
// "acord125", "acord126", or "quickfill".
func (s *Store) SaveForm(ctx context.Context, companyID, formType string, payload any) (uuid.UUID, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal form payload: %w", err)
	}

	id := uuid.New()
	_, err = s.pool.Exec(ctx, `
		INSERT INTO forms (id, company_id, form_type, payload, created_at)
		VALUES ($1, $2, $3, $4, now())`,
		id, companyID, formType, body,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert form: %w", err)
	}
	return id, nil
}

// LatestForm returns the most recent stored form of one type for a company.
func (s *Store) LatestForm(ctx context.Context, companyID, formType string) (FormRecord, error) {
	var rec FormRecord
	err := s.pool.QueryRow(ctx, `
		SELECT id, company_id, form_type, payload, created_at
		FROM forms
		WHERE company_id = $1 AND form_type = $2
		ORDER BY created_at DESC
		LIMIT 1`,
		companyID, formType,
	).Scan(&rec.ID, &rec.CompanyID, &rec.FormType, &rec.Payload, &rec.CreatedAt)
	if err != nil {
		return FormRecord{}, fmt.Errorf("query latest form: %w", err)
	}
	return rec, nil
}

// ListForms returns every stored form for a company, newest first.
func (s *Store) ListForms(ctx context.Context, companyID string) ([]FormRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, company_id, form_type, payload, created_at
		FROM forms
		WHERE company_id = $1
		ORDER BY created_at DESC`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("query forms: %w", err)
	}
	defer rows.Close()

	var recs []FormRecord
	for rows.Next() {
		var rec FormRecord
		if err := rows.Scan(&rec.ID, &rec.CompanyID, &rec.FormType, &rec.Payload, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan form: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
