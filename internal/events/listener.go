package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/harperhq/anvil/internal/acord"
)

// FormSaver is the slice of the store the listener needs.
type FormSaver interface {
	SaveForm(ctx context.Context, companyID, formType string, payload any) (uuid.UUID, error)
}

// Listener regenerates and stores both ACORD forms whenever company memory
// changes, then announces each stored form.
type Listener struct {
	pub    Publisher
	forms  FormSaver
	mapper *acord.Mapper
	logger *slog.Logger
}

// Publisher emits form lifecycle events.
type Publisher interface {
	Publish(subject string, data any) error
}

func NewListener(pub Publisher, forms FormSaver, mapper *acord.Mapper, logger *slog.Logger) *Listener {
	return &Listener{pub: pub, forms: forms, mapper: mapper, logger: logger}
}

// Start subscribes the listener on the client's connection.
func (l *Listener) Start(client *Client) error {
	return client.Subscribe(SubjectMemoryUpdated, func(_ string, data []byte) {
		if err := l.HandleMemoryUpdated(context.Background(), data); err != nil {
			l.logger.Error("memory update handling failed", "error", err)
		}
	})
}

// HandleMemoryUpdated processes one memory.company.updated payload. Mapping
// is total, so the only failures are a malformed envelope and storage.
func (l *Listener) HandleMemoryUpdated(ctx context.Context, data []byte) error {
	var event MemoryUpdated
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("parse memory update: %w", err)
	}

	var raw any
	if len(event.Memory) > 0 {
		if err := json.Unmarshal(event.Memory, &raw); err != nil {
			return fmt.Errorf("parse memory payload: %w", err)
		}
	}

	l.logger.Info("regenerating forms from memory update", "company_id", event.CompanyID)

	forms := map[string]any{
		"acord125": l.mapper.MapACORD125(raw),
		"acord126": l.mapper.MapACORD126(raw),
	}
	for _, formType := range []string{"acord125", "acord126"} {
		id, err := l.forms.SaveForm(ctx, event.CompanyID, formType, forms[formType])
		if err != nil {
			return fmt.Errorf("store %s: %w", formType, err)
		}
		err = l.pub.Publish(SubjectFormGenerated, FormGenerated{
			CompanyID: event.CompanyID,
			FormType:  formType,
			FormID:    id.String(),
		})
		if err != nil {
			l.logger.Warn("publish form event failed", "company_id", event.CompanyID, "form_type", formType, "error", err)
		}
	}
	return nil
}
