package events

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/harperhq/anvil/internal/acord"
)

type fakeSaver struct {
	saved []string // "companyID/formType"
	fail  bool
}

func (f *fakeSaver) SaveForm(_ context.Context, companyID, formType string, _ any) (uuid.UUID, error) {
	if f.fail {
		return uuid.Nil, context.DeadlineExceeded
	}
	f.saved = append(f.saved, companyID+"/"+formType)
	return uuid.New(), nil
}

type fakePub struct {
	events []FormGenerated
}

func (f *fakePub) Publish(_ string, data any) error {
	if event, ok := data.(FormGenerated); ok {
		f.events = append(f.events, event)
	}
	return nil
}

func testListener(saver *fakeSaver, pub *fakePub) *Listener {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewListener(pub, saver, acord.NewMapper("Harper Insurance"), logger)
}

func TestHandleMemoryUpdated(t *testing.T) {
	saver := &fakeSaver{}
	pub := &fakePub{}
	l := testListener(saver, pub)

	payload := `{
		"company_id": "c-42",
		"memory": {"company": {"json": {"company": {"company_name": "Acme Construction Co."}}}}
	}`

	if err := l.HandleMemoryUpdated(context.Background(), []byte(payload)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(saver.saved) != 2 {
		t.Fatalf("saved = %v, want both form types", saver.saved)
	}
	if saver.saved[0] != "c-42/acord125" || saver.saved[1] != "c-42/acord126" {
		t.Errorf("saved = %v", saver.saved)
	}
	if len(pub.events) != 2 {
		t.Fatalf("published = %d events, want 2", len(pub.events))
	}
	if pub.events[0].FormID == "" {
		t.Error("expected the stored form id in the event")
	}
}

func TestHandleMemoryUpdated_MissingMemoryStillMaps(t *testing.T) {
	saver := &fakeSaver{}
	pub := &fakePub{}
	l := testListener(saver, pub)

	// mapping is total; an id-only event produces empty-default forms
	if err := l.HandleMemoryUpdated(context.Background(), []byte(`{"company_id":"c-1"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(saver.saved) != 2 {
		t.Errorf("saved = %v", saver.saved)
	}
}

func TestHandleMemoryUpdated_BadPayload(t *testing.T) {
	l := testListener(&fakeSaver{}, &fakePub{})

	if err := l.HandleMemoryUpdated(context.Background(), []byte(`not json`)); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestHandleMemoryUpdated_StoreFailure(t *testing.T) {
	l := testListener(&fakeSaver{fail: true}, &fakePub{})

	payload := `{"company_id":"c-1","memory":{}}`
	if err := l.HandleMemoryUpdated(context.Background(), []byte(payload)); err == nil {
		t.Fatal("expected error when storage fails")
	}
}
