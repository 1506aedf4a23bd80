package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prnvtripathi/tract-us/model"
	"github.com/prnvtripathi/tract-us/service"
)

func TestPurgeStaleDrafts(t *testing.T) {
	store := service.NewMemoryStore(100)
	ctx := context.Background()

	old := time.Now().AddDate(0, 0, -40)
	store.Create(ctx, &model.Contract{ID: "stale", OwnerID: "u1", Status: model.StatusDraft, CreatedAt: old})
	store.Create(ctx, &model.Contract{ID: "analyzed", OwnerID: "u1", Status: model.StatusDraft, CreatedAt: old, Analysis: map[string]any{"summary": "x"}})
	store.Create(ctx, &model.Contract{ID: "recent", OwnerID: "u1", Status: model.StatusDraft})

	PurgeStaleDrafts(store, 30)

	if _, err := store.GetByID(ctx, "stale"); !errors.Is(err, service.ErrNotFound) {
		t.Error("Expected stale draft to be purged")
	}
	for _, id := range []string{"analyzed", "recent"} {
		if _, err := store.GetByID(ctx, id); err != nil {
			t.Errorf("Expected %s to survive purge", id)
		}
	}
}

func TestStartRetention(t *testing.T) {
	store := service.NewMemoryStore(100)

	c, err := StartRetention(store, 30)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer c.Stop()

	if len(c.Entries()) != 1 {
		t.Errorf("Expected 1 scheduled entry, got %d", len(c.Entries()))
	}

	// Next run is within the coming 24 hours
	next := c.Entries()[0].Next
	if next.IsZero() || next.After(time.Now().Add(24*time.Hour)) {
		t.Errorf("Unexpected next run time: %v", next)
	}
}
