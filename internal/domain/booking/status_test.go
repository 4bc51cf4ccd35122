package booking

import (
	"testing"
	"time"

	"github.com/qwiken-app/booking-api/internal/models"
)

func TestStatusBlocks(t *testing.T) {
	blocking := []Status{StatusPending, StatusConfirmed, StatusInProgress}
	for _, s := range blocking {
		if !s.Blocks() {
			t.Errorf("%s must block availability", s)
		}
	}

	released := []Status{StatusCompleted, StatusCancelled, StatusNoShow}
	for _, s := range released {
		if s.Blocks() {
			t.Errorf("%s must not block availability", s)
		}
	}
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusPending, StatusNoShow},
		{StatusConfirmed, StatusInProgress},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusCancelled},
		{StatusInProgress, StatusCompleted},
	}
	for _, c := range allowed {
		if err := CanTransition(c.from, c.to); err != nil {
			t.Errorf("%s -> %s should be allowed: %v", c.from, c.to, err)
		}
	}

	denied := []struct{ from, to Status }{
		{StatusCompleted, StatusConfirmed},
		{StatusCancelled, StatusPending},
		{StatusNoShow, StatusConfirmed},
		{StatusInProgress, StatusPending},
	}
	for _, c := range denied {
		if err := CanTransition(c.from, c.to); err == nil {
			t.Errorf("%s -> %s should be rejected", c.from, c.to)
		}
	}
}

func TestCancelStampsTimestamp(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	b := &models.Booking{Status: string(StatusPending)}

	if err := Cancel(b, now); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if b.Status != string(StatusCancelled) {
		t.Errorf("status = %s, want cancelled", b.Status)
	}
	if b.CancelledAt == nil || !b.CancelledAt.Equal(now) {
		t.Error("CancelledAt not stamped")
	}

	if err := Cancel(b, now); err == nil {
		t.Error("cancelling twice should fail")
	}
}

func TestSetStatusCompleted(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	b := &models.Booking{Status: string(StatusConfirmed)}

	if err := SetStatus(b, StatusCompleted, now); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if b.CompletedAt == nil {
		t.Error("CompletedAt not stamped")
	}
}
