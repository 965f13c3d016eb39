package reminders

import (
	"context"
	"testing"
	"time"

	"farm-records/internal/adapters/storage/memory"
	"farm-records/internal/platform/logger"
)

func TestRunner_FirstPollLoadsBaselineAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := memory.NewKV()
	sched := NewScheduler(store, logger.Nop(), time.Hour)
	r := NewRunner(sched, time.Second, logger.Nop())

	if err := r.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := r.Start(ctx); err == nil {
		t.Fatalf("second start must fail")
	}

	st, err := sched.Status(ctx, time.Now())
	if err != nil || st.State != StateIdle || st.LastFired.IsZero() {
		t.Fatalf("unexpected status after start: %+v %v", st, err)
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	r.Stop(stopCtx)
	r.Stop(stopCtx) // idempotente
}
