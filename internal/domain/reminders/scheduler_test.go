package reminders

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"farm-records/internal/adapters/storage/memory"
	"farm-records/internal/domain/records"
	"farm-records/internal/platform/logger"
	"farm-records/internal/ports/kv"
)

func storedMillis(t *testing.T, store kv.Store) int64 {
	t.Helper()
	raw, err := store.Get(context.Background(), string(records.KeyWaterReminder))
	if err != nil {
		t.Fatalf("reminder timestamp not persisted: %v", err)
	}
	ms, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		t.Fatalf("timestamp is not decimal millis: %q", raw)
	}
	return ms
}

func TestPoll_FiresOnlyAfterThreshold(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKV()
	t0 := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	_ = store.Put(ctx, string(records.KeyWaterReminder), []byte(strconv.FormatInt(t0.UnixMilli(), 10)))

	s := NewScheduler(store, logger.Nop(), time.Hour)

	fired, err := s.Poll(ctx, t0.Add(59*time.Minute))
	if err != nil || fired {
		t.Fatalf("must not fire at 59m (fired=%v err=%v)", fired, err)
	}
	if storedMillis(t, store) != t0.UnixMilli() {
		t.Fatalf("timestamp must not change without firing")
	}

	at := t0.Add(61 * time.Minute)
	fired, err = s.Poll(ctx, at)
	if err != nil || !fired {
		t.Fatalf("must fire at 61m (fired=%v err=%v)", fired, err)
	}
	if storedMillis(t, store) != at.UnixMilli() {
		t.Fatalf("expected persisted %d, got %d", at.UnixMilli(), storedMillis(t, store))
	}

	// mismo minuto: no vuelve a disparar
	fired, _ = s.Poll(ctx, at.Add(time.Minute))
	if fired {
		t.Fatalf("must fire exactly once per threshold window")
	}

	st, _ := s.Status(ctx, at)
	if st.State != StateFired || !st.NextDue.Equal(at.Add(time.Hour)) {
		t.Fatalf("unexpected status: %+v", st)
	}
}

func TestLoad_FirstRunPersistsBaseline(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKV()
	now := time.Date(2024, 2, 2, 10, 0, 0, 0, time.UTC)

	s := NewScheduler(store, logger.Nop(), time.Hour)
	fired, err := s.Poll(ctx, now)
	if err != nil || fired {
		t.Fatalf("first load must not fire (fired=%v err=%v)", fired, err)
	}
	if storedMillis(t, store) != now.UnixMilli() {
		t.Fatalf("baseline must be persisted as now")
	}
}

func TestLoad_CorruptValueResetsBaseline(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKV()
	_ = store.Put(ctx, string(records.KeyWaterReminder), []byte("yesterday-ish"))
	now := time.Date(2024, 2, 2, 10, 0, 0, 0, time.UTC)

	s := NewScheduler(store, logger.Nop(), time.Hour)
	if err := s.Load(ctx, now); err != nil {
		t.Fatal(err)
	}
	if storedMillis(t, store) != now.UnixMilli() {
		t.Fatalf("corrupt value must be replaced by now")
	}
}

func TestRestartDoesNotRefire(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKV()
	t0 := time.Date(2024, 3, 3, 6, 0, 0, 0, time.UTC)
	_ = store.Put(ctx, string(records.KeyWaterReminder), []byte(strconv.FormatInt(t0.UnixMilli(), 10)))

	first := NewScheduler(store, logger.Nop(), time.Hour)
	if fired, _ := first.Poll(ctx, t0.Add(2*time.Hour)); !fired {
		t.Fatalf("expected fire")
	}

	restarted := NewScheduler(store, logger.Nop(), time.Hour)
	if fired, _ := restarted.Poll(ctx, t0.Add(2*time.Hour+time.Minute)); fired {
		t.Fatalf("restart must not re-fire inside the window")
	}
}

func TestAcknowledge(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKV()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewScheduler(store, logger.Nop(), time.Hour)
	_ = s.Load(ctx, t0)
	_, _ = s.Poll(ctx, t0.Add(time.Hour))

	if err := s.Acknowledge(ctx, "snooze"); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
	if err := s.Acknowledge(ctx, ActionRecordNow); err != nil {
		t.Fatal(err)
	}

	st, _ := s.Status(ctx, t0.Add(time.Hour))
	if st.State != StateIdle || !st.LastFired.Equal(t0.Add(time.Hour)) {
		t.Fatalf("ack must go idle without touching last fired: %+v", st)
	}
}

type failingPutKV struct{ kv.Store }

func (failingPutKV) Put(context.Context, string, []byte) error { return errors.New("quota exceeded") }

func TestPoll_PersistFailureDoesNotFire(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewKV()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_ = inner.Put(ctx, string(records.KeyWaterReminder), []byte(strconv.FormatInt(t0.UnixMilli(), 10)))

	s := NewScheduler(failingPutKV{inner}, logger.Nop(), time.Hour)
	fired, err := s.Poll(ctx, t0.Add(2*time.Hour))
	if err == nil || fired {
		t.Fatalf("expected persist error without firing, got fired=%v err=%v", fired, err)
	}
	st, _ := s.Status(ctx, t0.Add(2*time.Hour))
	if st.State != StateIdle {
		t.Fatalf("state must stay idle when persist fails")
	}
}
