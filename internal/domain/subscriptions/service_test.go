package subscriptions

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"farm-records/internal/adapters/storage/memory"
	"farm-records/internal/domain/records"
	"farm-records/internal/platform/logger"
	"farm-records/internal/ports/kv"
)

func newTestService(store kv.Store) *Service {
	svc := NewService(store, logger.Nop(), 0)
	svc.now = func() time.Time { return time.Date(2024, 4, 1, 10, 0, 0, 0, time.Local) }
	return svc
}

func premium() SubscribeInput {
	return SubscribeInput{Name: "Ravi", Email: "ravi@farm.in", Plan: "premium", PaymentMethod: "gpay"}
}

func TestSubscribe_FreeIsStoredDirectly(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memory.NewKV())

	res, err := svc.Subscribe(ctx, SubscribeInput{Name: "A", Email: "a@x.io"})
	if err != nil {
		t.Fatal(err)
	}
	if res.PaymentRequired || res.Subscription == nil || res.Subscription.Plan != PlanFree {
		t.Fatalf("unexpected result: %+v", res)
	}

	_, _ = svc.Subscribe(ctx, SubscribeInput{Name: "B", Email: "b@x.io", Plan: "free"})
	subs := svc.List(ctx)
	if len(subs) != 2 || subs[0].Name != "B" || subs[0].Date != "2024-04-01" {
		t.Fatalf("expected most recent first, got %+v", subs)
	}
	if _, err := svc.Pending(ctx); !errors.Is(err, ErrNoPendingPayment) {
		t.Fatalf("free plan must not create a pending payment")
	}
}

func TestSubscribe_PremiumOverwritesPending(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memory.NewKV())

	_, _ = svc.Subscribe(ctx, SubscribeInput{Name: "First", Email: "f@x.io", Plan: "premium", PaymentMethod: "phonepay"})
	res, err := svc.Subscribe(ctx, premium())
	if err != nil {
		t.Fatal(err)
	}
	if !res.PaymentRequired || res.Pending == nil || res.Pending.Amount != PremiumAmount {
		t.Fatalf("unexpected result: %+v", res)
	}

	p, err := svc.Pending(ctx)
	if err != nil || p.Name != "Ravi" {
		t.Fatalf("expected latest pending, got %+v %v", p, err)
	}
	if len(svc.List(ctx)) != 0 {
		t.Fatalf("premium must not be listed before payment")
	}
}

func TestSubscribe_Validation(t *testing.T) {
	svc := newTestService(memory.NewKV())
	cases := []SubscribeInput{
		{Email: "a@x.io"},
		{Name: "A", Email: "nope"},
		{Name: "A", Email: "a@x.io", Plan: "gold"},
		{Name: "A", Email: "a@x.io", Plan: "premium"},
		{Name: "A", Email: "a@x.io", Plan: "premium", PaymentMethod: "none"},
		{Name: "A", Email: "a@x.io", Plan: "premium", PaymentMethod: "cash"},
	}
	for _, in := range cases {
		if _, err := svc.Subscribe(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
}

func TestPay_RecordsReceiptAndClearsPending(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memory.NewKV())
	svc.newID = func() (string, error) { return "TXPAID0001", nil }

	_, _ = svc.Subscribe(ctx, SubscribeInput{Name: "Old", Email: "o@x.io"})
	_, _ = svc.Subscribe(ctx, premium())

	r, err := svc.Pay(ctx)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if r.TxID != "TXPAID0001" || r.Method != MethodGPay || r.Amount != PremiumAmount || r.Name != "Ravi" {
		t.Fatalf("unexpected receipt: %+v", r)
	}

	subs := svc.List(ctx)
	if len(subs) != 2 || !subs[0].Paid || subs[0].Receipt == nil || subs[0].Receipt.TxID != r.TxID {
		t.Fatalf("expected paid subscription first, got %+v", subs)
	}
	if _, err := svc.Pending(ctx); !errors.Is(err, ErrNoPendingPayment) {
		t.Fatalf("pending payment must be cleared, got %v", err)
	}

	got, err := svc.Receipt(ctx, r.TxID)
	if err != nil || got != r {
		t.Fatalf("receipt lookup: %+v %v", got, err)
	}
	if _, err := svc.Receipt(ctx, "TXNOTHERE"); !errors.Is(err, ErrReceiptNotFound) {
		t.Fatalf("expected ErrReceiptNotFound, got %v", err)
	}

	if _, err := svc.Pay(ctx); !errors.Is(err, ErrNoPendingPayment) {
		t.Fatalf("second pay should find nothing pending, got %v", err)
	}
}

type failingDeleteKV struct{ kv.Store }

func (f failingDeleteKV) Update(ctx context.Context, fn func(tx kv.Tx) error) error {
	return f.Store.Update(ctx, func(tx kv.Tx) error { return fn(failingDeleteTx{tx}) })
}

type failingDeleteTx struct{ kv.Tx }

func (failingDeleteTx) Delete(context.Context, string) error { return errors.New("disk full") }

func TestPay_FailedUpdateCommitsNothing(t *testing.T) {
	ctx := context.Background()
	store := failingDeleteKV{memory.NewKV()}
	svc := newTestService(store)

	_, _ = svc.Subscribe(ctx, premium())
	if _, err := svc.Pay(ctx); err == nil {
		t.Fatalf("expected pay to fail")
	}

	if subs := svc.List(ctx); len(subs) != 0 {
		t.Fatalf("paid subscription leaked: %+v", subs)
	}
	if _, err := svc.Pending(ctx); err != nil {
		t.Fatalf("pending payment must survive a failed confirm, got %v", err)
	}
}

func TestPay_DelayHonoursContext(t *testing.T) {
	svc := newTestService(memory.NewKV())
	svc.delay = time.Hour
	_, _ = svc.Subscribe(context.Background(), premium())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Pay(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := svc.Pending(context.Background()); err != nil {
		t.Fatalf("pending must remain after cancelled pay")
	}
}

func TestResumePayment(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKV()
	svc := newTestService(store)

	// fila premium sin pagar (p.ej. cargada antes de existir el flujo de pago)
	_ = records.Write(ctx, store, records.KeySubscriptions, []Subscription{
		{Name: "Unpaid", Email: "u@x.io", Plan: PlanPremium, Date: "2024-03-01"},
		{Name: "Free", Email: "f@x.io", Plan: PlanFree, Date: "2024-03-01"},
	})

	if _, err := svc.ResumePayment(ctx, 1); !errors.Is(err, ErrNotPayable) {
		t.Fatalf("free row is not payable, got %v", err)
	}
	if _, err := svc.ResumePayment(ctx, 9); !errors.Is(err, ErrNotPayable) {
		t.Fatalf("out of range is not payable, got %v", err)
	}

	p, err := svc.ResumePayment(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Unpaid" || p.PaymentMethod != MethodGPay || p.Amount != PremiumAmount {
		t.Fatalf("unexpected pending: %+v", p)
	}

	// si ya hay un pendiente, no se reemplaza
	_, _ = svc.Subscribe(ctx, premium())
	p, _ = svc.ResumePayment(ctx, 0)
	if p.Name != "Ravi" {
		t.Fatalf("existing pending must be kept, got %+v", p)
	}

	if err := svc.ClearPending(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Pending(ctx); !errors.Is(err, ErrNoPendingPayment) {
		t.Fatalf("expected cleared pending")
	}
}

func TestPending_CorruptSlotIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKV()
	_ = store.Put(ctx, string(records.KeyPendingPayment), []byte(`[1,2,3]`))

	if _, err := newTestService(store).Pending(ctx); !errors.Is(err, ErrNoPendingPayment) {
		t.Fatalf("expected ErrNoPendingPayment, got %v", err)
	}
}

func TestResumePayment_ReadErrorKeepsPendingSlot(t *testing.T) {
	ctx := context.Background()
	base := memory.NewKV()
	svc := newTestService(base)

	_, _ = svc.Subscribe(ctx, premium())
	pending, _ := svc.Pending(ctx)
	subs, _ := json.Marshal([]Subscription{{Name: "Old", Email: "old@farm.in", Plan: PlanPremium, PaymentMethod: MethodPhonePay, Date: "2024-03-01"}})
	_ = base.Put(ctx, string(records.KeySubscriptions), subs)

	broken := newTestService(failingGetKVFor{Store: base, key: string(records.KeyPendingPayment)})
	if _, err := broken.ResumePayment(ctx, 0); err == nil || errors.Is(err, ErrNoPendingPayment) {
		t.Fatalf("expected storage error, got %v", err)
	}

	got, err := svc.Pending(ctx)
	if err != nil || got != pending {
		t.Fatalf("pending slot must not be overwritten, got %+v %v", got, err)
	}
}

// failingGetKVFor falla solo al leer key.
type failingGetKVFor struct {
	kv.Store
	key string
}

func (f failingGetKVFor) Get(ctx context.Context, k string) ([]byte, error) {
	if k == f.key {
		return nil, errors.New("disk error")
	}
	return f.Store.Get(ctx, k)
}
