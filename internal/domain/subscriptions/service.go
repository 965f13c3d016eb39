package subscriptions

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"farm-records/internal/domain/records"
	"farm-records/internal/platform/logger"
	"farm-records/internal/ports/kv"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNoPendingPayment = errors.New("no pending payment")
	ErrReceiptNotFound  = errors.New("receipt not found")
	ErrNotPayable       = errors.New("subscription is not an unpaid premium plan")
)

const dateLayout = "2006-01-02"

type Service struct {
	kv    kv.Store
	log   logger.Logger
	delay time.Duration

	// serializa los read-modify-write de este proceso sobre subscriptions/pending_payment
	mu sync.Mutex

	now   func() time.Time
	newID func() (string, error)
}

// NewService: delay es la espera cosmética antes de confirmar un pago (0 = sin espera).
func NewService(store kv.Store, log logger.Logger, delay time.Duration) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		kv:    store,
		log:   log.With(map[string]any{"module": "subscriptions"}),
		delay: delay,
		now:   time.Now,
		newID: func() (string, error) { return NewTransactionID(rand.Reader) },
	}
}

type SubscribeInput struct {
	Name          string
	Email         string
	Plan          string
	PaymentMethod string
}

// SubscribeResult: plan free => Subscription; premium => Pending y PaymentRequired.
type SubscribeResult struct {
	Subscription    *Subscription   `json:"subscription,omitempty"`
	Pending         *PendingPayment `json:"pending,omitempty"`
	PaymentRequired bool            `json:"payment_required"`
}

func (s *Service) Subscribe(ctx context.Context, in SubscribeInput) (SubscribeResult, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" {
		return SubscribeResult{}, fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	if email == "" || !strings.Contains(email, "@") {
		return SubscribeResult{}, fmt.Errorf("%w: valid email required", ErrInvalidInput)
	}

	plan := Plan(strings.ToLower(strings.TrimSpace(in.Plan)))
	if plan == "" {
		plan = PlanFree
	}
	if !plan.Valid() {
		return SubscribeResult{}, fmt.Errorf("%w: unknown plan %q", ErrInvalidInput, in.Plan)
	}

	method := Method(strings.ToLower(strings.TrimSpace(in.PaymentMethod)))
	if method != "" && !method.Valid() {
		return SubscribeResult{}, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, in.PaymentMethod)
	}

	today := s.now().Format(dateLayout)

	if plan == PlanPremium {
		if method == "" || method == MethodNone {
			return SubscribeResult{}, fmt.Errorf("%w: payment method required for premium", ErrInvalidInput)
		}
		p := PendingPayment{
			Name:          name,
			Email:         email,
			Plan:          plan,
			PaymentMethod: method,
			Amount:        PremiumAmount,
			Date:          today,
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		// sobrescribe cualquier pendiente anterior
		if err := s.putPending(ctx, s.kv, p); err != nil {
			return SubscribeResult{}, err
		}
		s.log.Info("premium subscription awaiting payment", map[string]any{"email": email, "method": string(method)})
		return SubscribeResult{Pending: &p, PaymentRequired: true}, nil
	}

	sub := Subscription{
		Name:          name,
		Email:         email,
		Plan:          plan,
		PaymentMethod: method,
		Date:          today,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.kv.Update(ctx, func(tx kv.Tx) error {
		subs := s.readSubs(ctx, tx)
		return records.Write(ctx, tx, records.KeySubscriptions, append([]Subscription{sub}, subs...))
	})
	if err != nil {
		return SubscribeResult{}, err
	}
	return SubscribeResult{Subscription: &sub}, nil
}

func (s *Service) List(ctx context.Context) []Subscription {
	return s.readSubs(ctx, s.kv)
}

// Pending devuelve el slot pendiente. Un slot corrupto cuenta como vacío.
func (s *Service) Pending(ctx context.Context) (PendingPayment, error) {
	return s.readPending(ctx, s.kv)
}

// ResumePayment crea el slot pendiente para la fila index (premium sin pagar)
// solo si no hay otro pendiente; si ya hay uno, lo devuelve tal cual.
func (s *Service) ResumePayment(ctx context.Context, index int) (PendingPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := s.readSubs(ctx, s.kv)
	if index < 0 || index >= len(subs) {
		return PendingPayment{}, ErrNotPayable
	}
	sub := subs[index]
	if !sub.Payable() {
		return PendingPayment{}, ErrNotPayable
	}

	cur, err := s.readPending(ctx, s.kv)
	switch {
	case err == nil:
		return cur, nil
	case !errors.Is(err, ErrNoPendingPayment):
		return PendingPayment{}, err
	}

	method := sub.PaymentMethod
	if method == "" || method == MethodNone {
		method = MethodGPay
	}
	p := PendingPayment{
		Name:          sub.Name,
		Email:         sub.Email,
		Plan:          sub.Plan,
		PaymentMethod: method,
		Amount:        PremiumAmount,
		Date:          sub.Date,
	}
	if err := s.putPending(ctx, s.kv, p); err != nil {
		return PendingPayment{}, err
	}
	return p, nil
}

// ClearPending cancela el pago pendiente (idempotente).
func (s *Service) ClearPending(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Delete(ctx, string(records.KeyPendingPayment))
}

// Pay confirma el pago pendiente: en una sola actualización atómica agrega la
// suscripción pagada (con recibo) al frente y borra el slot pendiente.
// Si la actualización falla no queda ninguna de las dos escrituras.
func (s *Service) Pay(ctx context.Context) (Receipt, error) {
	pending, err := s.Pending(ctx)
	if err != nil {
		return Receipt{}, err
	}

	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return Receipt{}, ctx.Err()
		case <-t.C:
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var receipt Receipt
	err = s.kv.Update(ctx, func(tx kv.Tx) error {
		// releer dentro de la tx: otro Pay/ClearPending pudo consumir el slot
		cur, err := s.readPending(ctx, tx)
		if err != nil {
			return err
		}
		pending = cur

		receipt, err = ConfirmPayment(pending, s.now(), s.newID)
		if err != nil {
			return err
		}

		paid := Subscription{
			Name:          pending.Name,
			Email:         pending.Email,
			Plan:          pending.Plan,
			PaymentMethod: pending.PaymentMethod,
			Amount:        pending.Amount,
			Date:          pending.Date,
			Paid:          true,
			Receipt:       &receipt,
		}
		subs := s.readSubs(ctx, tx)
		if err := records.Write(ctx, tx, records.KeySubscriptions, append([]Subscription{paid}, subs...)); err != nil {
			return err
		}
		return tx.Delete(ctx, string(records.KeyPendingPayment))
	})
	if err != nil {
		if !errors.Is(err, ErrNoPendingPayment) {
			s.log.Error("payment confirmation failed, nothing committed", map[string]any{
				"email": pending.Email,
				"err":   err,
			})
		}
		return Receipt{}, err
	}

	s.log.Info("payment confirmed", map[string]any{"tx_id": receipt.TxID, "email": receipt.Email})
	return receipt, nil
}

func (s *Service) Receipt(ctx context.Context, txID string) (Receipt, error) {
	r, ok := FindReceipt(s.List(ctx), strings.TrimSpace(txID))
	if !ok {
		return Receipt{}, ErrReceiptNotFound
	}
	return r, nil
}

func (s *Service) readSubs(ctx context.Context, r kv.Reader) []Subscription {
	subs, err := records.Read[Subscription](ctx, r, records.KeySubscriptions)
	if err != nil {
		s.log.Warn("subscriptions unreadable, using empty", map[string]any{"err": err})
		return []Subscription{}
	}
	return subs
}

func (s *Service) readPending(ctx context.Context, r kv.Reader) (PendingPayment, error) {
	raw, err := r.Get(ctx, string(records.KeyPendingPayment))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return PendingPayment{}, ErrNoPendingPayment
		}
		return PendingPayment{}, err
	}

	var p PendingPayment
	if err := json.Unmarshal(raw, &p); err != nil || (strings.TrimSpace(p.Name) == "" && strings.TrimSpace(p.Email) == "") {
		s.log.Warn("pending payment unreadable, ignoring", map[string]any{"err": err})
		return PendingPayment{}, ErrNoPendingPayment
	}
	return p, nil
}

func (s *Service) putPending(ctx context.Context, w kv.Writer, p PendingPayment) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return w.Put(ctx, string(records.KeyPendingPayment), b)
}
