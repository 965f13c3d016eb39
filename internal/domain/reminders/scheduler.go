package reminders

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"farm-records/internal/domain/records"
	"farm-records/internal/platform/logger"
	"farm-records/internal/ports/kv"
)

// State del recordatorio de agua.
// @Enum idle, fired
type State string

const (
	StateIdle  State = "idle"
	StateFired State = "fired"
)

// Action con la que el usuario atiende un recordatorio.
// @Enum dismiss, record_now
type Action string

const (
	ActionDismiss   Action = "dismiss"
	ActionRecordNow Action = "record_now"
)

const (
	DefaultThreshold = time.Hour
	DefaultInterval  = 60 * time.Second
)

var ErrInvalidAction = errors.New("invalid action")

type Status struct {
	State     State     `json:"state"`
	LastFired time.Time `json:"last_fired"`
	NextDue   time.Time `json:"next_due"`
}

// Scheduler decide cuándo dispara el recordatorio de agua.
// lastFired se persiste (epoch ms) apenas cambia, así un reinicio no re-dispara.
type Scheduler struct {
	kv        kv.Store
	log       logger.Logger
	threshold time.Duration

	mu        sync.Mutex
	loaded    bool
	state     State
	lastFired time.Time
}

func NewScheduler(store kv.Store, log logger.Logger, threshold time.Duration) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Scheduler{
		kv:        store,
		log:       log.With(map[string]any{"module": "reminders"}),
		threshold: threshold,
		state:     StateIdle,
	}
}

// Load lee lastFired. Sin valor (o ilegible) la línea base es now y se persiste.
func (s *Scheduler) Load(ctx context.Context, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx, now)
}

func (s *Scheduler) loadLocked(ctx context.Context, now time.Time) error {
	if s.loaded {
		return nil
	}

	raw, err := s.kv.Get(ctx, string(records.KeyWaterReminder))
	switch {
	case err == nil:
		if t, ok := parseMillis(raw); ok {
			s.lastFired = t
			s.loaded = true
			return nil
		}
		s.log.Warn("reminder timestamp unreadable, resetting baseline", map[string]any{"raw": string(raw)})
	case !errors.Is(err, kv.ErrNotFound):
		return err
	}

	if err := s.persist(ctx, now); err != nil {
		return err
	}
	s.lastFired = now
	s.loaded = true
	return nil
}

// Poll dispara si pasó el umbral desde el último disparo. Si sigue Fired sin
// atender y vuelve a pasar el umbral, dispara de nuevo.
func (s *Scheduler) Poll(ctx context.Context, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx, now); err != nil {
		return false, err
	}
	if now.Sub(s.lastFired) < s.threshold {
		return false, nil
	}

	if err := s.persist(ctx, now); err != nil {
		return false, err
	}
	s.lastFired = now
	s.state = StateFired
	s.log.Info("water reminder fired", map[string]any{"at": now.Format(time.RFC3339)})
	return true, nil
}

// Acknowledge vuelve a Idle. No modifica lastFired.
func (s *Scheduler) Acknowledge(ctx context.Context, action Action) error {
	switch action {
	case ActionDismiss, ActionRecordNow:
	default:
		return ErrInvalidAction
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	return nil
}

func (s *Scheduler) Status(ctx context.Context, now time.Time) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx, now); err != nil {
		return Status{}, err
	}
	return Status{
		State:     s.state,
		LastFired: s.lastFired,
		NextDue:   s.lastFired.Add(s.threshold),
	}, nil
}

func (s *Scheduler) persist(ctx context.Context, t time.Time) error {
	return s.kv.Put(ctx, string(records.KeyWaterReminder), []byte(strconv.FormatInt(t.UnixMilli(), 10)))
}

func parseMillis(raw []byte) (time.Time, bool) {
	ms, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil || ms <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}
