package reminders

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"farm-records/internal/platform/logger"

	"github.com/robfig/cron/v3"
)

// Runner llama Poll cada intervalo. El disparo puede atrasarse hasta un intervalo.
type Runner struct {
	mu sync.Mutex

	sched    *Scheduler
	log      logger.Logger
	interval time.Duration
	now      func() time.Time

	cron    *cron.Cron
	ctx     context.Context
	running bool
}

func NewRunner(sched *Scheduler, interval time.Duration, log logger.Logger) *Runner {
	if log == nil {
		log = logger.Nop()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Runner{
		sched:    sched,
		log:      log.With(map[string]any{"module": "reminders"}),
		interval: interval,
		now:      time.Now,
	}
}

// Start programa el poll con "@every <intervalo>" y hace un primer poll
// inmediato (carga la línea base).
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return errors.New("reminder runner already running")
	}

	c := cron.New(cron.WithChain(cron.Recover(cronLogger{r.log}), cron.SkipIfStillRunning(cronLogger{r.log})))
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", r.interval), r.tick); err != nil {
		return fmt.Errorf("schedule reminder poll: %w", err)
	}

	r.ctx = ctx
	r.cron = c
	r.running = true

	r.pollOnce(ctx)
	c.Start()
	r.log.Info("reminder runner started", map[string]any{"interval": r.interval.String()})
	return nil
}

// Stop detiene el cron y espera el tick en curso (o hasta que ctx venza).
func (r *Runner) Stop(ctx context.Context) {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	c := r.cron
	r.running = false
	r.mu.Unlock()

	select {
	case <-c.Stop().Done():
	case <-ctx.Done():
	}
}

func (r *Runner) tick() {
	r.mu.Lock()
	ctx := r.ctx
	r.mu.Unlock()
	if ctx == nil || ctx.Err() != nil {
		return
	}
	r.pollOnce(ctx)
}

func (r *Runner) pollOnce(ctx context.Context) {
	if _, err := r.sched.Poll(ctx, r.now()); err != nil {
		r.log.Error("reminder poll failed", map[string]any{"err": err})
	}
}

// cronLogger adapta nuestro logger a cron.Logger.
type cronLogger struct{ log logger.Logger }

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, kvFields(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	f := kvFields(keysAndValues)
	f["err"] = err
	l.log.Error("cron: "+msg, f)
}

func kvFields(kv []any) map[string]any {
	out := map[string]any{}
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			out[k] = kv[i+1]
		}
	}
	return out
}
