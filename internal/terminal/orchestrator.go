// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package terminal

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-pos-sync/internal/adapter"
	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/store"
	"github.com/MKhiriev/go-pos-sync/internal/utils"
	"github.com/MKhiriev/go-pos-sync/internal/validators"
	"github.com/MKhiriev/go-pos-sync/internal/workers"
	"github.com/MKhiriev/go-pos-sync/models"
	"github.com/sethvargo/go-retry"
)

const (
	defaultPollInterval         = 30 * time.Second
	defaultHeartbeatInterval    = time.Minute
	defaultBackoffBase          = time.Second
	defaultBackoffMax           = 2 * time.Minute
	defaultPushBatchSize        = 200
	defaultAuthFailureThreshold = 3

	// maxPullPages bounds one pull so a misbehaving server cannot keep a
	// cycle busy forever.
	maxPullPages = 1000

	statusTimeout = 2 * time.Second
)

// Config holds the orchestrator settings.
type Config struct {
	Identity models.TerminalIdentity

	// PollInterval and HeartbeatInterval apply until the server issues its
	// own values on authentication.
	PollInterval      time.Duration
	HeartbeatInterval time.Duration

	BackoffBase time.Duration
	BackoffMax  time.Duration

	PushBatchSize        int
	AuthFailureThreshold int
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.HeartbeatInterval <= 0 {
		c.HeartbeatInterval = defaultHeartbeatInterval
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = defaultBackoffBase
	}
	if c.BackoffMax < c.BackoffBase {
		c.BackoffMax = max(defaultBackoffMax, c.BackoffBase)
	}
	if c.PushBatchSize <= 0 {
		c.PushBatchSize = defaultPushBatchSize
	}
	if c.AuthFailureThreshold <= 0 {
		c.AuthFailureThreshold = defaultAuthFailureThreshold
	}
	return c
}

// Orchestrator drives the terminal side of synchronization.
//
// A sync job authenticates, bootstraps the cache and then repeatedly pulls
// catalog changes and pushes the outbox. A push job flushes the outbox right
// after a sale, and a heartbeat job reports liveness. The three jobs share
// the session held here; none of them is ever awaited by RecordSale.
type Orchestrator struct {
	cfg       Config
	adapter   adapter.ServerAdapter
	cache     *Cache
	outbox    store.OutboxStorage
	totals    *DailyTotals
	validator validators.Validator
	ids       *utils.UUIDGenerator

	mu           sync.Mutex
	state        State
	session      models.Session
	lastKind     adapter.ErrorKind
	authFailures int
	bootstrapped bool
	stopped      bool
	backoff      retry.Backoff
	nextDelay    time.Duration

	observersMu sync.RWMutex
	observers   []StatusObserver

	// pushMu keeps the sync and push jobs from sending the same entries
	// at the same time.
	pushMu sync.Mutex

	syncJob   *workers.Job
	pushJob   *workers.Job
	heartbeat *HeartbeatReporter
	jobs      *workers.Workers

	now    func() time.Time
	logger *logger.Logger
}

// NewOrchestrator wires an orchestrator around a server adapter, the catalog
// cache and the outbox. peripherals may be nil.
func NewOrchestrator(
	cfg Config,
	serverAdapter adapter.ServerAdapter,
	cache *Cache,
	outbox store.OutboxStorage,
	peripherals PeripheralStatusProvider,
	logger *logger.Logger,
) *Orchestrator {
	cfg = cfg.withDefaults()
	o := &Orchestrator{
		cfg:       cfg,
		adapter:   serverAdapter,
		cache:     cache,
		outbox:    outbox,
		totals:    NewDailyTotals(time.Now()),
		validator: validators.NewSyncValidator(),
		ids:       utils.NewUUIDGenerator(),
		state:     StateDisconnected,
		backoff:   newBackoff(cfg),
		nextDelay: cfg.PollInterval,
		now:       time.Now,
		logger:    logger.WithComponent("orchestrator"),
	}

	o.heartbeat = NewHeartbeatReporter(cfg.Identity.TerminalID, serverAdapter, o, o.totals, outbox, peripherals, cfg.HeartbeatInterval, logger)
	o.syncJob = workers.NewJob("sync", o.runCycle, o.delay, logger)
	o.pushJob = workers.NewJob("push", o.flush, o.pollInterval, logger)
	o.jobs = workers.NewWorkers(o.syncJob, o.pushJob, workers.NewJob("heartbeat", o.heartbeat.Beat, o.heartbeat.Interval, logger))
	return o
}

func newBackoff(cfg Config) retry.Backoff {
	b := retry.NewExponential(cfg.BackoffBase)
	b = retry.WithJitterPercent(20, b)
	return retry.WithCappedDuration(cfg.BackoffMax, b)
}

// AddObserver registers a status observer.
func (o *Orchestrator) AddObserver(observer StatusObserver) {
	o.observersMu.Lock()
	defer o.observersMu.Unlock()
	o.observers = append(o.observers, observer)
}

// Catalog returns the read side of the terminal cache.
func (o *Orchestrator) Catalog() Catalog {
	return o.cache
}

// Totals returns the sales counters of the current day.
func (o *Orchestrator) Totals() TotalsSnapshot {
	return o.totals.Snapshot(o.now())
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Session returns the current session and whether it is still valid.
func (o *Orchestrator) Session() (models.Session, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.session, o.session.Valid(o.now())
}

// Start moves the orchestrator to Authenticating and starts its jobs.
// The first sync cycle runs immediately. The jobs keep the values of ctx but
// not its cancellation: only Stop ends them, so in-flight requests always get
// the grace period.
func (o *Orchestrator) Start(ctx context.Context) {
	o.mu.Lock()
	if o.state != StateDisconnected || o.stopped {
		o.mu.Unlock()
		return
	}
	event := o.transitionLocked(StateAuthenticating, nil)
	o.mu.Unlock()

	o.publish(event)
	o.jobs.Start(context.WithoutCancel(ctx))
}

// Stop halts the jobs, giving in-flight work grace to finish, drops the
// session and moves to Disconnected. Cache and outbox are kept. A stopped
// orchestrator cannot be started again.
func (o *Orchestrator) Stop(grace time.Duration) {
	o.jobs.Stop(grace)
	o.adapter.SetToken("")

	o.mu.Lock()
	o.stopped = true
	o.session = models.Session{}
	wasRunning := o.state != StateDisconnected
	event := o.transitionLocked(StateDisconnected, nil)
	o.mu.Unlock()

	if wasRunning {
		o.publish(event)
	}
}

// RecordSale queues sale and the stock movements derived from its product
// lines, counts it in the daily totals and asks for an early push. It never
// waits for the network: only a rejected sale or a failed outbox write is
// returned. The stored sale is returned with its ticket number and terminal
// filled in.
func (o *Orchestrator) RecordSale(ctx context.Context, sale models.Sale) (models.Sale, error) {
	now := o.now()
	sale.TerminalID = o.cfg.Identity.TerminalID
	if sale.TicketNumber == "" {
		sale.TicketNumber = o.ids.TicketNumber(sale.TerminalID)
	}
	if sale.SoldAt.IsZero() {
		sale.SoldAt = now
	}
	if err := o.validator.Validate(ctx, sale); err != nil {
		return sale, fmt.Errorf("%w: %w", ErrInvalidSale, err)
	}

	entries := make([]models.OutboxEntry, 0, len(sale.Lines)+1)
	entries = append(entries, models.OutboxEntry{ID: o.ids.Generate(), Kind: models.OutboxSale, Sale: &sale, CreatedAt: now})
	for _, movement := range o.movementsFor(sale) {
		entries = append(entries, models.OutboxEntry{ID: o.ids.Generate(), Kind: models.OutboxMovement, Movement: &movement, CreatedAt: now})
	}

	if err := o.outbox.Append(ctx, entries...); err != nil {
		o.logger.Err(err).Str("ticket", sale.TicketNumber).Msg("failed to queue sale")
		return sale, fmt.Errorf("%w: %w", ErrOutboxWrite, err)
	}

	o.totals.AddSale(sale)
	o.logger.Info().
		Str("ticket", sale.TicketNumber).
		Int64("total", sale.Total).
		Int("movements", len(entries)-1).
		Msg("sale queued")

	o.pushJob.Trigger()
	return sale, nil
}

func (o *Orchestrator) movementsFor(sale models.Sale) []models.StockMovement {
	movements := make([]models.StockMovement, 0, len(sale.Lines))
	for _, line := range sale.Lines {
		if line.ProductID == nil {
			continue
		}
		movements = append(movements, models.StockMovement{
			IdempotencyKey: o.ids.Generate(),
			ProductID:      *line.ProductID,
			Quantity:       -line.Quantity,
			Kind:           models.MovementSale,
			TicketNumber:   sale.TicketNumber,
			OccurredAt:     sale.SoldAt,
		})
	}
	return movements
}

// RecordEvent queues an operational event such as a shift change.
func (o *Orchestrator) RecordEvent(ctx context.Context, kind, cashier, detail string) error {
	now := o.now()
	event := models.TerminalEvent{
		EventID:    o.ids.Generate(),
		Kind:       kind,
		Cashier:    cashier,
		Detail:     detail,
		OccurredAt: now,
	}
	if err := o.validator.Validate(ctx, event); err != nil {
		return fmt.Errorf("invalid terminal event: %w", err)
	}

	entry := models.OutboxEntry{ID: o.ids.Generate(), Kind: models.OutboxEvent, Event: &event, CreatedAt: now}
	if err := o.outbox.Append(ctx, entry); err != nil {
		return fmt.Errorf("%w: %w", ErrOutboxWrite, err)
	}

	o.totals.Touch(cashier, now)
	o.pushJob.Trigger()
	return nil
}

// cycle carries per-cycle bookkeeping.
type cycle struct {
	// reauthed is set once a 401 has been answered with a new session.
	reauthed bool
}

// runCycle is the sync job task: authenticate when needed, pull until the
// feed is drained, then push the outbox.
func (o *Orchestrator) runCycle(ctx context.Context) error {
	c := &cycle{}

	state := o.resume()
	if state == StateDisconnected {
		return nil
	}
	if state == StateAuthenticating {
		if err := o.authenticate(ctx); err != nil {
			return o.degrade(err)
		}
		state = o.afterAuthentication()
	}

	if err := o.pull(ctx, c); err != nil {
		return o.degrade(err)
	}
	if state == StateBootstrapping {
		o.finishBootstrap()
	}

	if err := o.push(ctx, c); err != nil {
		return o.degrade(err)
	}

	o.succeed()
	return nil
}

// flush is the push job task. It only runs in Steady and leaves
// re-authentication to the next sync cycle.
func (o *Orchestrator) flush(ctx context.Context) error {
	if o.State() != StateSteady {
		return nil
	}
	if err := o.push(ctx, &cycle{reauthed: true}); err != nil {
		return o.degrade(err)
	}
	return nil
}

// resume decides where a cycle starts and records the transition.
func (o *Orchestrator) resume() State {
	o.mu.Lock()
	target := o.state
	validSession := o.session.Valid(o.now())

	switch {
	case o.state == StateDegraded && (o.lastKind == adapter.KindAuth || !validSession):
		target = StateAuthenticating
	case o.state == StateDegraded && !o.bootstrapped:
		target = StateBootstrapping
	case o.state == StateDegraded:
		target = StateSteady
	case (o.state == StateSteady || o.state == StateBootstrapping) && !validSession:
		target = StateAuthenticating
	}

	if target == o.state {
		o.mu.Unlock()
		return target
	}
	event := o.transitionLocked(target, nil)
	o.mu.Unlock()

	o.publish(event)
	return target
}

func (o *Orchestrator) afterAuthentication() State {
	o.mu.Lock()
	target := StateSteady
	if !o.bootstrapped {
		target = StateBootstrapping
	}
	event := o.transitionLocked(target, nil)
	o.mu.Unlock()

	o.publish(event)
	return target
}

func (o *Orchestrator) finishBootstrap() {
	o.mu.Lock()
	o.bootstrapped = true
	event := o.transitionLocked(StateSteady, nil)
	o.mu.Unlock()

	o.logger.Info().Int("cached", o.cache.Snapshot().Size()).Msg("bootstrap finished")
	o.publish(event)
}

// succeed resets the backoff after a clean cycle. A push job failure that
// landed while the cycle ran is superseded by it, so Degraded goes back to
// Steady.
func (o *Orchestrator) succeed() {
	o.mu.Lock()
	o.backoff = newBackoff(o.cfg)
	o.nextDelay = o.pollIntervalLocked()
	if o.state != StateDegraded || !o.bootstrapped {
		o.mu.Unlock()
		return
	}
	event := o.transitionLocked(StateSteady, nil)
	o.mu.Unlock()

	o.publish(event)
}

// degrade records a failed cycle, schedules the next one after a backoff
// delay and returns err for the job to log.
func (o *Orchestrator) degrade(err error) error {
	kind := adapter.Classify(err)

	o.mu.Lock()
	o.lastKind = kind
	if kind == adapter.KindAuth {
		o.authFailures++
	}
	visible := kind != adapter.KindAuth || o.authFailures >= o.cfg.AuthFailureThreshold
	delay, _ := o.backoff.Next()
	o.nextDelay = delay
	event := o.transitionLocked(StateDegraded, err)
	event.Kind = kind
	event.UserVisible = visible
	o.mu.Unlock()

	o.logger.Warn().
		Err(err).
		Stringer("kind", kind).
		Dur("retry_in", delay).
		Msg("sync degraded")
	o.publish(event)
	return err
}

func (o *Orchestrator) authenticate(ctx context.Context) error {
	resp, err := o.adapter.Authenticate(ctx, models.NewAuthRequest(o.cfg.Identity, o.now()))
	if err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}

	session := resp.Session()
	o.mu.Lock()
	o.session = session
	o.authFailures = 0
	o.mu.Unlock()

	o.logger.Info().
		Str("server_id", session.ServerID).
		Time("expires_at", session.ExpiresAt).
		Msg("authenticated")
	return nil
}

// withReauth runs call and, on the first auth-class failure of the cycle,
// authenticates again and retries once.
func (o *Orchestrator) withReauth(ctx context.Context, c *cycle, call func(ctx context.Context) error) error {
	err := call(ctx)
	if adapter.Classify(err) != adapter.KindAuth || c.reauthed {
		return err
	}

	c.reauthed = true
	o.logger.Info().Err(err).Msg("session rejected, authenticating again")
	if authErr := o.authenticate(ctx); authErr != nil {
		return authErr
	}
	return call(ctx)
}

// pull applies change batches until the server reports no more changes.
func (o *Orchestrator) pull(ctx context.Context, c *cycle) error {
	for page := 1; ; page++ {
		request := o.cache.Watermarks().Request(o.cfg.Identity.TerminalID)

		var batch models.ChangeBatch
		err := o.withReauth(ctx, c, func(ctx context.Context) error {
			var callErr error
			batch, callErr = o.adapter.PullChanges(ctx, request)
			return callErr
		})
		if err != nil {
			return fmt.Errorf("pull changes: %w", err)
		}

		result := o.cache.Apply(batch)
		if batch.Len() > 0 {
			o.logger.Debug().
				Int("page", page).
				Int("upserted", result.Upserted).
				Int("evicted", result.Evicted).
				Int("skipped", result.Skipped).
				Msg("change batch applied")
		}

		switch {
		case !batch.HasMore:
			return nil
		case batch.Len() == 0:
			return ErrEmptyChangeBatch
		case page >= maxPullPages:
			o.logger.Warn().Int("pages", page).Msg("pull page limit reached, continuing next cycle")
			return nil
		}
	}
}

// push sends the outbox in batches. Entries are removed only after the
// server acknowledged the batch that carried them.
func (o *Orchestrator) push(ctx context.Context, c *cycle) error {
	o.pushMu.Lock()
	defer o.pushMu.Unlock()

	for {
		entries, err := o.outbox.Peek(ctx, o.cfg.PushBatchSize)
		if err != nil {
			return fmt.Errorf("read outbox: %w", err)
		}
		if len(entries) == 0 {
			return nil
		}

		request, ids := models.BuildPushRequest(o.cfg.Identity.TerminalID, entries, o.now())
		if err = o.dropUnsendable(ctx, entries, ids); err != nil {
			return err
		}
		if len(ids) == 0 {
			continue
		}

		var resp models.PushResponse
		err = o.withReauth(ctx, c, func(ctx context.Context) error {
			var callErr error
			resp, callErr = o.adapter.PushChanges(ctx, request)
			return callErr
		})
		if err != nil {
			return fmt.Errorf("push %d outbox entries: %w", len(ids), err)
		}

		if err = o.outbox.Remove(ctx, ids); err != nil {
			return fmt.Errorf("%w: remove acknowledged entries: %w", ErrOutboxWrite, err)
		}

		o.logger.Info().
			Int("sent", len(ids)).
			Int("processed", resp.ProcessedCount).
			Int("duplicates", resp.Duplicates).
			Strs("duplicate_tickets", resp.DuplicateTickets).
			Msg("outbox batch acknowledged")

		if len(entries) < o.cfg.PushBatchSize {
			return nil
		}
	}
}

// dropUnsendable removes entries without a payload; they would otherwise
// block the head of the outbox forever.
func (o *Orchestrator) dropUnsendable(ctx context.Context, entries []models.OutboxEntry, sendable []string) error {
	if len(sendable) == len(entries) {
		return nil
	}

	broken := make([]string, 0, len(entries)-len(sendable))
	for _, e := range entries {
		if !slices.Contains(sendable, e.ID) {
			broken = append(broken, e.ID)
		}
	}

	o.logger.Error().Strs("outbox_ids", broken).Msg("dropping outbox entries without payload")
	if err := o.outbox.Remove(ctx, broken); err != nil {
		return fmt.Errorf("%w: drop unsendable entries: %w", ErrOutboxWrite, err)
	}
	return nil
}

// delay is the sync job schedule: the poll interval when healthy, the
// backoff delay after a failure.
func (o *Orchestrator) delay() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.nextDelay
}

func (o *Orchestrator) pollInterval() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pollIntervalLocked()
}

func (o *Orchestrator) pollIntervalLocked() time.Duration {
	if d := o.session.Config.PollInterval.Std(); d > 0 {
		return d
	}
	return o.cfg.PollInterval
}

// transitionLocked changes state and builds the event to publish once the
// lock is released. o.mu must be held.
func (o *Orchestrator) transitionLocked(to State, err error) StatusEvent {
	from := o.state
	o.state = to
	if to != StateDegraded {
		o.lastKind = adapter.KindNone
	}

	o.logger.Debug().Stringer("from", from).Stringer("to", to).Msg("state changed")
	return StatusEvent{State: to, Err: err, UserVisible: err != nil, At: o.now()}
}

func (o *Orchestrator) publish(event StatusEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), statusTimeout)
	defer cancel()

	event.Pending = -1
	if n, err := o.outbox.Len(ctx); err == nil {
		event.Pending = n
	}

	o.observersMu.RLock()
	defer o.observersMu.RUnlock()
	for _, observer := range o.observers {
		observer.OnStatus(event)
	}
}
