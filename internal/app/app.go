// Package app is the single facade the front ends use to read and change
// ledger state. It owns the in-memory view of the stored collections and
// keeps it in step with storage after every mutation.
package app

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"gitlab.com/yelinaung/freelance-ledger/internal/dashboard"
	"gitlab.com/yelinaung/freelance-ledger/internal/logger"
	"gitlab.com/yelinaung/freelance-ledger/internal/models"
	"gitlab.com/yelinaung/freelance-ledger/internal/report"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"
)

const instrumentationName = "gitlab.com/yelinaung/freelance-ledger/internal/app"

// Store is a persisted, ordered collection of entities.
type Store[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Append(ctx context.Context, entity T) error
	Replace(ctx context.Context, entity T) error
	Remove(ctx context.Context, id string) error
}

// CurrencyStore persists the selected display currency.
type CurrencyStore interface {
	Load(ctx context.Context) (models.Currency, error)
	Save(ctx context.Context, code models.Currency) error
}

// Option configures an App.
type Option func(*App)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithIDGenerator overrides how IDs are assigned to new entities.
func WithIDGenerator(newID func() string) Option {
	return func(a *App) { a.newID = newID }
}

// App holds the current projects, clients and currency.
type App struct {
	projectStore  Store[models.Project]
	clientStore   Store[models.Client]
	currencyStore CurrencyStore

	now   func() time.Time
	newID func() string

	// writeMu serializes mutations so every read-modify-write sees the
	// previous one's result.
	writeMu sync.Mutex

	mu       sync.RWMutex
	projects []models.Project
	clients  []models.Client
	currency models.Currency

	pending   atomic.Int32
	mutations metric.Int64Counter
}

// New creates an App over the given stores. Until Load completes the view
// is empty and IsLoading reports true.
func New(projects Store[models.Project], clients Store[models.Client], currency CurrencyStore, fallback models.Currency, opts ...Option) *App {
	a := &App{
		projectStore:  projects,
		clientStore:   clients,
		currencyStore: currency,
		now:           time.Now,
		newID:         uuid.NewString,
		projects:      []models.Project{},
		clients:       []models.Client{},
		currency:      fallback,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.pending.Store(2)

	counter, err := otel.Meter(instrumentationName).Int64Counter(
		"ledger.mutations",
		metric.WithDescription("Number of ledger mutations by operation and outcome"),
	)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Failed to create mutation counter")
	}
	a.mutations = counter

	return a
}

// Load reads both collections and the currency preference concurrently.
// The view is always usable afterwards: unreadable collections are empty
// and an unreadable currency is the fallback. The returned error reports
// the first read failure.
func (a *App) Load(ctx context.Context) error {
	a.pending.Store(2)

	// A failure in one load must not cancel the others.
	var g errgroup.Group
	g.Go(func() error {
		defer a.pending.Add(-1)
		return a.loadProjects(ctx)
	})
	g.Go(func() error {
		defer a.pending.Add(-1)
		return a.loadClients(ctx)
	})
	g.Go(func() error {
		return a.loadCurrency(ctx)
	})

	return g.Wait()
}

// IsLoading reports whether either collection is still being read.
func (a *App) IsLoading() bool {
	return a.pending.Load() > 0
}

// Projects returns a copy of the current projects.
func (a *App) Projects() []models.Project {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.projects)
}

// Clients returns a copy of the current clients.
func (a *App) Clients() []models.Client {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.clients)
}

// Currency returns the selected display currency.
func (a *App) Currency() models.Currency {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.currency
}

// Project returns the project with the given ID.
func (a *App) Project(id string) (models.Project, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	i := slices.IndexFunc(a.projects, func(p models.Project) bool { return p.ID == id })
	if i < 0 {
		return models.Project{}, false
	}
	return a.projects[i], true
}

// Client returns the client with the given ID.
func (a *App) Client(id string) (models.Client, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	i := slices.IndexFunc(a.clients, func(c models.Client) bool { return c.ID == id })
	if i < 0 {
		return models.Client{}, false
	}
	return a.clients[i], true
}

// ClientName resolves a client ID for display.
func (a *App) ClientName(id string) string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return dashboard.ClientName(id, a.clients)
}

// DashboardView is everything the dashboard screen shows.
type DashboardView struct {
	Currency       models.Currency       `json:"currency"`
	Stats          models.DashboardStats `json:"stats"`
	StatusChart    models.ChartData      `json:"statusChart"`
	MonthlyIncome  models.ChartData      `json:"monthlyIncome"`
	RecentProjects []models.Project      `json:"recentProjects"`
}

// Dashboard derives the dashboard from the current view.
func (a *App) Dashboard(now time.Time) DashboardView {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return DashboardView{
		Currency:       a.currency,
		Stats:          dashboard.ComputeStats(a.projects, a.currency, now),
		StatusChart:    dashboard.StatusChart(a.projects),
		MonthlyIncome:  dashboard.MonthlyIncome(a.projects, a.currency, now),
		RecentProjects: dashboard.RecentProjects(a.projects, "", dashboard.RecentLimit),
	}
}

// Report generates a report for period in the selected currency.
func (a *App) Report(period models.ReportPeriod) models.Report {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return report.Generate(a.projects, a.clients, period, a.currency)
}

func (a *App) loadProjects(ctx context.Context) error {
	projects, err := a.projectStore.Load(ctx)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to load projects")
		projects = []models.Project{}
	}
	if needsCompletionDate(projects) {
		a.writeMu.Lock()
		projects = a.stampCompletions(ctx, projects)
		a.writeMu.Unlock()
	}
	a.setProjects(projects)

	if err != nil {
		return fmt.Errorf("load projects: %w", err)
	}
	return nil
}

func (a *App) loadClients(ctx context.Context) error {
	clients, err := a.clientStore.Load(ctx)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to load clients")
		clients = []models.Client{}
	}
	a.setClients(clients)

	if err != nil {
		return fmt.Errorf("load clients: %w", err)
	}
	return nil
}

func (a *App) loadCurrency(ctx context.Context) error {
	code, err := a.currencyStore.Load(ctx)
	if err != nil {
		logger.Log.Warn().Err(err).Str("currency", string(code)).Msg("Using fallback currency")
	}

	if models.IsSupportedCurrency(code) {
		a.mu.Lock()
		a.currency = code
		a.mu.Unlock()
	}

	if err != nil {
		return fmt.Errorf("load currency: %w", err)
	}
	return nil
}

// refreshProjects replaces the view with the stored projects, keeping the
// current view if storage cannot be read.
func (a *App) refreshProjects(ctx context.Context) error {
	projects, err := a.projectStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("reload projects: %w", err)
	}
	if needsCompletionDate(projects) {
		projects = a.stampCompletions(ctx, projects)
	}
	a.setProjects(projects)
	return nil
}

func needsCompletionDate(projects []models.Project) bool {
	return slices.ContainsFunc(projects, func(p models.Project) bool {
		return p.Status == models.StatusCompleted && p.CompletedDate == nil
	})
}

// stampCompletions writes a completion date of now for stored projects
// flagged completed without one, so the date is chosen once and kept.
// Projects that cannot be written are returned as stored. The caller
// holds writeMu.
func (a *App) stampCompletions(ctx context.Context, projects []models.Project) []models.Project {
	out := slices.Clone(projects)
	now := a.now()
	for i := range out {
		if out[i].Status != models.StatusCompleted || out[i].CompletedDate != nil {
			continue
		}
		stamped := models.Normalize(out[i], now)
		err := a.projectStore.Replace(ctx, stamped)
		a.record(ctx, "stamp_completion", err)
		if err != nil {
			logger.Log.Warn().Err(err).Str("project_id", logger.HashID(stamped.ID)).Msg("Failed to store completion date")
			continue
		}
		out[i] = stamped
	}
	return out
}

func (a *App) refreshClients(ctx context.Context) error {
	clients, err := a.clientStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("reload clients: %w", err)
	}
	a.setClients(clients)
	return nil
}

func (a *App) setProjects(projects []models.Project) {
	projects = models.NormalizeAll(projects, a.now())

	a.mu.Lock()
	a.projects = projects
	a.mu.Unlock()
}

func (a *App) setClients(clients []models.Client) {
	if clients == nil {
		clients = []models.Client{}
	}

	a.mu.Lock()
	a.clients = clients
	a.mu.Unlock()
}

func (a *App) record(ctx context.Context, operation string, err error) {
	if a.mutations == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	a.mutations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}
