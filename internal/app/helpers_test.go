package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/freelance-ledger/internal/models"
	"gitlab.com/yelinaung/freelance-ledger/internal/repository"
)

var (
	testNow    = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	errBackend = errors.New("disk unavailable")
)

// switchKV is a MemoryKV whose reads and writes can be made to fail or to
// block until released.
type switchKV struct {
	*repository.MemoryKV
	mu      sync.Mutex
	failGet bool
	failPut bool
	gate    chan struct{}
}

func newSwitchKV() *switchKV {
	return &switchKV{MemoryKV: repository.NewMemoryKV()}
}

func (s *switchKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	fail, gate := s.failGet, s.gate
	s.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
	}
	if fail {
		return nil, false, errBackend
	}
	return s.MemoryKV.Get(ctx, key)
}

func (s *switchKV) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	fail := s.failPut
	s.mu.Unlock()
	if fail {
		return errBackend
	}
	return s.MemoryKV.Put(ctx, key, value)
}

func (s *switchKV) set(fn func(*switchKV)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}

type fixture struct {
	kv  *switchKV
	app *App
}

func sequentialIDs() func() string {
	var n atomic.Int64
	return func() string { return fmt.Sprintf("id-%d", n.Add(1)) }
}

func newFixture(t *testing.T, projects []models.Project, clients []models.Client) *fixture {
	t.Helper()
	kv := newSwitchKV()
	return &fixture{kv: kv, app: newApp(kv, projects, clients)}
}

func newApp(kv repository.KV, projects []models.Project, clients []models.Client) *App {
	return New(
		repository.NewCollection(kv, repository.KeyProjects, func() []models.Project { return projects }),
		repository.NewCollection(kv, repository.KeyClients, func() []models.Client { return clients }),
		repository.NewCurrencyPreference(kv, models.CurrencyLKR),
		models.CurrencyLKR,
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(sequentialIDs()),
	)
}

func newProject(title, clientID string, price int64, currency models.Currency) models.Project {
	return models.Project{
		Title:       title,
		ClientID:    clientID,
		ServiceType: models.ServiceWebDevelopment,
		Price:       decimal.NewFromInt(price),
		Currency:    currency,
		StartDate:   testNow.AddDate(0, 0, -10),
		DueDate:     testNow.AddDate(0, 0, 10),
	}
}

func seedClients() []models.Client {
	return []models.Client{
		{ID: "client-1", Name: "Nimal Perera", Company: "Lanka Tea"},
		{ID: "client-2", Name: "Sarah Johnson", Company: "Bright Pixel"},
	}
}

func clientIDs(clients []models.Client) []string {
	out := make([]string, len(clients))
	for i := range clients {
		out[i] = clients[i].ID
	}
	return out
}
