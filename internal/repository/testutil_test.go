package repository

import (
	"context"
	"errors"
	"sync"
)

var errBackend = errors.New("disk unavailable")

type note struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func (n note) EntityID() string { return n.ID }

func seedNotes() []note {
	return []note{{ID: "n1", Text: "first"}, {ID: "n2", Text: "second"}}
}

// faultyKV wraps a MemoryKV and fails reads or writes on demand.
type faultyKV struct {
	*MemoryKV
	mu       sync.Mutex
	failGet  bool
	failPut  bool
	putCalls int
	getCalls int
}

func newFaultyKV() *faultyKV {
	return &faultyKV{MemoryKV: NewMemoryKV()}
}

func (f *faultyKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	f.getCalls++
	fail := f.failGet
	f.mu.Unlock()
	if fail {
		return nil, false, errBackend
	}
	return f.MemoryKV.Get(ctx, key)
}

func (f *faultyKV) Put(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	f.putCalls++
	fail := f.failPut
	f.mu.Unlock()
	if fail {
		return errBackend
	}
	return f.MemoryKV.Put(ctx, key, value)
}

func (f *faultyKV) puts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.putCalls
}

func (f *faultyKV) setFailures(get, put bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failGet = get
	f.failPut = put
}
