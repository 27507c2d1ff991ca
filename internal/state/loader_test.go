package state

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/five82/epicview/internal/epic"
)

type fakeFetcher struct {
	mu      sync.Mutex
	results []fetchResult
	calls   int
}

type fetchResult struct {
	rec epic.Record
	err error
}

func (f *fakeFetcher) FetchLatest(context.Context) (epic.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.results[f.calls%len(f.results)]
	f.calls++
	return r.rec, r.err
}

func TestLoader_RefreshSuccess(t *testing.T) {
	logger, hook := test.NewNullLogger()
	fetcher := &fakeFetcher{results: []fetchResult{{rec: firstRecord}}}
	l := NewLoader(NewStore(LastWriteWins), fetcher, logger)

	v := l.Refresh(context.Background())
	require.Equal(t, PhaseReady, v.Phase)
	require.Equal(t, firstRecord, v.Record)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.InfoLevel, entry.Level)
	require.Equal(t, "2024-01-01", entry.Data["date"])
}

func TestLoader_RefreshFailureBecomesState(t *testing.T) {
	logger, hook := test.NewNullLogger()
	fetcher := &fakeFetcher{results: []fetchResult{{err: &epic.FetchError{Message: "Network Error"}}}}
	l := NewLoader(NewStore(LastWriteWins), fetcher, logger)

	v := l.Refresh(context.Background())
	require.Equal(t, PhaseFailed, v.Phase)
	require.Equal(t, "Network Error", v.Message)
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestLoader_LoadReportsDiscardedTickets(t *testing.T) {
	fetcher := &fakeFetcher{results: []fetchResult{{rec: firstRecord}, {err: errors.New("late")}}}
	store := NewStore(DiscardStale)
	l := NewLoader(store, fetcher, nil)

	old := store.Begin()
	current := store.Begin()
	require.True(t, l.Load(context.Background(), current))
	require.False(t, l.Load(context.Background(), old))

	require.Equal(t, PhaseReady, store.Snapshot().Phase)
	require.Same(t, store, l.Store())
}
