package state

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/five82/epicview/internal/epic"
)

// Loader runs the fetch for a ticket and settles the store with the outcome.
type Loader struct {
	store  *Store
	client epic.LatestFetcher
	log    logrus.FieldLogger
}

// NewLoader returns a Loader. A nil logger discards output.
func NewLoader(store *Store, client epic.LatestFetcher, log logrus.FieldLogger) *Loader {
	if log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		log = quiet
	}
	return &Loader{store: store, client: client, log: log}
}

// Store returns the store the loader settles.
func (l *Loader) Store() *Store {
	return l.store
}

// Load fetches the latest record for ticket t and settles the store. It
// reports whether the outcome was applied. Failures never propagate; they
// become view state.
func (l *Loader) Load(ctx context.Context, t Ticket) bool {
	rec, err := l.client.FetchLatest(ctx)
	applied := l.store.Settle(t, rec, err)

	entry := l.log.WithField("seq", uint64(t))
	switch {
	case !applied:
		entry.Debug("stale response discarded")
	case err != nil:
		entry.WithField("phase", PhaseFailed.String()).Warnf("latest record failed: %s", epic.Message(err))
	default:
		entry.WithFields(logrus.Fields{"phase": PhaseReady.String(), "date": rec.Date}).Info("latest record loaded")
	}
	return applied
}

// Refresh enters loading and runs a load to completion.
func (l *Loader) Refresh(ctx context.Context) View {
	l.Load(ctx, l.store.Begin())
	return l.store.Snapshot()
}
