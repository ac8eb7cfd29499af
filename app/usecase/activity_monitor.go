package usecase

import (
	"context"
	"log/slog"
	"time"

	"portal-auth/app/port"
)

// ActivityMonitor sweeps the session store on an interval and signs out
// sessions idle past the threshold. Timeout enforcement lives here and
// only here; nothing else may destroy a session for inactivity.
type ActivityMonitor struct {
	store     port.SessionStore
	auth      port.AuthUsecase
	threshold time.Duration
	interval  time.Duration
	logger    *slog.Logger
	now       func() time.Time

	stop chan struct{}
	done chan struct{}
}

// NewActivityMonitor creates a new ActivityMonitor instance
func NewActivityMonitor(
	store port.SessionStore,
	auth port.AuthUsecase,
	threshold, interval time.Duration,
	logger *slog.Logger,
) *ActivityMonitor {
	return &ActivityMonitor{
		store:     store,
		auth:      auth,
		threshold: threshold,
		interval:  interval,
		logger:    logger.With("component", "activity_monitor"),
		now:       time.Now,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start launches the sweep loop. It returns immediately; Stop shuts the
// loop down and waits for the in-flight sweep to finish.
func (m *ActivityMonitor) Start(ctx context.Context) {
	ticker := time.NewTicker(m.interval)

	go func() {
		defer close(m.done)
		defer ticker.Stop()

		m.logger.Info("activity monitor started",
			"threshold", m.threshold, "interval", m.interval)

		for {
			select {
			case <-ticker.C:
				m.Sweep(ctx)
			case <-m.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop terminates the sweep loop.
func (m *ActivityMonitor) Stop() {
	close(m.stop)
	<-m.done
	m.logger.Info("activity monitor stopped")
}

// Sweep signs out every tracked session idle past the threshold. Exactly
// one sign-out per expired session: the session store drops the entry
// during SignOut, so the next sweep no longer sees it. Sessions exactly at
// the threshold are left alone.
func (m *ActivityMonitor) Sweep(ctx context.Context) {
	now := m.now()

	for _, session := range m.store.Active() {
		idle := session.IdleFor(now)
		if idle <= m.threshold {
			continue
		}

		m.logger.Info("session timed out",
			"identity_id", session.Identity.ID, "idle", idle)

		if err := m.auth.SignOut(ctx, session.Identity.ID); err != nil {
			m.logger.Error("timeout sign-out failed",
				"identity_id", session.Identity.ID, "error", err)
		}
	}
}
