// Package syncer decides whether and what to push to the remote store.
// All sync failures are logged and swallowed; sync never interrupts the
// user action that triggered it.
package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/waypointhq/waypoint-cli/internal/constants"
	"github.com/waypointhq/waypoint-cli/internal/logger"
	"github.com/waypointhq/waypoint-cli/internal/models"
)

// RemoteClient pushes the payload. *remote.Client satisfies it.
type RemoteClient interface {
	UpdateAccount(ctx context.Context, userID string, payload map[string]any) error
}

// SessionSource resolves the local identity.
type SessionSource interface {
	Session() models.Session
}

// EntitlementSource answers the premium gate. Free-tier goal/plan data is
// never pushed remotely.
type EntitlementSource interface {
	HasPremium(userID string) bool
}

// StateSource is the slice of the storage provider the coordinator reads
// when building a payload.
type StateSource interface {
	GetGoalInput() (models.GoalInput, error)
	GetPlan() (*models.Plan, error)
	GetCompletedTasks() ([]string, error)
	GetStreak() (models.StreakRecord, error)
	GetSubscription() (models.Subscription, error)
}

// Coordinator serializes pushes across the debounced, forced, periodic,
// and resume triggers.
type Coordinator struct {
	remote      RemoteClient
	session     SessionSource
	entitlement EntitlementSource
	state       StateSource

	debounceWindow   time.Duration
	periodicInterval time.Duration
	resumeThreshold  time.Duration
	retryDelay       time.Duration

	now   func() time.Time
	sleep func(time.Duration)

	mu       sync.Mutex
	lastPush time.Time
	inFlight bool
	debounce *time.Timer
}

func NewCoordinator(remote RemoteClient, session SessionSource, entitlement EntitlementSource, state StateSource) *Coordinator {
	return &Coordinator{
		remote:           remote,
		session:          session,
		entitlement:      entitlement,
		state:            state,
		debounceWindow:   constants.SyncDebounceWindow,
		periodicInterval: constants.SyncPeriodicInterval,
		resumeThreshold:  constants.SyncResumeThreshold,
		retryDelay:       constants.EntitlementRetryDelay,
		now:              time.Now,
		sleep:            time.Sleep,
	}
}

// Debounced schedules a push after a short quiet window, batching rapid
// successive mutations into one sync.
func (c *Coordinator) Debounced() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.debounce != nil {
		c.debounce.Stop()
	}
	c.debounce = time.AfterFunc(c.debounceWindow, func() {
		c.SyncNow(context.Background(), false)
	})
}

// SyncNow attempts a push immediately. Forced syncs follow high-value
// mutations (plan generation, task completion, reset) and tolerate the
// entitlement cache not yet having settled after a purchase by retrying
// the premium check a few times. Errors are logged, never returned.
func (c *Coordinator) SyncNow(ctx context.Context, force bool) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		logger.Debug("Sync already in flight, skipping", "force", force)
		return
	}
	c.inFlight = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	sess := c.session.Session()
	if !sess.Registered() {
		logger.Debug("Skipping sync for guest session")
		return
	}

	if !c.confirmPremium(sess.UserID, force) {
		logger.Debug("Skipping sync without premium entitlement", "user", sess.UserID)
		return
	}

	payload, err := c.buildPayload()
	if err != nil {
		logger.Warn("Failed to build sync payload", "error", err)
		return
	}

	if err := c.remote.UpdateAccount(ctx, sess.UserID, payload); err != nil {
		logger.Warn("Sync push failed", "error", err)
		return
	}

	c.mu.Lock()
	c.lastPush = c.now()
	c.mu.Unlock()
	logger.Debug("Sync push succeeded", "user", sess.UserID)
}

// confirmPremium checks the entitlement gate. On a forced sync the check
// is retried with a short delay so a just-completed purchase is not lost
// to a not-yet-settled entitlement cache.
func (c *Coordinator) confirmPremium(userID string, force bool) bool {
	attempts := 1
	if force {
		attempts = constants.EntitlementRetries
	}
	for i := 0; i < attempts; i++ {
		if i > 0 {
			c.sleep(c.retryDelay)
		}
		if c.entitlement.HasPremium(userID) {
			return true
		}
	}
	return false
}

func (c *Coordinator) buildPayload() (map[string]any, error) {
	in, err := c.state.GetGoalInput()
	if err != nil {
		return nil, err
	}
	plan, err := c.state.GetPlan()
	if err != nil {
		return nil, err
	}
	completed, err := c.state.GetCompletedTasks()
	if err != nil {
		return nil, err
	}
	streak, err := c.state.GetStreak()
	if err != nil {
		return nil, err
	}
	sub, err := c.state.GetSubscription()
	if err != nil {
		return nil, err
	}
	return BuildPayload(in, plan, completed, streak, sub), nil
}

// RunPeriodic re-checks sync health on a fixed interval until ctx is
// cancelled. A tick is skipped when a push happened more recently than
// the interval.
func (c *Coordinator) RunPeriodic(ctx context.Context) {
	ticker := time.NewTicker(c.periodicInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.sinceLastPush() < c.periodicInterval {
				continue
			}
			c.SyncNow(ctx, false)
		}
	}
}

// OnResume handles the background-to-foreground transition: push if
// enough time has passed since the last one.
func (c *Coordinator) OnResume(ctx context.Context) {
	if c.sinceLastPush() >= c.resumeThreshold {
		c.SyncNow(ctx, false)
	}
}

func (c *Coordinator) sinceLastPush() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastPush.IsZero() {
		return c.resumeThreshold + c.periodicInterval
	}
	return c.now().Sub(c.lastPush)
}

// Stop cancels any pending debounced push.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
}
