package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/waypointhq/waypoint-cli/internal/constants"
	"github.com/waypointhq/waypoint-cli/internal/logger"
)

type WatchCmd struct{}

// Run keeps the progression core live in the foreground: the short-period
// tick detects timer completions (and fires fallback notifications), the
// long-period loop re-checks sync health, and an unusually large gap
// between ticks means the machine slept, which counts as a
// background-to-foreground resume.
func (c *WatchCmd) Run(ctx *Context) error {
	if ctx.Engine.Plan() == nil {
		fmt.Println("No plan to watch. Run 'waypoint generate \"<your goal>\"' first.")
		return nil
	}

	bg, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ctx.Sync.RunPeriodic(bg)
	defer ctx.Sync.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(constants.TimerCheckInterval)
	defer ticker.Stop()

	fmt.Println("Watching timers (Ctrl-C to stop)")
	lastTick := time.Now()
	for {
		select {
		case <-sig:
			fmt.Println("\nStopped watching")
			return nil
		case now := <-ticker.C:
			if now.Sub(lastTick) > constants.ResumeGapThreshold {
				logger.Debug("Tick gap detected, treating as resume", "gap", now.Sub(lastTick))
				ctx.Sync.OnResume(bg)
			}
			lastTick = now
			ctx.Engine.CheckTimers()
		}
	}
}
