package cli

import (
	"github.com/waypointhq/waypoint-cli/internal/account"
	"github.com/waypointhq/waypoint-cli/internal/engine"
	"github.com/waypointhq/waypoint-cli/internal/planner"
	"github.com/waypointhq/waypoint-cli/internal/storage"
	"github.com/waypointhq/waypoint-cli/internal/syncer"
)

// Context carries the wired application services into every command.
type Context struct {
	Store     storage.Provider
	Engine    *engine.Engine
	Accounts  *account.Manager
	Sync      *syncer.Coordinator
	Generator *planner.Generator
}
