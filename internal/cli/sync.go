package cli

import (
	"context"
	"fmt"
)

type SyncCmd struct {
	Force bool `help:"Force an immediate push, retrying the premium check."`
}

func (c *SyncCmd) Run(ctx *Context) error {
	sess := ctx.Accounts.Session()
	if !sess.Registered() {
		fmt.Println("Not logged in; nothing to sync. Run 'waypoint account login' first.")
		return nil
	}
	if !ctx.Accounts.HasPremium(sess.UserID) && !c.Force {
		fmt.Println("Remote sync requires a premium subscription.")
		return nil
	}

	ctx.Sync.SyncNow(context.Background(), c.Force)
	fmt.Println("Sync attempted (see log for details)")
	return nil
}
