package accounts

import (
	"fmt"

	"github.com/waypointhq/waypoint-cli/internal/cli"
	"github.com/waypointhq/waypoint-cli/internal/keyring"
	"github.com/waypointhq/waypoint-cli/internal/models"
	"github.com/waypointhq/waypoint-cli/internal/storage"
)

type LoginCmd struct {
	UserID string `arg:"" help:"Account user ID."`
	Email  string `help:"Account email."`
	Token  string `help:"API token (stored in the OS keyring)." required:""`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	if err := ctx.Accounts.Login(c.UserID, c.Email, c.Token); err != nil {
		return err
	}
	fmt.Printf("Logged in as %s\n", c.UserID)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if err := ctx.Accounts.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	sess := ctx.Accounts.Session()
	if !sess.Registered() {
		fmt.Println("Not logged in (guest mode)")
		return nil
	}

	fmt.Printf("User: %s\n", sess.UserID)
	if sess.Email != "" {
		fmt.Printf("Email: %s\n", sess.Email)
	}
	sub := ctx.Accounts.Subscription()
	if sub.Premium {
		fmt.Printf("Subscription: premium (%s via %s)\n", sub.Tier, sub.Source)
	} else {
		fmt.Println("Subscription: free")
	}
	return nil
}

type SetConnectionCmd struct {
	ConnString string `arg:"" help:"PostgreSQL connection string to store in the OS keyring."`
}

func (c *SetConnectionCmd) Run(ctx *cli.Context) error {
	if !storage.IsPostgresConnString(c.ConnString) {
		return fmt.Errorf("expected a postgres:// or postgresql:// connection string")
	}
	if err := keyring.SetConnectionString(c.ConnString); err != nil {
		return err
	}
	fmt.Println("Connection string stored in the OS keyring")
	return nil
}

type ClearConnectionCmd struct{}

func (c *ClearConnectionCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		return err
	}
	fmt.Println("Connection string removed from the OS keyring")
	return nil
}

type EntitlementCmd struct {
	Premium bool   `help:"Whether the account holds premium." negatable:""`
	Tier    string `help:"Subscription tier name."`
	Source  string `help:"Entitlement source, e.g. stripe or appstore."`
}

func (c *EntitlementCmd) Run(ctx *cli.Context) error {
	sub := models.Subscription{Premium: c.Premium, Tier: c.Tier, Source: c.Source}
	if err := ctx.Accounts.SetEntitlement(sub); err != nil {
		return err
	}
	fmt.Println("Entitlement updated")
	return nil
}
