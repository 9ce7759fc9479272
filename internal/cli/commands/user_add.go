package commands

import (
	"context"
	"fmt"
	"strings"

	"MemeShare/internal/config"
)

type userAddCmd struct{}

func (userAddCmd) Name() string        { return "user-add" }
func (userAddCmd) Description() string { return "Create an active account (optionally admin)" }
func (userAddCmd) Usage() string       { return "user-add <email> <short_name> <password> [admin]" }

func (userAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 3 && len(args) != 4 {
		return ErrUsage
	}
	admin := false
	if len(args) == 4 {
		switch strings.ToLower(args[3]) {
		case "admin", "true", "yes":
			admin = true
		default:
			return ErrUsage
		}
	}
	app, done, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	u, err := app.Users.CreateUser(ctx, args[0], args[1], args[2], admin)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, "Created:")
	fmt.Fprintf(Out, "  id:    %d\n", u.ID)
	fmt.Fprintf(Out, "  email: %s\n", u.Email)
	if admin {
		fmt.Fprintln(Out, "  admin: yes")
	}
	return nil
}

func init() { RegisterCmd(userAddCmd{}) }
