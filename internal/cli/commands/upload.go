package commands

import (
	"context"
	"fmt"
	"os"

	"MemeShare/internal/config"
)

type uploadCmd struct{}

func (uploadCmd) Name() string        { return "upload" }
func (uploadCmd) Description() string { return "Copy a local file into image storage (static dir or MinIO)" }
func (uploadCmd) Usage() string       { return "upload <local_file> <path>" }

func (uploadCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return err
	}

	app, done, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	if err := app.Store.Put(ctx, args[1], f, st.Size()); err != nil {
		return err
	}
	u, err := app.Store.URL(ctx, args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Uploaded %s (%d bytes): %s\n", args[1], st.Size(), u)
	return nil
}

func init() { RegisterCmd(uploadCmd{}) }
