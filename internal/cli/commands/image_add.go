package commands

import (
	"context"
	"fmt"
	"strconv"

	"MemeShare/internal/config"
)

type imageAddCmd struct{}

func (imageAddCmd) Name() string        { return "image-add" }
func (imageAddCmd) Description() string { return "Register an image already present in storage" }
func (imageAddCmd) Usage() string       { return "image-add <title> <path> <thumb> [rating]" }

func (imageAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 3 && len(args) != 4 {
		return ErrUsage
	}
	rating := 0
	if len(args) == 4 {
		n, err := strconv.Atoi(args[3])
		if err != nil || n < 0 {
			return ErrUsage
		}
		rating = n
	}
	app, done, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	img, err := app.Gallery.AddImage(ctx, args[0], args[1], args[2], rating)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Created image %d: %s\n", img.ID, img.Title)
	return nil
}

func init() { RegisterCmd(imageAddCmd{}) }
