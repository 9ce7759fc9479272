package commands

import (
	"context"
	"fmt"
	"strconv"

	"MemeShare/internal/config"
)

type linkCmd struct{}

func (linkCmd) Name() string        { return "link" }
func (linkCmd) Description() string { return "Generate a share code for an image" }
func (linkCmd) Usage() string       { return "link <image_id>" }

func (linkCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return ErrUsage
	}
	app, done, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	code, err := app.Links.CreateLinkFor(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Code: %s\n", code)
	fmt.Fprintf(Out, "URL:  %s/%s\n", cfg.RootURL(), code)
	return nil
}

type linksCmd struct{}

func (linksCmd) Name() string        { return "links" }
func (linksCmd) Description() string { return "List share codes issued for an image" }
func (linksCmd) Usage() string       { return "links <image_id>" }

func (linksCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return ErrUsage
	}
	app, done, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	list, err := app.Links.LinksFor(ctx, id)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "No codes")
		return nil
	}
	for _, m := range list {
		fmt.Fprintf(Out, "- %s  %s\n", m.Code, m.Created.Format("2006-01-02 15:04:05"))
	}
	return nil
}

type resolveCmd struct{}

func (resolveCmd) Name() string        { return "resolve" }
func (resolveCmd) Description() string { return "Show the image behind a share code" }
func (resolveCmd) Usage() string       { return "resolve <code>" }

func (resolveCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	app, done, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	img, err := app.Links.ImageByCode(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "- %d  %s  (%s)\n", img.ID, img.Title, img.Path)
	return nil
}

func init() {
	RegisterCmd(linkCmd{})
	RegisterCmd(linksCmd{})
	RegisterCmd(resolveCmd{})
}
