package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"MemeShare/internal/config"
)

type imagesCmd struct{}

func (imagesCmd) Name() string        { return "images" }
func (imagesCmd) Description() string { return "List one page of images, optionally filtered by title" }
func (imagesCmd) Usage() string       { return "images [page] [query]" }

func (imagesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 2 {
		return ErrUsage
	}
	page := 1
	if len(args) >= 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return ErrUsage
		}
		page = n
	}
	query := ""
	if len(args) == 2 {
		query = strings.TrimSpace(args[1])
	}

	app, done, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	pages, err := app.Gallery.PageCount(ctx, query)
	if err != nil {
		return err
	}
	thumbs, err := app.Gallery.Thumbs(ctx, page, query)
	if err != nil {
		return err
	}
	if len(thumbs) == 0 {
		fmt.Fprintln(Out, "No images")
		return nil
	}
	for _, t := range thumbs {
		fmt.Fprintf(Out, "- %d  %s  (%s)\n", t.ID, t.Title, t.PathThumb)
	}
	fmt.Fprintf(Out, "Page %d of %d\n", max(page, 1), pages)
	return nil
}

func init() { RegisterCmd(imagesCmd{}) }
