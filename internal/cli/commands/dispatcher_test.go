package commands

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"MemeShare/internal/config"
	"MemeShare/internal/service"
)

func TestDispatcher_HelpAndUnknown(t *testing.T) {
	// зарегистрированы команды из init()
	out := withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{}) })
	if !strings.Contains(out, "MemeShare admin CLI") {
		t.Fatalf("global help expected")
	}
	for _, name := range []string{"user-add", "image-add", "images", "link", "links", "resolve", "upload"} {
		if !strings.Contains(out, name) {
			t.Fatalf("help must list %s", name)
		}
	}

	out = withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"help"}) })
	if !strings.Contains(out, "Usage:") {
		t.Fatalf("usage expected")
	}

	var code int
	out = withStdoutCapture(t, func() { code = Dispatch(context.Background(), &config.Config{}, []string{"help", "link"}) })
	if code != 0 || !strings.Contains(out, "Usage: link <image_id>") {
		t.Fatalf("expected usage of link, got %d %q", code, out)
	}

	out = withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"help", "nope"}) })
	if !strings.Contains(out, "Unknown command") {
		t.Fatalf("unknown command message expected")
	}

	withStdoutCapture(t, func() { code = Dispatch(context.Background(), &config.Config{}, []string{"no-such"}) })
	if code != 2 {
		t.Fatalf("expected 2 for unknown command, got %d", code)
	}
}

func TestDispatcher_RunPaths(t *testing.T) {
	// зарегистрируем временную команду
	cmdOK := fakeCmd{name: "x", usage: "x", desc: "", run: func(_ context.Context, _ *config.Config, _ []string) error { return nil }}
	RegisterCmd(cmdOK)
	if code := Dispatch(context.Background(), &config.Config{}, []string{"x"}); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	cmdUsage := fakeCmd{name: "u", usage: "u <arg>", desc: "", run: func(_ context.Context, _ *config.Config, _ []string) error { return ErrUsage }}
	RegisterCmd(cmdUsage)
	out := withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"u"}) })
	if !strings.Contains(out, "Usage: u <arg>") {
		t.Fatalf("usage text expected")
	}

	cmdErr := fakeCmd{name: "e", usage: "e", desc: "", run: func(_ context.Context, _ *config.Config, _ []string) error { return fmt.Errorf("boom") }}
	RegisterCmd(cmdErr)
	out = withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"e"}) })
	if !strings.Contains(out, "e error: boom") {
		t.Fatalf("error line expected, got: %s", out)
	}
}

func TestDispatcher_NotFoundExitCode(t *testing.T) {
	for name, err := range map[string]error{
		"nf-image": service.ErrImageNotFound,
		"nf-code":  fmt.Errorf("resolve: %w", service.ErrCodeNotFound),
	} {
		run := func(_ context.Context, _ *config.Config, _ []string) error { return err }
		RegisterCmd(fakeCmd{name: name, usage: name, desc: "", run: run})

		var code int
		out := withStdoutCapture(t, func() { code = Dispatch(context.Background(), &config.Config{}, []string{name}) })
		if code != ExitNotFound {
			t.Fatalf("%s: expected exit %d, got %d", name, ExitNotFound, code)
		}
		if !strings.Contains(out, "not found") {
			t.Fatalf("%s: not found message expected, got %q", name, out)
		}
	}
}
