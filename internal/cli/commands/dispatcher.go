package commands

import (
	"MemeShare/internal/config"
	"MemeShare/internal/service"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"
)

// Коды завершения memectl.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2
	ExitNotFound = 3
)

// Dispatch запускает команду из args и возвращает код завершения процесса.
// Справка печатается в Out.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	if slices.ContainsFunc(os.Args[1:], func(a string) bool { return a == "--help" || a == "-h" }) {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitOK
	}
	if !flag.Parsed() {
		flag.Parse()
	}

	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	name := strings.ToLower(args[0])
	if name == "help" {
		return help(args[1:])
	}

	c, ok := Get(name)
	if !ok {
		unknown(name)
		return ExitUsage
	}
	return report(c, c.Run(ctx, cfg, args[1:]))
}

// help: memectl help [command]
func help(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitOK
	}
	c, ok := Get(args[0])
	if !ok {
		unknown(args[0])
		return ExitUsage
	}
	fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
	return ExitOK
}

func unknown(name string) {
	fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
	fmt.Fprint(Out, FormatGlobalUsage())
}

// report переводит ошибку команды в сообщение и код завершения.
func report(c Command, err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return ExitUsage
	case errors.Is(err, service.ErrImageNotFound), errors.Is(err, service.ErrCodeNotFound):
		fmt.Fprintf(Out, "%s: %v\n", c.Name(), err)
		return ExitNotFound
	default:
		fmt.Fprintf(Out, "%s error: %v\n", c.Name(), err)
		return ExitFailure
	}
}
