package commands

import (
	"MemeShare/internal/cli/bootstrap"
	"MemeShare/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// ErrUsage возвращается командой при неверных аргументах; диспетчер печатает Usage.
var ErrUsage = errors.New("usage")

// Command — подкоманда memectl.
type Command interface {
	// Name — имя команды в командной строке, например "link".
	Name() string
	// Description — однострочное описание для справки.
	Description() string
	// Usage — точная строка использования, например "link <image_id>".
	Usage() string
	// Run выполняет команду; args без имени команды.
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

var registry = map[string]Command{}

// Out — общий writer для вывода CLI. В тестах переназначается.
var Out io.Writer = os.Stdout

// Logger передаётся сервисам, которые открывают команды. main подменяет его.
var Logger = zap.NewNop().Sugar()

// openApp открывает базу и сервисы на время одной команды.
func openApp(cfg *config.Config) (*bootstrap.App, func() error, error) {
	return bootstrap.Open(cfg, Logger)
}

// RegisterCmd регистрирует команду. Вызывается из init() файла команды.
func RegisterCmd(cmd Command) {
	registry[cmd.Name()] = cmd
}

// Get возвращает команду по имени.
func Get(name string) (Command, bool) {
	c, ok := registry[name]
	return c, ok
}

// List возвращает зарегистрированные команды в алфавитном порядке.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	slices.SortFunc(list, func(a, b Command) int { return strings.Compare(a.Name(), b.Name()) })
	return list
}

// FormatGlobalUsage собирает общую справку по всем командам.
func FormatGlobalUsage() string {
	var b strings.Builder
	b.WriteString("MemeShare admin CLI\n\n")
	b.WriteString("Usage:\n")
	b.WriteString("  memectl [-d <sqlite file|postgres DSN>] [-c <config file>] <command> [args]\n\n")
	b.WriteString("Commands:\n")
	for _, c := range List() {
		fmt.Fprintf(&b, "  %-44s %s\n", c.Usage(), c.Description())
	}
	b.WriteString("\nEnvironment:\n")
	b.WriteString("  DATABASE_URI, PUBLIC_URL, PASSWORD_SCHEME, STATIC_DIR, MINIO_*\n")
	return b.String()
}
