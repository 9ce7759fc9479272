package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"MemeShare/internal/config"
)

// fakeCmd позволяет управлять возвратом ошибок из Run
type fakeCmd struct {
	name, usage, desc string
	run               func(ctx context.Context, cfg *config.Config, args []string) error
}

func (f fakeCmd) Name() string        { return f.name }
func (f fakeCmd) Description() string { return f.desc }
func (f fakeCmd) Usage() string       { return f.usage }
func (f fakeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return f.run(ctx, cfg, args)
}

// перехват stdout на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

// tempCfg — конфигурация с базой и статикой во временном каталоге.
func tempCfg(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		DatabaseDSN:     filepath.Join(dir, "meme.db"),
		AutoMigrate:     true,
		PasswordScheme:  "bcrypt",
		PageSize:        20,
		LinkMaxAttempts: 3,
		PublicURL:       "https://memes.example.org",
		StaticDir:       filepath.Join(dir, "static"),
		StaticURL:       "/static/",
	}
}
