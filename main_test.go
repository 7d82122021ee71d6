package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"bloglist/app/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	err := app.Run(append([]string{"bloglist"}, args...))
	return out.String(), err
}

func testConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "badger")
	body := fmt.Sprintf(`
auth:
  secret: test-secret
  bcrypt_cost: 4
storage:
  driver: badger
  badger:
    path: %s
    backup_dir: %s
log:
  level: error
`, dbPath, filepath.Join(dir, "backups"))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path, dbPath
}

func TestUserCreateAndStats(t *testing.T) {
	cfgPath, _ := testConfig(t)

	out, err := runApp(t, "--config", cfgPath, "user", "create", "--username", "root", "--name", "Superuser", "--password", "sekret")
	require.NoError(t, err)
	assert.Contains(t, out, "Created user root")

	_, err = runApp(t, "--config", cfgPath, "user", "create", "--username", "root", "--password", "sekret")
	assert.ErrorContains(t, err, "username must be unique")

	out, err = runApp(t, "--config", cfgPath, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, `"totalLikes": 0`)
	assert.Contains(t, out, `"favouritePost": null`)
}

func TestDBCommands(t *testing.T) {
	cfgPath, dbPath := testConfig(t)

	_, err := runApp(t, "--config", cfgPath, "db", "init")
	require.NoError(t, err)
	assert.DirExists(t, dbPath)

	out, err := runApp(t, "--config", cfgPath, "db", "backup")
	require.NoError(t, err)
	assert.Contains(t, out, "backed up")

	_, err = runApp(t, "--config", cfgPath, "db", "restore")
	assert.Error(t, err)

	_, err = runApp(t, "--config", cfgPath, "db", "--force", "clean")
	require.NoError(t, err)
	assert.NoDirExists(t, dbPath)
}

func TestServeRequiresSecret(t *testing.T) {
	t.Setenv("BLOGLIST_SECRET", "")
	t.Setenv("SECRET", "")
	_, err := runApp(t, "serve")
	assert.ErrorContains(t, err, "secret")
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	_, err := openStore(context.Background(), config.StorageConfig{Driver: "sqlite"})
	assert.Error(t, err)
}
