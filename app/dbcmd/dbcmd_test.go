package dbcmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"bloglist/app/models"
	"bloglist/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommands(t *testing.T, answers string) (Commands, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	out := &bytes.Buffer{}
	return Commands{
		Path:      filepath.Join(dir, "badger"),
		BackupDir: filepath.Join(dir, "backups"),
		In:        strings.NewReader(answers),
		Out:       out,
	}, out
}

func TestInitAndClean(t *testing.T) {
	cmds, out := newCommands(t, "y\n")

	require.NoError(t, cmds.Init())
	assert.Contains(t, out.String(), "initialized")
	assert.Error(t, cmds.Init(), "second init refuses to overwrite")

	require.NoError(t, cmds.Clean())
	assert.False(t, exists(cmds.Path))
	require.NoError(t, cmds.Clean(), "cleaning a missing database is a no-op")
}

func TestCleanCancelled(t *testing.T) {
	cmds, _ := newCommands(t, "n\n")
	require.NoError(t, cmds.Init())

	assert.ErrorIs(t, cmds.Clean(), ErrCancelled)
	assert.True(t, exists(cmds.Path))
}

func TestBackupAndRestore(t *testing.T) {
	cmds, _ := newCommands(t, "")
	cmds.Force = true
	ctx := context.Background()

	db, err := repositories.Open(cmds.Path)
	require.NoError(t, err)
	post := models.NewPost(models.PostInput{Title: "kept", URL: "http://example.com"})
	require.NoError(t, repositories.NewBadgerPostRepository(db).Create(ctx, post))
	require.NoError(t, db.Close())

	file, err := cmds.Backup()
	require.NoError(t, err)
	require.True(t, exists(file))

	require.NoError(t, cmds.Clean())
	require.NoError(t, cmds.Restore(file))

	db, err = repositories.Open(cmds.Path)
	require.NoError(t, err)
	defer db.Close()
	got, err := repositories.NewBadgerPostRepository(db).GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Title)
}

func TestBackupWithoutDatabase(t *testing.T) {
	cmds, _ := newCommands(t, "")
	_, err := cmds.Backup()
	assert.Error(t, err)
	assert.Error(t, cmds.Restore(filepath.Join(t.TempDir(), "nope.db")))
}
