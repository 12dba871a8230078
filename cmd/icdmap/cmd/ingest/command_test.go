package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/icdmap/cmd/application"
	"github.com/agentstation/icdmap/internal/sources/sqlite"
	"github.com/agentstation/icdmap/pkg/errors"
)

func TestIngestCommand(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "tcs", "pk")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "component-model.yaml"),
		[]byte("subsystem: tcs\ncomponent: pk\nprefix: tcs.pk\n"), 0o644))

	db := filepath.Join(t.TempDir(), "icds.db")
	cmd := NewCommand(&application.Mock{})
	cmd.SetArgs([]string{root, "--db", db})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	store, err := sqlite.Open(db, sqlite.MustExist())
	require.NoError(t, err)
	defer store.Close()

	names, err := store.Collections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"tcs.pk.component"}, names)
}

func TestIngestCommandNeedsDB(t *testing.T) {
	cmd := NewCommand(&application.Mock{})
	cmd.SetArgs([]string{t.TempDir()})
	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}
