package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/icdmap/internal/sources/memory"
	"github.com/agentstation/icdmap/pkg/catalog"
	"github.com/agentstation/icdmap/pkg/errors"
	"github.com/agentstation/icdmap/pkg/icd"
	"github.com/agentstation/icdmap/pkg/logging"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	tl := logging.NewTestLogger(t)
	store, err := Open(filepath.Join(t.TempDir(), "db", "icds.db"), WithLogger(tl.Logger))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestIngestAndLoad(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	src := memory.New().
		PutYAML("sys", "compA", icd.DocComponent, "prefix: sys.compA\n").
		PutYAML("sys", "compA", icd.DocPublish, "publish:\n  events:\n    - name: status\n").
		PutYAML("sys", "comp.B", icd.DocComponent, "prefix: sys.compB\n").
		PutYAML("sys", "comp.B", icd.DocSubscribe, `
subscribe:
  events:
    - {subsystem: sys, component: compA, name: status}
`)

	n, err := store.Ingest(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	names, err := store.Collections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"sys.comp.B.component",
		"sys.comp.B.subscribe",
		"sys.compA.component",
		"sys.compA.publish",
	}, names)

	cat, err := catalog.Load(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, []icd.Prefix{"sys.compA", "sys.compB"}, cat.Prefixes())
	refs := cat.Subscriptions("sys.compB", icd.ItemEvent)
	require.Len(t, refs, 1)
	assert.True(t, refs[0].Resolved)
}

func TestPutReplaces(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	doc := &icd.Document{
		Key:    icd.ComponentKey{Subsystem: "iris", Component: "rotator"},
		Kind:   icd.DocComponent,
		Format: icd.FormatYAML,
		Data:   []byte("prefix: old\n"),
	}
	require.NoError(t, store.Put(ctx, doc))
	doc.Data = []byte("prefix: iris.rotator\n")
	require.NoError(t, store.Put(ctx, doc))

	docs, err := store.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "iris.rotator.component", docs[0].Origin)
	assert.Equal(t, "prefix: iris.rotator\n", string(docs[0].Data))
}

func TestPutRejectsBadNames(t *testing.T) {
	store := openStore(t)
	err := store.Put(context.Background(), &icd.Document{
		Key:  icd.ComponentKey{Subsystem: "bad-sub", Component: "x"},
		Kind: icd.DocComponent,
	})
	assert.True(t, errors.IsValidationError(err))
}

func TestOpenMustExist(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.db"), MustExist())
	require.Error(t, err)
	var ioErr *errors.IOError
	assert.True(t, errors.As(err, &ioErr))
}

func TestCollectionName(t *testing.T) {
	assert.Equal(t, "iris.oiwfs.poa.publish",
		CollectionName(icd.ComponentKey{Subsystem: "iris", Component: "oiwfs.poa"}, icd.DocPublish))
}
