package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/notetime-cli/internal/domain"
)

func newTestStore(t *testing.T, root string) *Store {
	t.Helper()

	config := viper.New()
	config.Set("workspace.root", root)

	store, err := NewStore(config)
	require.NoError(t, err)
	return store
}

func writeNote(t *testing.T, root, rel, body string) string {
	t.Helper()

	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestStoreResolveRejectsTargetsOutsideWorkspace(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, t.TempDir())
	testCases := []struct {
		name string
		note string
	}{
		{name: "empty", note: ""},
		{name: "whitespace", note: "   "},
		{name: "traversal", note: "../escape.md"},
		{name: "deep traversal", note: "../../other/escape.md"},
		{name: "absolute outside root", note: "/etc/passwd.md"},
		{name: "bare dot", note: "."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Resolve(context.Background(), tc.note)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrNoActiveDocument)
		})
	}
}

func TestStoreResolveRequiresEditableMarkdownNote(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := newTestStore(t, root)
	writeNote(t, root, "notes/todo.md", "# Todo\n")
	writeNote(t, root, "notes/data.csv", "a,b\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "folder.md"), 0o755))

	rel, err := store.Resolve(context.Background(), "notes/todo.md")
	require.NoError(t, err)
	assert.Equal(t, "notes/todo.md", rel)

	// Relative noise and absolute paths inside the root normalize to the
	// same workspace-relative key.
	rel, err = store.Resolve(context.Background(), "./notes/../notes/todo.md")
	require.NoError(t, err)
	assert.Equal(t, "notes/todo.md", rel)

	rel, err = store.Resolve(context.Background(), filepath.Join(root, "notes", "todo.md"))
	require.NoError(t, err)
	assert.Equal(t, "notes/todo.md", rel)

	_, err = store.Resolve(context.Background(), "notes/missing.md")
	assert.ErrorIs(t, err, domain.ErrNoActiveDocument)

	_, err = store.Resolve(context.Background(), "notes/data.csv")
	assert.ErrorIs(t, err, domain.ErrNoActiveDocument)

	_, err = store.Resolve(context.Background(), "folder.md")
	assert.ErrorIs(t, err, domain.ErrNoActiveDocument)
}

func TestStoreSnapshotReportsCursorAtEndOfFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := newTestStore(t, root)
	body := "# Todo\n\nSome text.\n"
	writeNote(t, root, "notes/todo.md", body)

	doc, err := store.Snapshot(context.Background(), "notes/todo.md")
	require.NoError(t, err)

	assert.Equal(t, "notes/todo.md", doc.Path)
	assert.Equal(t, body, doc.Text)
	assert.Equal(t, len(body), doc.Cursor)
}

func TestStoreSnapshotMissingNoteFailsWithNoEditableView(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, t.TempDir())

	_, err := store.Snapshot(context.Background(), "notes/missing.md")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoEditableView)
}

func TestStoreInsertSplicesAtPosition(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := newTestStore(t, root)
	path := writeNote(t, root, "notes/todo.md", "HEAD-TAIL")

	require.NoError(t, store.Insert(context.Background(), "notes/todo.md", 5, "MID-"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "HEAD-MID-TAIL", string(data))
}

func TestStoreInsertClampsOutOfRangePositions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := newTestStore(t, root)
	path := writeNote(t, root, "notes/todo.md", "body")

	require.NoError(t, store.Insert(context.Background(), "notes/todo.md", 99, "+tail"))
	require.NoError(t, store.Insert(context.Background(), "notes/todo.md", -1, "+more"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "body+tail+more", string(data))
}

func TestStoreInsertRejectsNonEditableTargets(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := newTestStore(t, root)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "folder.md"), 0o755))

	err := store.Insert(context.Background(), "folder.md", 0, "block")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoEditableView)

	err = store.Insert(context.Background(), "notes/missing.md", 0, "block")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoEditableView)
}
