package ports

import "context"

// Document is a point-in-time view of an editable note: its resolved
// workspace-relative path, full text, and the cursor position incoming
// inserts are spliced at.
type Document struct {
	Path   string
	Text   string
	Cursor int
}

type Workspace interface {
	Resolve(ctx context.Context, note string) (string, error)
	Snapshot(ctx context.Context, note string) (Document, error)
	Insert(ctx context.Context, note string, position int, block string) error
}
