package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

// ErrAssetFetch wraps any failure to obtain raw card artwork. Recoverable
// per-reveal only: the session pick stays recorded and delivery can be
// retried.
var ErrAssetFetch = errors.New("asset fetch failed")

// AssetSource supplies raw image bytes for a card asset. The reading
// service does not care where the bytes come from; the shipped
// implementation reads from a filesystem tree.
type AssetSource interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// FSAssetSource reads card artwork out of an fs.FS, typically the same
// tree the catalog was built from.
type FSAssetSource struct {
	fsys fs.FS
}

var _ AssetSource = (*FSAssetSource)(nil)

// NewFSAssetSource creates an FSAssetSource over fsys.
func NewFSAssetSource(fsys fs.FS) *FSAssetSource {
	if fsys == nil {
		panic("fsys cannot be nil for FSAssetSource")
	}
	return &FSAssetSource{fsys: fsys}
}

// Fetch implements AssetSource.
func (s *FSAssetSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetFetch, err)
	}
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrAssetFetch, name, err)
	}
	return data, nil
}
