// Package filesystem stores documents as plain files under a root
// directory, one subdirectory per owner: <root>/<owner id>/<document id>.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strconv"

	"github.com/aussiebroadwan/trustgate/internal/trust/store"
)

type Documents struct {
	root *os.Root
}

var _ store.Documents = (*Documents)(nil)

// NewDocuments opens dir, creating it if needed. All access is confined to
// dir.
func NewDocuments(dir string) (*Documents, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("filesystem: create root: %w", err)
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("filesystem: open root: %w", err)
	}
	return &Documents{root: root}, nil
}

func (d *Documents) Close() error { return d.root.Close() }

func (d *Documents) Open(_ context.Context, ownerID, docID int64) (store.Document, error) {
	if ownerID < 0 || docID < 0 {
		return store.Document{}, store.ErrNotFound
	}

	name := path.Join(strconv.FormatInt(ownerID, 10), strconv.FormatInt(docID, 10))
	f, err := d.root.Open(name)
	if err != nil {
		return store.Document{}, mapNotFound(err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return store.Document{}, err
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return store.Document{}, store.ErrNotFound
	}

	return store.Document{
		Content: f,
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

func (d *Documents) List(_ context.Context, ownerID int64) ([]int64, error) {
	if ownerID < 0 {
		return nil, nil
	}

	entries, err := fs.ReadDir(d.root.FS(), strconv.FormatInt(ownerID, 10))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		id, err := strconv.ParseInt(e.Name(), 10, 64)
		if err != nil || id < 0 {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (d *Documents) Ping(_ context.Context) error {
	_, err := d.root.Stat(".")
	return err
}

func mapNotFound(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return store.ErrNotFound
	}
	return err
}
