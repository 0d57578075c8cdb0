package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// Local writes files under Root/<kind>/ and serves them below URLPrefix.
type Local struct {
	Root      string
	URLPrefix string
}

func NewLocal(root, urlPrefix string) (*Local, error) {
	for _, k := range []Kind{KindImages, KindDocuments} {
		if err := os.MkdirAll(filepath.Join(root, string(k)), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	if urlPrefix == "" {
		urlPrefix = "/uploads"
	}
	return &Local{Root: root, URLPrefix: urlPrefix}, nil
}

func (l *Local) Put(ctx context.Context, kind Kind, name string, r io.Reader) (Object, error) {
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}
	name = filepath.Base(name)
	dst := filepath.Join(l.Root, string(kind), name)
	f, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return Object{}, fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return Object{}, fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return Object{}, err
	}
	return Object{URL: path.Join(l.URLPrefix, string(kind), name), Name: name}, nil
}
