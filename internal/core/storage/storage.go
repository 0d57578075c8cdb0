package storage

import (
	"context"
	"io"
)

// Kind is the folder a stored file is filed under.
type Kind string

const (
	KindImages    Kind = "images"
	KindDocuments Kind = "documents"
)

type Object struct {
	URL  string `json:"fileUrl"`
	Name string `json:"filename"`
}

type Store interface {
	Put(ctx context.Context, kind Kind, name string, r io.Reader) (Object, error)
}
