package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPut(t *testing.T) {
	root := t.TempDir()
	l, err := NewLocal(root, "/uploads")
	require.NoError(t, err)

	obj, err := l.Put(context.Background(), KindDocuments, "resume-1-2.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/documents/resume-1-2.pdf", obj.URL)
	assert.Equal(t, "resume-1-2.pdf", obj.Name)

	b, err := os.ReadFile(filepath.Join(root, "documents", "resume-1-2.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(b))

	_, err = l.Put(context.Background(), KindDocuments, "resume-1-2.pdf", strings.NewReader("again"))
	assert.Error(t, err, "existing files are never overwritten")
}

func TestLocalPutStripsDirectories(t *testing.T) {
	root := t.TempDir()
	l, err := NewLocal(root, "")
	require.NoError(t, err)

	obj, err := l.Put(context.Background(), KindImages, "../../evil.png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/images/evil.png", obj.URL)
	_, err = os.Stat(filepath.Join(root, "images", "evil.png"))
	assert.NoError(t, err)
}

func TestNewCloudinaryRequiresCloudName(t *testing.T) {
	_, err := NewCloudinary("", "k", "s", "portfolio")
	assert.Error(t, err)
}
