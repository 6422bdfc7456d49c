package uploads

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/valyala/fasthttp"
)

// Store persists uploaded files at the relative paths produced by a Namer.
type Store interface {
	Save(file *multipart.FileHeader, rel string) error
	Remove(rel string) error
}

// DiskStore keeps media on the local filesystem under Root.
type DiskStore struct {
	Root string
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{Root: root}
}

func (s *DiskStore) Save(file *multipart.FileHeader, rel string) error {
	dst := filepath.Join(s.Root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := fasthttp.SaveMultipartFile(file, dst); err != nil {
		return fmt.Errorf("failed to save upload: %w", err)
	}
	return nil
}

// Remove deletes a stored file; a file that is already gone is not an error.
func (s *DiskStore) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
