package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// StoredFile is what a BlobStore hands back after a successful upload.
type StoredFile struct {
	URL       string
	StorageID string
	Size      int64
}

// BlobStore persists uploaded files and serves them back by URL. StorageID is
// the store's opaque handle; callers keep it only for Remove.
type BlobStore interface {
	Store(file *multipart.FileHeader, folder string) (*StoredFile, error)
	Remove(storageID string) error
}

// localStore keeps files on disk under a base directory and serves them from
// a static route. Storage ids are random and never derived from the client
// file name.
type localStore struct {
	baseDir string
	baseURL string
}

func NewLocalStore(baseDir, baseURL string) (BlobStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &localStore{baseDir: baseDir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *localStore) Store(file *multipart.FileHeader, folder string) (*StoredFile, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	storageID := filepath.Join(folder, uuid.NewString()+filepath.Ext(file.Filename))
	dstPath := filepath.Join(s.baseDir, storageID)
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		return nil, fmt.Errorf("write file: %w", err)
	}

	return &StoredFile{
		URL:       s.baseURL + "/" + filepath.ToSlash(storageID),
		StorageID: storageID,
		Size:      size,
	}, nil
}

func (s *localStore) Remove(storageID string) error {
	if storageID == "" {
		return nil
	}
	// storageID is server-generated, but reject traversal anyway.
	clean := filepath.Clean(storageID)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid storage id %q", storageID)
	}
	if err := os.Remove(filepath.Join(s.baseDir, clean)); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("storage_id", storageID).Msg("failed to remove stored file")
		return err
	}
	return nil
}
