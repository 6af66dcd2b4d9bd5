package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileStore implements Store against the local filesystem: each named
// bucket is a root directory, and keys are slash-separated paths relative
// to that root. It exists so the orchestrator can be driven and tested
// without a real object-storage account.
type FileStore struct {
	roots map[string]string
}

// NewFileStore returns a FileStore mapping each bucket name to a root
// directory. The directories are created if they do not already exist.
func NewFileStore(roots map[string]string) (*FileStore, error) {
	for bucket, root := range roots {
		if err := os.MkdirAll(root, 0o755); err != nil {
			return nil, fmt.Errorf("blobstore: creating root for bucket %q: %w", bucket, err)
		}
	}
	return &FileStore{roots: roots}, nil
}

func (f *FileStore) root(bucket string) (string, error) {
	root, ok := f.roots[bucket]
	if !ok {
		return "", fmt.Errorf("blobstore: unknown bucket %q", bucket)
	}
	return root, nil
}

// List returns every regular file under prefix within bucket, as slash-
// separated keys relative to the bucket root, sorted lexically so callers
// get a deterministic listing order.
func (f *FileStore) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	root, err := f.root(bucket)
	if err != nil {
		return nil, err
	}

	base := filepath.Join(root, filepath.FromSlash(prefix))
	var keys []string
	err = filepath.Walk(base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("blobstore: listing %q/%q: %w", bucket, prefix, err)
	}

	sort.Strings(keys)
	return keys, nil
}

// Download copies the object at key in bucket to localPath, creating
// localPath's parent directory if necessary.
func (f *FileStore) Download(ctx context.Context, bucket, key, localPath string) error {
	root, err := f.root(bucket)
	if err != nil {
		return err
	}

	src, err := os.Open(filepath.Join(root, filepath.FromSlash(key)))
	if err != nil {
		return fmt.Errorf("blobstore: downloading %q/%q: %w", bucket, key, err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return err
	}
	dst, err := os.Create(localPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// Upload copies localPath to key in bucket, creating key's parent directory
// if necessary.
func (f *FileStore) Upload(ctx context.Context, bucket, localPath, key string) error {
	root, err := f.root(bucket)
	if err != nil {
		return err
	}

	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("blobstore: uploading %q to %q/%q: %w", localPath, bucket, key, err)
	}
	defer src.Close()

	dstPath := filepath.Join(root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return err
	}
	dst, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// keyBase returns the final path segment of a slash-separated key, mirroring
// filepath.Base for forward-slash keys regardless of host OS.
func keyBase(key string) string {
	parts := strings.Split(key, "/")
	return parts[len(parts)-1]
}
