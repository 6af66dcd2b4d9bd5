// Package blobstore defines the object-storage contract the job
// orchestrator consumes: list, download, and upload by key within a named
// bucket. No cloud SDK is wired to this interface — see this repository's
// design notes for why; the shipped implementation is filesystem-backed.
package blobstore

import "context"

// Store is the blob-store contract the orchestrator treats as an opaque
// external collaborator. Every call is blocking I/O and accepts a context so
// a caller can cancel between blobs.
type Store interface {
	// List returns every key under prefix within bucket, in a stable order.
	List(ctx context.Context, bucket, prefix string) ([]string, error)
	// Download copies the object at key in bucket to localPath.
	Download(ctx context.Context, bucket, key, localPath string) error
	// Upload copies localPath to key in bucket.
	Upload(ctx context.Context, bucket, localPath, key string) error
}
