package source

import (
	"context"
	"encoding/json"
	"fmt"

	"datajoin/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectSource loads snapshots from a JSON object in bucket storage.
// This is the deployment shape where a producer publishes snapshots to
// a bucket and join consumers poll it.
type ObjectSource struct {
	name   string
	client storage.Client
	bucket string
	object string
}

// NewObjectSource creates a storage-backed snapshot source.
func NewObjectSource(name string, client storage.Client, bucket, object string) *ObjectSource {
	return &ObjectSource{name: name, client: client, bucket: bucket, object: object}
}

// Name identifies the source.
func (s *ObjectSource) Name() string {
	return s.name
}

// Load downloads and decodes the snapshot object.
func (s *ObjectSource) Load(ctx context.Context) ([]Record, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot object %s: %w", s.object, err)
	}
	defer obj.Close()

	var records []Record
	if err := json.NewDecoder(obj).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot object %s: expected a JSON array of objects: %w", s.object, err)
	}

	return records, nil
}
