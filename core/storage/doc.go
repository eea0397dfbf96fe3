// Package storage provides the object storage client used by the
// object snapshot source. It wraps the MinIO SDK behind a narrow
// interface so sources and tests can mock it.
package storage
