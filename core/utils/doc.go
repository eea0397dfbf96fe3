// Package utils provides common utility functions for datajoin.
// It includes type-coercion helpers used when deriving join keys from
// loosely typed records (JSON documents, database rows).
package utils
