package source

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"datajoin/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestObjectSource_Load tests decoding a snapshot object from storage.
func TestObjectSource_Load(t *testing.T) {
	client := new(mocks.Client)
	body := io.NopCloser(strings.NewReader(`[{"id": "a"}, {"id": "b"}]`))
	client.On("GetObject", mock.Anything, "snapshots", "latest.json", mock.Anything).Return(body, nil)

	src := NewObjectSource("objects", client, "snapshots", "latest.json")
	records, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[1]["id"])

	client.AssertExpectations(t)
}

// TestObjectSource_GetError tests the storage error path.
func TestObjectSource_GetError(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "snapshots", "latest.json", mock.Anything).Return(nil, errors.New("connection refused"))

	src := NewObjectSource("objects", client, "snapshots", "latest.json")
	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get snapshot object")
}

// TestObjectSource_BadPayload tests the decode error path.
func TestObjectSource_BadPayload(t *testing.T) {
	client := new(mocks.Client)
	body := io.NopCloser(strings.NewReader(`not json`))
	client.On("GetObject", mock.Anything, "snapshots", "latest.json", mock.Anything).Return(body, nil)

	src := NewObjectSource("objects", client, "snapshots", "latest.json")
	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a JSON array")
}
