package binder

import (
	"errors"
	"fmt"
	"testing"

	"datajoin/core/join"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string
	Value int
}

func itemKey(i item) string { return i.ID }

// recorder tracks hook invocations so tests can assert exactly-once
// lifecycle semantics.
type recorder struct {
	created   []string
	refreshed []string
	removed   []string
	serial    int
}

func (r *recorder) hooks() Hooks[string, item, string] {
	return Hooks[string, item, string]{
		Create: func(key string, it item) (string, error) {
			r.serial++
			r.created = append(r.created, key)
			return fmt.Sprintf("elem-%s-%d", key, r.serial), nil
		},
		Refresh: func(elem string, it item) error {
			r.refreshed = append(r.refreshed, elem)
			return nil
		},
		Remove: func(elem string) error {
			r.removed = append(r.removed, elem)
			return nil
		},
	}
}

// TestBinder_FirstPassCreatesAll tests that the first pass enters everything.
func TestBinder_FirstPassCreatesAll(t *testing.T) {
	rec := &recorder{}
	b := New(itemKey, rec.hooks())

	res, err := b.Apply([]item{{ID: "a"}, {ID: "b"}})
	require.NoError(t, err)

	assert.Len(t, res.Entering, 2)
	assert.Equal(t, []string{"a", "b"}, rec.created)
	assert.Empty(t, rec.refreshed)
	assert.Empty(t, rec.removed)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 1, b.Passes())
}

// TestBinder_Lifecycle tests element persistence and removal across passes.
func TestBinder_Lifecycle(t *testing.T) {
	rec := &recorder{}
	b := New(itemKey, rec.hooks())

	_, err := b.Apply([]item{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	require.NoError(t, err)

	res, err := b.Apply([]item{{ID: "b", Value: 1}, {ID: "c", Value: 2}, {ID: "d"}})
	require.NoError(t, err)

	assert.Len(t, res.Entering, 1)
	assert.Len(t, res.Updating, 2)
	assert.Len(t, res.Exiting, 1)

	assert.Equal(t, []string{"a", "b", "c", "d"}, rec.created)
	assert.Equal(t, []string{"elem-a-1"}, rec.removed)
	// b and c kept the elements created in pass one.
	assert.Equal(t, []string{"elem-b-2", "elem-c-3"}, rec.refreshed)

	// Bound set follows new-data order and carries refreshed data.
	bound := b.Bound()
	require.Len(t, bound, 3)
	assert.Equal(t, "b", bound[0].Key)
	assert.Equal(t, 1, bound[0].Datum.Value)
	assert.Equal(t, "elem-b-2", bound[0].Elem)
	assert.Equal(t, "d", bound[2].Key)
}

// TestBinder_NoResurrection tests that a returning key gets a fresh element.
func TestBinder_NoResurrection(t *testing.T) {
	rec := &recorder{}
	b := New(itemKey, rec.hooks())

	_, err := b.Apply([]item{{ID: "a"}})
	require.NoError(t, err)
	_, err = b.Apply(nil)
	require.NoError(t, err)
	res, err := b.Apply([]item{{ID: "a"}})
	require.NoError(t, err)

	require.Len(t, res.Entering, 1)
	assert.Equal(t, []string{"elem-a-1"}, rec.removed)
	assert.Equal(t, []string{"a", "a"}, rec.created)
	assert.Equal(t, "elem-a-2", b.Bound()[0].Elem)
}

// TestBinder_Reset tests that Reset removes every element.
func TestBinder_Reset(t *testing.T) {
	rec := &recorder{}
	b := New(itemKey, rec.hooks())

	_, err := b.Apply([]item{{ID: "a"}, {ID: "b"}})
	require.NoError(t, err)
	require.NoError(t, b.Reset())

	assert.Equal(t, 0, b.Len())
	assert.Len(t, rec.removed, 2)
}

// TestBinder_DuplicateKeyLeavesStateUntouched tests that a failed pass
// does not advance the bound set.
func TestBinder_DuplicateKeyLeavesStateUntouched(t *testing.T) {
	rec := &recorder{}
	b := New(itemKey, rec.hooks())

	_, err := b.Apply([]item{{ID: "a"}})
	require.NoError(t, err)

	_, err = b.Apply([]item{{ID: "x"}, {ID: "x"}})
	require.Error(t, err)
	var dup *join.DuplicateKeyError[string]
	assert.True(t, errors.As(err, &dup))

	assert.Equal(t, 1, b.Len())
	assert.Equal(t, "a", b.Bound()[0].Key)
	assert.Equal(t, 1, b.Passes())
}

// TestBinder_CreateHookError tests that a Create failure aborts the pass.
func TestBinder_CreateHookError(t *testing.T) {
	hooks := Hooks[string, item, string]{
		Create: func(key string, it item) (string, error) {
			if key == "bad" {
				return "", errors.New("boom")
			}
			return "elem-" + key, nil
		},
	}
	b := New(itemKey, hooks)

	_, err := b.Apply([]item{{ID: "ok"}, {ID: "bad"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create hook for key bad")
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Passes())
}

// TestBinder_RefreshHookError tests that a Refresh failure aborts the pass.
func TestBinder_RefreshHookError(t *testing.T) {
	fail := false
	hooks := Hooks[string, item, string]{
		Create: func(key string, it item) (string, error) { return "elem-" + key, nil },
		Refresh: func(elem string, it item) error {
			if fail {
				return errors.New("stale handle")
			}
			return nil
		},
	}
	b := New(itemKey, hooks)

	_, err := b.Apply([]item{{ID: "a"}})
	require.NoError(t, err)

	fail = true
	_, err = b.Apply([]item{{ID: "a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh hook for key a")
	// Pre-pass state kept.
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, 1, b.Passes())
}

// TestBinder_NilHooks tests that a hookless binder still tracks bindings.
func TestBinder_NilHooks(t *testing.T) {
	b := New(itemKey, Hooks[string, item, string]{})

	res, err := b.Apply([]item{{ID: "a"}, {ID: "b"}})
	require.NoError(t, err)
	assert.Len(t, res.Entering, 2)

	res, err = b.Apply([]item{{ID: "b"}})
	require.NoError(t, err)
	assert.Len(t, res.Updating, 1)
	assert.Len(t, res.Exiting, 1)
	assert.Equal(t, 1, b.Len())
}
