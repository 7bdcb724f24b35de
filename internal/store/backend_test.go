package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/career-pulse/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBackendContract exercises the behaviour every Backend must share.
func testBackendContract(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()
	key := "contract-" + types.NewID()

	_, err := b.Load(ctx, key)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, b.Save(ctx, key, []byte(`[{"id":"a"}]`)))
	data, err := b.Load(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a"}]`, string(data))

	require.NoError(t, b.Save(ctx, key, []byte(`[]`)))
	data, err = b.Load(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestMemoryBackend_Contract(t *testing.T) {
	testBackendContract(t, NewMemoryBackend())
}

func TestMemoryBackend_CopiesValues(t *testing.T) {
	b := NewMemoryBackend()
	value := []byte("abc")
	require.NoError(t, b.Save(context.Background(), "k", value))
	value[0] = 'X'

	got, err := b.Load(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileBackend_Contract(t *testing.T) {
	b, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	testBackendContract(t, b)
}

func TestFileBackend_WritesNamedFile(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(filepath.Join(dir, "nested"))
	require.NoError(t, err)

	require.NoError(t, b.Save(context.Background(), DefaultKey, []byte(`[]`)))

	data, err := os.ReadFile(filepath.Join(dir, "nested", DefaultKey+".json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileBackend_SanitizesKey(t *testing.T) {
	b, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, filepath.Dir(b.Path("ok")), filepath.Dir(b.Path("../../escape")))
}

func TestFileBackend_EmptyDir(t *testing.T) {
	_, err := NewFileBackend("")
	assert.Error(t, err)
}

func TestFileBackend_StoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	b, err := NewFileBackend(dir)
	require.NoError(t, err)
	s := Open(ctx, b)
	id := s.Create(ctx)

	b2, err := NewFileBackend(dir)
	require.NoError(t, err)
	reopened := Open(ctx, b2)

	_, ok := reopened.Get(id)
	assert.True(t, ok)
	assert.Equal(t, 2, reopened.Len())
}

type brokenBackend struct{}

func (brokenBackend) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}
func (brokenBackend) Save(context.Context, string, []byte) error { return errors.New("connection refused") }
func (brokenBackend) Close() error                               { return errors.New("close failed") }

func TestMirrorBackend_Contract(t *testing.T) {
	m, err := NewMirrorBackend(NewMemoryBackend(), NewMemoryBackend())
	require.NoError(t, err)
	testBackendContract(t, m)
}

func TestMirrorBackend_WritesEverywhere(t *testing.T) {
	primary, secondary := NewMemoryBackend(), NewMemoryBackend()
	m, err := NewMirrorBackend(primary, secondary)
	require.NoError(t, err)

	require.NoError(t, m.Save(context.Background(), "k", []byte("v")))

	for _, b := range []*MemoryBackend{primary, secondary} {
		got, err := b.Load(context.Background(), "k")
		require.NoError(t, err)
		assert.Equal(t, "v", string(got))
	}
}

func TestMirrorBackend_LoadFallsThrough(t *testing.T) {
	primary, secondary := NewMemoryBackend(), NewMemoryBackend()
	require.NoError(t, secondary.Save(context.Background(), "k", []byte("from secondary")))
	m, err := NewMirrorBackend(primary, secondary)
	require.NoError(t, err)

	got, err := m.Load(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "from secondary", string(got))
}

func TestMirrorBackend_Errors(t *testing.T) {
	_, err := NewMirrorBackend()
	assert.Error(t, err)

	healthy := NewMemoryBackend()
	m, err := NewMirrorBackend(healthy, brokenBackend{})
	require.NoError(t, err)

	err = m.Save(context.Background(), "k", []byte("v"))
	assert.ErrorContains(t, err, "mirror backend 1")
	got, loadErr := healthy.Load(context.Background(), "k")
	require.NoError(t, loadErr)
	assert.Equal(t, "v", string(got))

	_, err = m.Load(context.Background(), "missing")
	assert.ErrorContains(t, err, "connection refused")
	assert.NotErrorIs(t, err, ErrKeyNotFound)

	assert.Error(t, m.Close())
}

func TestOpen_BrokenBackendStillStarts(t *testing.T) {
	s := Open(context.Background(), brokenBackend{})

	assert.Equal(t, 1, s.Len())
	id := s.Create(context.Background())
	_, ok := s.Get(id)
	assert.True(t, ok)
}
