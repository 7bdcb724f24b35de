package store

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/career-pulse/internal/editing"
	"github.com/jonathan/career-pulse/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingBackend loads like a MemoryBackend but can be told to fail saves.
type failingBackend struct {
	*MemoryBackend
	mu       sync.Mutex
	failSave bool
	saves    int
}

func (f *failingBackend) Save(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	f.saves++
	fail := f.failSave
	f.mu.Unlock()
	if fail {
		return errors.New("disk full")
	}
	return f.MemoryBackend.Save(ctx, key, value)
}

func (f *failingBackend) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

func quietLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// openEmpty returns a store whose backend holds an empty resume list.
func openEmpty(t *testing.T) (*Store, *MemoryBackend) {
	t.Helper()
	backend := NewMemoryBackend()
	require.NoError(t, backend.Save(context.Background(), DefaultKey, []byte(`[]`)))
	return Open(context.Background(), backend, WithLogger(quietLogger(&bytes.Buffer{}))), backend
}

func persisted(t *testing.T, b Backend, key string) []types.Resume {
	t.Helper()
	data, err := b.Load(context.Background(), key)
	require.NoError(t, err)
	resumes, err := Decode(data)
	require.NoError(t, err)
	return resumes
}

func TestOpen_MissingKeySeedsSample(t *testing.T) {
	backend := NewMemoryBackend()
	var logs bytes.Buffer

	s := Open(context.Background(), backend, WithLogger(quietLogger(&logs)))

	resumes := s.List()
	require.Len(t, resumes, 1)
	assert.Equal(t, types.SampleResumeName, resumes[0].Name)

	// the seeded state is written immediately
	stored := persisted(t, backend, DefaultKey)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].Equal(resumes[0]))
	assert.Contains(t, logs.String(), "no stored resumes")
}

func TestOpen_CorruptDataFallsBack(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{{{`},
		{"wrong shape", `{"id":"x"}`},
		{"duplicate ids", `[{"id":"a","personalInfo":{}},{"id":"a","personalInfo":{}}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := NewMemoryBackend()
			require.NoError(t, backend.Save(context.Background(), DefaultKey, []byte(tt.data)))
			var logs bytes.Buffer

			s := Open(context.Background(), backend, WithLogger(quietLogger(&logs)))

			require.Equal(t, 1, s.Len())
			assert.Equal(t, types.SampleResumeName, s.List()[0].Name)
			assert.Contains(t, logs.String(), "failed to load stored resumes")
		})
	}
}

func TestOpen_LoadsStoredResumesInOrder(t *testing.T) {
	backend := NewMemoryBackend()
	first := types.NewBlankResume()
	first.Name = "first"
	second := types.NewSampleResume()
	data, err := Encode([]types.Resume{first, second})
	require.NoError(t, err)
	require.NoError(t, backend.Save(context.Background(), "custom", data))

	s := Open(context.Background(), backend, WithKey("custom"), WithLogger(quietLogger(&bytes.Buffer{})))

	resumes := s.List()
	require.Len(t, resumes, 2)
	assert.True(t, resumes[0].Equal(first))
	assert.True(t, resumes[1].Equal(second))
}

func TestCreate_FreshIDAndLengthGrowsByOne(t *testing.T) {
	s, backend := openEmpty(t)

	for i := 0; i < 5; i++ {
		before := s.List()
		id := s.Create(context.Background())

		for _, r := range before {
			assert.NotEqual(t, r.ID, id)
		}
		assert.Len(t, s.List(), len(before)+1)
		assert.Equal(t, id, s.List()[len(before)].ID, "new resume is appended")
	}

	assert.Len(t, persisted(t, backend, DefaultKey), 5)
}

func TestCreateFrom_AssignsNewID(t *testing.T) {
	s, _ := openEmpty(t)
	template := types.NewSampleResume()

	id := s.CreateFrom(context.Background(), template)

	assert.NotEqual(t, template.ID, id)
	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, template.Summary, got.Summary)
}

func TestGet_NotFound(t *testing.T) {
	s, _ := openEmpty(t)

	_, ok := s.Get("missing")
	assert.False(t, ok)
}

func TestUpdate_ScenarioTitleChange(t *testing.T) {
	s, backend := openEmpty(t)
	id := s.Create(context.Background())

	r, ok := s.Get(id)
	require.True(t, ok)
	r = editing.SetName(r, "Acme App")
	r, err := editing.SetPersonalInfo(r, "title", "Engineer")
	require.NoError(t, err)

	require.NoError(t, s.Update(context.Background(), r))

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Engineer", got.PersonalInfo.Title)
	assert.Equal(t, "Acme App", got.Name)
	assert.True(t, got.Equal(r))

	stored := persisted(t, backend, DefaultKey)
	require.Len(t, stored, 1)
	assert.Equal(t, "Engineer", stored[0].PersonalInfo.Title)
}

func TestUpdate_MissingIDIsNoOp(t *testing.T) {
	backend := &failingBackend{MemoryBackend: NewMemoryBackend()}
	s := Open(context.Background(), backend, WithLogger(quietLogger(&bytes.Buffer{})))
	saves := backend.saveCount()
	before := s.List()

	err := s.Update(context.Background(), types.NewBlankResume())

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, saves, backend.saveCount(), "nothing written")
	require.Len(t, s.List(), len(before))
	assert.True(t, s.List()[0].Equal(before[0]))
}

func TestDelete_Idempotent(t *testing.T) {
	s, backend := openEmpty(t)
	keep := s.Create(context.Background())
	id := s.Create(context.Background())

	assert.True(t, s.Delete(context.Background(), id))
	_, ok := s.Get(id)
	assert.False(t, ok)

	assert.False(t, s.Delete(context.Background(), id))
	require.Equal(t, 1, s.Len())
	assert.Equal(t, keep, s.List()[0].ID)

	stored := persisted(t, backend, DefaultKey)
	require.Len(t, stored, 1)
	assert.Equal(t, keep, stored[0].ID)
}

func TestSnapshotsAreIsolated(t *testing.T) {
	s, _ := openEmpty(t)
	id := s.CreateFrom(context.Background(), types.NewSampleResume())

	snapshot, _ := s.Get(id)
	snapshot.Experience[0].Description[0] = "mutated by caller"
	snapshot.Skills[0].Name = "mutated by caller"

	fresh, _ := s.Get(id)
	assert.NotEqual(t, "mutated by caller", fresh.Experience[0].Description[0])
	assert.NotEqual(t, "mutated by caller", fresh.Skills[0].Name)

	// a value handed to Update is copied too
	next, err := editing.AppendBullet(fresh, 0, "new")
	require.NoError(t, err)
	require.NoError(t, s.Update(context.Background(), next))
	next.Experience[0].Description[0] = "mutated after update"

	stored, _ := s.Get(id)
	assert.NotEqual(t, "mutated after update", stored.Experience[0].Description[0])
	assert.Equal(t, "new", stored.Experience[0].Description[3])
}

func TestPersistFailure_MemoryStaysAuthoritative(t *testing.T) {
	backend := &failingBackend{MemoryBackend: NewMemoryBackend()}
	var logs bytes.Buffer
	s := Open(context.Background(), backend, WithLogger(quietLogger(&logs)))

	backend.mu.Lock()
	backend.failSave = true
	backend.mu.Unlock()

	id := s.Create(context.Background())

	_, ok := s.Get(id)
	assert.True(t, ok)
	assert.Equal(t, 2, s.Len())
	assert.Contains(t, logs.String(), "failed to persist resumes")
	assert.Len(t, persisted(t, backend, DefaultKey), 1, "backend keeps the last good write")
}

func TestRoundTrip_AfterMutations(t *testing.T) {
	s, backend := openEmpty(t)
	ctx := context.Background()

	a := s.CreateFrom(ctx, types.NewSampleResume())
	b := s.Create(ctx)
	c := s.Create(ctx)

	r, _ := s.Get(a)
	r = editing.AppendSkills(r, []string{"Go", "Go"})
	r, err := editing.RemoveBullet(r, 0, 1)
	require.NoError(t, err)
	require.NoError(t, s.Update(ctx, r))
	s.Delete(ctx, b)

	reopened := Open(ctx, backend, WithLogger(quietLogger(&bytes.Buffer{})))

	want := s.List()
	got := reopened.List()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "resume %d differs", i)
	}
	assert.Equal(t, a, got[0].ID)
	assert.Equal(t, c, got[1].ID)
}

func TestConcurrentCreates(t *testing.T) {
	s, _ := openEmpty(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Create(context.Background())
		}()
	}
	wg.Wait()

	ids := map[string]bool{}
	for _, r := range s.List() {
		ids[r.ID] = true
	}
	assert.Len(t, ids, 20)
}

// flakyBackend fails every Load as an unreachable remote store would, while
// keeping whatever was saved earlier.
type flakyBackend struct {
	*failingBackend
}

func (flakyBackend) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("dial tcp: i/o timeout")
}

func TestOpen_UnreadableBackendKeepsStoredData(t *testing.T) {
	inner := &failingBackend{MemoryBackend: NewMemoryBackend()}
	existing := types.NewBlankResume()
	existing.Name = "Real resume"
	data, err := Encode([]types.Resume{existing})
	require.NoError(t, err)
	require.NoError(t, inner.MemoryBackend.Save(context.Background(), DefaultKey, data))
	var logs bytes.Buffer

	s := Open(context.Background(), flakyBackend{inner}, WithLogger(quietLogger(&logs)))

	require.Equal(t, 1, s.Len())
	assert.Equal(t, types.SampleResumeName, s.List()[0].Name)
	assert.True(t, s.Suspended())
	assert.Contains(t, logs.String(), "writes suspended")

	// later mutations stay in memory too
	id := s.Create(context.Background())
	_, ok := s.Get(id)
	assert.True(t, ok)

	assert.Equal(t, 0, inner.saveCount())
	stored := persisted(t, inner.MemoryBackend, DefaultKey)
	require.Len(t, stored, 1)
	assert.Equal(t, "Real resume", stored[0].Name)
}

func TestOpen_MissingKeyIsNotSuspended(t *testing.T) {
	s := Open(context.Background(), NewMemoryBackend(), WithLogger(quietLogger(&bytes.Buffer{})))
	assert.False(t, s.Suspended())
}

func TestModify(t *testing.T) {
	s, backend := openEmpty(t)
	id := s.CreateFrom(context.Background(), types.NewSampleResume())

	got, err := s.Modify(context.Background(), id, func(r types.Resume) (types.Resume, error) {
		r = editing.SetSummary(r, "Updated")
		r.ID = "ignored"
		return r, nil
	})

	require.NoError(t, err)
	assert.Equal(t, id, got.ID, "identifier is kept")
	assert.Equal(t, "Updated", got.Summary)
	stored, ok := s.Get(id)
	require.True(t, ok)
	assert.True(t, stored.Equal(got))
	assert.Equal(t, "Updated", persisted(t, backend, DefaultKey)[0].Summary)
}

func TestModify_Errors(t *testing.T) {
	s, _ := openEmpty(t)
	id := s.CreateFrom(context.Background(), types.NewSampleResume())
	before, _ := s.Get(id)

	_, err := s.Modify(context.Background(), "missing", func(r types.Resume) (types.Resume, error) {
		return r, nil
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Modify(context.Background(), id, func(r types.Resume) (types.Resume, error) {
		return editing.RemoveBullet(r, 9, 0)
	})
	var indexErr *editing.IndexError
	assert.ErrorAs(t, err, &indexErr)

	after, _ := s.Get(id)
	assert.True(t, before.Equal(after), "failed edits store nothing")
}

// slowBackend takes a moment to save, like a network round trip.
type slowBackend struct {
	*MemoryBackend
}

func (b slowBackend) Save(ctx context.Context, key string, value []byte) error {
	time.Sleep(time.Millisecond)
	return b.MemoryBackend.Save(ctx, key, value)
}

func TestModify_ConcurrentAppendsAreNotLost(t *testing.T) {
	backend := slowBackend{NewMemoryBackend()}
	s := Open(context.Background(), backend, WithLogger(quietLogger(&bytes.Buffer{})))
	id := s.List()[0].ID
	before := len(s.List()[0].Skills)
	const n = 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Modify(context.Background(), id, func(r types.Resume) (types.Resume, error) {
				return editing.AppendSkills(r, []string{"Go"}), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, _ := s.Get(id)
	assert.Len(t, got.Skills, before+n)
	assert.Len(t, persisted(t, backend, DefaultKey)[0].Skills, before+n)
}
