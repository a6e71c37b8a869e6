package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taetu445/RescueBites/internal/models"
	"github.com/taetu445/RescueBites/internal/pkg/logger"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()

	l, err := logger.CreateLogger("error")
	require.NoError(t, err)

	fs, err := NewFileStore(filepath.Join(t.TempDir(), "data"), filepath.Join(t.TempDir(), "public"), l)
	require.NoError(t, err)
	return fs
}

func TestLoadMissingFileSelfHeals(t *testing.T) {
	fs := newTestFileStore(t)

	fallback := []models.Event{}
	require.NoError(t, fs.Load(KeyEvents, &fallback))
	assert.Empty(t, fallback)

	// The file now exists and contains exactly the fallback.
	raw, err := os.ReadFile(fs.DataPath(KeyEvents))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestLoadEmptyFileKeepsFallback(t *testing.T) {
	fs := newTestFileStore(t)

	require.NoError(t, os.WriteFile(fs.DataPath(KeyCart), []byte("  \n"), 0o644))

	items := []models.FoodItem{{ID: "sentinel"}}
	require.NoError(t, fs.Load(KeyCart, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "sentinel", items[0].ID)
}

func TestSyncRoundTrip(t *testing.T) {
	fs := newTestFileStore(t)

	written := []models.Request{
		{ID: "1", Name: "Dal", Quantity: "5", Status: models.RequestBooked},
		{ID: "2", Name: "Rice", Quantity: "3", Status: models.RequestAccepted},
	}
	require.NoError(t, fs.Sync(KeyRequests, written))

	read := []models.Request{}
	require.NoError(t, fs.Load(KeyRequests, &read))
	assert.Equal(t, written, read)
}

func TestSyncMirrorsEverythingButToday(t *testing.T) {
	fs := newTestFileStore(t)

	require.NoError(t, fs.Sync(KeyRequests, []models.Request{{ID: "1"}}))
	privateRaw, err := os.ReadFile(fs.DataPath(KeyRequests))
	require.NoError(t, err)
	publicRaw, err := os.ReadFile(fs.PublicPath(KeyRequests))
	require.NoError(t, err)
	assert.Equal(t, privateRaw, publicRaw, "mirror must be byte-for-byte identical")

	require.NoError(t, fs.Sync(KeyToday, []models.Serving{{ID: "1"}}))
	_, err = os.Stat(fs.PublicPath(KeyToday))
	assert.True(t, os.IsNotExist(err), "today's servings must not be mirrored by Sync")
}

func TestLoadMalformedJSONFails(t *testing.T) {
	fs := newTestFileStore(t)

	require.NoError(t, os.WriteFile(fs.DataPath(KeyFeedback), []byte("{not json"), 0o644))

	out := []models.Feedback{}
	assert.Error(t, fs.Load(KeyFeedback, &out))
}

func TestUpdateUnknownKey(t *testing.T) {
	fs := newTestFileStore(t)

	err := fs.Update(func() error { return nil }, Key("bogus"))
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestUpdateSerializesWriters(t *testing.T) {
	fs := newTestFileStore(t)

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			err := fs.Update(func() error {
				items := []models.FoodItem{}
				if err := fs.Load(KeyFoodItems, &items); err != nil {
					return err
				}
				items = append(items, models.FoodItem{ID: "x"})
				return fs.Sync(KeyFoodItems, items)
			}, KeyFoodItems)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items := []models.FoodItem{}
	require.NoError(t, fs.Load(KeyFoodItems, &items))
	assert.Len(t, items, writers, "no read-modify-write cycle may be lost")
}
