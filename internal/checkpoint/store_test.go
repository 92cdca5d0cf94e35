package checkpoint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() Key {
	return Key{ModelType: "claude", Target: "trump", Action: ActionExplain, Split: SplitTrain}
}

func TestKey_Filename(t *testing.T) {
	assert.Equal(t, "checkpoint-claude-trump-explain-train.json", testKey().Filename())
}

func TestStore_LoadAbsent(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	rec, found, err := store.Load(testKey())
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, rec)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	key := testKey()

	rec := NewRecord(key, "english", 3)
	require.NoError(t, store.RecordBatch(key, 0, "batch zero", rec))
	require.NoError(t, store.RecordBatch(key, 2, "batch two", rec))

	loaded, found, err := store.Load(key)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, 3, loaded.TotalBatches)
	assert.Equal(t, "english", loaded.Language)
	assert.Equal(t, ActionExplain, loaded.Action)
	assert.Equal(t, "claude", loaded.ModelType)
	assert.ElementsMatch(t, []int{0, 2}, loaded.ProcessedBatches)

	raw, ok := loaded.Result(0)
	require.True(t, ok)
	assert.Equal(t, "batch zero", raw)

	_, ok = loaded.Result(1)
	assert.False(t, ok)
}

func TestStore_RecordBatchIdempotent(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	key := testKey()

	rec := NewRecord(key, "english", 2)
	require.NoError(t, store.RecordBatch(key, 1, "first write", rec))
	require.NoError(t, store.RecordBatch(key, 1, "second write", rec))

	assert.Equal(t, []int{1}, rec.ProcessedBatches, "re-marking must not duplicate the index")
	raw, _ := rec.Result(1)
	assert.Equal(t, "second write", raw)
}

func TestStore_MalformedFileTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, nil)
	key := testKey()

	require.NoError(t, os.WriteFile(filepath.Join(dir, key.Filename()), []byte("{not json"), 0644))

	rec, found, err := store.Load(key)
	require.NoError(t, err, "a corrupt checkpoint must never be fatal")
	assert.False(t, found)
	assert.Nil(t, rec)
}

func TestStore_OutOfRangeIndexTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, nil)
	key := testKey()

	// Index 5 with totalBatches 3 violates the subset invariant.
	bad := `{"processedBatches":[5],"results":{"5":"x"},"totalBatches":3,"target":"trump","action":"explain","modelType":"claude"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, key.Filename()), []byte(bad), 0644))

	_, found, err := store.Load(key)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_MissingResultTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, nil)
	key := testKey()

	bad := `{"processedBatches":[0],"results":{},"totalBatches":3,"target":"trump","action":"explain","modelType":"claude"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, key.Filename()), []byte(bad), 0644))

	_, found, err := store.Load(key)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_ListAndClearAll(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, nil)

	keyA := testKey()
	keyB := Key{ModelType: "gpt4", Target: "trump", Action: ActionClassify, Split: SplitTest}
	require.NoError(t, store.Save(keyA, NewRecord(keyA, "english", 1)))
	require.NoError(t, store.Save(keyB, NewRecord(keyB, "english", 1)))

	// Unrelated files are left alone.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0644))

	names, err := store.List()
	require.NoError(t, err)
	assert.Len(t, names, 2)

	require.NoError(t, store.ClearAll())

	names, err = store.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	_, statErr := os.Stat(filepath.Join(dir, "notes.txt"))
	assert.NoError(t, statErr)
}

func TestStore_ClearAllOnMissingDir(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "never-created"), nil)
	assert.NoError(t, store.ClearAll())
}
