package persistence_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ambientchat/backend/internal/core"
	"ambientchat/backend/internal/persistence"
)

func TestManager_FlushAndRestoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	ctx := context.Background()

	// First process: register users, open a chat, post, flush.
	store := core.NewStore()
	pm := persistence.NewManager(store, persistence.NewFileStore(path), 0)

	a, err := store.Register("@al", "Al")
	require.NoError(t, err)
	b, err := store.Register("@bo", "Bo")
	require.NoError(t, err)
	chat, err := store.OpenChat(a.ID, b.ID)
	require.NoError(t, err)
	_, err = store.PostMessage(chat.ID, a.ID, "hi")
	require.NoError(t, err)
	_, err = store.React(chat.ID, 0, "👍", b.ID)
	require.NoError(t, err)

	require.NoError(t, pm.Flush(ctx))

	// Second process: restore into a fresh store.
	restored := core.NewStore()
	pm2 := persistence.NewManager(restored, persistence.NewFileStore(path), 0)
	pm2.Restore(ctx)

	_, err = restored.Login(a.ID, "@al")
	require.NoError(t, err, "restored user must be able to log in")

	got, err := restored.GetChat(chat.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hi", got.Messages[0].Text)
	assert.Len(t, got.Messages[0].Reactions, 1)
}

func TestManager_RestoreCorruptSnapshotStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	ctx := context.Background()
	fileStore := persistence.NewFileStore(path)
	require.NoError(t, fileStore.Save(ctx, []byte("{not json")))

	store := core.NewStore()
	pm := persistence.NewManager(store, fileStore, 0)

	// Must not panic or fail; state stays empty.
	pm.Restore(ctx)
	assert.Empty(t, store.Search(""))
}

func TestManager_RestoreMissingSnapshotStartsEmpty(t *testing.T) {
	store := core.NewStore()
	pm := persistence.NewManager(store, persistence.NewFileStore(filepath.Join(t.TempDir(), "none.json")), 0)

	pm.Restore(context.Background())
	assert.Empty(t, store.Search(""))
}

// failingStore always rejects writes, standing in for a broken disk.
type failingStore struct{}

func (failingStore) Load(ctx context.Context) ([]byte, error) { return nil, nil }
func (failingStore) Save(ctx context.Context, doc []byte) error {
	return errors.New("disk full")
}

func TestManager_FlushFailureIsReportedNotFatal(t *testing.T) {
	store := core.NewStore()
	pm := persistence.NewManager(store, failingStore{}, 0)

	// The mutation itself still succeeds; only the flush errors.
	_, err := store.Register("@al", "Al")
	require.NoError(t, err)
	assert.Error(t, pm.Flush(context.Background()))
	assert.Len(t, store.Search(""), 1)
}

func TestManager_FlushSoonNeverBlocks(t *testing.T) {
	store := core.NewStore()
	pm := persistence.NewManager(store, failingStore{}, 0)

	// No Run loop draining the channel; repeated notifies must not block.
	for i := 0; i < 10; i++ {
		pm.FlushSoon()
	}
}
