package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusflow/floweditor/internal/core/canvas"
	"github.com/nexusflow/floweditor/internal/core/draft"
)

func newTestSaver(t *testing.T) *DraftSaver {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	saver := NewDraftSaver(db, nil)
	require.NoError(t, saver.EnsureSchema(context.Background()))
	return saver
}

func storedDraft(key string, savedAt time.Time) *draft.Draft {
	return &draft.Draft{
		Key:      key,
		Name:     "draft " + key,
		MaxSteps: 10,
		Nodes: []*canvas.Node{
			{
				ID:       "n1",
				Kind:     canvas.NodeKindAgent,
				Position: canvas.Position{X: 10, Y: 20},
				Data:     canvas.NodeData{Label: "A", Model: "openai/gpt-4", Temperature: 0.7},
			},
		},
		Edges:   []*canvas.Edge{{ID: "e1", Source: "n1", Target: "n1", Animated: true}},
		SavedAt: savedAt,
		Version: "1.0",
	}
}

func TestSQLiteDraftSaver_SaveAndLoad(t *testing.T) {
	saver := newTestSaver(t)
	ctx := context.Background()
	savedAt := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, saver.Save(ctx, storedDraft("flow-1", savedAt)))

	loaded, err := saver.Load(ctx, "flow-1")
	require.NoError(t, err)
	assert.Equal(t, "draft flow-1", loaded.Name)
	assert.Equal(t, 10, loaded.MaxSteps)
	assert.Equal(t, savedAt.Unix(), loaded.SavedAt.Unix())
	require.Len(t, loaded.Nodes, 1)
	assert.Equal(t, canvas.Position{X: 10, Y: 20}, loaded.Nodes[0].Position)
	assert.Equal(t, "openai/gpt-4", loaded.Nodes[0].Data.Model)
	require.Len(t, loaded.Edges, 1)
	assert.True(t, loaded.Edges[0].Animated)
}

func TestSQLiteDraftSaver_SaveReplaces(t *testing.T) {
	saver := newTestSaver(t)
	ctx := context.Background()

	require.NoError(t, saver.Save(ctx, storedDraft("k", time.Now())))
	updated := storedDraft("k", time.Now())
	updated.Name = "renamed"
	require.NoError(t, saver.Save(ctx, updated))

	loaded, err := saver.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "renamed", loaded.Name)

	drafts, err := saver.List(ctx, draft.Filter{})
	require.NoError(t, err)
	assert.Len(t, drafts, 1)
}

func TestSQLiteDraftSaver_Validation(t *testing.T) {
	saver := newTestSaver(t)
	ctx := context.Background()

	assert.ErrorIs(t, saver.Save(ctx, nil), draft.ErrNilDraft)
	assert.ErrorIs(t, saver.Save(ctx, &draft.Draft{Key: "k"}), draft.ErrNilNodes)

	_, err := saver.Load(ctx, "")
	assert.ErrorIs(t, err, draft.ErrInvalidDraftKey)
	_, err = saver.Load(ctx, "missing")
	assert.ErrorIs(t, err, draft.ErrDraftNotFound)
}

func TestSQLiteDraftSaver_List(t *testing.T) {
	saver := newTestSaver(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)
	for i, key := range []string{"a", "b", "c"} {
		require.NoError(t, saver.Save(ctx, storedDraft(key, base.Add(time.Duration(i)*time.Minute))))
	}

	t.Run("newest first", func(t *testing.T) {
		drafts, err := saver.List(ctx, draft.Filter{})
		require.NoError(t, err)
		require.Len(t, drafts, 3)
		assert.Equal(t, "c", drafts[0].Key)
	})

	t.Run("since", func(t *testing.T) {
		since := base.Add(30 * time.Second)
		drafts, err := saver.List(ctx, draft.Filter{Since: &since})
		require.NoError(t, err)
		assert.Len(t, drafts, 2)
	})

	t.Run("limit", func(t *testing.T) {
		drafts, err := saver.List(ctx, draft.Filter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, drafts, 2)
	})

	t.Run("offset without limit", func(t *testing.T) {
		drafts, err := saver.List(ctx, draft.Filter{Offset: 2})
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Equal(t, "a", drafts[0].Key)
	})

	t.Run("negative offset", func(t *testing.T) {
		_, err := saver.List(ctx, draft.Filter{Offset: -1})
		assert.ErrorIs(t, err, draft.ErrInvalidOffset)
	})
}

func TestSQLiteDraftSaver_Delete(t *testing.T) {
	saver := newTestSaver(t)
	ctx := context.Background()
	require.NoError(t, saver.Save(ctx, storedDraft("k", time.Now())))

	require.NoError(t, saver.Delete(ctx, "k"))
	_, err := saver.Load(ctx, "k")
	assert.ErrorIs(t, err, draft.ErrDraftNotFound)

	assert.NoError(t, saver.Delete(ctx, "k"))
	assert.ErrorIs(t, saver.Delete(ctx, ""), draft.ErrInvalidDraftKey)
}

func TestWithTableName(t *testing.T) {
	saver := newTestSaver(t)
	saver.WithTableName("editor_drafts")
	assert.Equal(t, "editor_drafts", saver.tableName)

	saver.WithTableName("drop table; --")
	assert.Equal(t, "editor_drafts", saver.tableName, "unsafe identifiers are ignored")
}
