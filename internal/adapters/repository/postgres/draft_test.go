package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexusflow/floweditor/internal/core/canvas"
	"github.com/nexusflow/floweditor/internal/core/draft"
	"github.com/nexusflow/floweditor/pkg/serialization"
)

func TestPostgresDraftSaver(t *testing.T) {
	t.Skip("Integration test requires PostgreSQL database")

	// This test would require an actual PostgreSQL instance.
	// For CI/CD, this should be run with docker-compose or testcontainers.
}

func TestPostgresDraftSaver_Errors(t *testing.T) {
	ctx := context.Background()

	// Guard paths run before any pool access, so a nil pool is fine here.
	saver := &DraftSaver{
		pool:       nil,
		serializer: serialization.DefaultSerializer(),
		tableName:  "drafts",
	}

	t.Run("save nil draft", func(t *testing.T) {
		assert.ErrorIs(t, saver.Save(ctx, nil), draft.ErrNilDraft)
	})

	t.Run("save without key", func(t *testing.T) {
		err := saver.Save(ctx, &draft.Draft{Nodes: []*canvas.Node{}})
		assert.ErrorIs(t, err, draft.ErrInvalidDraftKey)
	})

	t.Run("save without nodes", func(t *testing.T) {
		assert.ErrorIs(t, saver.Save(ctx, &draft.Draft{Key: "k"}), draft.ErrNilNodes)
	})

	t.Run("load empty key", func(t *testing.T) {
		_, err := saver.Load(ctx, "")
		assert.ErrorIs(t, err, draft.ErrInvalidDraftKey)
	})

	t.Run("delete empty key", func(t *testing.T) {
		assert.ErrorIs(t, saver.Delete(ctx, ""), draft.ErrInvalidDraftKey)
	})

	t.Run("list with negative limit", func(t *testing.T) {
		_, err := saver.List(ctx, draft.Filter{Limit: -1})
		assert.ErrorIs(t, err, draft.ErrInvalidLimit)
	})
}

func TestNewDraftSaver_DefaultSerializer(t *testing.T) {
	saver := NewDraftSaver(nil, nil)
	assert.NotNil(t, saver.serializer)
	assert.Equal(t, "drafts", saver.tableName)
}
