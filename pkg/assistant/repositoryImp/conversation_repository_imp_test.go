package repositoryImp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kisan/database"
	"kisan/entities"
)

func TestConversationRepo(t *testing.T) {
	db, err := database.OpenMigrated(":memory:")
	require.NoError(t, err)
	r := New(db)
	ctx := context.Background()
	at := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

	first := &entities.Conversation{UserID: "u1", CreatedAt: at, Messages: []entities.Turn{
		{Role: entities.RoleUser, Content: "ಟೊಮೇಟೊ ಬೆಲೆ ಎಷ್ಟು ಇದೆ?", Timestamp: at, Language: "kannada"},
		{Role: entities.RoleAssistant, Content: "₹2,800", Timestamp: at, Language: "kannada"},
	}}
	require.NoError(t, r.Create(ctx, first))
	require.NoError(t, r.Create(ctx, &entities.Conversation{UserID: "u2", CreatedAt: at}))
	require.NoError(t, r.Create(ctx, &entities.Conversation{UserID: "u1", CreatedAt: at.Add(time.Minute)}))

	got, err := r.ListByUser(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Empty(t, got[0].Messages)
	assert.Equal(t, first.ConversationID, got[1].ConversationID)
	require.Len(t, got[1].Messages, 2)
	assert.Equal(t, entities.RoleAssistant, got[1].Messages[1].Role)
	assert.Equal(t, "ಟೊಮೇಟೊ ಬೆಲೆ ಎಷ್ಟು ಇದೆ?", got[1].Messages[0].Content)

	n, err := r.CountByUser(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	got, err = r.ListByUser(ctx, "u1", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
