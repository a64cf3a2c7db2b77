package serviceImp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kisan/entities"
	"kisan/pkg/apperr"
)

type fakeProfiles map[string]*entities.User

func (f fakeProfiles) Profile(_ context.Context, uid string) (*entities.User, error) {
	if u, ok := f[uid]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("user not found")
}

type fakeDiagnoses struct {
	items []entities.CropDiagnosis
	err   error
}

func (f fakeDiagnoses) List(_ context.Context, _ string, limit int) ([]entities.CropDiagnosis, error) {
	return f.items[:min(limit, len(f.items))], f.err
}

func (f fakeDiagnoses) Count(context.Context, string) (int64, error) {
	return int64(len(f.items)), f.err
}

type fakeConversations []entities.Conversation

func (f fakeConversations) ListConversations(_ context.Context, _ string, limit int) ([]entities.Conversation, error) {
	return f[:min(limit, len(f))], nil
}

func (f fakeConversations) CountConversations(context.Context, string) (int64, error) {
	return int64(len(f)), nil
}

func TestOverview(t *testing.T) {
	at := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	diags := fakeDiagnoses{items: []entities.CropDiagnosis{
		{DiagnosisID: "d4", Disease: "Early Blight", Severity: "Moderate", Confidence: 92, Timestamp: at},
		{DiagnosisID: "d3"}, {DiagnosisID: "d2"}, {DiagnosisID: "d1"},
	}}
	convs := fakeConversations{
		{ConversationID: "c2", Messages: []entities.Turn{{Content: "tomato price?"}, {Content: "₹2,800"}}},
		{ConversationID: "c1"},
		{ConversationID: "c0"},
	}
	svc := New(fakeProfiles{"u1": {UserID: "u1", Name: "Ravi", Language: "kannada"}}, diags, convs)

	o, err := svc.Overview(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ravi", o.Name)
	assert.Equal(t, "N/A", o.FarmSize)
	assert.Equal(t, "Not set", o.Location)
	assert.EqualValues(t, 4, o.Stats.Diagnoses)
	assert.EqualValues(t, 3, o.Stats.Conversations)
	require.Len(t, o.RecentDiagnoses, 3)
	assert.Equal(t, "d4", o.RecentDiagnoses[0].ID)
	assert.Equal(t, 92, o.RecentDiagnoses[0].Confidence)
	require.Len(t, o.RecentConversations, 2)
	assert.Equal(t, 2, o.RecentConversations[0].Messages)
	assert.Equal(t, "tomato price?", o.RecentConversations[0].FirstMessage)
	assert.Empty(t, o.RecentConversations[1].FirstMessage)
}

func TestOverview_Errors(t *testing.T) {
	profiles := fakeProfiles{"u1": {UserID: "u1", Name: "Ravi", FarmSize: "small", Location: "Mandya"}}

	_, err := New(profiles, fakeDiagnoses{}, fakeConversations{}).Overview(context.Background(), "ghost")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	boom := errors.New("db locked")
	_, err = New(profiles, fakeDiagnoses{err: boom}, fakeConversations{}).Overview(context.Background(), "u1")
	assert.ErrorIs(t, err, boom)

	o, err := New(profiles, fakeDiagnoses{}, fakeConversations{}).Overview(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "small", o.FarmSize)
	assert.Equal(t, "Mandya", o.Location)
	assert.NotNil(t, o.RecentDiagnoses)
}
