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

func TestDiagnosisRepo_ScopedNewestFirst(t *testing.T) {
	db, err := database.OpenMigrated(":memory:")
	require.NoError(t, err)
	r := New(db)
	ctx := context.Background()

	base := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	for i, d := range []entities.CropDiagnosis{
		{UserID: "u1", Disease: "first", Timestamp: base},
		{UserID: "u2", Disease: "other user", Timestamp: base.Add(time.Hour)},
		{UserID: "u1", Disease: "second", Timestamp: base.Add(2 * time.Hour), Treatment: []string{"a", "b"}},
	} {
		require.NoError(t, r.Create(ctx, &d), i)
		assert.NotEmpty(t, d.DiagnosisID)
	}

	got, err := r.ListByUser(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Disease)
	assert.Equal(t, []string{"a", "b"}, got[0].Treatment)
	assert.Equal(t, "first", got[1].Disease)

	got, err = r.ListByUser(ctx, "u1", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	n, err := r.CountByUser(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	got, err = r.ListByUser(ctx, "nobody", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiagnosisRepo_SameTimestampKeepsInsertOrder(t *testing.T) {
	db, err := database.OpenMigrated(":memory:")
	require.NoError(t, err)
	r := New(db)
	ctx := context.Background()

	at := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, r.Create(ctx, &entities.CropDiagnosis{UserID: "u1", Disease: "older", Timestamp: at}))
	require.NoError(t, r.Create(ctx, &entities.CropDiagnosis{UserID: "u1", Disease: "newer", Timestamp: at}))

	got, err := r.ListByUser(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "newer", got[0].Disease)
}
