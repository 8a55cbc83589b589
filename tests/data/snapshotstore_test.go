package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/performance"
)

func TestSnapshotStore_UpsertAndList(t *testing.T) {
	mgr := testManager(t)
	store := mgr.SnapshotStore()
	ctx := testContext()

	require.NoError(t, store.UpsertSnapshot(ctx, "p1", models.Snapshot{Date: "2024-02-01", Value: dec("1100.10"), NetFlow: dec("-25.5")}))
	require.NoError(t, store.UpsertSnapshot(ctx, "p1", models.Snapshot{Date: "2024-01-01", Value: dec("1000"), NetFlow: dec("1000")}))
	require.NoError(t, store.UpsertSnapshot(ctx, "p2", models.Snapshot{Date: "2024-01-01", Value: dec("7")}))

	list, err := store.ListSnapshots(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 2)

	byDate := map[string]models.Snapshot{}
	for _, s := range list {
		byDate[s.Date] = s
	}
	assert.True(t, byDate["2024-02-01"].Value.Equal(dec("1100.10")))
	assert.True(t, byDate["2024-02-01"].NetFlow.Equal(dec("-25.5")))
	assert.True(t, byDate["2024-01-01"].NetFlow.Equal(dec("1000")))
}

func TestSnapshotStore_UpsertReplacesMonth(t *testing.T) {
	mgr := testManager(t)
	store := mgr.SnapshotStore()
	ctx := testContext()

	require.NoError(t, store.UpsertSnapshot(ctx, "p1", models.Snapshot{Date: "2024-01-01", Value: dec("1")}))
	require.NoError(t, store.UpsertSnapshot(ctx, "p1", models.Snapshot{Date: "2024-01-01", Value: dec("2"), NetFlow: dec("3")}))

	list, err := store.ListSnapshots(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Value.Equal(dec("2")))
	assert.True(t, list[0].NetFlow.Equal(dec("3")))
}

func TestSnapshotStore_UpdateAndNotFound(t *testing.T) {
	mgr := testManager(t)
	store := mgr.SnapshotStore()
	ctx := testContext()

	require.NoError(t, store.UpsertSnapshot(ctx, "p1", models.Snapshot{Date: "2024-01-01", Value: dec("100")}))
	require.NoError(t, store.UpdateSnapshot(ctx, "p1", "2024-01-01", dec("120.75"), dec("10")))

	got, err := store.GetSnapshot(ctx, "p1", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "120.75", got.Value.String())
	assert.Equal(t, "10", got.NetFlow.String())

	err = store.UpdateSnapshot(ctx, "p1", "2030-01-01", dec("1"), dec("0"))
	assert.ErrorIs(t, err, interfaces.ErrNotFound)

	_, err = store.GetSnapshot(ctx, "p1", "2030-01-01")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestSnapshotStore_Delete(t *testing.T) {
	mgr := testManager(t)
	store := mgr.SnapshotStore()
	ctx := testContext()

	require.NoError(t, store.UpsertSnapshot(ctx, "p1", models.Snapshot{Date: "2024-01-01", Value: dec("100")}))
	require.NoError(t, store.DeleteSnapshot(ctx, "p1", "2024-01-01"))
	require.NoError(t, store.DeleteSnapshot(ctx, "p1", "2024-01-01"))

	list, err := store.ListSnapshots(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSnapshotStore_FeedsTransform(t *testing.T) {
	mgr := testManager(t)
	store := mgr.SnapshotStore()
	ctx := testContext()

	for _, s := range []models.Snapshot{
		{Date: "2024-03-01", Value: dec("1210")},
		{Date: "2024-01-01", Value: dec("1000"), NetFlow: dec("1000")},
		{Date: "2024-02-01", Value: dec("1100")},
	} {
		require.NoError(t, store.UpsertSnapshot(ctx, "p1", s))
	}

	list, err := store.ListSnapshots(ctx, "p1")
	require.NoError(t, err)

	report := performance.Transform(list)
	require.Len(t, report.Table, 3)
	assert.Equal(t, "2024-03-01", report.Table[0].Date)
	assert.Equal(t, "+10.00%", report.Table[0].FormattedMoMReturn)
	assert.Equal(t, "+21.00%", report.Table[0].FormattedYTDReturn)
}
