package repository

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dekorhouse/internal/testutil"
)

// Unit Tests

func TestNewMySQLRepository(t *testing.T) {
	db := &sqlx.DB{}
	repo := NewMySQLRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestRepository_FindByIDs_EmptyListSkipsQuery(t *testing.T) {
	repo := NewMySQLRepository(nil)

	products, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, products)
}

// Integration Tests

func TestRepository_FindByIDs_WithColors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRepository(db)

	vaseID := testutil.InsertProduct(t, db, "Ваза", "V-001", 100000, true)
	lampID := testutil.InsertProduct(t, db, "Лампа", "L-002", 45000, false)
	goldID := testutil.InsertColor(t, db, vaseID, "Золотой", 5000)
	testutil.InsertColor(t, db, vaseID, "Белый", 0)

	products, err := repo.FindByIDs(context.Background(), []int64{vaseID, lampID})
	require.NoError(t, err)
	require.Len(t, products, 2)

	vase := products[0]
	assert.Equal(t, vaseID, vase.ID)
	assert.Equal(t, "V-001", vase.Code)
	assert.Equal(t, int64(100000), vase.Price)
	assert.True(t, vase.IsActive)
	require.Len(t, vase.Colors, 2)
	assert.Equal(t, goldID, vase.Colors[0].ID)
	assert.Equal(t, int64(5000), vase.Colors[0].PriceModifier)

	lamp := products[1]
	assert.False(t, lamp.IsActive)
	assert.Empty(t, lamp.Colors)
}

func TestRepository_FindByIDs_MissingIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRepository(db)

	products, err := repo.FindByIDs(context.Background(), []int64{987654})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestRepository_FindByIDsTx_InsideTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRepository(db)
	id := testutil.InsertProduct(t, db, "Зеркало", "M-003", 250000, true)

	tx, err := db.Beginx()
	require.NoError(t, err)
	defer tx.Rollback()

	products, err := repo.FindByIDsTx(context.Background(), tx, []int64{id})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Зеркало", products[0].NameRu)
}
