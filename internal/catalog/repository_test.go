package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/electronicsstore/storefront/pkg/config"
	"github.com/electronicsstore/storefront/pkg/db"
	"github.com/electronicsstore/storefront/pkg/enums"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&productRecord{}))
	return db
}

func TestRepositoryListReturnsSeedInOrder(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seed := Seed()
	// insert in reverse to prove ordering comes from the query
	reversed := make([]Product, len(seed))
	for i, p := range seed {
		reversed[len(seed)-1-i] = p
	}
	require.NoError(t, repo.Upsert(ctx, reversed))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(seed))
	assert.Equal(t, seed, got)
}

func TestRepositoryUpsertIsIdempotent(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, Seed()))
	require.NoError(t, repo.Upsert(ctx, Seed()))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 8)
}

func TestRepositoryRejectsUnknownCategory(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	require.NoError(t, db.Create(&productRecord{ID: 1, Name: "Mystery", Category: "Пылесосы", Price: decimal.NewFromInt(1), Image: DefaultImage}).Error)

	_, err := repo.List(context.Background())
	require.Error(t, err)
}

func TestRepositoryFeedsFilter(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Upsert(ctx, Seed()))

	svc, err := NewService(repo, nil)
	require.NoError(t, err)

	got, err := svc.Search(ctx, FilterState{Query: "", Category: enums.CategorySmartphones})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "iPhone 15 Pro", got[0].Name)
	assert.Equal(t, "Samsung Galaxy S24", got[1].Name)
}

func TestRepositoryRejectsFractionalPrice(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	price := decimal.RequireFromString("99.50")
	require.NoError(t, db.Create(&productRecord{ID: 1, Name: "Cable", Category: enums.CategoryLaptops.String(), Price: price, Image: DefaultImage}).Error)

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode catalog row")
}

func TestWholeRubles(t *testing.T) {
	got, err := wholeRubles(decimal.RequireFromString("89990.00"))
	require.NoError(t, err)
	assert.Equal(t, int64(89990), got)

	_, err = wholeRubles(decimal.NewFromInt(-1))
	require.Error(t, err)

	_, err = wholeRubles(decimal.RequireFromString("0.01"))
	require.Error(t, err)
}

func TestSeedDatabaseRestoresCatalog(t *testing.T) {
	ctx := context.Background()
	client, err := db.New(ctx, config.DBConfig{
		Driver: config.DBDriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.DB().AutoMigrate(&productRecord{}))

	edited := Seed()
	edited[0].Price = 1
	require.NoError(t, NewRepository(client.DB()).Upsert(ctx, edited[:1]))

	require.NoError(t, SeedDatabase(ctx, client, Seed()))

	got, err := NewRepository(client.DB()).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, Seed(), got)
}

type failingTx struct{}

func (failingTx) WithTx(context.Context, func(tx *gorm.DB) error) error {
	return fmt.Errorf("connection reset")
}

func TestSeedDatabaseReportsDependencyError(t *testing.T) {
	err := SeedDatabase(context.Background(), failingTx{}, Seed())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed catalog")

	require.Error(t, SeedDatabase(context.Background(), nil, Seed()))
}
