package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/qommercehub/backoffice-backend/pkg/db/models"
	"github.com/qommercehub/backoffice-backend/pkg/errors"
	"github.com/qommercehub/backoffice-backend/pkg/pagination"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	// Every pooled connection to :memory: is its own database; pin the pool
	// to one connection so all queries see the same schema and data.
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, conn.AutoMigrate(
		&models.Tenant{},
		&models.Customer{},
		&models.InventoryItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return conn
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := newTestDB(t)
	svc, err := NewService(NewRepository(conn), nil)
	require.NoError(t, err)
	return svc, conn
}

func seedItem(t *testing.T, svc Service, tenantID uuid.UUID, name, sku string, qty int, price int64) *models.InventoryItem {
	t.Helper()
	item, err := svc.Create(context.Background(), tenantID, CreateInput{
		Name:     name,
		SKU:      sku,
		Quantity: qty,
		Price:    decimal.NewFromInt(price),
	})
	require.NoError(t, err)
	return item
}

func TestInventoryCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	tenantID := uuid.New()

	cases := []struct {
		name  string
		input CreateInput
	}{
		{"missing name", CreateInput{SKU: "SKU-1", Quantity: 1, Price: decimal.NewFromInt(5)}},
		{"missing sku", CreateInput{Name: "Widget", Quantity: 1, Price: decimal.NewFromInt(5)}},
		{"negative quantity", CreateInput{Name: "Widget", SKU: "SKU-1", Quantity: -1, Price: decimal.NewFromInt(5)}},
		{"negative price", CreateInput{Name: "Widget", SKU: "SKU-1", Quantity: 1, Price: decimal.NewFromInt(-5)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tenantID, tc.input)
			require.Error(t, err)
			assert.Equal(t, errors.CodeValidation, errors.As(err).Code())
		})
	}
}

func TestInventoryCreateAndGet(t *testing.T) {
	svc, _ := newTestService(t)
	tenantID := uuid.New()

	created := seedItem(t, svc, tenantID, "Widget", "SKU-1", 10, 25)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := svc.Get(context.Background(), tenantID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, 10, got.Quantity)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(25)))
}

func TestInventoryGetCrossTenantIsNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	owner := uuid.New()
	other := uuid.New()

	item := seedItem(t, svc, owner, "Widget", "SKU-1", 10, 25)

	_, err := svc.Get(context.Background(), other, item.ID)
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.As(err).Code())
}

func TestInventoryListSearchAndPagination(t *testing.T) {
	svc, _ := newTestService(t)
	tenantID := uuid.New()

	seedItem(t, svc, tenantID, "Blue Widget", "WID-BLUE", 5, 10)
	seedItem(t, svc, tenantID, "Red Widget", "WID-RED", 3, 12)
	seedItem(t, svc, tenantID, "Gadget", "GAD-1", 7, 30)
	seedItem(t, svc, uuid.New(), "Foreign Widget", "WID-X", 9, 10)

	items, meta, err := svc.List(context.Background(), tenantID, ListQuery{
		Search: "widget",
		SortBy: "name",
		Page:   pagination.Params{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), meta.Total)

	// Case-insensitive SKU match too.
	items, _, err = svc.List(context.Background(), tenantID, ListQuery{
		Search: "gad",
		Page:   pagination.Params{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Gadget", items[0].Name)

	// Page past the data is empty but keeps the total.
	items, meta, err = svc.List(context.Background(), tenantID, ListQuery{
		Page: pagination.Params{Page: 2, Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(3), meta.Total)
	assert.Equal(t, int64(2), meta.TotalPages)
}

func TestInventoryListSortWhitelist(t *testing.T) {
	svc, _ := newTestService(t)
	tenantID := uuid.New()
	seedItem(t, svc, tenantID, "A", "SKU-A", 1, 1)

	// An unknown sort column falls back to created_at rather than erroring or
	// reaching the database verbatim.
	_, _, err := svc.List(context.Background(), tenantID, ListQuery{
		SortBy: "1; DROP TABLE inventory",
		Page:   pagination.Params{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
}

func TestInventoryUpdatePartial(t *testing.T) {
	svc, _ := newTestService(t)
	tenantID := uuid.New()
	item := seedItem(t, svc, tenantID, "Widget", "SKU-1", 10, 25)

	qty := 42
	updated, err := svc.Update(context.Background(), tenantID, item.ID, UpdateInput{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 42, updated.Quantity)
	assert.Equal(t, "Widget", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(25)))
}

func TestInventoryUpdateRejectsEmptyPayload(t *testing.T) {
	svc, _ := newTestService(t)
	tenantID := uuid.New()
	item := seedItem(t, svc, tenantID, "Widget", "SKU-1", 10, 25)

	_, err := svc.Update(context.Background(), tenantID, item.ID, UpdateInput{})
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidation, errors.As(err).Code())
}

func TestInventoryUpdateCrossTenantIsNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	owner := uuid.New()
	item := seedItem(t, svc, owner, "Widget", "SKU-1", 10, 25)

	name := "Hijacked"
	_, err := svc.Update(context.Background(), uuid.New(), item.ID, UpdateInput{Name: &name})
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.As(err).Code())

	got, err := svc.Get(context.Background(), owner, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
}

func TestInventoryDeleteAndRestore(t *testing.T) {
	svc, _ := newTestService(t)
	tenantID := uuid.New()
	item := seedItem(t, svc, tenantID, "Widget", "SKU-1", 10, 25)

	require.NoError(t, svc.Delete(context.Background(), tenantID, item.ID))

	_, err := svc.Get(context.Background(), tenantID, item.ID)
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.As(err).Code())

	// Deleting twice reports not found.
	err = svc.Delete(context.Background(), tenantID, item.ID)
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.As(err).Code())

	restored, err := svc.Restore(context.Background(), tenantID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", restored.Name)
	assert.Equal(t, 10, restored.Quantity)
}
