package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"cafe-preorder-bot/internal/domain/menu"
	"cafe-preorder-bot/internal/domain/order"
	"cafe-preorder-bot/internal/domain/user"
	platformpg "cafe-preorder-bot/internal/platform/postgres"
)

// openTestDB connects to TEST_DATABASE_URL and empties every table.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := gorm.Open(gormpg.Open(dsn), &gorm.Config{Logger: platformpg.NewGormLogger(gormlogger.Silent, 0)})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, platformpg.EnsureSchema(ctx, db))
	require.NoError(t, db.Exec("TRUNCATE order_items, orders, menu_items, users RESTART IDENTITY CASCADE").Error)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, telegramID int64, username string) *user.User {
	t.Helper()
	u := &user.User{TelegramID: telegramID, Username: &username}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func seedItem(t *testing.T, db *gorm.DB, category, name string, price float64) *menu.Item {
	t.Helper()
	item := &menu.Item{Category: category, Name: name, Price: price, IsAvailable: true}
	require.NoError(t, NewMenuRepository(db).Create(context.Background(), item))
	return item
}

func TestUserRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	got, err := repo.GetByTelegramID(ctx, 100)
	require.NoError(t, err)
	assert.Nil(t, got)

	u := seedUser(t, db, 100, "alice")
	assert.NotZero(t, u.ID)

	got, err = repo.GetByTelegramID(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "@alice", got.DisplayName())

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMenuRepository_CategoriesAndAvailability(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewMenuRepository(db)

	latte := seedItem(t, db, "Напитки", "Латте", 1200)
	seedItem(t, db, "Напитки", "Чай", 500)
	hidden := &menu.Item{Category: "Десерты", Name: "Торт", Price: 900, IsAvailable: false}
	require.NoError(t, repo.Create(ctx, hidden))

	cats, err := repo.AvailableCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Напитки"}, cats)

	counts, err := repo.CategoryCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []menu.CategoryCount{{Category: "Десерты", Count: 1}, {Category: "Напитки", Count: 2}}, counts)

	photo := "file-1"
	latte.PhotoFileID = &photo
	require.NoError(t, repo.Update(ctx, latte))
	missing, err := repo.ListWithoutPhoto(ctx, "Напитки")
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, "Чай", missing[0].Name)

	renamed, err := repo.RenameCategory(ctx, "Напитки", "Кофе и чай")
	require.NoError(t, err)
	assert.Equal(t, int64(2), renamed)

	deleted, err := repo.DeleteCategory(ctx, "Десерты")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestOrderRepository_LifecycleAndStaleItems(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	menuRepo := NewMenuRepository(db)
	orders := NewOrderRepository(db)

	u := seedUser(t, db, 200, "bob")
	latte := seedItem(t, db, "Напитки", "Латте", 1000)
	cake := seedItem(t, db, "Десерты", "Чизкейк", 1500)

	o := &order.Order{
		UserID:     u.ID,
		PickupTime: time.Now().Add(time.Hour),
		Status:     order.StatusPending,
		Items: []order.Item{
			{MenuItemID: latte.ID, Quantity: 2},
			{MenuItemID: cake.ID, Quantity: 1},
		},
	}
	require.NoError(t, orders.Create(ctx, o))
	require.NotZero(t, o.ID)

	loaded, err := orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "@bob", loaded.User.DisplayName())
	require.Len(t, loaded.Items, 2)
	assert.InDelta(t, 3500, loaded.Total(), 0.001)

	// totals follow the current price
	latte.Price = 1100
	require.NoError(t, menuRepo.Update(ctx, latte))
	loaded, err = orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3700, loaded.Total(), 0.001)

	// hard delete keeps the stale id on the order line
	ok, err := menuRepo.Delete(ctx, cake.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	loaded, err = orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 2)
	assert.Equal(t, cake.ID, loaded.Items[1].MenuItemID)
	assert.Nil(t, loaded.Items[1].MenuItem)
	assert.InDelta(t, 2200, loaded.Total(), 0.001)

	stats, err := orders.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
	assert.Equal(t, int64(1), stats.Pending)
	assert.InDelta(t, 2200, stats.Revenue, 0.001)

	changed, err := orders.UpdateStatusIf(ctx, o.ID, order.StatusPending, order.StatusReady)
	require.NoError(t, err)
	assert.True(t, changed)
	changed, err = orders.UpdateStatusIf(ctx, o.ID, order.StatusPending, order.StatusCancelled)
	require.NoError(t, err)
	assert.False(t, changed)

	pending, err := orders.ListByStatus(ctx, order.StatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	mine, err := orders.ListByUser(ctx, u.ID, 5)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, order.StatusReady, mine[0].Status)

	missing, err := orders.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDropMenuItemForeignKeys(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	// older deployments declared order_items.menu_item_id as a foreign key
	require.NoError(t, db.Exec(`ALTER TABLE order_items
		ADD CONSTRAINT order_items_menu_item_id_fkey
		FOREIGN KEY (menu_item_id) REFERENCES menu_items(id)`).Error)

	u := seedUser(t, db, 300, "carol")
	latte := seedItem(t, db, "Напитки", "Латте", 1000)
	o := &order.Order{
		UserID:     u.ID,
		PickupTime: time.Now().Add(time.Hour),
		Status:     order.StatusPending,
		Items:      []order.Item{{MenuItemID: latte.ID, Quantity: 1}},
	}
	require.NoError(t, NewOrderRepository(db).Create(ctx, o))

	menuRepo := NewMenuRepository(db)
	_, err := menuRepo.Delete(ctx, latte.ID)
	require.Error(t, err)

	dropped, err := platformpg.DropMenuItemForeignKeys(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)

	ok, err := menuRepo.Delete(ctx, latte.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	loaded, err := NewOrderRepository(db).GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, latte.ID, loaded.Items[0].MenuItemID)
	assert.Nil(t, loaded.Items[0].MenuItem)

	dropped, err = platformpg.DropMenuItemForeignKeys(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, dropped)
}
