package dao_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/trottiparts/trottiparts-api/internal/repository/dao"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, dao.InitTables(db))

	return db
}

func seedPart(t *testing.T, db *gorm.DB, name string, stock int) dao.Part {
	t.Helper()

	category := dao.Category{Name: "Freinage", Slug: "freinage-" + name}
	require.NoError(t, db.Create(&category).Error)

	part := dao.Part{
		Name:          name,
		Slug:          name,
		CategoryID:    category.ID,
		PriceCents:    1999,
		StockQuantity: stock,
	}
	require.NoError(t, db.Create(&part).Error)
	return part
}

func TestUserDAO_InsertDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	d := dao.NewUserDAO(db)
	ctx := context.Background()

	_, err := d.Insert(ctx, dao.User{Email: "lea@example.fr", Password: "x", Name: "Léa"},
		dao.Profile{DisplayName: "Léa"})
	require.NoError(t, err)

	_, err = d.Insert(ctx, dao.User{Email: "lea@example.fr", Password: "y", Name: "Léa bis"},
		dao.Profile{DisplayName: "Léa bis"})
	assert.ErrorIs(t, err, dao.ErrUserEmailExists)
}

func TestUserDAO_AddPoints(t *testing.T) {
	db := openTestDB(t)
	d := dao.NewUserDAO(db)
	ctx := context.Background()

	user, err := d.Insert(ctx, dao.User{Email: "lea@example.fr", Password: "x", Name: "Léa"},
		dao.Profile{DisplayName: "Léa", PerformancePoints: 50})
	require.NoError(t, err)

	profile, err := d.AddPoints(ctx, user.ID, 25)
	require.NoError(t, err)
	assert.Equal(t, 75, profile.PerformancePoints)

	_, err = d.AddPoints(ctx, 999, 25)
	assert.ErrorIs(t, err, dao.ErrProfileNotFound)
}

func TestOrderDAO_InsertWithItems(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	part := seedPart(t, db, "frein-avant", 5)

	cartDAO := dao.NewCartDAO(db)
	cart, err := cartDAO.EnsureCart(ctx, 1)
	require.NoError(t, err)
	_, err = cartDAO.UpsertItem(ctx, dao.CartItem{
		CartID: cart.ID, PartID: part.ID, Name: part.Name,
		UnitPriceCents: part.PriceCents, Quantity: 2, StockCeiling: 5,
	})
	require.NoError(t, err)

	orderDAO := dao.NewOrderDAO(db)
	order, err := orderDAO.InsertWithItems(ctx, dao.Order{
		Number: "TP-AAAA0001", UserID: 1, CustomerName: "Léa", CustomerEmail: "lea@example.fr",
		SubtotalCents: 3998, TaxCents: 800, TotalCents: 4798, Status: "pending",
	}, []dao.OrderItem{
		{PartID: part.ID, Name: part.Name, UnitPriceCents: part.PriceCents, Quantity: 2},
	}, cart.ID)
	require.NoError(t, err)
	require.NotZero(t, order.ID)

	// Stock was decremented.
	var after dao.Part
	require.NoError(t, db.First(&after, part.ID).Error)
	assert.Equal(t, 3, after.StockQuantity)

	// The cart was emptied in the same transaction.
	refreshed, err := cartDAO.EnsureCart(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, refreshed.Items)
}

func TestOrderDAO_InsertWithItems_InsufficientStockRollsBack(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	part := seedPart(t, db, "batterie-36v", 1)

	cartDAO := dao.NewCartDAO(db)
	cart, err := cartDAO.EnsureCart(ctx, 1)
	require.NoError(t, err)
	_, err = cartDAO.UpsertItem(ctx, dao.CartItem{
		CartID: cart.ID, PartID: part.ID, Name: part.Name,
		UnitPriceCents: part.PriceCents, Quantity: 3, StockCeiling: 1,
	})
	require.NoError(t, err)

	orderDAO := dao.NewOrderDAO(db)
	_, err = orderDAO.InsertWithItems(ctx, dao.Order{
		Number: "TP-BBBB0002", UserID: 1, CustomerName: "Léa", CustomerEmail: "lea@example.fr",
		SubtotalCents: 5997, TaxCents: 1199, TotalCents: 7196, Status: "pending",
	}, []dao.OrderItem{
		{PartID: part.ID, Name: part.Name, UnitPriceCents: part.PriceCents, Quantity: 3},
	}, cart.ID)
	assert.ErrorIs(t, err, dao.ErrInsufficientStock)

	// Nothing stuck: no order row, stock intact, cart untouched.
	var count int64
	require.NoError(t, db.Model(&dao.Order{}).Count(&count).Error)
	assert.Zero(t, count)

	var after dao.Part
	require.NoError(t, db.First(&after, part.ID).Error)
	assert.Equal(t, 1, after.StockQuantity)

	refreshed, err := cartDAO.EnsureCart(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, refreshed.Items, 1)
}

func TestOrderDAO_InsertWithItems_ExactStockSellsOut(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	part := seedPart(t, db, "pneu-10", 2)
	cartDAO := dao.NewCartDAO(db)
	orderDAO := dao.NewOrderDAO(db)

	cart, err := cartDAO.EnsureCart(ctx, 1)
	require.NoError(t, err)
	_, err = cartDAO.UpsertItem(ctx, dao.CartItem{
		CartID: cart.ID, PartID: part.ID, Name: part.Name,
		UnitPriceCents: part.PriceCents, Quantity: 2, StockCeiling: 2,
	})
	require.NoError(t, err)

	// Buying the last two units is allowed.
	_, err = orderDAO.InsertWithItems(ctx, dao.Order{
		Number: "TP-CCCC0001", UserID: 1, CustomerName: "Léa", CustomerEmail: "lea@example.fr",
		SubtotalCents: 3998, TaxCents: 800, TotalCents: 4798, Status: "pending",
	}, []dao.OrderItem{
		{PartID: part.ID, Name: part.Name, UnitPriceCents: part.PriceCents, Quantity: 2},
	}, cart.ID)
	require.NoError(t, err)

	var after dao.Part
	require.NoError(t, db.First(&after, part.ID).Error)
	assert.Zero(t, after.StockQuantity)

	// The shelf is empty now; the next buyer is refused.
	other, err := cartDAO.EnsureCart(ctx, 2)
	require.NoError(t, err)
	_, err = orderDAO.InsertWithItems(ctx, dao.Order{
		Number: "TP-CCCC0002", UserID: 2, CustomerName: "Noa", CustomerEmail: "noa@example.fr",
		SubtotalCents: 1999, TaxCents: 400, TotalCents: 2399, Status: "pending",
	}, []dao.OrderItem{
		{PartID: part.ID, Name: part.Name, UnitPriceCents: part.PriceCents, Quantity: 1},
	}, other.ID)
	assert.ErrorIs(t, err, dao.ErrInsufficientStock)
}

func TestCatalogDAO_SearchMixedCase(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	seedPart(t, db, "frein avant xiaomi", 3)
	d := dao.NewCatalogDAO(db)

	// The raw query arrives as the user typed it.
	parts, err := d.SearchParts(ctx, "Xiaomi", 5)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "frein avant xiaomi", parts[0].Name)

	parts, err = d.SearchParts(ctx, "FREIN", 5)
	require.NoError(t, err)
	assert.Len(t, parts, 1)
}

func TestGarageDAO_DuplicatePair(t *testing.T) {
	db := openTestDB(t)
	d := dao.NewGarageDAO(db)
	ctx := context.Background()

	_, err := d.Insert(ctx, dao.GarageItem{UserID: 1, ScooterModelID: 10, Status: "favorited"})
	require.NoError(t, err)

	_, err = d.Insert(ctx, dao.GarageItem{UserID: 1, ScooterModelID: 10, Status: "owned"})
	assert.ErrorIs(t, err, dao.ErrAlreadyInGarage)

	// Same scooter for another user is fine.
	_, err = d.Insert(ctx, dao.GarageItem{UserID: 2, ScooterModelID: 10, Status: "favorited"})
	assert.NoError(t, err)
}

func TestSearchDAO_HistoryCapAndDedup(t *testing.T) {
	db := openTestDB(t)
	d := dao.NewSearchDAO(db)
	ctx := context.Background()

	const historyCap = 3
	slugs := []string{"a", "b", "c", "d"}
	for _, s := range slugs {
		require.NoError(t, d.RecordSelection(ctx, dao.SearchEntry{
			UserID: 1, Type: "parts", Slug: s, Label: s,
		}, historyCap))
	}

	history, err := d.FindHistory(ctx, 1, historyCap)
	require.NoError(t, err)
	require.Len(t, history, historyCap)
	assert.Equal(t, "d", history[0].Slug)
	assert.Equal(t, "b", history[2].Slug)

	// Re-selecting an existing entry moves it to the front without growing
	// the list.
	require.NoError(t, d.RecordSelection(ctx, dao.SearchEntry{
		UserID: 1, Type: "parts", Slug: "c", Label: "c",
	}, historyCap))

	history, err = d.FindHistory(ctx, 1, historyCap)
	require.NoError(t, err)
	require.Len(t, history, historyCap)
	assert.Equal(t, "c", history[0].Slug)
}
