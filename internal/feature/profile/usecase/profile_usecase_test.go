package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	addressadapters "storefront/internal/feature/address/adapters"
	address "storefront/internal/feature/address/domain/entity"
	authadapters "storefront/internal/feature/auth/adapters"
	user "storefront/internal/feature/auth/domain/entity"
	authusecase "storefront/internal/feature/auth/usecase"
	catalog "storefront/internal/feature/catalog/domain/entity"
	favouriteadapters "storefront/internal/feature/favourite/adapters"
	favourite "storefront/internal/feature/favourite/domain/entity"
	orderadapters "storefront/internal/feature/order/adapters"
	order "storefront/internal/feature/order/domain/entity"
)

// countingFetcher serves a fixed catalog and counts batched lookups.
type countingFetcher struct {
	products map[uint]catalog.ProductSummary
	calls    int
}

func (f *countingFetcher) FindSummariesByIDs(ctx context.Context, ids []uint) ([]catalog.ProductSummary, error) {
	f.calls++
	var out []catalog.ProductSummary
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func setupIdentityDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&user.User{}, &address.Address{}, &favourite.Favourite{}, &order.Order{}, &order.CartItem{}))
	return db
}

func newUsecase(db *gorm.DB, fetcher *countingFetcher) *ProfileUsecase {
	return NewProfileUsecase(
		authadapters.NewUserRepository(db),
		addressadapters.NewAddressRepository(db),
		favouriteadapters.NewFavouriteRepository(db),
		orderadapters.NewOrderRepository(db),
		fetcher,
	)
}

func TestProfileUsecase_Me(t *testing.T) {
	t.Parallel()

	db := setupIdentityDB(t)
	ctx := context.Background()
	fetcher := &countingFetcher{products: map[uint]catalog.ProductSummary{
		1: {ID: 1, Name: "Headphones"},
		2: {ID: 2, Name: "Mug"},
	}}

	u := &user.User{Name: "Ada", Email: "ada@example.com", Password: "x"}
	require.NoError(t, db.Create(u).Error)
	addresses := addressadapters.NewAddressRepository(db)
	home := &address.Address{UserID: u.ID, Name: "Home", AddressLine: "1 Main", Phone: "1"}
	work := &address.Address{UserID: u.ID, Name: "Work", AddressLine: "2 Side", Phone: "2"}
	require.NoError(t, addresses.Create(ctx, home))
	require.NoError(t, addresses.Create(ctx, work))
	require.NoError(t, addresses.SetDefault(ctx, u.ID, work.ID))

	favs := favouriteadapters.NewFavouriteRepository(db)
	_, err := favs.Add(ctx, u.ID, 2)
	require.NoError(t, err)
	_, err = favs.Add(ctx, u.ID, 404)
	require.NoError(t, err)

	cart := orderadapters.NewCartRepository(db)
	_, err = cart.Add(ctx, u.ID, 1, 1)
	require.NoError(t, err)
	_, err = cart.Checkout(ctx, u.ID)
	require.NoError(t, err)

	me, err := newUsecase(db, fetcher).Me(ctx, u.ID)

	require.NoError(t, err)
	assert.Equal(t, "Ada", me.Name)
	require.Len(t, me.Addresses, 2)
	assert.Equal(t, work.ID, me.Addresses[0].ID, "primary address first")
	assert.True(t, me.Addresses[0].IsPrimary)
	require.Len(t, me.Favourites, 2)
	assert.Equal(t, "Mug", me.Favourites[0].Product.Name)
	assert.Nil(t, me.Favourites[1].Product)
	require.Len(t, me.Orders, 1)
	assert.Equal(t, "Headphones", me.Orders[0].Product.Name)
	assert.Equal(t, 2, fetcher.calls, "one batch for favourites, one for orders")
}

func TestProfileUsecase_Me_EmptyCollections(t *testing.T) {
	t.Parallel()

	db := setupIdentityDB(t)
	u := &user.User{Name: "New", Email: "new@example.com", Password: "x"}
	require.NoError(t, db.Create(u).Error)
	fetcher := &countingFetcher{}

	me, err := newUsecase(db, fetcher).Me(context.Background(), u.ID)

	require.NoError(t, err)
	assert.NotNil(t, me.Addresses)
	assert.NotNil(t, me.Favourites)
	assert.NotNil(t, me.Orders)
	assert.Zero(t, fetcher.calls)
}

func TestProfileUsecase_Me_UnknownUser(t *testing.T) {
	t.Parallel()

	_, err := newUsecase(setupIdentityDB(t), &countingFetcher{}).Me(context.Background(), 77)

	assert.ErrorIs(t, err, authusecase.ErrUserNotFound)
}

func TestProfileUsecase_UpdateUser(t *testing.T) {
	t.Parallel()

	db := setupIdentityDB(t)
	ctx := context.Background()
	a := &user.User{Name: "A", Email: "a@example.com", Password: "x"}
	b := &user.User{Name: "B", Email: "b@example.com", Password: "y"}
	require.NoError(t, db.Create(a).Error)
	require.NoError(t, db.Create(b).Error)
	uc := newUsecase(db, &countingFetcher{})

	str := func(s string) *string { return &s }

	t.Run("nothing to update", func(t *testing.T) {
		_, err := uc.UpdateUser(ctx, a.ID, nil, str("  "))
		assert.ErrorIs(t, err, ErrNothingToUpdate)
	})

	t.Run("name only", func(t *testing.T) {
		got, err := uc.UpdateUser(ctx, a.ID, str(" Alice "), nil)
		require.NoError(t, err)
		assert.Equal(t, "Alice", got.Name)
		assert.Equal(t, "a@example.com", got.Email)
	})

	t.Run("email is lower-cased", func(t *testing.T) {
		got, err := uc.UpdateUser(ctx, a.ID, nil, str("Alice@Example.com"))
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", got.Email)
	})

	t.Run("email taken", func(t *testing.T) {
		_, err := uc.UpdateUser(ctx, a.ID, nil, str("B@example.com"))
		assert.ErrorIs(t, err, authusecase.ErrEmailAlreadyExists)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := uc.UpdateUser(ctx, 999, str("x"), nil)
		assert.ErrorIs(t, err, authusecase.ErrUserNotFound)
	})
}
