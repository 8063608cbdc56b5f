package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/feature/address/domain/entity"
)

type mockAddressRepository struct {
	ListByUserFunc func(ctx context.Context, userID uint) ([]entity.Address, error)
	CreateFunc     func(ctx context.Context, a *entity.Address) error
	UpdateFunc     func(ctx context.Context, userID, id uint, patch entity.AddressPatch) (*entity.Address, error)
	SetDefaultFunc func(ctx context.Context, userID, id uint) error
	DeleteFunc     func(ctx context.Context, userID, id uint) error
}

func (m *mockAddressRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Address, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockAddressRepository) Create(ctx context.Context, a *entity.Address) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	a.ID = 1
	return nil
}

func (m *mockAddressRepository) Update(ctx context.Context, userID, id uint, patch entity.AddressPatch) (*entity.Address, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, patch)
	}
	a := &entity.Address{ID: id, UserID: userID}
	patch.Apply(a)
	return a, nil
}

func (m *mockAddressRepository) SetDefault(ctx context.Context, userID, id uint) error {
	if m.SetDefaultFunc != nil {
		return m.SetDefaultFunc(ctx, userID, id)
	}
	return nil
}

func (m *mockAddressRepository) Delete(ctx context.Context, userID, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

func TestAddressUsecase_Add(t *testing.T) {
	t.Parallel()

	t.Run("stores trimmed address for the caller", func(t *testing.T) {
		var stored *entity.Address
		repo := &mockAddressRepository{CreateFunc: func(ctx context.Context, a *entity.Address) error {
			stored = a
			a.ID = 10
			return nil
		}}

		got, err := NewAddressUsecase(repo).Add(context.Background(), 4, entity.Address{
			ID: 999, UserID: 77, Name: " Ada ", AddressLine: "1 Main St", Phone: "555",
		})

		require.NoError(t, err)
		assert.Equal(t, uint(10), got.ID)
		assert.Equal(t, uint(4), stored.UserID, "owner comes from the token, not the body")
		assert.Equal(t, "Ada", stored.Name)
	})

	t.Run("missing fields", func(t *testing.T) {
		repo := &mockAddressRepository{CreateFunc: func(ctx context.Context, a *entity.Address) error {
			t.Error("store should not be called")
			return nil
		}}

		_, err := NewAddressUsecase(repo).Add(context.Background(), 4, entity.Address{Name: "Ada", Phone: "  "})

		assert.ErrorIs(t, err, ErrMissingField)
		assert.Contains(t, err.Error(), "addressLine, phone")
	})
}

func TestAddressUsecase_Update_RejectsBlankRequired(t *testing.T) {
	t.Parallel()

	blank := " "
	_, err := NewAddressUsecase(&mockAddressRepository{}).Update(context.Background(), 1, 2, entity.AddressPatch{Phone: &blank})

	assert.ErrorIs(t, err, ErrMissingField)
}

func TestAddressUsecase_SetDefaultAndRemove_Passthrough(t *testing.T) {
	t.Parallel()

	var calls []string
	repo := &mockAddressRepository{
		SetDefaultFunc: func(ctx context.Context, userID, id uint) error {
			calls = append(calls, "default")
			return ErrAddressNotFound
		},
		DeleteFunc: func(ctx context.Context, userID, id uint) error {
			calls = append(calls, "delete")
			return nil
		},
	}
	uc := NewAddressUsecase(repo)

	assert.ErrorIs(t, uc.SetDefault(context.Background(), 1, 2), ErrAddressNotFound)
	assert.NoError(t, uc.Remove(context.Background(), 1, 2))
	assert.Equal(t, []string{"default", "delete"}, calls)
}

func TestAddressUsecase_List_EmptyIsNotNil(t *testing.T) {
	t.Parallel()

	out, err := NewAddressUsecase(&mockAddressRepository{}).List(context.Background(), 1)

	require.NoError(t, err)
	assert.NotNil(t, out)
}
