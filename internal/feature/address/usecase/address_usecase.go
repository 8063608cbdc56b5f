// Package usecase はaddressフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/feature/address/domain/entity"
)

var (
	// ErrAddressNotFound は住所が存在しないか、他のユーザーのものである場合に返されます。
	ErrAddressNotFound = errors.New("address not found")

	// ErrMissingField は必須の住所項目が空の場合に返されます。
	ErrMissingField = errors.New("missing required field")
)

// AddressRepository は住所の永続化層を抽象化します。
// primary を変更するメソッドは1トランザクションで実行し、primary を必ず1件に保ちます。
type AddressRepository interface {
	// ListByUser は primary を先頭に、残りをID昇順で返します。
	ListByUser(ctx context.Context, userID uint) ([]entity.Address, error)
	// Create は a を保存します。最初の住所は primary になり、
	// primary 指定の住所は他の primary を外します。
	Create(ctx context.Context, a *entity.Address) error
	// Update は (id, userID) の住所に patch を適用し、更新後の住所を返します。
	Update(ctx context.Context, userID, id uint, patch entity.AddressPatch) (*entity.Address, error)
	// SetDefault は (id, userID) を唯一の primary にします。
	SetDefault(ctx context.Context, userID, id uint) error
	// Delete は (id, userID) を削除します。primary を削除した場合は残りのうちIDが最小の住所を primary にします。
	Delete(ctx context.Context, userID, id uint) error
}

// AddressUsecase はユーザーの住所録を管理します。
type AddressUsecase struct {
	repo AddressRepository
}

// NewAddressUsecase はAddressUsecaseの新しいインスタンスを生成します。
func NewAddressUsecase(repo AddressRepository) *AddressUsecase {
	return &AddressUsecase{repo: repo}
}

// List はユーザーの住所を primary を先頭にして返します。
func (u *AddressUsecase) List(ctx context.Context, userID uint) ([]entity.Address, error) {
	out, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []entity.Address{}
	}
	return out, nil
}

// Add は住所を検証し、userID の住所として保存します。
func (u *AddressUsecase) Add(ctx context.Context, userID uint, a entity.Address) (*entity.Address, error) {
	a.ID = 0
	a.UserID = userID
	trimAddress(&a)
	if err := validate(a); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Update は自分の住所の指定された項目を変更します。
func (u *AddressUsecase) Update(ctx context.Context, userID, id uint, patch entity.AddressPatch) (*entity.Address, error) {
	for _, f := range []*string{patch.Name, patch.AddressLine, patch.Phone} {
		if f != nil && strings.TrimSpace(*f) == "" {
			return nil, fmt.Errorf("%w: name, addressLine and phone cannot be empty", ErrMissingField)
		}
	}
	return u.repo.Update(ctx, userID, id, patch)
}

// SetDefault は自分の住所 id を primary にします。
func (u *AddressUsecase) SetDefault(ctx context.Context, userID, id uint) error {
	return u.repo.SetDefault(ctx, userID, id)
}

// Remove は自分の住所を削除します。
func (u *AddressUsecase) Remove(ctx context.Context, userID, id uint) error {
	return u.repo.Delete(ctx, userID, id)
}

func trimAddress(a *entity.Address) {
	for _, f := range []*string{&a.Label, &a.Name, &a.AddressLine, &a.City, &a.State, &a.Pincode, &a.CityLine, &a.Phone, &a.Instructions} {
		*f = strings.TrimSpace(*f)
	}
}

func validate(a entity.Address) error {
	var missing []string
	if a.Name == "" {
		missing = append(missing, "name")
	}
	if a.AddressLine == "" {
		missing = append(missing, "addressLine")
	}
	if a.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	return nil
}
