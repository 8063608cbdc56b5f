// Package dto はaddressフィーチャーのリクエストボディを定義します。
package dto

import "storefront/internal/feature/address/domain/entity"

// AddAddressReq は POST /api/address/add のリクエストボディを表します。
type AddAddressReq struct {
	Label        string `json:"label"`
	Name         string `json:"name" binding:"required"`
	AddressLine  string `json:"addressLine" binding:"required"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	CityLine     string `json:"cityLine"`
	Phone        string `json:"phone" binding:"required"`
	Instructions string `json:"instructions"`
	IsPrimary    bool   `json:"isPrimary"`
}

// ToEntity はリクエストを未保存の住所に変換します。
func (r AddAddressReq) ToEntity() entity.Address {
	return entity.Address{
		Label:        r.Label,
		Name:         r.Name,
		AddressLine:  r.AddressLine,
		City:         r.City,
		State:        r.State,
		Pincode:      r.Pincode,
		CityLine:     r.CityLine,
		Phone:        r.Phone,
		Instructions: r.Instructions,
		IsPrimary:    r.IsPrimary,
	}
}

// UpdateAddressReq は PUT /api/address/update のリクエストボディを表します。省略した項目は変更されません。
type UpdateAddressReq struct {
	ID           uint    `json:"id" binding:"required"`
	Label        *string `json:"label"`
	Name         *string `json:"name"`
	AddressLine  *string `json:"addressLine"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Pincode      *string `json:"pincode"`
	CityLine     *string `json:"cityLine"`
	Phone        *string `json:"phone"`
	Instructions *string `json:"instructions"`
	IsPrimary    *bool   `json:"isPrimary"`
}

// Patch はリクエストに含まれる項目だけを返します。
func (r UpdateAddressReq) Patch() entity.AddressPatch {
	return entity.AddressPatch{
		Label:        r.Label,
		Name:         r.Name,
		AddressLine:  r.AddressLine,
		City:         r.City,
		State:        r.State,
		Pincode:      r.Pincode,
		CityLine:     r.CityLine,
		Phone:        r.Phone,
		Instructions: r.Instructions,
		IsPrimary:    r.IsPrimary,
	}
}

// AddressIDReq は default と remove エンドポイントのリクエストボディを表します。
type AddressIDReq struct {
	ID uint `json:"id" binding:"required"`
}
