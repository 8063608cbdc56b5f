// Package entity はaddressフィーチャーのドメインエンティティを定義します。
package entity

// Address はユーザーの配送先住所です。
// 住所が1件以上あれば、そのうち必ず1件だけが primary です。
type Address struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"-" gorm:"not null;index"`

	Label       string `json:"label" gorm:"size:64"`
	Name        string `json:"name" gorm:"size:255;not null"`
	AddressLine string `json:"addressLine" gorm:"size:512;not null"`
	City        string `json:"city" gorm:"size:128"`
	State       string `json:"state" gorm:"size:128"`
	Pincode     string `json:"pincode" gorm:"size:16"`
	// CityLine は旧形式の "city, state pincode" をまとめた行
	CityLine     string `json:"cityLine" gorm:"size:255"`
	Phone        string `json:"phone" gorm:"size:32;not null"`
	Instructions string `json:"instructions" gorm:"size:1024"`
	IsPrimary    bool   `json:"isPrimary" gorm:"not null;default:false"`
}

func (Address) TableName() string {
	return "addresses"
}

// AddressPatch は部分更新の項目を保持します。nil の項目は変更しません。
type AddressPatch struct {
	Label        *string
	Name         *string
	AddressLine  *string
	City         *string
	State        *string
	Pincode      *string
	CityLine     *string
	Phone        *string
	Instructions *string
	IsPrimary    *bool
}

// Apply は p で指定された項目を a に反映します。
func (p AddressPatch) Apply(a *Address) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&a.Label, p.Label)
	set(&a.Name, p.Name)
	set(&a.AddressLine, p.AddressLine)
	set(&a.City, p.City)
	set(&a.State, p.State)
	set(&a.Pincode, p.Pincode)
	set(&a.CityLine, p.CityLine)
	set(&a.Phone, p.Phone)
	set(&a.Instructions, p.Instructions)
	if p.IsPrimary != nil {
		a.IsPrimary = *p.IsPrimary
	}
}
