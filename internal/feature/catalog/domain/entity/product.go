// Package entity はcatalogフィーチャーのドメインモデルを定義します。
package entity

import "encoding/json"

// Image は商品の画像1枚です。
type Image struct {
	HiRes string `json:"hiRes"`
}

// Product は詳細エンドポイントが返す商品の全情報です。
type Product struct {
	ID            uint            `json:"id"`
	Title         string          `json:"title"`
	Price         float64         `json:"price"`
	MainCategory  string          `json:"mainCategory"`
	AverageRating float64         `json:"averageRating"`
	Images        []Image         `json:"images"`
	Details       json.RawMessage `json:"details"`
}

// ProductSummary は一覧や、注文・お気に入り・カートの結合に使う軽量な射影です。
type ProductSummary struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Image         *string `json:"image"`
	MainCategory  string  `json:"mainCategory"`
	AverageRating float64 `json:"averageRating"`
}

// PriceRange はカタログ内の最安値と最高値です。
// カタログが空の場合はどちらも nil です。
type PriceRange struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}
