// Package dto はcatalogフィーチャーのクエリパラメータを定義します。
package dto

import "strconv"

// ListProductsQuery は GET /api/products のクエリ文字列を表します。
// 数値でない page や limit はエラーにせず既定値に戻すため、文字列のまま受け取ります。
type ListProductsQuery struct {
	Page  string `form:"page"`
	Limit string `form:"limit"`
}

// Values は page と limit を int で返します。
// 解釈できない値は 0 になり、usecase で正規化されます。
func (q ListProductsQuery) Values() (page, limit int) {
	page, _ = strconv.Atoi(q.Page)
	limit, _ = strconv.Atoi(q.Limit)
	return page, limit
}
