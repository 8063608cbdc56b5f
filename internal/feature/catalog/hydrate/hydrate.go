// Package hydrate は商品IDを参照するレコードにカタログの商品サマリーを結合します。
//
// カタログは別データベースにあるため、参照はアプリケーション側で解決します。
// 1回の呼び出しにつき一括取得を1回だけ行い、メモリ上で結合します。
package hydrate

import (
	"context"

	catalog "storefront/internal/feature/catalog/domain/entity"
	favourite "storefront/internal/feature/favourite/domain/entity"
	order "storefront/internal/feature/order/domain/entity"
)

// ProductFetcher はIDで商品サマリーを取得します。
// 存在しないIDは結果に含まれません。
type ProductFetcher interface {
	FindSummariesByIDs(ctx context.Context, ids []uint) ([]catalog.ProductSummary, error)
}

// WithProducts は入力順に、要素ごとに結合した値を返します。
// productID は要素から参照を取り出します(参照なしは nil)。
// 参照が nil か商品が存在しない場合、merge には nil が渡されます。
// fetcher の呼び出しは最大1回で、取得対象がなければ呼びません。
func WithProducts[T, R any](
	ctx context.Context,
	items []T,
	productID func(T) *uint,
	fetcher ProductFetcher,
	merge func(T, *catalog.ProductSummary) R,
) ([]R, error) {
	out := make([]R, 0, len(items))
	if len(items) == 0 {
		return out, nil
	}

	seen := make(map[uint]struct{}, len(items))
	ids := make([]uint, 0, len(items))
	for _, it := range items {
		id := productID(it)
		if id == nil {
			continue
		}
		if _, ok := seen[*id]; ok {
			continue
		}
		seen[*id] = struct{}{}
		ids = append(ids, *id)
	}

	byID := make(map[uint]*catalog.ProductSummary, len(ids))
	if len(ids) > 0 {
		products, err := fetcher.FindSummariesByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range products {
			byID[products[i].ID] = &products[i]
		}
	}

	for _, it := range items {
		var p *catalog.ProductSummary
		if id := productID(it); id != nil {
			p = byID[*id]
		}
		out = append(out, merge(it, p))
	}
	return out, nil
}

// Orders は注文に商品サマリーを結合します。
func Orders(ctx context.Context, orders []order.Order, fetcher ProductFetcher) ([]order.OrderWithProduct, error) {
	return WithProducts(ctx, orders,
		func(o order.Order) *uint { return o.ProductID },
		fetcher,
		func(o order.Order, p *catalog.ProductSummary) order.OrderWithProduct {
			return order.OrderWithProduct{Order: o, Product: p}
		},
	)
}

// Favourites はお気に入りに商品サマリーを結合します。
func Favourites(ctx context.Context, favs []favourite.Favourite, fetcher ProductFetcher) ([]favourite.FavouriteWithProduct, error) {
	return WithProducts(ctx, favs,
		func(f favourite.Favourite) *uint { return f.ProductID },
		fetcher,
		func(f favourite.Favourite, p *catalog.ProductSummary) favourite.FavouriteWithProduct {
			return favourite.FavouriteWithProduct{Favourite: f, Product: p}
		},
	)
}

// Cart はカートの行に商品サマリーを結合します。
func Cart(ctx context.Context, items []order.CartItem, fetcher ProductFetcher) ([]order.CartLine, error) {
	return WithProducts(ctx, items,
		func(ci order.CartItem) *uint { return &ci.ProductID },
		fetcher,
		func(ci order.CartItem, p *catalog.ProductSummary) order.CartLine {
			return order.CartLine{CartItem: ci, Product: p}
		},
	)
}
