package adapters

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/feature/catalog/domain/entity"
	"storefront/internal/feature/catalog/usecase"
)

type productGorm struct {
	db *gorm.DB
}

var (
	_ usecase.ProductRepository = (*productGorm)(nil)
	_ usecase.ProductWriter     = (*productGorm)(nil)
)

// NewProductRepository はgorm.DBを使うカタログリポジトリを生成します。
func NewProductRepository(db *gorm.DB) *productGorm {
	return &productGorm{db: db}
}

type ProductModel struct {
	ID            uint    `gorm:"primaryKey;autoIncrement:false"`
	Title         string  `gorm:"size:512;not null"`
	Price         float64 `gorm:"not null;default:0;index"`
	MainCategory  string  `gorm:"size:128;index"`
	AverageRating float64 `gorm:"not null;default:0"`

	Images  []ImageModel  `gorm:"foreignKey:ProductID"`
	Details *DetailsModel `gorm:"foreignKey:ProductID"`
}

func (ProductModel) TableName() string {
	return "products"
}

type ImageModel struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"not null;index"`
	HiRes     string `gorm:"size:1024"`
}

func (ImageModel) TableName() string {
	return "images"
}

type DetailsModel struct {
	ID        uint           `gorm:"primaryKey"`
	ProductID uint           `gorm:"not null;uniqueIndex"`
	Data      datatypes.JSON `gorm:"not null"`
}

func (DetailsModel) TableName() string {
	return "product_details"
}

// Models はマイグレーション用に、カタログストアが持つテーブルを列挙します。
func Models() []any {
	return []any{&ProductModel{}, &ImageModel{}, &DetailsModel{}}
}

// firstImage は画像IDが最小の画像を1件だけ返す相関サブクエリ。
const firstImage = "(SELECT i.hi_res FROM images i WHERE i.product_id = products.id ORDER BY i.id ASC LIMIT 1) AS image"

// summaryRow は一覧用の射影の1行です。
type summaryRow struct {
	ID            uint
	Title         string
	Price         float64
	MainCategory  string
	AverageRating float64
	Image         *string
}

func (r *productGorm) summaries(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&ProductModel{}).
		Select("products.id, products.title, products.price, products.main_category, products.average_rating, " + firstImage)
}

func (r *productGorm) List(ctx context.Context, offset, limit int) ([]entity.ProductSummary, error) {
	// 負のオフセットは gorm が無視して先頭ページを返すため空で返す
	if offset < 0 {
		return []entity.ProductSummary{}, nil
	}
	var rows []summaryRow
	err := r.summaries(ctx).
		Order("products.id ASC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toSummaries(rows), nil
}

// FindSummariesByIDs は1回のクエリで商品と先頭画像をまとめて取得します。
func (r *productGorm) FindSummariesByIDs(ctx context.Context, ids []uint) ([]entity.ProductSummary, error) {
	if len(ids) == 0 {
		return []entity.ProductSummary{}, nil
	}
	var rows []summaryRow
	err := r.summaries(ctx).
		Where("products.id IN ?", ids).
		Order("products.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toSummaries(rows), nil
}

func toSummaries(rows []summaryRow) []entity.ProductSummary {
	out := make([]entity.ProductSummary, 0, len(rows))
	for _, m := range rows {
		s := entity.ProductSummary{
			ID:            m.ID,
			Name:          m.Title,
			Price:         m.Price,
			MainCategory:  m.MainCategory,
			AverageRating: m.AverageRating,
		}
		if m.Image != nil && *m.Image != "" {
			img := *m.Image
			s.Image = &img
		}
		out = append(out, s)
	}
	return out
}

func (r *productGorm) DistinctCategories(ctx context.Context) ([]string, error) {
	var cats []string
	err := r.db.WithContext(ctx).
		Model(&ProductModel{}).
		Where("main_category <> ''").
		Distinct("main_category").
		Order("main_category ASC").
		Pluck("main_category", &cats).Error
	if err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *productGorm) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	var m ProductModel
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Details").
		First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usecase.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return toEntity(m), nil
}

func (r *productGorm) PriceRange(ctx context.Context) (entity.PriceRange, error) {
	var row struct {
		MinPrice *float64
		MaxPrice *float64
	}
	err := r.db.WithContext(ctx).
		Model(&ProductModel{}).
		Select("MIN(price) AS min_price, MAX(price) AS max_price").
		Scan(&row).Error
	if err != nil {
		return entity.PriceRange{}, err
	}
	return entity.PriceRange{Min: row.MinPrice, Max: row.MaxPrice}, nil
}

// UpsertBatch は商品をIDごとに画像・詳細と一緒に置き換えます。
// バッチ内で同じIDが複数ある場合は最後のものを採用します。
func (r *productGorm) UpsertBatch(ctx context.Context, products []entity.Product) error {
	products = lastByID(products)
	if len(products) == 0 {
		return nil
	}
	ms := make([]ProductModel, 0, len(products))
	ids := make([]uint, 0, len(products))
	var images []ImageModel
	var details []DetailsModel
	for _, p := range products {
		ms = append(ms, ProductModel{
			ID:            p.ID,
			Title:         p.Title,
			Price:         p.Price,
			MainCategory:  p.MainCategory,
			AverageRating: p.AverageRating,
		})
		ids = append(ids, p.ID)
		for _, img := range p.Images {
			images = append(images, ImageModel{ProductID: p.ID, HiRes: img.HiRes})
		}
		if len(p.Details) > 0 && string(p.Details) != "null" {
			details = append(details, DetailsModel{ProductID: p.ID, Data: datatypes.JSON(p.Details)})
		}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "price", "main_category", "average_rating"}),
		}).Create(&ms).Error
		if err != nil {
			return err
		}
		if err := tx.Where("product_id IN ?", ids).Delete(&ImageModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id IN ?", ids).Delete(&DetailsModel{}).Error; err != nil {
			return err
		}
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
		}
		if len(details) > 0 {
			if err := tx.Create(&details).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// lastByID はIDごとに最後の商品を残し、最初に現れた順に並べます。
func lastByID(products []entity.Product) []entity.Product {
	pos := make(map[uint]int, len(products))
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if i, ok := pos[p.ID]; ok {
			out[i] = p
			continue
		}
		pos[p.ID] = len(out)
		out = append(out, p)
	}
	return out
}

func toEntity(m ProductModel) *entity.Product {
	p := &entity.Product{
		ID:            m.ID,
		Title:         m.Title,
		Price:         m.Price,
		MainCategory:  m.MainCategory,
		AverageRating: m.AverageRating,
		Images:        make([]entity.Image, 0, len(m.Images)),
	}
	for _, img := range m.Images {
		p.Images = append(p.Images, entity.Image{HiRes: img.HiRes})
	}
	if m.Details != nil {
		p.Details = json.RawMessage(m.Details.Data)
	}
	return p
}
