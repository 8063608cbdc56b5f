package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"storefront/internal/feature/catalog/domain/entity"
	"storefront/internal/shared/ratelimiter"
)

// DefaultIngestBatchSize は1回の upsert で書き込む商品数です。
const DefaultIngestBatchSize = 500

// ProductWriter はインポートした商品を永続化します。
type ProductWriter interface {
	// UpsertBatch は画像と詳細を含めて、商品をIDごとに追加または置き換えます。
	UpsertBatch(ctx context.Context, products []entity.Product) error
}

// IngestUsecase は商品ファイルをバッチ単位でカタログストアに取り込みます。
type IngestUsecase struct {
	writer    ProductWriter
	limiter   ratelimiter.Limiter
	batchSize int
}

// NewIngestUsecase はIngestUsecaseを生成します。batchSize が0以下なら DefaultIngestBatchSize を使います。
func NewIngestUsecase(writer ProductWriter, limiter ratelimiter.Limiter, batchSize int) *IngestUsecase {
	if batchSize <= 0 {
		batchSize = DefaultIngestBatchSize
	}
	return &IngestUsecase{writer: writer, limiter: limiter, batchSize: batchSize}
}

// IngestAll は書き込みごとに limiter を待ちながら、商品をバッチ単位で書き込みます。
// 最初に失敗したバッチで止まり、それまでに書き込んだ件数を返します。
func (iu *IngestUsecase) IngestAll(ctx context.Context, products []entity.Product) (int, error) {
	written := 0
	for start := 0; start < len(products); start += iu.batchSize {
		end := min(start+iu.batchSize, len(products))
		batch := products[start:end]

		if err := validateBatch(batch); err != nil {
			return written, err
		}
		if iu.limiter != nil {
			if err := iu.limiter.Wait(ctx); err != nil {
				return written, err
			}
		}
		if err := iu.writer.UpsertBatch(ctx, batch); err != nil {
			slog.Error("failed to ingest batch", "from", start, "to", end, "error", err)
			return written, fmt.Errorf("upsert products %d-%d: %w", start, end, err)
		}
		written += len(batch)
		slog.Info("ingested batch", "count", len(batch), "total", written)
	}
	return written, nil
}

func validateBatch(batch []entity.Product) error {
	for i, p := range batch {
		if p.ID == 0 {
			return fmt.Errorf("product at position %d has no id", i)
		}
		if p.Title == "" {
			return fmt.Errorf("product %d has no title", p.ID)
		}
	}
	return nil
}
