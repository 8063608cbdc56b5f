package adapters

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"storefront/internal/feature/catalog/domain/entity"
)

// ReadProducts はカタログのエクスポートファイルをデコードします。
// JSON配列と1行1オブジェクトの形式(NDJSON)のどちらも受け付けます。
func ReadProducts(r io.Reader) ([]entity.Product, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err == io.EOF {
		return []entity.Product{}, nil
	}
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(br)
	if first == '[' {
		var out []entity.Product
		if err := dec.Decode(&out); err != nil {
			return nil, fmt.Errorf("decode product array: %w", err)
		}
		if out == nil {
			out = []entity.Product{}
		}
		return out, nil
	}

	out := []entity.Product{}
	for {
		var p entity.Product
		err := dec.Decode(&p)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode product %d: %w", len(out)+1, err)
		}
		out = append(out, p)
	}
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}
