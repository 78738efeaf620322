package provider

import (
	"context"

	"github.com/shouni/go-slides2html/pkg/domain"
)

// AssetProvider はプレゼンテーションのスライド一覧と、各スライドのサムネイル URL を提供します。
// 呼び出しは1回の同期処理で、失敗時は ProviderError を返します。
type AssetProvider interface {
	Presentation(ctx context.Context, id domain.PresentationID) (*domain.Presentation, error)
}
