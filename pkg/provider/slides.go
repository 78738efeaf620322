package provider

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/slides/v1"

	"github.com/shouni/go-slides2html/pkg/config"
	"github.com/shouni/go-slides2html/pkg/domain"
)

const (
	cacheCleanupInterval = 10 * time.Minute
)

// SlidesProvider は Google Slides API を使った AssetProvider の実装です。
type SlidesProvider struct {
	service     *slides.Service
	size        domain.ThumbnailSize
	concurrency int
	limiter     *rate.Limiter
	// thumbs は同一実行内のサムネイル URL を保持します。URL は期限付きのため永続化しません。
	thumbs *cache.Cache
}

// NewSlidesProvider は認証済みのクライアントオプションから SlidesProvider を生成します。
func NewSlidesProvider(ctx context.Context, cfg config.Config, opts ...option.ClientOption) (*SlidesProvider, error) {
	svc, err := slides.NewService(ctx, opts...)
	if err != nil {
		return nil, &domain.ConfigurationError{Field: "credentials", Reason: "Slides サービスの初期化に失敗しました", Err: err}
	}
	return NewSlidesProviderWithService(svc, cfg)
}

// NewSlidesProviderWithService は生成済みの slides.Service から SlidesProvider を生成します。
func NewSlidesProviderWithService(svc *slides.Service, cfg config.Config) (*SlidesProvider, error) {
	if svc == nil {
		return nil, fmt.Errorf("slides.Service は必須です")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if cfg.RateInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.RateInterval), max(cfg.RateBurst, 1))
	}

	return &SlidesProvider{
		service:     svc,
		size:        cfg.ThumbnailSize,
		concurrency: cfg.Concurrency,
		limiter:     limiter,
		thumbs:      cache.New(cfg.ThumbnailCacheTTL, cacheCleanupInterval),
	}, nil
}

// Presentation はスライド一覧を取得し、各スライドのサムネイル URL を解決して返します。
// いずれかの呼び出しが失敗した場合は全体が ProviderError になります。
func (p *SlidesProvider) Presentation(ctx context.Context, id domain.PresentationID) (*domain.Presentation, error) {
	pres, err := p.listSlides(ctx, id)
	if err != nil {
		return nil, err
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(p.concurrency)
	for i := range pres.Slides {
		eg.Go(func() error {
			url, err := p.resolveThumbnail(egCtx, id, pres.Slides[i].SlideID)
			if err != nil {
				return err
			}
			pres.Slides[i].ThumbnailURL = url
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if err := pres.Validate(); err != nil {
		return nil, &domain.ProviderError{PresentationID: id, Op: "validate", Err: err}
	}
	return pres, nil
}

// listSlides はタイトルとスライド一覧 (ノート付き) を取得します。
func (p *SlidesProvider) listSlides(ctx context.Context, id domain.PresentationID) (*domain.Presentation, error) {
	slog.InfoContext(ctx, "スライド一覧を取得しています", "presentation_id", id)

	resp, err := p.service.Presentations.Get(string(id)).Context(ctx).Do()
	if err != nil {
		return nil, &domain.ProviderError{PresentationID: id, Op: "listSlides", Err: err}
	}

	return &domain.Presentation{
		ID:     id,
		Title:  resp.Title,
		Slides: toDescriptors(resp.Slides),
	}, nil
}

// resolveThumbnail はスライドのサムネイル URL を解決します。同一実行内ではメモを返します。
func (p *SlidesProvider) resolveThumbnail(ctx context.Context, id domain.PresentationID, slideID string) (string, error) {
	key := fmt.Sprintf("%s/%s/%s", id, slideID, p.size)
	if v, ok := p.thumbs.Get(key); ok {
		return v.(string), nil
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	thumb, err := p.service.Presentations.Pages.GetThumbnail(string(id), slideID).
		ThumbnailPropertiesThumbnailSize(string(p.size)).
		ThumbnailPropertiesMimeType("PNG").
		Context(ctx).
		Do()
	if err != nil {
		return "", &domain.ProviderError{PresentationID: id, Op: "resolveThumbnail", Err: fmt.Errorf("スライド %s: %w", slideID, err)}
	}
	if thumb.ContentUrl == "" {
		return "", &domain.ProviderError{PresentationID: id, Op: "resolveThumbnail", Err: fmt.Errorf("スライド %s のサムネイル URL が空です", slideID)}
	}

	p.thumbs.Set(key, thumb.ContentUrl, cache.DefaultExpiration)
	slog.DebugContext(ctx, "サムネイル URL を解決しました", "slide_id", slideID)
	return thumb.ContentUrl, nil
}
