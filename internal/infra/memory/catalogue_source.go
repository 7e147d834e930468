package memory

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
	"movie-quiz/internal/domain"
)

// CatalogueSource is anything that can fetch the movie catalogue.
type CatalogueSource interface {
	FetchCatalogue(ctx context.Context) (domain.Catalogue, error)
}

const defaultFetchTimeout = 30 * time.Second

// CoalescingSource shares one in-flight fetch between concurrent callers, so many
// sessions starting together cost one upstream request. Results are not retained.
//
// The shared fetch is detached from any single caller's cancellation and bounded
// by its own timeout; a caller whose ctx ends stops waiting without failing the others.
type CoalescingSource struct {
	source  CatalogueSource
	sf      singleflight.Group
	timeout time.Duration
}

func NewCoalescingSource(source CatalogueSource) *CoalescingSource {
	return &CoalescingSource{source: source, timeout: defaultFetchTimeout}
}

func (s *CoalescingSource) FetchCatalogue(ctx context.Context) (domain.Catalogue, error) {
	ch := s.sf.DoChan("catalogue", func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.source.FetchCatalogue(fetchCtx)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return domain.Catalogue{}, domain.NewDataError(domain.DataErrorTransport, ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return domain.Catalogue{}, res.Err
	}
	// callers own their copy of the items
	shared := res.Val.(domain.Catalogue)
	items := make([]domain.Movie, len(shared.Items))
	copy(items, shared.Items)
	return domain.Catalogue{Items: items}, nil
}

// StaticCatalogue is a fixed catalogue (useful for tests/demos).
type StaticCatalogue struct {
	movies []domain.Movie
}

func NewStaticCatalogue(movies []domain.Movie) *StaticCatalogue {
	return &StaticCatalogue{movies: movies}
}

func (c *StaticCatalogue) FetchCatalogue(_ context.Context) (domain.Catalogue, error) {
	if len(c.movies) == 0 {
		return domain.Catalogue{}, &domain.DataError{Kind: domain.DataErrorNoData, Message: "static catalogue is empty"}
	}
	items := make([]domain.Movie, len(c.movies))
	copy(items, c.movies)
	return domain.Catalogue{Items: items}, nil
}
