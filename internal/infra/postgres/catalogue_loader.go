package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"movie-quiz/internal/domain"
)

const defaultMaxItems = 250

// CatalogueLoader loads the movie catalogue from the movies table.
type CatalogueLoader struct {
	pool     *pgxpool.Pool
	maxItems int
}

func NewCatalogueLoader(pool *pgxpool.Pool, maxItems int) *CatalogueLoader {
	if maxItems <= 0 {
		maxItems = defaultMaxItems
	}
	return &CatalogueLoader{pool: pool, maxItems: maxItems}
}

func (l *CatalogueLoader) FetchCatalogue(ctx context.Context) (domain.Catalogue, error) {
	rows, err := l.pool.Query(ctx, `SELECT id, title, rating, image FROM movies ORDER BY rank, id LIMIT $1`, l.maxItems)
	if err != nil {
		return domain.Catalogue{}, domain.NewDataError(domain.DataErrorTransport, fmt.Errorf("query movies: %w", err))
	}
	defer rows.Close()

	var items []domain.Movie
	for rows.Next() {
		var m domain.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Rating, &m.ImageURL); err != nil {
			return domain.Catalogue{}, domain.NewDataError(domain.DataErrorDecode, fmt.Errorf("scan movie: %w", err))
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return domain.Catalogue{}, domain.NewDataError(domain.DataErrorTransport, err)
	}
	if len(items) == 0 {
		return domain.Catalogue{}, &domain.DataError{Kind: domain.DataErrorNoData, Message: "movies table is empty"}
	}
	return domain.Catalogue{Items: items}, nil
}
