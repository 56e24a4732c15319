package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tipstack/marketplace_backend/internal/core/domain"
	portsrepo "github.com/tipstack/marketplace_backend/internal/core/ports/repositories"
)

// catalogRepository implements the read-only CatalogReadRepository over the
// seller and product stores.
type catalogRepository struct {
	BaseRepository
}

func newCatalogRepository(db *pgxpool.Pool) portsrepo.CatalogReadRepository {
	return &catalogRepository{BaseRepository: BaseRepository{Pool: db}}
}

// ListSellers returns all sellers ordered by id.
func (r *catalogRepository) ListSellers(ctx context.Context) ([]domain.Seller, error) {
	query := `SELECT seller_id, public_name FROM sellers ORDER BY seller_id`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying sellers: %w", err)
	}
	defer rows.Close()

	sellers := []domain.Seller{}
	for rows.Next() {
		var s domain.Seller
		if err := rows.Scan(&s.SellerID, &s.PublicName); err != nil {
			return nil, fmt.Errorf("error scanning seller: %w", err)
		}
		sellers = append(sellers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sellers: %w", err)
	}
	return sellers, nil
}

// SellerNames resolves seller ids to public names. Ids with no matching seller
// are simply absent from the result.
func (r *catalogRepository) SellerNames(ctx context.Context, sellerIDs []string) (map[string]string, error) {
	names := map[string]string{}
	if len(sellerIDs) == 0 {
		return names, nil
	}
	query := `SELECT seller_id, public_name FROM sellers WHERE seller_id = ANY($1)`
	rows, err := r.Pool.Query(ctx, query, sellerIDs)
	if err != nil {
		return nil, fmt.Errorf("error querying seller names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("error scanning seller name: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating seller names: %w", err)
	}
	return names, nil
}

// ProductTitles resolves product ids to titles. Ids with no matching product
// are simply absent from the result.
func (r *catalogRepository) ProductTitles(ctx context.Context, productIDs []string) (map[string]string, error) {
	titles := map[string]string{}
	if len(productIDs) == 0 {
		return titles, nil
	}
	query := `SELECT product_id, title FROM products WHERE product_id = ANY($1)`
	rows, err := r.Pool.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("error querying product titles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, title string
		if err := rows.Scan(&id, &title); err != nil {
			return nil, fmt.Errorf("error scanning product title: %w", err)
		}
		titles[id] = title
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product titles: %w", err)
	}
	return titles, nil
}

// ActiveProductCounts returns the number of active products per seller.
func (r *catalogRepository) ActiveProductCounts(ctx context.Context) (map[string]int64, error) {
	query := `SELECT seller_id, COUNT(*) FROM products WHERE is_active = TRUE GROUP BY seller_id`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying active product counts: %w", err)
	}
	defer rows.Close()

	counts := map[string]int64{}
	for rows.Next() {
		var id string
		var count int64
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("error scanning product count: %w", err)
		}
		counts[id] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product counts: %w", err)
	}
	return counts, nil
}
