package repositories

import (
	"context"

	"github.com/tipstack/marketplace_backend/internal/core/domain"
)

// CatalogReadRepository is the read-only contract over the seller and product
// stores, used to decorate report rows with display names.
type CatalogReadRepository interface {
	// ListSellers returns all sellers.
	ListSellers(ctx context.Context) ([]domain.Seller, error)

	// SellerNames resolves seller ids to public names. Unknown ids are omitted.
	SellerNames(ctx context.Context, sellerIDs []string) (map[string]string, error)

	// ProductTitles resolves product ids to titles. Unknown ids are omitted.
	ProductTitles(ctx context.Context, productIDs []string) (map[string]string, error)

	// ActiveProductCounts returns the number of active products per seller.
	ActiveProductCounts(ctx context.Context) (map[string]int64, error)
}
