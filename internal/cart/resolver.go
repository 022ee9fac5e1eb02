package cart

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aguaviva/storefront/internal/domain"
	"github.com/aguaviva/storefront/internal/pricing"
)

// CatalogLookup is the catalog collaborator the resolver joins the cart
// against. Implementations must exclude inactive products.
type CatalogLookup interface {
	FindActiveByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
}

type Resolver struct {
	catalog CatalogLookup
}

func NewResolver(catalog CatalogLookup) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve joins the session quantity map against the live catalog and prices
// each surviving line. Cart contents are untrusted session data: non-numeric
// keys, non-positive quantities, and references to inactive or deleted
// products are dropped silently, never errored. Only a catalog lookup
// failure propagates.
//
// Line items come back sorted by product name, case-insensitive.
func (r *Resolver) Resolve(ctx context.Context, quantities map[string]int) ([]domain.LineItem, decimal.Decimal, error) {
	ids := make([]int64, 0, len(quantities))
	for key := range quantities {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	subtotal := decimal.Zero.Round(2)
	if len(ids) == 0 {
		return []domain.LineItem{}, subtotal, nil
	}

	products, err := r.catalog.FindActiveByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, err
	}

	items := make([]domain.LineItem, 0, len(products))
	for _, p := range products {
		quantity := quantities[strconv.FormatInt(p.ID, 10)]
		if quantity <= 0 {
			continue
		}

		lineSubtotal := pricing.LineSubtotal(p.Price, quantity)
		subtotal = subtotal.Add(lineSubtotal)

		items = append(items, domain.LineItem{
			Product:  p,
			Quantity: quantity,
			Subtotal: lineSubtotal,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Product.Name) < strings.ToLower(items[j].Product.Name)
	})

	return items, subtotal, nil
}
