// Package franchiseapi exposes the franchise surface of the portal. The
// franchise role resells packages, so its pages are receipt-oriented: the
// payment vouchers collected at the counter, filterable by settlement status.
package franchiseapi

import (
	"context"
	"net/url"

	"github.com/goliatone/go-portal-client/portal"
	"github.com/goliatone/go-portal-client/query"
	"github.com/goliatone/go-portal-client/transport"
)

// Cache resource name for the franchise surface.
const ResourceReceipts = "receipts"

// ReceiptsKey is the cache key for the receipt list filtered by status.
func ReceiptsKey(status string) query.Key {
	return query.NewKey(ResourceReceipts, status)
}

// Service is the franchise API client.
type Service struct {
	api   *transport.Client
	cache *query.Client
}

// New wires the franchise service over the shared transport and query cache.
func New(api *transport.Client, cache *query.Client) *Service {
	return &Service{api: api, cache: cache}
}

// Receipts lists payment vouchers, optionally filtered by status.
func (s *Service) Receipts(ctx context.Context, status string) query.Result[[]portal.Voucher] {
	return query.Fetch(ctx, s.cache, ReceiptsKey(status), func(ctx context.Context) ([]portal.Voucher, error) {
		params := url.Values{}
		if status != "" {
			params.Set("status", status)
		}
		var vouchers []portal.Voucher
		if err := s.api.Get(ctx, "/franchise/receipts", params, "data", &vouchers); err != nil {
			return nil, err
		}
		return vouchers, nil
	})
}
