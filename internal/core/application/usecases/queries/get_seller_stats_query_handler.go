package queries

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"terabia/internal/metrics"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// GetSellerStatsQueryHandler computes per-seller dashboard figures.
//
// Product counts come straight from SQL. Order participation cannot: line
// items live as JSON inside each order row, and historical rows written by
// earlier storefront versions carry loosely typed values (string prices,
// camelCase keys, missing fields). The handler therefore walks the order
// rows in Go and coerces item fields permissively, treating anything
// unreadable as zero rather than failing the whole dashboard.
type GetSellerStatsQueryHandler struct {
	db     *gorm.DB
	cache  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewGetSellerStatsQueryHandler creates a stats handler. cache may be nil,
// in which case every request recomputes.
func NewGetSellerStatsQueryHandler(
	db *gorm.DB,
	cache *redis.Client,
	ttl time.Duration,
	logger *slog.Logger,
) GetSellerStatsQueryHandler {
	return GetSellerStatsQueryHandler{
		db:     db,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With("component", "seller_stats"),
	}
}

// Handle returns the seller's figures, served from cache when fresh enough.
// A seller with no products and no sales gets all-zero figures, not an error.
func (h GetSellerStatsQueryHandler) Handle(
	ctx context.Context,
	query GetSellerStatsQuery,
) (SellerStatsResponse, error) {
	if err := query.Validate(); err != nil {
		return SellerStatsResponse{}, err
	}

	cacheKey := "seller_stats:" + query.SellerID().String()

	if cached, ok := h.fromCache(ctx, cacheKey); ok {
		metrics.SellerStatsRequestsTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.SellerStatsRequestsTotal.WithLabelValues("miss").Inc()

	stats, err := h.compute(ctx, query)
	if err != nil {
		return SellerStatsResponse{}, err
	}

	h.toCache(ctx, cacheKey, stats)

	return stats, nil
}

func (h GetSellerStatsQueryHandler) compute(
	ctx context.Context,
	query GetSellerStatsQuery,
) (SellerStatsResponse, error) {
	var stats SellerStatsResponse

	sellerID := query.SellerID().Google()

	row := h.db.WithContext(ctx).Raw(
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0)
		 FROM products WHERE seller_id = ?`, sellerID).Row()
	if err := row.Scan(&stats.TotalProducts, &stats.ActiveProducts); err != nil {
		return SellerStatsResponse{}, err
	}

	ownedProducts, err := h.ownedProductIDs(ctx, sellerID)
	if err != nil {
		return SellerStatsResponse{}, err
	}
	if len(ownedProducts) == 0 {
		return stats, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`SELECT id, items FROM orders`).Rows()
	if err != nil {
		return SellerStatsResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID int64
			items   []byte
		)
		if err = rows.Scan(&orderID, &items); err != nil {
			return SellerStatsResponse{}, err
		}

		revenue, participates := sellerShare(items, ownedProducts)
		if participates {
			stats.TotalOrders++
			stats.TotalRevenue += revenue
		}
	}
	if err = rows.Err(); err != nil {
		return SellerStatsResponse{}, err
	}

	return stats, nil
}

func (h GetSellerStatsQueryHandler) ownedProductIDs(
	ctx context.Context,
	sellerID any,
) (map[int64]struct{}, error) {
	rows, err := h.db.WithContext(ctx).Raw(
		`SELECT id FROM products WHERE seller_id = ?`, sellerID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	owned := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}
		owned[id] = struct{}{}
	}

	return owned, rows.Err()
}

func (h GetSellerStatsQueryHandler) fromCache(ctx context.Context, key string) (SellerStatsResponse, bool) {
	if h.cache == nil {
		return SellerStatsResponse{}, false
	}

	payload, err := h.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			h.logger.Warn("stats cache read failed", "error", err)
		}
		return SellerStatsResponse{}, false
	}

	var stats SellerStatsResponse
	if err = json.Unmarshal(payload, &stats); err != nil {
		h.logger.Warn("stats cache entry is corrupt", "error", err)
		return SellerStatsResponse{}, false
	}

	return stats, true
}

func (h GetSellerStatsQueryHandler) toCache(ctx context.Context, key string, stats SellerStatsResponse) {
	if h.cache == nil {
		return
	}

	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err = h.cache.Set(ctx, key, payload, h.ttl).Err(); err != nil {
		h.logger.Warn("stats cache write failed", "error", err)
	}
}

// sellerShare sums the seller's revenue inside one order's items payload and
// reports whether the seller participates in the order at all.
func sellerShare(items []byte, owned map[int64]struct{}) (float64, bool) {
	var parsed []map[string]any
	if err := json.Unmarshal(items, &parsed); err != nil {
		return 0, false
	}

	var (
		revenue      float64
		participates bool
	)
	for _, item := range parsed {
		productID, ok := itemProductID(item)
		if !ok {
			continue
		}
		if _, mine := owned[productID]; !mine {
			continue
		}

		participates = true
		revenue += coerceFloat(item["price"]) * coerceFloat(item["quantity"])
	}

	return revenue, participates
}

// itemProductID reads the product reference, accepting both the current
// snake_case key and the camelCase key older storefront rows used.
func itemProductID(item map[string]any) (int64, bool) {
	raw, ok := item["product_id"]
	if !ok {
		raw, ok = item["productId"]
	}
	if !ok {
		return 0, false
	}

	id := int64(coerceFloat(raw))
	if id <= 0 {
		return 0, false
	}

	return id, true
}

// coerceFloat reads a numeric field permissively: numbers pass through,
// numeric strings are parsed, everything else counts as zero.
func coerceFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
