package queries_test

import (
	"context"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"terabia/internal/adapters/out/postgres/deliveryrepo"
	"terabia/internal/adapters/out/postgres/orderrepo"
	"terabia/internal/adapters/out/postgres/productrepo"
	"terabia/internal/core/application/usecases/queries"
	"terabia/internal/core/domain/model/kernel"
	"terabia/internal/pkg/errs"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection so every statement sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.CounterDTO{},
		&deliveryrepo.DeliveryDTO{},
		&productrepo.ProductDTO{},
	))

	return db
}

func seedOrder(t *testing.T, db *gorm.DB, number string, buyerID uuid.UUID, items orderrepo.LineItems) int64 {
	t.Helper()

	dto := orderrepo.OrderDTO{
		OrderNumber:     number,
		BuyerID:         buyerID,
		Items:           items,
		Subtotal:        1000,
		DeliveryFee:     500,
		Total:           1500,
		Status:          "pending",
		PaymentStatus:   "pending",
		DeliveryAddress: "12 Rue des Manguiers",
		DeliveryCity:    "Douala",
	}
	require.NoError(t, db.Create(&dto).Error)

	return dto.ID
}

func seedDelivery(t *testing.T, db *gorm.DB, orderID int64, agencyID *uuid.UUID, status string, createdAt time.Time) int64 {
	t.Helper()

	dto := deliveryrepo.DeliveryDTO{
		OrderID:   orderID,
		AgencyID:  agencyID,
		Status:    status,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(&dto).Error)

	return dto.ID
}

func seedProduct(t *testing.T, db *gorm.DB, sellerID uuid.UUID, name string, active bool) int64 {
	t.Helper()

	dto := productrepo.ProductDTO{
		SellerID: sellerID,
		Name:     name,
		Price:    1000,
		IsActive: active,
	}
	require.NoError(t, db.Create(&dto).Error)

	return dto.ID
}

func TestGetOrderQueryHandler(t *testing.T) {
	db := setupDB(t)
	handler := queries.NewGetOrderQueryHandler(db)
	buyerID := uuid.New()

	lat, lon := 4.0511, 9.7679
	dto := orderrepo.OrderDTO{
		OrderNumber:     "TRB20260830000001",
		BuyerID:         buyerID,
		Items:           orderrepo.LineItems{{ProductID: 5, Quantity: 2, Price: 1500}},
		Subtotal:        3000,
		DeliveryFee:     500,
		Total:           3500,
		Status:          "pending",
		PaymentStatus:   "pending",
		DeliveryAddress: "12 Rue des Manguiers",
		DeliveryCity:    "Douala",
		DeliveryLat:     &lat,
		DeliveryLon:     &lon,
		BuyerNotes:      "call on arrival",
	}
	require.NoError(t, db.Create(&dto).Error)

	t.Run("returns the order", func(t *testing.T) {
		query, err := queries.NewGetOrderQuery(dto.ID)
		require.NoError(t, err)

		got, err := handler.Handle(context.Background(), query)
		require.NoError(t, err)

		assert.Equal(t, dto.ID, got.ID)
		assert.Equal(t, "TRB20260830000001", got.OrderNumber)
		assert.Equal(t, buyerID.String(), got.BuyerID)
		require.Len(t, got.Items, 1)
		assert.Equal(t, int64(5), got.Items[0].ProductID)
		assert.Equal(t, 2, got.Items[0].Quantity)
		assert.InDelta(t, 1500, got.Items[0].Price, 0.001)
		assert.InDelta(t, 3500, got.Total, 0.001)
		assert.Equal(t, "pending", got.Status)
		assert.Equal(t, "pending", got.PaymentStatus)
		require.NotNil(t, got.DeliveryLat)
		assert.InDelta(t, 4.0511, *got.DeliveryLat, 0.0001)
		assert.Nil(t, got.AgencyID)
		assert.Equal(t, "call on arrival", got.BuyerNotes)
	})

	t.Run("missing order is not found", func(t *testing.T) {
		query, err := queries.NewGetOrderQuery(4242)
		require.NoError(t, err)

		_, err = handler.Handle(context.Background(), query)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("rejects non-positive ids", func(t *testing.T) {
		_, err := queries.NewGetOrderQuery(0)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestGetOrdersQueryHandler(t *testing.T) {
	db := setupDB(t)
	handler := queries.NewGetOrdersQueryHandler(db)

	buyerA := uuid.New()
	buyerB := uuid.New()
	items := orderrepo.LineItems{{ProductID: 1, Quantity: 1, Price: 1000}}
	first := seedOrder(t, db, "TRB20260830000001", buyerA, items)
	second := seedOrder(t, db, "TRB20260830000002", buyerB, items)
	third := seedOrder(t, db, "TRB20260830000003", buyerA, items)

	t.Run("lists all orders newest first", func(t *testing.T) {
		got, err := handler.Handle(context.Background(), queries.NewGetOrdersQuery())
		require.NoError(t, err)

		require.Len(t, got, 3)
		assert.Equal(t, third, got[0].ID)
		assert.Equal(t, second, got[1].ID)
		assert.Equal(t, first, got[2].ID)
	})

	t.Run("filters by buyer", func(t *testing.T) {
		buyerID, err := kernel.UUIDFromGoogle(buyerA)
		require.NoError(t, err)
		query, err := queries.NewGetOrdersByBuyerQuery(buyerID)
		require.NoError(t, err)

		got, err := handler.Handle(context.Background(), query)
		require.NoError(t, err)

		require.Len(t, got, 2)
		assert.Equal(t, third, got[0].ID)
		assert.Equal(t, first, got[1].ID)
	})

	t.Run("unknown buyer gets an empty list", func(t *testing.T) {
		buyerID, err := kernel.UUIDFromGoogle(uuid.New())
		require.NoError(t, err)
		query, err := queries.NewGetOrdersByBuyerQuery(buyerID)
		require.NoError(t, err)

		got, err := handler.Handle(context.Background(), query)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})
}

func TestGetDeliveryQueryHandler(t *testing.T) {
	db := setupDB(t)
	handler := queries.NewGetDeliveryQueryHandler(db)

	agencyID := uuid.New()
	orderID := seedOrder(t, db, "TRB20260830000001", uuid.New(),
		orderrepo.LineItems{{ProductID: 1, Quantity: 1, Price: 1000}})
	deliveryID := seedDelivery(t, db, orderID, &agencyID, "accepted", time.Now().UTC())

	t.Run("finds by delivery id", func(t *testing.T) {
		query, err := queries.NewGetDeliveryQuery(deliveryID)
		require.NoError(t, err)

		got, err := handler.Handle(context.Background(), query)
		require.NoError(t, err)

		assert.Equal(t, deliveryID, got.ID)
		assert.Equal(t, orderID, got.OrderID)
		require.NotNil(t, got.AgencyID)
		assert.Equal(t, agencyID.String(), *got.AgencyID)
		assert.Equal(t, "accepted", got.Status)
	})

	t.Run("finds by order id", func(t *testing.T) {
		query, err := queries.NewGetDeliveryByOrderQuery(orderID)
		require.NoError(t, err)

		got, err := handler.Handle(context.Background(), query)
		require.NoError(t, err)
		assert.Equal(t, deliveryID, got.ID)
	})

	t.Run("missing delivery is not found", func(t *testing.T) {
		query, err := queries.NewGetDeliveryQuery(4242)
		require.NoError(t, err)

		_, err = handler.Handle(context.Background(), query)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("order without delivery is not found", func(t *testing.T) {
		uncovered := seedOrder(t, db, "TRB20260830000002", uuid.New(),
			orderrepo.LineItems{{ProductID: 1, Quantity: 1, Price: 1000}})
		query, err := queries.NewGetDeliveryByOrderQuery(uncovered)
		require.NoError(t, err)

		_, err = handler.Handle(context.Background(), query)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestGetDeliveriesQueryHandler(t *testing.T) {
	db := setupDB(t)
	handler := queries.NewGetDeliveriesQueryHandler(db)

	agencyID := uuid.New()
	items := orderrepo.LineItems{{ProductID: 1, Quantity: 1, Price: 1000}}
	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	orderOne := seedOrder(t, db, "TRB20260830000001", uuid.New(), items)
	orderTwo := seedOrder(t, db, "TRB20260830000002", uuid.New(), items)
	orderThree := seedOrder(t, db, "TRB20260830000003", uuid.New(), items)

	oldest := seedDelivery(t, db, orderOne, nil, "available", base)
	claimed := seedDelivery(t, db, orderTwo, &agencyID, "accepted", base.Add(time.Minute))
	newest := seedDelivery(t, db, orderThree, nil, "available", base.Add(2*time.Minute))

	t.Run("lists all deliveries newest first", func(t *testing.T) {
		got, err := handler.Handle(context.Background(), queries.NewGetDeliveriesQuery())
		require.NoError(t, err)

		require.Len(t, got, 3)
		assert.Equal(t, newest, got[0].ID)
		assert.Equal(t, claimed, got[1].ID)
		assert.Equal(t, oldest, got[2].ID)
	})

	t.Run("available listing is oldest first and excludes claimed jobs", func(t *testing.T) {
		got, err := handler.Handle(context.Background(), queries.NewGetAvailableDeliveriesQuery())
		require.NoError(t, err)

		require.Len(t, got, 2)
		assert.Equal(t, oldest, got[0].ID)
		assert.Equal(t, newest, got[1].ID)
	})

	t.Run("filters by agency", func(t *testing.T) {
		agency, err := kernel.UUIDFromGoogle(agencyID)
		require.NoError(t, err)
		query, err := queries.NewGetAgencyDeliveriesQuery(agency)
		require.NoError(t, err)

		got, err := handler.Handle(context.Background(), query)
		require.NoError(t, err)

		require.Len(t, got, 1)
		assert.Equal(t, claimed, got[0].ID)
	})
}

func TestGetSellerStatsQueryHandler(t *testing.T) {
	db := setupDB(t)
	handler := queries.NewGetSellerStatsQueryHandler(db, nil, 0, discardLogger())

	sellerGoogle := uuid.New()
	otherSeller := uuid.New()
	sellerID, err := kernel.UUIDFromGoogle(sellerGoogle)
	require.NoError(t, err)

	mango := seedProduct(t, db, sellerGoogle, "Mangoes 5kg", true)
	cassava := seedProduct(t, db, sellerGoogle, "Cassava 10kg", true)
	seedProduct(t, db, sellerGoogle, "Plantains", false)
	foreign := seedProduct(t, db, otherSeller, "Peanuts", true)

	// Order with one owned item and one foreign item.
	seedOrder(t, db, "TRB20260830000001", uuid.New(), orderrepo.LineItems{
		{ProductID: mango, Quantity: 2, Price: 1000},
		{ProductID: foreign, Quantity: 1, Price: 9999},
	})
	// Two owned items in a single order count it once.
	seedOrder(t, db, "TRB20260830000002", uuid.New(), orderrepo.LineItems{
		{ProductID: mango, Quantity: 1, Price: 1000},
		{ProductID: cassava, Quantity: 3, Price: 500},
	})
	// Order touching only the other seller.
	seedOrder(t, db, "TRB20260830000003", uuid.New(), orderrepo.LineItems{
		{ProductID: foreign, Quantity: 1, Price: 9999},
	})
	// Legacy row: camelCase key, string-typed numbers.
	require.NoError(t, db.Exec(
		`INSERT INTO orders
			(order_number, buyer_id, items, subtotal, delivery_fee, total,
			 status, payment_status, delivery_address, delivery_city)
		 VALUES (?, ?, ?, 0, 0, 0, 'pending', 'pending', 'a', 'b')`,
		"TRB20260830000004", uuid.New().String(),
		`[{"productId": `+formatID(cassava)+`, "quantity": "2", "price": "750"}]`,
	).Error)
	// Unreadable payloads count as zero instead of failing the dashboard.
	require.NoError(t, db.Exec(
		`INSERT INTO orders
			(order_number, buyer_id, items, subtotal, delivery_fee, total,
			 status, payment_status, delivery_address, delivery_city)
		 VALUES (?, ?, ?, 0, 0, 0, 'pending', 'pending', 'a', 'b')`,
		"TRB20260830000005", uuid.New().String(), `{"not": "a list"}`,
	).Error)

	t.Run("aggregates owned products and orders", func(t *testing.T) {
		query, err := queries.NewGetSellerStatsQuery(sellerID)
		require.NoError(t, err)

		got, err := handler.Handle(context.Background(), query)
		require.NoError(t, err)

		assert.Equal(t, int64(3), got.TotalProducts)
		assert.Equal(t, int64(2), got.ActiveProducts)
		// Orders 1, 2 and the legacy row; the foreign-only and unreadable
		// rows do not count.
		assert.Equal(t, int64(3), got.TotalOrders)
		// 2*1000 + (1*1000 + 3*500) + 2*750
		assert.InDelta(t, 6000, got.TotalRevenue, 0.001)
	})

	t.Run("unknown seller gets zero figures", func(t *testing.T) {
		unknown, err := kernel.UUIDFromGoogle(uuid.New())
		require.NoError(t, err)
		query, err := queries.NewGetSellerStatsQuery(unknown)
		require.NoError(t, err)

		got, err := handler.Handle(context.Background(), query)
		require.NoError(t, err)
		assert.Equal(t, queries.SellerStatsResponse{}, got)
	})
}

func TestGetSellerStatsQueryHandler_Cache(t *testing.T) {
	db := setupDB(t)

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	handler := queries.NewGetSellerStatsQueryHandler(db, cache, time.Minute, discardLogger())

	sellerGoogle := uuid.New()
	sellerID, err := kernel.UUIDFromGoogle(sellerGoogle)
	require.NoError(t, err)
	productID := seedProduct(t, db, sellerGoogle, "Mangoes 5kg", true)
	seedOrder(t, db, "TRB20260830000001", uuid.New(), orderrepo.LineItems{
		{ProductID: productID, Quantity: 1, Price: 1000},
	})

	query, err := queries.NewGetSellerStatsQuery(sellerID)
	require.NoError(t, err)

	first, err := handler.Handle(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.TotalOrders)

	// New sales do not show until the cached entry expires.
	seedOrder(t, db, "TRB20260830000002", uuid.New(), orderrepo.LineItems{
		{ProductID: productID, Quantity: 1, Price: 1000},
	})

	cached, err := handler.Handle(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	mr.FastForward(2 * time.Minute)

	fresh, err := handler.Handle(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, int64(2), fresh.TotalOrders)
	assert.InDelta(t, 2000, fresh.TotalRevenue, 0.001)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
