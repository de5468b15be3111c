package cmd

import (
	"database/sql"
	"fmt"
	"log/slog"

	adapterhttp "terabia/internal/adapters/in/http"
	"terabia/internal/adapters/out/kafka"
	"terabia/internal/adapters/out/postgres"
	"terabia/internal/adapters/out/postgres/deliveryrepo"
	"terabia/internal/adapters/out/postgres/orderrepo"
	"terabia/internal/adapters/out/postgres/productrepo"
	"terabia/internal/core/application/usecases/commands"
	"terabia/internal/core/application/usecases/queries"
	"terabia/internal/core/ports"
	"terabia/internal/jobs"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters, use cases and jobs together. Everything is
// created eagerly at startup so misconfiguration fails fast.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.OrderEventPublisher
	cache      *redis.Client
	logger     *slog.Logger
}

// NewCompositionRoot connects to the database, runs migrations, and prepares
// the shared infrastructure.
func NewCompositionRoot(config Config, logger *slog.Logger) (*CompositionRoot, error) {
	gormDB, err := openDatabase(config)
	if err != nil {
		return nil, err
	}

	if err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.CounterDTO{},
		&deliveryrepo.DeliveryDTO{},
		&productrepo.ProductDTO{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	var publisher ports.OrderEventPublisher = kafka.NewNoOpPublisher()
	if config.KafkaHost != "" {
		publisher = kafka.NewOrderChangedProducer(
			[]string{config.KafkaHost}, config.KafkaOrderChangedTopic)
	}

	var cache *redis.Client
	if config.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: config.RedisAddr})
	}

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		cache:      cache,
		logger:     logger,
	}, nil
}

// openDatabase connects through lib/pq and hands the pooled connection to
// GORM. TranslateError is required: the order-number retry loop keys off
// gorm.ErrDuplicatedKey.
func openDatabase(config Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser,
		config.DBPassword, config.DBName, config.DBSslMode)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("attach orm: %w", err)
	}

	return gormDB, nil
}

// Close releases shared infrastructure.
func (c *CompositionRoot) Close() error {
	if closer, ok := c.publisher.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			c.logger.Warn("closing event publisher failed", "error", err)
		}
	}
	if c.cache != nil {
		if err := c.cache.Close(); err != nil {
			c.logger.Warn("closing cache failed", "error", err)
		}
	}

	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewHTTPServer assembles the REST surface.
func (c *CompositionRoot) NewHTTPServer() *adapterhttp.Server {
	return adapterhttp.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderCommandHandler(),
		c.CreateDeleteOrderCommandHandler(),
		c.CreateCreateDeliveryCommandHandler(),
		c.CreateUpdateDeliveryCommandHandler(),
		c.CreateDeleteDeliveryCommandHandler(),
		c.CreateAcceptDeliveryCommandHandler(),
		c.CreateCreateProductCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.CreateGetDeliveryQueryHandler(),
		c.CreateGetDeliveriesQueryHandler(),
		c.CreateGetSellerStatsQueryHandler(),
	)
}

// NewJobManager assembles the background jobs.
func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateBackfillDeliveriesCommandHandler(),
		c.config.DeliveryBackfillCron,
		c.logger,
	)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateDeliveryCommandHandler() commands.UpdateDeliveryCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDeliveryCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateDeleteDeliveryCommandHandler() commands.DeleteDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateAcceptDeliveryCommandHandler() commands.AcceptDeliveryCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptDeliveryCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() commands.CreateProductCommandHandler {
	var f commands.ProductUoWFactory = FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateProductCommandHandler(f)
}

func (c *CompositionRoot) CreateBackfillDeliveriesCommandHandler() commands.BackfillDeliveriesCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewBackfillDeliveriesCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveriesQueryHandler() queries.GetDeliveriesQueryHandler {
	return queries.NewGetDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSellerStatsQueryHandler() queries.GetSellerStatsQueryHandler {
	return queries.NewGetSellerStatsQueryHandler(
		c.gormDB, c.cache, c.config.StatsCacheTTL, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
