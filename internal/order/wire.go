package order

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	cartrepo "dekorhouse/internal/cart/repository"
	"dekorhouse/internal/config"
	"dekorhouse/internal/infrastructure/mysql"
	"dekorhouse/internal/order/controller"
	orderrepo "dekorhouse/internal/order/repository"
	"dekorhouse/internal/order/service"
	"dekorhouse/internal/order/usecase"
	"dekorhouse/internal/pricing"
	productrepo "dekorhouse/internal/product/repository"
)

type Module struct {
	Controller *controller.OrderController
	Checkout   *usecase.CheckoutUseCase
}

func NewModule(
	db *sqlx.DB,
	cfg config.CheckoutConfig,
	fees pricing.FeePolicy,
	idempotency usecase.IdempotencyStore,
	notifier usecase.Notifier,
	logger *zap.Logger,
) *Module {
	txRunner := mysql.NewTxRunner(db)
	orderRepo := orderrepo.NewMySQLOrderRepository(db)

	checkoutSvc := service.NewCheckoutService(
		txRunner,
		cartrepo.NewMySQLCartRepository(db),
		productrepo.NewMySQLRepository(db),
		orderRepo,
		orderrepo.NewMySQLOrderItemRepository(db),
		service.NewMaterializer(fees),
		service.NewNumberGenerator(),
		logger,
		cfg.TxTimeout,
	)
	orderSvc := service.NewOrderService(txRunner, orderRepo, logger)

	checkout := usecase.NewCheckoutUseCase(
		checkoutSvc,
		orderSvc,
		idempotency,
		notifier,
		logger,
		cfg.MaxRetryAttempts,
		cfg.NotifyTimeout,
	)

	return &Module{
		Controller: controller.NewOrderController(checkout, orderSvc, logger),
		Checkout:   checkout,
	}
}
