package cart

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"dekorhouse/internal/cart/controller"
	cartrepo "dekorhouse/internal/cart/repository"
	"dekorhouse/internal/cart/service"
	"dekorhouse/internal/infrastructure/mysql"
	"dekorhouse/internal/pricing"
	productrepo "dekorhouse/internal/product/repository"
)

func NewModule(db *sqlx.DB, fees pricing.FeePolicy, logger *zap.Logger) *controller.CartController {
	cartRepo := cartrepo.NewMySQLCartRepository(db)
	productRepo := productrepo.NewMySQLRepository(db)

	svc := service.NewCartService(mysql.NewTxRunner(db), cartRepo, productRepo, logger)
	return controller.NewCartController(svc, fees, logger)
}
