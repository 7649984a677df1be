package product

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"dekorhouse/internal/product/controller"
	"dekorhouse/internal/product/repository"
	"dekorhouse/internal/product/service"
	"dekorhouse/internal/product/usecase"
)

func NewModule(db *sqlx.DB, logger *zap.Logger) *controller.Controller {
	repo := repository.NewMySQLRepository(db)
	svc := service.NewService(repo)
	uc := usecase.NewSearchUseCase(svc)
	return controller.NewController(uc, logger)
}
