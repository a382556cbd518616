package handlers

import (
	"github.com/jmoiron/sqlx"

	"printforge/internal/config"
	"printforge/internal/repos"
	"printforge/internal/services"
)

type Deps struct {
	ChatHandler     *ChatHandler
	OperatorHandler *OperatorHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo()
	sessRepo := repos.NewSessionRepo()
	queue := repos.NewOrderQueue()
	sheet := repos.NewOrderSheet(cfg.OrdersFile, cfg.MaxOrderItems)

	catalogSvc := services.NewCatalogService(prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(cartRepo, sheet, queue)
	dialogSvc := services.NewDialogService(catalogSvc, cartSvc, sessRepo, orderSvc)

	return &Deps{
		ChatHandler:     &ChatHandler{Dialog: dialogSvc},
		OperatorHandler: &OperatorHandler{Queue: queue, Sheet: sheet},
	}
}
