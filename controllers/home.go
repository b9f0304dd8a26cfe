package controllers

import (
	"context"
	"log"

	"github.com/acksell/custmvc/model"
	"github.com/acksell/custmvc/mvc"
)

// HomeController serves the landing, privacy and error pages.
type HomeController struct {
	logger *log.Logger
	db     DataContext
}

func NewHomeController(logger *log.Logger, db DataContext) *HomeController {
	if logger == nil {
		logger = log.Default()
	}
	return &HomeController{logger: logger, db: db}
}

// Index lists all customers on the landing page. Store errors are returned
// unlogged; the caller reports them.
func (h *HomeController) Index(ctx context.Context) (mvc.Result, error) {
	customers, err := allCustomers(ctx, h.db)
	if err != nil {
		return nil, err
	}
	return mvc.View(customers), nil
}

func (h *HomeController) Privacy() mvc.Result {
	return mvc.View(nil)
}

// ErrorCache is the caching policy of the error page: never stored.
var ErrorCache = mvc.ResponseCache{Duration: 0, Location: mvc.CacheLocationNone, NoStore: true}

// Error renders the error page for the request with the given ID.
func (h *HomeController) Error(requestID string) mvc.Result {
	if requestID != "" {
		h.logger.Printf("home: error page for request %s", requestID)
	}
	cache := ErrorCache
	return &mvc.ViewResult{
		Model: model.ErrorViewModel{RequestID: requestID},
		Cache: &cache,
	}
}
