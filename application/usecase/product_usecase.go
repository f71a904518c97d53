package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/fixora/auditguard/application/port/inbound"
	"github.com/fixora/auditguard/domain/entity"
	domainerr "github.com/fixora/auditguard/domain/error"
	"github.com/fixora/auditguard/infrastructure/service/logger"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductExists   = errors.New("product already exists")
)

// ProductUseCase keeps the products created during one run, keyed by their
// display name.
type ProductUseCase struct {
	class    *entity.ProductClass
	logger   logger.Logger
	products map[string]*entity.AuditedProduct
}

var _ inbound.ProductUseCase = (*ProductUseCase)(nil)

func NewProductUseCase(class *entity.ProductClass, log logger.Logger) *ProductUseCase {
	return &ProductUseCase{
		class:    class,
		logger:   log,
		products: make(map[string]*entity.AuditedProduct),
	}
}

func (uc *ProductUseCase) Create(ctx context.Context, req inbound.CreateProductRequest) (*inbound.ProductResponse, error) {
	objName := req.ObjectName
	if objName == "" {
		objName = entity.DefaultProductObjectName
	}
	if _, exists := uc.products[objName]; exists {
		return nil, fmt.Errorf("%w: %s", ErrProductExists, objName)
	}

	product, err := uc.class.New(req.Name, req.Price, req.Quantity, objName)
	if err != nil {
		uc.logFailure(ctx, "create", objName, err)
		return nil, err
	}
	uc.products[objName] = product

	logger.LogAuditEvent(ctx, uc.logger, "create", uc.class.Name(), true, map[string]interface{}{
		"obj_name": objName,
	})
	return uc.respond(product)
}

func (uc *ProductUseCase) Reprice(ctx context.Context, req inbound.RepriceRequest) (*inbound.ProductResponse, error) {
	product, err := uc.find(req.ObjectName)
	if err != nil {
		return nil, err
	}
	if err := product.SetPrice(req.Price); err != nil {
		uc.logFailure(ctx, "reprice", req.ObjectName, err)
		return nil, err
	}

	logger.LogAuditEvent(ctx, uc.logger, "reprice", uc.class.Name(), true, map[string]interface{}{
		"obj_name": req.ObjectName,
		"price":    req.Price,
	})
	return uc.respond(product)
}

func (uc *ProductUseCase) Sell(ctx context.Context, req inbound.StockRequest) (*inbound.ProductResponse, error) {
	product, err := uc.find(req.ObjectName)
	if err != nil {
		return nil, err
	}
	if err := product.Sell(req.Units); err != nil {
		uc.logFailure(ctx, "sell", req.ObjectName, err)
		return nil, err
	}

	logger.LogAuditEvent(ctx, uc.logger, "sell", uc.class.Name(), true, map[string]interface{}{
		"obj_name": req.ObjectName,
		"units":    req.Units,
	})
	return uc.respond(product)
}

func (uc *ProductUseCase) Restock(ctx context.Context, req inbound.StockRequest) (*inbound.ProductResponse, error) {
	product, err := uc.find(req.ObjectName)
	if err != nil {
		return nil, err
	}
	if err := product.Restock(req.Units); err != nil {
		uc.logFailure(ctx, "restock", req.ObjectName, err)
		return nil, err
	}

	logger.LogAuditEvent(ctx, uc.logger, "restock", uc.class.Name(), true, map[string]interface{}{
		"obj_name": req.ObjectName,
		"units":    req.Units,
	})
	return uc.respond(product)
}

func (uc *ProductUseCase) Get(ctx context.Context, objName string) (*inbound.ProductResponse, error) {
	product, err := uc.find(objName)
	if err != nil {
		return nil, err
	}
	return uc.respond(product)
}

func (uc *ProductUseCase) find(objName string) (*entity.AuditedProduct, error) {
	product, ok := uc.products[objName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, objName)
	}
	return product, nil
}

// respond reads the product back; TotalSum is an audited call.
func (uc *ProductUseCase) respond(product *entity.AuditedProduct) (*inbound.ProductResponse, error) {
	total, err := product.TotalSum()
	if err != nil {
		return nil, err
	}
	return &inbound.ProductResponse{
		ObjectName: product.ObjectName(),
		Name:       product.Name(),
		Price:      product.Price(),
		Quantity:   product.Quantity(),
		TotalSum:   total,
	}, nil
}

func (uc *ProductUseCase) logFailure(ctx context.Context, event, objName string, err error) {
	fields := map[string]interface{}{
		"obj_name": objName,
		"error":    err.Error(),
	}
	if validationErr, ok := domainerr.AsValidationError(err); ok {
		fields["field"] = validationErr.Field
	}
	logger.LogAuditEvent(ctx, uc.logger, event, uc.class.Name(), false, fields)
}
