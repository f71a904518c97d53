package inbound

import (
	"context"
)

type CreateProductRequest struct {
	ObjectName string  `json:"obj_name"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

type ProductResponse struct {
	ObjectName string  `json:"obj_name"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	TotalSum   float64 `json:"total_sum"`
}

type RepriceRequest struct {
	ObjectName string  `json:"obj_name"`
	Price      float64 `json:"price"`
}

type StockRequest struct {
	ObjectName string `json:"obj_name"`
	Units      int    `json:"units"`
}

// ProductUseCase drives guarded, audited products for the command line.
type ProductUseCase interface {
	Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error)
	Reprice(ctx context.Context, req RepriceRequest) (*ProductResponse, error)
	Sell(ctx context.Context, req StockRequest) (*ProductResponse, error)
	Restock(ctx context.Context, req StockRequest) (*ProductResponse, error)
	Get(ctx context.Context, objName string) (*ProductResponse, error)
}
