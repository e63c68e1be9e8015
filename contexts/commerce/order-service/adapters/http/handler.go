package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"pixmart/contexts/commerce/order-service/application"
	"pixmart/contexts/commerce/order-service/domain/entities"
	"pixmart/contexts/commerce/order-service/ports"
	httptransport "pixmart/contexts/commerce/order-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateOrderHandler(ctx context.Context, buyerID string, req httptransport.CreateOrderRequest) (httptransport.OrderDTO, error) {
	input := ports.CreateOrderInput{}
	for _, item := range req.Items {
		input.Items = append(input.Items, ports.OrderItemInput{
			ListingID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	order, err := h.Service.Create(ctx, buyerID, input)
	if err != nil {
		return httptransport.OrderDTO{}, err
	}
	return toOrderDTO(order), nil
}

func (h Handler) GetOrderHandler(ctx context.Context, orderID string, callerID string, callerRole string) (httptransport.OrderDTO, error) {
	order, err := h.Service.Get(ctx, orderID, callerID, callerRole)
	if err != nil {
		return httptransport.OrderDTO{}, err
	}
	return toOrderDTO(order), nil
}

func (h Handler) UpdateOrderStatusHandler(ctx context.Context, orderID string, callerID string, callerRole string, req httptransport.UpdateOrderStatusRequest) (httptransport.OrderDTO, error) {
	order, err := h.Service.SetStatus(ctx, orderID, callerID, callerRole, entities.OrderStatus(req.Status))
	if err != nil {
		return httptransport.OrderDTO{}, err
	}
	return toOrderDTO(order), nil
}

func (h Handler) ListBuyerOrdersHandler(ctx context.Context, buyerID string) (httptransport.ListOrdersResponse, error) {
	orders, err := h.Service.ListForBuyer(ctx, buyerID)
	if err != nil {
		return httptransport.ListOrdersResponse{}, err
	}
	return toListResponse(orders), nil
}

func (h Handler) ListVendorOrdersHandler(ctx context.Context, vendorID string) (httptransport.ListOrdersResponse, error) {
	orders, err := h.Service.ListForVendor(ctx, vendorID)
	if err != nil {
		return httptransport.ListOrdersResponse{}, err
	}
	return toListResponse(orders), nil
}

func (h Handler) AddCartItemHandler(ctx context.Context, buyerID string, req httptransport.AddCartItemRequest) (httptransport.CartResponse, error) {
	if _, err := h.Service.AddToCart(ctx, buyerID, req.ProductID, req.Quantity); err != nil {
		return httptransport.CartResponse{}, err
	}
	return h.GetCartHandler(ctx, buyerID)
}

func (h Handler) RemoveCartItemHandler(ctx context.Context, buyerID string, listingID string) (httptransport.CartResponse, error) {
	if err := h.Service.RemoveFromCart(ctx, buyerID, listingID); err != nil {
		return httptransport.CartResponse{}, err
	}
	return h.GetCartHandler(ctx, buyerID)
}

func (h Handler) GetCartHandler(ctx context.Context, buyerID string) (httptransport.CartResponse, error) {
	lines, err := h.Service.GetCart(ctx, buyerID)
	if err != nil {
		return httptransport.CartResponse{}, err
	}
	resp := httptransport.CartResponse{Items: make([]httptransport.CartItemDTO, 0, len(lines))}
	for _, line := range lines {
		resp.Items = append(resp.Items, httptransport.CartItemDTO{
			ProductID: line.Item.ListingID,
			Title:     line.Listing.Title,
			Price:     line.Listing.Price,
			ImageURL:  line.Listing.ImageURL,
			Quantity:  line.Item.Quantity,
			AddedAt:   line.Item.AddedAt.UTC().Format(time.RFC3339),
		})
		resp.Total += line.Listing.Price * float64(line.Item.Quantity)
	}
	return resp, nil
}

func toListResponse(orders []entities.Order) httptransport.ListOrdersResponse {
	resp := httptransport.ListOrdersResponse{Orders: make([]httptransport.OrderDTO, 0, len(orders))}
	for _, order := range orders {
		resp.Orders = append(resp.Orders, toOrderDTO(order))
	}
	return resp
}

func toOrderDTO(order entities.Order) httptransport.OrderDTO {
	dto := httptransport.OrderDTO{
		ID:        order.OrderID,
		BuyerID:   order.BuyerID,
		Items:     make([]httptransport.OrderItemDTO, 0, len(order.Items)),
		Total:     order.Total,
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: order.UpdatedAt.UTC().Format(time.RFC3339),
	}
	for _, item := range order.Items {
		dto.Items = append(dto.Items, httptransport.OrderItemDTO{
			ProductID: item.ListingID,
			VendorID:  item.VendorID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return dto
}
