package api

import "time"

// Product is a catalog entry: one cement or building-materials SKU.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku"`
	BrandID      string    `json:"brandId"`
	Category     string    `json:"category"`
	UnitWeightKG float64   `json:"unitWeightKg"`
	UnitPrice    float64   `json:"unitPrice"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ProductInput is the payload for creating or updating a product.
type ProductInput struct {
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	BrandID      string  `json:"brandId"`
	Category     string  `json:"category"`
	UnitWeightKG float64 `json:"unitWeightKg"`
	UnitPrice    float64 `json:"unitPrice"`
}

// Brand is a manufacturer whose products the business distributes.
type Brand struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Active  bool   `json:"active"`
}

// BrandInput is the payload for creating or updating a brand.
type BrandInput struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Depot is a warehouse location holding stock.
type Depot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	State    string `json:"state"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
	Active   bool   `json:"active"`
}

// DepotInput is the payload for creating or updating a depot.
type DepotInput struct {
	Name     string `json:"name"`
	State    string `json:"state"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
}

// InventoryRecord is the stock level of one product at one depot.
type InventoryRecord struct {
	DepotID      string    `json:"depotId"`
	ProductID    string    `json:"productId"`
	Quantity     int       `json:"quantity"`
	ReorderLevel int       `json:"reorderLevel"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// InventoryAdjustment is one audited stock movement.
type InventoryAdjustment struct {
	ID        string    `json:"id"`
	DepotID   string    `json:"depotId"`
	ProductID string    `json:"productId"`
	Delta     int       `json:"delta"`
	Reason    string    `json:"reason"`
	ActorID   string    `json:"actorId"`
	CreatedAt time.Time `json:"createdAt"`
}

// InventoryAdjustmentInput is the payload for adjusting stock.
type InventoryAdjustmentInput struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Order is a customer purchase fulfilled from a depot.
type Order struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customerName"`
	DepotID      string      `json:"depotId"`
	Status       string      `json:"status"`
	Items        []OrderItem `json:"items"`
	TotalAmount  float64     `json:"totalAmount"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// OrderInput is the payload for creating an order.
type OrderInput struct {
	CustomerName string      `json:"customerName"`
	DepotID      string      `json:"depotId"`
	Items        []OrderItem `json:"items"`
}

// Payment is a settlement against an order.
type Payment struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"createdAt"`
}

// DeliveryRoute is a priced delivery corridor from a depot.
type DeliveryRoute struct {
	ID            string  `json:"id"`
	DepotID       string  `json:"depotId"`
	State         string  `json:"state"`
	City          string  `json:"city"`
	PricePerTonne float64 `json:"pricePerTonne"`
	Active        bool    `json:"active"`
}

// DeliveryRouteInput is the payload for creating or updating a route.
type DeliveryRouteInput struct {
	DepotID       string  `json:"depotId"`
	State         string  `json:"state"`
	City          string  `json:"city"`
	PricePerTonne float64 `json:"pricePerTonne"`
}

// RouteQuote is the computed cheapest delivery price for a product into a
// state.
type RouteQuote struct {
	RouteID     string  `json:"routeId"`
	DepotID     string  `json:"depotId"`
	State       string  `json:"state"`
	ProductID   string  `json:"productId"`
	DeliveryFee float64 `json:"deliveryFee"`
}

// Notification is an in-app message for the current operator.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// SalesSummary is the aggregated sales report for one period.
type SalesSummary struct {
	Period       string  `json:"period"`
	TotalOrders  int     `json:"totalOrders"`
	TotalRevenue float64 `json:"totalRevenue"`
	TotalTonnes  float64 `json:"totalTonnes"`
}

// InventorySummary is the aggregated stock report across depots.
type InventorySummary struct {
	TotalProducts int `json:"totalProducts"`
	TotalQuantity int `json:"totalQuantity"`
	LowStockCount int `json:"lowStockCount"`
}
