package dto

import "time"

// AdjustStockRequest body para POST /api/admin/products/:id/stock.
// CurrentStock es el valor que el administrador tenía en pantalla.
type AdjustStockRequest struct {
	Mode         string `json:"mode"` // relative | absolute
	CurrentStock int    `json:"current_stock"`
	Value        int    `json:"value"`
	Note         string `json:"note,omitempty"`
}

// AdjustStockResponse resultado de un ajuste. Warning presente si el log de auditoría falló.
type AdjustStockResponse struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	NewStock       int    `json:"new_stock"`
	ChangeType     string `json:"change_type"`
	QuantityChange int    `json:"quantity_change"`
	Warning        string `json:"warning,omitempty"`
}

// InventoryLogResponse una entrada del log de inventario.
type InventoryLogResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	ChangeType     string    `json:"change_type"`
	QuantityChange int       `json:"quantity_change"`
	PreviousStock  int       `json:"previous_stock"`
	NewStock       int       `json:"new_stock"`
	Note           string    `json:"note,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// InventoryLogListResponse lista paginada del log.
type InventoryLogListResponse struct {
	Items []InventoryLogResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// LogSummaryItem agregado por tipo de cambio.
type LogSummaryItem struct {
	ChangeType  string `json:"change_type"`
	Movements   int    `json:"movements"`
	NetQuantity int    `json:"net_quantity"`
}

// LogSummaryResponse resumen de movimientos en un rango de fechas.
type LogSummaryResponse struct {
	From           time.Time        `json:"from"`
	To             time.Time        `json:"to"`
	Items          []LogSummaryItem `json:"items"`
	TotalMovements int              `json:"total_movements"`
	NetQuantity    int              `json:"net_quantity"`
}

// LowStockItemDTO producto en o bajo su umbral de stock.
type LowStockItemDTO struct {
	ProductID         string `json:"product_id"`
	SKU               string `json:"sku"`
	Name              string `json:"name"`
	Stock             int    `json:"stock"`
	LowStockThreshold int    `json:"low_stock_threshold"`
	Deficit           int    `json:"deficit"`      // umbral - stock
	OutOfStock        bool   `json:"out_of_stock"` // stock == 0
	Priority          int    `json:"priority"`     // 1 = más urgente
}

// InventoryAlertResponse alerta activa para el panel.
type InventoryAlertResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	SKU          string    `json:"sku"`
	AlertType    string    `json:"alert_type"`
	Threshold    int       `json:"threshold"`
	CurrentStock int       `json:"current_stock"`
	UpdatedAt    time.Time `json:"updated_at"`
}
