package entity

import "time"

// StockChanged evento emitido tras cada escritura de stock exitosa.
// Es la señal para que el evaluador de alertas recalcule el estado del producto.
type StockChanged struct {
	ProductID     string    `json:"product_id"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	ChangeType    string    `json:"change_type"`
	OccurredAt    time.Time `json:"occurred_at"`
}
