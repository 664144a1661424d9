package entity

import "time"

// Tipos de cambio registrados en el log de inventario.
const (
	ChangeTypeIncrease   = "increase"
	ChangeTypeDecrease   = "decrease"
	ChangeTypeAdjustment = "adjustment"
)

// InventoryLogEntry registro inmutable de una mutación de stock (append-only).
// Invariante: NewStock = PreviousStock + QuantityChange.
type InventoryLogEntry struct {
	ID             string
	ProductID      string
	ChangeType     string
	QuantityChange int // delta efectivo (ya recortado en cero), no el solicitado
	PreviousStock  int
	NewStock       int
	Note           string
	CreatedAt      time.Time
}
