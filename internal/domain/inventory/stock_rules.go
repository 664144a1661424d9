package inventory

import "github.com/jhoicas/tienda-backoffice/internal/domain/entity"

// Modos de ajuste de stock.
const (
	ModeRelative = "relative" // el valor es un delta con signo
	ModeAbsolute = "absolute" // el valor es el stock objetivo
)

// ValidMode informa si mode es un modo de ajuste soportado.
func ValidMode(mode string) bool {
	return mode == ModeRelative || mode == ModeAbsolute
}

// EffectiveStock calcula el stock resultante aplicando la regla de recorte en cero.
//
//	relative: max(0, known + value)
//	absolute: max(0, value)
func EffectiveStock(mode string, known, value int) int {
	next := value
	if mode == ModeRelative {
		next = known + value
	}
	if next < 0 {
		return 0
	}
	return next
}

// ClassifyChange deriva el tipo de cambio a partir del stock observado y el efectivo.
// Un cambio nulo (delta cero o recorte total) es siempre "adjustment".
func ClassifyChange(previous, next int) string {
	switch {
	case next > previous:
		return entity.ChangeTypeIncrease
	case next < previous:
		return entity.ChangeTypeDecrease
	default:
		return entity.ChangeTypeAdjustment
	}
}

// NewLogEntry arma la entrada de auditoría para una mutación ya calculada.
// QuantityChange refleja el delta efectivo, no el solicitado.
func NewLogEntry(productID string, previous, next int, note string) *entity.InventoryLogEntry {
	return &entity.InventoryLogEntry{
		ProductID:      productID,
		ChangeType:     ClassifyChange(previous, next),
		QuantityChange: next - previous,
		PreviousStock:  previous,
		NewStock:       next,
		Note:           note,
	}
}
