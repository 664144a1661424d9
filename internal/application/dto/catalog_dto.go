package dto

// CatalogRowError error de una fila de la importación (1 = primera fila de datos).
type CatalogRowError struct {
	Row     int    `json:"row"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

// CatalogImportResult resultado de POST /api/admin/catalog/import.
type CatalogImportResult struct {
	Rows          int               `json:"rows"`
	Created       int               `json:"created"`
	Updated       int               `json:"updated"`
	StockAdjusted int               `json:"stock_adjusted"`
	Failed        int               `json:"failed"`
	Errors        []CatalogRowError `json:"errors"`
}
