package report

import "context"

// MovementRow fila del reporte de movimientos, ya resuelta (nombre de producto
// incluido) para que el generador no consulte nada.
type MovementRow struct {
	Date        string
	ProductSKU  string
	ProductName string
	Type        string
	Quantity    int
	Reason      string
	User        string
}

// Generator produce el PDF del reporte. Implementado en infraestructura con
// Maroto; la interfaz permite un fake en tests.
type Generator interface {
	MovementsPDF(ctx context.Context, title string, rows []MovementRow) ([]byte, error)
}
