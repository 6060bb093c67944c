// Package excel exporta el kardex a hojas de cálculo .xlsx.
package excel

import (
	"fmt"
	"io"

	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

// SheetName hoja donde se escriben los movimientos.
const SheetName = "Kardex"

var kardexHeader = []any{
	"Fecha", "Código", "Producto", "Tipo", "Cantidad", "Stock anterior", "Stock nuevo", "Motivo", "Referencia", "Usuario",
}

// KardexExporter escribe movimientos en un libro .xlsx con una fila por movimiento.
type KardexExporter struct{}

// NewKardexExporter construye el exportador.
func NewKardexExporter() *KardexExporter {
	return &KardexExporter{}
}

// WriteMovements escribe el libro completo en w. Los productos se usan para
// resolver código y nombre; si falta alguno se deja el id.
func (e *KardexExporter) WriteMovements(w io.Writer, movements []*entity.StockMovement, products map[string]*entity.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}
	if err := sw.SetRow("A1", kardexHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, m := range movements {
		code, name := m.ProductID, ""
		if p, ok := products[m.ProductID]; ok && p != nil {
			code, name = p.Code, p.Name
		}
		qty, _ := m.Quantity.Float64()
		prev, _ := m.PreviousStock.Float64()
		next, _ := m.NewStock.Float64()
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			m.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			code, name, m.Type, qty, prev, next, m.Reason, m.Reference, m.CreatedBy,
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
