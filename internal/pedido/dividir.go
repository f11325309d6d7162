package pedido

// dividir.go — splitting an order between two tables and merging two tables
// into one. Split moves one unit per call, mirroring how staff click items
// across; merge concatenates without deduplicating so each side's history
// stays intact.

import (
	"github.com/google/uuid"
)

// MoverUnidad transfers one unit of the given source line into destino.
//
// A multi-quantity line decrements by one; a single-quantity line is removed
// entirely — never left behind as a zero-quantity remnant. On the destination
// the unit merges into a line with the same product and ingredient
// configuration, or becomes a new quantity-1 line. Both sides recompute their
// totals independently, each under its own discount.
func MoverUnidad(origen, destino *Pedido, lineaID uuid.UUID) error {
	src := origen.buscarLinea(lineaID)
	if src == nil {
		return ErrLineaNoEncontrada
	}

	unidad := Linea{
		ID:            uuid.New(),
		ProductoID:    src.ProductoID,
		Nombre:        src.Nombre,
		Precio:        src.Precio,
		Cantidad:      1,
		Ingredientes:  clonarIngredientes(src.Ingredientes),
		Observaciones: src.Observaciones,
		ZonaID:        src.ZonaID,
	}

	if src.Cantidad > 1 {
		src.Cantidad--
	} else {
		if err := origen.QuitarLinea(lineaID); err != nil {
			return err
		}
	}
	origen.recalcular()

	if _, err := destino.AgregarProducto(unidad, 1); err != nil {
		return err
	}
	return nil
}

// Juntar concatenates the source order's lines into destino and empties
// origen. Lines are not merged: a table joining another keeps its entries as
// they were rung up. The destination keeps its own discount.
func Juntar(destino, origen *Pedido) {
	for _, l := range origen.Lineas {
		l.Ingredientes = clonarIngredientes(l.Ingredientes)
		destino.Lineas = append(destino.Lineas, l)
	}
	origen.Lineas = []Linea{}
	origen.recalcular()
	destino.recalcular()
}
