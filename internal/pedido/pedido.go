package pedido

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrLineaNoEncontrada       = errors.New("línea no encontrada en el pedido")
	ErrIngredienteNoEncontrado = errors.New("ingrediente no encontrado en la línea")
	ErrCantidadInvalida        = errors.New("la cantidad debe ser mayor a cero")
	ErrDescuentoInvalido       = errors.New("el descuento debe estar entre 0 y 100")
)

// Pedido is a table's open order: its lines, a single percentage discount and
// the derived totals. Totals are recomputed after every mutation; with tens of
// lines at most there is nothing worth caching.
type Pedido struct {
	Lineas       []Linea         `json:"lineas"`
	DescuentoPct decimal.Decimal `json:"descuento_pct"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Total        decimal.Decimal `json:"total"`
}

// Nuevo returns an empty order with zeroed totals.
func Nuevo() *Pedido {
	return &Pedido{
		Lineas:       []Linea{},
		DescuentoPct: decimal.Zero,
		Subtotal:     decimal.Zero,
		Total:        decimal.Zero,
	}
}

// CalcularTotales is the single source of truth for order arithmetic:
// subtotal = Σ line totals, total = subtotal - subtotal*descuento/100.
// Pure and idempotent; results are rounded to cents.
func CalcularTotales(lineas []Linea, descuentoPct decimal.Decimal) (subtotal, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, l := range lineas {
		subtotal = subtotal.Add(l.Total())
	}
	descuento := subtotal.Mul(descuentoPct).Div(decimal.NewFromInt(100))
	subtotal = subtotal.Round(2)
	total = subtotal.Sub(descuento.Round(2))
	return subtotal, total
}

func (p *Pedido) recalcular() {
	p.Subtotal, p.Total = CalcularTotales(p.Lineas, p.DescuentoPct)
}

// buscarLinea returns a pointer into p.Lineas or nil.
func (p *Pedido) buscarLinea(lineaID uuid.UUID) *Linea {
	for i := range p.Lineas {
		if p.Lineas[i].ID == lineaID {
			return &p.Lineas[i]
		}
	}
	return nil
}

// AgregarProducto adds n units of a product. If a line with the same product
// and identical ingredient configuration already exists the quantities merge;
// otherwise a new line is appended with the recipe defaults attached.
// Returns the affected line.
func (p *Pedido) AgregarProducto(nueva Linea, n int) (*Linea, error) {
	if n < 1 {
		return nil, ErrCantidadInvalida
	}
	for i := range p.Lineas {
		if p.Lineas[i].MismaConfiguracion(nueva) {
			p.Lineas[i].Cantidad += n
			p.recalcular()
			return &p.Lineas[i], nil
		}
	}
	if nueva.ID == uuid.Nil {
		nueva.ID = uuid.New()
	}
	nueva.Cantidad = n
	nueva.Ingredientes = clonarIngredientes(nueva.Ingredientes)
	p.Lineas = append(p.Lineas, nueva)
	p.recalcular()
	return &p.Lineas[len(p.Lineas)-1], nil
}

// CambiarCantidad sets a line's quantity. Dropping below 1 removes the line.
func (p *Pedido) CambiarCantidad(lineaID uuid.UUID, cantidad int) error {
	l := p.buscarLinea(lineaID)
	if l == nil {
		return ErrLineaNoEncontrada
	}
	if cantidad < 1 {
		return p.QuitarLinea(lineaID)
	}
	l.Cantidad = cantidad
	p.recalcular()
	return nil
}

// QuitarLinea removes a line outright.
func (p *Pedido) QuitarLinea(lineaID uuid.UUID) error {
	for i := range p.Lineas {
		if p.Lineas[i].ID == lineaID {
			p.Lineas = append(p.Lineas[:i], p.Lineas[i+1:]...)
			p.recalcular()
			return nil
		}
	}
	return ErrLineaNoEncontrada
}

// AgregarIngrediente adds n units of an ingredient to a line.
//
// Order of application:
//  1. A default entry that was partially removed is replenished first —
//     CantidadQuitada decreases toward 0 before any unit is billed.
//  2. Remaining units increment CantidadAgregada (billed surplus).
//  3. No entry for that ingredient yet: a new non-default entry is created.
func (p *Pedido) AgregarIngrediente(lineaID uuid.UUID, ing IngredienteLinea, n int) error {
	if n < 1 {
		return ErrCantidadInvalida
	}
	l := p.buscarLinea(lineaID)
	if l == nil {
		return ErrLineaNoEncontrada
	}

	for i := range l.Ingredientes {
		e := &l.Ingredientes[i]
		if e.IngredienteID != ing.IngredienteID {
			continue
		}
		if e.PorDefecto && e.CantidadQuitada > 0 {
			repuesto := min(e.CantidadQuitada, n)
			e.CantidadQuitada -= repuesto
			n -= repuesto
		}
		e.CantidadAgregada += n
		p.recalcular()
		return nil
	}

	l.Ingredientes = append(l.Ingredientes, IngredienteLinea{
		IngredienteID:    ing.IngredienteID,
		Nombre:           ing.Nombre,
		Precio:           ing.Precio,
		PorDefecto:       false,
		CantidadAgregada: n,
		Unidad:           ing.Unidad,
	})
	p.recalcular()
	return nil
}

// QuitarIngrediente removes n units of an ingredient from a line.
//
// For a default entry the billed surplus (CantidadAgregada) is consumed before
// base units, and base removal is capped at the recipe quantity — the entry
// itself always survives so the kitchen sees the "sin X" note. A non-default
// entry accumulates CantidadQuitada and is pruned once nothing remains.
// Removing more than DisponibleParaQuitar fails.
func (p *Pedido) QuitarIngrediente(lineaID, ingredienteID uuid.UUID, n int) error {
	if n < 1 {
		return ErrCantidadInvalida
	}
	l := p.buscarLinea(lineaID)
	if l == nil {
		return ErrLineaNoEncontrada
	}

	for i := range l.Ingredientes {
		e := &l.Ingredientes[i]
		if e.IngredienteID != ingredienteID {
			continue
		}
		if n > e.DisponibleParaQuitar() {
			return fmt.Errorf("no se pueden quitar %d unidades de %s: disponibles %d", n, e.Nombre, e.DisponibleParaQuitar())
		}
		if e.PorDefecto {
			surplus := min(e.CantidadAgregada, n)
			e.CantidadAgregada -= surplus
			e.CantidadQuitada += n - surplus
		} else {
			e.CantidadQuitada += n
			if e.CantidadQuitada >= e.CantidadAgregada {
				l.Ingredientes = append(l.Ingredientes[:i], l.Ingredientes[i+1:]...)
			}
		}
		p.recalcular()
		return nil
	}
	return ErrIngredienteNoEncontrado
}

// AplicarDescuento sets the order-wide percentage discount.
func (p *Pedido) AplicarDescuento(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return ErrDescuentoInvalido
	}
	p.DescuentoPct = pct
	p.recalcular()
	return nil
}

// Observar sets free-form kitchen notes on a line.
func (p *Pedido) Observar(lineaID uuid.UUID, texto string) error {
	l := p.buscarLinea(lineaID)
	if l == nil {
		return ErrLineaNoEncontrada
	}
	l.Observaciones = texto
	return nil
}

// Vacio reports whether the order has no lines.
func (p *Pedido) Vacio() bool { return len(p.Lineas) == 0 }
