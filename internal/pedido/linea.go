// Package pedido implements the order-composition engine: the in-memory model
// of a table's open order, ingredient deltas against a product's recipe,
// totals, and the split/merge operations between tables. It is pure — no
// persistence, no HTTP — so services and tests can drive it directly.
package pedido

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IngredienteLinea is one ingredient entry on an order line.
//
// Entries come in two flavors:
//   - PorDefecto=true: part of the product's recipe. Cantidad holds the base
//     recipe quantity, bundled into the product price at no extra charge.
//     CantidadQuitada removes base units (never billed negative);
//     CantidadAgregada adds surplus units billed at the ingredient price.
//   - PorDefecto=false: an extra the customer asked for. Cantidad is 0; only
//     the CantidadAgregada - CantidadQuitada surplus exists, billed in full.
//     The entry is pruned once CantidadQuitada reaches CantidadAgregada.
type IngredienteLinea struct {
	IngredienteID    uuid.UUID       `json:"ingrediente_id"`
	Nombre           string          `json:"nombre"`
	Precio           decimal.Decimal `json:"precio"`
	Cantidad         int             `json:"cantidad"`
	PorDefecto       bool            `json:"por_defecto"`
	CantidadAgregada int             `json:"cantidad_agregada"`
	CantidadQuitada  int             `json:"cantidad_quitada"`
	Unidad           string          `json:"unidad"`
}

// CantidadNeta is the quantity that actually goes on the plate.
func (e IngredienteLinea) CantidadNeta() int {
	base := 0
	if e.PorDefecto {
		base = e.Cantidad
	}
	return base + e.CantidadAgregada - e.CantidadQuitada
}

// CantidadFacturable is the surplus above the recipe baseline, billed at the
// ingredient price. Base recipe units are bundled into the product price.
func (e IngredienteLinea) CantidadFacturable() int {
	extra := e.CantidadAgregada
	if !e.PorDefecto {
		extra -= e.CantidadQuitada
	}
	if extra < 0 {
		extra = 0
	}
	return extra
}

// DisponibleParaQuitar is how many more units the user may remove.
func (e IngredienteLinea) DisponibleParaQuitar() int {
	return e.CantidadNeta()
}

// Linea is one order line: a product, a quantity, and its ingredient deltas.
// Ingredient modifications are tracked per line, not per physical unit — a
// known approximation inherited from how waiters actually key orders in.
type Linea struct {
	ID            uuid.UUID          `json:"id"`
	ProductoID    uuid.UUID          `json:"producto_id"`
	Nombre        string             `json:"nombre"`
	Precio        decimal.Decimal    `json:"precio"`
	Cantidad      int                `json:"cantidad"`
	Ingredientes  []IngredienteLinea `json:"ingredientes"`
	Observaciones string             `json:"observaciones,omitempty"`
	ZonaID        *uuid.UUID         `json:"zona_id,omitempty"`
}

// Total is the line price: product price × quantity plus ingredient surcharges.
// Surcharges are per line, matching the per-line delta tracking.
func (l Linea) Total() decimal.Decimal {
	total := l.Precio.Mul(decimal.NewFromInt(int64(l.Cantidad)))
	for _, e := range l.Ingredientes {
		if fact := e.CantidadFacturable(); fact > 0 {
			total = total.Add(e.Precio.Mul(decimal.NewFromInt(int64(fact))))
		}
	}
	return total
}

// ClaveConfiguracion is a canonical serialization of the line's product and
// ingredient-delta set. Two lines with equal keys are the same order entry and
// merge into one line. Keyed by product ID, never by name: same-named products
// in different subcategories must not merge.
func (l Linea) ClaveConfiguracion() string {
	entries := make([]string, 0, len(l.Ingredientes))
	for _, e := range l.Ingredientes {
		entries = append(entries, fmt.Sprintf("%s|%t|%d", e.IngredienteID, e.PorDefecto, e.CantidadNeta()))
	}
	sort.Strings(entries)
	return l.ProductoID.String() + "::" + strings.Join(entries, ";")
}

// MismaConfiguracion reports whether two lines would merge.
func (l Linea) MismaConfiguracion(otra Linea) bool {
	return l.ClaveConfiguracion() == otra.ClaveConfiguracion()
}

// clonarIngredientes deep-copies the ingredient slice so split-off lines do
// not share state with their source.
func clonarIngredientes(src []IngredienteLinea) []IngredienteLinea {
	out := make([]IngredienteLinea, len(src))
	copy(out, src)
	return out
}
