package pedido

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// lineaPizza builds a product line with a default cheese entry (recipe qty 2)
// for reuse across tests.
func lineaPizza(quesoID uuid.UUID) Linea {
	return Linea{
		ProductoID: uuid.New(),
		Nombre:     "Pizza Muzzarella",
		Precio:     dec("10"),
		Ingredientes: []IngredienteLinea{
			{
				IngredienteID: quesoID,
				Nombre:        "Queso",
				Precio:        dec("1.50"),
				Cantidad:      2,
				PorDefecto:    true,
				Unidad:        "porción",
			},
		},
	}
}

func TestAgregarProducto_NuevaLinea(t *testing.T) {
	p := Nuevo()
	l, err := p.AgregarProducto(lineaPizza(uuid.New()), 2)
	require.NoError(t, err)

	assert.Len(t, p.Lineas, 1)
	assert.Equal(t, 2, l.Cantidad)
	assert.NotEqual(t, uuid.Nil, l.ID)
	// precio 10 × cantidad 2; recipe defaults bundled at no charge
	assert.True(t, p.Subtotal.Equal(dec("20")), "subtotal = %s", p.Subtotal)
	assert.True(t, p.Total.Equal(dec("20")))
}

func TestAgregarProducto_MismaConfiguracionSuma(t *testing.T) {
	queso := uuid.New()
	base := lineaPizza(queso)

	p := Nuevo()
	_, err := p.AgregarProducto(base, 1)
	require.NoError(t, err)
	_, err = p.AgregarProducto(base, 2)
	require.NoError(t, err)

	require.Len(t, p.Lineas, 1, "identical configuration must merge")
	assert.Equal(t, 3, p.Lineas[0].Cantidad)
}

func TestAgregarProducto_ConfiguracionDistintaNoSuma(t *testing.T) {
	queso := uuid.New()
	base := lineaPizza(queso)

	p := Nuevo()
	l1, err := p.AgregarProducto(base, 1)
	require.NoError(t, err)
	require.NoError(t, p.QuitarIngrediente(l1.ID, queso, 1))

	_, err = p.AgregarProducto(lineaPizza(queso), 1)
	require.NoError(t, err)

	assert.Len(t, p.Lineas, 2, "modified line must not absorb a pristine unit")
}

func TestAgregarProducto_MismoNombreDistintoProductoNoSuma(t *testing.T) {
	// Same display name in two subcategories: distinct product IDs, never merged.
	a := Linea{ProductoID: uuid.New(), Nombre: "Milanesa", Precio: dec("8")}
	b := Linea{ProductoID: uuid.New(), Nombre: "Milanesa", Precio: dec("9")}

	p := Nuevo()
	_, err := p.AgregarProducto(a, 1)
	require.NoError(t, err)
	_, err = p.AgregarProducto(b, 1)
	require.NoError(t, err)

	assert.Len(t, p.Lineas, 2)
}

func TestAgregarProducto_CantidadInvalida(t *testing.T) {
	p := Nuevo()
	_, err := p.AgregarProducto(lineaPizza(uuid.New()), 0)
	assert.ErrorIs(t, err, ErrCantidadInvalida)
}

func TestCambiarCantidad(t *testing.T) {
	p := Nuevo()
	l, err := p.AgregarProducto(lineaPizza(uuid.New()), 1)
	require.NoError(t, err)

	require.NoError(t, p.CambiarCantidad(l.ID, 5))
	assert.Equal(t, 5, p.Lineas[0].Cantidad)
	assert.True(t, p.Subtotal.Equal(dec("50")))

	// Dropping below 1 removes the line
	require.NoError(t, p.CambiarCantidad(l.ID, 0))
	assert.True(t, p.Vacio())
	assert.True(t, p.Subtotal.Equal(decimal.Zero))
}

func TestQuitarLinea_NoExiste(t *testing.T) {
	p := Nuevo()
	err := p.QuitarLinea(uuid.New())
	assert.ErrorIs(t, err, ErrLineaNoEncontrada)
}

func TestQuitarIngrediente_DefaultNoSeFactura(t *testing.T) {
	queso := uuid.New()
	p := Nuevo()
	l, err := p.AgregarProducto(lineaPizza(queso), 1)
	require.NoError(t, err)

	// Removing a base unit never produces a negative charge
	require.NoError(t, p.QuitarIngrediente(l.ID, queso, 1))
	assert.True(t, p.Subtotal.Equal(dec("10")), "subtotal = %s", p.Subtotal)

	e := p.Lineas[0].Ingredientes[0]
	assert.Equal(t, 1, e.CantidadNeta())
	assert.Equal(t, 0, e.CantidadFacturable())
}

func TestQuitarIngrediente_DefaultEntradaSobrevive(t *testing.T) {
	queso := uuid.New()
	p := Nuevo()
	l, err := p.AgregarProducto(lineaPizza(queso), 1)
	require.NoError(t, err)

	// Remove the whole recipe quantity; the entry stays as the "sin queso" note
	require.NoError(t, p.QuitarIngrediente(l.ID, queso, 2))
	require.Len(t, p.Lineas[0].Ingredientes, 1)
	assert.Equal(t, 0, p.Lineas[0].Ingredientes[0].CantidadNeta())

	// Nothing left to remove
	err = p.QuitarIngrediente(l.ID, queso, 1)
	assert.Error(t, err)
}

func TestAgregarIngrediente_ReposeAntesDeFacturar(t *testing.T) {
	queso := uuid.New()
	p := Nuevo()
	l, err := p.AgregarProducto(lineaPizza(queso), 1)
	require.NoError(t, err)
	require.NoError(t, p.QuitarIngrediente(l.ID, queso, 2))

	// 3 units: 2 replenish the removed base, 1 is billed surplus
	ing := IngredienteLinea{IngredienteID: queso, Nombre: "Queso", Precio: dec("1.50")}
	require.NoError(t, p.AgregarIngrediente(l.ID, ing, 3))

	e := p.Lineas[0].Ingredientes[0]
	assert.Equal(t, 0, e.CantidadQuitada)
	assert.Equal(t, 1, e.CantidadAgregada)
	assert.Equal(t, 3, e.CantidadNeta())
	assert.True(t, p.Subtotal.Equal(dec("11.50")), "subtotal = %s", p.Subtotal)
}

func TestAgregarIngrediente_ExtraNuevo(t *testing.T) {
	bacon := uuid.New()
	p := Nuevo()
	l, err := p.AgregarProducto(lineaPizza(uuid.New()), 1)
	require.NoError(t, err)

	ing := IngredienteLinea{IngredienteID: bacon, Nombre: "Bacon", Precio: dec("2")}
	require.NoError(t, p.AgregarIngrediente(l.ID, ing, 2))
	assert.True(t, p.Subtotal.Equal(dec("14")), "subtotal = %s", p.Subtotal)

	// Removing everything prunes the extra entry
	require.NoError(t, p.QuitarIngrediente(l.ID, bacon, 2))
	assert.Len(t, p.Lineas[0].Ingredientes, 1)
	assert.True(t, p.Subtotal.Equal(dec("10")))
}

func TestQuitarIngrediente_ExtraConsumeSurplusPrimero(t *testing.T) {
	queso := uuid.New()
	p := Nuevo()
	l, err := p.AgregarProducto(lineaPizza(queso), 1)
	require.NoError(t, err)

	ing := IngredienteLinea{IngredienteID: queso, Nombre: "Queso", Precio: dec("1.50")}
	require.NoError(t, p.AgregarIngrediente(l.ID, ing, 1))
	assert.True(t, p.Subtotal.Equal(dec("11.50")))

	// One removal eats the billed surplus before touching base units
	require.NoError(t, p.QuitarIngrediente(l.ID, queso, 1))
	e := p.Lineas[0].Ingredientes[0]
	assert.Equal(t, 0, e.CantidadAgregada)
	assert.Equal(t, 0, e.CantidadQuitada)
	assert.True(t, p.Subtotal.Equal(dec("10")))
}

func TestRecargoIngredientePorLineaNoPorUnidad(t *testing.T) {
	bacon := uuid.New()
	p := Nuevo()
	l, err := p.AgregarProducto(Linea{ProductoID: uuid.New(), Nombre: "Burger", Precio: dec("10")}, 2)
	require.NoError(t, err)

	ing := IngredienteLinea{IngredienteID: bacon, Nombre: "Bacon", Precio: dec("2")}
	require.NoError(t, p.AgregarIngrediente(l.ID, ing, 1))

	// 10×2 + 2 — the surcharge applies once per line, not per unit
	assert.True(t, p.Subtotal.Equal(dec("22")), "subtotal = %s", p.Subtotal)
}

func TestAplicarDescuento(t *testing.T) {
	p := Nuevo()
	_, err := p.AgregarProducto(Linea{ProductoID: uuid.New(), Nombre: "Menu", Precio: dec("100")}, 1)
	require.NoError(t, err)

	require.NoError(t, p.AplicarDescuento(dec("10")))
	assert.True(t, p.Subtotal.Equal(dec("100")))
	assert.True(t, p.Total.Equal(dec("90")), "total = %s", p.Total)

	// Out-of-range values rejected, state untouched
	assert.ErrorIs(t, p.AplicarDescuento(dec("101")), ErrDescuentoInvalido)
	assert.ErrorIs(t, p.AplicarDescuento(dec("-1")), ErrDescuentoInvalido)
	assert.True(t, p.Total.Equal(dec("90")))
}

func TestCalcularTotales_Idempotente(t *testing.T) {
	p := Nuevo()
	_, err := p.AgregarProducto(Linea{ProductoID: uuid.New(), Nombre: "Flan", Precio: dec("3.33")}, 3)
	require.NoError(t, err)
	require.NoError(t, p.AplicarDescuento(dec("15")))

	s1, t1 := CalcularTotales(p.Lineas, p.DescuentoPct)
	s2, t2 := CalcularTotales(p.Lineas, p.DescuentoPct)
	assert.True(t, s1.Equal(s2))
	assert.True(t, t1.Equal(t2))
	assert.True(t, s1.Equal(p.Subtotal))
	assert.True(t, t1.Equal(p.Total))
}

func TestObservar(t *testing.T) {
	p := Nuevo()
	l, err := p.AgregarProducto(lineaPizza(uuid.New()), 1)
	require.NoError(t, err)

	require.NoError(t, p.Observar(l.ID, "sin sal"))
	assert.Equal(t, "sin sal", p.Lineas[0].Observaciones)

	assert.ErrorIs(t, p.Observar(uuid.New(), "x"), ErrLineaNoEncontrada)
}

func TestClaveConfiguracion_OrdenIndependiente(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	prod := uuid.New()
	ings := []IngredienteLinea{
		{IngredienteID: a, PorDefecto: true, Cantidad: 1},
		{IngredienteID: b, CantidadAgregada: 2},
	}
	l1 := Linea{ProductoID: prod, Ingredientes: ings}
	l2 := Linea{ProductoID: prod, Ingredientes: []IngredienteLinea{ings[1], ings[0]}}

	assert.True(t, l1.MismaConfiguracion(l2))
}
