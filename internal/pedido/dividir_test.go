package pedido

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoverUnidad_DecrementaOrigen(t *testing.T) {
	origen, destino := Nuevo(), Nuevo()
	l, err := origen.AgregarProducto(Linea{ProductoID: uuid.New(), Nombre: "Empanada", Precio: dec("2")}, 3)
	require.NoError(t, err)

	require.NoError(t, MoverUnidad(origen, destino, l.ID))

	assert.Equal(t, 2, origen.Lineas[0].Cantidad)
	require.Len(t, destino.Lineas, 1)
	assert.Equal(t, 1, destino.Lineas[0].Cantidad)
	assert.True(t, origen.Subtotal.Equal(dec("4")))
	assert.True(t, destino.Subtotal.Equal(dec("2")))
}

func TestMoverUnidad_UltimaUnidadEliminaLinea(t *testing.T) {
	origen, destino := Nuevo(), Nuevo()
	l, err := origen.AgregarProducto(Linea{ProductoID: uuid.New(), Nombre: "Empanada", Precio: dec("2")}, 1)
	require.NoError(t, err)

	require.NoError(t, MoverUnidad(origen, destino, l.ID))

	assert.True(t, origen.Vacio(), "no zero-quantity remnant may remain")
	require.Len(t, destino.Lineas, 1)
	assert.Equal(t, 1, destino.Lineas[0].Cantidad)
}

func TestMoverUnidad_FusionaEnDestino(t *testing.T) {
	prod := uuid.New()
	base := Linea{ProductoID: prod, Nombre: "Gaseosa", Precio: dec("3")}

	origen, destino := Nuevo(), Nuevo()
	l, err := origen.AgregarProducto(base, 2)
	require.NoError(t, err)
	_, err = destino.AgregarProducto(base, 1)
	require.NoError(t, err)

	require.NoError(t, MoverUnidad(origen, destino, l.ID))

	require.Len(t, destino.Lineas, 1, "same configuration merges on arrival")
	assert.Equal(t, 2, destino.Lineas[0].Cantidad)
}

func TestMoverUnidad_ConservaModificaciones(t *testing.T) {
	queso := uuid.New()
	origen, destino := Nuevo(), Nuevo()
	l, err := origen.AgregarProducto(lineaPizza(queso), 2)
	require.NoError(t, err)
	require.NoError(t, origen.QuitarIngrediente(l.ID, queso, 1))
	require.NoError(t, origen.Observar(l.ID, "bien cocida"))

	require.NoError(t, MoverUnidad(origen, destino, l.ID))

	require.Len(t, destino.Lineas, 1)
	moved := destino.Lineas[0]
	assert.Equal(t, "bien cocida", moved.Observaciones)
	require.Len(t, moved.Ingredientes, 1)
	assert.Equal(t, 1, moved.Ingredientes[0].CantidadQuitada)

	// Deep copy: mutating the moved line must not touch the source
	require.NoError(t, destino.QuitarIngrediente(moved.ID, queso, 1))
	assert.Equal(t, 1, origen.Lineas[0].Ingredientes[0].CantidadQuitada)
}

func TestMoverUnidad_LineaInexistente(t *testing.T) {
	origen, destino := Nuevo(), Nuevo()
	err := MoverUnidad(origen, destino, uuid.New())
	assert.ErrorIs(t, err, ErrLineaNoEncontrada)
}

func TestMoverUnidad_DescuentosIndependientes(t *testing.T) {
	origen, destino := Nuevo(), Nuevo()
	require.NoError(t, origen.AplicarDescuento(dec("50")))
	l, err := origen.AgregarProducto(Linea{ProductoID: uuid.New(), Nombre: "Vino", Precio: dec("20")}, 2)
	require.NoError(t, err)

	require.NoError(t, MoverUnidad(origen, destino, l.ID))

	// Each side applies its own discount to its own subtotal
	assert.True(t, origen.Total.Equal(dec("10")), "total = %s", origen.Total)
	assert.True(t, destino.Total.Equal(dec("20")), "total = %s", destino.Total)
}

func TestJuntar_ConcatenaSinFusionar(t *testing.T) {
	prod := uuid.New()
	base := Linea{ProductoID: prod, Nombre: "Cafe", Precio: dec("2")}

	destino, origen := Nuevo(), Nuevo()
	_, err := destino.AgregarProducto(base, 1)
	require.NoError(t, err)
	_, err = origen.AgregarProducto(base, 2)
	require.NoError(t, err)

	Juntar(destino, origen)

	assert.Len(t, destino.Lineas, 2, "merge keeps each side's entries as rung up")
	assert.True(t, destino.Subtotal.Equal(dec("6")))
	assert.True(t, origen.Vacio())
	assert.True(t, origen.Subtotal.IsZero())
}

func TestJuntar_DestinoConservaDescuento(t *testing.T) {
	destino, origen := Nuevo(), Nuevo()
	require.NoError(t, destino.AplicarDescuento(dec("10")))
	require.NoError(t, origen.AplicarDescuento(dec("50")))
	_, err := origen.AgregarProducto(Linea{ProductoID: uuid.New(), Nombre: "Postre", Precio: dec("100")}, 1)
	require.NoError(t, err)

	Juntar(destino, origen)

	assert.True(t, destino.Subtotal.Equal(dec("100")))
	assert.True(t, destino.Total.Equal(dec("90")), "destination discount governs: total = %s", destino.Total)
}
