package router

import (
	"time"

	"github.com/GreennWolf/Antojos-sub000/internal/config"
	"github.com/GreennWolf/Antojos-sub000/internal/handler"
	"github.com/GreennWolf/Antojos-sub000/internal/infra"
	"github.com/GreennWolf/Antojos-sub000/internal/middleware"
	"github.com/GreennWolf/Antojos-sub000/internal/repository"
	"github.com/GreennWolf/Antojos-sub000/internal/service"
	"github.com/GreennWolf/Antojos-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, printCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	impresoraClient := infra.NewImpresoraClient(cfg.PrintBridgeURL)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	ingredienteRepo := repository.NewIngredienteRepository(db)
	salonRepo := repository.NewSalonRepository(db)
	ajustesRepo := repository.NewAjustesRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	impresionRepo := repository.NewImpresionRepository(db)
	borradorRepo := repository.NewBorradorRepository(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	cartaCache := service.NewCartaCache(rdb)
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	usuarioSvc := service.NewUsuarioService(usuarioRepo)
	catalogoSvc := service.NewCatalogoService(categoriaRepo, productoRepo, ingredienteRepo, cartaCache)
	productoSvc := service.NewProductoService(productoRepo, categoriaRepo, ingredienteRepo, cartaCache)
	ingredienteSvc := service.NewIngredienteService(ingredienteRepo, categoriaRepo, cartaCache)
	salonSvc := service.NewSalonService(salonRepo)
	ajustesSvc := service.NewAjustesService(ajustesRepo, impresoraClient)

	// Worker dispatcher — injected into the ticket service so closing a table
	// can enqueue kitchen prints and the receipt email.
	dispatcher := worker.NewDispatcher(rdb)

	ticketSvc := service.NewTicketService(
		ticketRepo, borradorRepo, impresionRepo, salonRepo,
		productoRepo, ingredienteRepo, categoriaRepo, ajustesRepo,
		authSvc, dispatcher, cfg,
	)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(usuarioSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	ingredientesH := handler.NewIngredientesHandler(ingredienteSvc)
	salonesH := handler.NewSalonesHandler(salonSvc)
	ajustesH := handler.NewAjustesHandler(ajustesSvc)
	ticketsH := handler.NewTicketsHandler(ticketSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, printCB))

	api := r.Group("/api")

	// Auth (public)
	auth := api.Group("/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	adminMW := middleware.RequireAdmin()
	protected := api.Group("", jwtMW)
	{
		// Catálogo — every waiter reads it, only admins shape it
		protected.GET("/carta", catalogoH.Carta)

		protected.GET("/categorias", catalogoH.ListarCategorias)
		categorias := protected.Group("/categorias", adminMW)
		{
			categorias.POST("", catalogoH.CrearCategoria)
			categorias.PUT("/:id", catalogoH.ActualizarCategoria)
			categorias.PATCH("/:id/activo", catalogoH.CambiarActivoCategoria)
		}

		protected.GET("/subcategorias", catalogoH.ListarSubCategorias)
		subcategorias := protected.Group("/subcategorias", adminMW)
		{
			subcategorias.POST("", catalogoH.CrearSubCategoria)
			subcategorias.PUT("/:id", catalogoH.ActualizarSubCategoria)
			subcategorias.PATCH("/:id/activo", catalogoH.CambiarActivoSubCategoria)
		}

		protected.GET("/productos", productosH.Listar)
		protected.GET("/productos/:id", productosH.Obtener)
		productos := protected.Group("/productos", adminMW)
		{
			productos.POST("", productosH.Crear)
			productos.PUT("/:id", productosH.Actualizar)
			productos.PATCH("/:id/activo", productosH.CambiarActivo)
		}

		protected.GET("/ingredientes", ingredientesH.Listar)
		protected.GET("/ingredientes/:id", ingredientesH.Obtener)
		ingredientes := protected.Group("/ingredientes", adminMW)
		{
			ingredientes.POST("", ingredientesH.Crear)
			ingredientes.PUT("/:id", ingredientesH.Actualizar)
			ingredientes.PATCH("/:id/activo", ingredientesH.CambiarActivo)
		}

		// Salones y mesas
		protected.GET("/salones", salonesH.Listar)
		salones := protected.Group("/salones", adminMW)
		{
			salones.POST("", salonesH.Crear)
			salones.PUT("/:id", salonesH.Actualizar)
			salones.PATCH("/:id/activo", salonesH.CambiarActivo)
		}

		protected.GET("/mesas", salonesH.ListarMesas)
		mesas := protected.Group("/mesas", adminMW)
		{
			mesas.POST("", salonesH.CrearMesa)
			mesas.PUT("/:id", salonesH.ActualizarMesa)
			mesas.PATCH("/:id/activo", salonesH.CambiarActivoMesa)
		}

		// Tickets en curso — the order screen; PIN checks happen in the
		// service for the gated operations
		temps := protected.Group("/tickets-temps")
		{
			temps.GET("", ticketsH.ListarAbiertas)
			temps.GET("/:mesaID", ticketsH.Obtener)
			temps.POST("/:mesaID/abrir", ticketsH.Abrir)
			temps.POST("/:mesaID/lineas", ticketsH.AgregarLinea)
			temps.PATCH("/:mesaID/lineas/:lineaID/cantidad", ticketsH.CambiarCantidad)
			temps.DELETE("/:mesaID/lineas/:lineaID", ticketsH.QuitarLinea)
			temps.POST("/:mesaID/lineas/:lineaID/ingredientes", ticketsH.AgregarIngrediente)
			temps.DELETE("/:mesaID/lineas/:lineaID/ingredientes/:ingredienteID", ticketsH.QuitarIngrediente)
			temps.PUT("/:mesaID/lineas/:lineaID/observacion", ticketsH.Observar)
			temps.PATCH("/:mesaID/descuento", ticketsH.AplicarDescuento)
			temps.POST("/:mesaID/dividir", ticketsH.Dividir)
			temps.POST("/:mesaID/juntar", ticketsH.Juntar)
			temps.POST("/:mesaID/cerrar", ticketsH.Cerrar)
		}

		protected.POST("/precuentas/:mesaID", ticketsH.Precuenta)

		// Tickets cerrados
		protected.GET("/tickets", ticketsH.ListarTickets)
		protected.GET("/tickets/:id", ticketsH.ObtenerTicket)
		protected.POST("/tickets/:id/anular", adminMW, ticketsH.AnularTicket)

		// Usuarios y roles — administración
		usuarios := protected.Group("/usuarios", adminMW)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.GET("/:id", usuariosH.Obtener)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.PATCH("/:id/activo", usuariosH.CambiarActivo)
		}
		roles := protected.Group("/roles", adminMW)
		{
			roles.POST("", usuariosH.CrearRol)
			roles.GET("", usuariosH.ListarRoles)
			roles.PUT("/:id", usuariosH.ActualizarRol)
			roles.PATCH("/:id/activo", usuariosH.CambiarActivoRol)
		}

		// Ajustes
		protected.GET("/metodos-pago", ajustesH.ListarMetodosPago)
		metodos := protected.Group("/metodos-pago", adminMW)
		{
			metodos.POST("", ajustesH.CrearMetodoPago)
			metodos.PUT("/:id", ajustesH.ActualizarMetodoPago)
			metodos.PATCH("/:id/activo", ajustesH.CambiarActivoMetodoPago)
		}

		zonas := protected.Group("/zonas", adminMW)
		{
			zonas.POST("", ajustesH.CrearZona)
			zonas.GET("", ajustesH.ListarZonas)
			zonas.GET("/impresoras", ajustesH.Impresoras)
			zonas.PUT("/:id", ajustesH.ActualizarZona)
			zonas.PATCH("/:id/activo", ajustesH.CambiarActivoZona)
		}

		protected.GET("/comercio", ajustesH.ObtenerComercio)
		protected.PUT("/comercio", adminMW, ajustesH.ActualizarComercio)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
