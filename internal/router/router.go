package router

import (
	"time"

	"bymen/internal/config"
	"bymen/internal/handler"
	"bymen/internal/middleware"
	"bymen/internal/repository"
	"bymen/internal/service"
	"bymen/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
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

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	medicaoRepo := repository.NewMedicaoRepository(db)
	estoqueRepo := repository.NewEstoqueRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	produtoSvc := service.NewProdutoService(produtoRepo, rdb)
	clienteSvc := service.NewClienteService(clienteRepo)
	medicaoSvc := service.NewMedicaoService(medicaoRepo, produtoRepo, clienteRepo, estoqueRepo, dispatcher)
	estoqueSvc := service.NewEstoqueService(estoqueRepo, produtoRepo, clienteRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	medicoesH := handler.NewMedicoesHandler(medicaoSvc)
	estoqueH := handler.NewEstoqueHandler(estoqueSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/produtos", produtosH.Listar)
		v1.GET("/produtos/:id", produtosH.Obter)

		v1.GET("/clientes", clientesH.Listar)
		v1.POST("/clientes", clientesH.Salvar)
		v1.GET("/clientes/:id", clientesH.Obter)
		v1.DELETE("/clientes/:id", clientesH.Excluir)

		v1.POST("/medicoes/montar", medicoesH.Montar)
		v1.POST("/medicoes", medicoesH.Finalizar)
		v1.GET("/medicoes", medicoesH.Listar)
		v1.GET("/medicoes/relatorio", medicoesH.Relatorio)
		v1.GET("/medicoes/:id", medicoesH.Obter)
		v1.GET("/medicoes/:id/pdf", medicoesH.BaixarPdf)

		v1.GET("/estoque", estoqueH.Global)
		v1.GET("/estoque/movimentos", estoqueH.Movimentos)
		v1.POST("/estoque/entrada", estoqueH.Entrada)
		v1.POST("/estoque/saida", estoqueH.Saida)
		v1.GET("/estoque/clientes/:cliente_id", estoqueH.Cliente)
		v1.POST("/estoque/enviar", estoqueH.Enviar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
