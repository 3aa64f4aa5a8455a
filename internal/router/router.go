package router

import (
	"time"

	"github.com/AyushManoj111/Engen/internal/config"
	"github.com/AyushManoj111/Engen/internal/handler"
	"github.com/AyushManoj111/Engen/internal/middleware"
	"github.com/AyushManoj111/Engen/internal/model"
	"github.com/AyushManoj111/Engen/internal/repository"
	"github.com/AyushManoj111/Engen/internal/service"
	"github.com/AyushManoj111/Engen/internal/worker"

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
	empresaRepo := repository.NewEmpresaRepository(db)
	funcionarioRepo := repository.NewFuncionarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	senhasRepo := repository.NewRequisicaoSenhasRepository(db)
	saldoRepo := repository.NewRequisicaoSaldoRepository(db)
	fechoRepo := repository.NewFechoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	empresaSvc := service.NewEmpresaService(empresaRepo, funcionarioRepo)
	clienteSvc := service.NewClienteService(clienteRepo, senhasRepo, saldoRepo)
	funcionarioSvc := service.NewFuncionarioService(funcionarioRepo, usuarioRepo)
	requisicaoSvc := service.NewRequisicaoService(senhasRepo, clienteRepo, dispatcher)
	saldoSvc := service.NewSaldoService(saldoRepo, clienteRepo, dispatcher)
	resgateSvc := service.NewResgateService(senhasRepo, saldoRepo)
	fechoSvc := service.NewFechoService(fechoRepo, senhasRepo, saldoRepo)
	extratoSvc := service.NewExtratoService(senhasRepo, saldoRepo, clienteRepo)
	dashboardSvc := service.NewDashboardService(clienteRepo, senhasRepo, saldoRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc, empresaSvc)
	funcionariosH := handler.NewFuncionariosHandler(funcionarioSvc, empresaSvc)
	requisicoesH := handler.NewRequisicoesHandler(requisicaoSvc, empresaSvc)
	saldoH := handler.NewSaldoHandler(saldoSvc, empresaSvc)
	resgateH := handler.NewResgateHandler(resgateSvc, empresaSvc)
	fechoH := handler.NewFechoHandler(fechoSvc, empresaSvc)
	extratoH := handler.NewExtratoHandler(extratoSvc, empresaSvc)
	exportacaoH := handler.NewExportacaoHandler(requisicaoSvc, empresaSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc, empresaSvc)

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
		// Redemption is the funcionario surface; gerentes manage, never redeem.
		v1.POST("/resgate", middleware.RequireRole(model.RolFuncionario), resgateH.Resgatar)

		// Everything below is gerente-only back office.
		gerente := middleware.RequireRole(model.RolGerente)

		clientes := v1.Group("/clientes", gerente)
		{
			clientes.POST("", clientesH.Criar)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.Obter)
			clientes.PUT("/:id", clientesH.Atualizar)
			clientes.DELETE("/:id", clientesH.Excluir)
			clientes.GET("/:id/extrato", extratoH.Gerar)
		}

		funcionarios := v1.Group("/funcionarios", gerente)
		{
			funcionarios.POST("", funcionariosH.Criar)
			funcionarios.GET("", funcionariosH.Listar)
			funcionarios.PUT("/:id", funcionariosH.Atualizar)
			funcionarios.DELETE("/:id", funcionariosH.Desativar)
			funcionarios.POST("/:id/reativar", funcionariosH.Reativar)
		}

		senhas := v1.Group("/requisicoes/senhas", gerente)
		{
			senhas.POST("", requisicoesH.Criar)
			senhas.GET("", requisicoesH.Listar)
			senhas.GET("/:id", requisicoesH.Obter)
			senhas.PUT("/:id", requisicoesH.Editar)
			senhas.DELETE("/:id", requisicoesH.Excluir)
			senhas.GET("/:id/exportar", exportacaoH.ExportarSenhasCSV)
		}

		saldo := v1.Group("/requisicoes/saldo", gerente)
		{
			saldo.POST("", saldoH.Criar)
			saldo.GET("", saldoH.Listar)
			saldo.GET("/:id", saldoH.Obter)
			saldo.PUT("/:id", saldoH.Editar)
			saldo.DELETE("/:id", saldoH.Excluir)
		}

		fecho := v1.Group("/fecho", gerente)
		{
			fecho.POST("", fechoH.Fazer)
			fecho.GET("", fechoH.Listar)
			fecho.GET("/preview", fechoH.Preview)
		}

		v1.GET("/dashboard", gerente, dashboardH.Obter)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
