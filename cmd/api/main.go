package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	_ "github.com/jhoicas/invorya-admin/docs"
	"github.com/jhoicas/invorya-admin/internal/application/auth"
	"github.com/jhoicas/invorya-admin/internal/application/catalog"
	"github.com/jhoicas/invorya-admin/internal/application/editor"
	"github.com/jhoicas/invorya-admin/internal/application/ports"
	"github.com/jhoicas/invorya-admin/internal/domain/submission"
	"github.com/jhoicas/invorya-admin/internal/infrastructure/cache"
	"github.com/jhoicas/invorya-admin/internal/infrastructure/memory"
	"github.com/jhoicas/invorya-admin/internal/infrastructure/metrics"
	"github.com/jhoicas/invorya-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/invorya-admin/internal/infrastructure/upstream"
	httpRouter "github.com/jhoicas/invorya-admin/internal/interfaces/http"
	"github.com/jhoicas/invorya-admin/pkg/config"
	"github.com/jhoicas/invorya-admin/pkg/logger"
	"github.com/jhoicas/invorya-admin/pkg/money"
)

const swaggerFile = "./docs/swagger.json"

// backend colaboradores de autenticación, catálogo y persistencia según BACKEND.
type backend struct {
	authn     ports.Authenticator
	catalog   ports.CatalogSource
	documents ports.DocumentGateway
	close     func()
}

// @title                       Invorya Admin API
// @version                     1.0
// @description                 Editor de facturas, compras y cotizaciones con cálculo de totales en el servidor.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend).
		Msg("iniciando aplicación")

	currencies, err := money.NewRegistry(cfg.Currency.Default, cfg.Currency.Supported, cfg.Currency.Locale)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de monedas")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New("invorya_admin", reg)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	be, err := newBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar backend")
	}
	defer be.close()

	// Caché de catálogo en Redis (opcional).
	catalogSource, documents := be.catalog, be.documents
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("REDIS_URL inválida")
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis no responde; la caché se degradará a la fuente")
		}
		catalogCache := cache.NewCatalogCache(be.catalog, rdb, cfg.Redis.CatalogCacheTTL, m, log)
		catalogSource = catalogCache
		documents = cache.NewInvalidatingGateway(be.documents, catalogCache)
	}

	sessions := memory.NewSessionStore()
	drafts := memory.NewDraftStore()
	editorUC := editor.NewEditorUseCase(drafts, catalogSource, documents, currencies, m, log)
	catalogUC := catalog.NewCatalogUseCase(catalogSource, currencies)
	authUC := auth.NewAuthUseCase(be.authn, sessions, editorUC, currencies, auth.Config{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
		TTL:    cfg.Session.TTL,
	}, log)

	go editorUC.RunSweeper(ctx, time.Minute, cfg.Session.DraftTTL)
	go sweepSessions(ctx, sessions, editorUC, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Upstream.Timeout + time.Second*5,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Invorya Admin API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "backend": cfg.Backend})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		CatalogUC: catalogUC,
		EditorUC:  editorUC,
		Log:       log,
		Metrics:   m,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func newBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.Backend == config.BackendPostgres {
		if cfg.DB.Migrate {
			if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
				return nil, err
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		docs := postgres.NewDocumentRepository(pool)
		return &backend{
			authn:     auth.NewPasswordAuthenticator(postgres.NewUserRepository(pool)),
			catalog:   postgres.NewCatalogSource(postgres.NewProductRepository(pool), postgres.NewPartyRepository(pool)),
			documents: postgres.NewDocumentGateway(docs, postgres.NewTxRunner(pool)),
			close:     pool.Close,
		}, nil
	}

	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log)
	return &backend{
		authn:     upstream.NewAuthenticator(client),
		catalog:   upstream.NewCatalogSource(client),
		documents: upstream.NewDocumentGateway(client, submission.PayloadOptions{IncludeTotals: cfg.Upstream.SendTotals}),
		close:     func() {},
	}, nil
}

// sweepSessions elimina sesiones vencidas y sus borradores.
func sweepSessions(ctx context.Context, sessions *memory.SessionStore, drafts *editor.EditorUseCase, log *logger.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			for _, id := range sessions.DeleteExpired(now) {
				drafts.DiscardSession(id)
				log.Debug().Str("session_id", id).Msg("sesión vencida")
			}
		}
	}
}
