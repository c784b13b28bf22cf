package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/almacen-web/internal/application/usecase"
	infracache "github.com/jhoicas/almacen-web/internal/infrastructure/cache"
	"github.com/jhoicas/almacen-web/internal/infrastructure/supabase"
	webhttp "github.com/jhoicas/almacen-web/internal/interfaces/http"
	"github.com/jhoicas/almacen-web/pkg/config"
	"github.com/jhoicas/almacen-web/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	client := supabase.New(supabase.Config{
		URL: cfg.Supabase.URL,
		Key: cfg.Supabase.Key,
	})
	productRepo := supabase.NewProductRepository(client)
	purchaseRepo := supabase.NewPurchaseRepository(client)

	// Cache del catálogo: solo si Redis está configurado
	var catalogCache usecase.CatalogCache
	if cfg.Redis.Enabled() {
		c := infracache.New(cfg.Redis.Addr, cfg.Redis.TTL)
		defer c.Close()
		catalogCache = c
		log.Info().Str("addr", cfg.Redis.Addr).Msg("cache de catálogo habilitado")
	}

	productUC := usecase.NewProductUseCase(productRepo, catalogCache)
	purchaseUC := usecase.NewPurchaseUseCase(purchaseRepo, productRepo, catalogCache, log)

	app := webhttp.NewApp(webhttp.RouterDeps{
		AppName:    cfg.App.Name,
		ProductUC:  productUC,
		PurchaseUC: purchaseUC,
		Log:        log,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
