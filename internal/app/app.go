package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/gujarati-xlit/internal/adapter/fairseq"
	"github.com/heartmarshall/gujarati-xlit/internal/config"
	"github.com/heartmarshall/gujarati-xlit/internal/domain"
	"github.com/heartmarshall/gujarati-xlit/internal/provision"
	"github.com/heartmarshall/gujarati-xlit/internal/transport/middleware"
	"github.com/heartmarshall/gujarati-xlit/internal/transport/rest"
	"github.com/heartmarshall/gujarati-xlit/internal/xlit"
)

// Run is the application entry point. It loads configuration, wires the
// engine cache behind the provisioner, and serves HTTP until the
// context is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	prov := provision.New(provision.Config{
		Dir:           cfg.Provision.ModelsDir,
		En2GuModelURL: cfg.Provision.EnToIndicURL,
		Gu2EnModelURL: cfg.Provision.IndicToEnURL,
		En2GuDictsURL: cfg.Provision.EnToIndicDictURL,
		Gu2EnDictsURL: cfg.Provision.IndicToEnDictURL,
		Timeout:       cfg.Provision.DownloadTimeout,
	}, logger)

	cache := xlit.NewEngineCache(BuildEngine(cfg.Engine, prov, logger))
	svc := xlit.NewService(cache, logger)

	preload, _ := config.ParsePreload(cfg.Engine.Preload)
	for _, d := range preload {
		go func() {
			if _, err := cache.Get(ctx, d); err != nil {
				logger.Error("engine preload failed",
					slog.String("direction", d.String()),
					slog.String("error", err.Error()))
				return
			}
			logger.Info("engine preloaded", slog.String("direction", d.String()))
		}()
	}

	xlitHandler := rest.NewXlitHandler(svc, cfg.Engine.DefaultTopK, cfg.Engine.MaxTopK, logger)
	healthHandler := rest.NewHealthHandler(svc, BuildVersion())

	mws := []middleware.Middleware{
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, time.Minute)
		defer limiter.Stop()
		mws = append(mws, limiter.Limit())
	}

	handler := middleware.Chain(mws...)(rest.Routes(xlitHandler, healthHandler))

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// BuildEngine returns the engine construction function used by the
// cache: provision artifacts, bind the decoder and load the word
// probability dictionary. A missing dictionary degrades to rescoring
// disabled; a missing model fails the build.
func BuildEngine(cfg config.EngineConfig, prov *provision.Provisioner, logger *slog.Logger) xlit.BuildFunc {
	return func(ctx context.Context, d domain.Direction) (*xlit.Engine, error) {
		art, err := prov.EnsureModel(ctx, d)
		if err != nil {
			return nil, err
		}

		dec, err := fairseq.New(fairseq.Config{
			BinPath:   cfg.DecoderBin,
			DataBin:   art.DataBin,
			ModelPath: art.ModelPath,
			LangList:  art.LangList,
			LangPair:  d.LangPair(),
			Beam:      cfg.BeamWidth,
			BatchSize: cfg.MaxBatchSize,
		}, logger)
		if err != nil {
			return nil, err
		}

		var store *xlit.WordProbStore
		if cfg.Rescore {
			dictPath, dictErr := prov.EnsureDict(ctx, d)
			if dictErr != nil {
				logger.Warn("word probability dictionary unavailable",
					slog.String("direction", d.String()),
					slog.String("error", dictErr.Error()))
			} else if store, dictErr = xlit.LoadWordProbStore(dictPath); dictErr != nil {
				logger.Warn("word probability dictionary unreadable",
					slog.String("path", dictPath),
					slog.String("error", dictErr.Error()))
				store = nil
			}
		}

		return xlit.NewEngine(xlit.EngineParams{
			Direction: d,
			Decoder:   dec,
			Store:     store,
			Alpha:     cfg.Alpha,
			Rescore:   cfg.Rescore,
		}, logger)
	}
}
