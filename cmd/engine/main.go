package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/kv"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/logger"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/restriction"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/server/rest"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/server/rest/service"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/snap"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	_ "net/http/pprof"
)

var (
	listenAddr       = flag.String("listenaddr", ":5000", "server listen address")
	graphFile        = flag.String("graph", "navigatorx.graph", "road network graph hasil preprocessing")
	restrictionsFile = flag.String("restrictions", "navigatorx.nxrs", "restriction snapshot hasil preprocessing")
	kvDir            = flag.String("kvdir", "", "kalau di set, restriction di load dari kv di direktori ini")
	kvBackend        = flag.String("kvbackend", kv.BackendBadger, "kv backend: badger | pebble")
	accessLog        = flag.Bool("accesslog", true, "log setiap http request")
)

func main() {
	flag.Parse()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	viper.SetDefault("MAX_SETTLED_NODES", 200000)
	viper.SetDefault("ISOCHRONE_WORKERS", runtime.NumCPU())
	viper.AutomaticEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, err := datastructure.LoadGraph(*graphFile)
	if err != nil {
		log.Fatal("load graph", zap.String("path", *graphFile), zap.Error(err))
	}
	log.Info("road network graph loaded", zap.Int("nodes", g.GetNumNodes()), zap.Int("roads", g.GetRoadCount()))

	store, err := loadRestrictions(ctx, log)
	if err != nil {
		log.Fatal("load restrictions", zap.Error(err))
	}
	if store.EdgeCount() < g.GetRoadCount() {
		log.Warn("restriction store smaller than road count, missing roads are unrestricted",
			zap.Int("restrictions", store.EdgeCount()),
			zap.Int("roads", g.GetRoadCount()))
	}

	snapper := snap.NewRoadSnapper(g, log)
	snapper.BuildRoadSnapper()

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)

	navigatorSvc := service.NewNavigationService(g, snapper, routingalgorithm.NewRouteAlgorithm(g), store, m,
		service.Config{
			MaxSettledNodes:  viper.GetInt("MAX_SETTLED_NODES"),
			IsochroneWorkers: viper.GetInt("ISOCHRONE_WORKERS"),
		}, log)

	srv := &http.Server{
		Addr:              *listenAddr,
		Handler:           rest.NewRouter(navigatorSvc, reg, m, log, *accessLog),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Sugar().Infof("server started at %s", *listenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
}

func loadRestrictions(ctx context.Context, log *zap.Logger) (*restriction.Store, error) {
	if *kvDir == "" {
		log.Sugar().Infof("loading restriction snapshot %s...", *restrictionsFile)
		return restriction.LoadFile(*restrictionsFile)
	}

	backend, err := kv.OpenBackend(*kvBackend, *kvDir)
	if err != nil {
		return nil, err
	}
	// store sudah di memory semua, backend tidak dipakai lagi
	defer backend.Close()

	return kv.NewRestrictionKV(backend, log).LoadStore(ctx)
}
