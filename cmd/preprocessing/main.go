package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/lintang-b-s/navigatorx-hgv/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/kv"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/logger"
	"github.com/lintang-b-s/navigatorx-hgv/pkg/osmparser"
	"go.uber.org/zap"
)

var (
	mapFile          = flag.String("f", "solo_jogja.osm.pbf", "openstreeetmap file buat road network graphnya")
	graphFile        = flag.String("graph", "navigatorx.graph", "output road network graph")
	restrictionsFile = flag.String("restrictions", "navigatorx.nxrs", "output restriction snapshot")
	kvDir            = flag.String("kvdir", "", "kalau di set, restriction juga disimpan ke kv di direktori ini")
	kvBackend        = flag.String("kvbackend", kv.BackendBadger, "kv backend: badger | pebble")
	sccEncoder       = flag.String("scc", "hgv", "flag encoder buat filter scc terbesar, kosong = tanpa filter")
	cpuprofile       = flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile       = flag.String("memprofile", "", "write memory profile to this file")
)

func main() {
	flag.Parse()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if *cpuprofile != "" {
		// https://go.dev/blog/pprof
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("create cpu profile", zap.Error(err))
		}
		defer f.Close()

		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Sugar().Infof("reading osm file %s", *mapFile)
	res, err := osmparser.NewOSMParser(log).Parse(ctx, *mapFile)
	if err != nil {
		log.Fatal("parse openstreetmap", zap.Error(err))
	}
	recordMemProfile(log, memprofile, "parsing_osm_data")

	if *sccEncoder != "" {
		enc, ok := parseEncoder(*sccEncoder)
		if !ok {
			log.Fatal("unknown flag encoder", zap.String("scc", *sccEncoder))
		}
		res, err = osmparser.KeepLargestComponent(res, enc, log)
		if err != nil {
			log.Fatal("filter strongly connected component", zap.Error(err))
		}
	}

	g := datastructure.NewGraph()
	if err := g.InitGraph(res.Nodes, res.Roads); err != nil {
		log.Fatal("init graph", zap.Error(err))
	}

	log.Sugar().Infof("saving road network graph to %s...", *graphFile)
	if err := g.SaveToFile(*graphFile); err != nil {
		log.Fatal("save graph", zap.Error(err))
	}

	log.Sugar().Infof("saving restriction snapshot to %s...", *restrictionsFile)
	if err := res.Restrictions.SaveFile(*restrictionsFile); err != nil {
		log.Fatal("save restriction snapshot", zap.Error(err))
	}

	if *kvDir != "" {
		backend, err := kv.OpenBackend(*kvBackend, *kvDir)
		if err != nil {
			log.Fatal("open kv backend", zap.Error(err))
		}
		defer backend.Close()

		if err := kv.NewRestrictionKV(backend, log).SaveStore(ctx, res.Restrictions); err != nil {
			log.Fatal("save restriction kv", zap.Error(err))
		}
	}

	recordMemProfile(log, memprofile, "finish_preprocessing")
	log.Info("preprocessing done",
		zap.Int("nodes", g.GetNumNodes()),
		zap.Int("roads", g.GetRoadCount()))
}

func parseEncoder(name string) (datastructure.FlagEncoder, bool) {
	for _, enc := range datastructure.FlagEncoders() {
		if enc.String() == name {
			return enc, true
		}
	}
	return 0, false
}

func recordMemProfile(log *zap.Logger, memprofile *string, name string) {
	if *memprofile != "" {
		path := strings.Replace(*memprofile, ".mprof", fmt.Sprintf("%s.mprof", name), -1)
		f, err := os.Create(path)
		if err != nil {
			log.Fatal("create memory profile", zap.Error(err))
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
