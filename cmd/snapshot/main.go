// Command snapshot is a small composition root: it builds a registry and a
// pair of component stores from a config file, saves them through the
// archive facility and loads them back with identity remapping.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sparsekit/sparsekit/internal/core/archive"
	"github.com/sparsekit/sparsekit/internal/core/config"
	"github.com/sparsekit/sparsekit/internal/core/ecs"
	"github.com/sparsekit/sparsekit/internal/core/observability/log"
)

type transform struct {
	X, Y, Z float64
}

func (tr *transform) Serialize(a *archive.Archive, _ *ecs.Serializer) {
	if a.IsReadMode() {
		tr.X = a.ReadFloat64()
		tr.Y = a.ReadFloat64()
		tr.Z = a.ReadFloat64()
		return
	}
	a.WriteFloat64(tr.X)
	a.WriteFloat64(tr.Y)
	a.WriteFloat64(tr.Z)
}

type label struct {
	Name   string
	Parent ecs.Entity
}

func (lb *label) Serialize(a *archive.Archive, ser *ecs.Serializer) {
	if a.IsReadMode() {
		lb.Name = a.ReadString()
	} else {
		a.WriteString(lb.Name)
	}
	ecs.SerializeEntity(a, &lb.Parent, ser)
}

func main() {
	configPath := flag.String("config", "", "path to a yaml/json config file")
	outPath := flag.String("out", "world.skar", "snapshot output path")
	count := flag.Int("count", 100, "number of demo entities")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.FromFile(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to load config:", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	logger := log.New(parseLevel(cfg.LogLevel))

	registry := ecs.NewRegistry()
	transforms := ecs.NewStoreWithCapacity[transform](registry, cfg.ReservedCount)
	labels := ecs.NewStoreWithCapacity[label](registry, cfg.ReservedCount)

	var root ecs.Entity
	for i := 0; i < *count; i++ {
		e := registry.CreateEntity()
		if i == 0 {
			root = e
		}
		tr := transforms.Create(e)
		tr.X, tr.Y, tr.Z = float64(i), float64(i)*2, float64(i)*3
		lb := labels.Create(e)
		lb.Name = fmt.Sprintf("entity-%d", i)
		lb.Parent = root
	}
	logger.Info("world populated",
		log.Uint32("entities", registry.EntityCount()),
		log.Int("transforms", transforms.Count()),
		log.Int("labels", labels.Count()),
	)

	w := archive.NewWriter()
	saveSer := ecs.NewSerializer(registry)
	ecs.Serialize[transform, *transform](transforms, w, saveSer)
	ecs.Serialize[label, *label](labels, w, saveSer)
	saveSer.Close()

	hdr, err := archive.Save(*outPath, w)
	if err != nil {
		logger.Fatal("snapshot save failed", log.Error(err))
	}
	w.Release()

	rd, _, err := archive.Open(*outPath)
	if err != nil {
		logger.Fatal("snapshot open failed", log.Error(err))
	}

	loadedRegistry := ecs.NewRegistry()
	loadedTransforms := ecs.NewStoreWithCapacity[transform](loadedRegistry, cfg.ReservedCount)
	loadedLabels := ecs.NewStoreWithCapacity[label](loadedRegistry, cfg.ReservedCount)

	loadSer := ecs.NewSerializer(loadedRegistry)
	ecs.Serialize[transform, *transform](loadedTransforms, rd, loadSer)
	ecs.Serialize[label, *label](loadedLabels, rd, loadSer)
	loadSer.Close()

	logger.Info("snapshot reloaded",
		log.String("snapshot_id", hdr.SnapshotID.String()),
		log.Uint32("entities", loadedRegistry.EntityCount()),
		log.Int("transforms", loadedTransforms.Count()),
		log.Int("labels", loadedLabels.Count()),
	)
}

func parseLevel(s string) log.Level {
	switch s {
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
