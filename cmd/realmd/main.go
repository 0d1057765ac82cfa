// Command realmd boots the authoritative world server: load config, open
// the persistence port, load static content, start the World router, the
// accept loop, and one task per spawned monster, then block until a
// shutdown signal arrives. Grounded on the teacher's cmd/l1jgo/main.go
// run()/newLogger() shape, trimmed to the subsystems SPEC_FULL.md names.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/silverkeep/realmd/internal/config"
	"github.com/silverkeep/realmd/internal/content"
	"github.com/silverkeep/realmd/internal/game"
	"github.com/silverkeep/realmd/internal/monsterai"
	"github.com/silverkeep/realmd/internal/persist"
	"github.com/silverkeep/realmd/internal/scripting"
	"github.com/silverkeep/realmd/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := "config/server.toml"
	if p := os.Getenv("REALMD_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("starting realmd", zap.String("server", cfg.Server.Name), zap.Int("id", cfg.Server.ID))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := persist.NewDB(ctx, cfg.Database, log)
	cancel()
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	migCtx, migCancel := context.WithTimeout(context.Background(), 60*time.Second)
	err = persist.RunMigrations(migCtx, db.Pool)
	migCancel()
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	log.Info("database ready")

	port := persist.NewPostgres(db)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	seed, err := port.AllocateNewObjectID(seedCtx)
	seedCancel()
	if err != nil {
		return fmt.Errorf("seed object id allocator: %w", err)
	}
	ids := world.NewIDAllocator(seed)

	catalog, err := content.Load(cfg.Server.ContentDir)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	log.Info("content loaded",
		zap.Int("maps", len(catalog.Maps)),
		zap.Int("monster_defs", len(catalog.Monsters)),
		zap.Int("item_defs", len(catalog.Items)),
		zap.Int("spawns", len(catalog.Spawns)),
	)

	maps := make(map[uint16]*world.Map, len(catalog.Maps))
	for id, def := range catalog.Maps {
		maps[id] = world.NewMap(def.MapDefinition())
	}

	itemDefs := make(map[uint32]*world.ItemDefinition, len(catalog.Items))
	for id, def := range catalog.Items {
		d := def.ItemDefinition()
		itemDefs[id] = &d
	}

	engine, err := scripting.NewEngine(cfg.Server.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("scripting engine: %w", err)
	}
	defer engine.Close()

	router := world.NewRouter(log, ids, maps).WithScripting(engine)
	srv := game.New(cfg, log, port, router, itemDefs)

	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()

	monsterCount := spawnMonsters(ctx, router, ids, catalog, log)
	log.Info("monsters spawned", zap.Int("count", monsterCount))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx) }()

	select {
	case sig := <-shutdownCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			log.Error("server stopped with error", zap.Error(err))
			return err
		}
	}
	log.Info("realmd stopped")
	return nil
}

// spawnMonsters launches one monsterai.Task per monster instance named in
// the loaded spawn list, each running on its own goroutine for the
// lifetime of ctx.
func spawnMonsters(ctx context.Context, router *world.Router, ids *world.IDAllocator, catalog *content.Catalog, log *zap.Logger) int {
	total := 0
	for _, spawn := range catalog.Spawns {
		def, ok := catalog.Monsters[spawn.MonsterDefID]
		if !ok {
			log.Warn("spawn references unknown monster def", zap.Uint32("def_id", spawn.MonsterDefID))
			continue
		}
		monsterDef := def.MonsterDefinition()
		for i := 0; i < spawn.Count; i++ {
			loc := world.Location{
				X:   uint16(int32(spawn.X) + int32(rand.Intn(5)-2)),
				Y:   uint16(int32(spawn.Y) + int32(rand.Intn(5)-2)),
				Map: spawn.MapID,
			}
			m := world.NewMonster(ids.Next(), loc, &monsterDef, 256)
			wander := time.Duration(monsterDef.WanderInterval) * time.Millisecond
			if wander <= 0 {
				wander = 1500 * time.Millisecond
			}
			task := monsterai.NewTask(m, router, log, wander, monsterDef.AggroRange)
			go task.Run(ctx)
			total++
		}
	}
	return total
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
