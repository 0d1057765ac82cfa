// Package game wires the accept loop, the World router, and graceful
// shutdown together, grounded on the teacher's cmd/l1jgo/main.go game
// loop and accept-side wiring, generalized from its ECS tick loop to the
// spec's task-per-connection / single router-actor model and supervised
// with golang.org/x/sync/errgroup rather than a bare WaitGroup.
package game

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/silverkeep/realmd/internal/config"
	"github.com/silverkeep/realmd/internal/persist"
	"github.com/silverkeep/realmd/internal/session"
	"github.com/silverkeep/realmd/internal/world"
)

// Server owns the listener, the World router, and every running task's
// supervision group.
type Server struct {
	cfg      *config.Config
	log      *zap.Logger
	port     persist.Port
	router   *world.Router
	itemDefs map[uint32]*world.ItemDefinition

	nextSessionID uint64
}

func New(cfg *config.Config, log *zap.Logger, port persist.Port, router *world.Router, itemDefs map[uint32]*world.ItemDefinition) *Server {
	return &Server{cfg: cfg, log: log, port: port, router: router, itemDefs: itemDefs}
}

// Run starts the World router and the accept loop, and blocks until ctx
// is cancelled (spec §5: the accept loop and the router are each a task,
// observed by the same shutdown signal).
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.router.Run(gctx)
		return nil
	})

	ln, err := net.Listen("tcp", s.cfg.Network.BindAddress)
	if err != nil {
		return err
	}
	g.Go(func() error {
		<-gctx.Done()
		return ln.Close()
	})

	g.Go(func() error {
		return s.acceptLoop(gctx, ln)
	})

	g.Go(func() error {
		s.weatherLoop(gctx)
		return nil
	})

	return g.Wait()
}

// weatherLoop sends a periodic WeatherTick to the router (SUPPLEMENTED
// FEATURES: "Weather broadcast"), grounded on original_source's world-tick
// weather rolls.
func (s *Server) weatherLoop(ctx context.Context) {
	interval := time.Duration(s.cfg.Rates.WeatherIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.router.Send(world.WeatherTick{})
		}
	}
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	s.log.Info("accept loop listening", zap.String("addr", ln.Addr().String()))
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				s.log.Warn("accept error", zap.Error(err))
				continue
			}
		}
		s.nextSessionID++
		id := s.nextSessionID
		go s.handleConn(ctx, conn, id)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn, id uint64) {
	sess := session.NewSession(conn, id, 256, s.cfg.Network.OutQueueSize, s.log)
	sess.Start()

	handler := newConnHandler(sess, s.router, s.port, &s.cfg.Accounts, s.itemDefs, s.log)
	handler.run(ctx)
}
