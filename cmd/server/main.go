// runeguard-server serves one independent game per SSH connection. Build:
//
//	go build -o runeguard-server ./cmd/server
//
// Usage:
//
//	./runeguard-server [-config runeguard.yaml] [-port 2222] [-key server_host_key]
//
// Connect:
//
//	ssh -t -p 2222 localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	gossh "github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	"go.uber.org/zap"
	xssh "golang.org/x/crypto/ssh"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"runeguard/internal/config"
	"runeguard/internal/game"
	"runeguard/internal/logging"
	internalssh "runeguard/internal/ssh"
)

func main() {
	cfgPath := flag.String("config", "", "config file (defaults apply when absent)")
	port := flag.Int("port", 0, "SSH port, overrides server.port")
	keyFile := flag.String("key", "", "PEM host key path, overrides server.host_key (generated if absent)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *cfgPath, *port, *keyFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath string, port int, keyFile string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Server.Port = port
	}
	if keyFile != "" {
		cfg.Server.HostKey = keyFile
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	signer, err := loadOrCreateHostKey(cfg.Server.HostKey, logger)
	if err != nil {
		return err
	}

	s := newServer(cfg, logger)
	srv := &gossh.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.handleSession,
		ConnCallback: s.admit,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No authentication: every connection is an anonymous single-player game.
		HostSigners: []gossh.Signer{signer},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("ssh server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, gossh.ErrServerClosed) {
			return fmt.Errorf("ssh server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			// Games in progress hold their connections open; cut them.
			return srv.Close()
		}
		return nil
	})
	return g.Wait()
}

// server holds the per-process state shared by all SSH sessions.
type server struct {
	cfg     *config.Config
	log     *zap.Logger
	limits  *connLimiter
	seats   *semaphore.Weighted
	newGame func(s gossh.Session, log *zap.Logger) error
}

func newServer(cfg *config.Config, logger *zap.Logger) *server {
	s := &server{
		cfg:    cfg,
		log:    logger,
		limits: newConnLimiter(rate.Limit(cfg.Server.ConnRate), cfg.Server.ConnBurst),
		seats:  semaphore.NewWeighted(int64(cfg.Server.MaxSessions)),
	}
	s.newGame = s.playGame
	return s
}

// admit rejects connections from hosts that connect too often.
func (s *server) admit(_ gossh.Context, conn net.Conn) net.Conn {
	host, _, err := net.SplitHostPort(conn.RemoteAddr().String())
	if err != nil {
		host = conn.RemoteAddr().String()
	}
	if !s.limits.Allow(host) {
		s.log.Warn("connection rate limited", zap.String("remote", host))
		_ = conn.Close()
		return nil
	}
	return conn
}

// handleSession is the gliderlabs SSH handler for one connection. It blocks
// for the duration of the game so the SSH session stays open.
func (s *server) handleSession(sess gossh.Session) {
	log := s.log.With(
		zap.String("session", uuid.NewString()),
		zap.String("user", sess.User()),
		zap.Stringer("remote", sess.RemoteAddr()))

	if !s.seats.TryAcquire(1) {
		fmt.Fprintln(sess, "The server is full. Try again in a little while.")
		log.Warn("session refused, server full")
		return
	}
	defer s.seats.Release(1)

	log.Info("session started")
	start := time.Now()
	if err := s.newGame(sess, log); err != nil {
		log.Warn("session ended with error", zap.Error(err))
		return
	}
	log.Info("session ended", zap.Duration("duration", time.Since(start)))
}

// playGame runs a game on the session's terminal.
func (s *server) playGame(sess gossh.Session, log *zap.Logger) error {
	screen, err := internalssh.NewScreen(sess)
	if errors.Is(err, internalssh.ErrNoPTY) {
		fmt.Fprintf(sess, "This game needs a PTY. Connect with: ssh -t -p %d <host>\n", s.cfg.Server.Port)
		return err
	}
	if err != nil {
		fmt.Fprintf(sess, "Terminal setup failed: %v\n", err)
		return err
	}
	defer screen.Fini()

	g := game.New(screen, s.cfg, log, game.Options{Name: internalssh.SanitizeName(sess.User())})
	return g.Run(sess.Context())
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, log *zap.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Info("loaded host key", zap.String("path", path))
			return signer, nil
		}
	}

	log.Info("generating ed25519 host key", zap.String("path", path))
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persisting is best effort; the key still works for this run.
	pemBlock, err := xssh.MarshalPrivateKey(key, "runeguard server")
	if err == nil {
		err = os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600)
	}
	if err != nil {
		log.Warn("host key not saved", zap.String("path", path), zap.Error(err))
	}
	return signer, nil
}
