package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"

	"github.com/tomz197/colorcatch/internal/audio"
	"github.com/tomz197/colorcatch/internal/config"
	"github.com/tomz197/colorcatch/internal/draw"
	"github.com/tomz197/colorcatch/internal/input"
	"github.com/tomz197/colorcatch/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "colorcatch-ssh",
	})

	settings, err := config.Load(config.GetEnv("COLORCATCH_CONFIG", config.DefaultPath))
	if err != nil {
		logger.Fatal("Failed to load settings", "err", err)
	}
	if level, err := log.ParseLevel(settings.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	hub := loop.NewHub()
	games := &gameHandler{settings: settings, hub: hub, logger: logger}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("Failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("Server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...", "sessions", hub.Count())

	// Show every player the shutdown notice and wait for their sessions to end
	hub.Shutdown(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error", "err", err)
	}
}

// gameHandler runs one independent game per SSH session.
type gameHandler struct {
	settings config.Settings
	hub      *loop.Hub
	logger   *log.Logger
}

func (h *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := h.logger.With("session", uuid.NewString(), "user", sess.User())
		logger.Info("New game session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		if err := h.play(sess, pty, winCh, logger); err != nil {
			logger.Error("Game error", "err", err)
		}

		logger.Info("Session ended")
		next(sess)
	}
}

// play runs the game until the player quits, idles out, disconnects or the server stops.
func (h *gameHandler) play(sess ssh.Session, pty ssh.Pty, winCh <-chan ssh.Window, logger *log.Logger) error {
	sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
	go func() {
		for win := range winCh {
			sizeTracker.update(win.Width, win.Height)
		}
	}()

	// No audio device is reachable over SSH; the terminal bell stands in for cues.
	game, err := loop.NewGame(h.settings,
		loop.WithPlayer(audio.Bell{W: sess}),
		loop.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	draw.HideCursor(sess)
	draw.EnableMouse(sess)
	draw.ClearScreen(sess)
	defer func() {
		draw.DisableMouse(sess)
		draw.ClearScreen(sess)
		draw.ShowCursor(sess)
	}()

	runner := loop.NewRunner(game, loop.Terminal{
		Input:   input.StartStream(bufio.NewReader(sess)),
		Size:    sizeTracker.getSize,
		Display: draw.NewANSI(sess),
	},
		loop.WithHub(h.hub),
		loop.WithIdleTimeout(h.settings.IdleTimeout),
		loop.WithRunnerLogger(logger),
	)

	err = runner.Run(sess.Context())
	logger.Info("Final score", "score", game.Score())
	return err
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
