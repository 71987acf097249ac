package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/tomz197/colorcatch/internal/audio"
	"github.com/tomz197/colorcatch/internal/audio/synth"
	"github.com/tomz197/colorcatch/internal/config"
	"github.com/tomz197/colorcatch/internal/draw"
	"github.com/tomz197/colorcatch/internal/input"
	"github.com/tomz197/colorcatch/internal/loop"
)

func main() {
	settings, err := config.Load(config.GetEnv("COLORCATCH_CONFIG", config.DefaultPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load settings: %v\n", err)
		os.Exit(1)
	}

	logger, logFile := setupLogging(settings)
	if logFile != nil {
		defer logFile.Close()
	}

	player := setupAudio(settings, logger)
	if sm, ok := player.(*synth.SoundManager); ok {
		defer sm.Cleanup()
	}

	game, err := loop.NewGame(settings, loop.WithPlayer(player), loop.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create game: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch settings.Renderer {
	case config.RendererANSI:
		err = runANSI(ctx, game, logger)
	default:
		err = runTcell(ctx, game, logger)
	}
	if err != nil {
		logger.Error("Game ended with error", "err", err)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("Game exited", "score", game.Score())
}

// setupAudio returns the beep sound manager, or silence when audio is off
// or no device can be opened.
func setupAudio(settings config.Settings, logger *log.Logger) audio.Player {
	if !settings.Audio {
		return audio.Nop{}
	}
	sm := synth.NewSoundManager(logger)
	if err := sm.Initialize(); err != nil {
		logger.Warn("Audio unavailable, continuing without sound", "err", err)
		return audio.Nop{}
	}
	return sm
}

// runTcell plays on a tcell screen.
func runTcell(ctx context.Context, game *loop.Game, logger *log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	screen.HideCursor()
	screen.EnableMouse(tcell.MouseMotionEvents)

	display := draw.NewTcell(screen)
	runner := loop.NewRunner(game, loop.Terminal{
		Input:   input.StartEvents(screen),
		Size:    display.Size,
		Display: display,
	}, loop.WithRunnerLogger(logger))

	logger.Info("Starting game", "renderer", config.RendererTcell)
	return runner.Run(ctx)
}

// runANSI plays on the raw terminal with plain escape sequences.
func runANSI(ctx context.Context, game *loop.Game, logger *log.Logger) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	w := os.Stdout
	draw.HideCursor(w)
	draw.EnableMouse(w)
	draw.ClearScreen(w)
	defer func() {
		draw.DisableMouse(w)
		draw.ClearScreen(w)
		draw.ShowCursor(w)
	}()

	runner := loop.NewRunner(game, loop.Terminal{
		Input:   input.StartStream(bufio.NewReader(os.Stdin)),
		Size:    draw.DefaultTermSizeFunc,
		Display: draw.NewANSI(w),
	}, loop.WithRunnerLogger(logger))

	logger.Info("Starting game", "renderer", config.RendererANSI)
	return runner.Run(ctx)
}
