package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/rebinder/internal/app"
	"github.com/llehouerou/rebinder/internal/capture"
	"github.com/llehouerou/rebinder/internal/config"
	"github.com/llehouerou/rebinder/internal/errmsg"
	"github.com/llehouerou/rebinder/internal/notify"
	"github.com/llehouerou/rebinder/internal/rebind"
	"github.com/llehouerou/rebinder/internal/setup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	logger, err := setup.Logger(cfg, "file", "rebinder")
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	defer logger.Close()

	asset, err := setup.Asset(cfg)
	if err != nil {
		return err
	}

	stateMgr, err := setup.State(cfg)
	if err != nil {
		return err
	}
	defer stateMgr.Close()

	store := setup.Store(cfg, stateMgr, logger.Logger)
	// Flushes a pending debounced write.
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("final save failed", "err", err)
			fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpOverridesSave, err))
		}
	}()

	hub := capture.NewHub()
	engine, err := rebind.New(rebind.Options{
		Asset:     asset,
		Source:    hub,
		Clock:     capture.NewTickerClock(cfg.GetRebindConfig().TickRate),
		Persister: store,
		Logger:    logger.Logger,
		Capture:   setup.CaptureConfig(cfg),
	})
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	defer engine.Close()

	if err := engine.Register(setup.Elements(cfg, asset)...); err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	engine.DeviceChanged(app.DeviceKeyboard)

	if err := store.Restore(engine); err != nil {
		// Start from defaults rather than refusing to run.
		logger.Warn("saved bindings ignored", "err", err)
	}

	notifier, err := notify.New()
	if err != nil {
		logger.Info("desktop notifications unavailable", "err", err)
		notifier = nil
	}

	m, err := app.New(app.Deps{
		Engine:   engine,
		Hub:      hub,
		Store:    store,
		Reporter: notify.NewReporter(notifier, cfg.Notifications),
		Logger:   logger.Logger,
	})
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}

	logger.Info("started", "asset", asset.Name(), "elements", len(engine.Elements()))

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
