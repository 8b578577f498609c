// Package setup turns the loaded configuration into the collaborators shared
// by the rebinding menu and the maintenance tool.
package setup

import (
	"log/slog"

	"github.com/llehouerou/rebinder/internal/binding"
	"github.com/llehouerou/rebinder/internal/capture"
	"github.com/llehouerou/rebinder/internal/config"
	"github.com/llehouerou/rebinder/internal/errmsg"
	"github.com/llehouerou/rebinder/internal/logging"
	"github.com/llehouerou/rebinder/internal/overrides"
	"github.com/llehouerou/rebinder/internal/rebind"
	"github.com/llehouerou/rebinder/internal/state"
)

// Asset loads the configured action asset, or the built-in one.
func Asset(cfg *config.Config) (*binding.Asset, error) {
	if !cfg.HasAsset() {
		return binding.DefaultAsset(), nil
	}
	asset, err := binding.LoadAssetFile(cfg.Asset)
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpAssetLoad, err)
	}
	return asset, nil
}

// State opens the configured state database.
func State(cfg *config.Config) (*state.Manager, error) {
	var (
		mgr *state.Manager
		err error
	)
	if db := cfg.GetPersistConfig().DB; db != "" {
		mgr, err = state.OpenPath(db)
	} else {
		mgr, err = state.Open()
	}
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpStateOpen, err)
	}
	return mgr, nil
}

// Store wraps st in an override store using the persist settings.
func Store(cfg *config.Config, st overrides.BlobStore, logger *slog.Logger) *overrides.Store {
	p := cfg.GetPersistConfig()
	return overrides.New(st, overrides.Options{
		Key:      p.Key,
		Debounce: *p.Debounce,
		Logger:   logger,
	})
}

// Logger builds the logger. output is "file", "stderr" or "discard".
func Logger(cfg *config.Config, output, component string) (*logging.Logger, error) {
	lc := cfg.GetLogConfig()
	return logging.New(logging.Config{
		Level:     logging.ParseLevel(lc.Level),
		Format:    logging.ParseFormat(lc.Format),
		Output:    output,
		FilePath:  lc.File,
		Component: component,
	})
}

// Layouts returns the device layout normalization.
func Layouts(cfg *config.Config) capture.Layouts {
	l := cfg.GetLayoutsConfig()
	return capture.Layouts{Secondary: l.Secondary, Gamepad: l.Gamepad, Known: l.Known}
}

// CaptureConfig returns the capture settings of every rebind session.
func CaptureConfig(cfg *config.Config) rebind.CaptureConfig {
	rc := cfg.GetRebindConfig()
	return rebind.CaptureConfig{
		Timeout:          rc.Timeout,
		MatchDeviceClass: *rc.MatchDeviceClass,
		CancelPaths:      rc.CancelPaths,
		ExcludePaths:     rc.ExcludePaths,
		Layouts:          Layouts(cfg),
	}
}

// Elements generates the menu elements of asset with the configured
// device restrictions.
func Elements(cfg *config.Config, asset *binding.Asset) []rebind.Element {
	rc := cfg.GetRebindConfig()
	elements := rebind.GenerateElements(asset)
	for i := range elements {
		elements[i].ExcludeMouse = rc.ExcludeMouse
		elements[i].ControllerExpected = rc.ControllerExpected
	}
	return elements
}
