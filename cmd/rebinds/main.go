// Command rebinds inspects and maintains the saved binding overrides without
// starting the interactive menu.
//
//	rebinds show            list the saved overrides
//	rebinds reset           delete the saved overrides
//	rebinds export <file>   write the saved blob to file ("-" for stdout)
//	rebinds import <file>   validate file against the asset and save it
//	rebinds history         list the values the blob held before
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/llehouerou/rebinder/internal/binding"
	"github.com/llehouerou/rebinder/internal/config"
	"github.com/llehouerou/rebinder/internal/errmsg"
	"github.com/llehouerou/rebinder/internal/overrides"
	"github.com/llehouerou/rebinder/internal/setup"
	"github.com/llehouerou/rebinder/internal/state"
)

const usage = "usage: rebinds show|reset|history|export <file>|import <file>"

var errUsage = errors.New(usage)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	logger, err := setup.Logger(cfg, "stderr", "rebinds")
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

	t := &tool{
		store:    setup.Store(cfg, stateMgr, logger.Logger),
		settings: stateMgr,
		asset:    asset,
		out:      out,
	}
	return t.dispatch(args)
}

type tool struct {
	store    *overrides.Store
	settings state.Interface
	asset    *binding.Asset
	out      io.Writer
}

func (t *tool) dispatch(args []string) error {
	switch args[0] {
	case "show":
		return t.show()
	case "reset":
		return t.reset()
	case "history":
		return t.history()
	case "export", "import":
		if len(args) != 2 {
			return errUsage
		}
		if args[0] == "export" {
			return t.export(args[1])
		}
		return t.importFile(args[1])
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func (t *tool) show() error {
	blob, savedAt, err := t.store.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpOverridesLoad, err))
	}
	if blob == "" {
		fmt.Fprintln(t.out, "no saved bindings")
		return nil
	}
	if err := t.asset.LoadOverrides(blob); err != nil {
		return errors.New(errmsg.Format(errmsg.OpOverridesLoad, err))
	}

	lines := overrideLines(t.asset)
	fmt.Fprintf(t.out, "%s saved %s (%s)\n",
		english.Plural(len(lines), "override", "overrides"),
		humanize.Time(savedAt),
		humanize.Bytes(uint64(len(blob))))
	for _, l := range lines {
		fmt.Fprintln(t.out, l)
	}
	return nil
}

// overrideLines lists every overridden slot of a as
// "<action> [<part>] <default> -> <override>".
func overrideLines(a *binding.Asset) []string {
	var lines []string
	for _, act := range a.Actions() {
		for _, s := range act.Slots() {
			p, ok := s.OverridePath()
			if !ok {
				continue
			}
			name := act.QualifiedName()
			if s.PartOfComposite {
				name += "." + s.Name
			}
			if p == "" {
				p = "(unbound)"
			}
			lines = append(lines, fmt.Sprintf("  %-28s %s -> %s", name, s.Path, p))
		}
	}
	return lines
}

func (t *tool) reset() error {
	if err := t.store.Reset(); err != nil {
		return errors.New(errmsg.Format(errmsg.OpOverridesClear, err))
	}
	fmt.Fprintln(t.out, "saved bindings deleted")
	return nil
}

func (t *tool) export(path string) error {
	blob, _, err := t.store.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpExport, err))
	}
	if blob == "" {
		blob = binding.NewAsset("").SaveOverrides()
	}
	if path == "-" {
		_, err = fmt.Fprintln(t.out, blob)
		return err
	}
	if err := os.WriteFile(path, []byte(blob+"\n"), 0o600); err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpExport, path, err))
	}
	fmt.Fprintf(t.out, "exported to %s\n", path)
	return nil
}

func (t *tool) importFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpImport, path, err))
	}
	blob := strings.TrimSpace(string(data))
	if err := t.asset.ValidateOverrides(blob); err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpImport, path, err))
	}
	// Normalize through the asset so the stored blob is in canonical order.
	if err := t.asset.LoadOverrides(blob); err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpImport, path, err))
	}
	if err := t.store.Save(t.asset.SaveOverrides()); err != nil {
		return errors.New(errmsg.Format(errmsg.OpOverridesSave, err))
	}
	fmt.Fprintf(t.out, "imported %s\n", english.Plural(len(overrideLines(t.asset)), "override", "overrides"))
	return nil
}

func (t *tool) history() error {
	entries, err := t.settings.SettingHistory(t.store.Key())
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpHistory, err))
	}
	if len(entries) == 0 {
		fmt.Fprintln(t.out, "no history")
		return nil
	}
	for _, e := range entries {
		if !e.Existed {
			fmt.Fprintf(t.out, "%-16s (none)\n", humanize.Time(e.SavedAt))
			continue
		}
		fmt.Fprintf(t.out, "%-16s %s\n", humanize.Time(e.SavedAt), e.Value)
	}
	return nil
}
