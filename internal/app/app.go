package app

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/rebinder/internal/capture"
	"github.com/llehouerou/rebinder/internal/keymap"
	"github.com/llehouerou/rebinder/internal/notify"
	"github.com/llehouerou/rebinder/internal/overrides"
	"github.com/llehouerou/rebinder/internal/rebind"
	"github.com/llehouerou/rebinder/internal/ui/menu"
)

// Deps are the collaborators of the menu. Engine and Hub are required.
type Deps struct {
	Engine   *rebind.Engine
	Hub      *capture.Hub
	Store    *overrides.Store
	Reporter *notify.Reporter
	// Devices are the simulated devices; defaults to DefaultDevices.
	Devices []string
	Logger  *slog.Logger
}

// Model is the root application model.
type Model struct {
	engine     *rebind.Engine
	hub        *capture.Hub
	store      *overrides.Store
	reporter   *notify.Reporter
	dispatcher *keymap.Dispatcher
	keys       *keymap.Resolver
	logger     *slog.Logger
	sub        *rebind.Subscription

	Menu      menu.Model
	Filter    textinput.Model
	Filtering bool
	Help      help.Model
	ShowHelp  bool

	Devices []string
	Device  int

	labels    map[string]string // element id -> label
	Rebinding string            // element id with a live session

	LastInput    string
	LastDispatch string
	Status       string
	StatusErr    bool

	Width  int
	Height int
}

// New builds the menu from the engine's registered elements.
func New(deps Deps) (Model, error) {
	if deps.Engine == nil || deps.Hub == nil {
		return Model{}, errors.New("app: engine and input hub are required")
	}
	if len(deps.Devices) == 0 {
		deps.Devices = DefaultDevices
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter actions"
	ti.CharLimit = 64

	m := Model{
		engine:     deps.Engine,
		hub:        deps.Hub,
		store:      deps.Store,
		reporter:   deps.Reporter,
		dispatcher: keymap.FromAsset(deps.Engine.Asset()),
		keys:       keymap.NewResolver(keymap.Bindings),
		logger:     deps.Logger.With("component", "app"),
		sub:        deps.Engine.Subscribe(),
		Menu:       menu.New(),
		Filter:     ti,
		Help:       help.New(),
		Devices:    deps.Devices,
		labels:     make(map[string]string),
	}
	m.Menu.SetFocused(true)

	if active := deps.Engine.Active(); active != "" {
		for i, d := range m.Devices {
			if d == active {
				m.Device = i
			}
		}
	}

	rows := make([]menu.Row, 0)
	for _, el := range deps.Engine.Elements() {
		label := elementLabel(el)
		m.labels[el.ID] = label
		row := menu.Row{ID: el.ID, Label: label}
		if d, err := deps.Engine.Display(el.ID); err == nil {
			row.Binding = d.Text
			row.Layout = d.DeviceLayout
			row.Class = d.Class
		} else {
			m.logger.Warn("element not displayable", "element", el.ID, "error", err)
		}
		rows = append(rows, row)
	}
	m.Menu.SetRows(rows)
	return m, nil
}

// elementLabel prefixes the display name with its map, so mirrored actions
// ("Gameplay/GameplayMove", "Menu/MenuMove") stay distinguishable.
func elementLabel(el rebind.Element) string {
	name := el.DisplayName()
	if el.Label != "" {
		return name
	}
	if mapName, _, ok := strings.Cut(el.Action, "/"); ok {
		return mapName + ": " + name
	}
	return name
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.WatchEngineEvents(), TickCmd())
}

// ActiveDevice returns the simulated device currently in use.
func (m Model) ActiveDevice() string {
	return m.Devices[m.Device]
}
