package menu

import (
	"github.com/yawmintah/ussdflow/pkg/domain"
)

// Option is one selectable code on a screen. It either transitions to
// another screen (Next set) or ends the dialog with an outcome template
// (Outcome set). Exactly one of the two must be present.
type Option struct {
	// Code is the keypress that selects this option. Codes are case- and
	// whitespace-sensitive.
	Code string `yaml:"code"`

	// Value is the display value captured under the screen's capture key
	// when this option is selected.
	Value string `yaml:"value"`

	// Next is the screen this option transitions to.
	Next domain.ScreenID `yaml:"next,omitempty"`

	// Outcome is the terminal result template rendered when this option
	// ends the dialog.
	Outcome string `yaml:"outcome,omitempty"`
}

// Terminal reports whether selecting this option ends the dialog.
func (o *Option) Terminal() bool {
	return o.Next == ""
}

// Screen is one step of the menu tree.
type Screen struct {
	ID domain.ScreenID `yaml:"id"`

	// CaptureKey is the key under which the selected option's value is
	// stored in the session. Empty means the screen captures nothing.
	CaptureKey string `yaml:"capture,omitempty"`

	// Prompt is the screen text template. It may reference subscriber
	// fields and previously captured values, e.g. {feeling|lower}.
	Prompt string `yaml:"prompt"`

	Options []Option `yaml:"options"`
}

// Option returns the option bound to the given code, if any.
func (s *Screen) Option(code string) (*Option, bool) {
	for i := range s.Options {
		if s.Options[i].Code == code {
			return &s.Options[i], true
		}
	}
	return nil, false
}

// Definition is the raw, declarative form of a menu, as authored in code
// or loaded from YAML. New validates it into a Menu.
type Definition struct {
	// Greeting is prepended to the start screen's prompt when a fresh
	// dialog arrives with no selections. Optional.
	Greeting string `yaml:"greeting,omitempty"`

	// InvalidNotice prefixes the re-prompt after a rejected keypress.
	InvalidNotice string `yaml:"invalid_notice,omitempty"`

	Start   domain.ScreenID `yaml:"start"`
	Screens []Screen        `yaml:"screens"`
}

// DefaultInvalidNotice is used when a definition does not set its own.
const DefaultInvalidNotice = "Invalid option selected. Please try again."

// Menu is a validated, read-only menu tree. Lookups are the only
// operations; all mutation happens at construction.
type Menu struct {
	greeting      string
	invalidNotice string
	start         domain.ScreenID
	screens       map[domain.ScreenID]*Screen
}

// New validates the definition and builds the lookup index.
// Validation failures are meant to be fatal at startup.
func New(def Definition) (*Menu, error) {
	if err := validate(def); err != nil {
		return nil, err
	}

	m := &Menu{
		greeting:      def.Greeting,
		invalidNotice: def.InvalidNotice,
		start:         def.Start,
		screens:       make(map[domain.ScreenID]*Screen, len(def.Screens)),
	}
	if m.invalidNotice == "" {
		m.invalidNotice = DefaultInvalidNotice
	}
	for i := range def.Screens {
		s := def.Screens[i]
		m.screens[s.ID] = &s
	}
	return m, nil
}

// Start returns the id of the initial screen.
func (m *Menu) Start() domain.ScreenID {
	return m.start
}

// Greeting returns the greeting template, which may be empty.
func (m *Menu) Greeting() string {
	return m.greeting
}

// InvalidNotice returns the rejected-keypress notice line.
func (m *Menu) InvalidNotice() string {
	return m.invalidNotice
}

// Screen returns the screen with the given id, if defined.
func (m *Menu) Screen(id domain.ScreenID) (*Screen, bool) {
	s, ok := m.screens[id]
	return s, ok
}

// Screens returns the ids of all screens, in no particular order.
func (m *Menu) Screens() []domain.ScreenID {
	ids := make([]domain.ScreenID, 0, len(m.screens))
	for id := range m.screens {
		ids = append(ids, id)
	}
	return ids
}
