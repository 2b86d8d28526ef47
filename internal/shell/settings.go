package shell

// Setting names as persisted in the "aws-shell" config section.
const (
	SettingMatchFuzzy        = "match_fuzzy"
	SettingVIBindings        = "enable_vi_bindings"
	SettingCompletionColumns = "show_completion_columns"
	SettingShowHelp          = "show_help"
	SettingTheme             = "theme"
)

// Section is the engine's view of one persisted config section.
// *config.Section satisfies it.
type Section interface {
	Bool(key string) bool
	SetBool(key string, v bool)
	String(key string) string
	SetString(key, v string)
}

// Settings is the repository for the shell's togglable behavior. Reads and
// writes go straight to the config section; the Apply variants additionally
// notify the registered listener that the interactive surface must be
// rebuilt before the new value can take effect.
//
// There is at most one listener: the live interface registers itself when
// built and is deregistered when replaced, so a stale surface can never
// observe an apply meant for its successor.
type Settings struct {
	section  Section
	listener func(name string)
}

// NewSettings creates a repository over the given section.
func NewSettings(section Section) *Settings {
	return &Settings{section: section}
}

// SetListener replaces the rebuild listener. Pass nil to deregister.
func (s *Settings) SetListener(fn func(name string)) {
	s.listener = fn
}

// Bool reads a boolean setting.
func (s *Settings) Bool(name string) bool { return s.section.Bool(name) }

// SetBool writes a boolean setting without requesting a rebuild. Used for
// settings the live interface can honor immediately, like match_fuzzy.
func (s *Settings) SetBool(name string, v bool) { s.section.SetBool(name, v) }

// String reads a string setting.
func (s *Settings) String(name string) string { return s.section.String(name) }

// SetString writes a string setting without requesting a rebuild.
func (s *Settings) SetString(name, v string) { s.section.SetString(name, v) }

// SetAndApply writes a boolean setting and fires the rebuild listener
// exactly once. The current surface keeps its old behavior until the engine
// rebuilds; that window is the only place value and behavior may diverge.
func (s *Settings) SetAndApply(name string, v bool) {
	s.section.SetBool(name, v)
	s.notify(name)
}

// SetStringAndApply writes a string setting and fires the rebuild listener.
func (s *Settings) SetStringAndApply(name, v string) {
	s.section.SetString(name, v)
	s.notify(name)
}

// Toggle flips a boolean setting in place and returns the new value.
func (s *Settings) Toggle(name string) bool {
	v := !s.section.Bool(name)
	s.section.SetBool(name, v)
	return v
}

// ToggleAndApply flips a boolean setting, fires the rebuild listener, and
// returns the new value.
func (s *Settings) ToggleAndApply(name string) bool {
	v := !s.section.Bool(name)
	s.SetAndApply(name, v)
	return v
}

func (s *Settings) notify(name string) {
	if s.listener != nil {
		s.listener(name)
	}
}
