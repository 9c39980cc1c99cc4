package cmd

// Flag value types understood by the parser.
const (
	FlagString = "string"
	FlagBool   = "bool"
	FlagInt    = "int"
)

// CommandArgs contains parsed command arguments
type CommandArgs struct {
	// Positional arguments (command-specific)
	Args []string

	// Parsed flags
	Flags map[string]any

	// Raw unparsed arguments (for custom parsing)
	Raw []string
}

// Arg returns the positional argument at i, or fallback.
func (ca *CommandArgs) Arg(i int, fallback string) string {
	if i < 0 || i >= len(ca.Args) {
		return fallback
	}

	return ca.Args[i]
}

func (ca *CommandArgs) Bool(name string) bool {
	v, _ := ca.Flags[name].(bool)
	return v
}

func (ca *CommandArgs) String(name string) string {
	v, _ := ca.Flags[name].(string)
	return v
}

func (ca *CommandArgs) Int(name string) int64 {
	switch v := ca.Flags[name].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}

// CommandFlagSet defines the expected flags for a command
type CommandFlagSet struct {
	Flags map[string]*CommandFlag
}

// NewFlagSet indexes flags by their long name.
func NewFlagSet(flags ...*CommandFlag) *CommandFlagSet {
	set := &CommandFlagSet{Flags: make(map[string]*CommandFlag, len(flags))}
	for _, flag := range flags {
		set.Flags[flag.Name] = flag
	}

	return set
}

// CommandFlag represents a single command-line flag
type CommandFlag struct {
	Name        string `json:"name"`              // e.g., "long" or "l"
	Short       string `json:"short"`             // Single-char shorthand (e.g., "l")
	Type        string `json:"type"`              // "string", "bool", "int"
	Default     any    `json:"default,omitempty"` // Default value
	Required    bool   `json:"required"`          // Must be provided
	Description string `json:"description"`       // Help text
}
