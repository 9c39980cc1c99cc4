package cmd

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser parses user-defined arguments into flags
type Parser struct {
	flagSet *CommandFlagSet
	long    map[string]string
	short   map[string]string
}

func NewParser(flagSet *CommandFlagSet) *Parser {
	if flagSet == nil {
		flagSet = NewFlagSet()
	}

	p := &Parser{
		flagSet: flagSet,
		long:    make(map[string]string),
		short:   make(map[string]string),
	}
	for key, flag := range flagSet.Flags {
		p.long[flag.Name] = key
		if flag.Short != "" {
			p.short[flag.Short] = key
		}
	}

	return p
}

func (p *Parser) Parse(raw []string) (*CommandArgs, error) {
	args := &CommandArgs{
		Flags: make(map[string]any),
		Raw:   raw,
	}

	for key, flag := range p.flagSet.Flags {
		if flag.Default != nil {
			args.Flags[key] = flag.Default
		}
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]

		switch {
		case arg == "--":
			args.Args = append(args.Args, raw[i+1:]...)
			i = len(raw)

		case strings.HasPrefix(arg, "--"):
			name, value, inline := strings.Cut(arg[2:], "=")
			key, exists := p.long[name]
			if !exists {
				return nil, fmt.Errorf("unknown flag: --%s", name)
			}

			consumed, err := p.set(args, key, value, inline, raw[i+1:])
			if err != nil {
				return nil, fmt.Errorf("flag --%s: %w", name, err)
			}
			i += consumed

		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			group := arg[1:]
			for j := 0; j < len(group); j++ {
				name := group[j : j+1]
				key, exists := p.short[name]
				if !exists {
					return nil, fmt.Errorf("unknown flag: -%s", name)
				}

				// -n5 carries its value inline
				rest := group[j+1:]
				if p.flagSet.Flags[key].Type != FlagBool && rest != "" {
					if _, err := p.set(args, key, rest, true, nil); err != nil {
						return nil, fmt.Errorf("flag -%s: %w", name, err)
					}
					break
				}

				consumed, err := p.set(args, key, "", false, raw[i+1:])
				if err != nil {
					return nil, fmt.Errorf("flag -%s: %w", name, err)
				}
				i += consumed
			}

		default:
			args.Args = append(args.Args, arg)
		}
	}

	for key, flag := range p.flagSet.Flags {
		if _, ok := args.Flags[key]; flag.Required && !ok {
			if flag.Short != "" {
				return nil, fmt.Errorf("required flag: -%s / --%s", flag.Short, flag.Name)
			}
			return nil, fmt.Errorf("required flag: --%s", flag.Name)
		}
	}

	return args, nil
}

// set stores one flag value and returns how many following arguments it consumed.
func (p *Parser) set(args *CommandArgs, key, value string, inline bool, next []string) (int, error) {
	flag := p.flagSet.Flags[key]
	consumed := 0

	if !inline {
		if flag.Type == FlagBool {
			args.Flags[key] = true
			return 0, nil
		}
		if len(next) == 0 || strings.HasPrefix(next[0], "-") {
			return 0, fmt.Errorf("requires a value")
		}
		value = next[0]
		consumed = 1
	}

	converted, err := coerce(value, flag.Type)
	if err != nil {
		return 0, err
	}
	args.Flags[key] = converted

	return consumed, nil
}

func coerce(value string, typ string) (any, error) {
	switch typ {
	case FlagInt:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer '%s'", value)
		}
		return v, nil
	case FlagBool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return value == "yes", nil
		}
		return v, nil
	default:
		return value, nil
	}
}
