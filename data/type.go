package data

// ItemKind identifies the type of a menu cache item.
type ItemKind int

const (
	KindDirectory   ItemKind = iota // Menu directory
	KindApplication                 // Desktop entry
	KindSeparator                   // Layout separator, never enumerated
)

func (k ItemKind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindApplication:
		return "application"
	case KindSeparator:
		return "separator"
	default:
		return "unknown"
	}
}

func (k ItemKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
