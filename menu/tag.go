package menu

// Tag is the closed set of .menu elements menufs acts upon.
// Every other element is kept as TagUnknown and passed through inertly.
type Tag int

const (
	TagUnknown Tag = iota
	TagMenu
	TagName
	TagInclude
	TagExclude
	TagCategory
	TagAnd
	TagOr
	TagNot
	TagFilename
	TagMergeFile
	TagMergeDir
	TagDefaultMergeDirs
)

var tagNames = map[string]Tag{
	"Menu":             TagMenu,
	"Name":             TagName,
	"Include":          TagInclude,
	"Exclude":          TagExclude,
	"Category":         TagCategory,
	"And":              TagAnd,
	"Or":               TagOr,
	"Not":              TagNot,
	"Filename":         TagFilename,
	"MergeFile":        TagMergeFile,
	"MergeDir":         TagMergeDir,
	"DefaultMergeDirs": TagDefaultMergeDirs,
}

func tagOf(element string) Tag {
	return tagNames[element]
}

func (t Tag) String() string {
	for name, tag := range tagNames {
		if tag == t {
			return name
		}
	}

	return "Unknown"
}

// IsRule reports whether the tag is a matching rule that may appear inside
// Include, Exclude and the boolean operators.
func (t Tag) IsRule() bool {
	switch t {
	case TagCategory, TagFilename, TagAnd, TagOr, TagNot:
		return true
	default:
		return false
	}
}

// IsDirective reports whether the tag is consumed during merging.
func (t Tag) IsDirective() bool {
	switch t {
	case TagMergeFile, TagMergeDir, TagDefaultMergeDirs:
		return true
	default:
		return false
	}
}
