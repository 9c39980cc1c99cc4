// Package desktop reads and writes freedesktop.org desktop entry files.
package desktop

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-ini/ini"
	"github.com/mwantia/menufs/data"
)

const Group = "Desktop Entry"

// Keys read or written by menufs.
const (
	KeyType       = "Type"
	KeyName       = "Name"
	KeyExec       = "Exec"
	KeyIcon       = "Icon"
	KeyCategories = "Categories"
	KeyNoDisplay  = "NoDisplay"
	KeyHidden     = "Hidden"
	KeyOnlyShowIn = "OnlyShowIn"
	KeyNotShowIn  = "NotShowIn"
)

const TypeApplication = "Application"

func init() {
	// Desktop entries use Key=Value without padding. PrettyFormat is a
	// go-ini package global, so this applies to every ini writer in the
	// process.
	ini.PrettyFormat = false
}

var loadOptions = ini.LoadOptions{
	IgnoreInlineComment:     true,
	IgnoreContinuation:      true,
	PreserveSurroundedQuote: true,
	SkipUnrecognizableLines: true,
	KeyValueDelimiters:      "=",
}

// Entry is one parsed desktop entry. Only the [Desktop Entry] group is
// interpreted; every other group and key survives a rewrite untouched.
type Entry struct {
	file    *ini.File
	section *ini.Section
}

// New returns an entry with an empty [Desktop Entry] group.
func New() *Entry {
	file := ini.Empty(loadOptions)
	section, _ := file.NewSection(Group)

	return &Entry{file: file, section: section}
}

// Parse reads a desktop entry from raw bytes.
func Parse(content []byte) (*Entry, error) {
	file, err := ini.LoadSources(loadOptions, bytes.Clone(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse desktop entry: %w", err)
	}

	section, err := file.GetSection(Group)
	if err != nil {
		if section, err = file.NewSection(Group); err != nil {
			return nil, fmt.Errorf("failed to create '%s' group: %w", Group, err)
		}
	}

	return &Entry{file: file, section: section}, nil
}

// ParseOrNew parses content and falls back to an empty entry on error.
func ParseOrNew(content []byte) *Entry {
	entry, err := Parse(content)
	if err != nil {
		return New()
	}

	return entry
}

func (e *Entry) Has(key string) bool {
	return e.section.HasKey(key)
}

func (e *Entry) Get(key string) string {
	if !e.section.HasKey(key) {
		return ""
	}

	return e.section.Key(key).String()
}

func (e *Entry) Set(key, value string) {
	if e.section.HasKey(key) {
		e.section.Key(key).SetValue(value)
		return
	}

	// NewKey only fails for empty key names.
	_, _ = e.section.NewKey(key, value)
}

// Ensure adds key with value when the key is absent.
func (e *Entry) Ensure(key, value string) {
	if !e.Has(key) {
		e.Set(key, value)
	}
}

func (e *Entry) Delete(key string) {
	e.section.DeleteKey(key)
}

func (e *Entry) Bool(key string) bool {
	return strings.EqualFold(strings.TrimSpace(e.Get(key)), "true")
}

func (e *Entry) SetBool(key string, value bool) {
	if value {
		e.Set(key, "true")
	} else {
		e.Set(key, "false")
	}
}

// List returns a semicolon separated value as a slice.
func (e *Entry) List(key string) []string {
	return []string(data.ParseCategories(e.Get(key)))
}

func (e *Entry) Categories() data.CategorySet {
	return data.ParseCategories(e.Get(KeyCategories))
}

func (e *Entry) SetCategories(cs data.CategorySet) {
	e.Set(KeyCategories, cs.String())
}

// ShowIn evaluates OnlyShowIn/NotShowIn for a desktop environment.
// An empty desktop shows everything.
func (e *Entry) ShowIn(desktop string) bool {
	return Visible(desktop, e.List(KeyOnlyShowIn), e.List(KeyNotShowIn))
}

// Visible is the OnlyShowIn/NotShowIn rule shared with cached items.
// desktop may be a colon separated XDG_CURRENT_DESKTOP value.
func Visible(desktop string, onlyShowIn, notShowIn []string) bool {
	if desktop == "" {
		return true
	}

	names := strings.Split(desktop, ":")
	if len(onlyShowIn) > 0 {
		for _, name := range names {
			for _, only := range onlyShowIn {
				if strings.EqualFold(name, only) {
					return true
				}
			}
		}
		return false
	}

	for _, name := range names {
		for _, not := range notShowIn {
			if strings.EqualFold(name, not) {
				return false
			}
		}
	}

	return true
}

// Bytes serializes the entry into its on-disk form.
func (e *Entry) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := e.file.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize desktop entry: %w", err)
	}

	return buf.Bytes(), nil
}
