package data

import (
	"slices"
	"strings"
)

// CategorySet is an insertion-ordered, de-duplicated list of category names.
// The order mirrors the desktop entry's Categories key so rewrites stay minimal.
type CategorySet []string

// ParseCategories splits a semicolon separated Categories value.
func ParseCategories(value string) CategorySet {
	var cs CategorySet
	for _, name := range strings.Split(value, ";") {
		cs = cs.With(strings.TrimSpace(name))
	}

	return cs
}

func (cs CategorySet) Contains(name string) bool {
	return slices.Contains(cs, name)
}

// With returns cs with name appended unless already present or empty.
func (cs CategorySet) With(name string) CategorySet {
	if name == "" || cs.Contains(name) {
		return cs
	}

	return append(cs, name)
}

// Without returns cs with every occurrence of name removed.
func (cs CategorySet) Without(name string) CategorySet {
	return slices.DeleteFunc(slices.Clone(cs), func(s string) bool {
		return s == name
	})
}

// Truncate drops every element after the first n, used to roll back appends.
func (cs CategorySet) Truncate(n int) CategorySet {
	if n >= len(cs) {
		return cs
	}

	return cs[:n]
}

// Apply computes cs ∪ add \ del, preserving the order of cs followed by add.
func (cs CategorySet) Apply(add, del CategorySet) CategorySet {
	result := make(CategorySet, 0, len(cs)+len(add))
	for _, name := range cs {
		if !del.Contains(name) {
			result = result.With(name)
		}
	}
	for _, name := range add {
		if !del.Contains(name) {
			result = result.With(name)
		}
	}

	return result
}

func (cs CategorySet) Clone() CategorySet {
	return slices.Clone(cs)
}

func (cs CategorySet) Equal(other CategorySet) bool {
	return slices.Equal(cs, other)
}

// String renders the desktop entry form, e.g. "Utility;Development;".
func (cs CategorySet) String() string {
	if len(cs) == 0 {
		return ""
	}

	return strings.Join(cs, ";") + ";"
}
