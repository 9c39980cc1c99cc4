package menu

import "github.com/mwantia/menufs/data"

// Delta is a pending change to an application's category set.
// Add and Del are disjoint and only ever grow by appending, so a partial
// attempt can be rolled back by truncating both to an earlier mark.
type Delta struct {
	Add data.CategorySet
	Del data.CategorySet
}

type mark struct {
	add int
	del int
}

func (d *Delta) mark() mark {
	return mark{add: len(d.Add), del: len(d.Del)}
}

func (d *Delta) restore(m mark) {
	d.Add = d.Add.Truncate(m.add)
	d.Del = d.Del.Truncate(m.del)
}

// Empty reports whether applying the delta changes nothing.
func (d *Delta) Empty() bool {
	return len(d.Add) == 0 && len(d.Del) == 0
}

// Apply returns current with the delta applied.
func (d *Delta) Apply(current data.CategorySet) data.CategorySet {
	return current.Apply(d.Add, d.Del)
}

// IsSatisfying evaluates a rule against a category set. Filename rules never
// match since no application id is known here.
func (t *Tree) IsSatisfying(id NodeID, categories data.CategorySet) bool {
	return t.Matches(id, "", categories)
}

// Matches evaluates a rule for an application identified by desktopID.
// Include and Exclude behave as an implicit Or.
func (t *Tree) Matches(id NodeID, desktopID string, categories data.CategorySet) bool {
	switch t.Tag(id) {
	case TagCategory:
		return categories.Contains(t.nodes[id].Text)

	case TagFilename:
		return desktopID != "" && t.nodes[id].Text == desktopID

	case TagAnd:
		for _, child := range t.Children(id) {
			if !t.Matches(child, desktopID, categories) {
				return false
			}
		}
		return true

	case TagOr, TagInclude, TagExclude:
		for _, child := range t.Children(id) {
			if t.Matches(child, desktopID, categories) {
				return true
			}
		}
		return false

	case TagNot:
		child := t.firstChild(id)
		return child != NoNode && !t.Matches(child, desktopID, categories)
	}

	return false
}

// Satisfy extends delta so that current with delta applied satisfies id.
// On failure delta is left exactly as it was on entry.
func (t *Tree) Satisfy(id NodeID, current data.CategorySet, delta *Delta) bool {
	switch t.Tag(id) {
	case TagCategory:
		name := t.nodes[id].Text
		if delta.Del.Contains(name) {
			return false
		}
		if !current.Contains(name) {
			delta.Add = delta.Add.With(name)
		}
		return true

	case TagFilename:
		return false

	case TagNot:
		child := t.firstChild(id)
		return child != NoNode && t.Unsatisfy(child, current, delta)

	case TagAnd:
		m := delta.mark()
		for _, child := range t.Children(id) {
			if !t.Satisfy(child, current, delta) {
				delta.restore(m)
				return false
			}
		}
		return true

	case TagOr, TagInclude, TagExclude:
		if t.IsSatisfying(id, delta.Apply(current)) {
			return true
		}
		for _, child := range t.Children(id) {
			m := delta.mark()
			if t.Satisfy(child, current, delta) {
				return true
			}
			delta.restore(m)
		}
		return false
	}

	return false
}

// Unsatisfy extends delta so that current with delta applied no longer
// satisfies id. On failure delta is left exactly as it was on entry.
func (t *Tree) Unsatisfy(id NodeID, current data.CategorySet, delta *Delta) bool {
	switch t.Tag(id) {
	case TagCategory:
		name := t.nodes[id].Text
		if delta.Add.Contains(name) {
			return false
		}
		if current.Contains(name) {
			delta.Del = delta.Del.With(name)
		}
		return true

	case TagFilename:
		return true

	case TagNot:
		child := t.firstChild(id)
		return child != NoNode && t.Satisfy(child, current, delta)

	case TagAnd:
		if !t.IsSatisfying(id, delta.Apply(current)) {
			return true
		}
		for _, child := range t.Children(id) {
			m := delta.mark()
			if t.Unsatisfy(child, current, delta) {
				return true
			}
			delta.restore(m)
		}
		return false

	case TagOr, TagInclude, TagExclude:
		m := delta.mark()
		for _, child := range t.Children(id) {
			if !t.Unsatisfy(child, current, delta) {
				delta.restore(m)
				return false
			}
		}
		return true
	}

	// Elements that never match are already unsatisfied.
	return !t.IsSatisfying(id, delta.Apply(current))
}
