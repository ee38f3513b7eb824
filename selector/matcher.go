package selector

import (
	"strings"

	"xmltree/dom"
)

// Matches reports whether the selector matches the element addressed by h.
// Non-element handles never match.
func (s *Selector) Matches(doc *dom.Document, h dom.NodeHandle) bool {
	if kind, err := doc.Kind(h); err != nil || kind != dom.ElementNode {
		return false
	}
	for _, group := range s.groups {
		if group.matches(doc, h) {
			return true
		}
	}
	return false
}

// matches evaluates the chain right to left: the last compound is tested
// against the subject, then each combinator walks toward the root.
func (cs *complexSelector) matches(doc *dom.Document, el dom.NodeHandle) bool {
	i := len(cs.compounds) - 1
	if !cs.compounds[i].matches(doc, el) {
		return false
	}
	current := el
	for i > 0 {
		comb := cs.compounds[i-1].combinator
		i--
		switch comb {
		case combinatorChild:
			parent, ok := doc.Parent(current)
			if !ok || !cs.compounds[i].matches(doc, parent) {
				return false
			}
			current = parent

		case combinatorDescendant:
			matched := false
			for ancestor, ok := doc.Parent(current); ok; ancestor, ok = doc.Parent(ancestor) {
				if cs.compounds[i].matches(doc, ancestor) {
					current = ancestor
					matched = true
					break
				}
			}
			if !matched {
				return false
			}

		default:
			return false
		}
	}
	return true
}

func (c *compoundSelector) matches(doc *dom.Document, el dom.NodeHandle) bool {
	if c.tag != "" && c.tag != "*" {
		name, err := doc.Name(el)
		if err != nil || name != c.tag {
			return false
		}
	}
	for _, id := range c.ids {
		if value, ok := doc.Attribute(el, "id"); !ok || value != id {
			return false
		}
	}
	if len(c.classes) > 0 {
		value, _ := doc.Attribute(el, "class")
		classes := strings.Fields(value)
		for _, want := range c.classes {
			if !containsString(classes, want) {
				return false
			}
		}
	}
	for _, attr := range c.attrs {
		value, ok := doc.Attribute(el, attr.name)
		if !ok {
			return false
		}
		if attr.hasValue && value != attr.value {
			return false
		}
	}
	return true
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

// QueryFirst returns the first element at or below scope, in document
// order, that the selector matches.
func QueryFirst(doc *dom.Document, scope dom.NodeHandle, s *Selector) (dom.NodeHandle, bool) {
	var found dom.NodeHandle
	ok := false
	walkElements(doc, scope, func(h dom.NodeHandle) bool {
		if s.Matches(doc, h) {
			found = h
			ok = true
			return false
		}
		return true
	})
	return found, ok
}

// QueryAll returns every element at or below scope that the selector
// matches, in document order. Each element appears at most once even when
// it satisfies more than one union group.
func QueryAll(doc *dom.Document, scope dom.NodeHandle, s *Selector) []dom.NodeHandle {
	var matches []dom.NodeHandle
	walkElements(doc, scope, func(h dom.NodeHandle) bool {
		if s.Matches(doc, h) {
			matches = append(matches, h)
		}
		return true
	})
	return matches
}

// walkElements visits elements in pre-order, scope first. Text and
// comment nodes are skipped; they are never selector candidates. The walk
// stops early when visit returns false.
func walkElements(doc *dom.Document, h dom.NodeHandle, visit func(dom.NodeHandle) bool) bool {
	kind, err := doc.Kind(h)
	if err != nil || kind != dom.ElementNode {
		return true
	}
	if !visit(h) {
		return false
	}
	children, err := doc.Children(h)
	if err != nil {
		return true
	}
	for _, child := range children {
		if !walkElements(doc, child, visit) {
			return false
		}
	}
	return true
}
