package checks

import (
	"maps"
	"slices"
	"strings"
)

// Groups is a read-only table of named check groups.
type Groups struct {
	members map[string][]string
}

// ParseGroups builds a group table from flat key-value configuration. Every
// key of the form "<prefix>.<group>" defines group with the comma-separated
// check names in its value; names are trimmed and empty entries dropped.
// Keys outside prefix are ignored. An empty prefix treats every key as a
// group name.
func ParseGroups(prefix string, props map[string]string) Groups {
	if prefix != "" && !strings.HasSuffix(prefix, ".") {
		prefix += "."
	}

	g := Groups{members: make(map[string][]string)}
	for key, value := range props {
		name, ok := strings.CutPrefix(key, prefix)
		if !ok || name == "" {
			continue
		}

		names := []string{}
		for part := range strings.SplitSeq(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				names = append(names, part)
			}
		}
		g.members[name] = names
	}
	return g
}

// Lookup returns the members of group. The boolean is false when the group is
// not configured; a configured group without members returns an empty slice
// and true.
func (g Groups) Lookup(group string) ([]string, bool) {
	names, ok := g.members[group]
	if !ok {
		return nil, false
	}
	return slices.Clone(names), true
}

// Names returns the configured group names in lexicographic order.
func (g Groups) Names() []string {
	return slices.Sorted(maps.Keys(g.members))
}
