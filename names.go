// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

// nameTable maps names to indices. Unnamed entries are only reachable by
// index.
type nameTable struct {
	m     map[string]int
	names []string
}

func newNameTable(size int) *nameTable {
	return &nameTable{m: make(map[string]int, size), names: make([]string, 0, size)}
}

// add appends a new entry. It returns false if name is already in use.
func (t *nameTable) add(name string) bool {
	if name != "" {
		if _, ok := t.m[name]; ok {
			return false
		}
		t.m[name] = len(t.names)
	}
	t.names = append(t.names, name)
	return true
}

func (t *nameTable) lookup(r Ref) (int, bool) {
	if r.Name != "" {
		i, ok := t.m[r.Name]
		return i, ok
	}
	if r.Index < 0 || r.Index >= len(t.names) {
		return -1, false
	}
	return r.Index, true
}

// label returns the name of entry i, or its index if unnamed.
func (t *nameTable) label(i int) string {
	return netLabel(i, t.names[i])
}

func (t *nameTable) len() int { return len(t.names) }
