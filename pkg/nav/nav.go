// Package nav implements the navigation engine (C5): it translates the flat
// key index into virtual directory listings for a given prefix (spec.md
// §3 "Virtual Directory View", §4.5).
package nav

import (
	"sort"
	"strings"
)

// Entry is one row in a virtual directory view: either a sub-prefix
// (directory) or an object, with its trailing slash already elided from
// the displayed name (spec.md §3).
type Entry struct {
	Name  string
	IsDir bool
}

// View is the derived projection at Prefix: directories first, then
// objects, each partition lexicographically ascending (spec.md §3). It is
// never persisted — Derive recomputes it on demand.
type View struct {
	Prefix  string
	Entries []Entry
}

// Len reports the number of rows in the view.
func (v View) Len() int { return len(v.Entries) }

// Derive computes the virtual directory view at prefix from a flat key
// list. It does not suspend (spec.md §5): it is a pure, synchronous
// transformation over an already-taken index snapshot.
func Derive(keys []string, prefix string) View {
	dirSeen := make(map[string]struct{})
	var dirs, objs []string

	for _, key := range keys {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := key[len(prefix):]
		if rest == "" {
			// The key is exactly the prefix: an explicit trailing-slash
			// directory marker object. Treated uniformly as a directory
			// marker, never surfaced as a zero-byte object (spec.md §9).
			continue
		}
		if slash := strings.IndexByte(rest, '/'); slash >= 0 {
			name := rest[:slash]
			if name == "" {
				continue
			}
			if _, seen := dirSeen[name]; !seen {
				dirSeen[name] = struct{}{}
				dirs = append(dirs, name)
			}
		} else {
			objs = append(objs, rest)
		}
	}

	sort.Strings(dirs)
	sort.Strings(objs)

	entries := make([]Entry, 0, len(dirs)+len(objs))
	for _, d := range dirs {
		entries = append(entries, Entry{Name: d, IsDir: true})
	}
	for _, o := range objs {
		entries = append(entries, Entry{Name: o, IsDir: false})
	}
	return View{Prefix: prefix, Entries: entries}
}

// Action is the result of Enter: either push a deeper prefix, or open the
// metadata panel for an object key (spec.md §4.5).
type Action struct {
	PushPrefix  string
	ObjectKey   string
	IsObject    bool
}

// Enter resolves pressing "open" on the entry at cursor i.
func Enter(v View, i int) (Action, bool) {
	if i < 0 || i >= len(v.Entries) {
		return Action{}, false
	}
	e := v.Entries[i]
	if e.IsDir {
		return Action{PushPrefix: v.Prefix + e.Name + "/"}, true
	}
	return Action{ObjectKey: v.Prefix + e.Name, IsObject: true}, true
}

// Parent resolves pressing "back": it strips the last /-segment from
// prefix, or reports that the caller has left the bucket entirely if
// already at the bucket root (spec.md §4.5).
func Parent(prefix string) (newPrefix string, leftBucket bool) {
	if prefix == "" {
		return "", true
	}
	trimmed := strings.TrimSuffix(prefix, "/")
	idx := strings.LastIndexByte(trimmed, '/')
	if idx < 0 {
		return "", false
	}
	return trimmed[:idx+1], false
}

// ClampCursor keeps cursor within [0, n), per spec.md §4.5/§3.
func ClampCursor(cursor, n int) int {
	if n <= 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
