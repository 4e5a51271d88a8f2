package jshintrc

import (
	"fmt"
	"path/filepath"
)

// EventKind identifies a host lifecycle event.
type EventKind int

const (
	// DocumentSaved fires when the host saves a document.
	DocumentSaved EventKind = iota
	// DocumentRefreshed fires when a document changed outside the host.
	DocumentRefreshed
	// ProjectRootChanged fires when the host switches projects; Path is the new root.
	ProjectRootChanged
)

func (k EventKind) String() string {
	switch k {
	case DocumentSaved:
		return "documentSaved"
	case DocumentRefreshed:
		return "documentRefreshed"
	case ProjectRootChanged:
		return "projectRootChanged"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a lifecycle notification carrying a file or directory path.
type Event struct {
	Kind EventKind
	Path string
}

// HandleEvent invalidates the cached configuration when the event concerns
// the active project's config file, or switches projects on a root change.
// Reports whether the cache was invalidated.
func (l *Loader) HandleEvent(ev Event) bool {
	switch ev.Kind {
	case ProjectRootChanged:
		l.SetProjectRoot(ev.Path)
		return true
	case DocumentSaved, DocumentRefreshed:
		if ev.Path == "" || filepath.Clean(ev.Path) != filepath.Clean(l.ConfigPath()) {
			return false
		}
		l.Invalidate()
		return true
	default:
		return false
	}
}
