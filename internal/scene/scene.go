// Package scene maps progression levels onto loadable scenes (sector
// layouts, starfields). The catalog is plain configuration data; actual
// loading is behind the Loader interface so games and the platform decide
// what a "scene" means.
package scene

// Ref identifies a scene by name and by its position in the catalog.
type Ref struct {
	Name  string
	Index int
}

// Loader is implemented by anything that can swap in a scene: a game
// loading a sector layout, the platform switching screens.
type Loader interface {
	// LoadScene begins loading the referenced scene. Implementations
	// call back progress.Tracker.SceneReady once the scene is in place.
	LoadScene(ref Ref)
}

// Catalog is an ordered list of scene names.
type Catalog struct {
	names []string
}

// NewCatalog creates a catalog from the given scene names.
// An empty catalog is valid; lookups simply report absence.
func NewCatalog(names ...string) *Catalog {
	return &Catalog{names: names}
}

// Len returns the number of scenes.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// Name returns the scene name at index, or "" if out of range.
func (c *Catalog) Name(index int) string {
	if c == nil || index < 0 || index >= len(c.names) {
		return ""
	}
	return c.names[index]
}

// ForLevel maps a 1-based level onto a scene, wrapping around when the
// level exceeds the catalog size. Returns false for an empty catalog.
func (c *Catalog) ForLevel(level int) (Ref, bool) {
	if c.Len() == 0 {
		return Ref{}, false
	}
	if level < 1 {
		level = 1
	}
	idx := (level - 1) % len(c.names)
	return Ref{Name: c.names[idx], Index: idx}, true
}
