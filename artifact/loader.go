package artifact

import "sync"

// Loader loads a store on first use. Concurrent callers share one load and
// every call returns the same store or the same error.
type Loader struct {
	dir   string
	opts  []LoadOption
	once  sync.Once
	store *Store
	err   error
}

// NewLoader creates a loader for the artifacts in dir.
func NewLoader(dir string, opts ...LoadOption) *Loader {
	return &Loader{dir: dir, opts: opts}
}

// Get returns the store, loading it on the first call.
func (l *Loader) Get() (*Store, error) {
	l.once.Do(func() {
		l.store, l.err = Load(l.dir, l.opts...)
	})

	return l.store, l.err
}

// Dir returns the artifact directory.
func (l *Loader) Dir() string {
	return l.dir
}
