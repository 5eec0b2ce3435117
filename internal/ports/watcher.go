package ports

// Watcher monitors a definition file for changes and triggers a reload.
// The adapter (fsnotify) watches the file's directory so editors that save by
// rename are still seen, and debounces bursts of events from a single save.
// Only one Watch call should be active at a time.
type Watcher interface {
	// Watch starts monitoring path. onChange is called with the absolute path
	// each time the file is written, created, or replaced. The callback may be
	// invoked from any goroutine. Returns an error if the directory doesn't
	// exist or permissions are insufficient.
	Watch(path string, onChange func(filePath string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
