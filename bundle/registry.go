package bundle

import (
	"path/filepath"
	"runtime"
	"sync"
)

var registry = struct {
	dirs map[string]string
	sync.RWMutex
}{dirs: make(map[string]string)}

// Register records the directory of the file calling Register
// as the root path of importName.
//
// Registering the same name again replaces the directory.
func Register(importName string) {
	_, file, _, ok := runtime.Caller(1)
	if !ok {
		return
	}

	RegisterDir(importName, filepath.Dir(file))
}

// RegisterDir records dir as the root path of importName.
func RegisterDir(importName, dir string) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}

	registry.Lock()
	defer registry.Unlock()

	registry.dirs[importName] = abs
}

func registered(importName string) (string, bool) {
	registry.RLock()
	defer registry.RUnlock()

	dir, ok := registry.dirs[importName]
	return dir, ok
}
