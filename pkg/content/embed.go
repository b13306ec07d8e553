package content

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed fixtures/*.yaml
var embeddedFixtures embed.FS

// EmbeddedFS returns the bundled fixtures.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedFixtures, "fixtures")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

var defaultStore = sync.OnceValues(func() (*Store, error) {
	return LoadFS(EmbeddedFS())
})

// Default returns the store loaded from the embedded fixtures. It is loaded
// once per process.
func Default() (*Store, error) {
	return defaultStore()
}
