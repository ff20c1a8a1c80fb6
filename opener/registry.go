package opener

import (
	"fmt"
	"strings"
	"sync"
)

// Factory constructs the Openers matching a source specification string.
//
// The spec format depends on the scheme. For example:
//
//	file opener: "file:///path/to/data.txt", "/local/path.txt", "data/*.txt"
//	s3 opener:   "s3://bucket/key.txt"
//
// A Factory is registered per scheme via Register.
type Factory func(spec string) ([]Opener, error)

// Register associates a scheme with a Factory, typically from an init()
// in the package implementing the opener. Registration is global for the
// lifetime of the process; registering the same scheme twice returns an
// error.
func Register(scheme schemeType, f Factory) error {
	regMu.Lock()
	defer regMu.Unlock()
	if _, ok := registry[scheme]; ok {
		return fmt.Errorf("opener for scheme %q already registered", scheme)
	}
	registry[scheme] = f
	return nil
}

// FromSpec resolves a source specification string into Openers by
// inferring its scheme:
//
//   - file:// URIs → schemeFile
//   - s3:// URIs   → schemeS3
//   - bare paths   → schemeFile (default fall-through)
//   - unknown schemes return an error
func FromSpec(spec string) ([]Opener, error) {
	scheme := detectScheme(spec)
	if scheme == schemeUnknown {
		return nil, fmt.Errorf("unknown scheme for %q", spec)
	}
	regMu.RLock()
	f, ok := registry[scheme]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no opener registered for scheme %q (spec %q)", scheme, spec)
	}
	return f(spec)
}

// schemeType identifies the access mechanism used to retrieve data from a
// source specification.
type schemeType string

const (
	// schemeUnknown indicates that no supported access scheme was
	// detected. FromSpec treats this as an error.
	schemeUnknown schemeType = "unknown"
	// schemeFile indicates local filesystem access, for both "file://..."
	// URIs and bare paths.
	schemeFile schemeType = "file"
	// schemeS3 indicates Amazon S3 access, "s3://bucket/key". Recognized
	// but not served until an S3 factory is registered.
	schemeS3 schemeType = "s3"
)

var (
	registry = map[schemeType]Factory{}
	regMu    sync.RWMutex
)

func init() {
	if err := Register(schemeFile, FileOpeners); err != nil {
		panic(err)
	}
}

func detectScheme(spec string) schemeType {
	spec = strings.ToLower(strings.TrimSpace(spec))
	switch {
	case strings.HasPrefix(spec, "file://"):
		return schemeFile
	case strings.HasPrefix(spec, "s3://"):
		return schemeS3
	case !strings.Contains(spec, "://"):
		return schemeFile
	default:
		return schemeUnknown
	}
}
