package lint

import (
	"context"

	"github.com/yaklabco/aspxloc/pkg/markup"
)

// Parser parses Web Forms markup into a FileSnapshot.
//
// The interface lives in the consumer package; parser/webforms provides
// the concrete implementation.
//
// Implementations must be:
//   - deterministic for a given (path, content) pair,
//   - safe for concurrent use by multiple goroutines, if documented as such,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse converts raw file bytes into a fully-populated FileSnapshot.
	//
	// Parameters:
	//   - ctx: context for cancellation and timeout propagation.
	//   - path: logical file path (for diagnostics and language hints; must not be used for I/O).
	//   - content: raw bytes (must not be mutated by the implementation).
	//
	// The returned FileSnapshot must satisfy:
	//   - snapshot.Path == path
	//   - bytes.Equal(snapshot.Content, content)
	//   - every event span lies within snapshot.Text
	Parse(ctx context.Context, path string, content []byte) (*markup.FileSnapshot, error)
}
