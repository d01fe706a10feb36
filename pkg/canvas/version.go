// Package canvas holds build metadata for the canvas catalogue.
package canvas

// Version is the release version, overridable at build time with
// -ldflags "-X github.com/mesh-intelligence/canvas/pkg/canvas.Version=...".
var Version = "0.1.0"

// ModulePath is the Go module path.
const ModulePath = "github.com/mesh-intelligence/canvas"
