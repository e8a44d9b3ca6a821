package executor

import (
	"fmt"

	"github.com/specialistvlad/glyphforge/internal/assettype"
)

// GeneratorFailureError reports the generator whose invocation failed a
// build, whether it was requested or pulled in as a dependency.
type GeneratorFailureError struct {
	Type assettype.AssetType
	Err  error
}

func (e *GeneratorFailureError) Error() string {
	return fmt.Sprintf("generator '%s' failed: %v", e.Type, e.Err)
}

func (e *GeneratorFailureError) Unwrap() error {
	return e.Err
}
