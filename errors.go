package elem2keitaro

import (
	"errors"

	"github.com/alnah/go-elem2keitaro/internal/node"
)

// Sentinel errors for library operations.
var (
	// ErrDecode indicates the input bytes are not valid JSON.
	ErrDecode = node.ErrDecode

	// ErrRender indicates the node tree could not be rendered, for example
	// because it nests deeper than the renderer allows.
	ErrRender = errors.New("rendering failed")

	// ErrInternal indicates a recovered panic inside the pipeline.
	ErrInternal = errors.New("internal error")

	// Construction errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrTemplateLoad     = errors.New("loading template failed")
)
