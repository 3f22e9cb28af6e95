package endcrypt

import (
	"errors"

	"github.com/andresmejia3/endcrypt/pkg/catmap"
	"github.com/andresmejia3/endcrypt/pkg/pixel"
)

var (
	// ErrInvalidParameter is returned for negative iteration counts or levels
	// and for non-finite keys. Keys outside (0,1) are accepted.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInternal wraps failures that are not caused by the caller's input.
	ErrInternal = errors.New("internal error")

	ErrInvalidDimensions = pixel.ErrInvalidDimensions
	ErrShapeMismatch     = pixel.ErrShapeMismatch
	ErrNotBijective      = catmap.ErrNotBijective
)
