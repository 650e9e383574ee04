package core

import "errors"

var (
	ErrUnknownPrimitive    = errors.New("unknown primitive type")
	ErrUnknownMaterial     = errors.New("material not defined")
	ErrUnknownTexture      = errors.New("unknown texture kind")
	ErrUnknownLight        = errors.New("unknown light type")
	ErrUnknownAntiAliasing = errors.New("unknown anti-aliasing strategy")
	ErrUnknownObject       = errors.New("object not defined")
	ErrUnknownScene        = errors.New("unknown scene")
	ErrInvalidGeometry     = errors.New("invalid geometry")
	ErrInvalidImageSize    = errors.New("invalid image size")
	ErrUnsupportedFormat   = errors.New("unsupported file format")
)
