package rig

import "github.com/pkg/errors"

var (
	// ErrUnresolvedReference is returned when a name in a level or weapon
	// definition does not resolve to an object, weapon class or property set.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrMissingHandle is returned when a key no longer resolves to a live
	// object or body.
	ErrMissingHandle = errors.New("missing handle")

	// ErrMissingTexture is returned when an object is built without a texture.
	ErrMissingTexture = errors.New("missing texture")
)
