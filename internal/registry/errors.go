package registry

import "errors"

var (
	// ErrUnknownToken is returned when nothing is registered under a token.
	ErrUnknownToken = errors.New("registry: unknown token")
	// ErrInvalidDefinition is returned for a definition with neither an
	// instance nor a factory.
	ErrInvalidDefinition = errors.New("registry: invalid definition")
	// ErrCircularDependency is returned when a factory, directly or through
	// other factories, resolves its own token.
	ErrCircularDependency = errors.New("registry: circular dependency")
	// ErrTypeMismatch is returned by Resolve[T] when the bound value is not a T.
	ErrTypeMismatch = errors.New("registry: type mismatch")
)
