// Package registry is the dependency container that the composition root
// fills at startup. Capabilities are bound to tokens either as ready-made
// instances or as factories; factory results are cached per token unless the
// factory was registered as transient.
//
// Factories receive a Resolver scoped to the resolution in progress, so a
// factory may resolve the tokens it depends on. A token that reappears in its
// own resolution chain fails with ErrCircularDependency instead of recursing.
//
// Resolve is safe for concurrent use. Concurrent first resolutions of the same
// singleton share a single factory call. A resolution about to wait on a
// singleton that another resolution is building checks whether that builder
// is, through any chain of waits, waiting on it; if so the cycle is reported
// instead of blocking.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Token identifies a registrable capability, e.g. "CityRepository".
type Token string

func (t Token) String() string {
	return string(t)
}

// Resolver looks up the value bound to a token.
type Resolver interface {
	Resolve(token Token) (any, error)
}

// Factory builds the value for a token. r resolves dependencies within the
// current resolution chain.
type Factory func(r Resolver) (any, error)

// Definition is what a token is bound to: an instance or a factory. The zero
// Definition has neither and resolves to ErrInvalidDefinition.
type Definition struct {
	instance    any
	hasInstance bool
	factory     Factory
	singleton   bool
}

// Option adjusts a factory registration.
type Option func(*Definition)

// WithSingleton sets whether the factory result is cached. Factories are
// singletons unless told otherwise.
func WithSingleton(singleton bool) Option {
	return func(d *Definition) {
		d.singleton = singleton
	}
}

// Transient makes every resolution invoke the factory.
func Transient() Option {
	return WithSingleton(false)
}

// Container maps tokens to definitions and memoized singleton instances.
type Container struct {
	mu        sync.RWMutex
	defs      map[Token]Definition
	instances map[Token]any
	inflight  singleflight.Group

	// builders maps a singleton under construction to the resolution
	// building it; waiting maps a resolution to the singleton it waits on.
	builders map[Token]uint64
	waiting  map[uint64]Token
	lastID   atomic.Uint64
}

// New returns an empty container.
func New() *Container {
	return &Container{
		defs:      make(map[Token]Definition),
		instances: make(map[Token]any),
		builders:  make(map[Token]uint64),
		waiting:   make(map[uint64]Token),
	}
}

// RegisterInstance binds token to value. Every Resolve returns value itself.
func (c *Container) RegisterInstance(token Token, value any) *Container {
	return c.define(token, Definition{instance: value, hasInstance: true})
}

// RegisterFactory binds token to factory, cached after the first resolution
// unless Transient is passed.
func (c *Container) RegisterFactory(token Token, factory Factory, opts ...Option) *Container {
	def := Definition{factory: factory, singleton: true}
	for _, opt := range opts {
		opt(&def)
	}
	return c.define(token, def)
}

// define stores def under token. An existing registration is overwritten and
// its cached instance dropped.
func (c *Container) define(token Token, def Definition) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defs[token] = def
	delete(c.instances, token)
	return c
}

// Resolve returns the value bound to token, constructing it if needed.
func (c *Container) Resolve(token Token) (any, error) {
	return c.resolve(c.lastID.Add(1), token, nil)
}

// Clear drops cached singleton instances. Definitions are kept, so the next
// Resolve of a singleton runs its factory again.
func (c *Container) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.instances)
}

// Tokens lists the registered tokens in lexical order.
func (c *Container) Tokens() []Token {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tokens := make([]Token, 0, len(c.defs))
	for token := range c.defs {
		tokens = append(tokens, token)
	}
	slices.Sort(tokens)
	return tokens
}

func (c *Container) resolve(id uint64, token Token, chain []Token) (any, error) {
	if slices.Contains(chain, token) {
		return nil, fmt.Errorf("%w: %s", ErrCircularDependency, formatChain(append(slices.Clone(chain), token)))
	}

	c.mu.RLock()
	def, ok := c.defs[token]
	cached, hit := c.instances[token]
	c.mu.RUnlock()

	switch {
	case !ok:
		return nil, fmt.Errorf("%w: %q", ErrUnknownToken, token)
	case def.hasInstance:
		return def.instance, nil
	case def.factory == nil:
		return nil, fmt.Errorf("%w: %q", ErrInvalidDefinition, token)
	case !def.singleton:
		return c.build(id, token, def, chain)
	case hit:
		return cached, nil
	}

	if err := c.await(id, token, chain); err != nil {
		return nil, err
	}
	defer c.stopWaiting(id)

	v, err, _ := c.inflight.Do(string(token), func() (any, error) {
		c.mu.Lock()
		cached, hit := c.instances[token]
		if !hit {
			c.builders[token] = id
			delete(c.waiting, id)
		}
		c.mu.Unlock()
		if hit {
			return cached, nil
		}

		v, err := c.build(id, token, def, chain)

		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.builders, token)
		if err != nil {
			return nil, err
		}
		c.instances[token] = v
		return v, nil
	})
	return v, err
}

// await records that resolution id is about to wait on token. It fails when
// the resolution building token is itself waiting, directly or through other
// builders, on id.
func (c *Container) await(id uint64, token Token, chain []Token) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waiting[id] = token
	seen := map[uint64]bool{}
	for t := token; ; {
		builder, ok := c.builders[t]
		if !ok || seen[builder] {
			return nil
		}
		if builder == id {
			delete(c.waiting, id)
			return fmt.Errorf("%w: %s (built concurrently)", ErrCircularDependency, formatChain(append(slices.Clone(chain), token)))
		}
		seen[builder] = true
		if t, ok = c.waiting[builder]; !ok {
			return nil
		}
	}
}

func (c *Container) stopWaiting(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.waiting, id)
}

func (c *Container) build(id uint64, token Token, def Definition, chain []Token) (any, error) {
	s := &scope{container: c, id: id, chain: append(slices.Clone(chain), token)}
	v, err := def.factory(s)
	if err != nil {
		return nil, fmt.Errorf("construct %q: %w", token, err)
	}
	return v, nil
}

// scope resolves on behalf of a factory, carrying the chain that led to it.
type scope struct {
	container *Container
	id        uint64
	chain     []Token
}

func (s *scope) Resolve(token Token) (any, error) {
	return s.container.resolve(s.id, token, s.chain)
}

func formatChain(chain []Token) string {
	parts := make([]string, len(chain))
	for i, t := range chain {
		parts[i] = string(t)
	}
	return strings.Join(parts, " -> ")
}

// Resolve resolves token through r and asserts the result to T.
func Resolve[T any](r Resolver, token Token) (T, error) {
	var zero T
	v, err := r.Resolve(token)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q holds %T", ErrTypeMismatch, token, v)
	}
	return typed, nil
}
