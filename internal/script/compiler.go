package script

import (
	"github.com/zeebo/xxh3"
)

// maxCachedPrograms bounds the compile cache; it is flushed when full.
const maxCachedPrograms = 64

type cacheEntry struct {
	src  string
	prog *Program
}

// Compiler parses and validates scripts, remembering the result for
// source text it has already seen. Not safe for concurrent use.
type Compiler struct {
	limits Limits
	cache  map[uint64]cacheEntry
}

// NewCompiler creates a compiler that validates against lim.
func NewCompiler(lim Limits) *Compiler {
	return &Compiler{
		limits: lim,
		cache:  make(map[uint64]cacheEntry),
	}
}

// Limits returns the limits programs are validated against.
func (c *Compiler) Limits() Limits {
	return c.limits
}

// Compile parses and validates src. Failed compilations are not cached.
func (c *Compiler) Compile(src string) (*Program, error) {
	key := xxh3.HashString(src)
	if e, ok := c.cache[key]; ok && e.src == src {
		return e.prog, nil
	}

	prog, err := Parse(src)
	if err != nil {
		return nil, err
	}
	if err := prog.Validate(c.limits); err != nil {
		return nil, err
	}

	if len(c.cache) >= maxCachedPrograms {
		clear(c.cache)
	}
	c.cache[key] = cacheEntry{src: src, prog: prog}
	return prog, nil
}

// Cached returns how many programs are currently cached.
func (c *Compiler) Cached() int {
	return len(c.cache)
}
