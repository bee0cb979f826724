// Package runtime provides AWK runtime support including regex operations.
package runtime

import (
	"sync"

	"github.com/coregx/coregex"
)

// dotallPrefix is prepended to patterns for AWK semantics (dot matches newline).
const dotallPrefix = "(?s)"

// Regex wraps coregex for AWK regex operations.
type Regex struct {
	pattern string
	re      *coregex.Regexp
}

// Compile creates a new Regex from pattern.
// AWK semantics: dot matches any character including newlines.
func Compile(pattern string) (*Regex, error) {
	// Prepend dotallPrefix for AWK dotall semantics: . matches \n
	re, err := coregex.Compile(dotallPrefix + pattern)
	if err != nil {
		return nil, err
	}

	// AWK uses leftmost-longest matching semantics
	re.Longest()

	return &Regex{pattern: pattern, re: re}, nil
}

// MustCompile creates a Regex, panicking on error.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// Pattern returns the original pattern string.
func (r *Regex) Pattern() string {
	return r.pattern
}

// MatchString reports whether s contains any match.
func (r *Regex) MatchString(s string) bool {
	return r.re.MatchString(s)
}

// FindStringIndex returns the start and end of the first match, or nil.
func (r *Regex) FindStringIndex(s string) []int {
	return r.re.FindStringIndex(s)
}

// FindAllStringIndex returns all non-overlapping matches.
func (r *Regex) FindAllStringIndex(s string, n int) [][]int {
	return r.re.FindAllStringIndex(s, n)
}

// ReplaceAllString replaces all matches with repl.
func (r *Regex) ReplaceAllString(s, repl string) string {
	return r.re.ReplaceAllString(s, repl)
}

// ReplaceAllStringFunc replaces all matches using the function.
func (r *Regex) ReplaceAllStringFunc(s string, f func(string) string) string {
	return r.re.ReplaceAllStringFunc(s, f)
}

// Split slices s into substrings separated by matches.
func (r *Regex) Split(s string, n int) []string {
	return r.re.Split(s, n)
}

// FindStringSubmatchIndex returns index pairs for the match and each
// capturing group of the first match, or nil. Needed for gensub's
// \1..\9 backreferences in its replacement text.
func (r *Regex) FindStringSubmatchIndex(s string) []int {
	return r.re.FindStringSubmatchIndex(s)
}

// FindAllStringSubmatchIndex is FindStringSubmatchIndex for every
// non-overlapping match, needed for gensub's "g" (global) form.
func (r *Regex) FindAllStringSubmatchIndex(s string, n int) [][]int {
	return r.re.FindAllStringSubmatchIndex(s, n)
}

// cacheKey distinguishes literal FS/RS-derived patterns from dynamic
// regex arguments (e.g. the first argument to match()), since the two
// can collide as strings but should never be confused.
type cacheKey struct {
	pattern string
	dynamic bool
}

// RegexCache provides thread-safe compiled regex caching.
//
// Unlike a fixed-size LRU, the cache never evicts: AWK programs compile
// a bounded number of distinct patterns (those written in the source,
// plus whatever a handful of dynamic regex arguments turn out to be),
// so the total is small relative to a long-running program's record
// count and eviction would only cost repeated compilation for no
// memory benefit.
type RegexCache struct {
	mu    sync.RWMutex
	cache map[cacheKey]*Regex
}

// NewRegexCache creates an empty regex cache.
func NewRegexCache() *RegexCache {
	return &RegexCache{cache: make(map[cacheKey]*Regex)}
}

// Get returns a compiled regex, compiling and caching if needed.
// dynamic marks patterns computed at runtime (as opposed to regex
// literals fixed in the source), so the two pools never collide.
func (c *RegexCache) Get(pattern string, dynamic bool) (*Regex, error) {
	key := cacheKey{pattern: pattern, dynamic: dynamic}

	c.mu.RLock()
	if re, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return re, nil
	}
	c.mu.RUnlock()

	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if existing, ok := c.cache[key]; ok {
		c.mu.Unlock()
		return existing, nil
	}
	c.cache[key] = re
	c.mu.Unlock()

	return re, nil
}

// MustGet returns a compiled regex, panicking on error.
func (c *RegexCache) MustGet(pattern string, dynamic bool) *Regex {
	re, err := c.Get(pattern, dynamic)
	if err != nil {
		panic(err)
	}
	return re
}

// Len returns the number of cached regexes.
func (c *RegexCache) Len() int {
	c.mu.RLock()
	n := len(c.cache)
	c.mu.RUnlock()
	return n
}

// Clear removes all cached regexes.
func (c *RegexCache) Clear() {
	c.mu.Lock()
	c.cache = make(map[cacheKey]*Regex)
	c.mu.Unlock()
}
