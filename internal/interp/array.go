package interp

import "github.com/kolkov/rawk/internal/types"

// Array is an AWK associative array. AWK arrays are passed to functions
// by reference, so Array is always handled through a pointer: binding a
// function parameter to an array means sharing this pointer, not copying
// the underlying map.
type Array struct {
	m map[string]types.Value
}

// NewArray creates an empty array.
func NewArray() *Array {
	return &Array{m: make(map[string]types.Value)}
}

// Get returns the value at key, creating it as null if absent (AWK
// auto-vivifies array elements on reference, e.g. inside "if (k in a)"
// checks performed via array indexing rather than InExpr).
func (a *Array) Get(key string) types.Value {
	if v, ok := a.m[key]; ok {
		return v
	}
	a.m[key] = types.Null()
	return types.Null()
}

// Has reports whether key is present without creating it.
func (a *Array) Has(key string) bool {
	_, ok := a.m[key]
	return ok
}

// Set stores value at key.
func (a *Array) Set(key string, value types.Value) {
	a.m[key] = value
}

// Delete removes key from the array.
func (a *Array) Delete(key string) {
	delete(a.m, key)
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.m)
}

// Keys returns the array's keys in unspecified order, matching AWK's
// for-in loop guarantee (or lack thereof).
func (a *Array) Keys() []string {
	keys := make([]string, 0, len(a.m))
	for k := range a.m {
		keys = append(keys, k)
	}
	return keys
}

// Clear empties the array in place, preserving the pointer identity that
// callers (including other functions holding a reference) depend on.
func (a *Array) Clear() {
	a.m = make(map[string]types.Value)
}
