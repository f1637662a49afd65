// Package registry is the process-wide catalog of recognized unary
// functions and named constants (§4.1). The lexer and parser consult it to
// decide what counts as a Function or Constant token; Function and
// Constant nodes resolve against it once, at construction.
package registry

import (
	"sync"

	"github.com/symcalc/symcalc/pkg/ast"
)

// Registry maps function identifiers to dispatch entries and constant
// names to values. The zero value is empty; use New or the package-level
// default instance seeded by Init.
type Registry struct {
	mu        sync.RWMutex
	functions map[string]ast.FuncEntry
	constants map[string]float64
}

// New returns an empty Registry. Callers that want the standard set must
// call Init on it (or use the package-level default instance below).
func New() *Registry {
	return &Registry{
		functions: make(map[string]ast.FuncEntry),
		constants: make(map[string]float64),
	}
}

// Init seeds r with the standard function and constant set. Idempotent:
// calling it again after entries were added with AddFunction/AddConstant
// does not remove those entries, but re-running it after Shutdown restores
// the standard set (first-registration-wins means Init only fills in names
// not already present: an entry added under a standard name before Init
// runs keeps its own value).
func (r *Registry) Init() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]ast.FuncEntry)
	}
	if r.constants == nil {
		r.constants = make(map[string]float64)
	}
	for _, e := range standardFunctions {
		if _, exists := r.functions[e.ID()]; !exists {
			r.functions[e.ID()] = e
		}
	}
	for name, v := range standardConstants {
		if _, exists := r.constants[name]; !exists {
			r.constants[name] = v
		}
	}
}

// Shutdown clears all entries. A subsequent Init restores the standard set.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.functions = make(map[string]ast.FuncEntry)
	r.constants = make(map[string]float64)
}

// AddFunction registers id as an extension point. First registration wins:
// a second call with the same id is ignored.
func (r *Registry) AddFunction(id string, entry ast.FuncEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]ast.FuncEntry)
	}
	if _, exists := r.functions[id]; exists {
		return
	}
	r.functions[id] = entry
}

// AddConstant registers name as an extension point. First registration
// wins: a second call with the same name is ignored.
func (r *Registry) AddConstant(name string, value float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.constants == nil {
		r.constants = make(map[string]float64)
	}
	if _, exists := r.constants[name]; exists {
		return
	}
	r.constants[name] = value
}

// GetFunction looks up id, returning nil when unknown.
func (r *Registry) GetFunction(id string) ast.FuncEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.functions[id]
}

// GetConstantValue looks up name, returning a quiet NaN when unknown (§3.2
// — an unknown constant name is never a runtime failure).
func (r *Registry) GetConstantValue(name string) float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.constants[name]
	if !ok {
		return nan()
	}
	return v
}

// HasFunction reports whether id is currently a known function identifier —
// used by the lexer to decide the Function-token alternative (§4.2).
func (r *Registry) HasFunction(id string) bool {
	return r.GetFunction(id) != nil
}

// HasConstant reports whether name is currently a known constant name —
// used by the lexer to decide the Constant-token alternative (§4.2).
func (r *Registry) HasConstant(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.constants[name]
	return ok
}

// FunctionNames returns the currently registered function identifiers, in
// no particular order. The lexer does not use it; it asks HasFunction for
// each word instead.
func (r *Registry) FunctionNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for k := range r.functions {
		names = append(names, k)
	}
	return names
}

// ConstantNames returns the currently registered constant names.
func (r *Registry) ConstantNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.constants))
	for k := range r.constants {
		names = append(names, k)
	}
	return names
}

// std is the process-wide default registry the package-level functions
// operate on (§4.1, §5: "expected to be populated during initialization
// and thereafter read-only").
var std = New()

// Init seeds the default registry with the standard set.
func Init() { std.Init() }

// Shutdown clears the default registry.
func Shutdown() { std.Shutdown() }

// AddFunction registers id on the default registry.
func AddFunction(id string, entry ast.FuncEntry) { std.AddFunction(id, entry) }

// AddConstant registers name on the default registry.
func AddConstant(name string, value float64) { std.AddConstant(name, value) }

// GetFunction looks up id on the default registry.
func GetFunction(id string) ast.FuncEntry { return std.GetFunction(id) }

// GetConstantValue looks up name on the default registry.
func GetConstantValue(name string) float64 { return std.GetConstantValue(name) }

// Default returns the process-wide registry instance.
func Default() *Registry { return std }
