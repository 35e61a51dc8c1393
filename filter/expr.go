package filter

import (
	"maps"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// DefaultCacheSize is the number of compiled filters a Compiler keeps
const DefaultCacheSize = 100

// Filter is a compiled boolean expression
type Filter struct {
	expression string
	program    *vm.Program
}

// Expression returns the source expression
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against env
func (f *Filter) Match(env Env) (bool, error) {
	result, err := expr.Run(f.program, map[string]any(env))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Key:        env.Key(),
			Reason:     "failed to evaluate expression",
			Err:        err,
		}
	}

	// AsBool guarantees a bool result
	return result.(bool), nil
}

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache sets the compiled filter cache size; 0 disables caching
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if size <= 0 {
			c.cache = nil
			return
		}
		c.cache = newLRUCache[*Filter](size)
	}
}

// WithHelpers adds helper functions available to every expression.
// Helpers must also be present in the Env passed to Match.
func WithHelpers(helpers map[string]any) CompilerOption {
	return func(c *Compiler) {
		maps.Copy(c.env, helpers)
	}
}

// Compiler compiles filter expressions
type Compiler struct {
	env   Env
	cache *lruCache[*Filter]
}

// NewCompiler creates a compiler with a DefaultCacheSize cache
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{
		env:   compileEnv(),
		cache: newLRUCache[*Filter](DefaultCacheSize),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Compile parses and type-checks an expression. Entity fields are resolved
// at evaluation time, so unknown identifiers are allowed.
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(map[string]any(c.env)),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &Filter{
		expression: expression,
		program:    program,
	}

	if c.cache != nil {
		c.cache.put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *Compiler) Clear() {
	if c.cache != nil {
		c.cache.clear()
	}
}

// Size returns the number of cached filters
func (c *Compiler) Size() int {
	if c.cache != nil {
		return c.cache.size()
	}
	return 0
}
