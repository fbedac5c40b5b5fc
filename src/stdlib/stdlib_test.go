package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zinc/src/ast"
)

func TestLookupKnownBuiltin(t *testing.T) {
	b, ok := Lookup("str_concat")
	assert.True(t, ok)
	assert.Equal(t, []ast.AbstractType{ast.String, ast.String}, b.Params)
	assert.Equal(t, ast.String, b.Returns)
}

func TestLookupUnknownBuiltin(t *testing.T) {
	_, ok := Lookup("does_not_exist")
	assert.False(t, ok)
}

func TestEveryBuiltinNameUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, b := range Builtins {
		assert.False(t, seen[b.Name], "duplicate builtin name %s", b.Name)
		seen[b.Name] = true
	}
	assert.Len(t, seen, len(Builtins))
}

func TestPanicTakesNoArguments(t *testing.T) {
	b, ok := Lookup("panic")
	assert.True(t, ok)
	assert.Empty(t, b.Params)
	assert.Equal(t, ast.Void, b.Returns)
}
