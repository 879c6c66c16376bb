package types

import (
	"sort"
	"strings"
	"unicode"

	"github.com/mbcrawfo/vibefun/internal/core"
)

// OtherValues is reported when a case list consists only of literal
// patterns: literal coverage is not inspected, so something is always
// considered missing.
const OtherValues = "<other values>"

// checkExhaustiveness returns the names of constructors the case list
// fails to cover. An empty result means the match is exhaustive.
func checkExhaustiveness(env *TypeEnv, patterns []core.Pattern, scrutinee Type) []string {
	allLiterals := len(patterns) > 0
	covered := make(map[string]bool)
	for _, p := range patterns {
		switch p := p.(type) {
		case *core.WildcardPattern, *core.VarPattern:
			return nil
		case *core.VariantPattern:
			covered[p.Ctor] = true
			allLiterals = false
		case *core.LitPattern:
		default:
			allLiterals = false
		}
	}

	if allLiterals {
		return []string{OtherValues}
	}

	app, ok := scrutinee.(*TApp)
	if !ok {
		return nil
	}
	con, ok := app.Con.(*TCon)
	if !ok {
		return nil
	}

	var missing []string
	for _, name := range enumerateConstructors(env, con.Name) {
		if !covered[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// enumerateConstructors scans the environment for the constructors of
// the named type: capitalized, dot-free value bindings whose scheme
// head is an application of that type. Dotted stdlib helpers like
// List.map never qualify.
func enumerateConstructors(env *TypeEnv, typeName string) []string {
	var ctors []string
	env.Range(func(name string, b Binding) bool {
		if !isConstructorName(name) {
			return true
		}
		var scheme *Scheme
		switch b := b.(type) {
		case *ValueBinding:
			scheme = b.Scheme
		case *ExternalBinding:
			scheme = b.Scheme
		default:
			return true
		}
		if constructsType(scheme.Type, typeName) {
			ctors = append(ctors, name)
		}
		return true
	})
	sort.Strings(ctors)
	return ctors
}

func isConstructorName(name string) bool {
	if name == "" || strings.Contains(name, ".") {
		return false
	}
	return unicode.IsUpper([]rune(name)[0])
}

// constructsType reports whether a constructor scheme body produces an
// application of the named type, directly or as a function's return
func constructsType(t Type, typeName string) bool {
	if f, ok := t.(*TFunc); ok {
		t = f.Return
	}
	app, ok := t.(*TApp)
	if !ok {
		return false
	}
	con, ok := app.Con.(*TCon)
	return ok && con.Name == typeName
}
