package types

import (
	"fmt"
	"strings"
)

// Scheme is a possibly-quantified type. Vars holds the quantified
// variable ids in ascending (creation) order; a scheme with no vars is
// monomorphic.
type Scheme struct {
	Vars []int
	Type Type
}

// SchemeOf wraps a type as a monomorphic scheme
func SchemeOf(t Type) *Scheme {
	return &Scheme{Type: t}
}

// IsMonomorphic reports whether the scheme quantifies no variables
func (s *Scheme) IsMonomorphic() bool {
	return len(s.Vars) == 0
}

// Instantiate replaces the quantified variables with fresh ones at the
// given level. Quantified ids never escape the scheme.
func (s *Scheme) Instantiate(level int) Type {
	if s.IsMonomorphic() {
		return s.Type
	}
	sub := make(Substitution, len(s.Vars))
	for _, id := range s.Vars {
		sub[id] = FreshVar(level)
	}
	return s.Type.Substitute(sub)
}

// FreeTypeVars returns the free variables of the scheme body minus the
// quantified set
func (s *Scheme) FreeTypeVars() map[int]*TVar {
	free := FreeTypeVars(s.Type)
	for _, id := range s.Vars {
		delete(free, id)
	}
	return free
}

func (s *Scheme) String() string {
	if s.IsMonomorphic() {
		return s.Type.String()
	}
	display := make(Substitution, len(s.Vars))
	names := make([]string, len(s.Vars))
	for i, id := range s.Vars {
		name := displayVarName(i)
		names[i] = name
		display[id] = &TCon{Name: name}
	}
	return fmt.Sprintf("∀%s. %s", strings.Join(names, " "), s.Type.Substitute(display))
}

// displayVarName maps quantifier positions to a, b, ..., z, then a1...
func displayVarName(i int) string {
	if i < 26 {
		return string(rune('a' + i))
	}
	return fmt.Sprintf("%c%d", 'a'+i%26, i/26)
}

// generalize closes over the free variables of t whose level exceeds
// the given level. Callers guarantee t is the type of a syntactic
// value; the value restriction lives at the call sites.
func generalize(level int, t Type) *Scheme {
	candidates := FreeTypeVarsAbove(t, level)
	if len(candidates) == 0 {
		return SchemeOf(t)
	}
	return &Scheme{Vars: sortedVarIDs(candidates), Type: t}
}
