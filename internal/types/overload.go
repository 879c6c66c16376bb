package types

import (
	"fmt"

	"github.com/mbcrawfo/vibefun/internal/ast"
	"github.com/mbcrawfo/vibefun/internal/errors"
)

// Resolution is the outcome of overload resolution. Exactly one of
// Binding (a plain value or single external) or Entry (the selected
// overload) is set.
type Resolution struct {
	Binding Binding
	Entry   *OverloadEntry
	Index   int
	JSName  string
	From    string
}

// ResolveOverload resolves a called name by argument count. Resolution
// is purely structural: argument types play no part, only arity.
func ResolveOverload(env *TypeEnv, name string, argc int, pos ast.Pos) (*Resolution, error) {
	binding, ok := env.Lookup(name)
	if !ok {
		return nil, errors.WrapReport(errors.New(errors.OVL001, errors.PhaseTypecheck,
			fmt.Sprintf("undefined name: %s", name)).At(pos).With("name", name))
	}

	overload, ok := binding.(*ExternalOverloadBinding)
	if !ok {
		return &Resolution{Binding: binding}, nil
	}

	var matches []int
	for i := range overload.Overloads {
		if overload.Overloads[i].Arity() == argc {
			matches = append(matches, i)
		}
	}

	switch len(matches) {
	case 0:
		return nil, errors.WrapReport(errors.New(errors.OVL002, errors.PhaseTypecheck,
			fmt.Sprintf("no overload of %s takes %d arguments", name, argc)).
			At(pos).With("name", name).With("argc", argc))
	case 1:
		i := matches[0]
		return &Resolution{
			Entry:  &overload.Overloads[i],
			Index:  i,
			JSName: overload.JSName,
			From:   overload.From,
		}, nil
	default:
		return nil, errors.WrapReport(errors.New(errors.OVL003, errors.PhaseTypecheck,
			fmt.Sprintf("ambiguous call: %d overloads of %s take %d arguments", len(matches), name, argc)).
			At(pos).With("name", name).With("argc", argc))
	}
}
