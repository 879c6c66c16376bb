package types

import "sort"

// Unifier handles structural unification with occurs check and level
// lowering
type Unifier struct{}

// NewUnifier creates a new unifier
func NewUnifier() *Unifier {
	return &Unifier{}
}

// Unify attempts to unify two types under the given substitution,
// returning the updated substitution. The substitution is extended in
// place; on failure it is unspecified and the caller abandons the
// declaration.
func (u *Unifier) Unify(a, b Type, sub Substitution) (Substitution, error) {
	a = sub.Apply(a)
	b = sub.Apply(b)

	if a.Equals(b) {
		return sub, nil
	}

	switch a := a.(type) {
	case *TVar:
		return u.bind(a, b, sub)

	case *TCon:
		if bv, ok := b.(*TVar); ok {
			return u.bind(bv, a, sub)
		}
		// Equals already ruled out a matching TCon
		return nil, errTypeMismatch(a, b)

	case *TFunc:
		if bv, ok := b.(*TVar); ok {
			return u.bind(bv, a, sub)
		}
		bf, ok := b.(*TFunc)
		if !ok {
			return nil, errTypeMismatch(a, b)
		}
		if len(a.Params) != len(bf.Params) {
			return nil, errFunArity(len(a.Params), len(bf.Params))
		}
		var err error
		for i := range a.Params {
			sub, err = u.Unify(a.Params[i], bf.Params[i], sub)
			if err != nil {
				return nil, err
			}
		}
		return u.Unify(a.Return, bf.Return, sub)

	case *TApp:
		if bv, ok := b.(*TVar); ok {
			return u.bind(bv, a, sub)
		}
		ba, ok := b.(*TApp)
		if !ok || len(a.Args) != len(ba.Args) {
			return nil, errTypeMismatch(a, b)
		}
		sub, err := u.Unify(a.Con, ba.Con, sub)
		if err != nil {
			return nil, err
		}
		for i := range a.Args {
			sub, err = u.Unify(a.Args[i], ba.Args[i], sub)
			if err != nil {
				return nil, err
			}
		}
		return sub, nil

	case *TRecord:
		if bv, ok := b.(*TVar); ok {
			return u.bind(bv, a, sub)
		}
		br, ok := b.(*TRecord)
		if !ok || len(a.Fields) != len(br.Fields) {
			return nil, errTypeMismatch(a, b)
		}
		names := make([]string, 0, len(a.Fields))
		for name := range a.Fields {
			if _, ok := br.Fields[name]; !ok {
				return nil, errTypeMismatch(a, b)
			}
			names = append(names, name)
		}
		sort.Strings(names)
		var err error
		for _, name := range names {
			sub, err = u.Unify(a.Fields[name], br.Fields[name], sub)
			if err != nil {
				return nil, err
			}
		}
		return sub, nil

	case *TVariant:
		if bv, ok := b.(*TVar); ok {
			return u.bind(bv, a, sub)
		}
		bvr, ok := b.(*TVariant)
		if !ok || len(a.Ctors) != len(bvr.Ctors) {
			return nil, errTypeMismatch(a, b)
		}
		names := make([]string, 0, len(a.Ctors))
		for name, payload := range a.Ctors {
			opayload, ok := bvr.Ctors[name]
			if !ok || len(payload) != len(opayload) {
				return nil, errTypeMismatch(a, b)
			}
			names = append(names, name)
		}
		sort.Strings(names)
		var err error
		for _, name := range names {
			for i := range a.Ctors[name] {
				sub, err = u.Unify(a.Ctors[name][i], bvr.Ctors[name][i], sub)
				if err != nil {
					return nil, err
				}
			}
		}
		return sub, nil

	case *TUnion:
		if bv, ok := b.(*TVar); ok {
			return u.bind(bv, a, sub)
		}
		// Unions unify only when structurally equal, which Equals
		// already checked
		return nil, errTypeMismatch(a, b)

	default:
		return nil, errTypeMismatch(a, b)
	}
}

// bind records v -> t after the occurs check, lowering levels of every
// free variable in t that was born deeper than v. When both sides are
// variables the lower level wins as representative.
func (u *Unifier) bind(v *TVar, t Type, sub Substitution) (Substitution, error) {
	if tv, ok := t.(*TVar); ok {
		if tv.ID == v.ID {
			return sub, nil
		}
		if tv.Level < v.Level {
			sub[v.ID] = tv
		} else {
			sub[tv.ID] = v
		}
		return sub, nil
	}

	free := FreeTypeVars(t)
	if _, occurs := free[v.ID]; occurs {
		return nil, errInfiniteType(v, t)
	}
	for _, w := range free {
		if w.Level > v.Level {
			w.Level = v.Level
		}
	}
	sub[v.ID] = t
	return sub, nil
}
