package types

import (
	"fmt"

	"github.com/mbcrawfo/vibefun/internal/ast"
	"github.com/mbcrawfo/vibefun/internal/errors"
)

// Report constructors. The unifier produces reports without positions;
// reportAt lets callers attach the narrowest location they know.

func errUndefined(name string, pos ast.Pos) error {
	return errors.WrapReport(errors.New(errors.TC001, errors.PhaseTypecheck,
		fmt.Sprintf("undefined name: %s", name)).At(pos).With("name", name))
}

func errTypeMismatch(a, b Type) error {
	return errors.WrapReport(errors.New(errors.TC002, errors.PhaseTypecheck,
		fmt.Sprintf("cannot unify %s with %s", a, b)).
		With("left", a.String()).With("right", b.String()))
}

func errInfiniteType(v *TVar, t Type) error {
	return errors.WrapReport(errors.New(errors.TC003, errors.PhaseTypecheck,
		fmt.Sprintf("infinite type: %s occurs in %s", v, t)).
		With("var", v.String()).With("type", t.String()))
}

func errFunArity(want, got int) error {
	return errors.WrapReport(errors.New(errors.TC004, errors.PhaseTypecheck,
		fmt.Sprintf("function expects %d arguments but is used with %d", want, got)).
		With("want", want).With("got", got))
}

func errNonExhaustive(missing []string, pos ast.Pos) error {
	return errors.WrapReport(errors.New(errors.TC005, errors.PhaseTypecheck,
		fmt.Sprintf("non-exhaustive match, missing: %s", joinNames(missing))).
		At(pos).With("missing", missing))
}

func errPatternArity(ctor string, want, got int, pos ast.Pos) error {
	return errors.WrapReport(errors.New(errors.TC006, errors.PhaseTypecheck,
		fmt.Sprintf("constructor %s expects %d arguments but the pattern has %d", ctor, want, got)).
		At(pos).With("ctor", ctor).With("want", want).With("got", got))
}

func errCtorNotFound(ctor string, pos ast.Pos) error {
	return errors.WrapReport(errors.New(errors.TC007, errors.PhaseTypecheck,
		fmt.Sprintf("constructor not found: %s", ctor)).At(pos).With("ctor", ctor))
}

func errFieldNotFound(field string, record Type, pos ast.Pos) error {
	return errors.WrapReport(errors.New(errors.TC008, errors.PhaseTypecheck,
		fmt.Sprintf("record %s has no field %s", record, field)).
		At(pos).With("field", field).With("record", record.String()))
}

func errFieldOnNonRecord(field string, actual Type, pos ast.Pos) error {
	return errors.WrapReport(errors.New(errors.TC009, errors.PhaseTypecheck,
		fmt.Sprintf("cannot access field %s on non-record type %s", field, actual)).
		At(pos).With("field", field).With("type", actual.String()))
}

func errDuplicateBinding(name string, pos ast.Pos) error {
	return errors.WrapReport(errors.New(errors.TC010, errors.PhaseTypecheck,
		fmt.Sprintf("name %s is bound more than once in this pattern", name)).
		At(pos).With("name", name))
}

func errRecordPatternOnNonRecord(actual Type, pos ast.Pos) error {
	return errors.WrapReport(errors.New(errors.TC011, errors.PhaseTypecheck,
		fmt.Sprintf("record pattern cannot match non-record type %s", actual)).
		At(pos).With("type", actual.String()))
}

func errUnsupportedPattern(what string, pos ast.Pos) error {
	return errors.WrapReport(errors.New(errors.TC012, errors.PhaseTypecheck,
		fmt.Sprintf("unsupported pattern: %s", what)).At(pos))
}

func errAnnotationMismatch(annot, actual Type, pos ast.Pos) error {
	return errors.WrapReport(errors.New(errors.TC013, errors.PhaseTypecheck,
		fmt.Sprintf("expression of type %s does not match annotation %s", actual, annot)).
		At(pos).With("annotation", annot.String()).With("actual", actual.String()))
}

func errUnresolvedOverload(name string, pos ast.Pos) error {
	return errors.WrapReport(errors.New(errors.TC014, errors.PhaseTypecheck,
		fmt.Sprintf("overloaded name %s must be called directly", name)).
		At(pos).With("name", name))
}

// errInternal marks a checker invariant violation. These are bugs, not
// user diagnostics, and stay plain errors.
func errInternal(msg string, pos ast.Pos) error {
	return fmt.Errorf("%s: internal: %s", pos, msg)
}

// reportAt attaches pos to the report inside err if it has none
func reportAt(err error, pos ast.Pos) error {
	if rep, ok := errors.AsReport(err); ok && rep.Pos == nil {
		rep.At(pos)
	}
	return err
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
