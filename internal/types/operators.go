package types

import (
	"github.com/mbcrawfo/vibefun/internal/core"
)

// inferBinOp types a binary operation. Operator typings are fixed per
// operator; equality alone is polymorphic. Division carries a lowering
// hook: once both operands are confirmed Int, the node's tag is
// rewritten from OpDiv to OpIntDiv in the returned tree.
func (tc *CoreTypeChecker) inferBinOp(ctx *InferCtx, e *core.BinOp) (Type, error) {
	intT := &TCon{Name: IntName}
	floatT := &TCon{Name: FloatName}
	boolT := &TCon{Name: BoolName}
	stringT := &TCon{Name: StringName}
	unitT := &TCon{Name: UnitName}

	operands := func(want Type) error {
		left, err := tc.inferExpr(ctx, e.Left)
		if err != nil {
			return err
		}
		if err := tc.unify(ctx, left, want, e.Left.Pos()); err != nil {
			return err
		}
		right, err := tc.inferExpr(ctx, e.Right)
		if err != nil {
			return err
		}
		return tc.unify(ctx, right, want, e.Right.Pos())
	}

	switch e.Op {
	case core.OpAdd, core.OpSub, core.OpMul, core.OpMod, core.OpIntDiv:
		if err := operands(intT); err != nil {
			return nil, err
		}
		return intT, nil

	case core.OpDiv:
		if err := operands(intT); err != nil {
			return nil, err
		}
		e.Op = core.OpIntDiv
		return intT, nil

	case core.OpFloatDiv:
		if err := operands(floatT); err != nil {
			return nil, err
		}
		return floatT, nil

	case core.OpLt, core.OpLe, core.OpGt, core.OpGe:
		if err := operands(intT); err != nil {
			return nil, err
		}
		return boolT, nil

	case core.OpEq, core.OpNe:
		t := FreshVar(ctx.Level)
		left, err := tc.inferExpr(ctx, e.Left)
		if err != nil {
			return nil, err
		}
		if err := tc.unify(ctx, t, left, e.Left.Pos()); err != nil {
			return nil, err
		}
		right, err := tc.inferExpr(ctx, e.Right)
		if err != nil {
			return nil, err
		}
		if err := tc.unify(ctx, t, right, e.Right.Pos()); err != nil {
			return nil, err
		}
		return boolT, nil

	case core.OpAnd, core.OpOr:
		if err := operands(boolT); err != nil {
			return nil, err
		}
		return boolT, nil

	case core.OpConcat:
		if err := operands(stringT); err != nil {
			return nil, err
		}
		return stringT, nil

	case core.OpAssign:
		left, err := tc.inferExpr(ctx, e.Left)
		if err != nil {
			return nil, err
		}
		elem := FreshVar(ctx.Level)
		refT := &TApp{Con: &TCon{Name: RefName}, Args: []Type{elem}}
		if err := tc.unify(ctx, left, refT, e.Left.Pos()); err != nil {
			return nil, err
		}
		right, err := tc.inferExpr(ctx, e.Right)
		if err != nil {
			return nil, err
		}
		if err := tc.unify(ctx, right, ctx.Sub.Apply(elem), e.Right.Pos()); err != nil {
			return nil, err
		}
		return unitT, nil

	default:
		return nil, errInternal("unknown binary operator", e.Pos())
	}
}

// inferUnOp types a unary operation
func (tc *CoreTypeChecker) inferUnOp(ctx *InferCtx, e *core.UnOp) (Type, error) {
	switch e.Op {
	case core.OpNeg:
		intT := &TCon{Name: IntName}
		t, err := tc.inferExpr(ctx, e.Operand)
		if err != nil {
			return nil, err
		}
		if err := tc.unify(ctx, t, intT, e.Operand.Pos()); err != nil {
			return nil, err
		}
		return intT, nil

	case core.OpNot:
		boolT := &TCon{Name: BoolName}
		t, err := tc.inferExpr(ctx, e.Operand)
		if err != nil {
			return nil, err
		}
		if err := tc.unify(ctx, t, boolT, e.Operand.Pos()); err != nil {
			return nil, err
		}
		return boolT, nil

	case core.OpDeref:
		t, err := tc.inferExpr(ctx, e.Operand)
		if err != nil {
			return nil, err
		}
		elem := FreshVar(ctx.Level)
		refT := &TApp{Con: &TCon{Name: RefName}, Args: []Type{elem}}
		if err := tc.unify(ctx, t, refT, e.Operand.Pos()); err != nil {
			return nil, err
		}
		return ctx.Sub.Apply(elem), nil

	default:
		return nil, errInternal("unknown unary operator", e.Pos())
	}
}
