package interp

import (
	"math"

	"rill/internal/ast"
	"rill/internal/token"
	"rill/internal/types"
)

// ExecStmts executes a statement list against the environment.
// Execution stops at the first runtime fault; mutations applied before the
// fault are retained.
func ExecStmts(env *Env, stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := execStmt(env, stmt); err != nil {
			return err
		}
	}
	return nil
}

// execStmt executes a single statement.
func execStmt(env *Env, stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		_, err := EvalExpr(env, s.Expr)
		return err

	case *ast.AssignStmt:
		return execAssign(env, s)

	case *ast.BlockStmt:
		return ExecStmts(env, s.Stmts)

	case *ast.IfStmt:
		cond, err := EvalExpr(env, s.Cond)
		if err != nil {
			return err
		}
		if cond.AsBool() {
			return execStmt(env, s.Then)
		}
		if s.Else != nil {
			return execStmt(env, s.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := EvalExpr(env, s.Cond)
			if err != nil {
				return err
			}
			if !cond.AsBool() {
				return nil
			}
			if err := execStmt(env, s.Body); err != nil {
				return err
			}
		}

	case *ast.ForInStmt:
		seq, err := EvalExpr(env, s.Seq)
		if err != nil {
			return err
		}
		switch seq.Kind() {
		case types.KindList:
			for _, elem := range seq.List() {
				env.Set(s.Var.Name, elem)
				if err := execStmt(env, s.Body); err != nil {
					return err
				}
			}
			return nil
		case types.KindStr:
			for _, ch := range seq.Str() {
				env.Set(s.Var.Name, types.Str(string(ch)))
				if err := execStmt(env, s.Body); err != nil {
					return err
				}
			}
			return nil
		default:
			return errf(s.Seq.Pos(), "cannot iterate over %s", seq.Kind())
		}

	default:
		return errf(stmt.Pos(), "unsupported statement")
	}
}

// execAssign executes an assignment or augmented assignment.
func execAssign(env *Env, s *ast.AssignStmt) error {
	value, err := EvalExpr(env, s.Value)
	if err != nil {
		return err
	}

	// Augmented assignment reads the current target value first.
	if s.Op != token.ASSIGN {
		current, err := EvalExpr(env, s.Target)
		if err != nil {
			return err
		}
		value, err = binaryOp(augmentedOp(s.Op), current, value, s.Pos())
		if err != nil {
			return err
		}
	}

	switch target := s.Target.(type) {
	case *ast.Ident:
		env.Set(target.Name, value)
		return nil

	case *ast.IndexExpr:
		recv, err := EvalExpr(env, target.Recv)
		if err != nil {
			return err
		}
		if !recv.IsList() {
			return errf(target.Pos(), "cannot assign into %s", recv.Kind())
		}
		idx, err := listIndex(env, target, recv)
		if err != nil {
			return err
		}
		// Element stores write through the shared backing array, so every
		// binding holding this list observes the update.
		recv.List()[idx] = value
		return nil

	default:
		return errf(s.Pos(), "invalid assignment target")
	}
}

// augmentedOp maps an augmented assignment operator to its binary operator.
func augmentedOp(op token.Token) token.Token {
	switch op {
	case token.ADD_ASSIGN:
		return token.ADD
	case token.SUB_ASSIGN:
		return token.SUB
	case token.MUL_ASSIGN:
		return token.MUL
	case token.DIV_ASSIGN:
		return token.DIV
	default: // MOD_ASSIGN
		return token.MOD
	}
}

// EvalExpr evaluates an expression against the environment.
func EvalExpr(env *Env, expr ast.Expr) (types.Value, error) {
	switch e := expr.(type) {
	case *ast.NumLit:
		return types.Num(e.Value), nil

	case *ast.StrLit:
		return types.Str(e.Value), nil

	case *ast.BoolLit:
		return types.Bool(e.Value), nil

	case *ast.NilLit:
		return types.Null(), nil

	case *ast.ListLit:
		elems := make([]types.Value, len(e.Elems))
		for i, elemExpr := range e.Elems {
			elem, err := EvalExpr(env, elemExpr)
			if err != nil {
				return types.Null(), err
			}
			elems[i] = elem
		}
		return types.List(elems), nil

	case *ast.Ident:
		v, ok := env.Get(e.Name)
		if !ok {
			return types.Null(), errf(e.Pos(), "undefined name %q", e.Name)
		}
		return v, nil

	case *ast.DotExpr:
		recv, err := EvalExpr(env, e.Recv)
		if err != nil {
			return types.Null(), err
		}
		member, ok := recv.Member(e.Name)
		if !ok {
			if recv.Kind() != types.KindMod {
				return types.Null(), errf(e.Pos(), "%s has no members", recv.Kind())
			}
			return types.Null(), errf(e.Pos(), "module has no member %q", e.Name)
		}
		return member, nil

	case *ast.IndexExpr:
		return evalIndex(env, e)

	case *ast.GroupExpr:
		return EvalExpr(env, e.Expr)

	case *ast.UnaryExpr:
		operand, err := EvalExpr(env, e.Expr)
		if err != nil {
			return types.Null(), err
		}
		switch e.Op {
		case token.SUB:
			if !operand.IsNum() {
				return types.Null(), errf(e.Pos(), "cannot negate %s", operand.Kind())
			}
			return types.Num(-operand.Num()), nil
		default: // NOT
			return types.Bool(!operand.AsBool()), nil
		}

	case *ast.BinaryExpr:
		return evalBinary(env, e)

	case *ast.TernaryExpr:
		cond, err := EvalExpr(env, e.Cond)
		if err != nil {
			return types.Null(), err
		}
		if cond.AsBool() {
			return EvalExpr(env, e.Then)
		}
		return EvalExpr(env, e.Else)

	case *ast.CallExpr:
		return evalCall(env, e)

	default:
		return types.Null(), errf(expr.Pos(), "unsupported expression")
	}
}

// evalBinary evaluates a binary expression.
// && and || short-circuit and return the deciding operand's value.
func evalBinary(env *Env, e *ast.BinaryExpr) (types.Value, error) {
	if e.Op == token.AND || e.Op == token.OR {
		left, err := EvalExpr(env, e.Left)
		if err != nil {
			return types.Null(), err
		}
		if e.Op == token.AND && !left.AsBool() {
			return left, nil
		}
		if e.Op == token.OR && left.AsBool() {
			return left, nil
		}
		return EvalExpr(env, e.Right)
	}

	left, err := EvalExpr(env, e.Left)
	if err != nil {
		return types.Null(), err
	}
	right, err := EvalExpr(env, e.Right)
	if err != nil {
		return types.Null(), err
	}
	return binaryOp(e.Op, left, right, e.Pos())
}

// binaryOp applies a non-short-circuit binary operator to two values.
func binaryOp(op token.Token, left, right types.Value, pos token.Position) (types.Value, error) {
	switch op {
	case token.ADD:
		switch {
		case left.IsNum() && right.IsNum():
			return types.Num(left.Num() + right.Num()), nil
		case left.IsStr() && right.IsStr():
			return types.Str(left.Str() + right.Str()), nil
		case left.IsList() && right.IsList():
			joined := make([]types.Value, 0, len(left.List())+len(right.List()))
			joined = append(joined, left.List()...)
			joined = append(joined, right.List()...)
			return types.List(joined), nil
		default:
			return types.Null(), errf(pos, "cannot add %s and %s", left.Kind(), right.Kind())
		}

	case token.SUB, token.MUL, token.DIV, token.MOD:
		if !left.IsNum() || !right.IsNum() {
			return types.Null(), errf(pos, "cannot apply %s to %s and %s",
				opName(op), left.Kind(), right.Kind())
		}
		a, b := left.Num(), right.Num()
		switch op {
		case token.SUB:
			return types.Num(a - b), nil
		case token.MUL:
			return types.Num(a * b), nil
		case token.DIV:
			if b == 0 {
				return types.Null(), errf(pos, "division by zero")
			}
			return types.Num(a / b), nil
		default: // MOD
			if b == 0 {
				return types.Null(), errf(pos, "modulo by zero")
			}
			return types.Num(math.Mod(a, b)), nil
		}

	case token.EQUALS:
		return types.Bool(types.Equal(left, right)), nil
	case token.NOT_EQUALS:
		return types.Bool(!types.Equal(left, right)), nil

	case token.LESS, token.LTE, token.GREATER, token.GTE:
		c, err := types.Compare(left, right)
		if err != nil {
			return types.Null(), errf(pos, "%s", err)
		}
		switch op {
		case token.LESS:
			return types.Bool(c < 0), nil
		case token.LTE:
			return types.Bool(c <= 0), nil
		case token.GREATER:
			return types.Bool(c > 0), nil
		default: // GTE
			return types.Bool(c >= 0), nil
		}

	default:
		return types.Null(), errf(pos, "unsupported operator")
	}
}

// opName returns the display name of an arithmetic operator.
func opName(op token.Token) string {
	switch op {
	case token.SUB:
		return "-"
	case token.MUL:
		return "*"
	case token.DIV:
		return "/"
	default:
		return "%"
	}
}

// evalIndex evaluates a subscript expression on a list or string.
func evalIndex(env *Env, e *ast.IndexExpr) (types.Value, error) {
	recv, err := EvalExpr(env, e.Recv)
	if err != nil {
		return types.Null(), err
	}

	switch recv.Kind() {
	case types.KindList:
		idx, err := listIndex(env, e, recv)
		if err != nil {
			return types.Null(), err
		}
		return recv.List()[idx], nil

	case types.KindStr:
		idxVal, err := EvalExpr(env, e.Index)
		if err != nil {
			return types.Null(), err
		}
		idx, err := intIndex(idxVal, len(recv.Str()), e.Index.Pos())
		if err != nil {
			return types.Null(), err
		}
		return types.Str(recv.Str()[idx : idx+1]), nil

	default:
		return types.Null(), errf(e.Pos(), "cannot index %s", recv.Kind())
	}
}

// listIndex evaluates the index expression of e and normalizes it against the
// receiver list's length.
func listIndex(env *Env, e *ast.IndexExpr, recv types.Value) (int, error) {
	idxVal, err := EvalExpr(env, e.Index)
	if err != nil {
		return 0, err
	}
	return intIndex(idxVal, len(recv.List()), e.Index.Pos())
}

// intIndex converts an index value to a valid 0-based offset.
// Negative indexes count from the end.
func intIndex(v types.Value, length int, pos token.Position) (int, error) {
	if !v.IsNum() {
		return 0, errf(pos, "index must be a number, got %s", v.Kind())
	}
	n := v.Num()
	if n != math.Trunc(n) {
		return 0, errf(pos, "index must be an integer")
	}
	idx := int(n)
	if idx < 0 {
		idx += length
	}
	if idx < 0 || idx >= length {
		return 0, errf(pos, "index %s out of range", types.FormatNum(n))
	}
	return idx, nil
}

// evalCall evaluates a call to a bound callable.
func evalCall(env *Env, e *ast.CallExpr) (types.Value, error) {
	fn, err := EvalExpr(env, e.Fn)
	if err != nil {
		return types.Null(), err
	}
	if fn.Kind() != types.KindFunc {
		return types.Null(), errf(e.Pos(), "%s is not callable", fn.Kind())
	}

	args := make([]types.Value, len(e.Args))
	for i, argExpr := range e.Args {
		arg, err := EvalExpr(env, argExpr)
		if err != nil {
			return types.Null(), err
		}
		args[i] = arg
	}

	result, err := fn.Func()(args)
	if err != nil {
		return types.Null(), errf(e.Pos(), "%s", err)
	}
	return result, nil
}
