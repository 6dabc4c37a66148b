package lang

// DefaultMaxDepth bounds nested non-tail evaluations.
const DefaultMaxDepth = 10000

// Evaluator executes Scheme-like programs.
//
// Expressions in tail position (the branches of if, the chosen cond
// clause, the last expression of begin, a let or closure body) are not
// evaluated recursively: the step function hands them back as a thunk and
// the run loop picks them up, so tail calls use constant Go stack. Every other subexpression is
// evaluated by a nested run and counts against MaxDepth.
type Evaluator struct {
	Global   *Env
	MaxDepth int

	depth     int
	peakDepth int
}

// NewEvaluator constructs an evaluator rooted at a new global environment.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		Global:   NewEnv(nil),
		MaxDepth: DefaultMaxDepth,
	}
}

// thunk is a pending tail evaluation of expr in env.
type thunk struct {
	expr Value
	env  *Env
}

// Eval evaluates a single expression within the provided environment.
// A nil env means the global environment.
func (ev *Evaluator) Eval(expr Value, env *Env) (Value, error) {
	if env == nil {
		env = ev.Global
	}
	return ev.run(&thunk{expr: expr, env: env})
}

// EvalAll evaluates a sequence of expressions, returning the last value.
// Evaluation stops at the first error; earlier side effects are kept.
func (ev *Evaluator) EvalAll(exprs []Value, env *Env) (Value, error) {
	result := Unspecified
	for _, expr := range exprs {
		val, err := ev.Eval(expr, env)
		if err != nil {
			return Value{}, err
		}
		result = val
	}
	return result, nil
}

// Apply invokes a procedure with already evaluated arguments.
func (ev *Evaluator) Apply(proc Value, args []Value) (Value, error) {
	val, next, err := ev.apply("", proc, args)
	if err != nil {
		return Value{}, err
	}
	if next == nil {
		return val, nil
	}
	return ev.run(next)
}

// run is the trampoline: it steps until no tail evaluation is pending.
func (ev *Evaluator) run(next *thunk) (Value, error) {
	if ev.MaxDepth > 0 && ev.depth >= ev.MaxDepth {
		return Value{}, ErrRecursionDepth
	}
	ev.depth++
	if ev.depth > ev.peakDepth {
		ev.peakDepth = ev.depth
	}
	defer func() { ev.depth-- }()

	for {
		val, tail, err := ev.step(next.expr, next.env)
		if err != nil {
			return Value{}, err
		}
		if tail == nil {
			return val, nil
		}
		next = tail
	}
}

// step performs one reduction of expr. It returns either a final value
// or a thunk for the expression in tail position.
func (ev *Evaluator) step(expr Value, env *Env) (Value, *thunk, error) {
	switch expr.Type {
	case TypeSymbol:
		val, err := env.Lookup(expr.Sym())
		return val, nil, err
	case TypePair:
		return ev.stepPair(expr.Pair(), env)
	default:
		return expr, nil, nil
	}
}

func (ev *Evaluator) stepPair(pair *Pair, env *Env) (Value, *thunk, error) {
	head := pair.Car
	if head.Type == TypeSymbol {
		switch head.Sym() {
		case "quote":
			return ev.evalQuote(pair.Cdr)
		case "if":
			return ev.evalIf(pair.Cdr, env)
		case "begin":
			return ev.evalBegin(pair.Cdr, env)
		case "lambda":
			return ev.evalLambda(pair.Cdr, env)
		case "define":
			return ev.evalDefine(pair.Cdr, env)
		case "let":
			return ev.evalLet(pair.Cdr, env)
		case "cond":
			return ev.evalCond(pair.Cdr, env)
		}
	}

	operator, err := ev.Eval(head, env)
	if err != nil {
		return Value{}, nil, err
	}
	argExprs, err := ToSlice(pair.Cdr)
	if err != nil {
		return Value{}, nil, syntaxError("application", "malformed argument list")
	}
	args := make([]Value, len(argExprs))
	for i, argExpr := range argExprs {
		val, err := ev.Eval(argExpr, env)
		if err != nil {
			return Value{}, nil, err
		}
		args[i] = val
	}
	var name string
	if head.Type == TypeSymbol {
		name = head.Sym()
	}
	return ev.apply(name, operator, args)
}

func (ev *Evaluator) evalQuote(args Value) (Value, *thunk, error) {
	exprs, err := ToSlice(args)
	if err != nil || len(exprs) != 1 {
		return Value{}, nil, syntaxError("quote", "expects 1 argument")
	}
	return exprs[0], nil, nil
}

func (ev *Evaluator) evalIf(args Value, env *Env) (Value, *thunk, error) {
	parts, err := ToSlice(args)
	if err != nil || len(parts) < 2 || len(parts) > 3 {
		return Value{}, nil, syntaxError("if", "expects 2 or 3 arguments")
	}
	cond, err := ev.Eval(parts[0], env)
	if err != nil {
		return Value{}, nil, err
	}
	if IsTruthy(cond) {
		return Value{}, &thunk{expr: parts[1], env: env}, nil
	}
	if len(parts) == 3 {
		return Value{}, &thunk{expr: parts[2], env: env}, nil
	}
	return Unspecified, nil, nil
}

func (ev *Evaluator) evalBegin(args Value, env *Env) (Value, *thunk, error) {
	exprs, err := ToSlice(args)
	if err != nil {
		return Value{}, nil, syntaxError("begin", "malformed body")
	}
	if len(exprs) == 0 {
		return Unspecified, nil, nil
	}
	last := len(exprs) - 1
	for _, expr := range exprs[:last] {
		if _, err := ev.Eval(expr, env); err != nil {
			return Value{}, nil, err
		}
	}
	return Value{}, &thunk{expr: exprs[last], env: env}, nil
}

func (ev *Evaluator) evalLambda(args Value, env *Env) (Value, *thunk, error) {
	parts, err := ToSlice(args)
	if err != nil || len(parts) < 2 {
		return Value{}, nil, syntaxError("lambda", "expects parameters and body")
	}
	params, err := parseParams("lambda", parts[0])
	if err != nil {
		return Value{}, nil, err
	}
	return ClosureValue(params, bodyExpr(parts[1:]), env), nil, nil
}

func (ev *Evaluator) evalDefine(args Value, env *Env) (Value, *thunk, error) {
	parts, err := ToSlice(args)
	if err != nil || len(parts) < 2 {
		return Value{}, nil, syntaxError("define", "expects a name and value")
	}
	target := parts[0]

	switch target.Type {
	case TypeSymbol:
		if len(parts) != 2 {
			return Value{}, nil, syntaxError("define", "expects a single value expression")
		}
		val, err := ev.Eval(parts[1], env)
		if err != nil {
			return Value{}, nil, err
		}
		env.Define(target.Sym(), val)
		return Unspecified, nil, nil
	case TypePair:
		// (define (name params...) body...)
		head := target.Pair()
		if head.Car.Type != TypeSymbol {
			return Value{}, nil, syntaxError("define", "procedure name must be a symbol")
		}
		params, err := parseParams("define", head.Cdr)
		if err != nil {
			return Value{}, nil, err
		}
		env.Define(head.Car.Sym(), ClosureValue(params, bodyExpr(parts[1:]), env))
		return Unspecified, nil, nil
	default:
		return Value{}, nil, syntaxError("define", "invalid target %s", target)
	}
}

// evalLet treats (let ((name init) ...) body...) as
// ((lambda (name ...) body...) init ...), keeping the body in tail position.
func (ev *Evaluator) evalLet(args Value, env *Env) (Value, *thunk, error) {
	parts, err := ToSlice(args)
	if err != nil || len(parts) < 2 {
		return Value{}, nil, syntaxError("let", "expects bindings and body")
	}
	bindings, err := ToSlice(parts[0])
	if err != nil {
		return Value{}, nil, syntaxError("let", "invalid binding list")
	}
	names := make([]Value, len(bindings))
	inits := make([]Value, len(bindings))
	for i, binding := range bindings {
		items, err := ToSlice(binding)
		if err != nil || len(items) != 2 {
			return Value{}, nil, syntaxError("let", "binding must be (name value), got %s", binding)
		}
		names[i], inits[i] = items[0], items[1]
	}
	params, err := parseParams("let", List(names...))
	if err != nil {
		return Value{}, nil, err
	}
	vals := make([]Value, len(inits))
	for i, init := range inits {
		val, err := ev.Eval(init, env)
		if err != nil {
			return Value{}, nil, err
		}
		vals[i] = val
	}
	return ev.apply("let", ClosureValue(params, bodyExpr(parts[1:]), env), vals)
}

// evalCond tries each (test body...) clause in order. The chosen body is
// in tail position; a clause without a body yields its test value.
func (ev *Evaluator) evalCond(args Value, env *Env) (Value, *thunk, error) {
	clauses, err := ToSlice(args)
	if err != nil {
		return Value{}, nil, syntaxError("cond", "expects a list of clauses")
	}
	for i, clause := range clauses {
		items, err := ToSlice(clause)
		if err != nil || len(items) == 0 {
			return Value{}, nil, syntaxError("cond", "clause must be a non-empty list, got %s", clause)
		}
		test, body := items[0], items[1:]
		if test.Type == TypeSymbol && test.Sym() == "else" {
			if i != len(clauses)-1 {
				return Value{}, nil, syntaxError("cond", "else clause must be last")
			}
			if len(body) == 0 {
				return Value{}, nil, syntaxError("cond", "else clause needs a body")
			}
			return Value{}, &thunk{expr: bodyExpr(body), env: env}, nil
		}
		val, err := ev.Eval(test, env)
		if err != nil {
			return Value{}, nil, err
		}
		if !IsTruthy(val) {
			continue
		}
		if len(body) == 0 {
			return val, nil, nil
		}
		return Value{}, &thunk{expr: bodyExpr(body), env: env}, nil
	}
	return Unspecified, nil, nil
}

// apply invokes proc; name is the operator as written, for error messages.
// A closure body is returned as a thunk so that the call itself is in tail
// position with respect to its caller.
func (ev *Evaluator) apply(name string, proc Value, args []Value) (Value, *thunk, error) {
	switch proc.Type {
	case TypePrimitive:
		fn := proc.Primitive()
		if fn == nil {
			return Value{}, nil, &NotAProcedureError{Operator: proc}
		}
		val, err := fn(ev, args)
		if err != nil {
			return Value{}, nil, err
		}
		return val, nil, nil
	case TypeClosure:
		closure := proc.Closure()
		if closure == nil {
			return Value{}, nil, &NotAProcedureError{Operator: proc}
		}
		if len(args) != len(closure.Params) {
			return Value{}, nil, &ArityError{Name: name, Want: len(closure.Params), Got: len(args)}
		}
		frame := NewEnv(closure.Env)
		for i, name := range closure.Params {
			frame.Define(name, args[i])
		}
		return Value{}, &thunk{expr: closure.Body, env: frame}, nil
	default:
		return Value{}, nil, &NotAProcedureError{Operator: proc}
	}
}

func parseParams(form string, val Value) ([]string, error) {
	items, err := ToSlice(val)
	if err != nil {
		return nil, syntaxError(form, "invalid parameter list")
	}
	params := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item.Type != TypeSymbol {
			return nil, syntaxError(form, "parameter must be a symbol, got %s", item)
		}
		name := item.Sym()
		if seen[name] {
			return nil, syntaxError(form, "duplicate parameter %s", name)
		}
		seen[name] = true
		params = append(params, name)
	}
	return params, nil
}

// bodyExpr folds several body expressions into a single begin form.
func bodyExpr(body []Value) Value {
	if len(body) == 1 {
		return body[0]
	}
	return PairValue(SymbolValue("begin"), List(body...))
}
