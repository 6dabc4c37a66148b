package runtime

import (
	"errors"

	"github.com/sergev/tailisp/lang"
)

func installPrimitives(ev *lang.Evaluator) {
	env := ev.Global
	define := func(name string, fn lang.Primitive) {
		env.Define(name, lang.PrimitiveValue(fn))
	}

	define("+", arithmetic("+", func(a, b float64) (float64, error) { return a + b, nil }))
	define("-", arithmetic("-", func(a, b float64) (float64, error) { return a - b, nil }))
	define("*", arithmetic("*", func(a, b float64) (float64, error) { return a * b, nil }))
	define("/", arithmetic("/", func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, errors.New("division by zero")
		}
		return a / b, nil
	}))

	define("=", comparison("=", func(a, b float64) bool { return a == b }))
	define("<", comparison("<", func(a, b float64) bool { return a < b }))
	define(">", comparison(">", func(a, b float64) bool { return a > b }))
	define("<=", comparison("<=", func(a, b float64) bool { return a <= b }))
	define(">=", comparison(">=", func(a, b float64) bool { return a >= b }))

	define("not", primNot)

	define("number?", typePredicate("number?", lang.TypeNumber))
	define("symbol?", typePredicate("symbol?", lang.TypeSymbol))
	define("boolean?", typePredicate("boolean?", lang.TypeBool))
	define("pair?", typePredicate("pair?", lang.TypePair))
	define("null?", typePredicate("null?", lang.TypeEmpty))
	define("procedure?", primIsProcedure)

	define("cons", primCons)
	define("car", primCar)
	define("cdr", primCdr)
	define("list", primList)

	define("eq?", primEq)
	define("equal?", primEqual)
}

func checkArity(name string, args []lang.Value, want int) error {
	if len(args) != want {
		return &lang.ArityError{Name: name, Want: want, Got: len(args)}
	}
	return nil
}

func typeError(name, expected string, got lang.Value) error {
	return &lang.TypeError{Name: name, Expected: expected, Got: got}
}

func numberArgs(name string, args []lang.Value) (float64, float64, error) {
	if err := checkArity(name, args, 2); err != nil {
		return 0, 0, err
	}
	for _, arg := range args {
		if arg.Type != lang.TypeNumber {
			return 0, 0, typeError(name, "number", arg)
		}
	}
	return args[0].Num(), args[1].Num(), nil
}

func arithmetic(name string, op func(a, b float64) (float64, error)) lang.Primitive {
	return func(_ *lang.Evaluator, args []lang.Value) (lang.Value, error) {
		a, b, err := numberArgs(name, args)
		if err != nil {
			return lang.Value{}, err
		}
		result, err := op(a, b)
		if err != nil {
			return lang.Value{}, err
		}
		return lang.NumberValue(result), nil
	}
}

func comparison(name string, cmp func(a, b float64) bool) lang.Primitive {
	return func(_ *lang.Evaluator, args []lang.Value) (lang.Value, error) {
		a, b, err := numberArgs(name, args)
		if err != nil {
			return lang.Value{}, err
		}
		return lang.BoolValue(cmp(a, b)), nil
	}
}

func typePredicate(name string, typ lang.ValueType) lang.Primitive {
	return func(_ *lang.Evaluator, args []lang.Value) (lang.Value, error) {
		if err := checkArity(name, args, 1); err != nil {
			return lang.Value{}, err
		}
		return lang.BoolValue(args[0].Type == typ), nil
	}
}

func primNot(_ *lang.Evaluator, args []lang.Value) (lang.Value, error) {
	if err := checkArity("not", args, 1); err != nil {
		return lang.Value{}, err
	}
	return lang.BoolValue(!lang.IsTruthy(args[0])), nil
}

func primIsProcedure(_ *lang.Evaluator, args []lang.Value) (lang.Value, error) {
	if err := checkArity("procedure?", args, 1); err != nil {
		return lang.Value{}, err
	}
	return lang.BoolValue(args[0].IsProcedure()), nil
}

func primCons(_ *lang.Evaluator, args []lang.Value) (lang.Value, error) {
	if err := checkArity("cons", args, 2); err != nil {
		return lang.Value{}, err
	}
	return lang.PairValue(args[0], args[1]), nil
}

func primCar(_ *lang.Evaluator, args []lang.Value) (lang.Value, error) {
	if err := checkArity("car", args, 1); err != nil {
		return lang.Value{}, err
	}
	if args[0].Type != lang.TypePair {
		return lang.Value{}, typeError("car", "pair", args[0])
	}
	return args[0].Pair().Car, nil
}

func primCdr(_ *lang.Evaluator, args []lang.Value) (lang.Value, error) {
	if err := checkArity("cdr", args, 1); err != nil {
		return lang.Value{}, err
	}
	if args[0].Type != lang.TypePair {
		return lang.Value{}, typeError("cdr", "pair", args[0])
	}
	return args[0].Pair().Cdr, nil
}

func primList(_ *lang.Evaluator, args []lang.Value) (lang.Value, error) {
	return lang.List(args...), nil
}

func primEq(_ *lang.Evaluator, args []lang.Value) (lang.Value, error) {
	if err := checkArity("eq?", args, 2); err != nil {
		return lang.Value{}, err
	}
	return lang.BoolValue(lang.Identical(args[0], args[1])), nil
}

func primEqual(_ *lang.Evaluator, args []lang.Value) (lang.Value, error) {
	if err := checkArity("equal?", args, 2); err != nil {
		return lang.Value{}, err
	}
	return lang.BoolValue(lang.Equal(args[0], args[1])), nil
}
