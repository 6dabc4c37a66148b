package lang

import (
	"fmt"
	"reflect"
)

// ValueType enumerates the different runtime value categories.
type ValueType int

const (
	TypeEmpty ValueType = iota
	TypeBool
	TypeNumber
	TypeSymbol
	TypePair
	TypePrimitive
	TypeClosure
	TypeUnspecified
)

func (t ValueType) String() string {
	switch t {
	case TypeEmpty:
		return "empty list"
	case TypeBool:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeSymbol:
		return "symbol"
	case TypePair:
		return "pair"
	case TypePrimitive, TypeClosure:
		return "procedure"
	case TypeUnspecified:
		return "unspecified"
	default:
		return fmt.Sprintf("ValueType(%d)", int(t))
	}
}

// Value represents any runtime object in the interpreter.
type Value struct {
	Type    ValueType
	payload interface{}
}

// Pair represents a cons cell.
type Pair struct {
	Car Value
	Cdr Value
}

// Primitive represents a built-in Go function exposed to the interpreter.
type Primitive func(*Evaluator, []Value) (Value, error)

// Closure represents a user-defined procedure with lexical scope.
// Body is a single expression; Env is the frame active at the definition site.
type Closure struct {
	Params []string
	Body   Value
	Env    *Env
}

// EmptyList is the singleton empty list value.
var EmptyList = Value{Type: TypeEmpty}

// Unspecified is the result of forms evaluated only for effect, such as define.
var Unspecified = Value{Type: TypeUnspecified}

// BoolValue returns the boolean Value equivalent.
func BoolValue(b bool) Value {
	return Value{Type: TypeBool, payload: b}
}

// NumberValue constructs a numeric Value.
func NumberValue(f float64) Value {
	return Value{Type: TypeNumber, payload: f}
}

// SymbolValue constructs a symbol Value.
func SymbolValue(s string) Value {
	return Value{Type: TypeSymbol, payload: s}
}

// PairValue constructs a pair Value.
func PairValue(car, cdr Value) Value {
	return Value{
		Type:    TypePair,
		payload: &Pair{Car: car, Cdr: cdr},
	}
}

// List constructs a proper list from provided values.
func List(vals ...Value) Value {
	result := EmptyList
	for i := len(vals) - 1; i >= 0; i-- {
		result = PairValue(vals[i], result)
	}
	return result
}

// ToSlice converts a proper list into a Go slice.
func ToSlice(list Value) ([]Value, error) {
	var out []Value
	cur := list
	for cur.Type != TypeEmpty {
		p := cur.Pair()
		if cur.Type != TypePair || p == nil {
			return nil, fmt.Errorf("expected proper list, got %s", list)
		}
		out = append(out, p.Car)
		cur = p.Cdr
	}
	return out, nil
}

// PrimitiveValue wraps the primitive function.
func PrimitiveValue(fn Primitive) Value {
	return Value{
		Type:    TypePrimitive,
		payload: fn,
	}
}

// ClosureValue wraps a closure.
func ClosureValue(params []string, body Value, env *Env) Value {
	return Value{
		Type:    TypeClosure,
		payload: &Closure{Params: params, Body: body, Env: env},
	}
}

func (v Value) Bool() bool {
	if b, ok := v.payload.(bool); ok {
		return b
	}
	return false
}

func (v Value) Num() float64 {
	if f, ok := v.payload.(float64); ok {
		return f
	}
	return 0
}

func (v Value) Sym() string {
	if s, ok := v.payload.(string); ok {
		return s
	}
	return ""
}

func (v Value) Pair() *Pair {
	if p, ok := v.payload.(*Pair); ok {
		return p
	}
	return nil
}

func (v Value) Primitive() Primitive {
	if p, ok := v.payload.(Primitive); ok {
		return p
	}
	return nil
}

func (v Value) Closure() *Closure {
	if c, ok := v.payload.(*Closure); ok {
		return c
	}
	return nil
}

// IsProcedure reports whether v can be applied.
func (v Value) IsProcedure() bool {
	return v.Type == TypePrimitive || v.Type == TypeClosure
}

func (v Value) String() string {
	return Print(v)
}

// IsTruthy reports whether a value counts as true.
// Only #f is false; the empty list and zero are true.
func IsTruthy(v Value) bool {
	return !(v.Type == TypeBool && !v.Bool())
}

// Equal reports structural equality. Procedures compare by identity.
// Pairs are walked with an explicit stack, so deep nesting is safe.
func Equal(a, b Value) bool {
	stack := [][2]Value{{a, b}}
	for len(stack) > 0 {
		x, y := stack[len(stack)-1][0], stack[len(stack)-1][1]
		stack = stack[:len(stack)-1]
		if x.Type != y.Type {
			return false
		}
		if x.Type != TypePair {
			if !equalAtom(x, y) {
				return false
			}
			continue
		}
		xp, yp := x.Pair(), y.Pair()
		if xp == yp {
			continue
		}
		if xp == nil || yp == nil {
			return false
		}
		stack = append(stack, [2]Value{xp.Cdr, yp.Cdr}, [2]Value{xp.Car, yp.Car})
	}
	return true
}

func equalAtom(a, b Value) bool {
	switch a.Type {
	case TypeEmpty, TypeUnspecified:
		return true
	case TypeBool:
		return a.Bool() == b.Bool()
	case TypeNumber:
		return a.Num() == b.Num()
	case TypeSymbol:
		return a.Sym() == b.Sym()
	case TypePrimitive, TypeClosure:
		return Identical(a, b)
	default:
		return false
	}
}

// Identical reports whether a and b are the same object: atoms by value,
// pairs and procedures by reference.
func Identical(a, b Value) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case TypePair:
		return a.Pair() == b.Pair()
	case TypeClosure:
		return a.Closure() == b.Closure()
	case TypePrimitive:
		ap, bp := a.Primitive(), b.Primitive()
		if ap == nil || bp == nil {
			return ap == nil && bp == nil
		}
		return reflect.ValueOf(ap).Pointer() == reflect.ValueOf(bp).Pointer()
	default:
		return equalAtom(a, b)
	}
}
