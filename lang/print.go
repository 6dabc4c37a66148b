package lang

import (
	"math"
	"strconv"
	"strings"
)

// Print renders v as source-like text. Proper lists of printable atoms
// read back to an equal value. Nesting depth is limited only by memory.
func Print(v Value) string {
	var sb strings.Builder
	writeValue(&sb, v)
	return sb.String()
}

// printItem is either literal text or a value still to be rendered.
type printItem struct {
	text  string
	val   Value
	isVal bool
}

func writeValue(sb *strings.Builder, v Value) {
	stack := []printItem{{val: v, isVal: true}}
	var items []printItem
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !item.isVal {
			sb.WriteString(item.text)
			continue
		}
		if item.val.Type != TypePair {
			writeAtom(sb, item.val)
			continue
		}
		items = expandPair(items[:0], item.val)
		for i := len(items) - 1; i >= 0; i-- {
			stack = append(stack, items[i])
		}
	}
}

// expandPair lays out one list level: its elements, separators and tail.
func expandPair(items []printItem, v Value) []printItem {
	items = append(items, printItem{text: "("})
	cur := v
	for {
		p := cur.Pair()
		items = append(items, printItem{val: p.Car, isVal: true})
		switch p.Cdr.Type {
		case TypeEmpty:
			return append(items, printItem{text: ")"})
		case TypePair:
			items = append(items, printItem{text: " "})
			cur = p.Cdr
		default:
			return append(items,
				printItem{text: " . "},
				printItem{val: p.Cdr, isVal: true},
				printItem{text: ")"})
		}
	}
}

func writeAtom(sb *strings.Builder, v Value) {
	switch v.Type {
	case TypeEmpty:
		sb.WriteString("()")
	case TypeBool:
		if v.Bool() {
			sb.WriteString("#t")
		} else {
			sb.WriteString("#f")
		}
	case TypeNumber:
		sb.WriteString(formatNumber(v.Num()))
	case TypeSymbol:
		sb.WriteString(v.Sym())
	case TypePrimitive:
		sb.WriteString("<primitive>")
	case TypeClosure:
		sb.WriteString("<closure>")
	case TypeUnspecified:
		sb.WriteString("#<unspecified>")
	default:
		sb.WriteString("<unknown>")
	}
}

// Integral values within the exactly representable range print without
// a fractional part or exponent.
const maxExactInt = 1 << 53

func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < maxExactInt {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
