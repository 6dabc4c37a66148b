package runtime

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sergev/tailisp/lang"
	"github.com/sergev/tailisp/sexpr"
)

// NewEvaluator constructs an evaluator with the standard global
// environment installed.
func NewEvaluator() *lang.Evaluator {
	ev := lang.NewEvaluator()
	installPrimitives(ev)
	if err := installLibrary(ev); err != nil {
		panic(fmt.Errorf("runtime bootstrap failed: %w", err))
	}
	return ev
}

func installLibrary(ev *lang.Evaluator) error {
	for _, form := range preludeForms {
		expr, err := sexpr.ReadOne(form)
		if err != nil {
			return err
		}
		if _, err := ev.Eval(expr, nil); err != nil {
			return err
		}
	}
	return nil
}

func readFileSkippingShebang(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, []byte("#!")) {
		if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
			return data[idx+1:], nil
		}
		return []byte{}, nil
	}
	return data, nil
}

// EvaluateString reads and evaluates every expression in src.
func EvaluateString(ev *lang.Evaluator, src string) (lang.Value, error) {
	forms, err := sexpr.ReadString(src)
	if err != nil {
		return lang.Value{}, err
	}
	return ev.EvalAll(forms, nil)
}

// EvaluateReader consumes all expressions from the reader and evaluates them.
func EvaluateReader(ev *lang.Evaluator, r io.Reader) (lang.Value, error) {
	forms, err := sexpr.ReadAll(r)
	if err != nil {
		return lang.Value{}, err
	}
	return ev.EvalAll(forms, nil)
}

// EvaluateFile loads and executes a program file, allowing a #! first line.
func EvaluateFile(ev *lang.Evaluator, path string) (lang.Value, error) {
	data, err := readFileSkippingShebang(path)
	if err != nil {
		return lang.Value{}, err
	}
	val, err := EvaluateReader(ev, bytes.NewReader(data))
	if err != nil {
		return lang.Value{}, fmt.Errorf("%s: %w", path, err)
	}
	return val, nil
}
