package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/sergev/tailisp/lang"
	"github.com/sergev/tailisp/runtime"
	"github.com/sergev/tailisp/sexpr"
)

func main() {
	ev := runtime.NewEvaluator()
	args := os.Args[1:]
	if len(args) > 0 {
		script := args[0]
		var err error
		if script == "-" {
			_, err = runtime.EvaluateReader(ev, os.Stdin)
		} else {
			_, err = runtime.EvaluateFile(ev, script)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "tailisp: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runREPL(ev)
}

func runREPL(ev *lang.Evaluator) {
	if !isInteractive() {
		runBufferedREPL(ev, bufio.NewReader(os.Stdin), os.Stdout, os.Stderr)
		return
	}
	runInteractiveREPL(ev)
}

// evalInput reads one expression from src, evaluates it and reports the
// outcome. It returns false when src is an incomplete expression and more
// lines are needed.
func evalInput(ev *lang.Evaluator, src string, final bool, out, errOut io.Writer) bool {
	expr, err := sexpr.ReadOne(src)
	if err != nil {
		if sexpr.IsIncomplete(err) && !final {
			return false
		}
		fmt.Fprintf(errOut, "parse error: %v\n", err)
		return true
	}
	val, err := ev.Eval(expr, nil)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return true
	}
	if val.Type != lang.TypeUnspecified {
		fmt.Fprintln(out, val.String())
	}
	return true
}

func runBufferedREPL(ev *lang.Evaluator, reader *bufio.Reader, out, errOut io.Writer) {
	var buffer strings.Builder

	for {
		line, err := reader.ReadString('\n')
		eof := errors.Is(err, io.EOF)
		if err != nil && !eof {
			fmt.Fprintf(errOut, "read error: %v\n", err)
			return
		}
		buffer.WriteString(line)
		if strings.TrimSpace(buffer.String()) == "" {
			buffer.Reset()
		} else if evalInput(ev, buffer.String(), eof, out, errOut) {
			buffer.Reset()
		}
		if eof {
			return
		}
	}
}

func runInteractiveREPL(ev *lang.Evaluator) {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)
	state.SetTabCompletionStyle(liner.TabPrints)
	state.SetWordCompleter(func(line string, pos int) (string, []string, string) {
		return completeWord(ev.Global, line, pos)
	})

	historyPath := replHistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	var buffer strings.Builder

	for {
		prompt := "tailisp> "
		if buffer.Len() > 0 {
			prompt = "....... "
		}
		input, err := state.Prompt(prompt)
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Println()
				buffer.Reset()
				continue
			case errors.Is(err, io.EOF):
				fmt.Println()
				return
			default:
				fmt.Fprintf(os.Stderr, "read error: %v\n", err)
				return
			}
		}
		if buffer.Len() == 0 && strings.TrimSpace(input) == "" {
			continue
		}
		buffer.WriteString(input)
		buffer.WriteString("\n")

		src := buffer.String()
		if !evalInput(ev, src, false, os.Stdout, os.Stderr) {
			continue
		}
		buffer.Reset()
		state.AppendHistory(strings.TrimSpace(src))
	}
}

// completeWord completes the symbol under the cursor against every name
// bound in env. pos counts runes, as liner passes it.
func completeWord(env *lang.Env, line string, pos int) (string, []string, string) {
	runes := []rune(line)
	if pos > len(runes) {
		pos = len(runes)
	}
	start := pos
	for start > 0 && !isDelimiter(runes[start-1]) {
		start--
	}
	head := string(runes[:start])
	word := string(runes[start:pos])
	tail := string(runes[pos:])

	var completions []string
	for _, name := range env.Names() {
		if strings.HasPrefix(name, word) {
			completions = append(completions, name)
		}
	}
	return head, completions, tail
}

func isDelimiter(r rune) bool {
	return r == '(' || r == ')' || r == '\'' || r == ' ' || r == '\t'
}

func replHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".tailisp_history")
}

func isInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
