package dialogue

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/d5/tengo/v2"
)

const resultVar = "__result"

var (
	varPattern    = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	interpPattern = regexp.MustCompile(`\{\$([A-Za-z_][A-Za-z0-9_]*)\}`)
)

// Evaluate runs a tengo expression. `$name` tokens are bound to the variable
// store; unset variables evaluate to 0.
func Evaluate(expr string, storage VariableStorage) (any, error) {
	params := make(map[string]any)
	src := varPattern.ReplaceAllStringFunc(expr, func(tok string) string {
		ident := "var_" + tok[1:]
		if _, ok := params[ident]; !ok {
			params[ident] = bindValue(lookup(storage, tok))
		}
		return ident
	})

	script := tengo.NewScript([]byte(resultVar + " := (" + src + ")"))
	for name, v := range params {
		if err := script.Add(name, v); err != nil {
			return nil, fmt.Errorf("dialogue: bind %s: %w", name, err)
		}
	}
	compiled, err := script.Run()
	if err != nil {
		return nil, fmt.Errorf("dialogue: eval %q: %w", expr, err)
	}
	return normalizeValue(compiled.Get(resultVar).Value()), nil
}

// EvaluateCondition evaluates expr and reports its truthiness.
func EvaluateCondition(expr string, storage VariableStorage) (bool, error) {
	v, err := Evaluate(expr, storage)
	if err != nil {
		return false, err
	}
	return truthy(v), nil
}

// Interpolate replaces `{$name}` in text with the variable's value.
func Interpolate(text string, storage VariableStorage) string {
	return interpPattern.ReplaceAllStringFunc(text, func(tok string) string {
		return FormatValue(lookup(storage, tok[1:len(tok)-1]))
	})
}

func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case string:
		return t
	}
	return fmt.Sprint(v)
}

func lookup(storage VariableStorage, name string) any {
	if storage == nil {
		return 0.0
	}
	v, ok := storage.GetValue(VariableName(name))
	if !ok || v == nil {
		return 0.0
	}
	return v
}

// bindValue passes whole numbers to tengo as ints so that `$n == 0` compares
// equal; tengo never treats an int and a float as equal.
func bindValue(v any) any {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || math.Abs(f) >= 1e15 {
		return v
	}
	return int64(f)
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	}
	return true
}
