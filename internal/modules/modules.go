// Package modules is the explicit capability registry for snippet contexts.
//
// The core never performs dynamic imports: the surrounding harness resolves
// module names against this table before the run starts, and the context only
// ever consumes flat name -> value bindings.
package modules

import (
	"fmt"
	"math"
	"strings"

	"rill/internal/runtime"
	"rill/internal/types"
)

// Lookup returns the named module's value table.
func Lookup(name string) (types.Value, bool) {
	m, ok := registry[name]
	return m, ok
}

// Names returns the registered module names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// Universal returns the builtins installed in every context regardless of
// imports: len, str, num, int.
func Universal() map[string]types.Value {
	return map[string]types.Value{
		"len": fn("len", 1, func(args []types.Value) (types.Value, error) {
			switch args[0].Kind() {
			case types.KindStr:
				return types.Num(float64(len(args[0].Str()))), nil
			case types.KindList:
				return types.Num(float64(len(args[0].List()))), nil
			default:
				return types.Null(), fmt.Errorf("len: cannot measure %s", args[0].Kind())
			}
		}),
		"str": fn("str", 1, func(args []types.Value) (types.Value, error) {
			return types.Str(args[0].AsStr()), nil
		}),
		"num": fn("num", 1, func(args []types.Value) (types.Value, error) {
			switch args[0].Kind() {
			case types.KindNum:
				return args[0], nil
			case types.KindStr:
				n, err := types.ParseNum(args[0].Str())
				if err != nil {
					return types.Null(), fmt.Errorf("num: invalid number %q", args[0].Str())
				}
				return types.Num(n), nil
			default:
				return types.Null(), fmt.Errorf("num: cannot convert %s", args[0].Kind())
			}
		}),
		"int": fn("int", 1, func(args []types.Value) (types.Value, error) {
			switch args[0].Kind() {
			case types.KindNum:
				return types.Num(math.Trunc(args[0].Num())), nil
			case types.KindStr:
				n, err := types.ParseNum(args[0].Str())
				if err != nil {
					return types.Null(), fmt.Errorf("int: invalid number %q", args[0].Str())
				}
				return types.Num(math.Trunc(n)), nil
			default:
				return types.Null(), fmt.Errorf("int: cannot convert %s", args[0].Kind())
			}
		}),
	}
}

// registry maps module names to their member tables.
var registry = map[string]types.Value{
	"strings": stringsModule(),
	"math":    mathModule(),
	"fmt":     fmtModule(),
	"re":      reModule(),
}

// fn wraps a builtin with fixed-arity checking.
func fn(name string, arity int, impl types.Func) types.Value {
	return types.NewFunc(func(args []types.Value) (types.Value, error) {
		if len(args) != arity {
			return types.Null(), fmt.Errorf("%s: expected %d args, got %d", name, arity, len(args))
		}
		return impl(args)
	})
}

// str1 wraps a string -> string builtin.
func str1(name string, impl func(string) string) types.Value {
	return fn(name, 1, func(args []types.Value) (types.Value, error) {
		s, err := argStr(name, args, 0)
		if err != nil {
			return types.Null(), err
		}
		return types.Str(impl(s)), nil
	})
}

// num1 wraps a float64 -> float64 builtin.
func num1(name string, impl func(float64) float64) types.Value {
	return fn(name, 1, func(args []types.Value) (types.Value, error) {
		n, err := argNum(name, args, 0)
		if err != nil {
			return types.Null(), err
		}
		return types.Num(impl(n)), nil
	})
}

// num2 wraps a (float64, float64) -> float64 builtin.
func num2(name string, impl func(float64, float64) float64) types.Value {
	return fn(name, 2, func(args []types.Value) (types.Value, error) {
		a, err := argNum(name, args, 0)
		if err != nil {
			return types.Null(), err
		}
		b, err := argNum(name, args, 1)
		if err != nil {
			return types.Null(), err
		}
		return types.Num(impl(a, b)), nil
	})
}

func argStr(name string, args []types.Value, i int) (string, error) {
	if !args[i].IsStr() {
		return "", fmt.Errorf("%s: arg %d must be str, got %s", name, i+1, args[i].Kind())
	}
	return args[i].Str(), nil
}

func argNum(name string, args []types.Value, i int) (float64, error) {
	if !args[i].IsNum() {
		return 0, fmt.Errorf("%s: arg %d must be num, got %s", name, i+1, args[i].Kind())
	}
	return args[i].Num(), nil
}

func argList(name string, args []types.Value, i int) ([]types.Value, error) {
	if !args[i].IsList() {
		return nil, fmt.Errorf("%s: arg %d must be list, got %s", name, i+1, args[i].Kind())
	}
	return args[i].List(), nil
}

func stringsModule() types.Value {
	return types.Mod(map[string]types.Value{
		"upper": str1("upper", strings.ToUpper),
		"lower": str1("lower", strings.ToLower),
		"trim":  str1("trim", strings.TrimSpace),
		"title": str1("title", titleCase),
		"trimprefix": fn("trimprefix", 2, func(args []types.Value) (types.Value, error) {
			s, err := argStr("trimprefix", args, 0)
			if err != nil {
				return types.Null(), err
			}
			prefix, err := argStr("trimprefix", args, 1)
			if err != nil {
				return types.Null(), err
			}
			return types.Str(strings.TrimPrefix(s, prefix)), nil
		}),
		"trimsuffix": fn("trimsuffix", 2, func(args []types.Value) (types.Value, error) {
			s, err := argStr("trimsuffix", args, 0)
			if err != nil {
				return types.Null(), err
			}
			suffix, err := argStr("trimsuffix", args, 1)
			if err != nil {
				return types.Null(), err
			}
			return types.Str(strings.TrimSuffix(s, suffix)), nil
		}),
		"fields": fn("fields", 1, func(args []types.Value) (types.Value, error) {
			s, err := argStr("fields", args, 0)
			if err != nil {
				return types.Null(), err
			}
			return types.StrList(strings.Fields(s)), nil
		}),
		"contains": fn("contains", 2, func(args []types.Value) (types.Value, error) {
			s, err := argStr("contains", args, 0)
			if err != nil {
				return types.Null(), err
			}
			sub, err := argStr("contains", args, 1)
			if err != nil {
				return types.Null(), err
			}
			return types.Bool(strings.Contains(s, sub)), nil
		}),
		"hasprefix": fn("hasprefix", 2, func(args []types.Value) (types.Value, error) {
			s, err := argStr("hasprefix", args, 0)
			if err != nil {
				return types.Null(), err
			}
			prefix, err := argStr("hasprefix", args, 1)
			if err != nil {
				return types.Null(), err
			}
			return types.Bool(strings.HasPrefix(s, prefix)), nil
		}),
		"hassuffix": fn("hassuffix", 2, func(args []types.Value) (types.Value, error) {
			s, err := argStr("hassuffix", args, 0)
			if err != nil {
				return types.Null(), err
			}
			suffix, err := argStr("hassuffix", args, 1)
			if err != nil {
				return types.Null(), err
			}
			return types.Bool(strings.HasSuffix(s, suffix)), nil
		}),
		"index": fn("index", 2, func(args []types.Value) (types.Value, error) {
			s, err := argStr("index", args, 0)
			if err != nil {
				return types.Null(), err
			}
			sub, err := argStr("index", args, 1)
			if err != nil {
				return types.Null(), err
			}
			return types.Num(float64(strings.Index(s, sub))), nil
		}),
		"replace": fn("replace", 3, func(args []types.Value) (types.Value, error) {
			s, err := argStr("replace", args, 0)
			if err != nil {
				return types.Null(), err
			}
			old, err := argStr("replace", args, 1)
			if err != nil {
				return types.Null(), err
			}
			new_, err := argStr("replace", args, 2)
			if err != nil {
				return types.Null(), err
			}
			return types.Str(strings.ReplaceAll(s, old, new_)), nil
		}),
		"repeat": fn("repeat", 2, func(args []types.Value) (types.Value, error) {
			s, err := argStr("repeat", args, 0)
			if err != nil {
				return types.Null(), err
			}
			n, err := argNum("repeat", args, 1)
			if err != nil {
				return types.Null(), err
			}
			if n < 0 {
				return types.Null(), fmt.Errorf("repeat: negative count")
			}
			return types.Str(strings.Repeat(s, int(n))), nil
		}),
		"split": fn("split", 2, func(args []types.Value) (types.Value, error) {
			s, err := argStr("split", args, 0)
			if err != nil {
				return types.Null(), err
			}
			sep, err := argStr("split", args, 1)
			if err != nil {
				return types.Null(), err
			}
			return types.StrList(strings.Split(s, sep)), nil
		}),
		"join": fn("join", 2, func(args []types.Value) (types.Value, error) {
			list, err := argList("join", args, 0)
			if err != nil {
				return types.Null(), err
			}
			sep, err := argStr("join", args, 1)
			if err != nil {
				return types.Null(), err
			}
			parts := make([]string, len(list))
			for i, e := range list {
				parts[i] = e.AsStr()
			}
			return types.Str(strings.Join(parts, sep)), nil
		}),
	})
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func mathModule() types.Value {
	return types.Mod(map[string]types.Value{
		"abs":   num1("abs", math.Abs),
		"floor": num1("floor", math.Floor),
		"ceil":  num1("ceil", math.Ceil),
		"round": num1("round", math.Round),
		"sqrt":  num1("sqrt", math.Sqrt),
		"pow":   num2("pow", math.Pow),
		"min":   num2("min", math.Min),
		"max":   num2("max", math.Max),
	})
}

func fmtModule() types.Value {
	return types.Mod(map[string]types.Value{
		"sprintf": types.NewFunc(func(args []types.Value) (types.Value, error) {
			if len(args) < 1 {
				return types.Null(), fmt.Errorf("sprintf: missing format string")
			}
			format, err := argStr("sprintf", args, 0)
			if err != nil {
				return types.Null(), err
			}
			fmtArgs := make([]any, len(args)-1)
			for i, a := range args[1:] {
				switch a.Kind() {
				case types.KindNum:
					// Feed %d an int and %f/%g a float; sprintf formats
					// integral numbers through %v without a decimal point.
					if a.Num() == math.Trunc(a.Num()) {
						fmtArgs[i] = int64(a.Num())
					} else {
						fmtArgs[i] = a.Num()
					}
				case types.KindStr:
					fmtArgs[i] = a.Str()
				case types.KindBool:
					fmtArgs[i] = a.AsBool()
				default:
					fmtArgs[i] = a.AsStr()
				}
			}
			return types.Str(fmt.Sprintf(format, fmtArgs...)), nil
		}),
		"quote": str1("quote", func(s string) string {
			return fmt.Sprintf("%q", s)
		}),
	})
}

// reCache backs the re module; patterns arrive per call, so compilation is
// cached across lines.
var reCache = runtime.NewRegexCache(100)

func reModule() types.Value {
	return types.Mod(map[string]types.Value{
		"match": fn("match", 2, func(args []types.Value) (types.Value, error) {
			pattern, err := argStr("match", args, 0)
			if err != nil {
				return types.Null(), err
			}
			s, err := argStr("match", args, 1)
			if err != nil {
				return types.Null(), err
			}
			re, err := reCache.Get(pattern)
			if err != nil {
				return types.Null(), fmt.Errorf("match: %v", err)
			}
			return types.Bool(re.MatchString(s)), nil
		}),
		"find": fn("find", 2, func(args []types.Value) (types.Value, error) {
			pattern, err := argStr("find", args, 0)
			if err != nil {
				return types.Null(), err
			}
			s, err := argStr("find", args, 1)
			if err != nil {
				return types.Null(), err
			}
			re, err := reCache.Get(pattern)
			if err != nil {
				return types.Null(), fmt.Errorf("find: %v", err)
			}
			groups, ok := re.Search(s)
			if !ok {
				return types.Null(), nil
			}
			return types.StrList(groups), nil
		}),
		"replace": fn("replace", 3, func(args []types.Value) (types.Value, error) {
			pattern, err := argStr("replace", args, 0)
			if err != nil {
				return types.Null(), err
			}
			repl, err := argStr("replace", args, 1)
			if err != nil {
				return types.Null(), err
			}
			s, err := argStr("replace", args, 2)
			if err != nil {
				return types.Null(), err
			}
			re, err := reCache.Get(pattern)
			if err != nil {
				return types.Null(), fmt.Errorf("replace: %v", err)
			}
			return types.Str(re.ReplaceAllString(s, repl)), nil
		}),
		"split": fn("split", 2, func(args []types.Value) (types.Value, error) {
			pattern, err := argStr("split", args, 0)
			if err != nil {
				return types.Null(), err
			}
			s, err := argStr("split", args, 1)
			if err != nil {
				return types.Null(), err
			}
			re, err := reCache.Get(pattern)
			if err != nil {
				return types.Null(), fmt.Errorf("split: %v", err)
			}
			return types.StrList(re.Split(s, -1)), nil
		}),
	})
}
