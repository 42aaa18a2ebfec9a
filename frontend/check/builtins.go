package check

import "github.com/cottand/gradual/frontend/types"

func arbitrary(to types.Type) types.Function {
	return types.Function{From: types.Arbitrary{}, To: to}
}

func positional(to types.Type, from ...types.Type) types.Function {
	return types.Function{From: types.Positional{Types: from}, To: to}
}

// Builtins is the outermost scope of every module: the builtin functions
// whose result types are known. Any other name resolves to Dyn.
func Builtins() Env {
	return EnvOf(map[string]types.Type{
		"print":      arbitrary(types.Void()),
		"len":        positional(types.Int(), types.Dyn{}),
		"repr":       positional(types.Str(), types.Dyn{}),
		"ascii":      positional(types.Str(), types.Dyn{}),
		"chr":        positional(types.Str(), types.Int()),
		"ord":        positional(types.Int(), types.Str()),
		"hash":       positional(types.Int(), types.Dyn{}),
		"id":         positional(types.Int(), types.Dyn{}),
		"callable":   positional(types.Bool(), types.Dyn{}),
		"isinstance": positional(types.Bool(), types.Dyn{}, types.Dyn{}),
		"issubclass": positional(types.Bool(), types.Dyn{}, types.Dyn{}),
		"hasattr":    positional(types.Bool(), types.Dyn{}, types.Str()),
		"input":      arbitrary(types.Str()),
		"str":        arbitrary(types.Str()),
		"int":        arbitrary(types.Int()),
		"float":      arbitrary(types.Float()),
		"bool":       arbitrary(types.Bool()),
		"list":       arbitrary(types.List{Elts: types.Dyn{}}),
	})
}
