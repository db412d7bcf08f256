package expr

// allowedFunctions is the fixed set of callable function names the grammar
// permits (spec.md §8, "Expression safety"): abs, int, float, round, min,
// max and nothing else. parseCall rejects any other name while parsing, so
// an expression referencing an unknown function never reaches Eval — it
// never gets as far as opening the input file.
var allowedFunctions = map[string]bool{
	"abs":   true,
	"int":   true,
	"float": true,
	"round": true,
	"min":   true,
	"max":   true,
}
