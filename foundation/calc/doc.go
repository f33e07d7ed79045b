// Package calc evaluates arithmetic and boolean expressions.
//
// The pipeline has three stages, each usable on its own:
//
//	tokens, err := parser.Tokenize("2 ** 3 ** 2")
//	tree := parser.Parse(tokens)            // ast.Invalid on syntax errors
//	value, ok := evaluator.Evaluate(tree)   // ok == false when there is no value
//
// Engine wraps the stages for callers that want logging, timing and a
// single classified error:
//
//	engine := calc.New(calc.Options{})
//	res, err := engine.Evaluate(ctx, "sqrt(16) + PI")
package calc
