// Package parser turns expression text into tokens and tokens into an
// abstract syntax tree.
//
// Tokenize is the lexical stage. It fails with a *LexError on characters
// that start no token and on malformed numeric literals. Parse is the
// syntactic stage. It never fails structurally: any grammar violation,
// including unconsumed trailing tokens, yields ast.Invalid.
//
// Grammar, lowest precedence first. Every binary level is left-associative,
// including power, so 2 ** 3 ** 2 is (2 ** 3) ** 2:
//
//	expression     = or
//	or             = and { "||" and }
//	and            = xor { "&&" xor }
//	xor            = equality { "^" equality }
//	equality       = comparison { ( "==" | "!=" ) comparison }
//	comparison     = additive { ( "<" | ">" | "<=" | ">=" ) additive }
//	additive       = multiplicative { ( "+" | "-" ) multiplicative }
//	multiplicative = power { ( "*" | "/" ) power }
//	power          = unary { "**" unary }
//	unary          = ( "-" | "!" ) unary | primary
//	primary        = "true" | "false" | number
//	               | identifier "(" expression ")"
//	               | constant
//	               | "(" expression ")"
package parser
