package ast

import (
	"testing"

	"github.com/msto63/pascal/foundation/utils/mathx"
)

func num(s string) Node {
	return NumberLiteral{Value: mathx.MustNewDecimal(s)}
}

func TestPrint(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			name: "literal",
			node: num("2.5"),
			want: "Number 2.5\n",
		},
		{
			name: "invalid",
			node: Invalid{},
			want: "Invalid\n",
		},
		{
			name: "binary with nested call",
			node: Binary{
				Left:  num("1"),
				Op:    "+",
				Right: Call{Name: "sqrt", Arg: NamedConstant{Name: "PI"}},
			},
			want: "Binary +:\n" +
				"  Number 1\n" +
				"  Call sqrt:\n" +
				"    Constant PI\n",
		},
		{
			name: "group and unary",
			node: Unary{Op: "!", Operand: Group{Inner: Binary{Left: BoolLiteral{Value: true}, Op: "&&", Right: BoolLiteral{Value: false}}}},
			want: "Unary !:\n" +
				"  Group:\n" +
				"    Binary &&:\n" +
				"      Bool true\n" +
				"      Bool false\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Print(tt.node); got != tt.want {
				t.Errorf("Print() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestIsInvalid(t *testing.T) {
	if !IsInvalid(Invalid{}) {
		t.Error("IsInvalid(Invalid{}) = false")
	}
	if IsInvalid(num("1")) {
		t.Error("IsInvalid(NumberLiteral) = true")
	}
}
