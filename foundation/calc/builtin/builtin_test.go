package builtin

import (
	"testing"

	"github.com/msto63/pascal/foundation/utils/mathx"
)

func TestConstant(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"PI", "3.14159265358979323846264338328", true},
		{"pi", "3.14159265358979323846264338328", true},
		{"e", "2.71828182845904523536028747135", true},
		{"PHI", "1.61803398874989484820458683437", true},
		{"TAU", "6.28318530717958647692528676656", true},
		{"E", "", false},
		{"Pi", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Constant(tt.name)
			if ok != tt.ok {
				t.Fatalf("Constant(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			}
			if ok && got.String() != tt.want {
				t.Errorf("Constant(%q) = %s, want %s", tt.name, got, tt.want)
			}
			if IsConstant(tt.name) != tt.ok {
				t.Errorf("IsConstant(%q) = %v", tt.name, !tt.ok)
			}
		})
	}
}

func TestFunction(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    string
		wantErr bool
	}{
		{"sqrt", "16", "4", false},
		{"sqrt", "-1", "", true},
		{"cbrt", "8", "2", false},
		{"sin", "0", "0", false},
		{"cos", "0", "1", false},
		{"atan", "0", "0", false},
		{"exp", "0", "1", false},
		{"ln", "1", "0", false},
		{"ln", "0", "", true},
		{"log", "1", "0", false},
		{"log", "-1", "", true},
		{"acos", "2", "", true},
		{"floor", "-2.5", "-3", false},
		{"ceil", "2.1", "3", false},
		{"round", "2.5", "2", false},
		{"round", "3.5", "4", false},
		{"round", "-0.5", "0", false},
		{"trunc", "-2.7", "-2", false},
		{"abs", "-0.25", "0.25", false},
		{"sign", "-7", "-1", false},
		{"sign", "0", "0", false},
		{"sign", "0.001", "1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name+"("+tt.arg+")", func(t *testing.T) {
			fn, ok := Function(tt.name)
			if !ok {
				t.Fatalf("Function(%q) not found", tt.name)
			}
			got, err := fn(mathx.MustNewDecimal(tt.arg))
			if (err != nil) != tt.wantErr {
				t.Fatalf("%s(%s) error = %v, wantErr %v", tt.name, tt.arg, err, tt.wantErr)
			}
			if !tt.wantErr && got.String() != tt.want {
				t.Errorf("%s(%s) = %s, want %s", tt.name, tt.arg, got, tt.want)
			}
		})
	}
}

func TestUnknownFunction(t *testing.T) {
	if _, ok := Function("foo"); ok {
		t.Error("Function(\"foo\") found")
	}
}

func TestNames(t *testing.T) {
	names := FunctionNames()
	if len(names) != len(functions) {
		t.Fatalf("FunctionNames() returned %d names, want %d", len(names), len(functions))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("FunctionNames() not sorted at %d: %v", i, names)
		}
	}
	if got := len(ConstantNames()); got != 7 {
		t.Errorf("len(ConstantNames()) = %d, want 7", got)
	}
}
