package debug

import "testing"

func TestTreeWriter_Empty(t *testing.T) {
	tw := NewTreeWriter()
	if tw.String() != "" || len(tw.Bytes()) != 0 {
		t.Errorf("new TreeWriter is not empty: %q", tw.String())
	}
}

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{"no depth", 0, "test", nil, "test\n"},
		{"depth 1", 1, "indented", nil, "  indented\n"},
		{"depth 2", 2, "double indent", nil, "    double indent\n"},
		{"with formatting", 1, "%s=%d", []any{"n", 42}, "  n=42\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Field(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		label string
		value any
		want  string
	}{
		{"string", 0, "name", "a b", "name: \"a b\"\n"},
		{"empty string", 1, "name", "", "  name: \n"},
		{"control characters", 0, "name", "a\tb", "name: \"a\\tb\"\n"},
		{"number", 2, "size", int64(12), "    size: 12\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Field(tt.depth, tt.label, tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("Field() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Accumulates(t *testing.T) {
	tw := NewTreeWriter()
	tw.Line(0, "root")
	tw.Field(1, "child", "x")
	if got, want := tw.String(), "root\n  child: \"x\"\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
