package cmdline

import (
	"errors"
	"strings"
	"testing"
)

// unquote reverses PrintArg's quoting rule.
func unquote(s string) (string, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", errors.New("not quoted")
	}
	var b strings.Builder
	body := s[1 : len(s)-1]
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' {
			i++
			if i == len(body) {
				return "", errors.New("dangling escape")
			}
			c = body[i]
		} else if strings.IndexByte(escapedChars, c) >= 0 {
			return "", errors.New("unescaped special character")
		}
		b.WriteByte(c)
	}
	return b.String(), nil
}

func printArg(t *testing.T, arg string, quote bool) string {
	t.Helper()
	var b strings.Builder
	if err := PrintArg(&b, arg, quote); err != nil {
		t.Fatalf("PrintArg(%q): %v", arg, err)
	}
	return b.String()
}

func TestPrintArg(t *testing.T) {
	tests := []struct {
		name  string
		arg   string
		quote bool
		want  string
	}{
		{"plain", "hello", false, "hello"},
		{"empty", "", false, ""},
		{"forced empty", "", true, `""`},
		{"forced plain", "hello", true, `"hello"`},
		{"space", "a b", false, `"a b"`},
		{"double quote", `say "hi"`, false, `"say \"hi\""`},
		{"backslash", `C:\dir`, false, `"C:\\dir"`},
		{"dollar", "$HOME", false, `"\$HOME"`},
		{"single quote untouched", "it's", false, "it's"},
		{"tab untouched", "a\tb", false, "a\tb"},
	}

	for _, tt := range tests {
		if got := printArg(t, tt.arg, tt.quote); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestPrintArgRoundTrip(t *testing.T) {
	args := []string{
		"a b",
		`"`,
		`\`,
		"$",
		`\"$ mixed \\ "$$" `,
		"trailing\\",
		"unicode ünïcødé $x",
	}
	for _, arg := range args {
		out := printArg(t, arg, false)
		got, err := unquote(out)
		if err != nil {
			t.Fatalf("unquote(%s): %v", out, err)
		}
		if got != arg {
			t.Fatalf("round trip: got %q, want %q", got, arg)
		}
	}
}

func TestPrintArgPassThrough(t *testing.T) {
	for _, arg := range []string{"-O2", "--flag=value", "file.c", "a'b", "ñ"} {
		if NeedsQuoting(arg) {
			t.Fatalf("%q should not need quoting", arg)
		}
		if got := printArg(t, arg, false); got != arg {
			t.Fatalf("pass through: got %q, want %q", got, arg)
		}
	}
}

func TestFormat(t *testing.T) {
	got := Format("clang", "-o", "out file", "$SRC")
	want := `clang -o "out file" "\$SRC"`
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}
