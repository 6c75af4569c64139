package cmdline

import (
	"strings"
	"testing"
)

func TestEncodedSize(t *testing.T) {
	l := Limits{MaxSize: 1 << 20, PointerSize: 8}
	// "prog\0" + "a\0" + "bc\0" + 3 pointers
	if got := l.EncodedSize("prog", []string{"a", "bc"}); got != 5+2+3+3*8 {
		t.Fatalf("got %d", got)
	}
	if got := l.EncodedSize("", nil); got != 1+8 {
		t.Fatalf("empty invocation: got %d", got)
	}
}

func TestFitsBoundary(t *testing.T) {
	args := []string{"x", strings.Repeat("y", 100)}
	base := Limits{PointerSize: 8}
	size := base.EncodedSize("/bin/prog", args)

	tests := []struct {
		name    string
		maxSize int
		want    bool
	}{
		{"above", size + 1, true},
		{"equal", size, true},
		{"below", size - 1, false},
	}
	for _, tt := range tests {
		l := Limits{MaxSize: tt.maxSize, PointerSize: 8}
		if got := l.Fits("/bin/prog", args); got != tt.want {
			t.Errorf("%s: Fits = %v, want %v (size %d, max %d)", tt.name, got, tt.want, size, tt.maxSize)
		}
	}
}

func TestFitsMaxArgLen(t *testing.T) {
	l := Limits{MaxSize: 1 << 30, MaxArgLen: 10, PointerSize: 8}
	if !l.Fits("p", []string{strings.Repeat("a", 9)}) {
		t.Fatalf("argument below MaxArgLen should fit")
	}
	if l.Fits("p", []string{strings.Repeat("a", 10)}) {
		t.Fatalf("argument of MaxArgLen must be rejected")
	}
}

func TestUnixLimitsClamp(t *testing.T) {
	if got := unixLimits(1 << 30).MaxSize; got != xargsArgMax/2 {
		t.Fatalf("large ARG_MAX: got %d", got)
	}
	if got := unixLimits(64 * 1024).MaxSize; got != 32*1024 {
		t.Fatalf("small ARG_MAX: got %d", got)
	}
	if got := unixLimits(100).MaxSize; got != posixArgMax/2 {
		t.Fatalf("tiny ARG_MAX: got %d", got)
	}
}

func TestDefaultFits(t *testing.T) {
	if !Fits("/bin/echo", []string{"echo", "hello"}) {
		t.Fatalf("a short command must fit")
	}
	huge := make([]string, 0, 1024)
	for i := 0; i < 1024; i++ {
		huge = append(huge, strings.Repeat("z", 1024))
	}
	if Fits("/bin/echo", huge) {
		t.Fatalf("1 MiB of arguments must not fit")
	}
	if EncodedSize("/bin/echo", nil) <= len("/bin/echo") {
		t.Fatalf("encoded size must include terminators")
	}
}
