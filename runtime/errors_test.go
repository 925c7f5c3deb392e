package runtime

import (
	"errors"
	"strings"
	"testing"
)

func TestIndexErrorMessage(t *testing.T) {
	err := indexError(7, 3)
	want := "index 7 out of range for length 3"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIndexErrorAs(t *testing.T) {
	var err error = indexError(-4, 2)
	var ie *IndexError
	if !errors.As(err, &ie) {
		t.Fatal("errors.As should match *IndexError")
	}
	if ie.Index != -4 || ie.Len != 2 {
		t.Errorf("fields = %+v", ie)
	}
}

func TestFatalfPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("fatalf should panic")
		}
		msg, ok := r.(string)
		if !ok || !strings.HasPrefix(msg, "runtime: ") {
			t.Errorf("panic value = %v", r)
		}
	}()
	fatalf("boom %d", 42)
}
