package tt

import (
	"fmt"
	"testing"
)

// testT implements the T interface and records errors.
type testT []string

func (t *testT) Helper() {}

func (t *testT) Errorf(format string, args ...any) {
	*t = append(*t, fmt.Sprintf(format, args...))
}

func add(x, y int) int { return x + y }

func TestTTPass(t *testing.T) {
	var mockT testT
	Test(&mockT, Fn("add", add), Table{
		Args(1, 2).Rets(3),
		Args(1, 1).Rets(2),
	})
	if len(mockT) > 0 {
		t.Errorf("Test errors when test should pass")
	}
}

func TestTTFail(t *testing.T) {
	var mockT testT
	Test(&mockT, Fn("add", add), Table{
		Args(1, 2).Rets(4),
	})
	if len(mockT) != 1 {
		t.Errorf("Test did not error when test should fail")
	}
}

func TestTTFailWithCustomFmt(t *testing.T) {
	var mockT testT
	Test(&mockT,
		Fn("add", add).ArgsFmt("x = %d, y = %d").RetsFmt("(ret = %d)"),
		Table{Args(1, 2).Rets(4)})
	assertOneError(t, mockT, "add(x = 1, y = 2) -> (ret = 3), want (ret = 4)")
}

func TestTTAnyMatcher(t *testing.T) {
	var mockT testT
	Test(&mockT, Fn("add", add), Table{
		Args(1, 2).Rets(Any),
	})
	if len(mockT) > 0 {
		t.Errorf("Test errors when test should pass")
	}
}

func assertOneError(t *testing.T, mockT testT, want string) {
	t.Helper()
	switch len(mockT) {
	case 0:
		t.Errorf("Test did not error when test should fail")
	case 1:
		if mockT[0] != want {
			t.Errorf("Test wrote message %q, want %q", mockT[0], want)
		}
	default:
		t.Errorf("Test wrote too many error messages")
	}
}
