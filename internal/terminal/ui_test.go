package terminal

import (
	"bytes"
	"strings"
	"testing"
)

func TestHelpersWriteToOutputWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Success("done")
	Error("failed")
	Info("note")
	Warning("careful")
	Detail("Path", "/tmp/x")
	Step(2, "Build")
	Divider()

	got := buf.String()
	for _, want := range []string{"✓ done\n", "✗ failed\n", "i note\n", "! careful\n", "  Path: /tmp/x\n", "  2. Build\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "\033[") {
		t.Errorf("non-terminal output should carry no escape codes: %q", got)
	}
}

func TestSetOutputRestores(t *testing.T) {
	var a, b bytes.Buffer
	restoreA := SetOutput(&a)
	restoreB := SetOutput(&b)
	Println("to b")
	restoreB()
	Println("to a")
	restoreA()

	if a.String() != "to a\n" || b.String() != "to b\n" {
		t.Errorf("a = %q, b = %q", a.String(), b.String())
	}
}
