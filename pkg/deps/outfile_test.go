package deps

import "testing"

func TestParseOptionsExplicitOutput(t *testing.T) {
	out := ParseOptions([]string{"-O2", "-o", "build/foo.o", "-c"})
	if out.Explicit != "build/foo.o" {
		t.Errorf("Explicit: got %q, want %q", out.Explicit, "build/foo.o")
	}
	if out.Mode != ModeCompile {
		t.Errorf("Mode: got %v, want ModeCompile", out.Mode)
	}
}

func TestParseOptionsJoinedOutput(t *testing.T) {
	out := ParseOptions([]string{"-ofoo.o"})
	if out.Explicit != "foo.o" {
		t.Errorf("Explicit: got %q, want %q", out.Explicit, "foo.o")
	}
}

func TestParseOptionsTrailingDashO(t *testing.T) {
	// A trailing -o with no argument is silently ignored.
	out := ParseOptions([]string{"-c", "-o"})
	if out.Explicit != "" {
		t.Errorf("Explicit: got %q, want empty", out.Explicit)
	}
}

func TestParseOptionsModePrecedence(t *testing.T) {
	out := ParseOptions([]string{"-c", "-S", "-E"})
	if out.Mode != ModePreprocess {
		t.Errorf("Mode: got %v, want ModePreprocess", out.Mode)
	}
	out = ParseOptions([]string{"-c", "-S"})
	if out.Mode != ModeAssemble {
		t.Errorf("Mode: got %v, want ModeAssemble", out.Mode)
	}
}

func TestResolveExplicitWins(t *testing.T) {
	out := Output{Explicit: "custom.o", Mode: ModeCompile}
	if got := out.Resolve([]string{"main.c"}); got != "custom.o" {
		t.Errorf("Resolve: got %q, want %q", got, "custom.o")
	}
}

func TestResolveCompileMode(t *testing.T) {
	out := Output{Mode: ModeCompile}
	if got := out.Resolve([]string{"src/main.c"}); got != "main.o" {
		t.Errorf("Resolve: got %q, want %q", got, "main.o")
	}
}

func TestResolveAssembleMode(t *testing.T) {
	out := Output{Mode: ModeAssemble}
	if got := out.Resolve([]string{"main.c"}); got != "main.s" {
		t.Errorf("Resolve: got %q, want %q", got, "main.s")
	}
}

func TestResolvePreprocessMode(t *testing.T) {
	out := Output{Mode: ModePreprocess}
	if got := out.Resolve([]string{"main.c"}); got != OutputNotAvailable {
		t.Errorf("Resolve: got %q, want sentinel", got)
	}
}

func TestResolveLinkDefault(t *testing.T) {
	out := Output{Mode: ModeLink}
	if got := out.Resolve([]string{"main.c"}); got != "a.out" {
		t.Errorf("Resolve: got %q, want a.out", got)
	}
}

func TestResolveNoInputs(t *testing.T) {
	out := Output{Mode: ModeCompile}
	if got := out.Resolve(nil); got != OutputNotAvailable {
		t.Errorf("Resolve: got %q, want sentinel", got)
	}
}
