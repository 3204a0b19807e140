package qerr

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorMessageIncludesStageAndKind(t *testing.T) {
	err := Syntaxf("lexic", "unexpected token %q", "\\foo")
	msg := err.Error()
	if !strings.Contains(msg, "SyntaxError") || !strings.Contains(msg, "lexic") || !strings.Contains(msg, "\\foo") {
		t.Errorf("Error() = %q, want it to mention kind, stage and message", msg)
	}
}

func TestErrorWithoutStage(t *testing.T) {
	err := &Error{Kind: Engine, Msg: "boom"}
	if err.Error() != "EngineError: boom" {
		t.Errorf("Error() = %q, want %q", err.Error(), "EngineError: boom")
	}
}

func TestWrapPreservesCauseForUnwrap(t *testing.T) {
	cause := errors.New("underlying failure")
	wrapped := Wrap(Config, "config", cause)
	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is should see through Wrap to the underlying cause")
	}
}

func TestConstructorsSetKind(t *testing.T) {
	cases := []struct {
		err  *Error
		want Kind
	}{
		{Syntaxf("s", "x"), Syntax},
		{Semanticf("s", "x"), Semantic},
		{Configf("s", "x"), Config},
		{Enginef("s", "x"), Engine},
	}
	for _, c := range cases {
		if c.err.Kind != c.want {
			t.Errorf("Kind = %s, want %s", c.err.Kind, c.want)
		}
	}
}

func TestUnbalancedBracketsAndCyclicMacro(t *testing.T) {
	ub := UnbalancedBrackets("lexic", 7)
	if ub.Kind != Syntax || !strings.Contains(ub.Error(), "7") {
		t.Errorf("UnbalancedBrackets did not report the position: %v", ub)
	}
	cm := CyclicMacro("lexic", "\\foo")
	if cm.Kind != Syntax || !strings.Contains(cm.Error(), "\\foo") {
		t.Errorf("CyclicMacro did not name the macro: %v", cm)
	}
}
