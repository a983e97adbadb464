package sheen

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
)

// captureStderr runs fn with os.Stderr redirected and returns what it wrote.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w
	fn()
	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

// ---- Debug mode tests ------------------------------------------------------

func TestDebugMode_DisposedNodePanics(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	parent := NewContainer("parent")
	s.Root().AddChild(parent)

	child := NewSurface("child", 10, 10)
	child.Dispose()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on AddChild with disposed node, got none")
		}
		msg := fmt.Sprint(r)
		if !strings.Contains(msg, "disposed") {
			t.Errorf("panic message should mention 'disposed', got: %s", msg)
		}
	}()

	parent.AddChild(child)
}

func TestReleaseMode_DisposedNodeNoPanic(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(false)

	child := NewSurface("child", 10, 10)
	child.Dispose()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("release mode should not panic on disposed node, got: %v", r)
		}
	}()
	s.Root().AddChild(child)
}

func TestDebugMode_TreeDepthWarning(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	output := captureStderr(t, func() {
		current := s.Root()
		for i := 0; i < debugMaxTreeDepth+5; i++ {
			child := NewContainer(fmt.Sprintf("depth_%d", i))
			current.AddChild(child)
			current = child
		}
	})

	if !strings.Contains(output, "warning: tree depth") {
		t.Errorf("expected tree depth warning in stderr, got: %q", output)
	}
}

func TestDebugMode_LogsSelection(t *testing.T) {
	s, sel, _ := selectionScene(t)
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	output := captureStderr(t, func() {
		_ = sel.Select(1)
		s.Advance(tick)
	})

	if !strings.Contains(output, "[sheen] select 0 -> 1 (gestures)") {
		t.Errorf("expected selection line, got: %q", output)
	}
	if !strings.Contains(output, "interpolations: 3 | perimeter loops: 1") {
		t.Errorf("expected stats line, got: %q", output)
	}
}

func TestDebugMode_StatsOnlyOnChange(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	v := NewStore().NewValue(0)
	s.Animator().Animate(v, 10, 1, nil)

	output := captureStderr(t, func() {
		s.Advance(0.1)
		s.Advance(0.1)
		s.Advance(0.1)
	})
	if n := strings.Count(output, "interpolations:"); n != 1 {
		t.Errorf("stats lines = %d, want 1; output: %q", n, output)
	}
}

func TestDebugMode_Off(t *testing.T) {
	s, sel, _ := selectionScene(t)
	output := captureStderr(t, func() {
		_ = sel.Select(2)
		s.Advance(tick)
	})
	if output != "" {
		t.Errorf("expected no output with debug off, got: %q", output)
	}
}

func TestDebugf_NilScene(t *testing.T) {
	var s *Scene
	s.debugf("ignored %d", 1) // must not panic
}

func TestCollectStats(t *testing.T) {
	s, sel, _ := selectionScene(t)
	_ = sel.Select(1)
	stats := s.collectStats()
	if stats.interpolations != 3 || stats.loops != 1 || stats.layers != 0 {
		t.Errorf("stats = %+v, want {3 1 0}", stats)
	}
}
