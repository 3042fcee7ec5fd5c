package uiua

import "testing"

func runOne(t *testing.T, src string) []float64 {
	t.Helper()
	stack, err := RunStr(src)
	if err != nil {
		t.Fatalf("RunStr(%q): %v", src, err)
	}
	if len(stack) != 1 {
		t.Fatalf("RunStr(%q) left %d values on the stack, want 1: %v", src, len(stack), stack)
	}
	floats, ok := stack[0].AsFloats()
	if !ok {
		t.Fatalf("RunStr(%q) top value is not numeric: %+v", src, stack[0])
	}
	return floats
}

func assertFloats(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWorkedScenarioReverse(t *testing.T) {
	assertFloats(t, runOne(t, "⇌1_2_3_9"), []float64{9, 3, 2, 1})
}

func TestWorkedScenarioShape(t *testing.T) {
	assertFloats(t, runOne(t, "△[1_2 3_4 5_6]"), []float64{3, 2})
}

func TestWorkedScenarioMatch(t *testing.T) {
	assertFloats(t, runOne(t, "≅ 1_2_3 [1 2 3]"), []float64{1})
	assertFloats(t, runOne(t, "≅ 1_2_3 [1 2]"), []float64{0})
}

func TestWorkedScenarioPick(t *testing.T) {
	assertFloats(t, runOne(t, "⊡ 2 [8 3 9 2 0]"), []float64{9})
}

func TestWorkedScenarioClassify(t *testing.T) {
	assertFloats(t, runOne(t, "⊛7_7_8_0_1_2_0"), []float64{0, 0, 1, 2, 3, 4, 2})
}

func TestRunStrEmptySource(t *testing.T) {
	stack, err := RunStr("")
	if err != nil {
		t.Fatalf("RunStr(\"\"): %v", err)
	}
	if len(stack) != 0 {
		t.Fatalf("RunStr(\"\") left %v on the stack, want empty", stack)
	}
}

func TestSessionStackVsTakeStack(t *testing.T) {
	p, err := Compile("1 2 3")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	s := p.New()
	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	peeked := s.Stack()
	if len(peeked) != 3 {
		t.Fatalf("Stack() = %v, want 3 values", peeked)
	}
	taken := s.TakeStack()
	if len(taken) != 3 {
		t.Fatalf("TakeStack() = %v, want 3 values", taken)
	}
	if after := s.Stack(); len(after) != 0 {
		t.Fatalf("Stack() after TakeStack() = %v, want empty", after)
	}
}
