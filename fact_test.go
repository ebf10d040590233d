package qavalidator

import (
	"strings"
	"testing"
)

func TestFactMapPreservesInsertionOrder(t *testing.T) {
	m := NewFactMap()
	m.SetString("question", "q1")
	m.SetNumber("min", 0)
	m.SetNumber("max", 200)
	m.SetNumber("actual", 250)

	want := []string{"question", "min", "max", "actual"}
	got := m.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q; want %q", i, got[i], want[i])
		}
	}
}

func TestFactMapReplaceKeepsPosition(t *testing.T) {
	m := NewFactMap()
	m.SetString("a", "1")
	m.SetString("b", "2")
	m.SetString("a", "3")

	keys := m.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys() = %v; want [a b]", keys)
	}
	f, _ := m.Get("a")
	if f != StringFact("3") {
		t.Errorf("Get(a) = %v; want 3", f)
	}
}

func TestFactMapMarshalJSONOrdered(t *testing.T) {
	inner := NewFactMap()
	inner.SetString("unit", "mmHg")

	m := NewFactMap()
	m.SetNumber("min", 0)
	m.SetNumber("max", 200.5)
	m.SetBool("required", true)
	m.Set("expected", Nested(inner))

	data, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error: %v", err)
	}
	want := `{"min":0,"max":200.5,"required":true,"expected":{"unit":"mmHg"}}`
	if string(data) != want {
		t.Errorf("MarshalJSON() = %s; want %s", data, want)
	}
}

func TestStringFactTruncation(t *testing.T) {
	long := strings.Repeat("a", 500)
	f := String(long)
	s, ok := f.(StringFact)
	if !ok {
		t.Fatalf("String() returned %T; want StringFact", f)
	}
	if len([]rune(string(s))) > 120 {
		t.Errorf("string fact length = %d runes; want <= 120", len([]rune(string(s))))
	}
	if !strings.HasSuffix(string(s), "…") {
		t.Errorf("truncated fact should end with ellipsis, got %q", string(s)[len(s)-8:])
	}
}

func TestNumberFactIntegralRendering(t *testing.T) {
	m := NewFactMap()
	m.Set("count", Int(3))
	data, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error: %v", err)
	}
	if string(data) != `{"count":3}` {
		t.Errorf("MarshalJSON() = %s; want {\"count\":3}", data)
	}
}
