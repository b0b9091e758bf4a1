package determinism

import (
	"strings"
	"testing"
)

func TestHashJSONStable(t *testing.T) {
	type payload struct {
		Area  string   `json:"area"`
		Items []string `json:"items"`
	}
	a, err := HashJSON(payload{Area: "120", Items: []string{"x", "y"}})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := HashJSON(payload{Area: "120", Items: []string{"x", "y"}})
	c, _ := HashJSON(payload{Area: "121", Items: []string{"x", "y"}})

	if a != b {
		t.Error("equal values should hash equally")
	}
	if a == c {
		t.Error("different values should hash differently")
	}
	if len(a.Hex()) != 64 {
		t.Errorf("hex length = %d", len(a.Hex()))
	}
	if !strings.HasSuffix(a.String(), "...") {
		t.Errorf("String() = %q", a.String())
	}
}

func TestHashJSONError(t *testing.T) {
	if _, err := HashJSON(make(chan int)); err == nil {
		t.Error("expected error for unencodable value")
	}
}

func TestIDGenerator(t *testing.T) {
	g := NewIDGenerator("quote")
	id := g.Generate("a", "b")

	if id != g.Generate("a", "b") {
		t.Error("IDs should be stable")
	}
	if id == g.Generate("ab") {
		t.Error("part boundaries should affect the ID")
	}
	if id == NewIDGenerator("other").Generate("a", "b") {
		t.Error("namespace should affect the ID")
	}

	ref := id.Reference("WQ")
	if len(ref) != len("WQ-")+8 || ref != strings.ToUpper(ref) {
		t.Errorf("Reference() = %q", ref)
	}
}
