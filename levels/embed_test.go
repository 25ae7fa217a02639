package levels

import "testing"

func TestLoadEmbeddedLevel(t *testing.T) {
	lvl, err := LoadLevelFromFS("village")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if lvl.Width != 640 || lvl.Height != 400 {
		t.Fatalf("unexpected size %dx%d", lvl.Width, lvl.Height)
	}
	players := 0
	for _, e := range lvl.Entities {
		if e.Type == "player" {
			players++
		}
	}
	if players != 1 {
		t.Fatalf("expected one player placement, got %d", players)
	}
}

func TestParseLevelRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bad_json", `{`},
		{"zero_size", `{"width": 0, "height": 10}`},
		{"empty_wall", `{"width": 10, "height": 10, "walls": [{"x": 0, "y": 0, "w": 0, "h": 4}]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseLevel([]byte(tc.src)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestEntityProps(t *testing.T) {
	e := Entity{Props: map[string]interface{}{"name": "OldMan", "character": false, "n": 3.0}}
	if e.PropString("name") != "OldMan" || e.PropString("n") != "" || e.PropString("missing") != "" {
		t.Fatalf("unexpected PropString results")
	}
	if v, ok := e.PropBool("character"); !ok || v {
		t.Fatalf("expected character=false present")
	}
	if _, ok := e.PropBool("missing"); ok {
		t.Fatalf("missing bool prop should report absent")
	}
}
