package fonts

import "testing"

func TestLoad(t *testing.T) {
	for _, name := range []string{"", "go-regular", "builtin:go-mono", "built-in:GO-BOLD"} {
		data, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q) error: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("Load(%q) returned no data", name)
		}
	}
	if _, err := Load("Inter-Regular"); err == nil {
		t.Fatalf("unknown font should fail")
	}
	if IsBuiltin("fonts/custom.ttf") {
		t.Fatalf("paths are not builtin fonts")
	}
}
