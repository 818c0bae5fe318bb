package fonts

import "testing"

func TestMono(t *testing.T) {
	f, err := Mono()
	if err != nil {
		t.Fatalf("Mono() error: %v", err)
	}
	if f == nil {
		t.Fatal("Mono() returned nil font")
	}
}

func TestMeasure(t *testing.T) {
	if got := Measure("", 12); got != 0 {
		t.Errorf("Measure(\"\") = %v, want 0", got)
	}
	if got := Measure("abc", 0); got != 0 {
		t.Errorf("Measure at size 0 = %v, want 0", got)
	}

	short := Measure("lac", 12)
	long := Measure("lacZYA", 12)
	if short <= 0 {
		t.Fatalf("Measure(lac) = %v, want > 0", short)
	}
	if long <= short {
		t.Errorf("Measure(lacZYA) = %v, want > %v", long, short)
	}

	// Monospace: equal rune counts measure the same.
	if a, b := Measure("iiii", 10), Measure("WWWW", 10); a != b {
		t.Errorf("monospace widths differ: %v vs %v", a, b)
	}

	if bigger := Measure("lac", 24); bigger <= short {
		t.Errorf("larger size should measure wider: %v vs %v", bigger, short)
	}
}

func TestFaceCached(t *testing.T) {
	a, err := Face(11)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Face(11)
	if a != b {
		t.Error("Face(11) should return the cached face")
	}
}

func TestTruncate(t *testing.T) {
	label := "bacteriophage lambda repressor"
	if got := Truncate(label, 1e6, 10); got != label {
		t.Errorf("Truncate with room = %q, want unchanged", got)
	}

	w := Measure("bacterio", 10)
	got := Truncate(label, w, 10)
	if Measure(got, 10) > w {
		t.Errorf("Truncate(%q) = %q wider than %v", label, got, w)
	}
	if len(got) < 3 || got[len(got)-2:] != ".." {
		t.Errorf("Truncate(%q) = %q, want '..' suffix", label, got)
	}
}
