package traits

import "testing"

func TestCount(t *testing.T) {
	if Count != 9 {
		t.Fatalf("Count = %d, want 9", Count)
	}
	if Full.Len() != Count {
		t.Errorf("Full.Len() = %d, want %d", Full.Len(), Count)
	}
	if !Full.IsFull() {
		t.Error("Full should be full")
	}
}

func TestSetAddHas(t *testing.T) {
	var s Set
	if s.Len() != 0 {
		t.Fatalf("empty set Len = %d", s.Len())
	}

	s = s.Add(Heat).Add(Cold).Add(Heat)
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2 (duplicates ignored)", s.Len())
	}
	if !s.Has(Heat) || !s.Has(Cold) {
		t.Error("expected heat and cold")
	}
	if s.Has(Radiation) {
		t.Error("unexpected radiation")
	}
}

func TestMissingAndSlicePartition(t *testing.T) {
	s := Of(Penicillin, Bleach, Radiation)

	held := s.Slice()
	missing := s.Missing()
	if len(held)+len(missing) != Count {
		t.Fatalf("held %d + missing %d != %d", len(held), len(missing), Count)
	}
	for _, i := range missing {
		if s.Has(i) {
			t.Errorf("missing contains held immunity %v", i)
		}
	}
	if len(Full.Missing()) != 0 {
		t.Error("full set should have nothing missing")
	}
}

func TestContains(t *testing.T) {
	parent := Of(Heat)
	child := parent.Add(Cold)
	if !child.Contains(parent) {
		t.Error("child should contain parent")
	}
	if parent.Contains(child) {
		t.Error("parent should not contain child")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Immunity
		ok   bool
	}{
		{"penicillin", Penicillin, true},
		{"  Bleach ", Bleach, true},
		{"RADIATION", Radiation, true},
		{"garlic", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Parse(tt.in)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("Parse(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestTreatments(t *testing.T) {
	if len(Treatments) != 6 {
		t.Fatalf("len(Treatments) = %d, want 6", len(Treatments))
	}
	for _, i := range Treatments {
		if !i.IsTreatment() {
			t.Errorf("%v should be a treatment", i)
		}
	}
	for _, i := range []Immunity{Heat, Cold, Radiation} {
		if i.IsTreatment() {
			t.Errorf("%v should not be a treatment", i)
		}
	}
}

func TestLabels(t *testing.T) {
	if Tetracycline.Label() != "Tetracycline" {
		t.Errorf("Label = %q", Tetracycline.Label())
	}
	if Variant(7).String() != "bacteria7" {
		t.Errorf("Variant string = %q", Variant(7).String())
	}
	if Of(Heat, Penicillin).String() != "{penicillin,heat}" {
		t.Errorf("Set string = %q", Of(Heat, Penicillin).String())
	}
}
