package question

import "testing"

func TestType_Predicates(t *testing.T) {
	tests := []struct {
		typ      Type
		multi    bool
		matching bool
	}{
		{TypeMultiSelect, true, false},
		{"McqMultipleResponse", true, false},
		{TypeSingleSelect, false, false},
		{TypeMatching, false, true},
		{"", false, false},
		{"mcqmultiple", false, false},
	}
	for _, tt := range tests {
		if got := tt.typ.IsMultiSelect(); got != tt.multi {
			t.Errorf("%q.IsMultiSelect(): expected %v, got %v", tt.typ, tt.multi, got)
		}
		if got := tt.typ.IsMatching(); got != tt.matching {
			t.Errorf("%q.IsMatching(): expected %v, got %v", tt.typ, tt.matching, got)
		}
	}
}
