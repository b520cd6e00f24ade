package models

import (
	"reflect"
	"testing"
)

func TestFactMissingFields(t *testing.T) {
	tests := []struct {
		name string
		fact Fact
		want []string
	}{
		{
			name: "complete",
			fact: Fact{Question: "q", Answer: "a", Location: "King", Category: "Other"},
			want: nil,
		},
		{
			name: "empty",
			fact: Fact{},
			want: []string{"question", "answer", "location", "category"},
		},
		{
			name: "whitespace only after normalize",
			fact: Fact{Question: "   ", Answer: "a", Location: "King", Category: "\t"},
			want: []string{"question", "category"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.fact
			f.Normalize()
			got := f.MissingFields()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MissingFields() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFactRecordRoundTrip(t *testing.T) {
	f := Fact{Question: "What is Ontario's vegetable patch?", Answer: "Holland Marsh.", Location: "King", Category: "Physiographic"}

	got := FactFromRecord(f.Record())
	if got != f {
		t.Errorf("FactFromRecord(Record()) = %+v, want %+v", got, f)
	}
}

func TestFactFromRecordShortRow(t *testing.T) {
	got := FactFromRecord([]string{"only question"})
	if got.Question != "only question" || got.Answer != "" || got.Category != "" {
		t.Errorf("FactFromRecord(short) = %+v", got)
	}
}
