package quiz

import "testing"

func q(text string, correct int, options ...string) Question {
	out := Question{Order: 1, Text: text}
	for i, o := range options {
		out.Options = append(out.Options, Option{Text: o, IsCorrect: i == correct, Order: i})
	}
	return out
}

func TestCheckQuestion(t *testing.T) {
	testCases := []struct {
		name    string
		q       Question
		wantErr bool
	}{
		{"Valid", q("Capital of France?", 1, "London", "Paris", "Berlin"), false},
		{"TwoOptions", q("Yes or no?", 0, "Yes", "No"), false},
		{"EmptyText", q("  ", 0, "A", "B"), true},
		{"OneOption", q("Q?", 0, "only"), true},
		{"NoCorrect", q("Q?", -1, "A", "B"), true},
		{"EmptyOptionText", q("Q?", 0, "A", " "), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckQuestion(tc.q)
			if (err != nil) != tc.wantErr {
				t.Errorf("CheckQuestion() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestCheckQuestionMultipleCorrect(t *testing.T) {
	bad := q("Q?", 0, "A", "B", "C")
	bad.Options[2].IsCorrect = true
	if err := CheckQuestion(bad); err == nil {
		t.Fatal("expected error for two correct options")
	}
}

func TestRenumber(t *testing.T) {
	qs := []Question{
		{Order: 4, Text: "first", Options: []Option{{Text: "a", Order: 7}, {Text: "b", Order: 9}}},
		{Order: 9, Text: "second", Options: []Option{{Text: "c", Order: 3}}},
	}
	Renumber(qs)
	for i, want := range []int{1, 2} {
		if qs[i].Order != want {
			t.Errorf("question %d order = %d, want %d", i, qs[i].Order, want)
		}
	}
	for j, o := range qs[0].Options {
		if o.Order != j {
			t.Errorf("option order = %d, want %d", o.Order, j)
		}
	}
}
