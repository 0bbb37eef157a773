package parseutil

import "testing"

func TestFloatCoercion(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		def  float64
		want float64
	}{
		{name: "plain float", raw: 1.17, def: 0, want: 1.17},
		{name: "integer", raw: 42, def: 0, want: 42},
		{name: "percent suffix", raw: "55%", def: 0, want: 55},
		{name: "comma decimal", raw: "1,43", def: 0, want: 1.43},
		{name: "comma decimal with percent", raw: "62,5 %", def: 0, want: 62.5},
		{name: "garbage falls back", raw: "n/a", def: 1.25, want: 1.25},
		{name: "empty string falls back", raw: "  ", def: 1.25, want: 1.25},
		{name: "nil falls back", raw: nil, def: 0.5, want: 0.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Float(tc.raw, tc.def)
			if got != tc.want {
				t.Fatalf("Float(%v) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestIntCoercion(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		def  int
		want int
	}{
		{name: "json number", raw: float64(20), def: 0, want: 20},
		{name: "numeric string", raw: "17", def: 0, want: 17},
		{name: "float string truncates", raw: "3.9", def: 0, want: 3},
		{name: "garbage falls back", raw: "many", def: 7, want: 7},
		{name: "nil falls back", raw: nil, def: 7, want: 7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Int(tc.raw, tc.def)
			if got != tc.want {
				t.Fatalf("Int(%v) = %d, want %d", tc.raw, got, tc.want)
			}
		})
	}
}

func TestMapHelpers(t *testing.T) {
	src := map[string]any{
		"nickname": " donk ",
		"elo":      float64(3821),
		"winrate":  "60%",
		"games":    map[string]any{"data": map[string]any{"cs2": true}},
	}

	if got := MapString(src, "nickname"); got != "donk" {
		t.Fatalf("MapString = %q", got)
	}
	if got := MapInt(src, "elo", 0); got != 3821 {
		t.Fatalf("MapInt = %d", got)
	}
	if got := MapFloat(src, "winrate", 0); got != 60 {
		t.Fatalf("MapFloat = %v", got)
	}
	if got := MapFloat(src, "missing", 1.25); got != 1.25 {
		t.Fatalf("MapFloat default = %v", got)
	}
	nested := MapObject(src["games"])
	if nested == nil || nested["cs2"] != true {
		t.Fatalf("MapObject did not unwrap data envelope: %v", nested)
	}
	if got := FirstNonEmpty("", "  ", "ZywOo", "s1mple"); got != "ZywOo" {
		t.Fatalf("FirstNonEmpty = %q", got)
	}
}
