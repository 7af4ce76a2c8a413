package providers

import (
	"reflect"
	"testing"
)

func TestStringArg(t *testing.T) {
	args := map[string]interface{}{
		"eventId": float64(86392),
		"empty":   "",
		"name":    "Arsenal",
		"null":    nil,
	}

	tests := []struct {
		name   string
		keys   []string
		want   string
		wantOK bool
	}{
		{name: "numeric coerced", keys: []string{"eventId"}, want: "86392", wantOK: true},
		{name: "first present key wins", keys: []string{"missing", "name"}, want: "Arsenal", wantOK: true},
		{name: "empty string skipped", keys: []string{"empty", "name"}, want: "Arsenal", wantOK: true},
		{name: "nil skipped", keys: []string{"null"}, wantOK: false},
		{name: "absent", keys: []string{"missing"}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := StringArg(args, tt.keys...)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("StringArg(%v) = (%q, %v), want (%q, %v)", tt.keys, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestStringsArg(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  []string
	}{
		{name: "string slice", value: []string{"timeline", "stats"}, want: []string{"timeline", "stats"}},
		{name: "decoded JSON list", value: []interface{}{"timeline", "stats"}, want: []string{"timeline", "stats"}},
		{name: "single string", value: "timeline", want: []string{"timeline"}},
		{name: "empty string", value: "", want: nil},
		{name: "non-strings dropped", value: []interface{}{"timeline", 7, ""}, want: []string{"timeline"}},
		{name: "nil", value: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StringsArg(map[string]interface{}{"expand": tt.value}, "expand")
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("StringsArg() = %v, want %v", got, tt.want)
			}
		})
	}
}
