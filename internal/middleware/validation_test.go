package middleware

import (
	"encoding/json"
	"testing"
)

func TestValidateChannelName(t *testing.T) {
	long := ""
	for i := 0; i < 201; i++ {
		long += "x"
	}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "MrBeast", "MrBeast", false},
		{"with spaces kept verbatim", " Linus Tech Tips ", " Linus Tech Tips ", false},
		{"empty", "", "", true},
		{"too long", long, "", true},
		{"exactly 200", long[:200], long[:200], false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateChannelName(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateChannels(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{"plain strings", `["A", "B"]`, []string{"A", "B"}, false},
		{"objects", `[{"channelName": "A"}, {"channelName": "B"}]`, []string{"A", "B"}, false},
		{"mixed", `["A", {"channelName": "B"}]`, []string{"A", "B"}, false},
		{"object without channelName", `[{"name": "A"}]`, nil, true},
		{"numeric entry", `[42]`, nil, true},
		{"empty string entry", `[""]`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw []json.RawMessage
			if err := json.Unmarshal([]byte(tt.input), &raw); err != nil {
				t.Fatalf("bad test input: %v", err)
			}

			got, errMsg := ValidateChannels(raw)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestValidateChannelsNil(t *testing.T) {
	if _, errMsg := ValidateChannels(nil); errMsg != "Channels array is required" {
		t.Errorf("errMsg = %q", errMsg)
	}
}

func TestValidateVideoInput(t *testing.T) {
	long := ""
	for i := 0; i < 501; i++ {
		long += "x"
	}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "https://youtu.be/dQw4w9WgXcQ", "https://youtu.be/dQw4w9WgXcQ", false},
		{"trims whitespace", "  https://youtu.be/dQw4w9WgXcQ  ", "https://youtu.be/dQw4w9WgXcQ", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"too long", long, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateVideoInput(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
