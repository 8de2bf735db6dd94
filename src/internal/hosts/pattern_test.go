package hosts

import "testing"

func TestPatternMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		host    string
		want    bool
	}{
		{"exact", "example.com", "example.com", true},
		{"exact ignores case", "Example.COM", "example.com", true},
		{"exact is not substring", "example.com", "dev.example.com", false},
		{"prefix wildcard", "dev.*", "dev.example.com", true},
		{"prefix wildcard other", "dev.*", "dev.other.com", true},
		{"prefix wildcard miss", "dev.*", "example.com", false},
		{"wildcard is anchored", "dev.*", "my.dev.example.com", false},
		{"dot is literal", "dev.*", "devxexample.com", false},
		{"suffix wildcard", "*.example.com", "api.dev.example.com", true},
		{"wildcard matches empty", "example*.com", "example.com", true},
		{"several wildcards", "*.*.com", "a.b.com", true},
		{"several wildcards miss", "*.*.com", "a.com", false},
		{"wildcard ignores case", "DEV.*", "dev.Example.com", true},
		{"metacharacters are literal", "a+b*", "a+b.com", true},
		{"metacharacters miss", "a+b*", "aab.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := CompilePattern(tt.pattern)
			if got := p.Match(tt.host); got != tt.want {
				t.Errorf("CompilePattern(%q).Match(%q) = %v, want %v", tt.pattern, tt.host, got, tt.want)
			}
		})
	}
}

func TestPatternString(t *testing.T) {
	if got := CompilePattern("dev.*").String(); got != "dev.*" {
		t.Errorf("Expected dev.*, got %s", got)
	}
}
