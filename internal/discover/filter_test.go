package discover_test

import (
	"testing"

	"github.com/unbound-force/vitestlint/internal/config"
	"github.com/unbound-force/vitestlint/internal/discover"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		rel  string
		cfg  *config.Config
		want bool
	}{
		{"default keeps sources", "src/a.test.ts", nil, true},
		{"default excludes dist", "dist/a.js", nil, false},
		{"default excludes nested dist", "pkg/x/dist/a.js", nil, false},
		{"exclude base name", "src/deep/a.spec.js", &config.Config{Exclude: []string{"*.spec.js"}}, false},
		{"exclude path glob", "fixtures/a.js", &config.Config{Exclude: []string{"fixtures/**"}}, false},
		{"include misses", "src/a.js", &config.Config{Include: []string{"**/*.test.js"}}, false},
		{"include hits", "src/a.test.js", &config.Config{Include: []string{"**/*.test.js"}}, true},
		{"include then exclude", "e2e/a.test.js", &config.Config{Include: []string{"**/*.test.js"}, Exclude: []string{"e2e/**"}}, false},
		{"brace alternatives", "a.spec.mts", &config.Config{Include: []string{"*.{test,spec}.{ts,mts}"}}, true},
		{"invalid pattern never matches", "a.js", &config.Config{Exclude: []string{"[a"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := discover.Filter(tt.rel, tt.cfg); got != tt.want {
				t.Errorf("Filter(%q) = %v, want %v", tt.rel, got, tt.want)
			}
		})
	}
}
