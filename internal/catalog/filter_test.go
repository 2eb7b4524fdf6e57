package catalog

import "testing"

var filterItems = []Item{
	{Name: "cloudflare-workers", Description: "Deploy Workers", Category: "Cloudflare"},
	{Name: "cloudflare-d1", Description: "Serverless SQLite", Category: "Cloudflare"},
	{Name: "react-hook-form", Description: "Forms for React apps", Category: "Web Development"},
	{Name: "brainstorming", Description: "Refine ideas"},
}

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		opts FilterOptions
		want []string
	}{
		{"no criteria", FilterOptions{}, []string{"cloudflare-workers", "cloudflare-d1", "react-hook-form", "brainstorming"}},
		{"search name", FilterOptions{Search: "CLOUDFLARE"}, []string{"cloudflare-workers", "cloudflare-d1"}},
		{"search description", FilterOptions{Search: "sqlite"}, []string{"cloudflare-d1"}},
		{"category", FilterOptions{Categories: []string{"web development"}}, []string{"react-hook-form"}},
		{"default category", FilterOptions{Categories: []string{"General"}}, []string{"brainstorming"}},
		{"pattern", FilterOptions{Patterns: []string{"cloudflare-*"}}, []string{"cloudflare-workers", "cloudflare-d1"}},
		{"brace pattern", FilterOptions{Patterns: []string{"{react,brain}*"}}, []string{"react-hook-form", "brainstorming"}},
		{"combined", FilterOptions{Search: "deploy", Patterns: []string{"cloudflare-*"}}, []string{"cloudflare-workers"}},
		{"no match", FilterOptions{Search: "kubernetes"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Filter(filterItems, tt.opts))
			if !equalNames(got, tt.want) {
				t.Errorf("Filter = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidatePatterns(t *testing.T) {
	if err := ValidatePatterns([]string{"cloudflare-*", "a?c", "{x,y}"}); err != nil {
		t.Errorf("ValidatePatterns(valid) error: %v", err)
	}
	if err := ValidatePatterns([]string{"[unclosed"}); err == nil {
		t.Error("ValidatePatterns([unclosed) should fail")
	}
}

func TestIsPattern(t *testing.T) {
	if IsPattern("plain-name") {
		t.Error("IsPattern(plain-name) = true")
	}
	for _, p := range []string{"a*", "a?", "[ab]", "{a,b}"} {
		if !IsPattern(p) {
			t.Errorf("IsPattern(%q) = false", p)
		}
	}
}
