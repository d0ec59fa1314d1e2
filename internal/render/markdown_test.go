// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"strings"
	"testing"
)

func TestMarkdown_HTML(t *testing.T) {
	m := NewMarkdown()

	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "heading and emphasis",
			input:    "# Welcome\n\nWe teach **math** and *physics*.",
			contains: []string{`<h1 id="welcome">Welcome</h1>`, "<strong>math</strong>", "<em>physics</em>"},
		},
		{
			name:     "gfm table",
			input:    "| Grade | Fee |\n|---|---|\n| 9 | 500 |",
			contains: []string{"<table>", "<td>500</td>"},
		},
		{
			name:     "amharic text",
			input:    "እንኳን ደህና መጡ",
			contains: []string{"<p>እንኳን ደህና መጡ</p>"},
		},
		{
			name:     "script stripped",
			input:    "Hello <script>alert(1)</script>",
			contains: []string{"Hello"},
			excludes: []string{"<script", "alert(1)"},
		},
		{
			name:     "event handler stripped",
			input:    `<img src="/uploads/news/a.jpg" onerror="alert(1)">`,
			contains: []string{`src="/uploads/news/a.jpg"`},
			excludes: []string{"onerror"},
		},
		{
			name:     "javascript link stripped",
			input:    "[click](javascript:alert(1))",
			excludes: []string{"javascript:"},
		},
		{
			name:     "external link hardened",
			input:    "[forms](https://forms.gle/abc)",
			contains: []string{`rel="nofollow noopener"`, `target="_blank"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.HTML(tt.input)
			if err != nil {
				t.Fatalf("HTML() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("HTML() = %q, want it to contain %q", got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("HTML() = %q, must not contain %q", got, bad)
				}
			}
		})
	}
}
