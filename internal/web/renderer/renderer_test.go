package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		markup   string
		contains []string
	}{
		{
			name:     "plain paragraph",
			markup:   "Zapisy ruszają w poniedziałek.",
			contains: []string{"<p>", "Zapisy ruszają w poniedziałek."},
		},
		{
			name:     "emphasis",
			markup:   "Kurs *podstawowy* i /zaawansowany/.",
			contains: []string{"podstawowy</", "zaawansowany</"},
		},
		{
			name:     "list",
			markup:   "- pierwszy\n- drugi\n",
			contains: []string{"<ul>", "<li>", "pierwszy", "drugi"},
		},
		{
			name:     "source block is highlighted",
			markup:   "#+BEGIN_SRC go\nfunc main() {}\n#+END_SRC\n",
			contains: []string{"class=\"chroma\"", "main"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.markup)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, string(out), want)
			}
		})
	}
}

func TestRender_KeepsEveryLine(t *testing.T) {
	tests := []struct {
		name     string
		markup   string
		contains []string
	}{
		{name: "comment line", markup: "# Zapisy otwarte", contains: []string{"# Zapisy otwarte"}},
		{name: "keyword line", markup: "#+TITLE: Ogłoszenie", contains: []string{"#+TITLE: Ogłoszenie"}},
		{name: "bare hash", markup: "#", contains: []string{"#"}},
		{name: "comment block", markup: "#+BEGIN_COMMENT\nukryte\n#+END_COMMENT", contains: []string{"ukryte"}},
		{name: "rule", markup: "przed\n-----\npo", contains: []string{"przed", "po"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.markup)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, string(out), want)
			}
			assert.NotContains(t, string(out), `class="title"`)
			assert.NotContains(t, string(out), "<hr")
		})
	}
}

func TestEscapeLiteralLines_LeavesSourceBlocks(t *testing.T) {
	src := "#+BEGIN_SRC python\n# komentarz\n#+END_SRC"
	assert.Equal(t, src, escapeLiteralLines(src))

	assert.Equal(t, "tekst\n"+zeroWidthSpace+"# uwaga", escapeLiteralLines("tekst\n# uwaga"))
}

func TestRender_Blank(t *testing.T) {
	out, err := Render("  \n\t")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRender_EscapesHTML(t *testing.T) {
	out, err := Render("<script>alert(1)</script>")
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
}
