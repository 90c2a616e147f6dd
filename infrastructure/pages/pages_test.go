package pages

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/helixml/docnav/domain/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paths(c site.Catalog) []string {
	var result []string
	for _, p := range c.Pages() {
		result = append(result, p.Path())
	}
	return result
}

func TestMarkdownSource_Catalog(t *testing.T) {
	catalog, err := NewMarkdownSource("testdata/docs").Catalog(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"/index", "/pages/board-object", "/pages/usage"}, paths(catalog)); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}

	index, ok := catalog.Page("/index")
	require.True(t, ok)
	assert.Equal(t, "C++ Chess", index.Title())
	assert.Equal(t, []string{"/pages/usage", "./pages/board-object.md#fen"}, index.Links())
	assert.Positive(t, index.Size())

	usage, ok := catalog.Page("/pages/usage")
	require.True(t, ok)
	assert.Equal(t, "Usage", usage.Title())
	assert.Equal(t, []string{
		"board-object.md",
		"/pages/move-gen",
		"https://github.com/Disservin/chess-library",
	}, usage.Links())

	board, ok := catalog.Page("/pages/board-object")
	require.True(t, ok)
	assert.Equal(t, "Board Object", board.Title())
	assert.Equal(t, []string{"./usage.md", "/pages/pgn-parsing"}, board.Links())
}

func TestMarkdownSource_MissingRoot(t *testing.T) {
	_, err := NewMarkdownSource("testdata/missing").Catalog(context.Background())
	assert.Error(t, err)

	_, err = NewMarkdownSource("testdata/docs/index.md").Catalog(context.Background())
	assert.Error(t, err)
}

func TestMarkdownSource_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMarkdownSource("testdata/docs").Catalog(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTMLSource_Catalog(t *testing.T) {
	catalog, err := NewHTMLSource("testdata/html").Catalog(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"/404", "/index", "/pages/board-object", "/pages/usage"}, paths(catalog)); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}

	index, _ := catalog.Page("/index")
	assert.Equal(t, "C++ Chess", index.Title())
	assert.Equal(t, []string{
		"/chess-library/pages/usage.html",
		"https://github.com/Disservin/chess-library",
		"#top",
	}, index.Links())

	usage, _ := catalog.Page("/pages/usage")
	assert.Equal(t, "Usage", usage.Title())
	assert.Equal(t, []string{"board-object.html", "/chess-library/pages/move-gen.html#legal"}, usage.Links())

	board, _ := catalog.Page("/pages/board-object")
	assert.Equal(t, "Board Object | C++ Chess", board.Title())
	assert.Empty(t, board.Links())
}

func TestParseMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		title string
	}{
		{name: "front matter wins", input: "---\ntitle: From FM\n---\n# Heading\n", title: "From FM"},
		{name: "heading fallback", input: "---\nlayout: doc\n---\n\n# Heading\n", title: "Heading"},
		{name: "heading in fence ignored", input: "```\n# not this\n```\n# This\n", title: "This"},
		{name: "unterminated front matter", input: "---\ntitle: x\n# Real\n", title: "Real"},
		{name: "crlf front matter", input: "---\r\ntitle: Windows\r\n---\r\nbody\r\n", title: "Windows"},
		{name: "no title", input: "plain text\n", title: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, _ := parseMarkdown([]byte(tt.input))
			assert.Equal(t, tt.title, title)
		})
	}
}

func TestScanMarkdown_Links(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "inline links and images",
			input: "[a](/a) ![img](/i.png) [b](<b.md>) [c](/c \"C\")\n\n[e]( /e )\n",
			want:  []string{"/a", "b.md", "/c", "/e"},
		},
		{
			name:  "fenced code",
			input: "~~~\n[d](/d)\n~~~\n[e](/e)\n",
			want:  []string{"/e"},
		},
		{
			name:  "code span",
			input: "Use `arr[i](x)` to index.\n",
			want:  nil,
		},
		{
			name:  "indented code block",
			input: "Text.\n\n    [indented](./code-block)\n",
			want:  nil,
		},
		{
			name:  "reference links",
			input: "See the [board][b] and [Usage].\n\n[b]: ./missing-board\n[usage]: /pages/usage \"Usage\"\n",
			want:  []string{"./missing-board", "/pages/usage"},
		},
		{
			name:  "autolink",
			input: "Mail <mailto:someone@example.com> or <https://example.com>.\n",
			want:  []string{"mailto:someone@example.com", "https://example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, links := scanMarkdown([]byte(tt.input))
			assert.Equal(t, tt.want, links)
		})
	}
}

func TestScanMarkdown_HeadingText(t *testing.T) {
	heading, _ := scanMarkdown([]byte("## Sub\n\n# The `Board` *object*\n"))
	assert.Equal(t, "The Board object", heading)
}

func TestSelect(t *testing.T) {
	assert.Nil(t, Select("", ""))

	md, ok := Select("docs", "").(MarkdownSource)
	require.True(t, ok)
	assert.Equal(t, "docs", md.Root())

	html, ok := Select("docs", "dist").(HTMLSource)
	require.True(t, ok)
	assert.Equal(t, "dist", html.Root())
}
