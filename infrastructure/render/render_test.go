package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/helixml/docnav/domain/nav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// apiTree is the API group holding Usage then Board.
func apiTree() nav.Tree {
	return nav.NewTree([]nav.Entry{
		nav.NewGroup("API", []nav.Entry{
			nav.NewLink("Usage", "/pages/usage"),
			nav.NewLink("Board", "/pages/board"),
		}),
	})
}

func TestMenu_Text(t *testing.T) {
	got, err := String(apiTree(), FormatText)
	require.NoError(t, err)

	want := "API\n  Usage -> /pages/usage\n  Board -> /pages/board\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("text mismatch (-want +got):\n%s", diff)
	}
}

func TestMenu_Markdown(t *testing.T) {
	tree := nav.NewTree([]nav.Entry{
		nav.NewLink("Home", "/"),
		nav.NewGroup("API [v2]", []nav.Entry{
			nav.NewLink("Usage", "/pages/usage"),
			nav.NewLink("GitHub", "https://github.com/Disservin/chess-library"),
		}),
	})

	got, err := String(tree, FormatMarkdown, WithBase("/chess-library/"))
	require.NoError(t, err)

	want := strings.Join([]string{
		"- [Home](/chess-library/)",
		`- **API \[v2\]**`,
		"  - [Usage](/chess-library/pages/usage)",
		"  - [GitHub](https://github.com/Disservin/chess-library)",
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("markdown mismatch (-want +got):\n%s", diff)
	}
}

func TestMenu_MarkdownEscaping(t *testing.T) {
	tree := nav.NewTree([]nav.Entry{
		nav.NewGroup("# Parsing", []nav.Entry{
			nav.NewLink("<Board> `fen`", "/pages/board object"),
			nav.NewLink("+ extras", "https://en.wikipedia.org/wiki/Chess_(game)"),
			nav.NewLink("1. Start", "/pages/start"),
		}),
	})

	got, err := String(tree, FormatMarkdown)
	require.NoError(t, err)

	want := strings.Join([]string{
		`- **\# Parsing**`,
		"  - [\\<Board\\> \\`fen\\`](</pages/board object>)",
		`  - [\+ extras](<https://en.wikipedia.org/wiki/Chess_(game)>)`,
		`  - [1\. Start](/pages/start)`,
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("markdown mismatch (-want +got):\n%s", diff)
	}
}

func TestMenu_HTML(t *testing.T) {
	tree := nav.NewTree([]nav.Entry{
		nav.NewGroup("API", []nav.Entry{
			nav.NewLink("Usage", "/pages/usage"),
			nav.NewLink("Board", "/pages/board"),
		}).WithCollapsed(true),
		nav.NewLink("<script>", "https://example.com/?a=1&b=2"),
	})

	got, err := String(tree, FormatHTML, WithBase("/chess-library/"))
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(got))
	require.NoError(t, err)

	top := doc.Find("nav.docnav > ul > li")
	require.Equal(t, 2, top.Length())

	group := top.First()
	assert.True(t, group.HasClass("group"))
	assert.True(t, group.HasClass("collapsed"))
	assert.Equal(t, "API", group.ChildrenFiltered("span").Text())

	var labels, hrefs []string
	group.Find("ul > li > a").Each(func(_ int, s *goquery.Selection) {
		labels = append(labels, s.Text())
		hrefs = append(hrefs, s.AttrOr("href", ""))
	})
	assert.Equal(t, []string{"Usage", "Board"}, labels)
	assert.Equal(t, []string{"/chess-library/pages/usage", "/chess-library/pages/board"}, hrefs)

	external := top.Last().Find("a")
	assert.Equal(t, "<script>", external.Text())
	assert.Equal(t, "noopener", external.AttrOr("rel", ""))
	assert.NotContains(t, got, "<script>")
}

func TestMenu_JSON(t *testing.T) {
	got, err := String(apiTree(), FormatJSON)
	require.NoError(t, err)

	parsed, err := nav.ParseTree(got)
	require.NoError(t, err)

	api, ok := parsed.Find("API")
	require.True(t, ok)
	require.Equal(t, 2, api.Len())
	assert.Equal(t, "Usage", api.Items()[0].Label())
	assert.Equal(t, "Board", api.Items()[1].Label())
}

func TestMenu_Deterministic(t *testing.T) {
	for _, f := range Formats() {
		t.Run(string(f), func(t *testing.T) {
			first, err := String(apiTree(), f, WithBase("/chess-library/"))
			require.NoError(t, err)
			second, err := String(apiTree(), f, WithBase("/chess-library/"))
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestMenu_UnknownFormat(t *testing.T) {
	_, err := String(apiTree(), Format("pdf"))
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatText},
		{in: "TEXT", want: FormatText},
		{in: "md", want: FormatMarkdown},
		{in: "html", want: FormatHTML},
		{in: " json ", want: FormatJSON},
		{in: "yaml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHref(t *testing.T) {
	assert.Equal(t, "/chess-library/pages/usage", href("/pages/usage", "/chess-library/"))
	assert.Equal(t, "/chess-library/pages/usage", href("/chess-library/pages/usage", "/chess-library/"))
	assert.Equal(t, "/pages/usage", href("/pages/usage", "/"))
	assert.Equal(t, "https://x.dev", href("https://x.dev", "/chess-library/"))
}

func TestFormat_Metadata(t *testing.T) {
	assert.Equal(t, "application/json", FormatJSON.ContentType())
	assert.Equal(t, ".md", FormatMarkdown.Extension())
	assert.Equal(t, ".txt", FormatText.Extension())
}
