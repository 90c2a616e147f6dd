package service

import (
	"context"
	"testing"

	"github.com/helixml/docnav/domain/check"
	"github.com/helixml/docnav/domain/nav"
	"github.com/helixml/docnav/domain/site"
	"github.com/helixml/docnav/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChecker(prober Prober, concurrency int) *Checker {
	cfg := config.NewCheckConfig().WithConcurrency(concurrency).WithExternalConcurrency(2)
	return NewChecker(cfg, prober, discardLogger())
}

func problemStrings(problems []check.Problem) []string {
	result := make([]string, len(problems))
	for i, p := range problems {
		result[i] = p.Error()
	}
	return result
}

func TestChecker_DanglingLink(t *testing.T) {
	catalog := catalogOf(page("/index"), page("/pages/usage"))

	out, err := newTestChecker(nil, 2).Check(context.Background(),
		[]site.Site{chessSite("v0.6", apiGroup())}, WithCatalog(catalog))
	require.NoError(t, err)

	require.Len(t, out.Problems, 1)
	p := out.Problems[0]
	assert.Equal(t, check.KindDanglingLink, p.Kind())
	assert.Equal(t, "v0.6", p.Version())
	assert.Equal(t, check.SourceSidebar, p.Source())
	assert.Equal(t, []string{"API", "Board"}, p.Path())
	assert.Equal(t, "/pages/board", p.Link())
	assert.Equal(t, 3, out.LinksChecked)
}

func TestChecker_BaseQualifiedLinksResolve(t *testing.T) {
	st := chessSite("v0.6", nav.NewLink("Usage", "/chess-library/pages/usage.html#top"))
	catalog := catalogOf(page("/index"), page("/pages/usage"))

	out, err := newTestChecker(nil, 1).Check(context.Background(), []site.Site{st}, WithCatalog(catalog))
	require.NoError(t, err)
	assert.Empty(t, out.Problems)
}

func TestChecker_StructureOnlyWithoutCatalog(t *testing.T) {
	st := chessSite("v0.6",
		nav.NewLink("Usage", "/pages/usage"),
		nav.NewLink("Usage", "/pages/other"),
		nav.NewGroup("Empty", nil),
	)

	out, err := newTestChecker(nil, 1).Check(context.Background(), []site.Site{st})
	require.NoError(t, err)

	kinds := make([]check.Kind, len(out.Problems))
	for i, p := range out.Problems {
		kinds[i] = p.Kind()
	}
	assert.Equal(t, []check.Kind{check.KindDuplicateLabel, check.KindEmptyGroup}, kinds)
	assert.Zero(t, out.LinksChecked)
}

func TestChecker_DeterministicAcrossConcurrency(t *testing.T) {
	sites := []site.Site{
		chessSite("v0.4", nav.NewLink("Move Generation", "/pages/move-generation")),
		chessSite("v0.5", apiGroup()),
		chessSite("v0.6", apiGroup(), nav.NewLink("PGN", "/pages/pgn")),
		chessSite("v0.7", nav.NewLink("Usage", "/pages/usage")),
	}
	catalog := catalogOf(page("/index"), page("/pages/usage"))

	var first []string
	for _, n := range []int{1, 2, 4, 8} {
		out, err := newTestChecker(nil, n).Check(context.Background(), sites, WithCatalog(catalog))
		require.NoError(t, err)
		got := problemStrings(out.Problems)
		if first == nil {
			first = got
			continue
		}
		assert.Equal(t, first, got, "concurrency %d", n)
	}

	assert.Equal(t, []string{
		"v0.4 sidebar Move Generation: dangling_link /pages/move-generation: page /pages/move-generation does not exist",
		"v0.5 sidebar API > Board: dangling_link /pages/board: page /pages/board does not exist",
		"v0.6 sidebar API > Board: dangling_link /pages/board: page /pages/board does not exist",
		"v0.6 sidebar PGN: dangling_link /pages/pgn: page /pages/pgn does not exist",
	}, first)
}

func TestChecker_ContentLinks(t *testing.T) {
	catalog := catalogOf(
		page("/index", "/pages/usage", "./pages/board-object.md#fen", "#top", githubURL),
		page("/pages/usage", "board-object.md", "/pages/move-gen", "/chess-library/pages/types.html"),
		page("/pages/board-object", "./usage.md", "../pages/missing.md"),
	)
	st := chessSite("v0.6", nav.NewLink("Usage", "/pages/usage"))

	off, err := newTestChecker(nil, 1).Check(context.Background(), []site.Site{st}, WithCatalog(catalog))
	require.NoError(t, err)
	assert.Empty(t, off.Problems)

	on, err := newTestChecker(nil, 1).Check(context.Background(), []site.Site{st},
		WithCatalog(catalog), WithContentLinks(true))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"page /pages/board-object: dangling_content_link ../pages/missing.md: page /pages/missing does not exist",
		"page /pages/usage: dangling_content_link /pages/move-gen: page /pages/move-gen does not exist",
		"page /pages/usage: dangling_content_link /chess-library/pages/types.html: page /pages/types does not exist",
	}, problemStrings(on.Problems))
	assert.Equal(t, off.LinksChecked+7, on.LinksChecked)
}

func TestChecker_NonWebSchemes(t *testing.T) {
	irc := "irc://libera.chat/#chess"
	ftp := "ftp://ftp.example.com/x"
	catalog := catalogOf(
		page("/index"),
		page("/pages/usage", "javascript:void(0)", ftp, "data:text/plain,hi", "tel:+123", "/chess-library"),
	)
	st := chessSite("v0.6", nav.NewLink("Usage", "/pages/usage"), nav.NewLink("Chat", irc))
	prober := newFakeProber()

	out, err := newTestChecker(prober, 1).Check(context.Background(), []site.Site{st},
		WithCatalog(catalog), WithContentLinks(true), WithExternalLinks(true))
	require.NoError(t, err)

	assert.Empty(t, problemStrings(out.Problems))
	assert.Zero(t, prober.callCount(irc))
	assert.Zero(t, prober.callCount(ftp))
	assert.Equal(t, 1, prober.callCount(githubURL))
}

func TestChecker_ContentLinksNeedCatalog(t *testing.T) {
	out, err := newTestChecker(nil, 1).Check(context.Background(),
		[]site.Site{chessSite("v0.6", apiGroup())}, WithContentLinks(true))
	require.NoError(t, err)
	assert.Empty(t, out.Problems)
}

func TestChecker_ExternalLinks(t *testing.T) {
	broken := "https://example.com/gone"
	prober := newFakeProber(broken)
	sites := []site.Site{
		chessSite("v0.6", nav.NewLink("Gone", broken), nav.NewLink("Mail", "mailto:x@example.com")),
		chessSite("v0.7", nav.NewLink("Gone", broken)),
	}

	out, err := newTestChecker(prober, 2).Check(context.Background(), sites, WithExternalLinks(true))
	require.NoError(t, err)

	assert.Equal(t, 1, prober.callCount(broken))
	assert.Equal(t, 1, prober.callCount(githubURL))
	assert.Zero(t, prober.callCount("mailto:x@example.com"))

	require.Len(t, out.Problems, 2)
	for i, version := range []string{"v0.6", "v0.7"} {
		p := out.Problems[i]
		assert.Equal(t, check.KindUnreachableExternal, p.Kind())
		assert.Equal(t, version, p.Version())
		assert.Equal(t, broken, p.Link())
		assert.Equal(t, errUnreachable.Error(), p.Message())
	}
	assert.Equal(t, 4, out.LinksChecked)
}

func TestChecker_ExternalNeedsProber(t *testing.T) {
	_, err := newTestChecker(nil, 1).Check(context.Background(),
		[]site.Site{chessSite("v0.6", apiGroup())}, WithExternalLinks(true))
	assert.Error(t, err)
}

func TestChecker_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestChecker(newFakeProber(), 1).Check(ctx,
		[]site.Site{chessSite("v0.6", apiGroup())}, WithExternalLinks(true))
	assert.ErrorIs(t, err, context.Canceled)
}
