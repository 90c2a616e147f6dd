package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/helixml/docnav/domain/check"
	"github.com/helixml/docnav/infrastructure/api/jsonapi"
)

// printReport writes one line per problem followed by a summary.
func printReport(w io.Writer, r check.Report) {
	for _, p := range r.Problems() {
		fmt.Fprintln(w, p.Error())
	}
	fmt.Fprintln(w, summary(r))
}

// summary describes a report on one line.
func summary(r check.Report) string {
	status := "ok"
	if !r.OK() {
		status = fmt.Sprintf("%s %s", humanize.Comma(int64(len(r.Problems()))), plural(len(r.Problems()), "problem"))
	}
	pages := ""
	if r.PagesIndexed() > 0 {
		pages = fmt.Sprintf(", %s pages", humanize.Comma(int64(r.PagesIndexed())))
	}
	return fmt.Sprintf("%s: checked %s links in %s%s (%s) in %s",
		status,
		humanize.Comma(int64(r.LinksChecked())),
		strings.Join(r.Versions(), ", "),
		pages,
		r.ID(),
		r.Duration().Round(time.Millisecond),
	)
}

// writeReportJSON writes the report as a JSON:API document.
func writeReportJSON(w io.Writer, r check.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonapi.NewSingleResponse(jsonapi.CheckResource(r)))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
