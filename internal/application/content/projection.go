package content

import (
	"html"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/portfolio/backend/internal/domain/content"
)

// DisplayProject is one entry of the public, read-only view. It carries the
// stored fields plus a pre-rendered descriptionHtml so clients render links
// without parsing the raw text themselves.
type DisplayProject struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	TitleURL        string   `json:"titleUrl"`
	Description     string   `json:"description"`
	DescriptionHTML string   `json:"descriptionHtml"`
	Technologies    []string `json:"technologies"`
	Date            string   `json:"date"`
	MediaURL        *string  `json:"mediaUrl"`
	MediaType       *string  `json:"mediaType"`
}

// ProjectionService derives the public view from stored records. It is pure:
// no I/O, no mutation of its input.
type ProjectionService struct{}

// NewProjectionService creates a new ProjectionService
func NewProjectionService() *ProjectionService {
	return &ProjectionService{}
}

// dateLayouts are tried in order when ranking records. "January 2006" is the
// form the admin UI produces; the numeric forms cover hand-edited stores.
var dateLayouts = []string{
	"January 2006",
	"Jan 2006",
	"2006-01-02",
	"1/2/2006",
	"January 2, 2006",
}

// Project returns the display view: newest first by parsed date, ties kept in
// storage order, unparsable dates ranked last. Input records are copied, never
// aliased.
func (s *ProjectionService) Project(records []content.Project) []DisplayProject {
	out := make([]DisplayProject, 0, len(records))
	for i := range records {
		p := records[i].Clone()
		out = append(out, DisplayProject{
			ID:              p.ID,
			Title:           p.Title,
			TitleURL:        p.TitleURL,
			Description:     p.Description,
			DescriptionHTML: LinkifyDescription(p.Description),
			Technologies:    p.Technologies,
			Date:            p.Date,
			MediaURL:        p.MediaURL,
			MediaType:       p.MediaType,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, oki := parseDisplayDate(out[i].Date)
		tj, okj := parseDisplayDate(out[j].Date)
		if oki != okj {
			return oki // parsable dates rank above unparsable ones
		}
		if !oki {
			return false
		}
		return ti.After(tj)
	})
	return out
}

func parseDisplayDate(s string) (time.Time, bool) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var urlPattern = regexp.MustCompile(`https?://[^\s<>"]+`)

// LinkifyDescription renders a description as HTML: text is escaped, bare
// http(s) URLs become anchors. Trailing sentence punctuation stays outside
// the link so "see https://example.com." links the URL, not the period.
func LinkifyDescription(text string) string {
	var b strings.Builder
	last := 0
	for _, loc := range urlPattern.FindAllStringIndex(text, -1) {
		b.WriteString(html.EscapeString(text[last:loc[0]]))
		url := text[loc[0]:loc[1]]
		trimmed := strings.TrimRight(url, ".,;:!?)")
		rest := url[len(trimmed):]
		b.WriteString(`<a href="` + html.EscapeString(trimmed) + `" target="_blank" rel="noopener noreferrer">`)
		b.WriteString(html.EscapeString(trimmed))
		b.WriteString(`</a>`)
		b.WriteString(html.EscapeString(rest))
		last = loc[1]
	}
	b.WriteString(html.EscapeString(text[last:]))
	return b.String()
}
