package content

// AboutContent is the singleton free-text record shown on the about page.
// It has no id; there is always exactly one logical instance, replaced
// wholesale on every update.
type AboutContent struct {
	Content string `json:"content"`
}

// DefaultAbout is the value materialized when the store has no about record
// yet. Reads of the default are idempotent; nothing is written until the
// first explicit update.
func DefaultAbout() AboutContent {
	return AboutContent{Content: ""}
}
