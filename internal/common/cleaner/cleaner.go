package cleaner

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/project-tktt/job-viewer/internal/domain"
)

// Cleaner sanitizes detail payloads using Bluemonday
type Cleaner struct {
	policy *bluemonday.Policy
	strict *bluemonday.Policy
}

// NewCleaner creates a new HTML cleaner with a safe policy
func NewCleaner() *Cleaner {
	// Allow basic formatting and tables (important dates are often tabular)
	policy := bluemonday.NewPolicy()
	policy.AllowElements("p", "br", "div", "span")
	policy.AllowElements("strong", "b", "em", "i", "u")
	policy.AllowElements("ul", "ol", "li")
	policy.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowTables()

	// Allow links but strip javascript:
	policy.AllowAttrs("href").OnElements("a")
	policy.AllowRelativeURLs(true)
	policy.RequireParseableURLs(true)
	policy.AllowURLSchemes("http", "https", "mailto")
	policy.RequireNoFollowOnLinks(true)

	return &Cleaner{policy: policy, strict: bluemonday.StrictPolicy()}
}

// Clean sanitizes HTML content
func (c *Cleaner) Clean(content string) string {
	return c.policy.Sanitize(content)
}

// CleanToText removes all HTML and returns plain text
func (c *Cleaner) CleanToText(s string) string {
	// The strict policy escapes text; decode it back to plain characters
	text := html.UnescapeString(c.strict.Sanitize(s))

	// Clean up whitespace
	text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	return strings.TrimSpace(text)
}

// CleanDetail sanitizes the html body and strips markup from list entries
func (c *Cleaner) CleanDetail(d *domain.Detail) {
	if d == nil {
		return
	}
	d.HTML = c.Clean(d.HTML)
	d.PostName = c.CleanToText(d.PostName)
	d.CompanyName = c.CleanToText(d.CompanyName)
	d.OfficialNotificationStatus = c.CleanToText(d.OfficialNotificationStatus)

	lists := []*[]string{
		&d.ImportantDates, &d.SalaryDetails, &d.Eligibility, &d.DesirableSkills,
		&d.Experience, &d.SelectionProcess, &d.GeneralInstructions, &d.HowToApply,
	}
	for _, list := range lists {
		*list = c.cleanList(*list)
	}
	d.Salary = c.cleanList(d.Salary)
	d.AgeLimit = c.cleanList(d.AgeLimit)
}

func (c *Cleaner) cleanList(in []string) []string {
	if len(in) == 0 {
		return in
	}
	out := in[:0]
	for _, s := range in {
		if s = c.CleanToText(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
