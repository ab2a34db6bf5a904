package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/project-tktt/job-viewer/internal/domain"
)

// Link types used by ImportantLinks
const (
	LinkApplyOnline          = "applyOnline"
	LinkOfficialNotification = "officialNotification"
	LinkOfficialWebsite      = "officialWebsite"
	LinkOther                = "other"
)

// ExtractLinks finds apply/notification/website anchors in a detail html body.
// Relative hrefs are resolved against base. Duplicate URLs are skipped.
func ExtractLinks(html string, base string) []domain.ImportantLink {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	baseURL, _ := url.Parse(base)
	seen := make(map[string]bool)
	var links []domain.ImportantLink

	doc.Find("a[href]").Each(func(i int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}

		u, err := url.Parse(href)
		if err != nil {
			return
		}
		if baseURL != nil {
			u = baseURL.ResolveReference(u)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return
		}
		abs := u.String()
		if seen[abs] {
			return
		}
		seen[abs] = true

		display := strings.TrimSpace(a.Text())
		label := rowLabel(a)
		links = append(links, domain.ImportantLink{
			Type:    classify(label+" "+display, abs),
			Label:   label,
			Display: display,
			URL:     abs,
		})
	})

	return links
}

// OfficialWebsites returns the URLs of links classified as official websites
func OfficialWebsites(links []domain.ImportantLink) []string {
	var out []string
	for _, l := range links {
		if l.Type == LinkOfficialWebsite && l.URL != "" {
			out = append(out, l.URL)
		}
	}
	return out
}

// rowLabel returns the text of the first cell when the anchor sits in a table row
func rowLabel(a *goquery.Selection) string {
	row := a.Closest("tr")
	if row.Length() == 0 {
		return ""
	}
	first := row.Children().First()
	if first.Find("a").Length() > 0 {
		return ""
	}
	return strings.TrimSpace(first.Text())
}

func classify(text, href string) string {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "apply"):
		return LinkApplyOnline
	case strings.Contains(t, "notification"), strings.HasSuffix(strings.ToLower(href), ".pdf"):
		return LinkOfficialNotification
	case strings.Contains(t, "official website"), strings.Contains(t, "official site"):
		return LinkOfficialWebsite
	}
	return LinkOther
}
