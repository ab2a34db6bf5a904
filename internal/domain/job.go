package domain

import (
	"encoding/json"
	"strings"
)

// Job represents a normalized government job posting
type Job struct {
	// ID is the 1-based position in the current list; reassigned on every rebuild
	ID            int    `json:"id,omitempty"`
	Title         string `json:"title"`
	Board         string `json:"board"`
	Qualification string `json:"qualification"` // comma-joined list
	LastDate      string `json:"lastDate"`      // ISO-ish, may be unparsable
	URL           string `json:"url,omitempty"`
	Source        string `json:"source"`
	PostCount     *int   `json:"postCount"`
	State         string `json:"state,omitempty"` // empty means unknown

	// Extended fields, filled from details
	CompanyName string `json:"companyName,omitempty"`
	AdvtNo      string `json:"advtNo,omitempty"`
	Salary      string `json:"salary,omitempty"`
	AgeLimit    string `json:"ageLimit,omitempty"`
	PostName    string `json:"postName,omitempty"`
	NoOfPosts   string `json:"noOfPosts,omitempty"`
}

// Key returns the dedup key: URL, falling back to title
func (j Job) Key() string {
	if j.URL != "" {
		return j.URL
	}
	return j.Title
}

// HasState reports whether a state is present
func (j Job) HasState() bool {
	return j.State != ""
}

// Detail is the extended payload for a single posting
type Detail struct {
	PostName                   string          `json:"postName,omitempty"`
	NoOfPosts                  string          `json:"noOfPosts,omitempty"`
	Salary                     TextList        `json:"salary,omitempty"`
	AgeLimit                   TextList        `json:"ageLimit,omitempty"`
	CompanyName                string          `json:"companyName,omitempty"`
	AdvtNo                     string          `json:"advtNo,omitempty"`
	Qualification              TextList        `json:"qualification,omitempty"`
	ImportantDatesTable        []ImportantDate `json:"importantDatesTable,omitempty"`
	ImportantDates             []string        `json:"importantDates,omitempty"`
	StartDate                  string          `json:"startDate,omitempty"`
	LastDate                   string          `json:"lastDate,omitempty"`
	OfficialWebsites           []string        `json:"officialWebsites,omitempty"`
	ImportantLinks             []ImportantLink `json:"importantLinks,omitempty"`
	SalaryDetails              []string        `json:"salaryDetails,omitempty"`
	Eligibility                []string        `json:"eligibility,omitempty"`
	DesirableSkills            []string        `json:"desirableSkills,omitempty"`
	Experience                 []string        `json:"experience,omitempty"`
	SelectionProcess           []string        `json:"selectionProcess,omitempty"`
	GeneralInstructions        []string        `json:"generalInstructions,omitempty"`
	HowToApply                 []string        `json:"howToApply,omitempty"`
	OfficialNotificationStatus string          `json:"officialNotificationStatus,omitempty"`
	HTML                       string          `json:"html,omitempty"`
}

// ImportantDate is one row of the important dates table
type ImportantDate struct {
	Event string `json:"event"`
	Date  string `json:"date"`
}

// ImportantLink is an apply/notification/website link on a posting
type ImportantLink struct {
	Type    string `json:"type"`
	Label   string `json:"label"`
	Display string `json:"display"`
	URL     string `json:"url"`
}

// TextList accepts either a JSON string or an array of strings.
// Upstream emits ageLimit and salary in both shapes.
type TextList []string

func (t *TextList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s = strings.TrimSpace(s); s != "" {
			*t = TextList{s}
		} else {
			*t = nil
		}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		// Treat anything else as absent
		*t = nil
		return nil
	}
	*t = list
	return nil
}

// String joins the entries for single-line display
func (t TextList) String() string {
	return strings.Join(t, "; ")
}

// ApplyDetail copies extended fields from a detail payload onto the job.
// Fields already present on the job are kept.
func (j *Job) ApplyDetail(d *Detail) {
	if d == nil {
		return
	}
	setIfEmpty(&j.PostName, d.PostName)
	setIfEmpty(&j.NoOfPosts, d.NoOfPosts)
	setIfEmpty(&j.Salary, d.Salary.String())
	setIfEmpty(&j.AgeLimit, d.AgeLimit.String())
	setIfEmpty(&j.CompanyName, d.CompanyName)
	setIfEmpty(&j.AdvtNo, d.AdvtNo)
	setIfEmpty(&j.Qualification, strings.Join(d.Qualification, ", "))
	setIfEmpty(&j.LastDate, d.LastDate)
}

func setIfEmpty(dst *string, val string) {
	if *dst == "" && val != "" {
		*dst = val
	}
}
