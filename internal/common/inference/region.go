package inference

import "strings"

// JammuKashmir is the state assigned by the J&K marker rule
const JammuKashmir = "Jammu & Kashmir"

// Regions is the ordered candidate list for InferRegion.
// Order is the tie-break: the first candidate with a matching token wins.
var Regions = []string{
	"Andhra Pradesh",
	"Arunachal Pradesh",
	"Assam",
	"Bihar",
	"Chhattisgarh",
	"Goa",
	"Gujarat",
	"Haryana",
	"Himachal Pradesh",
	"Jharkhand",
	"Karnataka",
	"Kerala",
	"Madhya Pradesh",
	"Maharashtra",
	"Manipur",
	"Meghalaya",
	"Mizoram",
	"Nagaland",
	"Odisha",
	"Punjab",
	"Rajasthan",
	"Sikkim",
	"Tamil Nadu",
	"Telangana",
	"Tripura",
	"Uttar Pradesh",
	"Uttarakhand",
	"West Bengal",
	"Andaman & Nicobar",
	"Chandigarh",
	"Dadra & Nagar Haveli",
	"Daman & Diu",
	"Delhi",
	JammuKashmir,
	"Ladakh",
	"Lakshadweep",
	"Puducherry",
}

// jkMarkers are matched against the padded, lowercased title+board text
var jkMarkers = []string{" j&k", "j&k ", " jk ", "jkssb", "jkpsc", " jammu", " kashmir"}

// regionTokens is Regions pre-split into lowercased tokens longer than 2 chars
var regionTokens = func() [][]string {
	out := make([][]string, len(Regions))
	for i, r := range Regions {
		for _, tok := range strings.Fields(strings.ToLower(r)) {
			if len(tok) > 2 {
				out[i] = append(out[i], tok)
			}
		}
	}
	return out
}()

// InferRegion returns the first region having any token present in text.
// text is expected to be lowercased already. Returns "" when nothing matches.
func InferRegion(text string) string {
	for i, tokens := range regionTokens {
		for _, tok := range tokens {
			if strings.Contains(text, tok) {
				return Regions[i]
			}
		}
	}
	return ""
}

// MatchRegion returns the canonical region whose name equals label
// (case-insensitive), or "" if label is not a region name.
func MatchRegion(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}
	for _, r := range Regions {
		if strings.EqualFold(r, label) {
			return r
		}
	}
	return ""
}

func isJammuKashmir(text string) bool {
	for _, m := range jkMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
