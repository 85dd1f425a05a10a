package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Listing is one posting as the upstream feed returns it. Every field is optional
// upstream; absent values decode to "" or nil.
type Listing struct {
	ID             ListingID `json:"id"`
	Title          string    `json:"jobTitle,omitempty"`
	CompanyName    string    `json:"companyName,omitempty"`
	CompanyLogoURL string    `json:"companyLogo,omitempty"`
	Geo            string    `json:"jobGeo,omitempty"`
	JobType        Tags      `json:"jobType,omitempty"`
	JobLevel       string    `json:"jobLevel,omitempty"`
	Excerpt        string    `json:"jobExcerpt,omitempty"`
	Description    string    `json:"jobDescription,omitempty"`
	PubDate        string    `json:"pubDate,omitempty"`
	ApplyURL       string    `json:"url,omitempty"`
}

// PrimaryType is the first jobType tag, or "" when there are none.
func (l Listing) PrimaryType() string {
	if len(l.JobType) == 0 {
		return ""
	}
	return l.JobType[0]
}

// ListingID accepts the upstream id as a JSON number or string. Any other JSON
// value decodes to "" so one odd record does not reject the whole feed.
type ListingID string

func (id *ListingID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ListingID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = ListingID(n.String())
		return nil
	}

	*id = ""
	return nil
}

func (id ListingID) String() string { return string(id) }

// Tags can unmarshal from either a string or []string.
type Tags []string

func (t *Tags) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*t = arr
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if str != "" {
			*t = Tags{str}
		} else {
			*t = nil
		}
		return nil
	}

	// anything else (null, objects) counts as no tags
	*t = nil
	return nil
}
