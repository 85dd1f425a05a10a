package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingDecodeUpstreamShape(t *testing.T) {
	raw := `{
		"id": 112233,
		"jobTitle": "Backend Dev",
		"companyName": "Acme",
		"companyLogo": "https://jobicy.com/data/logo.png",
		"jobGeo": "Berlin",
		"jobType": ["full-time", "remote"],
		"jobLevel": "Senior",
		"jobExcerpt": "<p>Go services</p>",
		"jobDescription": "<p>Long text</p>",
		"pubDate": "2025-05-01 10:00:00",
		"url": "https://jobicy.com/jobs/112233"
	}`

	var l Listing
	require.NoError(t, json.Unmarshal([]byte(raw), &l))

	assert.Equal(t, ListingID("112233"), l.ID)
	assert.Equal(t, "Backend Dev", l.Title)
	assert.Equal(t, "full-time", l.PrimaryType())
	assert.Equal(t, "Senior", l.JobLevel)
	assert.Equal(t, "https://jobicy.com/jobs/112233", l.ApplyURL)
}

func TestListingDecodeLooseFields(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantID   ListingID
		wantType string
		wantTags int
	}{
		{name: "string id and bare type", raw: `{"id":"abc","jobType":"contract"}`, wantID: "abc", wantType: "contract", wantTags: 1},
		{name: "null type", raw: `{"id":7,"jobType":null}`, wantID: "7", wantType: "", wantTags: 0},
		{name: "empty type list", raw: `{"id":8,"jobType":[]}`, wantID: "8", wantType: "", wantTags: 0},
		{name: "missing everything", raw: `{}`, wantID: "", wantType: "", wantTags: 0},
		{name: "bool id", raw: `{"id":true,"jobType":"contract"}`, wantID: "", wantType: "contract", wantTags: 1},
		{name: "object id", raw: `{"id":{"n":1}}`, wantID: "", wantType: "", wantTags: 0},
		{name: "array id", raw: `{"id":[1,2]}`, wantID: "", wantType: "", wantTags: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l Listing
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &l))
			assert.Equal(t, tt.wantID, l.ID)
			assert.Equal(t, tt.wantType, l.PrimaryType())
			assert.Len(t, l.JobType, tt.wantTags)
		})
	}
}

func TestListingDecodeOddIDKeepsSiblings(t *testing.T) {
	var ls []Listing
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1},{"id":true},{"id":3}]`), &ls))

	require.Len(t, ls, 3)
	assert.Equal(t, []ListingID{"1", "", "3"}, []ListingID{ls[0].ID, ls[1].ID, ls[2].ID})
}

func TestDefaultCriteria(t *testing.T) {
	c := DefaultCriteria()
	assert.True(t, c.IsDefault())

	c.Search = "go"
	assert.False(t, c.IsDefault())
}
