package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"
)

func TestParseSearchParams(t *testing.T) {
	tests := []struct {
		name        string
		query       url.Values
		wantKeyword string
		wantTag     string
		wantTags    []string
	}{
		{
			name:        "keyword and tag trimmed",
			query:       url.Values{"keyword": {"  go  "}, "tag": {" golang "}},
			wantKeyword: "go",
			wantTag:     "golang",
		},
		{
			name:        "whitespace-only keyword becomes empty",
			query:       url.Values{"keyword": {"   "}},
			wantKeyword: "",
		},
		{
			name:     "tags list trimmed per entry",
			query:    url.Values{"tags": {" go , web ,, db "}},
			wantTags: []string{"go", "web", "db"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/search?"+tt.query.Encode(), nil)
			params := parseSearchParams(req)

			if params.Keyword != tt.wantKeyword {
				t.Errorf("Keyword = %q, want %q", params.Keyword, tt.wantKeyword)
			}
			if params.Tag != tt.wantTag {
				t.Errorf("Tag = %q, want %q", params.Tag, tt.wantTag)
			}
			if !reflect.DeepEqual(params.Tags, tt.wantTags) {
				t.Errorf("Tags = %v, want %v", params.Tags, tt.wantTags)
			}
		})
	}
}
