package model

import "time"

// SearchHistory is a per-user record of a search. (user, keyword, tag, date)
// is unique; repeating the same search bumps created_at instead of adding a row.
type SearchHistory struct {
	ID        int64     `db:"id" json:"-"`
	UserID    int64     `db:"user_id" json:"-"`
	Keyword   string    `db:"keyword" json:"keyword"`
	Tag       string    `db:"tag" json:"tag"`
	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// SaveSearchHistoryRequest is the request body for saving a search.
type SaveSearchHistoryRequest struct {
	Keyword string `json:"keyword"`
	Tag     string `json:"tag"`
	Date    string `json:"date"` // YYYY-MM-DD, defaults to today
}

// SearchParams are the parsed, typed search filters. Malformed date inputs
// never reach this struct; handlers drop them silently per the API contract.
type SearchParams struct {
	Keyword  string
	Tag      string
	Tags     []string
	Date     *time.Time
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PageSize int
}

// SearchResultData is the search response payload.
type SearchResultData struct {
	Results []Post `json:"results"`
	Total   int    `json:"total"`
	Users   []User `json:"users"`
}
