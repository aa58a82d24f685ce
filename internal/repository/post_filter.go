package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"moments/backend/internal/model"
)

// PostFilter is the composable query filter for listing and searching posts.
// Zero-valued fields are simply not applied; the visibility predicate derived
// from Audience is always applied. Every code path that lists posts (feed,
// search, discovery) goes through this builder, so a given (viewer, post)
// pair yields the same visibility decision everywhere.
type PostFilter struct {
	// Keyword matches post text OR author username, case-insensitive substring.
	Keyword string

	// Tag requires an exact tag name match.
	Tag string

	// Tags matches any of the given names. The EXISTS subquery keeps each
	// post in the result once even when several of its tags match.
	Tags []string

	// Date restricts to posts created on that calendar day.
	Date *time.Time

	// DateFrom / DateTo bound the creation date independently (inclusive days).
	DateFrom *time.Time
	DateTo   *time.Time

	Audience model.Audience

	// Page is 1-based; PageSize defaults are applied by the service layer.
	Page     int
	PageSize int
}

// BuildWhere renders the filter into a WHERE clause over the aliases
// p (posts) and u (users, the author join) with positional bind parameters.
func (f PostFilter) BuildWhere() (string, []interface{}) {
	var conds []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Keyword != "" {
		ph := arg("%" + f.Keyword + "%")
		conds = append(conds, fmt.Sprintf("(p.text ILIKE %s OR u.username ILIKE %s)", ph, ph))
	}

	if f.Tag != "" {
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM post_tags pt JOIN tags t ON t.id = pt.tag_id WHERE pt.post_id = p.id AND t.name = %s)",
			arg(f.Tag)))
	}

	if len(f.Tags) > 0 {
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM post_tags pt JOIN tags t ON t.id = pt.tag_id WHERE pt.post_id = p.id AND t.name = ANY(%s))",
			arg(pq.Array(f.Tags))))
	}

	if f.Date != nil {
		day := truncateToDay(*f.Date)
		conds = append(conds, fmt.Sprintf("p.created_at >= %s AND p.created_at < %s",
			arg(day), arg(day.AddDate(0, 0, 1))))
	}
	if f.DateFrom != nil {
		conds = append(conds, fmt.Sprintf("p.created_at >= %s", arg(truncateToDay(*f.DateFrom))))
	}
	if f.DateTo != nil {
		conds = append(conds, fmt.Sprintf("p.created_at < %s", arg(truncateToDay(*f.DateTo).AddDate(0, 0, 1))))
	}

	if f.Audience.Authenticated() {
		friendIDs := f.Audience.FriendIDs
		if friendIDs == nil {
			friendIDs = []int64{}
		}
		conds = append(conds, fmt.Sprintf(
			"(p.user_id = %s OR p.visibility = 'public' OR (p.visibility = 'friends' AND p.user_id = ANY(%s)))",
			arg(*f.Audience.ViewerID), arg(pq.Array(friendIDs))))
	} else {
		conds = append(conds, "p.visibility = 'public'")
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
