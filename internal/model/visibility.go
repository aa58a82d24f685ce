package model

// Audience is the resolved viewing identity for one request: who is looking,
// and whose friends-tier posts they may see. It is computed once per request
// and applied identically by every code path that lists posts, so a given
// (viewer, post) pair always yields the same visibility decision.
type Audience struct {
	// ViewerID is nil for anonymous requests.
	ViewerID *int64

	// FriendIDs is the friend-equivalent set: accepted-friendship
	// counterparties in either direction, plus mutual follows.
	FriendIDs []int64
}

// Authenticated reports whether the audience belongs to a logged-in viewer.
func (a Audience) Authenticated() bool {
	return a.ViewerID != nil
}
