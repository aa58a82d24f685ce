package service

import (
	"context"
	"reflect"
	"testing"
)

func TestFriendEquivalentSet(t *testing.T) {
	tests := []struct {
		name      string
		friends   []int64
		following []int64
		followers []int64
		want      []int64
	}{
		{
			name: "empty inputs",
			want: []int64{},
		},
		{
			name:    "friends only",
			friends: []int64{2, 3},
			want:    []int64{2, 3},
		},
		{
			name:      "one-way follow grants nothing",
			following: []int64{5},
			want:      []int64{},
		},
		{
			name:      "one-way follower grants nothing",
			followers: []int64{5},
			want:      []int64{},
		},
		{
			name:      "mutual follow included",
			following: []int64{5, 6},
			followers: []int64{6, 7},
			want:      []int64{6},
		},
		{
			name:      "friend and mutual follow deduplicated",
			friends:   []int64{4},
			following: []int64{4, 8},
			followers: []int64{4, 8},
			want:      []int64{4, 8},
		},
		{
			name:    "duplicate friend ids collapse",
			friends: []int64{9, 9},
			want:    []int64{9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := friendEquivalentSet(tt.friends, tt.following, tt.followers)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("friendEquivalentSet() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVisibilityResolverAnonymous(t *testing.T) {
	resolver := NewVisibilityResolver(&mockFriendshipRepo{}, &mockFollowRepo{})

	audience, err := resolver.Resolve(context.Background(), nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if audience.Authenticated() {
		t.Error("anonymous audience should not be authenticated")
	}
	if len(audience.FriendIDs) != 0 {
		t.Errorf("anonymous audience has friend ids %v", audience.FriendIDs)
	}
}

func TestVisibilityResolverAuthenticated(t *testing.T) {
	viewerID := int64(1)

	friendshipRepo := &mockFriendshipRepo{
		getFriendIDsFn: func(_ context.Context, userID int64) ([]int64, error) {
			if userID != viewerID {
				t.Errorf("GetFriendIDs called with %d, want %d", userID, viewerID)
			}
			return []int64{2}, nil
		},
	}
	followRepo := &mockFollowRepo{
		getFollowingIDsFn: func(_ context.Context, _ int64) ([]int64, error) {
			return []int64{3, 4}, nil
		},
		getFollowerIDsFn: func(_ context.Context, _ int64) ([]int64, error) {
			return []int64{4, 5}, nil
		},
	}

	resolver := NewVisibilityResolver(friendshipRepo, followRepo)
	audience, err := resolver.Resolve(context.Background(), &viewerID)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if !audience.Authenticated() || *audience.ViewerID != viewerID {
		t.Fatalf("audience viewer = %v, want %d", audience.ViewerID, viewerID)
	}
	want := []int64{2, 4}
	if !reflect.DeepEqual(audience.FriendIDs, want) {
		t.Errorf("FriendIDs = %v, want %v (friend plus mutual follow only)", audience.FriendIDs, want)
	}
}
