package service

import (
	"context"

	"moments/backend/internal/model"
	"moments/backend/internal/repository"
)

// VisibilityResolver computes the Audience for a request: the viewer plus
// their friend-equivalent set. Every post-listing path resolves the audience
// once and passes it down, so feed, search and single-post reads all agree on
// what the viewer may see.
type VisibilityResolver struct {
	friendshipRepo repository.FriendshipRepository
	followRepo     repository.FollowRepository
}

func NewVisibilityResolver(friendshipRepo repository.FriendshipRepository, followRepo repository.FollowRepository) *VisibilityResolver {
	return &VisibilityResolver{friendshipRepo: friendshipRepo, followRepo: followRepo}
}

// Resolve builds the audience for viewerID. Anonymous viewers (nil) get an
// empty audience that only ever sees public posts.
func (r *VisibilityResolver) Resolve(ctx context.Context, viewerID *int64) (model.Audience, error) {
	if viewerID == nil {
		return model.Audience{}, nil
	}

	friends, err := r.friendshipRepo.GetFriendIDs(ctx, *viewerID)
	if err != nil {
		return model.Audience{}, err
	}
	following, err := r.followRepo.GetFollowingIDs(ctx, *viewerID)
	if err != nil {
		return model.Audience{}, err
	}
	followers, err := r.followRepo.GetFollowerIDs(ctx, *viewerID)
	if err != nil {
		return model.Audience{}, err
	}

	return model.Audience{
		ViewerID:  viewerID,
		FriendIDs: friendEquivalentSet(friends, following, followers),
	}, nil
}

// friendEquivalentSet is the union of accepted-friendship counterparties and
// mutual follows (users present in both following and followers), deduplicated.
// A one-way follow in either direction grants nothing.
func friendEquivalentSet(friends, following, followers []int64) []int64 {
	followerSet := make(map[int64]struct{}, len(followers))
	for _, id := range followers {
		followerSet[id] = struct{}{}
	}

	seen := make(map[int64]struct{}, len(friends))
	result := make([]int64, 0, len(friends))
	for _, id := range friends {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	for _, id := range following {
		if _, ok := followerSet[id]; !ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
