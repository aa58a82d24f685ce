package service

import (
	"context"
	"time"

	"moments/backend/internal/model"
	"moments/backend/internal/repository"
)

const (
	// HotTagsLimit caps the hot-tags listing.
	HotTagsLimit = 20

	// SuggestionSourceLimit caps each suggestion source before merging.
	SuggestionSourceLimit = 5

	// SuggestionLimit caps the merged suggestion list.
	SuggestionLimit = 10

	// SearchHistoryLimit caps the recent-history listing.
	SearchHistoryLimit = 10

	// SearchUserLimit caps the user matches attached to a search result.
	SearchUserLimit = 10
)

// SearchService runs keyword/tag/date searches over posts, plus the
// suggestion and per-user history features around them.
type SearchService struct {
	postService *PostService
	resolver    *VisibilityResolver
	userRepo    repository.UserRepository
	tagRepo     repository.TagRepository
	historyRepo repository.SearchHistoryRepository
}

func NewSearchService(postService *PostService, resolver *VisibilityResolver, userRepo repository.UserRepository, tagRepo repository.TagRepository, historyRepo repository.SearchHistoryRepository) *SearchService {
	return &SearchService{
		postService: postService,
		resolver:    resolver,
		userRepo:    userRepo,
		tagRepo:     tagRepo,
		historyRepo: historyRepo,
	}
}

// Search lists posts matching the filters, restricted to the viewer's
// audience. Keyword searches additionally return matching users.
func (s *SearchService) Search(ctx context.Context, viewerID *int64, params model.SearchParams) (*model.SearchResultData, error) {
	audience, err := s.resolver.Resolve(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	filter := repository.PostFilter{
		Keyword:  params.Keyword,
		Tag:      params.Tag,
		Tags:     params.Tags,
		Date:     params.Date,
		DateFrom: params.DateFrom,
		DateTo:   params.DateTo,
		Audience: audience,
		Page:     params.Page,
		PageSize: params.PageSize,
	}
	posts, total, err := s.postService.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	users := []model.User{}
	if params.Keyword != "" {
		users, err = s.userRepo.SearchByUsername(ctx, params.Keyword, SearchUserLimit)
		if err != nil {
			return nil, err
		}
	}

	return &model.SearchResultData{Results: posts, Total: total, Users: users}, nil
}

// HotTags returns the most used tags by post count.
func (s *SearchService) HotTags(ctx context.Context) ([]model.TagCount, error) {
	return s.tagRepo.HotTags(ctx, HotTagsLimit)
}

// Suggestions merges usernames, tag names and previously searched keywords
// matching the prefix, in that source order. First occurrence wins on
// duplicates; the merged list is capped at SuggestionLimit.
func (s *SearchService) Suggestions(ctx context.Context, keyword string) ([]string, error) {
	if keyword == "" {
		return []string{}, nil
	}

	users, err := s.userRepo.SearchByUsername(ctx, keyword, SuggestionSourceLimit)
	if err != nil {
		return nil, err
	}
	tags, err := s.tagRepo.SearchNames(ctx, keyword, SuggestionSourceLimit)
	if err != nil {
		return nil, err
	}
	keywords, err := s.historyRepo.SearchKeywords(ctx, keyword, SuggestionSourceLimit)
	if err != nil {
		return nil, err
	}

	merged := make([]string, 0, SuggestionLimit)
	seen := make(map[string]struct{})
	add := func(v string) {
		if len(merged) >= SuggestionLimit {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		merged = append(merged, v)
	}
	for _, u := range users {
		add(u.Username)
	}
	for _, t := range tags {
		add(t)
	}
	for _, k := range keywords {
		add(k)
	}
	return merged, nil
}

// SaveHistory records a search for the user. A missing or malformed date
// defaults to today.
func (s *SearchService) SaveHistory(ctx context.Context, userID int64, req model.SaveSearchHistoryRequest) error {
	date := time.Now()
	if req.Date != "" {
		if parsed, err := time.Parse("2006-01-02", req.Date); err == nil {
			date = parsed
		}
	}
	y, m, d := date.Date()
	date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return s.historyRepo.Save(ctx, userID, req.Keyword, req.Tag, date)
}

func (s *SearchService) RecentHistory(ctx context.Context, userID int64) ([]model.SearchHistory, error) {
	return s.historyRepo.ListRecent(ctx, userID, SearchHistoryLimit)
}

func (s *SearchService) ClearHistory(ctx context.Context, userID int64) error {
	return s.historyRepo.Clear(ctx, userID)
}

// CreateTag explicitly creates a tag, failing if it already exists.
func (s *SearchService) CreateTag(ctx context.Context, name string) (*model.Tag, error) {
	return s.tagRepo.Create(ctx, name)
}
