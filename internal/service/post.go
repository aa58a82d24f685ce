package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jmoiron/sqlx"

	"moments/backend/internal/model"
	"moments/backend/internal/repository"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// PostService handles publishing, listing, likes and comments.
type PostService struct {
	db          *sqlx.DB
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	resolver    *VisibilityResolver
}

func NewPostService(db *sqlx.DB, postRepo repository.PostRepository, commentRepo repository.CommentRepository, userRepo repository.UserRepository, resolver *VisibilityResolver) *PostService {
	return &PostService{db: db, postRepo: postRepo, commentRepo: commentRepo, userRepo: userRepo, resolver: resolver}
}

// Create publishes a post. The type is inferred from the media present:
// video wins over images, images win over plain text. For video posts the
// playable file leads the media list, followed by its poster and any covers.
func (s *PostService) Create(ctx context.Context, userID int64, req model.CreatePostRequest) (*model.Post, error) {
	if len(req.Text) > model.MaxPostTextLength {
		return nil, model.ErrPostTooLong
	}

	postType := model.PostTypeText
	var media []string
	switch {
	case req.Video != "":
		postType = model.PostTypeVideo
		media = append(media, req.Video)
		if req.VideoPoster != "" {
			media = append(media, req.VideoPoster)
		}
		media = append(media, req.Images...)
	case len(req.Images) > 0:
		postType = model.PostTypeImage
		media = append(media, req.Images...)
	}
	media = model.NormalizeMedia(postType, media)
	if len(media) > model.MaxPostMediaCount {
		return nil, model.ErrTooManyMedia
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = model.VisibilityPublic
	}

	tags := make([]string, 0, len(req.Tags))
	seen := make(map[string]struct{}, len(req.Tags))
	for _, t := range req.Tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}

	post, err := s.postRepo.Create(ctx, userID, req.Text, postType, media, visibility, tags)
	if err != nil {
		return nil, err
	}

	log.Printf("[PostService] user %d published %s post %d", userID, postType, post.ID)
	return post, nil
}

// List runs the composed filter and decorates the page with normalized media
// and the viewer's like flags.
func (s *PostService) List(ctx context.Context, filter repository.PostFilter) ([]model.Post, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = DefaultPageSize
	}
	if filter.PageSize > MaxPageSize {
		filter.PageSize = MaxPageSize
	}

	posts, total, err := s.postRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if err := s.decorate(ctx, filter.Audience.ViewerID, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Feed returns the viewer's feed page: every post their audience allows,
// newest first.
func (s *PostService) Feed(ctx context.Context, viewerID *int64, page, pageSize int) ([]model.Post, int, error) {
	audience, err := s.resolver.Resolve(ctx, viewerID)
	if err != nil {
		return nil, 0, err
	}
	return s.List(ctx, repository.PostFilter{Audience: audience, Page: page, PageSize: pageSize})
}

// GetByID returns a single post if the viewer's audience allows it. Posts the
// viewer may not see surface as not found rather than forbidden.
func (s *PostService) GetByID(ctx context.Context, viewerID *int64, postID int64) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	audience, err := s.resolver.Resolve(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if !canView(audience, post) {
		return nil, model.ErrPostNotFound
	}

	posts := []model.Post{*post}
	if err := s.decorate(ctx, viewerID, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// ListOwn returns all of the user's own posts regardless of visibility.
func (s *PostService) ListOwn(ctx context.Context, userID int64) ([]model.Post, error) {
	posts, err := s.postRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.decorate(ctx, &userID, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// SetLike moves the post to the requested like state. Liking twice and
// unliking without a like are business errors, not no-ops. The like row and
// the counter move in one transaction.
func (s *PostService) SetLike(ctx context.Context, postID, userID int64, liked bool) (int, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	delta := 1
	if liked {
		err = s.postRepo.Like(ctx, tx, postID, userID)
	} else {
		delta = -1
		err = s.postRepo.Unlike(ctx, tx, postID, userID)
	}
	if err != nil {
		return 0, err
	}
	if err := s.postRepo.IncrementLikesCount(ctx, tx, postID, delta); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return s.postRepo.GetLikesCount(ctx, postID)
}

// Delete removes the caller's own post. Staff are not exempt here; admin
// deletion has its own path.
func (s *PostService) Delete(ctx context.Context, postID, userID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return model.ErrNotPostOwner
	}
	return s.postRepo.Delete(ctx, postID)
}

// AdminDelete removes any post regardless of owner. The staff check happens
// in the admin middleware.
func (s *PostService) AdminDelete(ctx context.Context, postID int64) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}

// AddComment creates a comment and bumps the post's counter atomically.
func (s *PostService) AddComment(ctx context.Context, postID, userID int64, content string) (*model.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	comment, err := s.commentRepo.Create(ctx, tx, postID, userID, content)
	if err != nil {
		return nil, err
	}
	if err := s.postRepo.IncrementCommentsCount(ctx, tx, postID, 1); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	comment.Name = user.Username
	if user.Profile != nil {
		comment.Avatar = user.Profile.Avatar
	}
	return comment, nil
}

// ListComments returns a comment page for a post the viewer's audience
// allows. Posts the viewer may not see surface as not found, same as GetByID.
func (s *PostService) ListComments(ctx context.Context, viewerID *int64, postID int64, page, pageSize int) (*model.CommentListData, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	audience, err := s.resolver.Resolve(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if !canView(audience, post) {
		return nil, model.ErrPostNotFound
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	comments, total, err := s.commentRepo.ListByPost(ctx, postID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &model.CommentListData{Comments: comments, Total: total}, nil
}

func (s *PostService) AdminList(ctx context.Context, keyword string, page, pageSize int) ([]model.Post, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	posts, total, err := s.postRepo.AdminList(ctx, keyword, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	for i := range posts {
		posts[i].Media = model.NormalizeMedia(posts[i].Type, posts[i].Media)
	}
	return posts, total, nil
}

func canView(audience model.Audience, post *model.Post) bool {
	if post.Visibility == model.VisibilityPublic {
		return true
	}
	if !audience.Authenticated() {
		return false
	}
	if post.UserID == *audience.ViewerID {
		return true
	}
	if post.Visibility != model.VisibilityFriends {
		return false
	}
	for _, id := range audience.FriendIDs {
		if id == post.UserID {
			return true
		}
	}
	return false
}

// decorate normalizes media lists and marks which posts the viewer has liked.
func (s *PostService) decorate(ctx context.Context, viewerID *int64, posts []model.Post) error {
	for i := range posts {
		posts[i].Media = model.NormalizeMedia(posts[i].Type, posts[i].Media)
	}

	if viewerID == nil || len(posts) == 0 {
		return nil
	}

	ids := make([]int64, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	likedMap, err := s.postRepo.CheckLikes(ctx, *viewerID, ids)
	if err != nil {
		return err
	}
	for i := range posts {
		posts[i].IsLiked = likedMap[posts[i].ID]
	}
	return nil
}
