package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"moments/backend/internal/model"
	"moments/backend/internal/repository"
)

// Function-field mocks. Tests set only the methods the code under test calls;
// anything else panics via the nil function.

type mockUserRepo struct {
	createFn           func(ctx context.Context, user *model.User) error
	getByIDFn          func(ctx context.Context, id int64) (*model.User, error)
	getByUsernameFn    func(ctx context.Context, username string) (*model.User, error)
	searchByUsernameFn func(ctx context.Context, keyword string, limit int) ([]model.User, error)
	updateMeFn         func(ctx context.Context, userID int64, req model.UpdateMeRequest) (*model.User, error)
	updatePasswordFn   func(ctx context.Context, userID int64, passwordHashed string) error
	setActiveFn        func(ctx context.Context, userID int64, active bool) error
	adminListFn        func(ctx context.Context, search string, page, pageSize int) ([]model.User, int, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	return m.createFn(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return m.getByUsernameFn(ctx, username)
}
func (m *mockUserRepo) SearchByUsername(ctx context.Context, keyword string, limit int) ([]model.User, error) {
	return m.searchByUsernameFn(ctx, keyword, limit)
}
func (m *mockUserRepo) UpdateMe(ctx context.Context, userID int64, req model.UpdateMeRequest) (*model.User, error) {
	return m.updateMeFn(ctx, userID, req)
}
func (m *mockUserRepo) UpdatePassword(ctx context.Context, userID int64, passwordHashed string) error {
	return m.updatePasswordFn(ctx, userID, passwordHashed)
}
func (m *mockUserRepo) SetActive(ctx context.Context, userID int64, active bool) error {
	return m.setActiveFn(ctx, userID, active)
}
func (m *mockUserRepo) AdminList(ctx context.Context, search string, page, pageSize int) ([]model.User, int, error) {
	return m.adminListFn(ctx, search, page, pageSize)
}

type mockFriendshipRepo struct {
	sendRequestFn    func(ctx context.Context, fromUserID, toUserID int64) (*model.Friendship, error)
	respondFn        func(ctx context.Context, friendshipID, toUserID int64, status string) (*model.Friendship, error)
	listPendingForFn func(ctx context.Context, toUserID int64) ([]model.FriendRequestInfo, error)
	listFriendsFn    func(ctx context.Context, userID int64) ([]model.FriendInfo, error)
	getFriendIDsFn   func(ctx context.Context, userID int64) ([]int64, error)
}

func (m *mockFriendshipRepo) SendRequest(ctx context.Context, fromUserID, toUserID int64) (*model.Friendship, error) {
	return m.sendRequestFn(ctx, fromUserID, toUserID)
}
func (m *mockFriendshipRepo) Respond(ctx context.Context, friendshipID, toUserID int64, status string) (*model.Friendship, error) {
	return m.respondFn(ctx, friendshipID, toUserID, status)
}
func (m *mockFriendshipRepo) ListPendingFor(ctx context.Context, toUserID int64) ([]model.FriendRequestInfo, error) {
	return m.listPendingForFn(ctx, toUserID)
}
func (m *mockFriendshipRepo) ListFriends(ctx context.Context, userID int64) ([]model.FriendInfo, error) {
	return m.listFriendsFn(ctx, userID)
}
func (m *mockFriendshipRepo) GetFriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	return m.getFriendIDsFn(ctx, userID)
}

type mockFollowRepo struct {
	createFn          func(ctx context.Context, followerID, followingID int64) (bool, error)
	deleteFn          func(ctx context.Context, followerID, followingID int64) error
	listFollowingFn   func(ctx context.Context, userID int64) ([]model.FollowUserInfo, error)
	listFollowersFn   func(ctx context.Context, userID int64) ([]model.FollowUserInfo, error)
	getFollowingIDsFn func(ctx context.Context, userID int64) ([]int64, error)
	getFollowerIDsFn  func(ctx context.Context, userID int64) ([]int64, error)
}

func (m *mockFollowRepo) Create(ctx context.Context, followerID, followingID int64) (bool, error) {
	return m.createFn(ctx, followerID, followingID)
}
func (m *mockFollowRepo) Delete(ctx context.Context, followerID, followingID int64) error {
	return m.deleteFn(ctx, followerID, followingID)
}
func (m *mockFollowRepo) ListFollowing(ctx context.Context, userID int64) ([]model.FollowUserInfo, error) {
	return m.listFollowingFn(ctx, userID)
}
func (m *mockFollowRepo) ListFollowers(ctx context.Context, userID int64) ([]model.FollowUserInfo, error) {
	return m.listFollowersFn(ctx, userID)
}
func (m *mockFollowRepo) GetFollowingIDs(ctx context.Context, userID int64) ([]int64, error) {
	return m.getFollowingIDsFn(ctx, userID)
}
func (m *mockFollowRepo) GetFollowerIDs(ctx context.Context, userID int64) ([]int64, error) {
	return m.getFollowerIDsFn(ctx, userID)
}

type mockPostRepo struct {
	createFn                 func(ctx context.Context, userID int64, text, postType string, media []string, visibility string, tags []string) (*model.Post, error)
	getByIDFn                func(ctx context.Context, postID int64) (*model.Post, error)
	listFn                   func(ctx context.Context, filter repository.PostFilter) ([]model.Post, int, error)
	listByUserFn             func(ctx context.Context, userID int64) ([]model.Post, error)
	deleteFn                 func(ctx context.Context, postID int64) error
	getTagsFn                func(ctx context.Context, postIDs []int64) (map[int64][]string, error)
	checkLikesFn             func(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error)
	likeFn                   func(ctx context.Context, tx *sqlx.Tx, postID, userID int64) error
	unlikeFn                 func(ctx context.Context, tx *sqlx.Tx, postID, userID int64) error
	incrementLikesCountFn    func(ctx context.Context, tx *sqlx.Tx, postID int64, delta int) error
	incrementCommentsCountFn func(ctx context.Context, tx *sqlx.Tx, postID int64, delta int) error
	getLikesCountFn          func(ctx context.Context, postID int64) (int, error)
	adminListFn              func(ctx context.Context, keyword string, page, pageSize int) ([]model.Post, int, error)
}

func (m *mockPostRepo) Create(ctx context.Context, userID int64, text, postType string, media []string, visibility string, tags []string) (*model.Post, error) {
	return m.createFn(ctx, userID, text, postType, media, visibility, tags)
}
func (m *mockPostRepo) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	return m.getByIDFn(ctx, postID)
}
func (m *mockPostRepo) List(ctx context.Context, filter repository.PostFilter) ([]model.Post, int, error) {
	return m.listFn(ctx, filter)
}
func (m *mockPostRepo) ListByUser(ctx context.Context, userID int64) ([]model.Post, error) {
	return m.listByUserFn(ctx, userID)
}
func (m *mockPostRepo) Delete(ctx context.Context, postID int64) error {
	return m.deleteFn(ctx, postID)
}
func (m *mockPostRepo) GetTags(ctx context.Context, postIDs []int64) (map[int64][]string, error) {
	return m.getTagsFn(ctx, postIDs)
}
func (m *mockPostRepo) CheckLikes(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error) {
	return m.checkLikesFn(ctx, userID, postIDs)
}
func (m *mockPostRepo) Like(ctx context.Context, tx *sqlx.Tx, postID, userID int64) error {
	return m.likeFn(ctx, tx, postID, userID)
}
func (m *mockPostRepo) Unlike(ctx context.Context, tx *sqlx.Tx, postID, userID int64) error {
	return m.unlikeFn(ctx, tx, postID, userID)
}
func (m *mockPostRepo) IncrementLikesCount(ctx context.Context, tx *sqlx.Tx, postID int64, delta int) error {
	return m.incrementLikesCountFn(ctx, tx, postID, delta)
}
func (m *mockPostRepo) IncrementCommentsCount(ctx context.Context, tx *sqlx.Tx, postID int64, delta int) error {
	return m.incrementCommentsCountFn(ctx, tx, postID, delta)
}
func (m *mockPostRepo) GetLikesCount(ctx context.Context, postID int64) (int, error) {
	return m.getLikesCountFn(ctx, postID)
}
func (m *mockPostRepo) AdminList(ctx context.Context, keyword string, page, pageSize int) ([]model.Post, int, error) {
	return m.adminListFn(ctx, keyword, page, pageSize)
}

type mockCommentRepo struct {
	createFn     func(ctx context.Context, tx *sqlx.Tx, postID, userID int64, content string) (*model.Comment, error)
	listByPostFn func(ctx context.Context, postID int64, page, pageSize int) ([]model.Comment, int, error)
}

func (m *mockCommentRepo) Create(ctx context.Context, tx *sqlx.Tx, postID, userID int64, content string) (*model.Comment, error) {
	return m.createFn(ctx, tx, postID, userID, content)
}
func (m *mockCommentRepo) ListByPost(ctx context.Context, postID int64, page, pageSize int) ([]model.Comment, int, error) {
	return m.listByPostFn(ctx, postID, page, pageSize)
}

type mockTagRepo struct {
	createFn      func(ctx context.Context, name string) (*model.Tag, error)
	hotTagsFn     func(ctx context.Context, limit int) ([]model.TagCount, error)
	searchNamesFn func(ctx context.Context, keyword string, limit int) ([]string, error)
}

func (m *mockTagRepo) Create(ctx context.Context, name string) (*model.Tag, error) {
	return m.createFn(ctx, name)
}
func (m *mockTagRepo) HotTags(ctx context.Context, limit int) ([]model.TagCount, error) {
	return m.hotTagsFn(ctx, limit)
}
func (m *mockTagRepo) SearchNames(ctx context.Context, keyword string, limit int) ([]string, error) {
	return m.searchNamesFn(ctx, keyword, limit)
}

type mockSearchHistoryRepo struct {
	saveFn           func(ctx context.Context, userID int64, keyword, tag string, date time.Time) error
	listRecentFn     func(ctx context.Context, userID int64, limit int) ([]model.SearchHistory, error)
	clearFn          func(ctx context.Context, userID int64) error
	searchKeywordsFn func(ctx context.Context, keyword string, limit int) ([]string, error)
}

func (m *mockSearchHistoryRepo) Save(ctx context.Context, userID int64, keyword, tag string, date time.Time) error {
	return m.saveFn(ctx, userID, keyword, tag, date)
}
func (m *mockSearchHistoryRepo) ListRecent(ctx context.Context, userID int64, limit int) ([]model.SearchHistory, error) {
	return m.listRecentFn(ctx, userID, limit)
}
func (m *mockSearchHistoryRepo) Clear(ctx context.Context, userID int64) error {
	return m.clearFn(ctx, userID)
}
func (m *mockSearchHistoryRepo) SearchKeywords(ctx context.Context, keyword string, limit int) ([]string, error) {
	return m.searchKeywordsFn(ctx, keyword, limit)
}

// Interface conformance checks for the mocks.
var (
	_ repository.UserRepository          = (*mockUserRepo)(nil)
	_ repository.FriendshipRepository    = (*mockFriendshipRepo)(nil)
	_ repository.FollowRepository        = (*mockFollowRepo)(nil)
	_ repository.PostRepository          = (*mockPostRepo)(nil)
	_ repository.CommentRepository       = (*mockCommentRepo)(nil)
	_ repository.TagRepository           = (*mockTagRepo)(nil)
	_ repository.SearchHistoryRepository = (*mockSearchHistoryRepo)(nil)
)
