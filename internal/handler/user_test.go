package handler_test

import (
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/watchscape/internal/model"
)

func TestRegisterAndDuplicate(t *testing.T) {
	engine, _ := newTestServer(t)

	w := doJSON(t, engine, "POST", "/api/users", gin.H{
		"uid":     "u1",
		"email":   "u1@test.dev",
		"name":    "Alice",
		"country": "JP",
		"age":     30,
	})
	require.Equal(t, 201, w.Code)
	assert.Equal(t, "User saved", message(t, w))

	w = doJSON(t, engine, "POST", "/api/users", gin.H{"uid": "u1"})
	require.Equal(t, 400, w.Code)
	assert.Equal(t, "User already exists", message(t, w))
}

func TestRegisterRequiresUID(t *testing.T) {
	engine, _ := newTestServer(t)

	w := doJSON(t, engine, "POST", "/api/users", gin.H{"email": "nobody@test.dev"})
	assert.Equal(t, 400, w.Code)
}

func TestGetUserNotFound(t *testing.T) {
	engine, _ := newTestServer(t)

	w := doJSON(t, engine, "GET", "/api/users/ghost", nil)
	require.Equal(t, 404, w.Code)
	assert.Equal(t, "User not found", message(t, w))
}

func TestSearchUsers(t *testing.T) {
	engine, _ := newTestServer(t)
	registerUser(t, engine, "u1", "Alice")
	registerUser(t, engine, "u2", "Bob")

	w := doJSON(t, engine, "GET", "/api/users?q=ali", nil)
	require.Equal(t, 200, w.Code)
	var users []struct {
		UID  string `json:"uid"`
		Name string `json:"name"`
	}
	decode(t, w, &users)
	require.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].UID)

	// 空查询返回空列表而不是报错
	w = doJSON(t, engine, "GET", "/api/users?q=", nil)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestFollowToggleFlow(t *testing.T) {
	engine, _ := newTestServer(t)
	registerUser(t, engine, "a", "A")
	registerUser(t, engine, "b", "B")

	// 不能关注自己
	w := doJSON(t, engine, "POST", "/api/users/a/follow", gin.H{"followerUid": "a"})
	require.Equal(t, 400, w.Code)
	assert.Equal(t, "You cannot follow yourself", message(t, w))

	// 目标不存在
	w = doJSON(t, engine, "POST", "/api/users/ghost/follow", gin.H{"followerUid": "a"})
	assert.Equal(t, 404, w.Code)

	var resp struct {
		Following bool `json:"following"`
	}
	w = doJSON(t, engine, "POST", "/api/users/b/follow", gin.H{"followerUid": "a"})
	require.Equal(t, 200, w.Code)
	decode(t, w, &resp)
	assert.True(t, resp.Following)

	// 被关注人收到通知
	w = doJSON(t, engine, "GET", "/api/notifications/b/unread-count", nil)
	require.Equal(t, 200, w.Code)
	var unread struct {
		UnreadCount int `json:"unreadCount"`
	}
	decode(t, w, &unread)
	assert.Equal(t, 1, unread.UnreadCount)

	// 再次调用取消关注，不再追加通知
	w = doJSON(t, engine, "POST", "/api/users/b/follow", gin.H{"followerUid": "a"})
	require.Equal(t, 200, w.Code)
	decode(t, w, &resp)
	assert.False(t, resp.Following)

	w = doJSON(t, engine, "GET", "/api/notifications/b/unread-count", nil)
	decode(t, w, &unread)
	assert.Equal(t, 1, unread.UnreadCount)
}

// 关注边落库后通知写入失败不影响响应，否则客户端重试会把边再切回去
func TestFollowSucceedsWhenNotificationWriteFails(t *testing.T) {
	engine, repos, db := newTestServerDB(t)
	registerUser(t, engine, "a", "A")
	registerUser(t, engine, "b", "B")

	require.NoError(t, db.Migrator().DropTable(&model.Notification{}))

	w := doJSON(t, engine, "POST", "/api/users/b/follow", gin.H{"followerUid": "a"})
	require.Equal(t, 200, w.Code, w.Body.String())
	var resp struct {
		Following bool `json:"following"`
	}
	decode(t, w, &resp)
	assert.True(t, resp.Following)

	following, err := repos.Follow.IsFollowing("a", "b")
	require.NoError(t, err)
	assert.True(t, following)
}

func TestFollowersAndFollowingLists(t *testing.T) {
	engine, _ := newTestServer(t)
	registerUser(t, engine, "a", "A")
	registerUser(t, engine, "b", "B")
	registerUser(t, engine, "c", "C")

	doJSON(t, engine, "POST", "/api/users/a/follow", gin.H{"followerUid": "b"})
	doJSON(t, engine, "POST", "/api/users/a/follow", gin.H{"followerUid": "c"})
	doJSON(t, engine, "POST", "/api/users/b/follow", gin.H{"followerUid": "a"})

	var users []struct {
		UID string `json:"uid"`
	}
	w := doJSON(t, engine, "GET", "/api/users/a/followers", nil)
	require.Equal(t, 200, w.Code)
	decode(t, w, &users)
	assert.Len(t, users, 2)

	w = doJSON(t, engine, "GET", "/api/users/a/following", nil)
	require.Equal(t, 200, w.Code)
	decode(t, w, &users)
	require.Len(t, users, 1)
	assert.Equal(t, "b", users[0].UID)
}

func TestProfileAggregates(t *testing.T) {
	engine, _ := newTestServer(t)
	registerUser(t, engine, "a", "A")
	registerUser(t, engine, "viewer", "V")

	doJSON(t, engine, "POST", "/api/users/a/follow", gin.H{"followerUid": "viewer"})
	doJSON(t, engine, "PATCH", "/api/users/a/pin-film", gin.H{"tmdbId": 1, "title": "One"})
	doJSON(t, engine, "POST", "/api/movies", gin.H{
		"tmdbId": 2, "title": "Two", "userId": "a", "status": "watchlist",
	})
	doJSON(t, engine, "POST", "/api/posts", gin.H{"userId": "a", "text": "hello"})

	w := doJSON(t, engine, "GET", "/api/users/a/profile?viewerUid=viewer", nil)
	require.Equal(t, 200, w.Code)

	var profile struct {
		UID              string `json:"uid"`
		FollowersCount   int    `json:"followersCount"`
		FollowingCount   int    `json:"followingCount"`
		FollowedByViewer bool   `json:"followedByViewer"`
		PinnedFilms      []struct {
			Title string `json:"title"`
		} `json:"pinnedFilms"`
		WatchlistCount int `json:"watchlistCount"`
		WatchedCount   int `json:"watchedCount"`
		Posts          []struct {
			Text string `json:"text"`
		} `json:"posts"`
	}
	decode(t, w, &profile)
	assert.Equal(t, "a", profile.UID)
	assert.Equal(t, 1, profile.FollowersCount)
	assert.Equal(t, 0, profile.FollowingCount)
	assert.True(t, profile.FollowedByViewer)
	require.Len(t, profile.PinnedFilms, 1)
	assert.Equal(t, "One", profile.PinnedFilms[0].Title)
	assert.Equal(t, 1, profile.WatchlistCount)
	assert.Equal(t, 0, profile.WatchedCount)
	require.Len(t, profile.Posts, 1)
	assert.Equal(t, "hello", profile.Posts[0].Text)
}

func TestPinFilmLimitAndDuplicate(t *testing.T) {
	engine, _ := newTestServer(t)
	registerUser(t, engine, "a", "A")

	for i := 1; i <= 6; i++ {
		w := doJSON(t, engine, "PATCH", "/api/users/a/pin-film", gin.H{
			"tmdbId": i,
			"title":  fmt.Sprintf("Film %d", i),
		})
		require.Equal(t, 200, w.Code, w.Body.String())
	}

	w := doJSON(t, engine, "PATCH", "/api/users/a/pin-film", gin.H{"tmdbId": 7, "title": "Seven"})
	require.Equal(t, 400, w.Code)
	assert.Equal(t, "You can pin up to 6 films", message(t, w))

	w = doJSON(t, engine, "PATCH", "/api/users/a/pin-film", gin.H{"tmdbId": 3, "title": "Film 3"})
	require.Equal(t, 400, w.Code)
	assert.Equal(t, "Film already pinned", message(t, w))
}

func TestUnpinFilm(t *testing.T) {
	engine, _ := newTestServer(t)
	registerUser(t, engine, "a", "A")

	doJSON(t, engine, "PATCH", "/api/users/a/pin-film", gin.H{"tmdbId": 1, "title": "One"})

	w := doJSON(t, engine, "DELETE", "/api/users/a/pin-film/1", nil)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "Film unpinned", message(t, w))

	w = doJSON(t, engine, "DELETE", "/api/users/a/pin-film/1", nil)
	require.Equal(t, 404, w.Code)
	assert.Equal(t, "Pinned film not found", message(t, w))
}
