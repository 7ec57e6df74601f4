package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/watchscape/internal/model"
)

func seedNotifications(t *testing.T, repo *NotificationRepository, uid string, n int) {
	t.Helper()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		err := repo.Create(&model.Notification{
			RecipientUID: uid,
			SenderUID:    "sender",
			SenderName:   "Sender",
			Type:         model.NotifyTypePost,
			Message:      fmt.Sprintf("message %d", i),
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
}

func TestUnreadCountAndMarkAllRead(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	seedNotifications(t, repo, "u1", 3)

	count, err := repo.UnreadCount("u1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, repo.MarkAllRead("u1"))

	count, err = repo.UnreadCount("u1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMarkSingleRead(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	seedNotifications(t, repo, "u1", 2)

	list, err := repo.ListByRecipient("u1", 1, 20)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, repo.MarkRead(list[0].ID))

	count, err := repo.UnreadCount("u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestListByRecipientNewestFirst(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	seedNotifications(t, repo, "u1", 5)

	list, err := repo.ListByRecipient("u1", 1, 3)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "message 4", list[0].Message)
	assert.Equal(t, "message 2", list[2].Message)

	page2, err := repo.ListByRecipient("u1", 2, 3)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, "message 1", page2[0].Message)
}

// offset/limit 分页在页间插入时会产生漂移：第 1 页之后插入更新的
// 通知，原第 1 页末尾的那条会在第 2 页再次出现。这是 skip 分页的
// 已知行为，这里固化下来防止误当成 bug "修掉"或被悄悄依赖。
func TestSkipPaginationDriftIsKnownBehavior(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	seedNotifications(t, repo, "u1", 4)

	page1, err := repo.ListByRecipient("u1", 1, 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)

	// 翻页间隙插入一条最新通知
	require.NoError(t, repo.Create(&model.Notification{
		RecipientUID: "u1",
		SenderUID:    "sender",
		SenderName:   "Sender",
		Type:         model.NotifyTypeLike,
		Message:      "between pages",
		CreatedAt:    time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	}))

	page2, err := repo.ListByRecipient("u1", 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 2)

	// 第 1 页的末尾条目被挤到了第 2 页开头，跨页重复
	assert.Equal(t, page1[1].ID, page2[0].ID)
}

func TestRecipientIsolation(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	seedNotifications(t, repo, "u1", 2)
	seedNotifications(t, repo, "u2", 1)

	count, err := repo.UnreadCount("u2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, repo.MarkAllRead("u1"))
	count, err = repo.UnreadCount("u2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
