package service

import (
	"errors"
	"log"

	"github.com/user/watchscape/internal/model"
	"github.com/user/watchscape/internal/repository"
)

// NotifyInput 一次通知的全部要素
type NotifyInput struct {
	RecipientUID string
	SenderUID    string
	Type         string
	Message      string
	PostID       string
	MovieTitle   string
	MovieAction  string
}

// NotificationService 通知分发。对自己的动作静默忽略，
// 发送人昵称在创建时快照进通知，后续改名不回填。
type NotificationService struct {
	users         *repository.UserRepository
	follows       *repository.FollowRepository
	notifications *repository.NotificationRepository
}

func NewNotificationService(repos *repository.Repositories) *NotificationService {
	return &NotificationService{
		users:         repos.User,
		follows:       repos.Follow,
		notifications: repos.Notification,
	}
}

// Notify 创建一条通知。recipient == sender 时不产生任何记录。
func (s *NotificationService) Notify(in NotifyInput) error {
	if in.RecipientUID == in.SenderUID {
		return nil
	}

	sender, err := s.users.GetByUID(in.SenderUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("[通知] 发送人不存在，丢弃通知 (sender: %s)", in.SenderUID)
			return nil
		}
		return err
	}

	return s.notifications.Create(&model.Notification{
		RecipientUID: in.RecipientUID,
		SenderUID:    in.SenderUID,
		SenderName:   sender.DisplayName(),
		Type:         in.Type,
		Message:      in.Message,
		PostID:       in.PostID,
		MovieTitle:   in.MovieTitle,
		MovieAction:  in.MovieAction,
	})
}

// FanOutToFollowers 给动作方的每个粉丝投递一条通知。
// 逐个同步写入，单个粉丝写入失败只记日志，不中断也不回滚其余投递。
func (s *NotificationService) FanOutToFollowers(in NotifyInput) error {
	followers, err := s.follows.FollowersOf(in.SenderUID)
	if err != nil {
		return err
	}
	for _, followerUID := range followers {
		in.RecipientUID = followerUID
		if err := s.Notify(in); err != nil {
			log.Printf("[通知] 粉丝投递失败 (recipient: %s): %v", followerUID, err)
		}
	}
	return nil
}
