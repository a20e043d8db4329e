package service

import (
	"context"
	"fmt"
	"sat_tutor_backend/internal/model"
	"sat_tutor_backend/internal/repository"
	"sat_tutor_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const recentVideosLimit = 5

type VideoService struct {
	VideoRepo *repository.VideoRepository
	rdb       *redis.Client
}

func NewVideoService(videoRepo *repository.VideoRepository, rdb *redis.Client) *VideoService {
	return &VideoService{VideoRepo: videoRepo, rdb: rdb}
}

func (s *VideoService) List(conceptTag string) ([]model.VideoLesson, error) {
	return s.VideoRepo.List(conceptTag)
}

func (s *VideoService) Get(id string) (*model.VideoLesson, error) {
	return s.VideoRepo.FindByID(id)
}

func recentVideosKey(userID uint) string {
	return fmt.Sprintf("videos:recent:%d", userID)
}

// RecordWatch pushes the video onto the user's recently-watched list, trimmed to
// the last few entries.
func (s *VideoService) RecordWatch(ctx context.Context, userID uint, videoID string) {
	if s.rdb == nil {
		return
	}
	key := recentVideosKey(userID)
	pipe := s.rdb.TxPipeline()
	pipe.LRem(ctx, key, 0, videoID)
	pipe.LPush(ctx, key, videoID)
	pipe.LTrim(ctx, key, 0, recentVideosLimit-1)
	pipe.Expire(ctx, key, 30*24*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Log.Debug("failed to record watched video", zap.Error(err))
	}
}

func (s *VideoService) RecentlyWatched(ctx context.Context, userID uint) ([]model.VideoLesson, error) {
	if s.rdb == nil {
		return []model.VideoLesson{}, nil
	}
	ids, err := s.rdb.LRange(ctx, recentVideosKey(userID), 0, recentVideosLimit-1).Result()
	if err != nil {
		return nil, err
	}

	videos := make([]model.VideoLesson, 0, len(ids))
	for _, id := range ids {
		video, err := s.VideoRepo.FindByID(id)
		if err != nil {
			// the lesson may have been removed since it was watched
			continue
		}
		videos = append(videos, *video)
	}
	return videos, nil
}
