package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix    = "user:%d"
	VideoKeyPrefix   = "video:%d"
	ProfileKeyPrefix = "profile:%s"
)

const (
	UserTTL    = 5 * time.Minute
	VideoTTL   = 10 * time.Minute
	ProfileTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func VideoKey(videoID uint) string {
	return fmt.Sprintf(VideoKeyPrefix, videoID)
}

// ProfileKey caches anonymous channel-profile projections only. Viewer-relative
// profiles (isSubscribed) are never cached so subscription state cannot leak
// across users.
func ProfileKey(identifier string) string {
	return fmt.Sprintf(ProfileKeyPrefix, identifier)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateVideo(ctx context.Context, videoID uint) {
	Invalidate(ctx, VideoKey(videoID))
}

func InvalidateProfile(ctx context.Context, identifier string) {
	Invalidate(ctx, ProfileKey(identifier))
}
