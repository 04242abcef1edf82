package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	GroupKeyPrefix = "group:%d"
	GroupListKey   = "groups:all"
	PostKeyPrefix  = "post:%d"
	UserKeyPrefix  = "user:%d"
)

const (
	GroupTTL = 10 * time.Minute
	PostTTL  = 2 * time.Minute
	UserTTL  = 5 * time.Minute
)

func GroupKey(groupID uint) string {
	return fmt.Sprintf(GroupKeyPrefix, groupID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateGroups(ctx context.Context) {
	Invalidate(ctx, GroupListKey)
}

func InvalidateGroup(ctx context.Context, groupID uint) {
	Invalidate(ctx, GroupKey(groupID))
	Invalidate(ctx, GroupListKey)
}
