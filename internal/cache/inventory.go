package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	BlogKeyPrefix    = "blog:%d"
	PostKeyPrefix    = "post:%d"
	CommentKeyPrefix = "comment:%d"
	PostsListKey     = "posts:list:first"
	BlogsListKey     = "blogs:list:first"
)

const (
	BlogTTL    = 10 * time.Minute
	PostTTL    = 5 * time.Minute
	CommentTTL = 2 * time.Minute
	ListTTL    = 30 * time.Second
)

func BlogKey(blogID uint) string {
	return fmt.Sprintf(BlogKeyPrefix, blogID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func CommentKey(commentID uint) string {
	return fmt.Sprintf(CommentKeyPrefix, commentID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateBlog(ctx context.Context, blogID uint) {
	Invalidate(ctx, BlogKey(blogID))
	Invalidate(ctx, BlogsListKey)
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	Invalidate(ctx, PostsListKey)
}

func InvalidateComment(ctx context.Context, commentID uint) {
	Invalidate(ctx, CommentKey(commentID))
}
