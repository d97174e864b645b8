// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package comment

import "time"

// Comment is a text reply attached to a video.
type Comment struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video_id"`
	OwnerID   string    `json:"owner_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	fieldContent   = "content"
	fieldVideoID   = "video_id"
	fieldCommentID = "comment_id"

	maxContentLength = 1000
)
