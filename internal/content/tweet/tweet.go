package tweet

import "time"

// Tweet is a short text post on a user's channel feed.
type Tweet struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	fieldContent = "content"
	fieldUserID  = "user_id"
	fieldTweetID = "tweet_id"

	maxContentLength = 280
)
