// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

// Package video implements video metadata management.
//
// Binary media lives elsewhere; this package only tracks metadata, ownership,
// publication state, and the Redis-backed view counter.
package video

import "time"

// Video is the metadata record of an uploaded video.
type Video struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	VideoURL     string    `json:"video_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Duration     float64   `json:"duration"` // seconds
	Views        int64     `json:"views"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListFilter narrows a video listing.
type ListFilter struct {
	OwnerID       string // optional, filter by channel
	Query         string // optional, case-insensitive title substring
	PublishedOnly bool
}

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldVideoURL    = "video_url"
	FieldVideoID     = "video_id"
)

const maxTitleLength = 120
