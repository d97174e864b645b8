// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package video

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leminhduc/vidora/internal/platform/middleware"
	requestutil "github.com/leminhduc/vidora/internal/platform/request"
	"github.com/leminhduc/vidora/internal/platform/respond"
	"github.com/leminhduc/vidora/internal/platform/validate"
	"github.com/leminhduc/vidora/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{videoID}", handler.get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Patch("/{videoID}", handler.update)
		r.Delete("/{videoID}", handler.delete)
		r.Post("/{videoID}/toggle-publish", handler.togglePublish)
	})

	return router
}

type createRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	VideoURL     string  `json:"video_url"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Duration     float64 `json:"duration"`
}

type updateRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, maxTitleLength).
		Required(FieldVideoURL, input.VideoURL)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	video, err := handler.service.Create(request.Context(), userID, CreateInput{
		Title:        input.Title,
		Description:  input.Description,
		VideoURL:     input.VideoURL,
		ThumbnailURL: input.ThumbnailURL,
		Duration:     input.Duration,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, video)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	videoID := requestutil.Param(request, "videoID")

	v := &validate.Validator{}
	v.Required(FieldVideoID, videoID).UUID(FieldVideoID, videoID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	video, err := handler.service.Get(request.Context(), videoID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := ListFilter{
		OwnerID: request.URL.Query().Get("owner"),
		Query:   request.URL.Query().Get("query"),
	}

	videos, total, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, videos, pagination.NewMeta(params.Page, params.Limit, int(total)))
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID := requestutil.Param(request, "videoID")

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldVideoID, videoID).UUID(FieldVideoID, videoID).
		Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, maxTitleLength)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	video, err := handler.service.Update(request.Context(), userID, videoID, UpdateInput{
		Title:        input.Title,
		Description:  input.Description,
		ThumbnailURL: input.ThumbnailURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID := requestutil.Param(request, "videoID")

	if err := handler.service.Delete(request.Context(), userID, videoID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) togglePublish(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID := requestutil.Param(request, "videoID")

	published, err := handler.service.TogglePublish(request.Context(), userID, videoID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]bool{"is_published": published})
}
