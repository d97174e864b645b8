// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package comment

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

	router.Get("/video/{videoID}", handler.listByVideo)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/video/{videoID}", handler.add)
		r.Patch("/{commentID}", handler.update)
		r.Delete("/{commentID}", handler.delete)
	})

	return router
}

type commentRequest struct {
	Content string `json:"content"`
}

func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID := requestutil.Param(request, "videoID")

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(fieldVideoID, videoID).UUID(fieldVideoID, videoID).
		Required(fieldContent, input.Content).
		MaxLen(fieldContent, input.Content, maxContentLength)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Add(request.Context(), userID, videoID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, comment)
}

func (handler *Handler) listByVideo(writer http.ResponseWriter, request *http.Request) {
	videoID := requestutil.Param(request, "videoID")

	v := &validate.Validator{}
	v.Required(fieldVideoID, videoID).UUID(fieldVideoID, videoID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	comments, total, err := handler.service.ListByVideo(request.Context(), videoID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, comments, pagination.NewMeta(params.Page, params.Limit, int(total)))
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID := requestutil.Param(request, "commentID")

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(fieldCommentID, commentID).UUID(fieldCommentID, commentID).
		Required(fieldContent, input.Content).
		MaxLen(fieldContent, input.Content, maxContentLength)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Update(request.Context(), userID, commentID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comment)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID := requestutil.Param(request, "commentID")

	if err := handler.service.Delete(request.Context(), userID, commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
