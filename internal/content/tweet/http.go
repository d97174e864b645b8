package tweet

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

	router.Get("/user/{userID}", handler.listByUser)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Patch("/{tweetID}", handler.update)
		r.Delete("/{tweetID}", handler.delete)
	})

	return router
}

type tweetRequest struct {
	Content string `json:"content"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input tweetRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(fieldContent, input.Content).MaxLen(fieldContent, input.Content, maxContentLength)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tweet, err := handler.service.Create(request.Context(), userID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, tweet)
}

func (handler *Handler) listByUser(writer http.ResponseWriter, request *http.Request) {
	ownerID := requestutil.Param(request, "userID")

	v := &validate.Validator{}
	v.Required(fieldUserID, ownerID).UUID(fieldUserID, ownerID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	tweets, total, err := handler.service.ListByOwner(request.Context(), ownerID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, tweets, pagination.NewMeta(params.Page, params.Limit, int(total)))
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tweetID := requestutil.Param(request, "tweetID")

	var input tweetRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(fieldTweetID, tweetID).UUID(fieldTweetID, tweetID).
		Required(fieldContent, input.Content).
		MaxLen(fieldContent, input.Content, maxContentLength)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tweet, err := handler.service.Update(request.Context(), userID, tweetID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tweet)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tweetID := requestutil.Param(request, "tweetID")

	if err := handler.service.Delete(request.Context(), userID, tweetID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
