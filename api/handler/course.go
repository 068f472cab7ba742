package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/learnity/backend/api/transport"
	"github.com/learnity/backend/domain"
	"github.com/learnity/backend/internal/middleware"
	"github.com/learnity/backend/pkg/httpcontext"
	"github.com/learnity/backend/repository"
	courseUC "github.com/learnity/backend/usecase/course"
)

type CourseHandler struct {
	baseHandler
	uc *courseUC.UseCase
}

func NewCourseHandler(uc *courseUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Create a course (admin)
// @Tags courses
// @Router /api/v1/admin/courses [post]
func (h *CourseHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.CourseRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.badRequest(ctx, "invalid payload")
		return
	}
	if req.Name == "" || req.Price < 0 {
		h.badRequest(ctx, "course name is required and price cannot be negative")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, courseFromRequest("", req))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update a course (admin)
// @Tags courses
// @Router /api/v1/admin/courses/{id} [put]
func (h *CourseHandler) Update(ctx *fasthttp.RequestCtx) {
	id, ok := ctx.UserValue("id").(string)
	if !ok || id == "" {
		h.badRequest(ctx, "missing course id")
		return
	}

	var req transport.CourseRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.badRequest(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, courseFromRequest(id, req))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Public course details without protected content
// @Tags courses
// @Router /api/v1/courses/{id} [get]
func (h *CourseHandler) Get(ctx *fasthttp.RequestCtx) {
	id, ok := ctx.UserValue("id").(string)
	if !ok || id == "" {
		h.badRequest(ctx, "missing course id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	course, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, course)
}

// @Summary Public course catalogue
// @Tags courses
// @Router /api/v1/courses [get]
func (h *CourseHandler) List(ctx *fasthttp.RequestCtx) {
	filter := repository.CourseFilter{
		Category: string(ctx.QueryArgs().Peek("category")),
		Limit:    queryInt(ctx, "limit"),
		Offset:   queryInt(ctx, "offset"),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	courses, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, courses)
}

// @Summary Full course list including content (admin)
// @Tags courses
// @Router /api/v1/admin/courses [get]
func (h *CourseHandler) ListAdmin(ctx *fasthttp.RequestCtx) {
	filter := repository.CourseFilter{
		Category: string(ctx.QueryArgs().Peek("category")),
		Limit:    queryInt(ctx, "limit"),
		Offset:   queryInt(ctx, "offset"),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	courses, err := h.uc.ListAdmin(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, courses)
}

// @Summary Course content for an enrolled user
// @Tags courses
// @Router /api/v1/courses/{id}/content [get]
func (h *CourseHandler) Content(ctx *fasthttp.RequestCtx) {
	id, ok := ctx.UserValue("id").(string)
	if !ok || id == "" {
		h.badRequest(ctx, "missing course id")
		return
	}
	user := middleware.UserFrom(ctx)
	if user == nil {
		h.respondError(ctx, domain.ErrNoSession)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	course, err := h.uc.ContentFor(stdCtx, user, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, course)
}

// @Summary Delete a course (admin)
// @Tags courses
// @Router /api/v1/admin/courses/{id} [delete]
func (h *CourseHandler) Delete(ctx *fasthttp.RequestCtx) {
	id, ok := ctx.UserValue("id").(string)
	if !ok || id == "" {
		h.badRequest(ctx, "missing course id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"message": "course deleted successfully"})
}

func courseFromRequest(id string, req transport.CourseRequest) *domain.Course {
	return &domain.Course{
		ID:           id,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Price:        req.Price,
		ThumbnailURL: req.ThumbnailURL,
		Content:      req.Content,
	}
}
