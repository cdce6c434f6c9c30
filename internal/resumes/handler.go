package resumes

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-generator/internal/shared/server/middleware"
	"resume-generator/internal/shared/server/respond"
	"resume-generator/internal/shared/util"
	"resume-generator/resume/compile"
	"resume-generator/resume/model"
	"resume-generator/resume/order"
	"resume-generator/resume/templates"
)

const maxRecordSize = 1 << 20 // 1MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/templates", h.templates)
	rg.GET("/resumes", h.list)
	rg.POST("/resumes", h.create)
	rg.GET("/resumes/:name", h.get)
	rg.PUT("/resumes/:name", h.update)
	rg.DELETE("/resumes/:name", h.delete)
	rg.GET("/resumes/:name/source/:template/:order", h.source)
	rg.GET("/resumes/:name/document/:template/:order", h.document)
}

// IsCompileRoute reports whether c targets an endpoint that runs the TeX
// engine. The router uses it to pick the rate limit group.
func IsCompileRoute(c *gin.Context) bool {
	return strings.HasSuffix(c.FullPath(), "/document/:template/:order")
}

func (h *Handler) templates(c *gin.Context) {
	respond.OK(c, gin.H{"templates": h.Svc.Pipeline.Templates().List()})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.ListByPerson(c.Request.Context(), c.Query("person"))
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := make([]ResumeSummary, 0, len(items))
	for _, s := range items {
		resp = append(resp, toSummary(s))
	}
	respond.OK(c, gin.H{"resumes": resp})
}

func (h *Handler) create(c *gin.Context) {
	rec, ok := bindRecord(c)
	if !ok {
		return
	}
	c.Set(middleware.ResumeNameKey, rec.Name)
	stored, err := h.Svc.Create(c.Request.Context(), rec)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Location", "/api/v1/resumes/"+stored.Name())
	respond.JSON(c, http.StatusCreated, toResponse(stored))
}

func (h *Handler) get(c *gin.Context) {
	name := c.Param("name")
	c.Set(middleware.ResumeNameKey, name)
	stored, err := h.Svc.Get(c.Request.Context(), name)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, toResponse(stored))
}

func (h *Handler) update(c *gin.Context) {
	name := c.Param("name")
	c.Set(middleware.ResumeNameKey, name)
	rec, ok := bindRecord(c)
	if !ok {
		return
	}
	stored, err := h.Svc.Update(c.Request.Context(), name, rec)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, toResponse(stored))
}

func (h *Handler) delete(c *gin.Context) {
	name := c.Param("name")
	c.Set(middleware.ResumeNameKey, name)
	if err := h.Svc.Delete(c.Request.Context(), name); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) source(c *gin.Context) {
	name, tmpl, directive := c.Param("name"), c.Param("template"), c.Param("order")
	c.Set(middleware.ResumeNameKey, name)
	c.Set(middleware.TemplateKey, tmpl)

	out, err := h.Svc.Source(c.Request.Context(), name, tmpl, directive, queryKeywords(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.Attachment(c, out.ContentType+"; charset=utf-8", fileName(out, "tex"), out.Data)
}

func (h *Handler) document(c *gin.Context) {
	name, tmpl, directive := c.Param("name"), c.Param("template"), c.Param("order")
	c.Set(middleware.ResumeNameKey, name)
	c.Set(middleware.TemplateKey, tmpl)
	force, _ := strconv.ParseBool(c.Query("force"))

	out, err := h.Svc.Document(c.Request.Context(), name, tmpl, directive, queryKeywords(c), force)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set(middleware.CacheKey, out.Cache)
	c.Header("X-Cache", out.Cache)
	if out.Pages > 0 {
		c.Header("X-Page-Count", strconv.Itoa(out.Pages))
	}
	respond.Attachment(c, out.ContentType, fileName(out, "pdf"), out.Data)
}

func (h *Handler) fail(c *gin.Context, err error) {
	var (
		unknownVariant *templates.UnknownVariantError
		invalidOrder   *order.InvalidOrderError
		compileErr     *compile.CompilationError
	)
	switch {
	case errors.As(err, &unknownVariant):
		names := []string{}
		for _, info := range h.Svc.Pipeline.Templates().List() {
			names = append(names, info.Name)
		}
		respond.Error(c, http.StatusBadRequest, "invalid_template", err.Error(), gin.H{
			"template":  unknownVariant.Token,
			"available": names,
		})
	case errors.As(err, &invalidOrder):
		respond.Error(c, http.StatusBadRequest, "invalid_order", err.Error(), gin.H{
			"order":  invalidOrder.Directive,
			"reason": invalidOrder.Reason,
		})
	case errors.As(err, &compileErr):
		respond.Error(c, http.StatusInternalServerError, "compilation_failed", "failed to compile document", gin.H{
			"reason":   compileErr.Reason,
			"engine":   compileErr.Engine,
			"exitCode": compileErr.ExitCode,
			"output":   compileErr.Output,
		})
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrAlreadyExists):
		respond.Error(c, http.StatusConflict, "already_exists", "a resume with this name already exists", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "invalid_input", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "request failed", nil)
	}
}

func bindRecord(c *gin.Context) (model.ResumeRecord, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRecordSize)
	var rec model.ResumeRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid request body", gin.H{"error": err.Error()})
		return model.ResumeRecord{}, false
	}
	return rec, true
}

// queryKeywords accepts ?keywords=a,b and repeated ?keywords= parameters.
func queryKeywords(c *gin.Context) []string {
	var out []string
	for _, v := range c.QueryArray("keywords") {
		for _, kw := range strings.Split(v, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				out = append(out, kw)
			}
		}
	}
	return out
}

func fileName(out Rendered, ext string) string {
	name := fmt.Sprintf("%s-%s-%s.%s", out.Name, out.Template, out.Order, ext)
	if safe, err := util.SanitizeFileName(name); err == nil {
		return safe
	}
	return "resume." + ext
}
