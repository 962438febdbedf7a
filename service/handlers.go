package service

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"bookshelf/cache"
	"bookshelf/catalog"
	"bookshelf/controller"
	"bookshelf/models"
	"bookshelf/render"

	"github.com/gin-gonic/gin"
)

// Handlers binds HTTP requests to controller intents.
type Handlers struct {
	Controller *controller.Controller
	Cacher     cache.RequestCacher
	Logger     *slog.Logger
}

func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, controller.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, catalog.ErrBookNotFound):
		status = http.StatusNotFound
	case errors.Is(err, controller.ErrInvalidBook):
		status = http.StatusBadRequest
	}

	c.AbortWithStatusJSON(status, gin.H{"message": err.Error()})
}

func (h *Handlers) Page(c *gin.Context) {
	snapshot := h.Controller.Snapshot()

	c.HTML(http.StatusOK, render.PAGE_TEMPLATE, render.Page{
		Query:       snapshot.Query,
		Dialog:      string(snapshot.Dialog),
		PendingName: snapshot.PendingName,
		Rows:        snapshot.Rows,
	})
}

func (h *Handlers) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.Controller.Snapshot())
}

func (h *Handlers) SearchBooks(c *gin.Context) {
	rows := h.Controller.OnSearch(c.Query("q"))
	c.JSON(http.StatusOK, rows)
}

func (h *Handlers) OpenAddDialog(c *gin.Context) {
	if err := h.Controller.OnAdd(); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dialog": controller.AddDialogOpen})
}

// UpdateAddForm takes a partial form, so it decodes without the required
// checks that ShouldBindJSON would run.
func (h *Handlers) UpdateAddForm(c *gin.Context) {
	var input models.BookInput
	if err := json.NewDecoder(c.Request.Body).Decode(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.Controller.OnFormChange(input); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": input})
}

// SubmitAddDialog accepts an optional JSON body; when present it replaces
// the form contents before submitting. The body is read whatever the
// declared length, so chunked requests are bound too.
func (h *Handlers) SubmitAddDialog(c *gin.Context) {
	var input models.BookInput
	switch err := c.ShouldBindJSON(&input); {
	case errors.Is(err, io.EOF):
	case err != nil:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	default:
		if err := h.Controller.OnFormChange(input); err != nil {
			abortWithError(c, err)
			return
		}
	}

	book, err := h.Controller.OnSubmit(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "created",
		"id":     book.Id,
	})
}

func (h *Handlers) RequestDelete(c *gin.Context) {
	id := c.Param("id")

	name, err := h.Controller.OnDeleteRequested(models.Id(id))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dialog": controller.DeleteDialogOpen, "id": id, "name": name})
}

func (h *Handlers) ConfirmDelete(c *gin.Context) {
	book, err := h.Controller.OnDeleteConfirmed(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": book.Id})
}

func (h *Handlers) CloseDialog(c *gin.Context) {
	h.Controller.OnDialogClose()
	c.JSON(http.StatusOK, gin.H{"dialog": controller.Idle})
}

func (h *Handlers) Store(c *gin.Context) {
	c.JSON(http.StatusOK, h.Controller.Stats())
}

func (h *Handlers) Activity(c *gin.Context) {
	username := c.Param("username")

	userRequests, err := h.Cacher.Read(username)

	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message": err.Error(),
		})
		return
	}

	userRequestsRaw := make([]models.UserRequest, 0, len(userRequests))

	for _, request := range userRequests {
		var userRequest models.UserRequest
		if err := json.Unmarshal([]byte(request), &userRequest); err != nil {
			h.Logger.Warn("skipping unreadable activity entry", "username", username, "error", err)
			continue
		}
		userRequestsRaw = append(userRequestsRaw, userRequest)
	}

	c.JSON(http.StatusOK, userRequestsRaw)
}

// CacheUserRequest records the request under ?username=. Failing to record
// never fails the request.
func (h *Handlers) CacheUserRequest(c *gin.Context) {
	username, ok := c.GetQuery("username")

	if ok && username != "" {
		userRequest := models.UserRequest{
			Method: c.Request.Method,
			Route:  c.Request.URL.Path,
		}

		request, err := json.Marshal(userRequest)
		if err == nil {
			err = h.Cacher.Write(username, request)
		}
		if err != nil {
			h.Logger.Warn("caching user request failed", "username", username, "error", err)
		}
	}

	c.Next()
}
