package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"itemvault/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/error constants to avoid magic strings and typos.
const (
	errItemNotFound = "Item not found"
	errListItems    = "failed to list items"
	errCreateItem   = "failed to create item"
	errGetItem      = "failed to load item"
	errUpdateItem   = "failed to update item"
	errDeleteItem   = "failed to delete item"

	msgItemDeleted = "Item deleted successfully"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err, "request_id", c.GetString(requestIDKey)}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Request DTOs. Update uses pointers so an absent field is distinguishable
// from an explicitly empty one.
type createItemRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type updateItemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// itemIDParam parses the :id path segment, answering 404 on garbage so a
// non-numeric id looks the same as a missing item.
func (h *Handler) itemIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": errItemNotFound})
		return 0, false
	}
	return id, true
}

// @Summary      List own items
// @Tags         items
// @Produce      json
// @Success      200  {array}   models.Item
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/items [get]
// @Security     BearerAuth
func (h *Handler) listItems(c *gin.Context) {
	user := currentUser(c)
	items, err := h.services.Items.List(c.Request.Context(), user.ID)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListItems, "items_list_failed", err, "owner_id", user.ID)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Create an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body      createItemRequest  true  "Item payload"
// @Success      200   {object}  models.Item
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/items [post]
// @Security     BearerAuth
func (h *Handler) createItem(c *gin.Context) {
	var input createItemRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user := currentUser(c)
	item, err := h.services.Items.Create(c.Request.Context(), user.ID, service.CreateItemInput{
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errCreateItem, "items_create_failed", err, "owner_id", user.ID)
		return
	}
	c.JSON(http.StatusOK, item)
}

// @Summary      Get an item by id
// @Tags         items
// @Produce      json
// @Param        id   path      int  true  "Item id"
// @Success      200  {object}  models.Item
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/items/{id} [get]
// @Security     BearerAuth
func (h *Handler) getItem(c *gin.Context) {
	id, ok := h.itemIDParam(c)
	if !ok {
		return
	}

	user := currentUser(c)
	item, err := h.services.Items.Get(c.Request.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errItemNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetItem, "items_get_failed", err, "item_id", id)
		return
	}
	c.JSON(http.StatusOK, item)
}

// @Summary      Update an item
// @Description  Only fields present in the payload change; an empty payload returns the record unchanged.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Item id"
// @Param        body  body      updateItemRequest  true  "Fields to change"
// @Success      200   {object}  models.Item
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/items/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateItem(c *gin.Context) {
	id, ok := h.itemIDParam(c)
	if !ok {
		return
	}

	var input updateItemRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user := currentUser(c)
	item, err := h.services.Items.Update(c.Request.Context(), id, user.ID, service.ItemPatch{
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errItemNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errUpdateItem, "items_update_failed", err, "item_id", id)
		return
	}
	c.JSON(http.StatusOK, item)
}

// @Summary      Delete an item
// @Tags         items
// @Produce      json
// @Param        id   path      int  true  "Item id"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/items/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteItem(c *gin.Context) {
	id, ok := h.itemIDParam(c)
	if !ok {
		return
	}

	user := currentUser(c)
	if err := h.services.Items.Delete(c.Request.Context(), id, user.ID); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errItemNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errDeleteItem, "items_delete_failed", err, "item_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgItemDeleted})
}
