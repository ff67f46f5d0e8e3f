package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"lostfound/internal/errors"
	"lostfound/internal/model"
	"lostfound/internal/service"
)

// ItemHandler handles item report endpoints.
type ItemHandler struct {
	itemService service.ItemService
}

// NewItemHandler creates a new item handler.
func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// ItemRequest represents an item report submission. Status is not accepted
// from the body; the route fixes it.
type ItemRequest struct {
	Name              string     `json:"name" validate:"required"`
	Category          string     `json:"category" validate:"required"`
	Description       string     `json:"description" validate:"required"`
	DateLostOrFound   *time.Time `json:"dateLostOrFound"`
	Location          string     `json:"location" validate:"required"`
	Latitude          *float64   `json:"latitude"`
	Longitude         *float64   `json:"longitude"`
	Color             string     `json:"color"`
	UniqueIdentifiers string     `json:"uniqueIdentifiers"`
	ContactInfo       string     `json:"contactInfo" validate:"required"`
	Reward            string     `json:"reward"`
	DropOffLocation   string     `json:"dropOffLocation"`
	IsEmergency       bool       `json:"isEmergency"`
}

// UpdateItemRequest carries a partial item update. Missing fields are left
// unchanged.
type UpdateItemRequest struct {
	Name              *string    `json:"name"`
	Category          *string    `json:"category"`
	Description       *string    `json:"description"`
	DateLostOrFound   *time.Time `json:"dateLostOrFound"`
	Location          *string    `json:"location"`
	Latitude          *float64   `json:"latitude"`
	Longitude         *float64   `json:"longitude"`
	Color             *string    `json:"color"`
	UniqueIdentifiers *string    `json:"uniqueIdentifiers"`
	ContactInfo       *string    `json:"contactInfo"`
	Reward            *string    `json:"reward"`
	DropOffLocation   *string    `json:"dropOffLocation"`
	IsEmergency       *bool      `json:"isEmergency"`
}

func (r ItemRequest) toInput() service.ItemInput {
	return service.ItemInput{
		Name:              r.Name,
		Category:          r.Category,
		Description:       r.Description,
		DateLostOrFound:   r.DateLostOrFound,
		Location:          r.Location,
		Latitude:          r.Latitude,
		Longitude:         r.Longitude,
		Color:             r.Color,
		UniqueIdentifiers: r.UniqueIdentifiers,
		ContactInfo:       r.ContactInfo,
		Reward:            r.Reward,
		DropOffLocation:   r.DropOffLocation,
		IsEmergency:       r.IsEmergency,
	}
}

// List godoc
// @Summary List all item reports, newest first
// @Tags items
// @Produce json
// @Success 200 {array} model.Item
// @Failure 500 {object} errors.ErrorResponse
// @Router /items [get]
func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.itemService.ListItems(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, items)
}

// Search godoc
// @Summary Search item reports
// @Tags items
// @Produce json
// @Param keyword query string false "Substring match on name or description"
// @Param category query string false "Exact category"
// @Param dateFrom query string false "Inclusive lower bound on report date (YYYY-MM-DD)"
// @Param dateTo query string false "Inclusive upper bound on report date (YYYY-MM-DD)"
// @Param location query string false "Substring match on location"
// @Param color query string false "Substring match on color"
// @Param status query string false "lost, found or all"
// @Success 200 {array} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /items/search [get]
func (h *ItemHandler) Search(c echo.Context) error {
	criteria := model.SearchCriteria{
		Keyword:  c.QueryParam("keyword"),
		Category: c.QueryParam("category"),
		Location: c.QueryParam("location"),
		Color:    c.QueryParam("color"),
		Status:   c.QueryParam("status"),
	}

	if raw := c.QueryParam("dateFrom"); raw != "" {
		t, err := parseSearchDate(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid dateFrom")
		}
		criteria.DateFrom = &t
	}
	if raw := c.QueryParam("dateTo"); raw != "" {
		t, err := parseSearchDate(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid dateTo")
		}
		// Inclusive upper bound: a bare date covers the whole day.
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		criteria.DateTo = &t
	}

	items, err := h.itemService.Search(c.Request().Context(), criteria)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, items)
}

func parseSearchDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// Get godoc
// @Summary Get an item report by ID
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id} [get]
func (h *ItemHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid item ID",
			Code:  "INVALID_UUID",
		})
	}

	item, err := h.itemService.GetItem(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, item)
}

// UserItems godoc
// @Summary List the caller's item reports, newest first
// @Tags items
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Item
// @Failure 401 {object} errors.ErrorResponse
// @Router /items/user/items [get]
func (h *ItemHandler) UserItems(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	items, err := h.itemService.ListUserItems(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, items)
}

// ReportLost godoc
// @Summary Report a lost item
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ItemRequest true "Item report"
// @Success 201 {object} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /items/lost [post]
func (h *ItemHandler) ReportLost(c echo.Context) error {
	return h.report(c, model.StatusLost)
}

// ReportFound godoc
// @Summary Report a found item
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ItemRequest true "Item report"
// @Success 201 {object} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /items/found [post]
func (h *ItemHandler) ReportFound(c echo.Context) error {
	return h.report(c, model.StatusFound)
}

func (h *ItemHandler) report(c echo.Context, status string) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var item *model.Item
	if status == model.StatusFound {
		item, err = h.itemService.ReportFound(c.Request().Context(), userID, req.toInput())
	} else {
		item, err = h.itemService.ReportLost(c.Request().Context(), userID, req.toInput())
	}
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, item)
}

// Update godoc
// @Summary Update an owned item report
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body UpdateItemRequest true "Fields to update"
// @Success 200 {object} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id} [put]
func (h *ItemHandler) Update(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid item ID",
			Code:  "INVALID_UUID",
		})
	}

	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	item, err := h.itemService.UpdateItem(c.Request().Context(), id, userID, service.UpdateItemInput{
		Name:              req.Name,
		Category:          req.Category,
		Description:       req.Description,
		DateLostOrFound:   req.DateLostOrFound,
		Location:          req.Location,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		Color:             req.Color,
		UniqueIdentifiers: req.UniqueIdentifiers,
		ContactInfo:       req.ContactInfo,
		Reward:            req.Reward,
		DropOffLocation:   req.DropOffLocation,
		IsEmergency:       req.IsEmergency,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, item)
}

// Resolve godoc
// @Summary Mark an owned item report as resolved
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id}/resolve [put]
func (h *ItemHandler) Resolve(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid item ID",
			Code:  "INVALID_UUID",
		})
	}

	item, err := h.itemService.ResolveItem(c.Request().Context(), id, userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, item)
}

// Delete godoc
// @Summary Delete an owned item report
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id} [delete]
func (h *ItemHandler) Delete(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid item ID",
			Code:  "INVALID_UUID",
		})
	}

	if err := h.itemService.DeleteItem(c.Request().Context(), id, userID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "item deleted successfully",
	})
}
