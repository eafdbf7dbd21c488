package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/medadhere/drugresolver/internal/errors"
)

// CorrectRequest is the body of POST /api/correct.
type CorrectRequest struct {
	Query string `json:"query" binding:"required"`
}

// SuggestHandler handles GET /api/suggest?q=<query>&limit=<n>.
//
// A query shorter than two characters is not an error: it returns an empty
// result set, matching the engine's contract that short input is a normal
// no-match outcome for a caller that is still typing.
func (api *API) SuggestHandler(c *gin.Context) {
	query := c.Query("q")
	limit, ok := api.limitParam(c)
	if !ok {
		return
	}

	result, err := api.resolver.Search(c.Request.Context(), query, limit)
	if err != nil {
		api.sendResolverError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ResolveHandler handles GET /api/resolve?q=<query>&limit=<n>&max_distance=<d>.
func (api *API) ResolveHandler(c *gin.Context) {
	query := c.Query("q")
	limit, ok := api.limitParam(c)
	if !ok {
		return
	}

	maxDistance := 0
	if raw := c.Query("max_distance"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			SendValidationError(c, internalErrors.NewValidationError("max_distance", "must be a non-negative integer"))
			return
		}
		maxDistance = parsed
	}

	result, err := api.resolver.FuzzySearch(c.Request.Context(), query, limit, maxDistance)
	if err != nil {
		api.sendResolverError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CorrectHandler handles POST /api/correct.
// Response confidence 0 means "no correction found"; the original string is
// echoed back unchanged.
func (api *API) CorrectHandler(c *gin.Context) {
	var req CorrectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	correction, err := api.resolver.CorrectName(c.Request.Context(), req.Query)
	if err != nil {
		api.sendResolverError(c, err)
		return
	}
	c.JSON(http.StatusOK, correction)
}

// FindExactHandler handles GET /api/records/exact?name=<name>.
func (api *API) FindExactHandler(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		SendValidationError(c, internalErrors.NewValidationError("name", "query parameter is required"))
		return
	}

	record, err := api.resolver.FindExact(c.Request.Context(), name)
	if err != nil {
		api.sendResolverError(c, err)
		return
	}
	if record == nil {
		SendError(c, http.StatusNotFound, ErrorCodeRecordNotFound, "No record named '"+name+"'")
		return
	}
	c.JSON(http.StatusOK, record)
}

// limitParam parses and bounds the limit query parameter. It sends the
// error response itself and returns ok=false when the parameter is invalid.
func (api *API) limitParam(c *gin.Context) (int, bool) {
	limit := api.settings.Engine.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			SendValidationError(c, internalErrors.NewValidationError("limit", "must be a positive integer"))
			return 0, false
		}
		limit = parsed
	}
	if limit > api.settings.Engine.MaxLimit {
		limit = api.settings.Engine.MaxLimit
	}
	return limit, true
}

// sendResolverError maps resolver errors onto the HTTP surface. The only
// error the resolver produces is a caller context expiring before the index
// is ready.
func (api *API) sendResolverError(c *gin.Context, err error) {
	if errors.Is(err, internalErrors.ErrNotReady) {
		SendError(c, http.StatusServiceUnavailable, ErrorCodeNotReady, "Index is still building; retry shortly")
		return
	}
	SendInternalError(c, "resolve query", err)
}
