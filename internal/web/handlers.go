package web

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/hpungsan/crumb/internal/config"
	"github.com/hpungsan/crumb/internal/errors"
	"github.com/hpungsan/crumb/internal/ops"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	renderer *Renderer
}

// HandleList handles GET /recipes: newest first, or search results when q
// is set.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	limit := parseIntParam(r, "limit", ops.DefaultListLimit)
	offset := parseIntParam(r, "offset", 0)

	data := ListPageData{
		PageData: PageData{
			Title:   "Recipes",
			Version: h.renderer.version,
			Nav:     "recipes",
		},
		Query: query,
	}

	if query != "" {
		result, err := ops.Search(r.Context(), h.db, ops.SearchInput{
			Query:  query,
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			h.renderer.renderError(w, r, err)
			return
		}
		data.Title = "Search"
		data.Nav = "search"
		data.Items = result.Items
		data.Pagination = result.Pagination
	} else {
		result, err := ops.List(r.Context(), h.db, ops.ListInput{
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			h.renderer.renderError(w, r, err)
			return
		}
		data.Items = make([]ops.SearchResultItem, len(result.Items))
		for i, s := range result.Items {
			data.Items[i] = ops.SearchResultItem{Summary: s}
		}
		data.Pagination = result.Pagination
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, map[string]any{
			"items":      data.Items,
			"pagination": data.Pagination,
		})
		return
	}

	h.renderer.renderPage(w, r, "list", data)
}

// HandleDetail handles GET /recipes/{id}: view a single recipe.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("recipe ID is required"))
		return
	}

	rec, err := ops.Fetch(r.Context(), h.db, ops.FetchInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, rec)
		return
	}

	name := displayName(rec.Title, rec.ID)
	h.renderer.renderPage(w, r, "detail", DetailPageData{
		PageData: PageData{
			Title:   name,
			Version: h.renderer.version,
			Nav:     "recipes",
		},
		Recipe:       rec,
		RenderedHTML: renderBody(rec.BodyText),
		DisplayName:  name,
	})
}

// HandleImage handles GET /recipes/{id}/image: serve the captured image.
func (h *Handlers) HandleImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("recipe ID is required"))
		return
	}

	img, err := ops.Image(r.Context(), h.db, ops.ImageInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", img.MimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Data)
}

// HandleDelete handles DELETE /recipes/{id}: permanently delete a recipe.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("recipe ID is required"))
		return
	}

	result, err := ops.Delete(r.Context(), h.db, ops.DeleteInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	// HTMX request: redirect via HX-Redirect header
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/recipes")
		w.WriteHeader(http.StatusOK)
		return
	}

	// JSON request
	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, map[string]any{
			"deleted": result.Deleted,
			"id":      result.ID,
		})
		return
	}

	// Default: redirect
	http.Redirect(w, r, "/recipes", http.StatusSeeOther)
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// displayName returns the recipe title if present, or a truncated ID.
func displayName(title, id string) string {
	if strings.TrimSpace(title) != "" {
		return title
	}
	if len(id) > 10 {
		return id[:10] + "..."
	}
	return id
}
