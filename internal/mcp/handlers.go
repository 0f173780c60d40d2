package mcp

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/hpungsan/crumb/internal/config"
	"github.com/hpungsan/crumb/internal/errors"
	"github.com/hpungsan/crumb/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db      *sql.DB
	cfg     *config.Config
	fetcher ops.PageFetcher
	logger  *zap.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config, fetcher ops.PageFetcher, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{db: db, cfg: cfg, fetcher: fetcher, logger: logger}
}

// Request types for each tool

// AddRequest represents the arguments for add.
type AddRequest struct {
	SourceURL string `json:"source_url"`
}

// FetchRequest represents the arguments for fetch.
type FetchRequest struct {
	ID          string `json:"id"`
	IncludeBody *bool  `json:"include_body,omitempty"`
}

// ListRequest represents the arguments for list.
type ListRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// LatestRequest represents the arguments for latest.
type LatestRequest struct {
	IncludeBody *bool `json:"include_body,omitempty"`
}

// SearchRequest represents the arguments for search.
type SearchRequest struct {
	Query  string `json:"query"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// UpdateRequest represents the arguments for update.
type UpdateRequest struct {
	ID       string  `json:"id"`
	Title    *string `json:"title,omitempty"`
	BodyText *string `json:"body_text,omitempty"`
}

// DeleteRequest represents the arguments for delete.
type DeleteRequest struct {
	ID string `json:"id"`
}

// AttachImageRequest represents the arguments for attach_image.
type AttachImageRequest struct {
	ID          string `json:"id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptureRequest represents the arguments for capture.
type CaptureRequest struct {
	ID       string `json:"id"`
	Payload  string `json:"payload,omitempty"`
	OCRText  string `json:"ocr_text,omitempty"`
	PageHTML string `json:"page_html,omitempty"`
	PageURL  string `json:"page_url,omitempty"`
}

// ImportRequest represents the arguments for import.
type ImportRequest struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Mode string `json:"mode,omitempty"`
}

// ExtractRequest represents the arguments for extract.
type ExtractRequest struct {
	Payload string `json:"payload"`
}

// CheckURLRequest represents the arguments for check_url.
type CheckURLRequest struct {
	URL string `json:"url"`
}

// Handler implementations

// HandleAdd handles the add tool call.
func (h *Handlers) HandleAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Add(ctx, h.db, ops.AddInput{SourceURL: input.SourceURL})
	if err != nil {
		return h.fail("recipe_add", err), nil
	}

	return successResult(result)
}

// HandleFetch handles the fetch tool call.
func (h *Handlers) HandleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FetchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Fetch(ctx, h.db, ops.FetchInput{
		ID:          input.ID,
		IncludeBody: input.IncludeBody,
	})
	if err != nil {
		return h.fail("recipe_fetch", err), nil
	}

	return successResult(result)
}

// HandleList handles the list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(ctx, h.db, ops.ListInput{
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return h.fail("recipe_list", err), nil
	}

	return successResult(result)
}

// HandleLatest handles the latest tool call.
func (h *Handlers) HandleLatest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[LatestRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Latest(ctx, h.db, ops.LatestInput{IncludeBody: input.IncludeBody})
	if err != nil {
		return h.fail("recipe_latest", err), nil
	}

	return successResult(result)
}

// HandleSearch handles the search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Search(ctx, h.db, ops.SearchInput{
		Query:  input.Query,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return h.fail("recipe_search", err), nil
	}

	return successResult(result)
}

// HandleUpdate handles the update tool call.
func (h *Handlers) HandleUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[UpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Update(ctx, h.db, h.cfg, ops.UpdateInput{
		ID:       input.ID,
		Title:    input.Title,
		BodyText: input.BodyText,
	})
	if err != nil {
		return h.fail("recipe_update", err), nil
	}

	return successResult(result)
}

// HandleDelete handles the delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Delete(ctx, h.db, ops.DeleteInput{ID: input.ID})
	if err != nil {
		return h.fail("recipe_delete", err), nil
	}

	return successResult(result)
}

// HandleAttachImage handles the attach_image tool call.
func (h *Handlers) HandleAttachImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AttachImageRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	data, err := decodeImage(input.ImageBase64)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.AttachImage(ctx, h.db, h.cfg, ops.AttachImageInput{
		ID:   input.ID,
		Data: data,
	})
	if err != nil {
		return h.fail("recipe_attach_image", err), nil
	}

	return successResult(result)
}

// HandleCapture handles the capture tool call.
func (h *Handlers) HandleCapture(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CaptureRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Capture(ctx, h.db, h.cfg, h.fetcher, ops.CaptureInput{
		ID:       input.ID,
		Payload:  input.Payload,
		OCRText:  input.OCRText,
		PageHTML: input.PageHTML,
		PageURL:  input.PageURL,
	})
	if err != nil {
		return h.fail("recipe_capture", err), nil
	}
	h.logger.Debug("recipe captured",
		zap.String("id", result.ID),
		zap.Bool("title_extracted", result.TitleExtracted),
		zap.Bool("body_extracted", result.BodyExtracted),
		zap.Int("body_chars", result.BodyChars),
	)

	return successResult(result)
}

// HandleImport handles the import tool call.
func (h *Handlers) HandleImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ImportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Import(ctx, h.db, h.cfg, ops.ImportInput{
		ID:   input.ID,
		Text: input.Text,
		Mode: ops.ImportMode(input.Mode),
	})
	if err != nil {
		return h.fail("recipe_import", err), nil
	}
	h.logger.Debug("recipe imported",
		zap.String("id", result.ID),
		zap.String("mode", string(result.Mode)),
		zap.Int("added_chars", result.AddedChars),
	)

	return successResult(result)
}

// HandleExtract handles the extract tool call.
func (h *Handlers) HandleExtract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExtractRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Extract(ops.ExtractInput{Payload: input.Payload})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCheckURL handles the check_url tool call.
func (h *Handlers) HandleCheckURL(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CheckURLRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.CheckURL(ops.CheckURLInput{URL: input.URL})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// decodeImage decodes base64 image data, accepting an optional data: URL
// prefix.
func decodeImage(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if strings.HasPrefix(encoded, "data:") {
		if i := strings.Index(encoded, ","); i >= 0 {
			encoded = encoded[i+1:]
		}
	}
	if encoded == "" {
		return nil, errors.NewInvalidRequest("image_base64 is required")
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.NewInvalidRequest("image_base64 is not valid base64")
	}
	return data, nil
}

// Result helpers

// fail logs internal errors with their cause and converts err to a tool
// error result.
func (h *Handlers) fail(tool string, err error) *mcp.CallToolResult {
	var cErr *errors.CrumbError
	if !stderrors.As(err, &cErr) || cErr.Code == errors.ErrInternal {
		fields := []zap.Field{zap.String("tool", tool), zap.Error(err)}
		if cErr != nil {
			fields = append(fields, zap.Any("details", cErr.Details))
		}
		h.logger.Error("tool call failed", fields...)
	}
	return errorResult(err)
}

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var cErr *errors.CrumbError
	if stderrors.As(err, &cErr) {
		message := cErr.Message
		// Keep wrapper context, e.g. "image 2: ..."
		if err != error(cErr) {
			message = strings.Replace(err.Error(), cErr.Error(), cErr.Message, 1)
		}
		errorObj := map[string]any{
			"code":    cErr.Code,
			"message": message,
			"status":  cErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if cErr.Code != errors.ErrInternal && cErr.Details != nil {
			errorObj["details"] = cErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
