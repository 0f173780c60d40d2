package mcp

import "github.com/mark3labs/mcp-go/mcp"

var addToolDef = mcp.NewTool("recipe_add",
	mcp.WithDescription("Save a recipe post by its URL. Returns the new recipe id, whether the URL is a recognized post URL, and its post identifier. Follow up with recipe_attach_image and recipe_capture."),
	mcp.WithString("source_url",
		mcp.Required(),
		mcp.Description("Post URL as shared or pasted. Stored as given; unrecognized URLs are accepted."),
	),
)

var fetchToolDef = mcp.NewTool("recipe_fetch",
	mcp.WithDescription("Fetch one recipe by id, including its title, body text, post identifier and extraction flags."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("id", mcp.Required(), mcp.Description("Recipe id")),
	mcp.WithBoolean("include_body", mcp.Description("Include body_text (default true)")),
)

var listToolDef = mcp.NewTool("recipe_list",
	mcp.WithDescription("List saved recipes, newest first. Returns summaries without body text."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithNumber("limit", mcp.Description("Page size (default 20, max 100)")),
	mcp.WithNumber("offset", mcp.Description("Items to skip (default 0)")),
)

var latestToolDef = mcp.NewTool("recipe_latest",
	mcp.WithDescription("Return the most recently saved recipe, or null when there are none."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithBoolean("include_body", mcp.Description("Include body_text (default false)")),
)

var searchToolDef = mcp.NewTool("recipe_search",
	mcp.WithDescription("Find recipes whose title, body text or source URL contain the query (case-insensitive)."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("query", mcp.Required(), mcp.Description("Text to search for")),
	mcp.WithNumber("limit", mcp.Description("Page size (default 20, max 100)")),
	mcp.WithNumber("offset", mcp.Description("Items to skip (default 0)")),
)

var updateToolDef = mcp.NewTool("recipe_update",
	mcp.WithDescription("Edit a recipe's title and/or body text. Omitted fields are left unchanged."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Recipe id")),
	mcp.WithString("title", mcp.Description("New title")),
	mcp.WithString("body_text", mcp.Description("New body text")),
)

var deleteToolDef = mcp.NewTool("recipe_delete",
	mcp.WithDescription("Permanently delete a recipe and its image."),
	mcp.WithDestructiveHintAnnotation(true),
	mcp.WithString("id", mcp.Required(), mcp.Description("Recipe id")),
)

var attachImageToolDef = mcp.NewTool("recipe_attach_image",
	mcp.WithDescription("Attach a captured screenshot or thumbnail to a recipe, replacing any previous image. Content must be an image."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Recipe id")),
	mcp.WithString("image_base64",
		mcp.Required(),
		mcp.Description("Image bytes, base64-encoded. A data: URL prefix is accepted."),
	),
)

var captureToolDef = mcp.NewTool("recipe_capture",
	mcp.WithDescription("Run caption and body extraction over captured text and save the results. Pass either payload, or ocr_text with at most one of page_html and page_url. Fields with nothing extracted keep their saved value."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Recipe id")),
	mcp.WithString("payload", mcp.Description("Combined capture: OCR text, a blank line, {{BODY}}, then page text")),
	mcp.WithString("ocr_text", mcp.Description("Text recognized from the captured image")),
	mcp.WithString("page_html", mcp.Description("Rendered post page HTML")),
	mcp.WithString("page_url", mcp.Description("Post page URL to fetch (no JavaScript is executed)")),
)

var importToolDef = mcp.NewTool("recipe_import",
	mcp.WithDescription("Add text recognized from screenshots to a recipe's body. Interface text is dropped. A recipe without a title takes the caption found in the text."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Recipe id")),
	mcp.WithString("text", mcp.Required(), mcp.Description("OCR text")),
	mcp.WithString("mode",
		mcp.Enum("append", "replace"),
		mcp.Description("append (default) keeps the saved body; replace discards it"),
	),
)

var extractToolDef = mcp.NewTool("recipe_extract",
	mcp.WithDescription("Preview extraction over a capture payload without saving anything. Returns the title and body that recipe_capture would save."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("payload", mcp.Required(), mcp.Description("OCR text, optionally followed by a blank line, {{BODY}} and page text")),
)

var checkURLToolDef = mcp.NewTool("recipe_check_url",
	mcp.WithDescription("Report whether a URL is a recognized post URL and extract its post identifier."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("url", mcp.Required(), mcp.Description("URL or share text")),
)
