package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/hpungsan/crumb/internal/errors"
	"github.com/hpungsan/crumb/internal/recipe"
)

const summaryColumns = `id, source_url, title, body_chars, has_image, fully_extracted, created_at, updated_at`

const recipeColumns = `id, source_url, title, body_text, body_chars, has_image, fully_extracted, created_at, updated_at`

// Insert stores a new recipe in the database.
func Insert(ctx context.Context, db *sql.DB, r *recipe.Recipe) error {
	query := `
		INSERT INTO recipes (` + recipeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.ExecContext(ctx, query,
		r.ID, r.SourceURL, r.Title, r.BodyText, r.BodyChars,
		r.HasImage, r.IsFullyExtracted, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	return nil
}

// GetByID retrieves a recipe by its ULID.
func GetByID(ctx context.Context, db *sql.DB, id string) (*recipe.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = ?`

	r, err := scanRecipe(db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return r, nil
}

// GetLatest retrieves the most recently created recipe.
func GetLatest(ctx context.Context, db *sql.DB) (*recipe.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes ORDER BY created_at DESC, id DESC LIMIT 1`

	r, err := scanRecipe(db.QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return r, nil
}

// UpdateContent writes the mutable text fields of a recipe and refreshes
// its derived flags. Sets updated_at to the current timestamp.
// Does NOT change: id, source_url, created_at, image
func UpdateContent(ctx context.Context, db *sql.DB, r *recipe.Recipe) error {
	r.Refresh()
	now := time.Now().Unix()

	query := `
		UPDATE recipes
		SET title = ?, body_text = ?, body_chars = ?,
			fully_extracted = (has_image = 1 AND ? <> ''), updated_at = ?
		WHERE id = ?
	`

	result, err := db.ExecContext(ctx, query,
		r.Title, r.BodyText, r.BodyChars, r.Title, now, r.ID,
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	if err := requireRow(result, r.ID); err != nil {
		return err
	}

	r.UpdatedAt = now
	return nil
}

// SaveImage stores (or replaces) the captured image of a recipe and marks
// the recipe as having one.
func SaveImage(ctx context.Context, db *sql.DB, img *recipe.Image) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	result, err := tx.ExecContext(ctx, `
		UPDATE recipes
		SET has_image = 1, fully_extracted = (title <> ''), updated_at = ?
		WHERE id = ?
	`, now, img.RecipeID)
	if err != nil {
		return errors.NewInternal(err)
	}
	if err := requireRow(result, img.RecipeID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO recipe_images (recipe_id, mime_type, bytes, data, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(recipe_id) DO UPDATE SET
			mime_type = excluded.mime_type,
			bytes = excluded.bytes,
			data = excluded.data,
			created_at = excluded.created_at
	`, img.RecipeID, img.MimeType, len(img.Data), img.Data, now)
	if err != nil {
		return errors.NewInternal(err)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	img.CreatedAt = now
	return nil
}

// GetImage retrieves the captured image of a recipe.
func GetImage(ctx context.Context, db *sql.DB, recipeID string) (*recipe.Image, error) {
	var img recipe.Image
	err := db.QueryRowContext(ctx, `
		SELECT recipe_id, mime_type, data, created_at
		FROM recipe_images
		WHERE recipe_id = ?
	`, recipeID).Scan(&img.RecipeID, &img.MimeType, &img.Data, &img.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewImageNotFound(recipeID)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return &img, nil
}

// Delete permanently removes a recipe and its image.
func Delete(ctx context.Context, db *sql.DB, id string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return errors.NewInternal(err)
	}
	if err := requireRow(result, id); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_images WHERE recipe_id = ?`, id); err != nil {
		return errors.NewInternal(err)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// List returns recipe summaries newest first, with the total count.
func List(ctx context.Context, db *sql.DB, limit, offset int) ([]recipe.Summary, int, error) {
	var total int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT `+summaryColumns+`
		FROM recipes
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	summaries, err := scanSummaries(rows)
	if err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

// Search returns summaries whose title, body or source URL contain query
// (case-insensitive for ASCII), newest first, with the total match count.
func Search(ctx context.Context, db *sql.DB, query string, limit, offset int) ([]recipe.Summary, int, error) {
	pattern := "%" + escapeLike(query) + "%"
	where := `title LIKE ? ESCAPE '\' OR body_text LIKE ? ESCAPE '\' OR source_url LIKE ? ESCAPE '\'`

	var total int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes WHERE `+where,
		pattern, pattern, pattern).Scan(&total)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT `+summaryColumns+`
		FROM recipes
		WHERE `+where+`
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, pattern, pattern, pattern, limit, offset)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	summaries, err := scanSummaries(rows)
	if err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

// escapeLike escapes LIKE wildcards so query matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// requireRow maps a zero-row write to NOT_FOUND.
func requireRow(result sql.Result, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}
	return nil
}

// scanRecipe scans a single row into a Recipe struct.
func scanRecipe(row *sql.Row) (*recipe.Recipe, error) {
	var r recipe.Recipe
	err := row.Scan(
		&r.ID, &r.SourceURL, &r.Title, &r.BodyText, &r.BodyChars,
		&r.HasImage, &r.IsFullyExtracted, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// scanSummaries drains rows selected with summaryColumns.
func scanSummaries(rows *sql.Rows) ([]recipe.Summary, error) {
	var summaries []recipe.Summary
	for rows.Next() {
		var s recipe.Summary
		if err := rows.Scan(
			&s.ID, &s.SourceURL, &s.Title, &s.BodyChars,
			&s.HasImage, &s.IsFullyExtracted, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, errors.NewInternal(err)
		}
		s.PostIdentifier = recipe.PostIdentifier(s.SourceURL)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return summaries, nil
}
