package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hanseo-dev/siteoffice/internal/model"
)

type LibraryRepository struct {
	db *gorm.DB
}

func NewLibraryRepository(db *gorm.DB) *LibraryRepository {
	return &LibraryRepository{db: db}
}

const librarySelect = `
	SELECT id, title, category, doc_type, filename, original_name, mime_type, size_bytes, memo, created_at
	FROM library_docs
`

func libraryFilter(keywordLike, docType string) (string, []interface{}) {
	where := ` WHERE (title ILIKE ? OR category ILIKE ? OR memo ILIKE ? OR original_name ILIKE ?)`
	args := []interface{}{keywordLike, keywordLike, keywordLike, keywordLike}
	if docType != "" && docType != "all" {
		where += " AND doc_type = ?"
		args = append(args, docType)
	}
	return where, args
}

func (r *LibraryRepository) Count(ctx context.Context, keywordLike, docType string) (int64, error) {
	where, args := libraryFilter(keywordLike, docType)
	var count int64
	err := r.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM library_docs`+where, args...).Scan(&count).Error
	return count, err
}

func (r *LibraryRepository) FindPaged(ctx context.Context, keywordLike, docType string, limit, offset int) ([]model.LibraryDoc, error) {
	where, args := libraryFilter(keywordLike, docType)
	args = append(args, limit, offset)
	var rows []model.LibraryDoc
	err := r.db.WithContext(ctx).Raw(librarySelect+where+`
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`, args...).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *LibraryRepository) FindByID(ctx context.Context, id int64) (*model.LibraryDoc, error) {
	var row model.LibraryDoc
	err := r.db.WithContext(ctx).Raw(librarySelect+`
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *LibraryRepository) Create(ctx context.Context, d model.LibraryDoc) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO library_docs (title, category, doc_type, filename, original_name, mime_type, size_bytes, memo)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`, d.Title, d.Category, d.DocType, d.Filename, d.OriginalName, d.MimeType, d.SizeBytes, d.Memo).Scan(&id).Error
	return id, err
}

func (r *LibraryRepository) Update(ctx context.Context, id int64, d model.LibraryDoc) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE library_docs
		SET title = ?, category = ?, doc_type = ?, filename = ?, original_name = ?, mime_type = ?, size_bytes = ?, memo = ?
		WHERE id = ?
	`, d.Title, d.Category, d.DocType, d.Filename, d.OriginalName, d.MimeType, d.SizeBytes, d.Memo, id).Error
}

func (r *LibraryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM library_docs WHERE id = ?`, id).Error
}
