package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/hanseo-dev/siteoffice/internal/model"
)

type LibraryRepository interface {
	Count(ctx context.Context, keywordLike, docType string) (int64, error)
	FindPaged(ctx context.Context, keywordLike, docType string, limit, offset int) ([]model.LibraryDoc, error)
	FindByID(ctx context.Context, id int64) (*model.LibraryDoc, error)
	Create(ctx context.Context, d model.LibraryDoc) (int64, error)
	Update(ctx context.Context, id int64, d model.LibraryDoc) error
	Delete(ctx context.Context, id int64) error
}

// SubdirLibrary is where library uploads live under the upload root.
const SubdirLibrary = "library"

type LibraryService struct {
	repo    LibraryRepository
	files   FileRemover
	perPage int
}

func NewLibraryService(repo LibraryRepository, files FileRemover, perPage int) *LibraryService {
	return &LibraryService{repo: repo, files: files, perPage: perPage}
}

type LibraryInput struct {
	Title    string
	Category string
	DocType  string
	Memo     string
	File     *model.StoredFile
}

type LibraryListResult struct {
	Rows        []model.LibraryDoc
	Page        Page
	SearchQuery string
	DocType     string
}

func (s *LibraryService) List(ctx context.Context, keyword, docType, rawPage string) (*LibraryListResult, error) {
	like := "%" + strings.TrimSpace(keyword) + "%"

	total, err := s.repo.Count(ctx, like, docType)
	if err != nil {
		return nil, err
	}
	page := Paginate(total, rawPage, s.perPage)

	rows, err := s.repo.FindPaged(ctx, like, docType, page.PerPage, page.Offset)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].RowNo = page.StartNumber - int64(i)
	}

	return &LibraryListResult{
		Rows:        rows,
		Page:        page,
		SearchQuery: strings.TrimSpace(keyword),
		DocType:     docType,
	}, nil
}

func (s *LibraryService) Get(ctx context.Context, id int64) (*model.LibraryDoc, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "document not found")
	}
	return doc, nil
}

func (s *LibraryService) sanitize(input LibraryInput) (model.LibraryDoc, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return model.LibraryDoc{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	docType := input.DocType
	if docType == "" {
		docType = "form"
	}
	return model.LibraryDoc{
		Title:    title,
		Category: strings.TrimSpace(input.Category),
		DocType:  docType,
		Memo:     strings.TrimSpace(input.Memo),
	}, nil
}

func (s *LibraryService) Create(ctx context.Context, input LibraryInput) (int64, error) {
	doc, err := s.sanitize(input)
	if err != nil {
		return 0, err
	}
	if input.File != nil {
		doc.Filename = input.File.Filename
		doc.OriginalName = input.File.OriginalName
		doc.MimeType = input.File.MimeType
		doc.SizeBytes = input.File.SizeBytes
	}
	return s.repo.Create(ctx, doc)
}

// Update replaces the stored file when a new one was uploaded, removing the
// previous one from disk.
func (s *LibraryService) Update(ctx context.Context, id int64, input LibraryInput) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "document not found")
	}

	doc, err := s.sanitize(input)
	if err != nil {
		return err
	}
	doc.Filename = existing.Filename
	doc.OriginalName = existing.OriginalName
	doc.MimeType = existing.MimeType
	doc.SizeBytes = existing.SizeBytes

	if input.File != nil {
		if existing.Filename != "" {
			_ = s.files.Remove(SubdirLibrary, existing.Filename)
		}
		doc.Filename = input.File.Filename
		doc.OriginalName = input.File.OriginalName
		doc.MimeType = input.File.MimeType
		doc.SizeBytes = input.File.SizeBytes
	}
	return s.repo.Update(ctx, id, doc)
}

func (s *LibraryService) Delete(ctx context.Context, id int64) error {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "document not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if doc.Filename != "" {
		_ = s.files.Remove(SubdirLibrary, doc.Filename)
	}
	return nil
}
