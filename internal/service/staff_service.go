package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/hanseo-dev/siteoffice/internal/model"
	"github.com/hanseo-dev/siteoffice/internal/numparse"
)

type StaffRepository interface {
	List(ctx context.Context, keywordLike string, active *bool) ([]model.StaffDetail, error)
	FindDetail(ctx context.Context, id int64) (*model.StaffDetail, error)
	Create(ctx context.Context, s model.Staff) (int64, error)
	Update(ctx context.Context, id int64, s model.Staff) error
	ToggleActive(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	InsertCertFiles(ctx context.Context, staffID int64, files []model.StaffCertFile) error
	FindCertFile(ctx context.Context, staffID, fileID int64) (*model.StaffCertFile, error)
	DeleteCertFile(ctx context.Context, staffID, fileID int64) error
}

// FileRemover deletes stored upload files; missing files are not an error.
type FileRemover interface {
	Remove(subdir, filename string) error
}

// SubdirStaffCerts is where staff certificate uploads live under the upload
// root.
const SubdirStaffCerts = "staff_certs"

type StaffService struct {
	repo  StaffRepository
	files FileRemover
}

func NewStaffService(repo StaffRepository, files FileRemover) *StaffService {
	return &StaffService{repo: repo, files: files}
}

// StaffInput is the raw staff form. IsActive follows the form convention:
// "0" means retired, anything else active. Photo is the stored upload
// descriptor, nil when nothing new was uploaded.
type StaffInput struct {
	Name      string
	Role      string
	DailyWage string
	Salary    string
	BirthDate string
	StartDate string
	EndDate   string
	IsActive  string
	CertText  string
	Photo     *model.StoredFile
}

func (s *StaffService) sanitize(input StaffInput) (model.Staff, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return model.Staff{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return model.Staff{
		Name:      name,
		Role:      strings.TrimSpace(input.Role),
		DailyWage: numparse.AmountOrDefault(input.DailyWage, 0),
		Salary:    numparse.AmountOrDefault(input.Salary, 0),
		BirthDate: strings.TrimSpace(input.BirthDate),
		StartDate: strings.TrimSpace(input.StartDate),
		EndDate:   strings.TrimSpace(input.EndDate),
		IsActive:  input.IsActive != "0",
		CertText:  strings.TrimSpace(input.CertText),
	}, nil
}

// List filters by keyword and the active form value ("1", "0" or empty for
// all).
func (s *StaffService) List(ctx context.Context, keyword, activeParam string) ([]model.StaffDetail, error) {
	like := "%" + strings.TrimSpace(keyword) + "%"

	var active *bool
	switch activeParam {
	case "1":
		v := true
		active = &v
	case "0":
		v := false
		active = &v
	}
	return s.repo.List(ctx, like, active)
}

func (s *StaffService) Detail(ctx context.Context, id int64) (*model.StaffDetail, error) {
	detail, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "staff not found")
	}
	return detail, nil
}

func (s *StaffService) Create(ctx context.Context, input StaffInput) (int64, error) {
	staff, err := s.sanitize(input)
	if err != nil {
		return 0, err
	}
	if input.Photo != nil {
		staff.PhotoFilename = input.Photo.Filename
	}
	return s.repo.Create(ctx, staff)
}

func (s *StaffService) Update(ctx context.Context, id int64, input StaffInput) error {
	existing, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		return notFoundOr(err, "staff not found")
	}

	staff, err := s.sanitize(input)
	if err != nil {
		return err
	}
	staff.PhotoFilename = existing.PhotoFilename
	if input.Photo != nil {
		staff.PhotoFilename = input.Photo.Filename
	}
	return s.repo.Update(ctx, id, staff)
}

func (s *StaffService) ToggleActive(ctx context.Context, id int64) error {
	if _, err := s.repo.FindDetail(ctx, id); err != nil {
		return notFoundOr(err, "staff not found")
	}
	return s.repo.ToggleActive(ctx, id)
}

func (s *StaffService) Delete(ctx context.Context, id int64) error {
	detail, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		return notFoundOr(err, "staff not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	for _, cert := range detail.CertFiles {
		_ = s.files.Remove(SubdirStaffCerts, cert.Filename)
	}
	return nil
}

// AddCertFiles records already-stored certificate uploads (0..N).
func (s *StaffService) AddCertFiles(ctx context.Context, staffID int64, files []model.StoredFile) error {
	if _, err := s.repo.FindDetail(ctx, staffID); err != nil {
		return notFoundOr(err, "staff not found")
	}
	rows := make([]model.StaffCertFile, 0, len(files))
	for _, f := range files {
		rows = append(rows, model.StaffCertFile{
			StaffID:      staffID,
			Filename:     f.Filename,
			OriginalName: f.OriginalName,
		})
	}
	return s.repo.InsertCertFiles(ctx, staffID, rows)
}

// CertFile looks up one certificate attachment scoped to the owning staff.
func (s *StaffService) CertFile(ctx context.Context, staffID, fileID int64) (*model.StaffCertFile, error) {
	cert, err := s.repo.FindCertFile(ctx, staffID, fileID)
	if err != nil {
		return nil, notFoundOr(err, "certificate file not found")
	}
	return cert, nil
}

func (s *StaffService) DeleteCertFile(ctx context.Context, staffID, fileID int64) error {
	cert, err := s.repo.FindCertFile(ctx, staffID, fileID)
	if err != nil {
		return notFoundOr(err, "certificate file not found")
	}
	if err := s.repo.DeleteCertFile(ctx, staffID, fileID); err != nil {
		return err
	}
	_ = s.files.Remove(SubdirStaffCerts, cert.Filename)
	return nil
}
