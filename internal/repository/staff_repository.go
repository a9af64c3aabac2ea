package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hanseo-dev/siteoffice/internal/model"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// List filters by keyword (name, role, linked username) and optionally by the
// active flag. Active staff sort first, newest within each group.
func (r *StaffRepository) List(ctx context.Context, keywordLike string, active *bool) ([]model.StaffDetail, error) {
	query := `
		SELECT
			s.id, s.name, s.role, s.daily_wage, s.salary, s.birth_date,
			s.start_date, s.end_date, s.is_active, s.photo_filename, s.cert_text, s.created_at,
			COALESCE(u.username, '') AS username,
			COALESCE(u.role, '') AS user_role
		FROM staff s
		LEFT JOIN users u ON u.staff_id = s.id
		WHERE (s.name ILIKE ? OR s.role ILIKE ? OR u.username ILIKE ?)
	`
	args := []interface{}{keywordLike, keywordLike, keywordLike}
	if active != nil {
		query += " AND s.is_active = ?"
		args = append(args, *active)
	}
	query += " ORDER BY s.is_active DESC, s.id DESC"

	var rows []model.StaffDetail
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *StaffRepository) FindDetail(ctx context.Context, id int64) (*model.StaffDetail, error) {
	var row model.StaffDetail
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			s.id, s.name, s.role, s.daily_wage, s.salary, s.birth_date,
			s.start_date, s.end_date, s.is_active, s.photo_filename, s.cert_text, s.created_at,
			COALESCE(u.username, '') AS username,
			COALESCE(u.role, '') AS user_role
		FROM staff s
		LEFT JOIN users u ON u.staff_id = s.id
		WHERE s.id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var certs []model.StaffCertFile
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, staff_id, filename, original_name, created_at
		FROM staff_cert_files
		WHERE staff_id = ?
		ORDER BY id DESC
	`, id).Scan(&certs).Error; err != nil {
		return nil, err
	}
	row.CertFiles = certs
	return &row, nil
}

func (r *StaffRepository) Create(ctx context.Context, s model.Staff) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO staff (name, role, daily_wage, salary, birth_date, start_date, end_date, is_active, photo_filename, cert_text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`, s.Name, s.Role, s.DailyWage, s.Salary, s.BirthDate, s.StartDate, s.EndDate,
		s.IsActive, s.PhotoFilename, s.CertText).Scan(&id).Error
	return id, err
}

func (r *StaffRepository) Update(ctx context.Context, id int64, s model.Staff) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE staff
		SET name = ?, role = ?, daily_wage = ?, salary = ?, birth_date = ?,
		    start_date = ?, end_date = ?, is_active = ?, photo_filename = ?, cert_text = ?
		WHERE id = ?
	`, s.Name, s.Role, s.DailyWage, s.Salary, s.BirthDate,
		s.StartDate, s.EndDate, s.IsActive, s.PhotoFilename, s.CertText, id).Error
}

func (r *StaffRepository) ToggleActive(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE staff SET is_active = NOT is_active WHERE id = ?
	`, id).Error
}

// Delete removes the staff row; certificate files cascade.
func (r *StaffRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM staff WHERE id = ?`, id).Error
}

func (r *StaffRepository) InsertCertFiles(ctx context.Context, staffID int64, files []model.StaffCertFile) error {
	if len(files) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, f := range files {
			if err := tx.Exec(`
				INSERT INTO staff_cert_files (staff_id, filename, original_name)
				VALUES (?, ?, ?)
			`, staffID, f.Filename, f.OriginalName).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *StaffRepository) FindCertFile(ctx context.Context, staffID, fileID int64) (*model.StaffCertFile, error) {
	var row model.StaffCertFile
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, staff_id, filename, original_name, created_at
		FROM staff_cert_files
		WHERE id = ? AND staff_id = ?
		LIMIT 1
	`, fileID, staffID).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *StaffRepository) DeleteCertFile(ctx context.Context, staffID, fileID int64) error {
	return r.db.WithContext(ctx).Exec(`
		DELETE FROM staff_cert_files WHERE id = ? AND staff_id = ?
	`, fileID, staffID).Error
}
