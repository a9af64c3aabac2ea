package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hanseo-dev/siteoffice/internal/model"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

const clientSelect = `
	SELECT id, name, biz_no, ceo_name, phone, email, address, memo,
	       cert_filename, cert_original_name, created_at
	FROM clients
`

func (r *ClientRepository) FindByID(ctx context.Context, id int64) (*model.Client, error) {
	var row model.Client
	err := r.db.WithContext(ctx).Raw(clientSelect+`
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

func (r *ClientRepository) CountByKeyword(ctx context.Context, keywordLike string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM clients
		WHERE name ILIKE ? OR biz_no ILIKE ? OR phone ILIKE ?
	`, keywordLike, keywordLike, keywordLike).Scan(&count).Error
	return count, err
}

func (r *ClientRepository) FindPaged(ctx context.Context, keywordLike string, limit, offset int) ([]model.Client, error) {
	var rows []model.Client
	err := r.db.WithContext(ctx).Raw(clientSelect+`
		WHERE name ILIKE ? OR biz_no ILIKE ? OR phone ILIKE ?
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`, keywordLike, keywordLike, keywordLike, limit, offset).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindAll returns every client ordered by name, for the Excel export.
func (r *ClientRepository) FindAll(ctx context.Context) ([]model.Client, error) {
	var rows []model.Client
	err := r.db.WithContext(ctx).Raw(clientSelect + `
		ORDER BY name ASC, id ASC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ClientRepository) Create(ctx context.Context, c model.Client) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO clients (name, biz_no, ceo_name, phone, email, address, memo, cert_filename, cert_original_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`, c.Name, c.BizNo, c.CeoName, c.Phone, c.Email, c.Address, c.Memo,
		c.CertFilename, c.CertOriginalName).Scan(&id).Error
	return id, err
}

func (r *ClientRepository) Update(ctx context.Context, id int64, c model.Client) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE clients
		SET name = ?, biz_no = ?, ceo_name = ?, phone = ?, email = ?, address = ?, memo = ?,
		    cert_filename = ?, cert_original_name = ?
		WHERE id = ?
	`, c.Name, c.BizNo, c.CeoName, c.Phone, c.Email, c.Address, c.Memo,
		c.CertFilename, c.CertOriginalName, id).Error
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM clients WHERE id = ?`, id).Error
}

// BulkInsert inserts imported clients in one transaction.
func (r *ClientRepository) BulkInsert(ctx context.Context, clients []model.Client) (int, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range clients {
			if err := tx.Exec(`
				INSERT INTO clients (name, biz_no, ceo_name, phone, email, address, memo)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, c.Name, c.BizNo, c.CeoName, c.Phone, c.Email, c.Address, c.Memo).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(clients), nil
}
