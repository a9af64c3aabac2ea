package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hanseo-dev/siteoffice/internal/docno"
	"github.com/hanseo-dev/siteoffice/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) FindByID(ctx context.Context, id int64) (*model.Contract, error) {
	var row model.Contract
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, estimate_id, contract_no, title, client_name, client_id, total_amount,
		       start_date, end_date, pdf_filename, body_text, created_at
		FROM contracts
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

func (r *ContractRepository) CountByKeyword(ctx context.Context, keywordLike string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM contracts
		WHERE title ILIKE ? OR contract_no ILIKE ? OR client_name ILIKE ?
	`, keywordLike, keywordLike, keywordLike).Scan(&count).Error
	return count, err
}

func (r *ContractRepository) FindPaged(ctx context.Context, keywordLike string, limit, offset int) ([]model.Contract, error) {
	var rows []model.Contract
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, estimate_id, contract_no, title, client_name, client_id, total_amount,
		       start_date, end_date, pdf_filename, body_text, created_at
		FROM contracts
		WHERE title ILIKE ? OR contract_no ILIKE ? OR client_name ILIKE ?
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`, keywordLike, keywordLike, keywordLike, limit, offset).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindAllForSelect lists contracts for the progress form's contract picker.
func (r *ContractRepository) FindAllForSelect(ctx context.Context) ([]model.Contract, error) {
	var rows []model.Contract
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, contract_no, title, client_name, total_amount
		FROM contracts
		ORDER BY id DESC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a contract. An empty ContractNo is filled with the next
// ctr-YYYY-NNN inside the transaction.
func (r *ContractRepository) Create(ctx context.Context, year int, c model.Contract) (*model.Contract, error) {
	var saved model.Contract
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		no := c.ContractNo
		if no == "" {
			var err error
			no, err = nextDocNo(tx, "contracts", "contract_no", docno.PrefixContract, year)
			if err != nil {
				return err
			}
		}
		return tx.Raw(`
			INSERT INTO contracts (estimate_id, contract_no, title, client_name, client_id, total_amount, start_date, end_date, pdf_filename, body_text)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id, estimate_id, contract_no, title, client_name, client_id, total_amount,
			          start_date, end_date, pdf_filename, body_text, created_at
		`, c.EstimateID, no, c.Title, c.ClientName, c.ClientID, c.TotalAmount,
			c.StartDate, c.EndDate, c.PdfFilename, c.BodyText).Scan(&saved).Error
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *ContractRepository) Update(ctx context.Context, id int64, c model.Contract) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE contracts
		SET estimate_id = ?, contract_no = ?, title = ?, client_name = ?, client_id = ?,
		    total_amount = ?, start_date = ?, end_date = ?, pdf_filename = ?, body_text = ?
		WHERE id = ?
	`, c.EstimateID, c.ContractNo, c.Title, c.ClientName, c.ClientID,
		c.TotalAmount, c.StartDate, c.EndDate, c.PdfFilename, c.BodyText, id).Error
}

// Delete removes the contract; progress records go with it via the cascade.
func (r *ContractRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM contracts WHERE id = ?`, id).Error
}

func (r *ContractRepository) NextNo(ctx context.Context, year int) (string, error) {
	return nextDocNo(r.db.WithContext(ctx), "contracts", "contract_no", docno.PrefixContract, year)
}
