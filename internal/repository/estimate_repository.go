package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hanseo-dev/siteoffice/internal/docno"
	"github.com/hanseo-dev/siteoffice/internal/model"
)

type EstimateRepository struct {
	db *gorm.DB
}

func NewEstimateRepository(db *gorm.DB) *EstimateRepository {
	return &EstimateRepository{db: db}
}

func (r *EstimateRepository) FindByID(ctx context.Context, id int64) (*model.Estimate, error) {
	var row model.Estimate
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, estimate_no, title, client_name, client_id, total_amount, created_at
		FROM estimates
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

func (r *EstimateRepository) FindItems(ctx context.Context, estimateID int64) ([]model.EstimateItem, error) {
	var rows []model.EstimateItem
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, estimate_id, row_no, item_name, spec, unit, qty,
		       material_unit, material_amount, labor_unit, labor_amount,
		       expense_unit, expense_amount, total_unit, total_amount, note
		FROM estimate_items
		WHERE estimate_id = ?
		ORDER BY row_no ASC
	`, estimateID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *EstimateRepository) CountByKeyword(ctx context.Context, keywordLike string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM estimates
		WHERE title ILIKE ? OR estimate_no ILIKE ? OR client_name ILIKE ?
	`, keywordLike, keywordLike, keywordLike).Scan(&count).Error
	return count, err
}

func (r *EstimateRepository) FindPaged(ctx context.Context, keywordLike string, limit, offset int) ([]model.Estimate, error) {
	var rows []model.Estimate
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, estimate_no, title, client_name, client_id, total_amount, created_at
		FROM estimates
		WHERE title ILIKE ? OR estimate_no ILIKE ? OR client_name ILIKE ?
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`, keywordLike, keywordLike, keywordLike, limit, offset).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

const insertItemSQL = `
	INSERT INTO estimate_items (
		estimate_id, row_no, item_name, spec, unit, qty,
		material_unit, material_amount, labor_unit, labor_amount,
		expense_unit, expense_amount, total_unit, total_amount, note
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func insertItems(tx *gorm.DB, estimateID int64, items []model.EstimateItem) error {
	for _, item := range items {
		if err := tx.Exec(insertItemSQL,
			estimateID, item.RowNo, item.ItemName, item.Spec, item.Unit, item.Qty,
			item.MaterialUnit, item.MaterialAmount, item.LaborUnit, item.LaborAmount,
			item.ExpenseUnit, item.ExpenseAmount, item.TotalUnit, item.TotalAmount, item.Note,
		).Error; err != nil {
			return err
		}
	}
	return nil
}

// Create inserts the header and its items as one transaction. The estimate
// number is generated inside the transaction.
func (r *EstimateRepository) Create(ctx context.Context, year int, e model.Estimate, items []model.EstimateItem) (*model.Estimate, error) {
	var saved model.Estimate
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		no, err := nextDocNo(tx, "estimates", "estimate_no", docno.PrefixEstimate, year)
		if err != nil {
			return err
		}
		if err := tx.Raw(`
			INSERT INTO estimates (estimate_no, title, client_name, client_id, total_amount)
			VALUES (?, ?, ?, ?, ?)
			RETURNING id, estimate_no, title, client_name, client_id, total_amount, created_at
		`, no, e.Title, e.ClientName, e.ClientID, e.TotalAmount).Scan(&saved).Error; err != nil {
			return err
		}
		return insertItems(tx, saved.ID, items)
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// Update replaces the item set wholesale: delete all, re-insert. No diffing.
func (r *EstimateRepository) Update(ctx context.Context, id int64, e model.Estimate, items []model.EstimateItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`
			UPDATE estimates
			SET title = ?, client_name = ?, client_id = ?, total_amount = ?
			WHERE id = ?
		`, e.Title, e.ClientName, e.ClientID, e.TotalAmount, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM estimate_items WHERE estimate_id = ?`, id).Error; err != nil {
			return err
		}
		return insertItems(tx, id, items)
	})
}

// Copy duplicates an estimate under a fresh number with the given title,
// re-inserting the source items with their original row numbers.
func (r *EstimateRepository) Copy(ctx context.Context, year int, sourceID int64, title string) (int64, error) {
	var newID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var src model.Estimate
		if err := tx.Raw(`
			SELECT id, estimate_no, title, client_name, client_id, total_amount, created_at
			FROM estimates
			WHERE id = ?
			LIMIT 1
		`, sourceID).Scan(&src).Error; err != nil {
			return err
		}
		if src.ID == 0 {
			return gorm.ErrRecordNotFound
		}

		var items []model.EstimateItem
		if err := tx.Raw(`
			SELECT id, estimate_id, row_no, item_name, spec, unit, qty,
			       material_unit, material_amount, labor_unit, labor_amount,
			       expense_unit, expense_amount, total_unit, total_amount, note
			FROM estimate_items
			WHERE estimate_id = ?
			ORDER BY row_no ASC
		`, sourceID).Scan(&items).Error; err != nil {
			return err
		}

		no, err := nextDocNo(tx, "estimates", "estimate_no", docno.PrefixEstimate, year)
		if err != nil {
			return err
		}
		if err := tx.Raw(`
			INSERT INTO estimates (estimate_no, title, client_name, client_id, total_amount)
			VALUES (?, ?, ?, ?, ?)
			RETURNING id
		`, no, title, src.ClientName, src.ClientID, src.TotalAmount).Scan(&newID).Error; err != nil {
			return err
		}
		return insertItems(tx, newID, items)
	})
	if err != nil {
		return 0, err
	}
	return newID, nil
}

// Delete removes items then the header explicitly; the path does not rely on
// the cascade.
func (r *EstimateRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM estimate_items WHERE estimate_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM estimates WHERE id = ?`, id).Error
	})
}

func (r *EstimateRepository) NextNo(ctx context.Context, year int) (string, error) {
	return nextDocNo(r.db.WithContext(ctx), "estimates", "estimate_no", docno.PrefixEstimate, year)
}
