package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hanseo-dev/siteoffice/internal/docno"
	"github.com/hanseo-dev/siteoffice/internal/model"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

const progressJoinSelect = `
	SELECT
		p.id,
		p.progress_no,
		p.contract_id,
		p.progress_month,
		p.progress_rate,
		p.progress_amount,
		p.note,
		p.created_at,
		c.contract_no AS contract_no,
		c.title AS contract_title,
		c.client_name AS contract_client_name,
		c.total_amount AS contract_total_amount
	FROM progress p
	JOIN contracts c ON c.id = p.contract_id
`

func (r *ProgressRepository) FindByID(ctx context.Context, id int64) (*model.ProgressWithContract, error) {
	var row model.ProgressWithContract
	err := r.db.WithContext(ctx).Raw(progressJoinSelect+`
		WHERE p.id = ?
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

func (r *ProgressRepository) CountByKeyword(ctx context.Context, keywordLike string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM progress p
		JOIN contracts c ON c.id = p.contract_id
		WHERE c.title ILIKE ? OR c.contract_no ILIKE ? OR p.progress_no ILIKE ?
	`, keywordLike, keywordLike, keywordLike).Scan(&count).Error
	return count, err
}

func (r *ProgressRepository) FindPaged(ctx context.Context, keywordLike string, limit, offset int) ([]model.ProgressWithContract, error) {
	var rows []model.ProgressWithContract
	err := r.db.WithContext(ctx).Raw(progressJoinSelect+`
		WHERE c.title ILIKE ? OR c.contract_no ILIKE ? OR p.progress_no ILIKE ?
		ORDER BY p.id DESC
		LIMIT ? OFFSET ?
	`, keywordLike, keywordLike, keywordLike, limit, offset).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ProgressRepository) SumByContract(ctx context.Context, contractID int64) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(progress_amount), 0)
		FROM progress
		WHERE contract_id = ?
	`, contractID).Scan(&sum).Error
	return sum, err
}

// ListByContractAsc returns a contract's records in canonical chronological
// order: month ascending, then id ascending. Recalculation depends on this
// ordering because months can be back-dated.
func (r *ProgressRepository) ListByContractAsc(ctx context.Context, contractID int64) ([]model.Progress, error) {
	var rows []model.Progress
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, progress_no, contract_id, progress_month, progress_rate, progress_amount, note, created_at
		FROM progress
		WHERE contract_id = ?
		ORDER BY progress_month ASC, id ASC
	`, contractID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByContractDesc is the display order for a contract's billing history.
func (r *ProgressRepository) ListByContractDesc(ctx context.Context, contractID int64) ([]model.Progress, error) {
	var rows []model.Progress
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, progress_no, contract_id, progress_month, progress_rate, progress_amount, note, created_at
		FROM progress
		WHERE contract_id = ?
		ORDER BY progress_month DESC, id DESC
	`, contractID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ExistsByContractMonth reports whether the contract already has a record for
// the month. excludeID skips the record being edited; pass 0 on create.
func (r *ProgressRepository) ExistsByContractMonth(ctx context.Context, contractID int64, month string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM progress
		WHERE contract_id = ? AND progress_month = ? AND id != ?
	`, contractID, month, excludeID).Scan(&count).Error
	return count > 0, err
}

// Create inserts a record, generating the next prg-YYYY-NNN inside the same
// transaction so the number lookup and insert serialize together.
func (r *ProgressRepository) Create(ctx context.Context, year int, p model.Progress) (*model.Progress, error) {
	var saved model.Progress
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		no, err := nextDocNo(tx, "progress", "progress_no", docno.PrefixProgress, year)
		if err != nil {
			return err
		}
		return tx.Raw(`
			INSERT INTO progress (progress_no, contract_id, progress_month, progress_rate, progress_amount, note)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING id, progress_no, contract_id, progress_month, progress_rate, progress_amount, note, created_at
		`, no, p.ContractID, p.ProgressMonth, p.ProgressRate, p.ProgressAmount, p.Note).Scan(&saved).Error
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *ProgressRepository) Update(ctx context.Context, id int64, p model.Progress) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE progress
		SET contract_id = ?, progress_month = ?, progress_rate = ?, progress_amount = ?, note = ?
		WHERE id = ?
	`, p.ContractID, p.ProgressMonth, p.ProgressRate, p.ProgressAmount, p.Note, id).Error
}

// RateUpdate carries one recalculated cumulative rate back to its record.
type RateUpdate struct {
	ID   int64
	Rate float64
}

// UpdateRates persists a recalculation result. All rows commit or none do.
func (r *ProgressRepository) UpdateRates(ctx context.Context, updates []RateUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			if err := tx.Exec(`
				UPDATE progress SET progress_rate = ? WHERE id = ?
			`, u.Rate, u.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ProgressRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM progress WHERE id = ?`, id).Error
}

// NextNo previews the next document number without reserving it.
func (r *ProgressRepository) NextNo(ctx context.Context, year int) (string, error) {
	return nextDocNo(r.db.WithContext(ctx), "progress", "progress_no", docno.PrefixProgress, year)
}
