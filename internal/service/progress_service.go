package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/hanseo-dev/siteoffice/internal/model"
	"github.com/hanseo-dev/siteoffice/internal/numparse"
	"github.com/hanseo-dev/siteoffice/internal/repository"
)

type ProgressRepository interface {
	FindByID(ctx context.Context, id int64) (*model.ProgressWithContract, error)
	CountByKeyword(ctx context.Context, keywordLike string) (int64, error)
	FindPaged(ctx context.Context, keywordLike string, limit, offset int) ([]model.ProgressWithContract, error)
	SumByContract(ctx context.Context, contractID int64) (int64, error)
	ListByContractAsc(ctx context.Context, contractID int64) ([]model.Progress, error)
	ExistsByContractMonth(ctx context.Context, contractID int64, month string, excludeID int64) (bool, error)
	Create(ctx context.Context, year int, p model.Progress) (*model.Progress, error)
	Update(ctx context.Context, id int64, p model.Progress) error
	UpdateRates(ctx context.Context, updates []repository.RateUpdate) error
	Delete(ctx context.Context, id int64) error
	NextNo(ctx context.Context, year int) (string, error)
}

// ContractReader is the slice of the contract repository the progress service
// needs: validation and the fresh contract total for recalculation.
type ContractReader interface {
	FindByID(ctx context.Context, id int64) (*model.Contract, error)
}

type ProgressService struct {
	progress  ProgressRepository
	contracts ContractReader
	perPage   int
}

func NewProgressService(progress ProgressRepository, contracts ContractReader, perPage int) *ProgressService {
	return &ProgressService{progress: progress, contracts: contracts, perPage: perPage}
}

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

type ProgressInput struct {
	ContractID     string
	ProgressMonth  string
	ProgressAmount string
	Note           string
}

type ProgressListResult struct {
	Rows        []model.ProgressWithContract
	Page        Page
	SearchQuery string
}

// ProgressDetail pairs a record with the contract-wide billing summary and
// the cumulative state as of this record. The two coincide only for the
// latest record in month/id order.
type ProgressDetail struct {
	Progress model.ProgressWithContract
	Summary  model.ProgressSummary
	AtThis   model.ProgressSummary
}

func (s *ProgressService) List(ctx context.Context, keyword, rawPage string) (*ProgressListResult, error) {
	like := "%" + strings.TrimSpace(keyword) + "%"

	total, err := s.progress.CountByKeyword(ctx, like)
	if err != nil {
		return nil, err
	}
	page := Paginate(total, rawPage, s.perPage)

	rows, err := s.progress.FindPaged(ctx, like, page.PerPage, page.Offset)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].RowNo = page.StartNumber - int64(i)
	}

	return &ProgressListResult{
		Rows:        rows,
		Page:        page,
		SearchQuery: strings.TrimSpace(keyword),
	}, nil
}

func (s *ProgressService) Create(ctx context.Context, input ProgressInput) (int64, error) {
	contract, month, amount, err := s.validate(ctx, input, 0)
	if err != nil {
		return 0, err
	}

	saved, err := s.progress.Create(ctx, time.Now().Year(), model.Progress{
		ContractID:     contract.ID,
		ProgressMonth:  month,
		ProgressAmount: amount,
		Note:           strings.TrimSpace(input.Note),
	})
	if err != nil {
		return 0, err
	}

	if _, err := s.Recalculate(ctx, contract.ID, contract.TotalAmount); err != nil {
		return 0, err
	}
	return saved.ID, nil
}

func (s *ProgressService) Update(ctx context.Context, id int64, input ProgressInput) error {
	if _, err := s.progress.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "progress record not found")
	}

	contract, month, amount, err := s.validate(ctx, input, id)
	if err != nil {
		return err
	}

	err = s.progress.Update(ctx, id, model.Progress{
		ContractID:     contract.ID,
		ProgressMonth:  month,
		ProgressRate:   nil, // filled by recalculation
		ProgressAmount: amount,
		Note:           strings.TrimSpace(input.Note),
	})
	if err != nil {
		return err
	}

	_, err = s.Recalculate(ctx, contract.ID, contract.TotalAmount)
	return err
}

// Delete reads the owning contract before removing the record so the
// remaining siblings can be recalculated without the deleted amount.
func (s *ProgressService) Delete(ctx context.Context, id int64) error {
	row, err := s.progress.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "progress record not found")
	}

	contractID := row.ContractID
	contractTotal := row.ContractTotalAmount

	if err := s.progress.Delete(ctx, id); err != nil {
		return err
	}

	_, err = s.Recalculate(ctx, contractID, contractTotal)
	return err
}

func (s *ProgressService) Detail(ctx context.Context, id int64) (*ProgressDetail, error) {
	row, err := s.progress.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "progress record not found")
	}

	total := row.ContractTotalAmount
	sumPaid, err := s.progress.SumByContract(ctx, row.ContractID)
	if err != nil {
		return nil, err
	}

	asc, err := s.progress.ListByContractAsc(ctx, row.ContractID)
	if err != nil {
		return nil, err
	}
	var cumAtThis int64
	for _, r := range asc {
		cumAtThis += r.ProgressAmount
		if r.ID == row.ID {
			break
		}
	}

	return &ProgressDetail{
		Progress: *row,
		Summary: model.ProgressSummary{
			SumPaid:        sumPaid,
			ContractTotal:  total,
			Balance:        total - sumPaid,
			CumulativeRate: rateOf(sumPaid, total),
		},
		AtThis: model.ProgressSummary{
			SumPaid:        cumAtThis,
			ContractTotal:  total,
			Balance:        total - cumAtThis,
			CumulativeRate: rateOf(cumAtThis, total),
		},
	}, nil
}

// ContractBase reports the existing cumulative state of a contract, shown on
// the new-record form before anything is entered.
func (s *ProgressService) ContractBase(ctx context.Context, contractID int64) (*model.ProgressSummary, error) {
	contract, err := s.contracts.FindByID(ctx, contractID)
	if err != nil {
		return nil, notFoundOr(err, "contract not found")
	}

	sumPaid, err := s.progress.SumByContract(ctx, contract.ID)
	if err != nil {
		return nil, err
	}
	return &model.ProgressSummary{
		SumPaid:        sumPaid,
		ContractTotal:  contract.TotalAmount,
		Balance:        contract.TotalAmount - sumPaid,
		CumulativeRate: rateOf(sumPaid, contract.TotalAmount),
	}, nil
}

// Recalculate rewrites every record's cumulative rate for a contract by
// walking the records in month/id order. Idempotent: a second run with no
// intervening writes stores identical rates.
func (s *ProgressService) Recalculate(ctx context.Context, contractID, contractTotal int64) (*model.ProgressSummary, error) {
	rows, err := s.progress.ListByContractAsc(ctx, contractID)
	if err != nil {
		return nil, err
	}

	updates, summary := computeCumulativeRates(rows, contractTotal)
	if err := s.progress.UpdateRates(ctx, updates); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *ProgressService) validate(ctx context.Context, input ProgressInput, excludeID int64) (*model.Contract, string, int64, error) {
	contractID := numparse.IntOrDefault(input.ContractID, 0)
	if contractID == 0 {
		return nil, "", 0, fmt.Errorf("%w: contract is required", ErrInvalidInput)
	}

	contract, err := s.contracts.FindByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", 0, fmt.Errorf("%w: contract not found", ErrNotFound)
		}
		return nil, "", 0, err
	}

	month := strings.TrimSpace(input.ProgressMonth)
	if !monthPattern.MatchString(month) {
		return nil, "", 0, fmt.Errorf("%w: progress month must be YYYY-MM", ErrInvalidInput)
	}

	exists, err := s.progress.ExistsByContractMonth(ctx, contract.ID, month, excludeID)
	if err != nil {
		return nil, "", 0, err
	}
	if exists {
		return nil, "", 0, fmt.Errorf("%w: progress for this contract and month already exists", ErrDuplicate)
	}

	amount := numparse.AmountOrDefault(input.ProgressAmount, 0)
	if amount == 0 {
		return nil, "", 0, fmt.Errorf("%w: progress amount is required", ErrInvalidInput)
	}

	return contract, month, amount, nil
}

// computeCumulativeRates folds the ordered records into running cumulative
// sums. A zero contract total yields rate 0 for every record.
func computeCumulativeRates(rows []model.Progress, contractTotal int64) ([]repository.RateUpdate, model.ProgressSummary) {
	updates := make([]repository.RateUpdate, 0, len(rows))
	var cum int64
	for _, row := range rows {
		cum += row.ProgressAmount
		updates = append(updates, repository.RateUpdate{
			ID:   row.ID,
			Rate: rateOf(cum, contractTotal),
		})
	}
	return updates, model.ProgressSummary{
		SumPaid:        cum,
		ContractTotal:  contractTotal,
		Balance:        contractTotal - cum,
		CumulativeRate: rateOf(cum, contractTotal),
	}
}

func rateOf(paid, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return numparse.Round2(float64(paid) / float64(total) * 100)
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	}
	return err
}
