package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hanseo-dev/siteoffice/internal/model"
	"github.com/hanseo-dev/siteoffice/internal/repository"
)

type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) FindByID(ctx context.Context, id int64) (*model.ProgressWithContract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProgressWithContract), args.Error(1)
}

func (m *MockProgressRepository) CountByKeyword(ctx context.Context, keywordLike string) (int64, error) {
	args := m.Called(ctx, keywordLike)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProgressRepository) FindPaged(ctx context.Context, keywordLike string, limit, offset int) ([]model.ProgressWithContract, error) {
	args := m.Called(ctx, keywordLike, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProgressWithContract), args.Error(1)
}

func (m *MockProgressRepository) SumByContract(ctx context.Context, contractID int64) (int64, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProgressRepository) ListByContractAsc(ctx context.Context, contractID int64) ([]model.Progress, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Progress), args.Error(1)
}

func (m *MockProgressRepository) ExistsByContractMonth(ctx context.Context, contractID int64, month string, excludeID int64) (bool, error) {
	args := m.Called(ctx, contractID, month, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProgressRepository) Create(ctx context.Context, year int, p model.Progress) (*model.Progress, error) {
	args := m.Called(ctx, year, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Progress), args.Error(1)
}

func (m *MockProgressRepository) Update(ctx context.Context, id int64, p model.Progress) error {
	args := m.Called(ctx, id, p)
	return args.Error(0)
}

func (m *MockProgressRepository) UpdateRates(ctx context.Context, updates []repository.RateUpdate) error {
	args := m.Called(ctx, updates)
	return args.Error(0)
}

func (m *MockProgressRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProgressRepository) NextNo(ctx context.Context, year int) (string, error) {
	args := m.Called(ctx, year)
	return args.String(0), args.Error(1)
}

type MockContractReader struct {
	mock.Mock
}

func (m *MockContractReader) FindByID(ctx context.Context, id int64) (*model.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contract), args.Error(1)
}

func TestComputeCumulativeRates_RunningSums(t *testing.T) {
	rows := []model.Progress{
		{ID: 1, ProgressMonth: "2026-01", ProgressAmount: 20_000_000},
		{ID: 2, ProgressMonth: "2026-02", ProgressAmount: 30_000_000},
		{ID: 3, ProgressMonth: "2026-03", ProgressAmount: 25_000_000},
	}

	updates, summary := computeCumulativeRates(rows, 100_000_000)

	require.Len(t, updates, 3)
	assert.Equal(t, repository.RateUpdate{ID: 1, Rate: 20}, updates[0])
	assert.Equal(t, repository.RateUpdate{ID: 2, Rate: 50}, updates[1])
	assert.Equal(t, repository.RateUpdate{ID: 3, Rate: 75}, updates[2])

	assert.Equal(t, int64(75_000_000), summary.SumPaid)
	assert.Equal(t, int64(25_000_000), summary.Balance)
	assert.Equal(t, 75.0, summary.CumulativeRate)
}

func TestComputeCumulativeRates_RoundsToTwoDecimals(t *testing.T) {
	rows := []model.Progress{
		{ID: 1, ProgressAmount: 1},
		{ID: 2, ProgressAmount: 1},
	}

	updates, _ := computeCumulativeRates(rows, 3)

	assert.Equal(t, 33.33, updates[0].Rate)
	assert.Equal(t, 66.67, updates[1].Rate)
}

func TestComputeCumulativeRates_ZeroTotal(t *testing.T) {
	rows := []model.Progress{
		{ID: 1, ProgressAmount: 10_000},
		{ID: 2, ProgressAmount: 5_000},
	}

	updates, summary := computeCumulativeRates(rows, 0)

	for _, u := range updates {
		assert.Equal(t, 0.0, u.Rate)
	}
	assert.Equal(t, 0.0, summary.CumulativeRate)
	assert.Equal(t, int64(-15_000), summary.Balance)
}

func TestComputeCumulativeRates_Empty(t *testing.T) {
	updates, summary := computeCumulativeRates(nil, 1_000_000)

	assert.Empty(t, updates)
	assert.Equal(t, int64(0), summary.SumPaid)
	assert.Equal(t, int64(1_000_000), summary.Balance)
}

func TestProgressRecalculate_Idempotent(t *testing.T) {
	repo := new(MockProgressRepository)
	contracts := new(MockContractReader)
	svc := NewProgressService(repo, contracts, 16)

	rows := []model.Progress{
		{ID: 1, ProgressAmount: 40_000_000},
		{ID: 2, ProgressAmount: 10_000_000},
	}
	wantUpdates := []repository.RateUpdate{
		{ID: 1, Rate: 40},
		{ID: 2, Rate: 50},
	}

	repo.On("ListByContractAsc", mock.Anything, int64(7)).Return(rows, nil).Twice()
	repo.On("UpdateRates", mock.Anything, wantUpdates).Return(nil).Twice()

	first, err := svc.Recalculate(context.Background(), 7, 100_000_000)
	require.NoError(t, err)

	second, err := svc.Recalculate(context.Background(), 7, 100_000_000)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	repo.AssertExpectations(t)
}

func TestProgressCreate_RecalculatesAfterInsert(t *testing.T) {
	repo := new(MockProgressRepository)
	contracts := new(MockContractReader)
	svc := NewProgressService(repo, contracts, 16)

	contract := &model.Contract{ID: 3, TotalAmount: 50_000_000}
	contracts.On("FindByID", mock.Anything, int64(3)).Return(contract, nil)
	repo.On("ExistsByContractMonth", mock.Anything, int64(3), "2026-05", int64(0)).Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("int"), mock.MatchedBy(func(p model.Progress) bool {
		return p.ContractID == 3 && p.ProgressMonth == "2026-05" && p.ProgressAmount == 10_000_000
	})).Return(&model.Progress{ID: 11, ContractID: 3}, nil)
	repo.On("ListByContractAsc", mock.Anything, int64(3)).Return([]model.Progress{
		{ID: 11, ProgressAmount: 10_000_000},
	}, nil)
	repo.On("UpdateRates", mock.Anything, []repository.RateUpdate{{ID: 11, Rate: 20}}).Return(nil)

	id, err := svc.Create(context.Background(), ProgressInput{
		ContractID:     "3",
		ProgressMonth:  "2026-05",
		ProgressAmount: "10,000,000",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	repo.AssertExpectations(t)
}

func TestProgressCreate_RejectsDuplicateMonth(t *testing.T) {
	repo := new(MockProgressRepository)
	contracts := new(MockContractReader)
	svc := NewProgressService(repo, contracts, 16)

	contracts.On("FindByID", mock.Anything, int64(3)).Return(&model.Contract{ID: 3, TotalAmount: 1}, nil)
	repo.On("ExistsByContractMonth", mock.Anything, int64(3), "2026-05", int64(0)).Return(true, nil)

	_, err := svc.Create(context.Background(), ProgressInput{
		ContractID:     "3",
		ProgressMonth:  "2026-05",
		ProgressAmount: "500",
	})

	assert.ErrorIs(t, err, ErrDuplicate)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestProgressUpdate_MonthCheckExcludesSelf(t *testing.T) {
	repo := new(MockProgressRepository)
	contracts := new(MockContractReader)
	svc := NewProgressService(repo, contracts, 16)

	existing := &model.ProgressWithContract{
		Progress: model.Progress{ID: 9, ContractID: 3, ProgressMonth: "2026-05"},
	}
	repo.On("FindByID", mock.Anything, int64(9)).Return(existing, nil)
	contracts.On("FindByID", mock.Anything, int64(3)).Return(&model.Contract{ID: 3, TotalAmount: 1_000}, nil)
	repo.On("ExistsByContractMonth", mock.Anything, int64(3), "2026-05", int64(9)).Return(false, nil)
	repo.On("Update", mock.Anything, int64(9), mock.MatchedBy(func(p model.Progress) bool {
		return p.ProgressRate == nil && p.ProgressAmount == 700
	})).Return(nil)
	repo.On("ListByContractAsc", mock.Anything, int64(3)).Return([]model.Progress{
		{ID: 9, ProgressAmount: 700},
	}, nil)
	repo.On("UpdateRates", mock.Anything, []repository.RateUpdate{{ID: 9, Rate: 70}}).Return(nil)

	err := svc.Update(context.Background(), 9, ProgressInput{
		ContractID:     "3",
		ProgressMonth:  "2026-05",
		ProgressAmount: "700",
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestProgressCreate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   ProgressInput
		wantErr error
	}{
		{"missing contract", ProgressInput{ProgressMonth: "2026-05", ProgressAmount: "100"}, ErrInvalidInput},
		{"bad month format", ProgressInput{ContractID: "3", ProgressMonth: "202605", ProgressAmount: "100"}, ErrInvalidInput},
		{"zero amount", ProgressInput{ContractID: "3", ProgressMonth: "2026-05", ProgressAmount: "0"}, ErrInvalidInput},
		{"garbage amount", ProgressInput{ContractID: "3", ProgressMonth: "2026-05", ProgressAmount: "abc"}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockProgressRepository)
			contracts := new(MockContractReader)
			svc := NewProgressService(repo, contracts, 16)

			contracts.On("FindByID", mock.Anything, int64(3)).Return(&model.Contract{ID: 3, TotalAmount: 1_000}, nil).Maybe()
			repo.On("ExistsByContractMonth", mock.Anything, int64(3), "2026-05", int64(0)).Return(false, nil).Maybe()

			_, err := svc.Create(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProgressCreate_ContractNotFound(t *testing.T) {
	repo := new(MockProgressRepository)
	contracts := new(MockContractReader)
	svc := NewProgressService(repo, contracts, 16)

	contracts.On("FindByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), ProgressInput{
		ContractID:     "99",
		ProgressMonth:  "2026-05",
		ProgressAmount: "100",
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProgressDelete_RecalculatesRemaining(t *testing.T) {
	repo := new(MockProgressRepository)
	contracts := new(MockContractReader)
	svc := NewProgressService(repo, contracts, 16)

	row := &model.ProgressWithContract{
		Progress:            model.Progress{ID: 5, ContractID: 2, ProgressAmount: 300},
		ContractTotalAmount: 1_000,
	}
	repo.On("FindByID", mock.Anything, int64(5)).Return(row, nil)
	repo.On("Delete", mock.Anything, int64(5)).Return(nil)
	repo.On("ListByContractAsc", mock.Anything, int64(2)).Return([]model.Progress{
		{ID: 6, ProgressAmount: 200},
	}, nil)
	repo.On("UpdateRates", mock.Anything, []repository.RateUpdate{{ID: 6, Rate: 20}}).Return(nil)

	err := svc.Delete(context.Background(), 5)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestProgressDetail_SubSummaryStopsAtRecord(t *testing.T) {
	repo := new(MockProgressRepository)
	contracts := new(MockContractReader)
	svc := NewProgressService(repo, contracts, 16)

	row := &model.ProgressWithContract{
		Progress:            model.Progress{ID: 2, ContractID: 4, ProgressAmount: 30},
		ContractTotalAmount: 200,
	}
	repo.On("FindByID", mock.Anything, int64(2)).Return(row, nil)
	repo.On("SumByContract", mock.Anything, int64(4)).Return(int64(100), nil)
	repo.On("ListByContractAsc", mock.Anything, int64(4)).Return([]model.Progress{
		{ID: 1, ProgressAmount: 20},
		{ID: 2, ProgressAmount: 30},
		{ID: 3, ProgressAmount: 50},
	}, nil)

	detail, err := svc.Detail(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, int64(100), detail.Summary.SumPaid)
	assert.Equal(t, 50.0, detail.Summary.CumulativeRate)
	assert.Equal(t, int64(50), detail.AtThis.SumPaid)
	assert.Equal(t, 25.0, detail.AtThis.CumulativeRate)
}

func TestProgressList_CountdownRowNumbers(t *testing.T) {
	repo := new(MockProgressRepository)
	contracts := new(MockContractReader)
	svc := NewProgressService(repo, contracts, 16)

	rows := make([]model.ProgressWithContract, 3)
	for i := range rows {
		rows[i].ID = int64(i + 1)
	}
	repo.On("CountByKeyword", mock.Anything, "%%").Return(int64(30), nil)
	repo.On("FindPaged", mock.Anything, "%%", 16, 16).Return(rows, nil)

	result, err := svc.List(context.Background(), "", "2")

	require.NoError(t, err)
	assert.Equal(t, int64(14), result.Rows[0].RowNo)
	assert.Equal(t, int64(13), result.Rows[1].RowNo)
	assert.Equal(t, int64(12), result.Rows[2].RowNo)
}
