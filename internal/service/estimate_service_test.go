package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hanseo-dev/siteoffice/internal/model"
)

type MockEstimateRepository struct {
	mock.Mock
}

func (m *MockEstimateRepository) FindByID(ctx context.Context, id int64) (*model.Estimate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Estimate), args.Error(1)
}

func (m *MockEstimateRepository) FindItems(ctx context.Context, estimateID int64) ([]model.EstimateItem, error) {
	args := m.Called(ctx, estimateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EstimateItem), args.Error(1)
}

func (m *MockEstimateRepository) CountByKeyword(ctx context.Context, keywordLike string) (int64, error) {
	args := m.Called(ctx, keywordLike)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEstimateRepository) FindPaged(ctx context.Context, keywordLike string, limit, offset int) ([]model.Estimate, error) {
	args := m.Called(ctx, keywordLike, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Estimate), args.Error(1)
}

func (m *MockEstimateRepository) Create(ctx context.Context, year int, e model.Estimate, items []model.EstimateItem) (*model.Estimate, error) {
	args := m.Called(ctx, year, e, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Estimate), args.Error(1)
}

func (m *MockEstimateRepository) Update(ctx context.Context, id int64, e model.Estimate, items []model.EstimateItem) error {
	args := m.Called(ctx, id, e, items)
	return args.Error(0)
}

func (m *MockEstimateRepository) Copy(ctx context.Context, year int, sourceID int64, title string) (int64, error) {
	args := m.Called(ctx, year, sourceID, title)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEstimateRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEstimateRepository) NextNo(ctx context.Context, year int) (string, error) {
	args := m.Called(ctx, year)
	return args.String(0), args.Error(1)
}

type stubEstimateWorkbook struct{}

func (stubEstimateWorkbook) Generate(model.Estimate, []model.EstimateItem) ([]byte, error) {
	return []byte("xlsx"), nil
}

func TestNormalizeItems_DropsBlankRowsAndRenumbers(t *testing.T) {
	inputs := []EstimateItemInput{
		{ItemName: "철근", TotalAmount: "1000"},
		{},
		{ItemName: " ", Spec: "", Unit: "", Qty: "", TotalAmount: ""},
		{ItemName: "레미콘", TotalAmount: "2000"},
	}

	items := normalizeItems(inputs)

	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].RowNo)
	assert.Equal(t, "철근", items[0].ItemName)
	assert.Equal(t, 2, items[1].RowNo)
	assert.Equal(t, "레미콘", items[1].ItemName)
}

func TestNormalizeItems_GarbageAmountsBecomeZero(t *testing.T) {
	inputs := []EstimateItemInput{
		{ItemName: "자재", Qty: "2.5", TotalAmount: "1,000", MaterialUnit: "abc"},
	}

	items := normalizeItems(inputs)

	require.Len(t, items, 1)
	assert.Equal(t, 2.5, items[0].Qty)
	assert.Equal(t, int64(0), items[0].TotalAmount)
	assert.Equal(t, int64(0), items[0].MaterialUnit)
}

func TestEstimateCreate_SumsSurvivingRows(t *testing.T) {
	repo := new(MockEstimateRepository)
	svc := NewEstimateService(repo, stubEstimateWorkbook{}, 16)

	repo.On("Create", mock.Anything, mock.AnythingOfType("int"),
		mock.MatchedBy(func(e model.Estimate) bool {
			return e.Title == "신축공사" && e.TotalAmount == 3000
		}),
		mock.MatchedBy(func(items []model.EstimateItem) bool {
			return len(items) == 2
		}),
	).Return(&model.Estimate{ID: 4}, nil)

	id, err := svc.Create(context.Background(), EstimateInput{
		Title: "신축공사",
		Items: []EstimateItemInput{
			{ItemName: "철근", TotalAmount: "1000"},
			{},
			{ItemName: "레미콘", TotalAmount: "2000"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(4), id)
	repo.AssertExpectations(t)
}

func TestEstimateCreate_RequiresTitle(t *testing.T) {
	repo := new(MockEstimateRepository)
	svc := NewEstimateService(repo, stubEstimateWorkbook{}, 16)

	_, err := svc.Create(context.Background(), EstimateInput{Title: "   "})

	assert.ErrorIs(t, err, ErrInvalidInput)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEstimateCopy_AppendsSuffix(t *testing.T) {
	repo := new(MockEstimateRepository)
	svc := NewEstimateService(repo, stubEstimateWorkbook{}, 16)

	repo.On("FindByID", mock.Anything, int64(8)).Return(&model.Estimate{ID: 8, Title: "신축공사"}, nil)
	repo.On("Copy", mock.Anything, mock.AnythingOfType("int"), int64(8), "신축공사 (복사)").Return(int64(9), nil)

	id, err := svc.Copy(context.Background(), 8)

	require.NoError(t, err)
	assert.Equal(t, int64(9), id)
	repo.AssertExpectations(t)
}

func TestEstimateDetail_FillsRowCount(t *testing.T) {
	repo := new(MockEstimateRepository)
	svc := NewEstimateService(repo, stubEstimateWorkbook{}, 16)

	repo.On("FindByID", mock.Anything, int64(2)).Return(&model.Estimate{ID: 2}, nil)
	repo.On("FindItems", mock.Anything, int64(2)).Return([]model.EstimateItem{
		{RowNo: 1, ItemName: "철근"},
	}, nil)

	detail, err := svc.Detail(context.Background(), 2, 30)

	require.NoError(t, err)
	require.Len(t, detail.Items, 30)
	assert.Equal(t, "철근", detail.Items[0].ItemName)
	assert.True(t, detail.Items[1].Blank())
	assert.True(t, detail.Items[29].Blank())
}

func TestEstimateDetail_NoPaddingByDefault(t *testing.T) {
	repo := new(MockEstimateRepository)
	svc := NewEstimateService(repo, stubEstimateWorkbook{}, 16)

	repo.On("FindByID", mock.Anything, int64(2)).Return(&model.Estimate{ID: 2}, nil)
	repo.On("FindItems", mock.Anything, int64(2)).Return([]model.EstimateItem{
		{RowNo: 1, ItemName: "철근"},
		{RowNo: 2, ItemName: "레미콘"},
	}, nil)

	detail, err := svc.Detail(context.Background(), 2, 0)

	require.NoError(t, err)
	assert.Len(t, detail.Items, 2)
}
