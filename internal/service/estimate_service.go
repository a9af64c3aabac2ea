package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hanseo-dev/siteoffice/internal/model"
	"github.com/hanseo-dev/siteoffice/internal/numparse"
)

type EstimateRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Estimate, error)
	FindItems(ctx context.Context, estimateID int64) ([]model.EstimateItem, error)
	CountByKeyword(ctx context.Context, keywordLike string) (int64, error)
	FindPaged(ctx context.Context, keywordLike string, limit, offset int) ([]model.Estimate, error)
	Create(ctx context.Context, year int, e model.Estimate, items []model.EstimateItem) (*model.Estimate, error)
	Update(ctx context.Context, id int64, e model.Estimate, items []model.EstimateItem) error
	Copy(ctx context.Context, year int, sourceID int64, title string) (int64, error)
	Delete(ctx context.Context, id int64) error
	NextNo(ctx context.Context, year int) (string, error)
}

// EstimateWorkbookGenerator renders a persisted estimate as a spreadsheet.
type EstimateWorkbookGenerator interface {
	Generate(estimate model.Estimate, items []model.EstimateItem) ([]byte, error)
}

type EstimateService struct {
	repo    EstimateRepository
	excel   EstimateWorkbookGenerator
	perPage int
}

func NewEstimateService(repo EstimateRepository, excel EstimateWorkbookGenerator, perPage int) *EstimateService {
	return &EstimateService{repo: repo, excel: excel, perPage: perPage}
}

// EstimateItemInput is one raw form row. All values arrive as text; the
// normalizer decides what survives.
type EstimateItemInput struct {
	ItemName       string
	Spec           string
	Unit           string
	Qty            string
	MaterialUnit   string
	MaterialAmount string
	LaborUnit      string
	LaborAmount    string
	ExpenseUnit    string
	ExpenseAmount  string
	TotalUnit      string
	TotalAmount    string
	Note           string
}

type EstimateInput struct {
	Title      string
	ClientName string
	Items      []EstimateItemInput
}

type EstimateListResult struct {
	Rows        []model.Estimate
	RowNumbers  []int64
	Page        Page
	SearchQuery string
}

type EstimateDetail struct {
	Estimate model.Estimate
	Items    []model.EstimateItem
}

type ExportResult struct {
	FileName string
	Content  []byte
}

func (s *EstimateService) List(ctx context.Context, keyword, rawPage string) (*EstimateListResult, error) {
	like := "%" + strings.TrimSpace(keyword) + "%"

	total, err := s.repo.CountByKeyword(ctx, like)
	if err != nil {
		return nil, err
	}
	page := Paginate(total, rawPage, s.perPage)

	rows, err := s.repo.FindPaged(ctx, like, page.PerPage, page.Offset)
	if err != nil {
		return nil, err
	}
	numbers := make([]int64, len(rows))
	for i := range rows {
		numbers[i] = page.StartNumber - int64(i)
	}

	return &EstimateListResult{
		Rows:        rows,
		RowNumbers:  numbers,
		Page:        page,
		SearchQuery: strings.TrimSpace(keyword),
	}, nil
}

func (s *EstimateService) Create(ctx context.Context, input EstimateInput) (int64, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return 0, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	items := normalizeItems(input.Items)
	saved, err := s.repo.Create(ctx, time.Now().Year(), model.Estimate{
		Title:       title,
		ClientName:  strings.TrimSpace(input.ClientName),
		TotalAmount: sumItemTotals(items),
	}, items)
	if err != nil {
		return 0, err
	}
	return saved.ID, nil
}

func (s *EstimateService) Update(ctx context.Context, id int64, input EstimateInput) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "estimate not found")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	items := normalizeItems(input.Items)
	return s.repo.Update(ctx, id, model.Estimate{
		Title:       title,
		ClientName:  strings.TrimSpace(input.ClientName),
		TotalAmount: sumItemTotals(items),
	}, items)
}

// Copy duplicates an estimate, suffixing the title, under a new number.
func (s *EstimateService) Copy(ctx context.Context, sourceID int64) (int64, error) {
	src, err := s.repo.FindByID(ctx, sourceID)
	if err != nil {
		return 0, notFoundOr(err, "estimate not found")
	}
	return s.repo.Copy(ctx, time.Now().Year(), sourceID, src.Title+" (복사)")
}

func (s *EstimateService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "estimate not found")
	}
	return s.repo.Delete(ctx, id)
}

// Detail returns the estimate with its items. A positive fillRowCount shapes
// the item list to exactly that many rows for fixed-row edit forms, padding
// with blank rows.
func (s *EstimateService) Detail(ctx context.Context, id int64, fillRowCount int) (*EstimateDetail, error) {
	estimate, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "estimate not found")
	}
	items, err := s.repo.FindItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if fillRowCount > 0 {
		items = fillItemRows(items, fillRowCount)
	}
	return &EstimateDetail{Estimate: *estimate, Items: items}, nil
}

// NextNo previews the document number the next create would receive.
func (s *EstimateService) NextNo(ctx context.Context) (string, error) {
	return s.repo.NextNo(ctx, time.Now().Year())
}

func (s *EstimateService) ExportWorkbook(ctx context.Context, id int64) (*ExportResult, error) {
	detail, err := s.Detail(ctx, id, 0)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Generate(detail.Estimate, detail.Items)
	if err != nil {
		return nil, err
	}
	name := detail.Estimate.EstimateNo
	if name == "" {
		name = fmt.Sprintf("estimate-%d", detail.Estimate.ID)
	}
	return &ExportResult{FileName: name + ".xlsx", Content: content}, nil
}

// normalizeItems coerces the raw rows and drops fully-blank ones. Row numbers
// are assigned over the surviving rows in their original relative order.
func normalizeItems(inputs []EstimateItemInput) []model.EstimateItem {
	items := make([]model.EstimateItem, 0, len(inputs))
	for _, in := range inputs {
		item := model.EstimateItem{
			ItemName:       strings.TrimSpace(in.ItemName),
			Spec:           strings.TrimSpace(in.Spec),
			Unit:           strings.TrimSpace(in.Unit),
			Qty:            numparse.FloatOrDefault(in.Qty, 0),
			MaterialUnit:   numparse.IntOrDefault(in.MaterialUnit, 0),
			MaterialAmount: numparse.IntOrDefault(in.MaterialAmount, 0),
			LaborUnit:      numparse.IntOrDefault(in.LaborUnit, 0),
			LaborAmount:    numparse.IntOrDefault(in.LaborAmount, 0),
			ExpenseUnit:    numparse.IntOrDefault(in.ExpenseUnit, 0),
			ExpenseAmount:  numparse.IntOrDefault(in.ExpenseAmount, 0),
			TotalUnit:      numparse.IntOrDefault(in.TotalUnit, 0),
			TotalAmount:    numparse.IntOrDefault(in.TotalAmount, 0),
			Note:           strings.TrimSpace(in.Note),
		}
		if item.Blank() {
			continue
		}
		item.RowNo = len(items) + 1
		items = append(items, item)
	}
	return items
}

func sumItemTotals(items []model.EstimateItem) int64 {
	var sum int64
	for _, item := range items {
		sum += item.TotalAmount
	}
	return sum
}

func fillItemRows(items []model.EstimateItem, rowCount int) []model.EstimateItem {
	filled := make([]model.EstimateItem, rowCount)
	copy(filled, items)
	return filled
}
