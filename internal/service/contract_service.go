package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hanseo-dev/siteoffice/internal/model"
	"github.com/hanseo-dev/siteoffice/internal/numparse"
)

type ContractRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Contract, error)
	CountByKeyword(ctx context.Context, keywordLike string) (int64, error)
	FindPaged(ctx context.Context, keywordLike string, limit, offset int) ([]model.Contract, error)
	FindAllForSelect(ctx context.Context) ([]model.Contract, error)
	Create(ctx context.Context, year int, c model.Contract) (*model.Contract, error)
	Update(ctx context.Context, id int64, c model.Contract) error
	Delete(ctx context.Context, id int64) error
	NextNo(ctx context.Context, year int) (string, error)
}

// ProgressHistoryReader gives the contract service the billing history it
// embeds into contract details.
type ProgressHistoryReader interface {
	ListByContractDesc(ctx context.Context, contractID int64) ([]model.Progress, error)
	SumByContract(ctx context.Context, contractID int64) (int64, error)
}

// ContractPDFGenerator renders a contract document for printing.
type ContractPDFGenerator interface {
	Generate(detail model.ContractDetail) ([]byte, error)
}

type ContractService struct {
	repo     ContractRepository
	progress ProgressHistoryReader
	pdf      ContractPDFGenerator
	perPage  int
}

func NewContractService(repo ContractRepository, progress ProgressHistoryReader, pdf ContractPDFGenerator, perPage int) *ContractService {
	return &ContractService{repo: repo, progress: progress, pdf: pdf, perPage: perPage}
}

// ContractInput carries the raw contract form. File is the already-stored
// upload descriptor, nil when nothing new was uploaded.
type ContractInput struct {
	ContractNo  string
	Title       string
	ClientName  string
	TotalAmount string
	StartDate   string
	EndDate     string
	BodyText    string
	File        *model.StoredFile
}

type ContractListResult struct {
	Rows        []model.Contract
	RowNumbers  []int64
	Page        Page
	SearchQuery string
}

func (s *ContractService) List(ctx context.Context, keyword, rawPage string) (*ContractListResult, error) {
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

	return &ContractListResult{
		Rows:        rows,
		RowNumbers:  numbers,
		Page:        page,
		SearchQuery: strings.TrimSpace(keyword),
	}, nil
}

func (s *ContractService) ListForSelect(ctx context.Context) ([]model.Contract, error) {
	return s.repo.FindAllForSelect(ctx)
}

func (s *ContractService) Create(ctx context.Context, input ContractInput) (int64, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return 0, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	bodyText := strings.TrimSpace(input.BodyText)
	if input.File == nil && bodyText == "" {
		return 0, fmt.Errorf("%w: either a contract PDF or body text is required", ErrInvalidInput)
	}

	pdfFilename := ""
	if input.File != nil {
		pdfFilename = input.File.Filename
	}

	saved, err := s.repo.Create(ctx, time.Now().Year(), model.Contract{
		ContractNo:  strings.TrimSpace(input.ContractNo),
		Title:       title,
		ClientName:  strings.TrimSpace(input.ClientName),
		TotalAmount: numparse.AmountOrDefault(input.TotalAmount, 0),
		StartDate:   strings.TrimSpace(input.StartDate),
		EndDate:     strings.TrimSpace(input.EndDate),
		PdfFilename: pdfFilename,
		BodyText:    bodyText,
	})
	if err != nil {
		return 0, err
	}
	return saved.ID, nil
}

func (s *ContractService) Update(ctx context.Context, id int64, input ContractInput) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "contract not found")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	// Without a new upload the existing document stays attached.
	pdfFilename := existing.PdfFilename
	if input.File != nil {
		pdfFilename = input.File.Filename
	}
	bodyText := strings.TrimSpace(input.BodyText)
	if pdfFilename == "" && bodyText == "" {
		return fmt.Errorf("%w: either a contract PDF or body text is required", ErrInvalidInput)
	}

	return s.repo.Update(ctx, id, model.Contract{
		EstimateID:  existing.EstimateID,
		ContractNo:  strings.TrimSpace(input.ContractNo),
		Title:       title,
		ClientName:  strings.TrimSpace(input.ClientName),
		ClientID:    existing.ClientID,
		TotalAmount: numparse.AmountOrDefault(input.TotalAmount, 0),
		StartDate:   strings.TrimSpace(input.StartDate),
		EndDate:     strings.TrimSpace(input.EndDate),
		PdfFilename: pdfFilename,
		BodyText:    bodyText,
	})
}

// Detail embeds the billing history (newest first) and cumulative summary.
func (s *ContractService) Detail(ctx context.Context, id int64) (*model.ContractDetail, error) {
	contract, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "contract not found")
	}

	history, err := s.progress.ListByContractDesc(ctx, id)
	if err != nil {
		return nil, err
	}
	sumPaid, err := s.progress.SumByContract(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.ContractDetail{
		Contract:        *contract,
		ProgressHistory: history,
		Summary: model.ProgressSummary{
			SumPaid:        sumPaid,
			ContractTotal:  contract.TotalAmount,
			Balance:        contract.TotalAmount - sumPaid,
			CumulativeRate: rateOf(sumPaid, contract.TotalAmount),
		},
	}, nil
}

func (s *ContractService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "contract not found")
	}
	return s.repo.Delete(ctx, id)
}

func (s *ContractService) NextNo(ctx context.Context) (string, error) {
	return s.repo.NextNo(ctx, time.Now().Year())
}

func (s *ContractService) ExportPDF(ctx context.Context, id int64) (*ExportResult, error) {
	detail, err := s.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(*detail)
	if err != nil {
		return nil, err
	}
	name := detail.ContractNo
	if name == "" {
		name = fmt.Sprintf("contract-%d", detail.ID)
	}
	return &ExportResult{FileName: name + ".pdf", Content: content}, nil
}
