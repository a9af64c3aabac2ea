package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hanseo-dev/siteoffice/internal/model"
)

type ClientRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Client, error)
	CountByKeyword(ctx context.Context, keywordLike string) (int64, error)
	FindPaged(ctx context.Context, keywordLike string, limit, offset int) ([]model.Client, error)
	FindAll(ctx context.Context) ([]model.Client, error)
	Create(ctx context.Context, c model.Client) (int64, error)
	Update(ctx context.Context, id int64, c model.Client) error
	Delete(ctx context.Context, id int64) error
	BulkInsert(ctx context.Context, clients []model.Client) (int, error)
}

// ClientWorkbookGenerator renders the client list as a spreadsheet and reads
// the same layout back for bulk import.
type ClientWorkbookGenerator interface {
	Generate(clients []model.Client) ([]byte, error)
	ParseClients(content []byte) ([]model.Client, error)
}

type ClientService struct {
	repo    ClientRepository
	excel   ClientWorkbookGenerator
	perPage int
}

func NewClientService(repo ClientRepository, excel ClientWorkbookGenerator, perPage int) *ClientService {
	return &ClientService{repo: repo, excel: excel, perPage: perPage}
}

// ClientInput is the raw client form. Cert is the already-stored business
// certificate upload, nil when nothing new was uploaded.
type ClientInput struct {
	Name    string
	BizNo   string
	CeoName string
	Phone   string
	Email   string
	Address string
	Memo    string
	Cert    *model.StoredFile
}

type ClientListResult struct {
	Rows        []model.Client
	RowNumbers  []int64
	Page        Page
	SearchQuery string
}

func (s *ClientService) sanitize(input ClientInput) (model.Client, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return model.Client{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return model.Client{
		Name:    name,
		BizNo:   strings.TrimSpace(input.BizNo),
		CeoName: strings.TrimSpace(input.CeoName),
		Phone:   strings.TrimSpace(input.Phone),
		Email:   strings.TrimSpace(input.Email),
		Address: strings.TrimSpace(input.Address),
		Memo:    strings.TrimSpace(input.Memo),
	}, nil
}

func (s *ClientService) List(ctx context.Context, keyword, rawPage string) (*ClientListResult, error) {
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

	return &ClientListResult{
		Rows:        rows,
		RowNumbers:  numbers,
		Page:        page,
		SearchQuery: strings.TrimSpace(keyword),
	}, nil
}

func (s *ClientService) Get(ctx context.Context, id int64) (*model.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "client not found")
	}
	return client, nil
}

func (s *ClientService) Create(ctx context.Context, input ClientInput) (int64, error) {
	client, err := s.sanitize(input)
	if err != nil {
		return 0, err
	}
	if input.Cert != nil {
		client.CertFilename = input.Cert.Filename
		client.CertOriginalName = input.Cert.OriginalName
	}
	return s.repo.Create(ctx, client)
}

func (s *ClientService) Update(ctx context.Context, id int64, input ClientInput) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "client not found")
	}

	client, err := s.sanitize(input)
	if err != nil {
		return err
	}
	client.CertFilename = existing.CertFilename
	client.CertOriginalName = existing.CertOriginalName
	if input.Cert != nil {
		client.CertFilename = input.Cert.Filename
		client.CertOriginalName = input.Cert.OriginalName
	}
	return s.repo.Update(ctx, id, client)
}

func (s *ClientService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "client not found")
	}
	return s.repo.Delete(ctx, id)
}

// BulkCreate inserts imported rows after validating every name. Error
// messages report the spreadsheet row (header on row 1, data from row 2).
func (s *ClientService) BulkCreate(ctx context.Context, clients []model.Client) (int, error) {
	for i, c := range clients {
		if strings.TrimSpace(c.Name) == "" {
			return 0, fmt.Errorf("%w: row %d: name is required", ErrInvalidInput, i+2)
		}
	}
	return s.repo.BulkInsert(ctx, clients)
}

// ImportWorkbook parses an uploaded roster spreadsheet and inserts every row.
// It returns the number of inserted clients.
func (s *ClientService) ImportWorkbook(ctx context.Context, content []byte) (int, error) {
	clients, err := s.excel.ParseClients(content)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(clients) == 0 {
		return 0, fmt.Errorf("%w: workbook has no client rows", ErrInvalidInput)
	}
	return s.BulkCreate(ctx, clients)
}

func (s *ClientService) ExportWorkbook(ctx context.Context) (*ExportResult, error) {
	clients, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Generate(clients)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("clients-%s.xlsx", time.Now().Format("20060102"))
	return &ExportResult{FileName: name, Content: content}, nil
}
