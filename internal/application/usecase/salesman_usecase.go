package usecase

import (
	"strings"

	"github.com/google/uuid"

	"github.com/jmarulo/salesledger-api/internal/application/dto"
	"github.com/jmarulo/salesledger-api/internal/domain"
	"github.com/jmarulo/salesledger-api/internal/domain/entity"
	"github.com/jmarulo/salesledger-api/internal/domain/repository"
)

// SalesmanUseCase CRUD de vendedores (escrituras solo admin, aplicado en el router).
type SalesmanUseCase struct {
	salesmanRepo repository.SalesmanRepository
}

// NewSalesmanUseCase construye el caso de uso.
func NewSalesmanUseCase(salesmanRepo repository.SalesmanRepository) *SalesmanUseCase {
	return &SalesmanUseCase{salesmanRepo: salesmanRepo}
}

// List retorna los vendedores ordenados por nombre.
func (uc *SalesmanUseCase) List() (*dto.SalesmanListResponse, error) {
	salesmen, err := uc.salesmanRepo.List()
	if err != nil {
		return nil, err
	}
	out := &dto.SalesmanListResponse{Salesmen: make([]dto.SalesmanResponse, 0, len(salesmen))}
	for _, s := range salesmen {
		out.Salesmen = append(out.Salesmen, toSalesmanResponse(s))
	}
	return out, nil
}

// Create valida y persiste un vendedor. Status por defecto: active.
func (uc *SalesmanUseCase) Create(in dto.SalesmanRequest) (*entity.Salesman, error) {
	salesman, err := salesmanFromRequest(in)
	if err != nil {
		return nil, err
	}
	salesman.ID = uuid.New().String()
	if err := uc.salesmanRepo.Create(salesman); err != nil {
		return nil, err
	}
	return salesman, nil
}

// Update reemplaza los campos del vendedor.
func (uc *SalesmanUseCase) Update(id string, in dto.SalesmanRequest) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	salesman, err := salesmanFromRequest(in)
	if err != nil {
		return err
	}
	salesman.ID = id
	return uc.salesmanRepo.Update(salesman)
}

// Delete elimina el vendedor. Las ventas pasadas conservan su nombre
// denormalizado, no se ven afectadas.
func (uc *SalesmanUseCase) Delete(id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.salesmanRepo.Delete(id)
}

func salesmanFromRequest(in dto.SalesmanRequest) (*entity.Salesman, error) {
	name := strings.TrimSpace(in.Name)
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if name == "" || code == "" {
		return nil, domain.ErrInvalidInput
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = "active"
	}
	return &entity.Salesman{
		Name:   name,
		Code:   code,
		Phone:  strings.TrimSpace(in.Phone),
		Status: status,
	}, nil
}

func toSalesmanResponse(s *entity.Salesman) dto.SalesmanResponse {
	return dto.SalesmanResponse{
		ID:     s.ID,
		Name:   s.Name,
		Code:   s.Code,
		Phone:  s.Phone,
		Status: s.Status,
	}
}
