package usecase

import (
	"strings"

	"github.com/google/uuid"

	"github.com/jmarulo/salesledger-api/internal/application/dto"
	"github.com/jmarulo/salesledger-api/internal/domain"
	"github.com/jmarulo/salesledger-api/internal/domain/entity"
	"github.com/jmarulo/salesledger-api/internal/domain/repository"
)

// LocationUseCase CRUD de bodegas/puntos de venta (escrituras solo admin,
// aplicado en el router).
type LocationUseCase struct {
	locationRepo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(locationRepo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{locationRepo: locationRepo}
}

// List retorna las bodegas ordenadas por nombre.
func (uc *LocationUseCase) List() (*dto.LocationListResponse, error) {
	locations, err := uc.locationRepo.List()
	if err != nil {
		return nil, err
	}
	out := &dto.LocationListResponse{Locations: make([]dto.LocationResponse, 0, len(locations))}
	for _, l := range locations {
		out.Locations = append(out.Locations, toLocationResponse(l))
	}
	return out, nil
}

// Create valida y persiste una bodega. Type por defecto: warehouse.
func (uc *LocationUseCase) Create(in dto.LocationRequest) (*entity.Location, error) {
	location, err := locationFromRequest(in)
	if err != nil {
		return nil, err
	}
	location.ID = uuid.New().String()
	if err := uc.locationRepo.Create(location); err != nil {
		return nil, err
	}
	return location, nil
}

// Update reemplaza los campos de la bodega.
func (uc *LocationUseCase) Update(id string, in dto.LocationRequest) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	location, err := locationFromRequest(in)
	if err != nil {
		return err
	}
	location.ID = id
	return uc.locationRepo.Update(location)
}

// Delete elimina la bodega.
func (uc *LocationUseCase) Delete(id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.locationRepo.Delete(id)
}

func locationFromRequest(in dto.LocationRequest) (*entity.Location, error) {
	name := strings.TrimSpace(in.Name)
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if name == "" || code == "" {
		return nil, domain.ErrInvalidInput
	}
	locType := strings.TrimSpace(in.Type)
	if locType == "" {
		locType = "warehouse"
	}
	return &entity.Location{
		Name:    name,
		Code:    code,
		Address: strings.TrimSpace(in.Address),
		Type:    locType,
	}, nil
}

func toLocationResponse(l *entity.Location) dto.LocationResponse {
	return dto.LocationResponse{
		ID:      l.ID,
		Name:    l.Name,
		Code:    l.Code,
		Address: l.Address,
		Type:    l.Type,
	}
}
