package service

import (
	"hospedaria/internal/db"
	"hospedaria/internal/entities"
	"hospedaria/internal/repository"
)

type PropertyService struct {
	Repo *repository.PropertyRepository
}

func NewPropertyService(repo *repository.PropertyRepository) *PropertyService {
	return &PropertyService{Repo: repo}
}

func (s *PropertyService) GetProperty(id string) (*entities.PropertyResponse, error) {
	p, err := s.Repo.GetPropertyByID(id)
	if err != nil {
		return nil, err
	}
	return toPropertyResponse(p), nil
}

func (s *PropertyService) ListProperties(filters entities.PropertyFilters) ([]entities.PropertyResponse, error) {
	properties, err := s.Repo.ListProperties(filters)
	if err != nil {
		return nil, err
	}
	responses := make([]entities.PropertyResponse, 0, len(properties))
	for i := range properties {
		responses = append(responses, *toPropertyResponse(&properties[i]))
	}
	return responses, nil
}

func (s *PropertyService) ListCities() ([]string, error) {
	return s.Repo.ListCities()
}

func toPropertyResponse(p *db.Property) *entities.PropertyResponse {
	return &entities.PropertyResponse{
		ID:            p.ID,
		Title:         p.Title,
		City:          p.City,
		PricePerNight: p.PricePerNight,
		ImageURL:      p.ImageURL,
		MaxGuests:     p.MaxGuests,
		Rating:        p.Rating,
	}
}
