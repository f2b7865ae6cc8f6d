package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"hospedaria/internal/db"
	"hospedaria/internal/entities"
)

type PropertyRepository struct {
	DB *sql.DB
}

func NewPropertyRepository(database *sql.DB) *PropertyRepository {
	return &PropertyRepository{DB: database}
}

func (r *PropertyRepository) GetPropertyByID(id string) (*db.Property, error) {
	var p db.Property
	query := `SELECT id, title, city, price_per_night, image_url, max_guests, rating FROM properties WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&p.ID, &p.Title, &p.City, &p.PricePerNight, &p.ImageURL, &p.MaxGuests, &p.Rating)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("property '%s' not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying property: %w", err)
	}
	return &p, nil
}

// ListProperties aplica os filtros da busca: cidade, faixa de preço da
// diária e quantidade de hóspedes.
func (r *PropertyRepository) ListProperties(f entities.PropertyFilters) ([]db.Property, error) {
	query := `SELECT id, title, city, price_per_night, image_url, max_guests, rating FROM properties WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if f.City != "" {
		query += " AND city = $" + strconv.Itoa(idx)
		args = append(args, f.City)
		idx++
	}
	if f.MinPrice > 0 {
		query += " AND price_per_night >= $" + strconv.Itoa(idx)
		args = append(args, f.MinPrice)
		idx++
	}
	if f.MaxPrice > 0 {
		query += " AND price_per_night <= $" + strconv.Itoa(idx)
		args = append(args, f.MaxPrice)
		idx++
	}
	if f.Guests > 0 {
		query += " AND max_guests >= $" + strconv.Itoa(idx)
		args = append(args, f.Guests)
	}
	query += " ORDER BY rating DESC, title"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing properties: %w", err)
	}
	defer rows.Close()

	var properties []db.Property
	for rows.Next() {
		var p db.Property
		if err := rows.Scan(&p.ID, &p.Title, &p.City, &p.PricePerNight, &p.ImageURL, &p.MaxGuests, &p.Rating); err != nil {
			return nil, fmt.Errorf("error scanning property row: %w", err)
		}
		properties = append(properties, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating property rows: %w", err)
	}
	return properties, nil
}

func (r *PropertyRepository) ListCities() ([]string, error) {
	rows, err := r.DB.Query(`SELECT DISTINCT city FROM properties ORDER BY city`)
	if err != nil {
		return nil, fmt.Errorf("error listing cities: %w", err)
	}
	defer rows.Close()

	var cities []string
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, fmt.Errorf("error scanning city: %w", err)
		}
		cities = append(cities, city)
	}
	return cities, rows.Err()
}
