// Package store implements the hotel metadata cache on Postgres.
package store

import (
	"context"
	"time"

	"hotelapi/internal/hotel"

	"github.com/jackc/pgx/v5/pgxpool"
)

type HotelPG struct {
	db *pgxpool.Pool
}

func NewHotelPG(db *pgxpool.Pool) *HotelPG {
	return &HotelPG{db: db}
}

// SaveHotels records newly discovered hotels. Already-known IDs are
// left untouched so enrichment written earlier survives rediscovery.
func (r *HotelPG) SaveHotels(ctx context.Context, candidates []hotel.Candidate) error {
	query := `
	INSERT INTO hotel_details (hotel_id, name, region_code, last_updated)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (hotel_id) DO NOTHING
	`
	now := time.Now().UTC()
	for _, c := range candidates {
		if _, err := r.db.Exec(ctx, query, c.ID, c.DisplayName, c.RegionCode, now); err != nil {
			return err
		}
	}
	return nil
}

// HotelsMissingEnrichment lists hotels that still lack a rating or
// amenity list, in the shape the enricher consumes.
func (r *HotelPG) HotelsMissingEnrichment(ctx context.Context) ([]hotel.Candidate, error) {
	query := `
	SELECT hotel_id, name, region_code
	FROM hotel_details
	WHERE rating IS NULL OR amenities IS NULL
	ORDER BY last_updated
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []hotel.Candidate
	for rows.Next() {
		var c hotel.Candidate
		if err := rows.Scan(&c.ID, &c.DisplayName, &c.RegionCode); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// SaveEnrichment writes resolved ratings and amenities back.
func (r *HotelPG) SaveEnrichment(ctx context.Context, records map[string]hotel.EnrichmentRecord) error {
	query := `
	UPDATE hotel_details
	SET rating = $2, amenities = $3, last_updated = $4
	WHERE hotel_id = $1
	`
	now := time.Now().UTC()
	for hotelID, record := range records {
		if _, err := r.db.Exec(ctx, query, hotelID, record.Rating, record.Amenities, now); err != nil {
			return err
		}
	}
	return nil
}

// GetEnrichment returns the stored records for the given hotel IDs.
// Hotels never enriched are simply absent from the mapping.
func (r *HotelPG) GetEnrichment(ctx context.Context, hotelIDs []string) (map[string]hotel.EnrichmentRecord, error) {
	query := `
	SELECT hotel_id, rating, amenities
	FROM hotel_details
	WHERE hotel_id = ANY($1) AND rating IS NOT NULL AND amenities IS NOT NULL
	`
	rows, err := r.db.Query(ctx, query, hotelIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make(map[string]hotel.EnrichmentRecord)
	for rows.Next() {
		var id string
		var record hotel.EnrichmentRecord
		if err := rows.Scan(&id, &record.Rating, &record.Amenities); err != nil {
			return nil, err
		}
		records[id] = record
	}
	return records, rows.Err()
}
