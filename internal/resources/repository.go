package resources

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Repository reads facility records. It never mutates the store; each query
// scans fresh rows, so administrative updates are never observed mid-query.
type Repository interface {
	ListAll(ctx context.Context) ([]Resource, error)
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]Resource, error) {
	query := `
		SELECT id, name, type, address, latitude, longitude, phone, hours,
		       accepts_insurance, financial_aid, rating, specialties, wait_time
		FROM healthcare_resources`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query healthcare resources: %w", err)
	}
	defer rows.Close()

	var resources []Resource
	for rows.Next() {
		var (
			res         Resource
			phone       sql.NullString
			hours       sql.NullString
			insurance   sql.NullBool
			aid         sql.NullBool
			rating      sql.NullFloat64
			specialties sql.NullString
			waitTime    sql.NullString
		)
		if err := rows.Scan(
			&res.ID, &res.Name, &res.Type, &res.Address,
			&res.Coordinates.Lat, &res.Coordinates.Lng,
			&phone, &hours, &insurance, &aid, &rating, &specialties, &waitTime,
		); err != nil {
			return nil, fmt.Errorf("failed to scan resource row: %w", err)
		}

		res.Phone = phone.String
		res.Hours = hours.String
		res.AcceptsInsurance = insurance.Bool
		res.FinancialAid = aid.Bool
		res.Rating = rating.Float64
		res.WaitTime = waitTime.String
		if specialties.String != "" {
			res.Specialties = strings.Split(specialties.String, ",")
		} else {
			res.Specialties = []string{}
		}

		resources = append(resources, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read resource rows: %w", err)
	}

	return resources, nil
}
