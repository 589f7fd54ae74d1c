package sqlite

import (
	"context"
	"fmt"

	"github.com/Houeta/pair-compare/internal/models"
	"github.com/Houeta/pair-compare/internal/repository"
)

// SaveRecords archives live records in one transaction. Placeholders are skipped.
func (r *Repository) SaveRecords(ctx context.Context, records []models.Record) error {
	const opn = "repository.sqlite.SaveRecords"

	// 1. begin transaction
	tx, err := r.db.BeginTx(ctx, nil) //nolint:varnamelen // tx its a default naming for transaction
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", opn, err)
	}
	defer tx.Rollback() //nolint:errcheck // returns sql.ErrTxDone after a successful commit

	// 2. Prepare the insert once for every row of the pair.
	stmt, err := tx.PrepareContext(
		ctx,
		`INSERT INTO comparisons (saved_at, product_type, status, title, price, rating, description, details, image, url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare insert statement: %w", opn, err)
	}
	defer stmt.Close()

	savedAt := r.now().UTC()
	for _, rec := range records {
		if rec.Placeholder {
			continue
		}
		if _, err = stmt.ExecContext(
			ctx,
			savedAt,
			rec.Slot.Label(),
			string(rec.Status),
			rec.Title.Text(),
			rec.Price.Text(),
			rec.Rating.Text(),
			rec.Description.Text(),
			rec.Details.Text(),
			rec.Image,
			rec.URL,
		); err != nil {
			return fmt.Errorf("%s: failed to insert record for %s: %w", opn, rec.Slot.Label(), err)
		}
	}

	// 3. If all rows went through - confirm the transaction.
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", opn, err)
	}

	return nil
}

// PairSaved mirrors a persisted pair into the archive.
func (r *Repository) PairSaved(ctx context.Context, records []models.Record) error {
	return r.SaveRecords(ctx, records)
}

// RecentRecords returns up to limit archived rows, newest first.
func (r *Repository) RecentRecords(ctx context.Context, limit int) ([]models.ArchivedRecord, error) {
	const opn = "repository.sqlite.RecentRecords"

	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, saved_at, product_type, status, title, price, rating, description, details, image, url
		FROM comparisons ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get records: %w", opn, err)
	}
	defer rows.Close()

	var records []models.ArchivedRecord
	for rows.Next() {
		var (
			rec                                               models.ArchivedRecord
			productType, status                               string
			title, price, rating, description, details, image string
		)
		if err = rows.Scan(
			&rec.ID, &rec.SavedAt, &productType, &status,
			&title, &price, &rating, &description, &details, &image, &rec.URL,
		); err != nil {
			return nil, fmt.Errorf("%s: failed to scan record: %w", opn, err)
		}

		rec.Slot = models.SlotFromLabel(productType)
		rec.Status = models.Status(status)
		rec.Title = models.Found(title)
		rec.Price = models.Found(price)
		rec.Rating = models.Found(rating)
		rec.Description = models.Found(description)
		rec.Details = models.Found(details)
		rec.Image = image
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return records, nil
}

// LatestPair returns the most recently archived pair, newest row first.
func (r *Repository) LatestPair(ctx context.Context) ([]models.ArchivedRecord, error) {
	const pairSize = 2

	records, err := r.RecentRecords(ctx, pairSize)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, repository.ErrNoRecords
	}

	return records, nil
}
