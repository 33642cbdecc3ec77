package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/classpoll/api/internal/core/domain"
	"github.com/classpoll/api/internal/core/ports"
	"github.com/google/uuid"
)

type pollRepository struct {
	db *sql.DB
}

func NewPollRepository(db *sql.DB) ports.PollRepository {
	return &pollRepository{
		db: db,
	}
}

// Save inserts the poll and its options in one transaction; a poll is never
// visible without its full option set.
func (r *pollRepository) Save(ctx context.Context, poll *domain.Poll) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", storeErr(err))
	}
	defer tx.Rollback()

	queryPoll := `
		INSERT INTO polls (id, title, status, end_date, created_by, created_by_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.ExecContext(ctx, queryPoll,
		poll.ID, poll.Title, poll.Status, poll.EndDate, poll.CreatedBy, poll.CreatedByName, poll.CreatedAt, poll.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", storeErr(err))
	}

	queryOption := `
		INSERT INTO poll_options (id, poll_id, name, position)
		VALUES ($1, $2, $3, $4)
	`
	stmt, err := tx.PrepareContext(ctx, queryOption)
	if err != nil {
		return fmt.Errorf("failed to prepare option statement: %w", storeErr(err))
	}
	defer stmt.Close()

	for _, opt := range poll.Options {
		_, err = stmt.ExecContext(ctx, opt.ID, opt.PollID, opt.Name, opt.Position)
		if err != nil {
			return fmt.Errorf("failed to insert option: %w", storeErr(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", storeErr(err))
	}

	return nil
}

func (r *pollRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	queryPoll := `
		SELECT id, title, status, end_date, created_by, created_by_name, created_at, updated_at
		FROM polls
		WHERE id = $1
	`

	var poll domain.Poll
	err := r.db.QueryRowContext(ctx, queryPoll, id).Scan(
		&poll.ID, &poll.Title, &poll.Status, &poll.EndDate, &poll.CreatedBy, &poll.CreatedByName, &poll.CreatedAt, &poll.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to get poll: %w", storeErr(err))
	}

	options, err := r.fetchOptions(ctx, poll.ID)
	if err != nil {
		return nil, err
	}
	poll.Options = options

	return &poll, nil
}

func (r *pollRepository) GetAll(ctx context.Context) ([]*domain.Poll, error) {
	query := `
		SELECT id, title, status, end_date, created_by, created_by_name, created_at, updated_at
		FROM polls
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all polls: %w", storeErr(err))
	}
	defer rows.Close()

	return r.scanPolls(ctx, rows)
}

func (r *pollRepository) ListActive(ctx context.Context) ([]*domain.Poll, error) {
	query := `
		SELECT id, title, status, end_date, created_by, created_by_name, created_at, updated_at
		FROM polls
		WHERE status = 'active'
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active polls: %w", storeErr(err))
	}
	defer rows.Close()

	return r.scanPolls(ctx, rows)
}

func (r *pollRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Poll, error) {
	query := `
		SELECT id, title, status, end_date, created_by, created_by_name, created_at, updated_at
		FROM polls
		WHERE created_by = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls by creator: %w", storeErr(err))
	}
	defer rows.Close()

	return r.scanPolls(ctx, rows)
}

// Update touches title, end date and status only. Options and tallies have
// no update path here.
func (r *pollRepository) Update(ctx context.Context, poll *domain.Poll) error {
	query := `
		UPDATE polls
		SET title = $2, status = $3, end_date = $4, updated_at = $5
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, poll.ID, poll.Title, poll.Status, poll.EndDate, poll.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update poll: %w", storeErr(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrPollNotFound
	}

	return nil
}

// Delete removes the poll; options and vote records go with it through the
// ON DELETE CASCADE constraints, so partial deletion is never observable.
func (r *pollRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM polls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", storeErr(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrPollNotFound
	}

	return nil
}

func (r *pollRepository) scanPolls(ctx context.Context, rows *sql.Rows) ([]*domain.Poll, error) {
	var polls []*domain.Poll
	for rows.Next() {
		var poll domain.Poll
		if err := rows.Scan(
			&poll.ID, &poll.Title, &poll.Status, &poll.EndDate, &poll.CreatedBy, &poll.CreatedByName, &poll.CreatedAt, &poll.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}

		options, err := r.fetchOptions(ctx, poll.ID)
		if err != nil {
			return nil, err
		}
		poll.Options = options

		polls = append(polls, &poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating polls: %w", storeErr(err))
	}
	return polls, nil
}

func (r *pollRepository) fetchOptions(ctx context.Context, pollID uuid.UUID) ([]domain.PollOption, error) {
	queryOptions := `
		SELECT id, poll_id, name, position, vote_count
		FROM poll_options
		WHERE poll_id = $1
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, queryOptions, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get poll options: %w", storeErr(err))
	}
	defer rows.Close()

	var options []domain.PollOption
	for rows.Next() {
		var opt domain.PollOption
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Name, &opt.Position, &opt.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating options: %w", storeErr(err))
	}
	return options, nil
}
