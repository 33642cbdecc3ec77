package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/classpoll/api/internal/core/domain"
	"github.com/classpoll/api/internal/core/ports"
	"github.com/google/uuid"
)

type resultRepository struct {
	db *sql.DB
}

func NewResultRepository(db *sql.DB) ports.ResultRepository {
	return &resultRepository{
		db: db,
	}
}

// GetResultsSnapshot reads tallies, voter activity and the record count in
// one repeatable-read transaction. Without the shared snapshot a vote
// committing between the reads leaves the count ahead of the tallies, and
// the consistency check upstream would flag a healthy database.
func (r *resultRepository) GetResultsSnapshot(ctx context.Context, pollID uuid.UUID) (*domain.ResultSnapshot, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot: %w", storeErr(err))
	}
	defer tx.Rollback()

	options, err := fetchOptionResults(ctx, tx, pollID)
	if err != nil {
		return nil, err
	}

	voters, err := fetchVoterActivity(ctx, tx, pollID)
	if err != nil {
		return nil, err
	}

	var recorded int64
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes WHERE poll_id = $1`, pollID).Scan(&recorded)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", storeErr(err))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to close snapshot: %w", storeErr(err))
	}

	return &domain.ResultSnapshot{
		Options:  options,
		Voters:   voters,
		Recorded: recorded,
	}, nil
}

func fetchOptionResults(ctx context.Context, tx *sql.Tx, pollID uuid.UUID) ([]domain.OptionResult, error) {
	query := `
		SELECT id, name, vote_count
		FROM poll_options
		WHERE poll_id = $1
		ORDER BY position
	`
	rows, err := tx.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch option results: %w", storeErr(err))
	}
	defer rows.Close()

	var results []domain.OptionResult
	for rows.Next() {
		var res domain.OptionResult
		if err := rows.Scan(&res.OptionID, &res.Name, &res.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan option result: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating option results: %w", storeErr(err))
	}
	return results, nil
}

func fetchVoterActivity(ctx context.Context, tx *sql.Tx, pollID uuid.UUID) ([]domain.VoterActivity, error) {
	query := `
		SELECT v.voter_hash, o.name, v.voted_at
		FROM votes v
		JOIN poll_options o ON o.id = v.option_id
		WHERE v.poll_id = $1
		ORDER BY v.voted_at ASC, v.id ASC
	`
	rows, err := tx.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch voter activity: %w", storeErr(err))
	}
	defer rows.Close()

	var voters []domain.VoterActivity
	for rows.Next() {
		var v domain.VoterActivity
		if err := rows.Scan(&v.VoterHash, &v.OptionName, &v.VotedAt); err != nil {
			return nil, fmt.Errorf("failed to scan voter activity: %w", err)
		}
		voters = append(voters, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voter activity: %w", storeErr(err))
	}
	return voters, nil
}
