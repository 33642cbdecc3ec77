package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/classpoll/api/internal/core/domain"
	"github.com/classpoll/api/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// CastVote is the only write path for vote records and tallies. The record
// insert and the tally increment run in one transaction; the UNIQUE
// (poll_id, voter_hash) index arbitrates concurrent submissions from the
// same voter, so there is no read-then-write window to race through.
func (r *voteRepository) CastVote(ctx context.Context, vote *domain.VoteRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", storeErr(err))
	}
	defer tx.Rollback()

	insertVote := `
		INSERT INTO votes (id, poll_id, option_id, voter_hash, voted_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (poll_id, voter_hash) DO NOTHING
	`
	res, err := tx.ExecContext(ctx, insertVote, vote.ID, vote.PollID, vote.OptionID, vote.VoterHash, vote.VotedAt)
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", storeErr(err))
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read insert result: %w", err)
	}
	if inserted == 0 {
		return domain.ErrAlreadyVoted
	}

	incrementTally := `
		UPDATE poll_options
		SET vote_count = vote_count + 1
		WHERE id = $1 AND poll_id = $2
	`
	res, err = tx.ExecContext(ctx, incrementTally, vote.OptionID, vote.PollID)
	if err != nil {
		return fmt.Errorf("failed to increment tally: %w", storeErr(err))
	}

	updated, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read tally result: %w", err)
	}
	if updated == 0 {
		// Option vanished between the service check and here; abort so the
		// record does not land without its tally.
		return domain.ErrInvalidOption
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vote: %w", storeErr(err))
	}

	return nil
}
