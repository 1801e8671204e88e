package postgres

import (
	"context"
	"database/sql"

	"multitrackscheduling/internal/domain"

	"github.com/lib/pq"
)

type speakerLinkRepository struct {
	DB *sql.DB
}

func NewSpeakerLinkRepository(db *sql.DB) domain.SpeakerLinkRepository {
	return &speakerLinkRepository{DB: db}
}

func (r *speakerLinkRepository) ResolveSpeakers(ctx context.Context, source string, externalIDs []string) (map[string]string, error) {
	links := make(map[string]string, len(externalIDs))
	if len(externalIDs) == 0 {
		return links, nil
	}
	query := `
		SELECT source_speaker_id, user_id
		FROM speaker_links
		WHERE source = $1 AND source_speaker_id = ANY($2)
	`
	rows, err := r.DB.QueryContext(ctx, query, source, pq.Array(externalIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var externalID, userID string
		if err := rows.Scan(&externalID, &userID); err != nil {
			return nil, err
		}
		links[externalID] = userID
	}
	return links, rows.Err()
}
