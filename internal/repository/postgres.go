package repository

import (
	"context"
	"fmt"
	"time"

	"museum-map-api/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements the data source contract for PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// ListMuseums fetches the full museum table, unordered. Nullable text columns
// degrade to empty strings; coordinates stay nullable as a pair.
func (r *Repository) ListMuseums(ctx context.Context) ([]models.Museum, error) {
	sql := `
		SELECT
			id,
			name,
			COALESCE(address, ''),
			COALESCE(url, ''),
			COALESCE(facebook_url, ''),
			COALESCE(x_url, ''),
			COALESCE(instagram_url, ''),
			COALESCE(image_url, ''),
			COALESCE(area, ''),
			COALESCE(name_kana, ''),
			COALESCE(prefecture, ''),
			COALESCE(address_kana, ''),
			COALESCE(area_kana, ''),
			COALESCE(prefecture_kana, ''),
			latitude,
			longitude
		FROM insect_museums
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list museums: %w", err)
	}
	defer rows.Close()

	var museums []models.Museum
	for rows.Next() {
		var m models.Museum
		err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Address,
			&m.URL,
			&m.FacebookURL,
			&m.XURL,
			&m.InstagramURL,
			&m.ImageURL,
			&m.Area,
			&m.NameKana,
			&m.Prefecture,
			&m.AddressKana,
			&m.AreaKana,
			&m.PrefectureKana,
			&m.Latitude,
			&m.Longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan museum: %w", err)
		}
		museums = append(museums, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating museums: %w", err)
	}

	return museums, nil
}

// ListEventsWithMuseums fetches all events, each joined to its owning museum.
// A missing museum row (deleted after the event was scraped) yields a nil
// Museum, which is a valid display state.
func (r *Repository) ListEventsWithMuseums(ctx context.Context) ([]models.Event, error) {
	sql := `
		SELECT
			e.id,
			e.title,
			e.start_date,
			e.end_date,
			COALESCE(e.event_description, ''),
			COALESCE(e.event_url, ''),
			m.id,
			m.name,
			COALESCE(m.address, ''),
			COALESCE(m.area, ''),
			COALESCE(m.name_kana, ''),
			COALESCE(m.prefecture, ''),
			COALESCE(m.address_kana, ''),
			COALESCE(m.area_kana, ''),
			COALESCE(m.prefecture_kana, ''),
			m.latitude,
			m.longitude
		FROM events e
		LEFT JOIN insect_museums m ON m.id = e.museum_id
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var (
			e          models.Event
			start, end time.Time
			museumID   *int64
			m          museumColumns
		)
		err := rows.Scan(
			&e.ID,
			&e.Title,
			&start,
			&end,
			&e.Description,
			&e.EventURL,
			&museumID,
			&m.name,
			&m.address,
			&m.area,
			&m.nameKana,
			&m.prefecture,
			&m.addressKana,
			&m.areaKana,
			&m.prefectureKana,
			&m.latitude,
			&m.longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan event: %w", err)
		}
		e.StartDate = models.DateOf(start)
		e.EndDate = models.DateOf(end)
		if museumID != nil {
			e.Museum = m.build(*museumID)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating events: %w", err)
	}

	return events, nil
}

// museumColumns buffers the nullable joined museum side of an event row.
type museumColumns struct {
	name           *string
	address        string
	area           string
	nameKana       string
	prefecture     string
	addressKana    string
	areaKana       string
	prefectureKana string
	latitude       *float64
	longitude      *float64
}

func (c museumColumns) build(id int64) *models.Museum {
	m := &models.Museum{
		ID:             id,
		Address:        c.address,
		Area:           c.area,
		NameKana:       c.nameKana,
		Prefecture:     c.prefecture,
		AddressKana:    c.addressKana,
		AreaKana:       c.areaKana,
		PrefectureKana: c.prefectureKana,
		Latitude:       c.latitude,
		Longitude:      c.longitude,
	}
	if c.name != nil {
		m.Name = *c.name
	}
	return m
}

// UpsertEvent inserts or updates one scraped event, keyed by
// (museum_id, title) so repeated scraper runs do not duplicate rows.
func (r *Repository) UpsertEvent(ctx context.Context, museumID int64, e models.Event) error {
	sql := `
		INSERT INTO events (museum_id, title, start_date, end_date, event_description, event_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (museum_id, title) DO UPDATE SET
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			event_description = EXCLUDED.event_description,
			event_url = EXCLUDED.event_url
	`

	_, err := r.db.Exec(ctx, sql,
		museumID,
		e.Title,
		e.StartDate.Time(),
		e.EndDate.Time(),
		e.Description,
		e.EventURL,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to upsert event %q: %w", e.Title, err)
	}
	return nil
}

// CountEvents returns the number of event rows stored for one museum.
func (r *Repository) CountEvents(ctx context.Context, museumID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events WHERE museum_id = $1`, museumID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to count events: %w", err)
	}
	return count, nil
}

// EnsureSchema creates the tables and the upsert key if they do not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	sql := `
	CREATE TABLE IF NOT EXISTS insect_museums (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		address VARCHAR(255),
		url VARCHAR(255),
		facebook_url VARCHAR(255),
		x_url VARCHAR(255),
		instagram_url VARCHAR(255),
		image_url VARCHAR(255),
		area VARCHAR(255),
		name_kana VARCHAR(255),
		prefecture VARCHAR(255),
		address_kana VARCHAR(255),
		area_kana VARCHAR(255),
		prefecture_kana VARCHAR(255),
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION
	);
	CREATE TABLE IF NOT EXISTS events (
		id BIGSERIAL PRIMARY KEY,
		museum_id BIGINT,
		title VARCHAR(255) NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		event_description TEXT,
		event_url VARCHAR(255)
	);
	CREATE UNIQUE INDEX IF NOT EXISTS events_museum_id_title_idx ON events (museum_id, title);
	`
	if _, err := r.db.Exec(ctx, sql); err != nil {
		return fmt.Errorf("repository: failed to ensure schema: %w", err)
	}
	return nil
}
