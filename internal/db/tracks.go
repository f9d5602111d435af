package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/trackrate/internal/kinematics"
	"github.com/banshee-data/trackrate/internal/report"
)

// ErrTrackNotFound is returned when no track has the requested id.
var ErrTrackNotFound = errors.New("track not found")

// TrackMeta describes where an analysed track came from.
type TrackMeta struct {
	Name       string
	SourcePath string
	Format     string
	// StoreSamples keeps the per-sample rows as well as the summary row.
	StoreSamples bool
}

// Track is one stored analysis summary.
type Track struct {
	ID         string
	Name       string
	SourcePath string
	Format     string
	RecordedAt time.Time
	report.Summary
}

// TrackSample is one stored sample. DeltaSeconds is nil on the last sample
// of a track.
type TrackSample struct {
	Index int
	kinematics.Sample
	DeltaSeconds *float64
}

// RecordAnalysis stores a's summary, and its samples when meta asks for
// them, in a single transaction. It returns the new track id.
func (db *DB) RecordAnalysis(meta TrackMeta, a *kinematics.Analysis) (string, error) {
	id := uuid.NewString()
	sum := report.Summarize(a)
	recordedAt := db.clock.Now()

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO tracks (
			track_id, name, source_path, format, recorded_at_ns,
			points, runs, collapsed_fixes, duration_s,
			mean_velocity, stddev_velocity, max_velocity, max_abs_acceleration
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, meta.Name, meta.SourcePath, meta.Format, recordedAt.UnixNano(),
		sum.Points, sum.Runs, sum.CollapsedFixes, sum.DurationSeconds,
		sum.MeanVelocity, sum.StdDevVelocity, sum.MaxVelocity, sum.MaxAbsAcceleration,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert track: %w", err)
	}

	if meta.StoreSamples {
		stmt, err := tx.Prepare(`
			INSERT INTO track_samples (
				track_id, sample_index, latitude, longitude, timestamp,
				delta_s, velocity, acceleration
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return "", fmt.Errorf("failed to prepare sample insert: %w", err)
		}
		defer stmt.Close()

		for i, s := range a.Samples {
			var delta sql.NullFloat64
			if i < len(a.Deltas) {
				delta = sql.NullFloat64{Float64: a.Deltas[i], Valid: true}
			}
			if _, err := stmt.Exec(id, i, s.Latitude, s.Longitude, s.Timestamp,
				delta, s.Velocity, s.Acceleration); err != nil {
				return "", fmt.Errorf("failed to insert sample %d: %w", i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit track: %w", err)
	}
	return id, nil
}

const trackColumns = `
	track_id, name, source_path, format, recorded_at_ns,
	points, runs, collapsed_fixes, duration_s,
	mean_velocity, stddev_velocity, max_velocity, max_abs_acceleration`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrack(row rowScanner) (Track, error) {
	var t Track
	var recordedNs int64
	err := row.Scan(
		&t.ID, &t.Name, &t.SourcePath, &t.Format, &recordedNs,
		&t.Points, &t.Runs, &t.CollapsedFixes, &t.DurationSeconds,
		&t.MeanVelocity, &t.StdDevVelocity, &t.MaxVelocity, &t.MaxAbsAcceleration,
	)
	if err != nil {
		return Track{}, err
	}
	t.RecordedAt = time.Unix(0, recordedNs).UTC()
	return t, nil
}

// Tracks lists stored tracks, newest first.
func (db *DB) Tracks() ([]Track, error) {
	rows, err := db.Query(`SELECT` + trackColumns + `
		FROM tracks
		ORDER BY recorded_at_ns DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// Track returns the stored summary with the given id.
func (db *DB) Track(id string) (Track, error) {
	t, err := scanTrack(db.QueryRow(`SELECT`+trackColumns+`
		FROM tracks
		WHERE track_id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Track{}, fmt.Errorf("%s: %w", id, ErrTrackNotFound)
	}
	if err != nil {
		return Track{}, fmt.Errorf("failed to query track: %w", err)
	}
	return t, nil
}

// TrackSamples returns the stored samples of a track in index order. A
// track recorded without samples yields an empty slice.
func (db *DB) TrackSamples(id string) ([]TrackSample, error) {
	if _, err := db.Track(id); err != nil {
		return nil, err
	}

	rows, err := db.Query(`
		SELECT sample_index, latitude, longitude, timestamp, delta_s, velocity, acceleration
		FROM track_samples
		WHERE track_id = ?
		ORDER BY sample_index`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	samples := []TrackSample{}
	for rows.Next() {
		var s TrackSample
		var delta sql.NullFloat64
		if err := rows.Scan(&s.Index, &s.Latitude, &s.Longitude, &s.Timestamp,
			&delta, &s.Velocity, &s.Acceleration); err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		if delta.Valid {
			d := delta.Float64
			s.DeltaSeconds = &d
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}
