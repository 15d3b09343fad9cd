// Package dataset loads the historical incident CSV into an in-memory DuckDB
// table and answers the read-only aggregation and filter queries the API
// serves. The table is written exactly once, during Open, so concurrent reads
// need no coordination.
package dataset

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/intelligrit/incident-atlas/internal/model"
)

// similarLimit caps the number of incidents returned by Similar.
const similarLimit = 50

// Index is the loaded, immutable historical dataset.
type Index struct {
	DB *sql.DB
}

// Open loads the incident CSV at path into a fresh in-memory DuckDB database
// and materializes the per-country aggregate. A missing file is not an error:
// Open returns (nil, nil) and every query endpoint degrades to its empty
// shape.
func Open(path string) (*Index, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("opening duckdb: %w", err)
	}

	idx := &Index{DB: db}
	if err := idx.ingest(path); err != nil {
		db.Close()
		return nil, fmt.Errorf("ingesting %s: %w", path, err)
	}

	return idx, nil
}

// Close closes the database connection.
func (idx *Index) Close() error {
	return idx.DB.Close()
}

func (idx *Index) ingest(path string) error {
	// Only the narrow column subset is materialized; DuckDB prunes the rest
	// of the wide schema during the CSV scan. COALESCE runs before the CAST
	// so the narrowed columns never see a null: numeric geo/kill fields
	// null-fill to 0, text fields to the literal "Unknown".
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE incidents AS
			SELECT
				CAST(COALESCE(iyear, 0) AS INTEGER)                       AS iyear,
				CAST(COALESCE(country, 0) AS INTEGER)                     AS country,
				COALESCE(CAST(country_txt AS VARCHAR), 'Unknown')         AS country_txt,
				CAST(COALESCE(region, 0) AS INTEGER)                      AS region,
				COALESCE(CAST(region_txt AS VARCHAR), 'Unknown')          AS region_txt,
				CAST(COALESCE(latitude, 0) AS FLOAT)                      AS latitude,
				CAST(COALESCE(longitude, 0) AS FLOAT)                     AS longitude,
				COALESCE(CAST(attacktype1_txt AS VARCHAR), 'Unknown')     AS attacktype1_txt,
				CAST(COALESCE(nkill, 0) AS FLOAT)                         AS nkill,
				COALESCE(CAST(city AS VARCHAR), 'Unknown')                AS city,
				COALESCE(CAST(summary AS VARCHAR), 'Unknown')             AS summary
			FROM read_csv(%s, header = true, ignore_errors = true)`, quote(path)),
		// Per-country aggregate for the globe view. One row per distinct
		// country name; rows with any null aggregate are dropped.
		`CREATE TABLE country_stats AS
			SELECT
				country_txt                     AS country,
				CAST(AVG(latitude) AS DOUBLE)   AS lat,
				CAST(AVG(longitude) AS DOUBLE)  AS lon,
				CAST(SUM(nkill) AS DOUBLE)      AS fatalities,
				CAST(COUNT(*) AS INTEGER)       AS incidents,
				FIRST(country)                  AS country_id
			FROM incidents
			GROUP BY country_txt
			HAVING AVG(latitude) IS NOT NULL
			   AND AVG(longitude) IS NOT NULL
			   AND SUM(nkill) IS NOT NULL`,
	}

	for _, stmt := range stmts {
		if _, err := idx.DB.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// quote escapes a string as a single-quoted SQL literal. read_csv is a table
// function, so its path argument cannot be bound as a query parameter.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Metadata returns the distinct country and region id-to-name mappings,
// ordered by name.
func (idx *Index) Metadata() (*model.Metadata, error) {
	meta := &model.Metadata{
		Countries: make(map[int]string),
		Regions:   make(map[int]string),
	}

	if err := idx.readPairs("SELECT DISTINCT country, country_txt FROM incidents ORDER BY country_txt", meta.Countries); err != nil {
		return nil, fmt.Errorf("reading countries: %w", err)
	}
	if err := idx.readPairs("SELECT DISTINCT region, region_txt FROM incidents ORDER BY region_txt", meta.Regions); err != nil {
		return nil, fmt.Errorf("reading regions: %w", err)
	}

	return meta, nil
}

func (idx *Index) readPairs(query string, dst map[int]string) error {
	rows, err := idx.DB.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return err
		}
		dst[id] = name
	}
	return rows.Err()
}

// History returns yearly incident counts for one country, years ascending.
// A country with no incidents yields empty (not nil) slices.
func (idx *Index) History(countryID int) (*model.History, error) {
	rows, err := idx.DB.Query(
		"SELECT iyear, COUNT(*) FROM incidents WHERE country = ? GROUP BY iyear ORDER BY iyear",
		countryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	h := &model.History{Years: []int{}, Counts: []int{}}
	for rows.Next() {
		var year, count int
		if err := rows.Scan(&year, &count); err != nil {
			return nil, err
		}
		h.Years = append(h.Years, year)
		h.Counts = append(h.Counts, count)
		h.TotalIncidents += count
	}
	return h, rows.Err()
}

// Similar returns up to 50 incidents matching the region and attack type,
// newest year first. Rows with latitude 0 are excluded: 0 is the null-fill
// value, not a real coordinate. Ties in year keep ingest order (rowid).
func (idx *Index) Similar(regionID int, attackType string) ([]model.IncidentRecord, error) {
	rows, err := idx.DB.Query(fmt.Sprintf(`
		SELECT iyear, CAST(latitude AS DOUBLE), CAST(longitude AS DOUBLE),
		       city, country, country_txt, CAST(nkill AS DOUBLE), summary
		FROM incidents
		WHERE region = ? AND attacktype1_txt = ? AND latitude <> 0
		ORDER BY iyear DESC, rowid ASC
		LIMIT %d`, similarLimit), regionID, attackType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	incidents := []model.IncidentRecord{}
	for rows.Next() {
		var rec model.IncidentRecord
		if err := rows.Scan(&rec.Year, &rec.Latitude, &rec.Longitude, &rec.City,
			&rec.CountryID, &rec.CountryName, &rec.Kills, &rec.Summary); err != nil {
			return nil, err
		}
		incidents = append(incidents, rec)
	}
	return incidents, rows.Err()
}

// Globe returns the precomputed per-country aggregate, country-name sorted.
func (idx *Index) Globe() ([]model.CountryAggregate, error) {
	rows, err := idx.DB.Query(
		"SELECT country, lat, lon, fatalities, incidents, country_id FROM country_stats ORDER BY country")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []model.CountryAggregate{}
	for rows.Next() {
		var agg model.CountryAggregate
		if err := rows.Scan(&agg.Country, &agg.Lat, &agg.Lon, &agg.Fatalities,
			&agg.Incidents, &agg.CountryID); err != nil {
			return nil, err
		}
		stats = append(stats, agg)
	}
	return stats, rows.Err()
}

// Counts reports the total incident rows and distinct countries loaded.
func (idx *Index) Counts() (incidents, countries int) {
	idx.DB.QueryRow("SELECT COUNT(*) FROM incidents").Scan(&incidents)
	idx.DB.QueryRow("SELECT COUNT(DISTINCT country_txt) FROM incidents").Scan(&countries)
	return incidents, countries
}

// Years returns the distinct years present, ascending. Used by the status
// command to report dataset coverage.
func (idx *Index) Years() []int {
	rows, err := idx.DB.Query("SELECT DISTINCT iyear FROM incidents ORDER BY iyear")
	if err != nil {
		return nil
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if rows.Scan(&y) == nil {
			years = append(years, y)
		}
	}
	return years
}
