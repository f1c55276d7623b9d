// Package store reads weewx archive databases.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"

	_ "modernc.org/sqlite"

	"github.com/askow/weewxplot/internal/models"
)

// ErrDataSource marks a missing, unreadable or malformed archive
// database. Callers classify with errors.Is.
var ErrDataSource = errors.New("data source error")

// Result is the outcome of one archive load: the column names as the
// database reports them and the rows in ascending time order.
type Result struct {
	Columns      []string
	Observations []models.Observation
}

// Load opens the database at path read-only, selects every archive row
// whose dateTime lies in [startEpoch, endEpoch] inclusive ordered
// ascending, and closes the database before returning. Zero rows in
// range is not an error. No handle outlives the call.
func Load(path string, startEpoch, endEpoch int64) (*Result, error) {
	// mode=ro also keeps the driver from creating an empty database
	// at a mistyped path.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSource, err)
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrDataSource, path, err)
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT * FROM archive
		WHERE dateTime >= ? AND dateTime <= ?
		ORDER BY dateTime ASC
	`, startEpoch, endEpoch)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", ErrDataSource, path, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: columns: %v", ErrDataSource, err)
	}
	if len(cols) < len(models.Fields) {
		return nil, fmt.Errorf("%w: archive table has %d columns, want at least %d", ErrDataSource, len(cols), len(models.Fields))
	}

	res := &Result{Columns: cols}
	dest := make([]sql.NullFloat64, len(cols))
	ptrs := make([]any, len(cols))
	for i := range dest {
		ptrs[i] = &dest[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrDataSource, err)
		}
		if !dest[models.FieldEpochtime].Valid {
			return nil, fmt.Errorf("%w: archive row with NULL dateTime", ErrDataSource)
		}
		obs := models.Observation{
			Epoch:  int64(dest[models.FieldEpochtime].Float64),
			Values: make([]float64, len(models.Fields)),
		}
		for i := range obs.Values {
			if dest[i].Valid {
				obs.Values[i] = dest[i].Float64
			} else {
				obs.Values[i] = math.NaN()
			}
		}
		res.Observations = append(res.Observations, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSource, err)
	}
	return res, nil
}
