// Package calstore keeps measured sensor calibration curves in sqlite.
package calstore

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"atsconv/atss"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

//go:embed schema.sql
var schemaSQL string

// MasterSerial holds the curve used for sensors without a serial number.
const MasterSerial = 1

type Store struct {
	path     string
	readOnly bool

	db     *sql.DB
	dbOnce sync.Once
	dbErr  error

	closeOnce sync.Once
	closeErr  error
}

// Open prepares a store on the database at path. The connection is made on
// first use.
func Open(path string) *Store {
	return &Store{path: path}
}

// OpenReadOnly never creates the schema and refuses writes.
func OpenReadOnly(path string) *Store {
	return &Store{path: path, readOnly: true}
}

func closeWithError(cl interface{ Close() error }, err *error) {
	if cErr := cl.Close(); cErr != nil && *err == nil {
		*err = cErr
	}
}

func (s *Store) getDB() (*sql.DB, error) {
	s.dbOnce.Do(func() {
		mode := "rwc"
		if s.readOnly {
			mode = "ro"
		}
		db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=%s&_busy_timeout=5000", s.path, mode))
		if err != nil {
			s.dbErr = errors.Wrap(err, "opening calibration database")
			return
		}
		if !s.readOnly {
			if _, err = db.Exec(schemaSQL); err != nil {
				_ = db.Close()
				s.dbErr = errors.Wrap(err, "creating calibration schema")
				return
			}
		}
		s.db = db
	})
	return s.db, s.dbErr
}

func normalizeSensor(sensor string) string {
	name, _ := atss.ExpandSensorName(strings.TrimSpace(sensor), "")
	return name
}

const insertCalibrationSQL = `
INSERT OR REPLACE INTO calibration (sensor, serial, chopper, datetime, operator, f, a, p)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// Insert stores calibration, replacing any curve with the same sensor,
// serial and chopper.
func (s *Store) Insert(calibration atss.Calibration) (err error) {
	if s.readOnly {
		return errors.New("Insert error: store is read only")
	}
	if len(calibration.F) != len(calibration.A) || len(calibration.F) != len(calibration.P) {
		return atss.ValidationError{
			Subject:  "calibration of " + calibration.Sensor,
			Problems: []string{"f, a and p differ in length"},
		}
	}

	arrays := make([]string, 0, 3)
	for _, values := range [][]float64{calibration.F, calibration.A, calibration.P} {
		bs, err := json.Marshal(values)
		if err != nil {
			return errors.Wrap(err, "marshaling curve")
		}
		arrays = append(arrays, string(bs))
	}

	db, err := s.getDB()
	if err != nil {
		return err
	}
	stmt, err := db.Prepare(insertCalibrationSQL)
	if err != nil {
		return errors.Wrap(err, "preparing statement")
	}
	defer closeWithError(stmt, &err)

	_, err = stmt.Exec(
		normalizeSensor(calibration.Sensor),
		calibration.Serial,
		calibration.Chopper,
		atss.FormatDateTime(calibration.DateTime),
		calibration.Operator,
		arrays[0],
		arrays[1],
		arrays[2],
	)
	if err != nil {
		return errors.Wrap(err, "inserting calibration")
	}
	return nil
}

const selectCalibrationSQL = `
SELECT f, a, p
FROM calibration
WHERE sensor = ?
  AND serial = ?
  AND chopper = ?`

// Lookup finds the curve of a sensor. Serial 0 falls back to the master
// curve. A missing curve wraps atss.ErrCalibrationNotFound.
func (s *Store) Lookup(sensor string, serial int, chopper int) (f, a, p []float64, err error) {
	if serial == 0 {
		serial = MasterSerial
	}

	db, err := s.getDB()
	if err != nil {
		return nil, nil, nil, err
	}
	stmt, err := db.Prepare(selectCalibrationSQL)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "preparing statement")
	}
	defer closeWithError(stmt, &err)

	var fText, aText, pText string
	err = stmt.QueryRow(normalizeSensor(sensor), serial, chopper).Scan(&fText, &aText, &pText)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil, errors.Wrapf(atss.ErrCalibrationNotFound, "%s %d chopper %d", sensor, serial, chopper)
	}
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "scanning calibration")
	}

	curves := make([][]float64, 3)
	for i, text := range []string{fText, aText, pText} {
		if err = json.Unmarshal([]byte(text), &curves[i]); err != nil {
			return nil, nil, nil, errors.Wrap(err, "unmarshaling curve")
		}
	}
	return curves[0], curves[1], curves[2], nil
}

const selectSensorsSQL = `
SELECT DISTINCT sensor
FROM calibration
ORDER BY sensor`

// Sensors lists the sensor names with at least one stored curve.
func (s *Store) Sensors() (sensors []string, err error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(selectSensorsSQL)
	if err != nil {
		return nil, errors.Wrap(err, "querying sensors")
	}
	defer closeWithError(rows, &err)

	for rows.Next() {
		var sensor string
		if err = rows.Scan(&sensor); err != nil {
			return nil, errors.Wrap(err, "scanning sensor")
		}
		sensors = append(sensors, sensor)
	}
	return sensors, rows.Err()
}

func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		if s.db != nil {
			s.closeErr = s.db.Close()
		}
	})
	return s.closeErr
}
