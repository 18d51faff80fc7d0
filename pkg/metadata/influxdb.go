// Copyright (c) 2017 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metadata

import (
	"fmt"
	"strings"
	"time"

	"github.com/forte-bench/forte/pkg/conf"
	"github.com/influxdata/influxdb/client/v2"
	"github.com/pkg/errors"
)

const (
	influxMetadata = "metadata"
)

// InfluxDBConfig holds configuration for InfluxDB.
type InfluxDBConfig struct {
	httpConfig     client.HTTPConfig
	dbName         string
	createDatabase bool
}

// InfluxDB is a helper struct which keeps the InfluxDB session alive,
// holds the active configuration and the run id to tag the metadata with.
type InfluxDB struct {
	runID   string
	session client.Client
	config  InfluxDBConfig
}

// DefaultInfluxDBConfig applies the InfluxDB settings from the command line flags and
// environment variables.
func DefaultInfluxDBConfig() InfluxDBConfig {
	return InfluxDBConfig{
		dbName:         conf.InfluxDBName.Value(),
		createDatabase: conf.InfluxDBCreateDatabase.Value(),
		httpConfig: client.HTTPConfig{
			Addr:               fmt.Sprintf("http://%s:%d", conf.InfluxDBAddress.Value(), conf.InfluxDBPort.Value()),
			Password:           conf.InfluxDBPassword.Value(),
			Username:           conf.InfluxDBUsername.Value(),
			InsecureSkipVerify: conf.InfluxDBInsecureSkipVerify.Value(),
		},
	}
}

// NewInfluxDB returns the Metadata helper from a run id and configuration.
func NewInfluxDB(runID string, config InfluxDBConfig) (Metadata, error) {
	session, err := client.NewHTTPClient(config.httpConfig)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create influx client for run %s", runID)
	}
	return newInfluxDBWithClient(runID, config, session)
}

func newInfluxDBWithClient(runID string, config InfluxDBConfig, session client.Client) (*InfluxDB, error) {
	metadata := &InfluxDB{
		runID:   runID,
		config:  config,
		session: session,
	}

	if config.createDatabase {
		if err := metadata.query(fmt.Sprintf("CREATE DATABASE %s", quoteIdentifier(config.dbName)), ""); err != nil {
			return nil, errors.Wrapf(err, "cannot create influx database for run %s", runID)
		}
	}

	return metadata, nil
}

func quoteIdentifier(name string) string {
	return "\"" + strings.Replace(name, "\"", "\\\"", -1) + "\""
}

func quoteString(value string) string {
	return "'" + strings.Replace(value, "'", "\\'", -1) + "'"
}

func (m *InfluxDB) query(command, database string) error {
	_, err := m.queryResponse(command, database)
	return err
}

func (m *InfluxDB) queryResponse(command, database string) (*client.Response, error) {
	response, err := m.session.Query(client.Query{Command: command, Database: database})
	if err != nil {
		return nil, errors.Wrapf(err, "query %q failed", command)
	}
	if response.Error() != nil {
		return nil, errors.Wrapf(response.Error(), "response to %q contained error", command)
	}
	return response, nil
}

// influxDBStoreMap writes metadata to the database with tags attached to it.
// All values of the map become fields of a single point.
func influxDBStoreMap(m *InfluxDB, metadata map[string]string, kind string) error {
	// Points without fields are rejected by InfluxDB.
	if len(metadata) == 0 {
		return nil
	}

	batchPoints, err := client.NewBatchPoints(client.BatchPointsConfig{Database: m.config.dbName})
	if err != nil {
		return errors.Wrapf(err, "creation of batch points for InfluxDB failed for metadata kind %q", kind)
	}

	tags := map[string]string{"kind": kind, "experiment_id": m.runID}

	fields := make(map[string]interface{}, len(metadata))
	for key, value := range metadata {
		fields[key] = value
	}
	point, err := client.NewPoint(influxMetadata, tags, fields, time.Now())
	if err != nil {
		return errors.Wrapf(err, "cannot create new point, kind %q", kind)
	}

	batchPoints.AddPoint(point)

	if err := m.session.Write(batchPoints); err != nil {
		return errors.Wrapf(err, "cannot publish metadata of kind %q", kind)
	}
	return nil
}

// Record stores a key and value and associates with the run id.
func (m *InfluxDB) Record(key, value, kind string) error {
	return influxDBStoreMap(m, map[string]string{key: value}, kind)
}

// RecordMap stores a key and value map and associates with the run id.
func (m *InfluxDB) RecordMap(metadata map[string]string, kind string) error {
	return influxDBStoreMap(m, metadata, kind)
}

// GetByKind retrieves single kind from the database. If duplicates are found then
// the last one is returned.
func (m *InfluxDB) GetByKind(kind string) (map[string]string, error) {
	metadata := make(map[string]string)
	// Grouping by both tags removes them from the result columns.
	command := fmt.Sprintf("SELECT last(*) FROM %s WHERE experiment_id=%s AND kind=%s GROUP BY experiment_id,kind",
		influxMetadata, quoteString(m.runID), quoteString(kind))

	response, err := m.queryResponse(command, m.config.dbName)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot retrieve metadata of kind %q for run %s", kind, m.runID)
	}

	for _, result := range response.Results {
		for _, row := range result.Series {
			for _, value := range row.Values {
				for idx, cell := range value {
					// Index 0 is the timestamp. Results may be sparse.
					if cell != nil && idx != 0 {
						column := strings.TrimPrefix(row.Columns[idx], "last_")
						metadata[column] = fmt.Sprintf("%v", cell)
					}
				}
			}
		}
	}

	if len(metadata) == 0 {
		return nil, errors.Errorf("cannot retrieve metadata for run ID %q and %q kind", m.runID, kind)
	}
	return metadata, nil
}

// Clear deletes all metadata entries associated with the current run id.
func (m *InfluxDB) Clear() error {
	command := fmt.Sprintf("DROP SERIES FROM %s WHERE experiment_id = %s", influxMetadata, quoteString(m.runID))
	return errors.Wrapf(m.query(command, m.config.dbName), "cannot clear metadata of run %s", m.runID)
}
