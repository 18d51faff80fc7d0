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
	"github.com/forte-bench/forte/pkg/conf"
	"github.com/pkg/errors"
)

// Predefined kinds of metadata.
// Kind groups metadata by their common characteristics: TypeFlags for parameters
// passed to the binary, TypeEnviron for environment variables and TypePlatform for
// recorded platform characteristics. Each experiment can define its own kinds.
const (
	TypeEmpty    = ""
	TypeFlags    = "flags"
	TypeEnviron  = "environ"
	TypePlatform = "platform"
	// TypeSurvey holds survey statistics.
	TypeSurvey = "survey"
	// TypeGST holds GST fit results.
	TypeGST = "gst"
)

// Supported metadata databases.
const (
	DatabaseNone      = "none"
	DatabaseCassandra = "cassandra"
	DatabaseInfluxDB  = "influxdb"
)

// Metadata interface defines methods which must be supported by DB backend.
type Metadata interface {
	// Record stores a key and value and associates with the run id.
	Record(key string, value string, kind string) error
	// RecordMap stores a key and value map and associates with the run id.
	RecordMap(metadata map[string]string, kind string) error
	// GetByKind retrieves single metadata kind from the database.
	// Returns error if no kind or too many groups found.
	GetByKind(kind string) (map[string]string, error)
	// Clear deletes all metadata entries associated with the current run id.
	Clear() error
}

// NewDefault initializes metadata backend selected with metadata_db flag.
func NewDefault(runID string) (Metadata, error) {
	return New(conf.DefaultMetadataDB.Value(), runID)
}

// New initializes metadata backend by database name.
func New(database, runID string) (Metadata, error) {
	switch database {
	case DatabaseNone, "":
		return NewNone(runID), nil
	case DatabaseCassandra:
		return NewCassandra(runID, DefaultCassandraConfig())
	case DatabaseInfluxDB:
		return NewInfluxDB(runID, DefaultInfluxDBConfig())
	}
	return nil, errors.Errorf("unsupported database for metadata: %q", database)
}
