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
	"time"

	"github.com/forte-bench/forte/pkg/conf"
	"github.com/gocql/gocql"
	"github.com/pkg/errors"
)

// CassandraConfig encodes the settings for connecting to the database.
type CassandraConfig struct {
	Address           string
	ConnectionTimeout time.Duration
	CreateKeyspace    bool
	KeyspaceName      string
	Password          string
	Port              int
	SslCAPath         string
	SslCertPath       string
	SslEnabled        bool
	SslHostValidation bool
	SslKeyPath        string
	Timeout           time.Duration
	Username          string
}

// Cassandra is a helper struct which keeps the Cassandra session alive,
// holds the active configuration and the run id to tag the metadata with.
type Cassandra struct {
	runID   string
	config  CassandraConfig
	session *gocql.Session
}

// DefaultCassandraConfig applies the Cassandra settings from the command line flags and
// environment variables.
func DefaultCassandraConfig() CassandraConfig {
	return CassandraConfig{
		Address:           conf.CassandraAddress.Value(),
		ConnectionTimeout: conf.CassandraConnectionTimeout.Value(),
		CreateKeyspace:    conf.CassandraCreateKeyspace.Value(),
		KeyspaceName:      conf.CassandraKeyspaceName.Value(),
		Password:          conf.CassandraPassword.Value(),
		Port:              conf.CassandraPort.Value(),
		SslCAPath:         conf.CassandraSslCAPath.Value(),
		SslCertPath:       conf.CassandraSslCertPath.Value(),
		SslEnabled:        conf.CassandraSslEnabled.Value(),
		SslHostValidation: conf.CassandraSslHostValidation.Value(),
		SslKeyPath:        conf.CassandraSslKeyPath.Value(),
		Timeout:           conf.CassandraTimeout.Value(),
		Username:          conf.CassandraUsername.Value(),
	}
}

// NewCassandra returns the Metadata helper from a run id and configuration.
func NewCassandra(runID string, config CassandraConfig) (Metadata, error) {
	metadata := &Cassandra{
		runID:  runID,
		config: config,
	}
	if err := connect(metadata); err != nil {
		return nil, errors.Wrapf(err, "cannot connect to Cassandra at %s:%d", config.Address, config.Port)
	}
	return metadata, nil
}

func sslOptions(config CassandraConfig) *gocql.SslOptions {
	sslOptions := &gocql.SslOptions{
		EnableHostVerification: config.SslHostValidation,
	}

	if config.SslCAPath != "" {
		sslOptions.CaPath = config.SslCAPath
	}

	if config.SslCertPath != "" {
		sslOptions.CertPath = config.SslCertPath
	}

	if config.SslKeyPath != "" {
		sslOptions.KeyPath = config.SslKeyPath
	}

	return sslOptions
}

// getClusterConfig prepares configuration to Cassandra cluster.
func getClusterConfig(config CassandraConfig) *gocql.ClusterConfig {
	cluster := gocql.NewCluster(config.Address)
	cluster.Port = config.Port

	cluster.Consistency = gocql.LocalOne
	cluster.SerialConsistency = gocql.LocalSerial

	cluster.ProtoVersion = 4
	cluster.ConnectTimeout = config.ConnectionTimeout
	cluster.Timeout = config.Timeout

	if config.Username != "" && config.Password != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: config.Username,
			Password: config.Password,
		}
	}

	if config.SslEnabled {
		cluster.SslOpts = sslOptions(config)
	}

	return cluster
}

func keyspaceQuery(keyspace string) string {
	return fmt.Sprintf("CREATE KEYSPACE IF NOT EXISTS %s WITH REPLICATION = {'class': 'SimpleStrategy', 'replication_factor': 1};", keyspace)
}

const createTableQuery = `CREATE TABLE IF NOT EXISTS metadata (experiment_id text, kind text, time timestamp, timeuuid TIMEUUID, metadata map<text,text>, PRIMARY KEY ((experiment_id), timeuuid),) WITH CLUSTERING ORDER BY (timeuuid DESC);`

func createKeyspace(clusterConfig *gocql.ClusterConfig, keyspace string) error {
	session, err := clusterConfig.CreateSession()
	if err != nil {
		return errors.Wrap(err, "cannot create session for creating keyspace")
	}
	defer session.Close()

	return errors.Wrap(session.Query(keyspaceQuery(keyspace)).Exec(), "cannot create keyspace")
}

// connect creates a session to the Cassandra cluster. This function should only be called once.
func connect(m *Cassandra) error {
	cluster := getClusterConfig(m.config)

	// Keyspace has to exist before session bound to it is created.
	if m.config.CreateKeyspace {
		if err := createKeyspace(cluster, m.config.KeyspaceName); err != nil {
			return err
		}
	}

	cluster.Keyspace = m.config.KeyspaceName
	session, err := cluster.CreateSession()
	if err != nil {
		return errors.Wrap(err, "cannot create session")
	}
	m.session = session

	return errors.Wrap(session.Query(createTableQuery).Exec(), "cannot create metadata table")
}

// storeMap
func storeMap(m *Cassandra, metadata map[string]string, kind string) error {
	err := m.session.Query(`INSERT INTO metadata (experiment_id, kind, time, timeuuid, metadata) VALUES (?, ?, ?, ?, ?)`, m.runID, kind, time.Now(), gocql.TimeUUID(), metadata).Exec()
	return errors.Wrapf(err, "cannot publish metadata of kind %q", kind)
}

// Record stores a key and value and associates with the run id.
func (m *Cassandra) Record(key, value, kind string) error {
	return storeMap(m, map[string]string{key: value}, kind)
}

// RecordMap stores a key and value map and associates with the run id.
func (m *Cassandra) RecordMap(metadata map[string]string, kind string) error {
	return storeMap(m, metadata, kind)
}

// GetByKind retrieves single kind from the database.
// Returns error if no kind or too many groups found.
func (m *Cassandra) GetByKind(kind string) (map[string]string, error) {
	var metadata map[string]string

	maps := []map[string]string{}

	iter := m.session.Query(`SELECT metadata FROM metadata WHERE experiment_id = ? AND kind = ? ALLOW FILTERING`, m.runID, kind).Iter()
	for iter.Scan(&metadata) {
		maps = append(maps, metadata)
	}
	if err := iter.Close(); err != nil {
		return nil, errors.Wrapf(err, "cannot retrieve metadata of kind %q", kind)
	}

	// Make sure that only one map per run exists.
	if len(maps) != 1 {
		return nil, errors.Errorf("cannot retrieve metadata for run ID %q and %q kind: %d groups found", m.runID, kind, len(maps))
	}
	return maps[0], nil
}

// Clear deletes all metadata entries associated with the current run id.
func (m *Cassandra) Clear() error {
	err := m.session.Query(`DELETE FROM metadata WHERE experiment_id = ?`, m.runID).Exec()
	return errors.Wrapf(err, "cannot clear metadata of run %q", m.runID)
}

// Close closes the session.
func (m *Cassandra) Close() {
	m.session.Close()
}
