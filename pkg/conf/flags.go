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

package conf

import "time"

// Flags shared by every experiment binary.
var (
	// RunsDirectory is where each run gets its own directory with logs.
	RunsDirectory = NewStringFlag("runs_dir", "Directory where run directories (logs, task outputs) are created", "runs")

	// DefaultMetadataDB selects the backend for run metadata: none, cassandra or influxdb.
	DefaultMetadataDB = NewStringFlag("metadata_db", "Database used to store run metadata: none, cassandra or influxdb", "none")

	// CassandraAddress represents cassandra address flag.
	CassandraAddress = NewStringFlag("cassandra_address", "Address of Cassandra DB endpoint for metadata", "127.0.0.1")
	// CassandraPort represents cassandra port flag.
	CassandraPort = NewIntFlag("cassandra_port", "Port of Cassandra DB endpoint for metadata", 9042)
	// CassandraUsername represents cassandra user flag.
	CassandraUsername = NewStringFlag("cassandra_username", "Username for Cassandra authentication", "")
	// CassandraPassword represents cassandra password flag.
	CassandraPassword = NewStringFlag("cassandra_password", "Password for Cassandra authentication", "")
	// CassandraKeyspaceName represents cassandra keyspace flag.
	CassandraKeyspaceName = NewStringFlag("cassandra_keyspace", "Keyspace used to store metadata", "forte")
	// CassandraCreateKeyspace represents flag for creating the keyspace on connect.
	CassandraCreateKeyspace = NewBoolFlag("cassandra_create_keyspace", "Create the metadata keyspace if it does not exist", true)
	// CassandraTimeout represents cassandra query timeout flag.
	CassandraTimeout = NewDurationFlag("cassandra_timeout", "Query timeout for Cassandra", 10*time.Second)
	// CassandraConnectionTimeout represents cassandra connection timeout flag.
	CassandraConnectionTimeout = NewDurationFlag("cassandra_connection_timeout", "Initial connection timeout for Cassandra", 10*time.Second)
	// CassandraSslEnabled represents cassandra ssl flag.
	CassandraSslEnabled = NewBoolFlag("cassandra_ssl", "Use SSL for Cassandra connection", false)
	// CassandraSslHostValidation represents cassandra ssl host validation flag.
	CassandraSslHostValidation = NewBoolFlag("cassandra_ssl_host_validation", "Validate Cassandra host certificate", false)
	// CassandraSslCAPath represents cassandra ssl CA path flag.
	CassandraSslCAPath = NewStringFlag("cassandra_ssl_ca_path", "Path to CA certificate for Cassandra", "")
	// CassandraSslCertPath represents cassandra ssl certificate path flag.
	CassandraSslCertPath = NewStringFlag("cassandra_ssl_cert_path", "Path to client certificate for Cassandra", "")
	// CassandraSslKeyPath represents cassandra ssl key path flag.
	CassandraSslKeyPath = NewStringFlag("cassandra_ssl_key_path", "Path to client key for Cassandra", "")

	// InfluxDBAddress represents influxdb address flag.
	InfluxDBAddress = NewStringFlag("influxdb_address", "Address of InfluxDB endpoint for metadata", "127.0.0.1")
	// InfluxDBPort represents influxdb port flag.
	InfluxDBPort = NewIntFlag("influxdb_port", "Port of InfluxDB HTTP endpoint", 8086)
	// InfluxDBName represents influxdb database name flag.
	InfluxDBName = NewStringFlag("influxdb_db", "InfluxDB database used to store metadata", "forte")
	// InfluxDBUsername represents influxdb user flag.
	InfluxDBUsername = NewStringFlag("influxdb_username", "Username for InfluxDB authentication", "")
	// InfluxDBPassword represents influxdb password flag.
	InfluxDBPassword = NewStringFlag("influxdb_password", "Password for InfluxDB authentication", "")
	// InfluxDBInsecureSkipVerify represents influxdb tls verification flag.
	InfluxDBInsecureSkipVerify = NewBoolFlag("influxdb_insecure_skip_verify", "Skip TLS certificate verification for InfluxDB", false)
	// InfluxDBCreateDatabase represents flag for creating the database on connect.
	InfluxDBCreateDatabase = NewBoolFlag("influxdb_create_database", "Create the InfluxDB database if it does not exist", true)
)
