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
	"testing"
	"time"

	"github.com/forte-bench/forte/pkg/conf"
	"github.com/gocql/gocql"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCassandraDB(t *testing.T) {
	Convey("While using metadata package", t, func() {
		cassandraDefConf := DefaultCassandraConfig()
		Convey("Cassandra default config shall have default settings", func() {
			So(cassandraDefConf.Address, ShouldEqual, conf.CassandraAddress.Value())
			So(cassandraDefConf.Username, ShouldEqual, conf.CassandraUsername.Value())
			So(cassandraDefConf.Password, ShouldEqual, conf.CassandraPassword.Value())
			So(cassandraDefConf.Port, ShouldEqual, 9042)
			So(cassandraDefConf.KeyspaceName, ShouldEqual, "forte")
			So(cassandraDefConf.Timeout, ShouldEqual, 10*time.Second)
		})

		Convey("Cluster config should follow settings", func() {
			config := cassandraDefConf
			config.Username = "user"
			config.Password = "secret"
			config.SslEnabled = true
			config.SslCAPath = "/etc/ssl/ca.pem"

			cluster := getClusterConfig(config)
			So(cluster.Hosts, ShouldResemble, []string{config.Address})
			So(cluster.Port, ShouldEqual, 9042)
			So(cluster.Consistency, ShouldEqual, gocql.LocalOne)
			So(cluster.Authenticator, ShouldResemble, gocql.PasswordAuthenticator{Username: "user", Password: "secret"})
			So(cluster.SslOpts, ShouldNotBeNil)
			So(cluster.SslOpts.CaPath, ShouldEqual, "/etc/ssl/ca.pem")
		})

		Convey("Cluster config should skip authentication without credentials", func() {
			So(getClusterConfig(cassandraDefConf).Authenticator, ShouldBeNil)
		})

		Convey("Keyspace query should name the keyspace", func() {
			So(keyspaceQuery("forte"), ShouldContainSubstring, "CREATE KEYSPACE IF NOT EXISTS forte ")
		})
	})
}
