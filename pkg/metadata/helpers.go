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
	"os"
	"strings"
	"time"

	"github.com/forte-bench/forte/pkg/conf"
	"github.com/pkg/errors"
)

// RecordRuntimeEnv stores run environment information: flags, environment,
// host, start time and platform details.
func RecordRuntimeEnv(metadata Metadata, runStart time.Time) error {
	if err := recordFlags(metadata); err != nil {
		return err
	}

	if err := recordEnv(metadata, conf.EnvironmentPrefix+"_"); err != nil {
		return err
	}

	hostname, err := os.Hostname()
	if err != nil {
		return errors.Wrap(err, "cannot retrieve hostname")
	}
	err = metadata.RecordMap(map[string]string{"time": runStart.Format(time.RFC822Z), "host": hostname}, TypeEmpty)
	if err != nil {
		return err
	}

	return recordPlatformMetrics(metadata)
}

// recordFlags saves whole flags based configuration in the metadata information.
func recordFlags(metadata Metadata) error {
	return metadata.RecordMap(conf.GetFlags(), TypeFlags)
}

// recordEnv adds all OS environment variables that start with prefix.
func recordEnv(metadata Metadata, prefix string) error {
	envMetadata := map[string]string{}
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, prefix) {
			fields := strings.SplitN(env, "=", 2)
			envMetadata[fields[0]] = fields[1]
		}
	}
	return metadata.RecordMap(envMetadata, TypeEnviron)
}

// recordPlatformMetrics stores platform specific metadata.
func recordPlatformMetrics(metadata Metadata) error {
	return metadata.RecordMap(GetPlatformMetrics(), TypePlatform)
}
