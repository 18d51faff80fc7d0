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
	"bufio"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// CPUModelNameKey defines a key in the platform metrics map
	CPUModelNameKey = "cpu_model"
	// CPUCountKey defines a key in the platform metrics map
	CPUCountKey = "cpu_count"
	// KernelVersionKey defines a key in the platform metrics map
	KernelVersionKey = "kernel_version"
	// OSReleaseKey defines a key in the platform metrics map
	OSReleaseKey = "os_release"
	// GoVersionKey defines a key in the platform metrics map
	GoVersionKey = "go_version"
)

// GetPlatformMetrics returns map of strings with platform metrics.
// If metric could not be retrieved value for the key is empty string.
func GetPlatformMetrics() map[string]string {
	platformMetrics := map[string]string{
		CPUCountKey:  strconv.Itoa(runtime.NumCPU()),
		GoVersionKey: runtime.Version(),
	}

	for key, get := range map[string]func() (string, error){
		CPUModelNameKey:  CPUModelName,
		KernelVersionKey: KernelVersion,
		OSReleaseKey:     OSRelease,
	} {
		item, err := get()
		if err != nil {
			logrus.Warnf("GetPlatformMetrics: Failed to get %s metric. Skipping. Error: %s", key, err.Error())
		}
		platformMetrics[key] = item
	}
	return platformMetrics
}

// CPUModelName returns the first 'model name' entry of /proc/cpuinfo.
func CPUModelName() (string, error) {
	return findKey("/proc/cpuinfo", "model name", ":")
}

// KernelVersion return kernel version as stated in /proc/version.
func KernelVersion() (string, error) {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return "", errors.Wrap(err, "cannot read /proc/version")
	}
	return strings.TrimSpace(string(data)), nil
}

// OSRelease returns PRETTY_NAME from /etc/os-release.
func OSRelease() (string, error) {
	value, err := findKey("/etc/os-release", "PRETTY_NAME", "=")
	return strings.Trim(value, "\""), err
}

// findKey returns value of the first "key<separator>value" line of file.
func findKey(path, key, separator string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "cannot open %s", path)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		chunks := strings.SplitN(scanner.Text(), separator, 2)
		if len(chunks) == 2 && strings.TrimSpace(chunks[0]) == key {
			return strings.TrimSpace(chunks[1]), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", errors.Wrapf(err, "cannot read %s", path)
	}
	return "", errors.Errorf("did not find %q in %s", key, path)
}
