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
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// None keeps metadata in memory only. It is used when no database is configured,
// so runs behave the same with and without metadata storage.
type None struct {
	runID string
	mutex sync.Mutex
	kinds map[string][]map[string]string
}

// NewNone returns in-memory metadata for run id.
func NewNone(runID string) *None {
	return &None{
		runID: runID,
		kinds: map[string][]map[string]string{},
	}
}

// Record stores a key and value.
func (m *None) Record(key, value, kind string) error {
	return m.RecordMap(map[string]string{key: value}, kind)
}

// RecordMap stores a copy of the map.
func (m *None) RecordMap(metadata map[string]string, kind string) error {
	copied := make(map[string]string, len(metadata))
	for key, value := range metadata {
		copied[key] = value
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.kinds[kind] = append(m.kinds[kind], copied)
	log.Debugf("Run %s: %d %q metadata entries kept in memory", m.runID, len(copied), kind)
	return nil
}

// GetByKind returns the only map recorded for kind.
func (m *None) GetByKind(kind string) (map[string]string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	maps := m.kinds[kind]
	if len(maps) != 1 {
		return nil, errors.Errorf("cannot retrieve metadata for run ID %q and %q kind: %d groups found", m.runID, kind, len(maps))
	}
	return maps[0], nil
}

// Clear drops all recorded metadata.
func (m *None) Clear() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.kinds = map[string][]map[string]string{}
	return nil
}
