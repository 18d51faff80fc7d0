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

package executor

import (
	"os"
	"time"
)

// TaskState is an enum presenting current task state.
type TaskState int

const (
	// RUNNING task state means that task is still running.
	RUNNING TaskState = iota
	// TERMINATED task state means that task completed or stopped.
	TERMINATED
)

func (s TaskState) String() string {
	switch s {
	case RUNNING:
		return "running"
	case TERMINATED:
		return "terminated"
	}
	return "unknown"
}

// TaskHandle represents a process which can be stopped or monitored.
type TaskHandle interface {
	// Stop terminates a task. Stopping terminated task is a no-op.
	Stop() error
	// Status returns a state of the task.
	Status() TaskState
	// ExitCode returns a exitCode. If task is not terminated it returns error.
	ExitCode() (int, error)
	// StdoutFile returns a new file handle to the task's stdout file.
	// Caller is responsible for closing it.
	StdoutFile() (*os.File, error)
	// StderrFile returns a new file handle to the task's stderr file.
	// Caller is responsible for closing it.
	StderrFile() (*os.File, error)
	// Wait does the blocking wait for the task completion.
	// Zero timeout means wait forever.
	// It returns true if task is terminated.
	Wait(timeout time.Duration) bool
	// Clean releases task resources and closes output files.
	Clean() error
	// EraseOutput removes task's stdout & stderr files and their directory.
	EraseOutput() error
	// Address returns address where task was located.
	Address() string
}
