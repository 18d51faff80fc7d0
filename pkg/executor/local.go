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
	"os/exec"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	localAddress = "127.0.0.1"
	// killWaitTimeout is how long Stop waits after SIGTERM before sending SIGKILL.
	killWaitTimeout = 5 * time.Second
)

// Local provisioning is responsible for providing the execution environment
// on local machine via exec.Command.
// It runs command as current user.
type Local struct{}

// NewLocal returns a Local instance.
func NewLocal() Local {
	return Local{}
}

// Name returns user-friendly name of executor.
func (l Local) Name() string {
	return "Local"
}

// Execute runs the command given as input.
// Returned TaskHandle is able to stop & monitor the provisioned process.
func (l Local) Execute(command string) (TaskHandle, error) {
	log.Debug("Starting locally ", command)

	cmd := exec.Command("sh", "-c", command)
	// Own process group lets Stop signal every child of the shell.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdoutFile, stderrFile, err := createExecutorOutputFiles(command, "local")
	if err != nil {
		return nil, err
	}
	cmd.Stdout = stdoutFile
	cmd.Stderr = stderrFile

	if err := cmd.Start(); err != nil {
		stdoutFile.Close()
		stderrFile.Close()
		return nil, errors.Wrapf(err, "cannot start %q", command)
	}

	log.Debugf("Started %q with pid %d, output in %q", command, cmd.Process.Pid, stdoutFile.Name())

	waitEndChannel := make(chan struct{})
	taskHandle := newLocalTaskHandle(cmd, stdoutFile, stderrFile, waitEndChannel)

	go func() {
		// Wait() error is ignored; process state covers both success and failure.
		cmd.Wait()
		taskHandle.exitCode = exitCodeFromState(cmd.ProcessState)

		log.Debugf("Ended %q with exit code %d, output in %q", command, taskHandle.exitCode, stdoutFile.Name())
		close(waitEndChannel)
	}()

	return checkIfProcessFailedToExecute(command, l.Name(), taskHandle)
}

// exitCodeFromState follows shell convention: 128+N for processes killed by signal N.
func exitCodeFromState(state *os.ProcessState) int {
	if state == nil {
		return -1
	}
	waitStatus, ok := state.Sys().(syscall.WaitStatus)
	if !ok {
		return state.ExitCode()
	}
	if waitStatus.Signaled() {
		return 128 + int(waitStatus.Signal())
	}
	return waitStatus.ExitStatus()
}

// localTaskHandle implements TaskHandle interface.
type localTaskHandle struct {
	cmdHandler     *exec.Cmd
	stdoutFile     *os.File
	stderrFile     *os.File
	waitEndChannel chan struct{}
	// exitCode is valid only after waitEndChannel is closed.
	exitCode int
}

func newLocalTaskHandle(cmdHandler *exec.Cmd, stdoutFile, stderrFile *os.File, waitEndChannel chan struct{}) *localTaskHandle {
	return &localTaskHandle{
		cmdHandler:     cmdHandler,
		stdoutFile:     stdoutFile,
		stderrFile:     stderrFile,
		waitEndChannel: waitEndChannel,
	}
}

func (taskHandle *localTaskHandle) isTerminated() bool {
	select {
	case <-taskHandle.waitEndChannel:
		return true
	default:
		return false
	}
}

// Stop terminates the local task: SIGTERM to the whole process group,
// followed by SIGKILL when the group does not exit in time.
func (taskHandle *localTaskHandle) Stop() error {
	if taskHandle.isTerminated() {
		return nil
	}

	pgid := -taskHandle.cmdHandler.Process.Pid
	log.Debug("Sending SIGTERM to process group ", pgid)
	if err := syscall.Kill(pgid, syscall.SIGTERM); err != nil && err != syscall.ESRCH {
		return errors.Wrapf(err, "cannot terminate process group %d", pgid)
	}

	if taskHandle.Wait(killWaitTimeout) {
		return nil
	}

	log.Warnf("Process group %d did not terminate within %s, sending SIGKILL", pgid, killWaitTimeout)
	if err := syscall.Kill(pgid, syscall.SIGKILL); err != nil && err != syscall.ESRCH {
		return errors.Wrapf(err, "cannot kill process group %d", pgid)
	}
	taskHandle.Wait(0)
	return nil
}

// Status returns a state of the task.
func (taskHandle *localTaskHandle) Status() TaskState {
	if taskHandle.isTerminated() {
		return TERMINATED
	}
	return RUNNING
}

// ExitCode returns a exitCode. If task is not terminated it returns error.
func (taskHandle *localTaskHandle) ExitCode() (int, error) {
	if !taskHandle.isTerminated() {
		return -1, errors.New("task is not terminated")
	}
	return taskHandle.exitCode, nil
}

// StdoutFile returns a file handle for file to the task's stdout file.
func (taskHandle *localTaskHandle) StdoutFile() (*os.File, error) {
	return openFile(taskHandle.stdoutFile.Name())
}

// StderrFile returns a file handle for file to the task's stderr file.
func (taskHandle *localTaskHandle) StderrFile() (*os.File, error) {
	return openFile(taskHandle.stderrFile.Name())
}

// Clean closes stdout and stderr files held by the task.
func (taskHandle *localTaskHandle) Clean() error {
	if !taskHandle.isTerminated() {
		return errors.New("cannot clean running task")
	}
	return closeOutputFiles(taskHandle.stdoutFile, taskHandle.stderrFile)
}

// EraseOutput removes task's stdout & stderr files.
func (taskHandle *localTaskHandle) EraseOutput() error {
	return removeOutputDir(taskHandle.stdoutFile.Name(), taskHandle.stderrFile.Name())
}

// Wait blocks until process is terminated or timeout appeared.
// Returns true when process terminates before timeout, otherwise false.
func (taskHandle *localTaskHandle) Wait(timeout time.Duration) bool {
	return waitForChannel(taskHandle.waitEndChannel, timeout)
}

// Address returns address where task was located.
func (taskHandle *localTaskHandle) Address() string {
	return localAddress
}
