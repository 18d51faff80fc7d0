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
	"fmt"
	"net"
	"os"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

// Remote provisioning is responsible for providing the execution environment
// on remote machine via ssh.
type Remote struct {
	sshConfig SSHConfig
}

// NewRemote returns a Remote instance.
func NewRemote(sshConfig SSHConfig) Remote {
	return Remote{sshConfig: sshConfig}
}

// NewRemoteFromIP returns a Remote instance for given host configured with remote_ssh_* flags.
func NewRemoteFromIP(address string) (Executor, error) {
	sshConfig, err := NewSSHConfigFromFlags(address)
	if err != nil {
		return nil, err
	}
	return NewRemote(*sshConfig), nil
}

// Name returns user-friendly name of executor.
func (remote Remote) Name() string {
	return "Remote"
}

// Execute runs the command given as input.
// Command output is streamed to local stdout and stderr files.
// Returned TaskHandle is able to stop & monitor the provisioned process.
func (remote Remote) Execute(command string) (TaskHandle, error) {
	address := net.JoinHostPort(remote.sshConfig.Host, fmt.Sprintf("%d", remote.sshConfig.Port))
	log.Debugf("Starting %q remotely on %q", command, address)

	connection, err := ssh.Dial("tcp", address, remote.sshConfig.ClientConfig)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot connect to %q", address)
	}

	session, err := connection.NewSession()
	if err != nil {
		connection.Close()
		return nil, errors.Wrapf(err, "cannot create session on %q", address)
	}

	stdoutFile, stderrFile, err := createExecutorOutputFiles(command, "remote")
	if err != nil {
		session.Close()
		connection.Close()
		return nil, err
	}
	session.Stdout = stdoutFile
	session.Stderr = stderrFile

	if err := session.Start(command); err != nil {
		session.Close()
		connection.Close()
		stdoutFile.Close()
		stderrFile.Close()
		return nil, errors.Wrapf(err, "cannot start %q on %q", command, address)
	}

	waitEndChannel := make(chan struct{})
	taskHandle := &remoteTaskHandle{
		session:        session,
		connection:     connection,
		host:           remote.sshConfig.Host,
		stdoutFile:     stdoutFile,
		stderrFile:     stderrFile,
		waitEndChannel: waitEndChannel,
	}

	go func() {
		taskHandle.exitCode = exitCodeFromSSHError(session.Wait())
		log.Debugf("Ended %q on %q with exit code %d", command, address, taskHandle.exitCode)
		close(waitEndChannel)
	}()

	return checkIfProcessFailedToExecute(command, remote.Name(), taskHandle)
}

func exitCodeFromSSHError(err error) int {
	if err == nil {
		return 0
	}
	switch e := err.(type) {
	case *ssh.ExitError:
		if e.Signal() != "" {
			if signal, ok := sshSignals[ssh.Signal(e.Signal())]; ok {
				return 128 + signal
			}
		}
		return e.ExitStatus()
	default:
		// Connection dropped or exit status never sent.
		return -1
	}
}

var sshSignals = map[ssh.Signal]int{
	ssh.SIGHUP:  1,
	ssh.SIGINT:  2,
	ssh.SIGKILL: 9,
	ssh.SIGTERM: 15,
}

// remoteTaskHandle implements TaskHandle interface.
type remoteTaskHandle struct {
	session        *ssh.Session
	connection     *ssh.Client
	host           string
	stdoutFile     *os.File
	stderrFile     *os.File
	waitEndChannel chan struct{}
	exitCode       int
}

func (taskHandle *remoteTaskHandle) isTerminated() bool {
	select {
	case <-taskHandle.waitEndChannel:
		return true
	default:
		return false
	}
}

// Stop terminates the remote task.
// Not every SSH server honors signals so closing the connection is the fallback.
func (taskHandle *remoteTaskHandle) Stop() error {
	if taskHandle.isTerminated() {
		return nil
	}

	if err := taskHandle.session.Signal(ssh.SIGTERM); err != nil {
		log.Debugf("Cannot signal task on %q: %v", taskHandle.host, err)
	}
	if taskHandle.Wait(killWaitTimeout) {
		return nil
	}

	taskHandle.session.Signal(ssh.SIGKILL)
	taskHandle.session.Close()
	if err := taskHandle.connection.Close(); err != nil {
		log.Debugf("Cannot close connection to %q: %v", taskHandle.host, err)
	}
	if !taskHandle.Wait(killWaitTimeout) {
		return errors.Errorf("cannot stop task on %q", taskHandle.host)
	}
	return nil
}

// Status returns a state of the task.
func (taskHandle *remoteTaskHandle) Status() TaskState {
	if taskHandle.isTerminated() {
		return TERMINATED
	}
	return RUNNING
}

// ExitCode returns a exitCode. If task is not terminated it returns error.
func (taskHandle *remoteTaskHandle) ExitCode() (int, error) {
	if !taskHandle.isTerminated() {
		return -1, errors.New("task is not terminated")
	}
	return taskHandle.exitCode, nil
}

// StdoutFile returns a file handle for file to the task's stdout file.
func (taskHandle *remoteTaskHandle) StdoutFile() (*os.File, error) {
	return openFile(taskHandle.stdoutFile.Name())
}

// StderrFile returns a file handle for file to the task's stderr file.
func (taskHandle *remoteTaskHandle) StderrFile() (*os.File, error) {
	return openFile(taskHandle.stderrFile.Name())
}

// Clean closes the session, the connection and the output files.
func (taskHandle *remoteTaskHandle) Clean() error {
	if !taskHandle.isTerminated() {
		return errors.New("cannot clean running task")
	}
	taskHandle.session.Close()
	taskHandle.connection.Close()
	return closeOutputFiles(taskHandle.stdoutFile, taskHandle.stderrFile)
}

// EraseOutput removes task's stdout & stderr files.
func (taskHandle *remoteTaskHandle) EraseOutput() error {
	return removeOutputDir(taskHandle.stdoutFile.Name(), taskHandle.stderrFile.Name())
}

// Wait blocks until process is terminated or timeout appeared.
// Returns true when process terminates before timeout, otherwise false.
func (taskHandle *remoteTaskHandle) Wait(timeout time.Duration) bool {
	return waitForChannel(taskHandle.waitEndChannel, timeout)
}

// Address returns address where task was located.
func (taskHandle *remoteTaskHandle) Address() string {
	return taskHandle.host
}
