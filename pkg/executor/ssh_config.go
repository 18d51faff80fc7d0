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
	"os/user"
	"path/filepath"
	"time"

	"github.com/forte-bench/forte/pkg/conf"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"
)

const (
	// DefaultSSHPort represent default port of SSH server (22).
	DefaultSSHPort = 22
)

var (
	sshUserFlag    = conf.NewStringFlag("remote_ssh_user", "Login used for connecting to remote nodes (current user when empty)", "")
	sshKeyPathFlag = conf.NewStringFlag("remote_ssh_key_path", "Key used for connecting to remote nodes (<home>/.ssh/id_rsa when empty)", "")
	sshPortFlag    = conf.NewIntFlag("remote_ssh_port", "Port used for SSH connection to remote nodes", DefaultSSHPort)
	sshTimeoutFlag = conf.NewDurationFlag("remote_ssh_timeout", "Timeout for establishing SSH connection", 30*time.Second)
)

// SSHConfig with clientConfig, host and port to connect.
type SSHConfig struct {
	ClientConfig *ssh.ClientConfig
	Host         string
	Port         int
}

// getAuthMethod which uses given key.
func getAuthMethod(keyPath string) (ssh.AuthMethod, error) {
	buffer, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read SSH key %q", keyPath)
	}

	key, err := ssh.ParsePrivateKey(buffer)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse SSH key %q", keyPath)
	}

	return ssh.PublicKeys(key), nil
}

func defaultKeyPath(user *user.User) string {
	return filepath.Join(user.HomeDir, ".ssh", "id_rsa")
}

// NewSSHConfig creates a new ssh config for user authenticating with the private key
// available under keyPath.
func NewSSHConfig(host string, port int, user *user.User, keyPath string) (*SSHConfig, error) {
	if host == "" {
		return nil, errors.New("SSH host is empty")
	}
	if keyPath == "" {
		keyPath = defaultKeyPath(user)
	}

	authMethod, err := getAuthMethod(keyPath)
	if err != nil {
		return nil, err
	}

	clientConfig := &ssh.ClientConfig{
		User: user.Username,
		Auth: []ssh.AuthMethod{
			authMethod,
		},
		// Lab nodes are not registered in known_hosts.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         sshTimeoutFlag.Value(),
	}

	return &SSHConfig{
		ClientConfig: clientConfig,
		Host:         host,
		Port:         port,
	}, nil
}

// NewSSHConfigFromFlags creates ssh config for host using remote_ssh_* flags.
func NewSSHConfigFromFlags(host string) (*SSHConfig, error) {
	var (
		sshUser *user.User
		err     error
	)
	if name := sshUserFlag.Value(); name != "" {
		sshUser, err = user.Lookup(name)
	} else {
		sshUser, err = user.Current()
	}
	if err != nil {
		return nil, errors.Wrap(err, "cannot determine SSH user")
	}
	return NewSSHConfig(host, sshPortFlag.Value(), sshUser, sshKeyPathFlag.Value())
}
