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
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRemoteExitCode(t *testing.T) {
	Convey("Session without error should end with zero exit code", t, func() {
		So(exitCodeFromSSHError(nil), ShouldEqual, 0)
	})

	Convey("Broken connection should end with unknown exit code", t, func() {
		So(exitCodeFromSSHError(errors.New("connection lost")), ShouldEqual, -1)
	})

	Convey("Remote executor should be named", t, func() {
		So(NewRemote(SSHConfig{Host: "10.0.0.7", Port: DefaultSSHPort}).Name(), ShouldEqual, "Remote")
	})
}
