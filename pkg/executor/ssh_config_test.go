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
	"os/user"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSSHConfig(t *testing.T) {
	Convey("While creating SSH config", t, func() {
		currentUser, err := user.Current()
		So(err, ShouldBeNil)

		Convey("Missing key should be reported", func() {
			_, err := NewSSHConfig("10.0.0.7", DefaultSSHPort, currentUser, filepath.Join(t.TempDir(), "id_rsa"))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "cannot read SSH key")
		})

		Convey("Empty host should be reported", func() {
			_, err := NewSSHConfig("", DefaultSSHPort, currentUser, "")
			So(err, ShouldNotBeNil)
		})

		Convey("Default key path should point to home directory", func() {
			So(defaultKeyPath(currentUser), ShouldEqual, filepath.Join(currentUser.HomeDir, ".ssh", "id_rsa"))
		})
	})
}
