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

/*
Package conf wraps kingpin to provide:
- flags which can be overridden by environment variables with the FORTE_ prefix,
- config dump as an "allexport" shell script (instead of lexicographical order),
- ability to extract current values of all registered flags (e.g. for run metadata),
- typed flags: string, int, bool, float, duration and byte size,
- a predefined flag for the logrus log level.

Flags are registered at package initialization time by the packages which own them
and parsed once by the experiment binary (see experiment.Configure).
*/
package conf
