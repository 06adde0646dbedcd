// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shared contracts between the buffer memory model, the elementary
// operation protocol, and platform facades. The package carries no
// implementation: only interfaces, error taxonomy, and hard limits.
package api
