// Package platform
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform facades turning a consumed token plus memory regions into
// exactly one native vectored call, with the result delivered back as
// a completion notification through the operation registry.
package platform
