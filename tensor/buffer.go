// SPDX-License-Identifier: MIT

package tensor

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// buffer is one backing allocation of the arena. Arrays never own a buffer
// exclusively by construction; they hold a handle plus an (offset, length)
// window. The views counter records how many handles were ever derived from
// the buffer, which is enough for Exclusive to detect aliasing.
type buffer struct {
	id     uuid.UUID
	vals   []int64
	device Device
	pinned atomic.Bool
	views  atomic.Int32
}

// newBuffer takes ownership of vals.
func newBuffer(vals []int64, dev Device) *buffer {
	b := &buffer{id: uuid.New(), vals: vals, device: dev}
	b.views.Store(1)

	return b
}
