package gpuobj

import (
	"fmt"
	"sync/atomic"
)

// resourceKind identifies the device object type behind a resource.
type resourceKind uint8

const (
	kindBuffer resourceKind = iota
	kindTexture
	kindRenderbuffer
	kindVertexArray
	kindShader
	kindProgram
	kindFramebuffer
	kindCount
)

func (k resourceKind) String() string {
	switch k {
	case kindBuffer:
		return "buffer"
	case kindTexture:
		return "texture"
	case kindRenderbuffer:
		return "renderbuffer"
	case kindVertexArray:
		return "vertex array"
	case kindShader:
		return "shader"
	case kindProgram:
		return "program"
	case kindFramebuffer:
		return "framebuffer"
	default:
		return fmt.Sprintf("resourceKind(%d)", k)
	}
}

// Stats contains per-context resource statistics.
//
// A context keeps counters only: it never holds references to the
// resources created against it.
type Stats struct {
	// Live object counts.
	Buffers       int
	Textures      int
	Renderbuffers int
	VertexArrays  int
	Shaders       int
	Programs      int
	Framebuffers  int

	// BufferBytes is the device memory currently allocated to buffers.
	BufferBytes uint64

	// TextureBytes is the device memory currently allocated to textures.
	TextureBytes uint64

	// RenderbufferBytes is the device memory allocated to renderbuffers.
	RenderbufferBytes uint64

	// Deleted is the total number of delete calls issued.
	Deleted uint64

	// Collected counts objects deleted after being garbage collected
	// without Release.
	Collected uint64

	// Skipped counts releases that issued no delete call because the
	// context was already destroyed.
	Skipped uint64
}

// TotalBytes returns the device memory tracked across all object kinds.
func (s Stats) TotalBytes() uint64 {
	return s.BufferBytes + s.TextureBytes + s.RenderbufferBytes
}

// String returns a human-readable summary.
func (s Stats) String() string {
	return fmt.Sprintf("Resources[%d buffers, %d textures, %d renderbuffers, %d vertex arrays, %d programs, %.1f KB, %d deleted, %d collected, %d skipped]",
		s.Buffers,
		s.Textures,
		s.Renderbuffers,
		s.VertexArrays,
		s.Programs,
		float64(s.TotalBytes())/1024,
		s.Deleted,
		s.Collected,
		s.Skipped)
}

// stats is the atomic backing store of Stats. Counters are written on the
// context's thread and may be read from any goroutine.
type stats struct {
	live      [kindCount]atomic.Int64
	bytes     [kindCount]atomic.Int64
	deleted   atomic.Uint64
	collected atomic.Uint64
	skipped   atomic.Uint64
}

func (s *stats) created(kind resourceKind) {
	s.live[kind].Add(1)
}

// resized records a change of an object's device memory footprint.
func (s *stats) resized(kind resourceKind, from, to int) {
	s.bytes[kind].Add(int64(to - from))
}

func (s *stats) removed(kind resourceKind, bytes int) {
	s.live[kind].Add(-1)
	s.bytes[kind].Add(-int64(bytes))
}

func (s *stats) snapshot() Stats {
	count := func(k resourceKind) int { return int(s.live[k].Load()) }
	size := func(k resourceKind) uint64 {
		//nolint:gosec // G115: byte totals are never negative
		return uint64(max(s.bytes[k].Load(), 0))
	}
	return Stats{
		Buffers:           count(kindBuffer),
		Textures:          count(kindTexture),
		Renderbuffers:     count(kindRenderbuffer),
		VertexArrays:      count(kindVertexArray),
		Shaders:           count(kindShader),
		Programs:          count(kindProgram),
		Framebuffers:      count(kindFramebuffer),
		BufferBytes:       size(kindBuffer),
		TextureBytes:      size(kindTexture),
		RenderbufferBytes: size(kindRenderbuffer),
		Deleted:           s.deleted.Load(),
		Collected:         s.collected.Load(),
		Skipped:           s.skipped.Load(),
	}
}
