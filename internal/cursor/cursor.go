// Package cursor steps through the frames of a decoded cast timeline.
package cursor

import "github.com/samdwyer/powereditor/internal/timeline"

// Cursor tracks a position in the concatenated frames of every cast.
// frame is global (0-based across all casts) and castIndex is kept in sync with it.
type Cursor struct {
	casts     []timeline.Cast // resolved with cast-0 fallback
	castIndex int
	frame     int
}

// New creates a cursor at (0, 0) over casts as returned by timeline.Decode.
func New(casts []timeline.Cast) *Cursor {
	c := &Cursor{}
	c.Reset(casts)
	return c
}

// Reset loads a new timeline and rewinds to the first frame.
func (c *Cursor) Reset(casts []timeline.Cast) {
	c.casts = timeline.ResolveAll(casts)
	c.castIndex = 0
	c.frame = 0
}

// Casts returns the resolved casts the cursor walks.
func (c *Cursor) Casts() []timeline.Cast {
	return c.casts
}

// CastCount returns the number of casts.
func (c *Cursor) CastCount() int {
	return len(c.casts)
}

// Cast returns the resolved cast i.
func (c *Cursor) Cast(i int) timeline.Cast {
	if i < 0 || i >= len(c.casts) {
		return timeline.Cast{}
	}
	return c.casts[i]
}

// FramesInCast returns startup+active for cast i. A cast with startup and a single active
// frame collapses to one representative frame.
func (c *Cursor) FramesInCast(i int) int {
	if i < 0 || i >= len(c.casts) {
		return 0
	}
	return framesIn(c.casts[i])
}

func framesIn(cast timeline.Cast) int {
	if cast.Startup > 0 && cast.Active == 1 {
		return 1
	}
	n := cast.Startup + cast.Active
	if n < 0 {
		return 0
	}
	return n
}

// CumulativeFrames returns the number of frames in casts 0..i-1.
func (c *Cursor) CumulativeFrames(i int) int {
	total := 0
	for j := 0; j < i && j < len(c.casts); j++ {
		total += framesIn(c.casts[j])
	}
	return total
}

// TotalFrames returns the frame count of the whole timeline.
func (c *Cursor) TotalFrames() int {
	return c.CumulativeFrames(len(c.casts))
}

// Locate maps a global frame to (cast index, frame within cast). Frames past the end clamp
// to the last frame of the last cast; negative frames clamp to (0, 0).
func (c *Cursor) Locate(frame int) (castIndex, within int) {
	if len(c.casts) == 0 || frame <= 0 {
		return 0, 0
	}
	remaining := frame
	for i, cast := range c.casts {
		n := framesIn(cast)
		if remaining < n {
			return i, remaining
		}
		remaining -= n
	}
	last := len(c.casts) - 1
	within = framesIn(c.casts[last]) - 1
	if within < 0 {
		within = 0
	}
	return last, within
}

// GlobalFrame is the inverse of Locate.
func (c *Cursor) GlobalFrame(castIndex, within int) int {
	return c.CumulativeFrames(castIndex) + within
}

// State returns the current cast, frame within that cast and total frame count.
func (c *Cursor) State() (castIndex, within, total int) {
	within = c.frame - c.CumulativeFrames(c.castIndex)
	if within < 0 {
		within = 0
	}
	return c.castIndex, within, c.TotalFrames()
}

// Frame returns the current global frame.
func (c *Cursor) Frame() int {
	return c.frame
}

// CastIndex returns the current cast.
func (c *Cursor) CastIndex() int {
	return c.castIndex
}

// NextCast jumps to the first frame of the next cast.
func (c *Cursor) NextCast() {
	c.seekCast(c.castIndex + 1)
}

// PrevCast jumps to the first frame of the previous cast.
func (c *Cursor) PrevCast() {
	c.seekCast(c.castIndex - 1)
}

func (c *Cursor) seekCast(i int) {
	if len(c.casts) == 0 {
		return
	}
	i = clamp(i, 0, len(c.casts)-1)
	c.castIndex = i
	c.frame = c.CumulativeFrames(i)
}

// NextFrame advances one frame.
func (c *Cursor) NextFrame() {
	c.SeekFrame(c.frame + 1)
}

// PrevFrame steps back one frame.
func (c *Cursor) PrevFrame() {
	c.SeekFrame(c.frame - 1)
}

// SeekFrame moves to a global frame, clamped to the timeline.
func (c *Cursor) SeekFrame(frame int) {
	total := c.TotalFrames()
	if total == 0 {
		c.frame = 0
		c.castIndex = 0
		return
	}
	c.frame = clamp(frame, 0, total-1)
	c.castIndex, _ = c.Locate(c.frame)
}

// HitboxVisible reports whether the current cast's hitboxes are drawn on the current frame.
func (c *Cursor) HitboxVisible() bool {
	castIndex, within, _ := c.State()
	return c.HitboxVisibleAt(castIndex, within)
}

// HitboxVisibleAt reports whether cast i's hitboxes are drawn on frame within of that cast.
// A cast whose damage is "0" never shows hitboxes.
func (c *Cursor) HitboxVisibleAt(i, within int) bool {
	if i < 0 || i >= len(c.casts) {
		return false
	}
	cast := c.casts[i]
	if cast.SuppressesHitbox() {
		return false
	}
	if cast.Startup > 0 && cast.Active == 1 {
		return within == 0
	}
	return within >= cast.Startup && within < cast.Startup+cast.Active
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
