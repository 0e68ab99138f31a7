package badger

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Key prefixes for different data types
const (
	chunkPrefix   = "chunk"
	runPrefix     = "runrec"
	runDatePrefix = "runrecd"
)

// makeChunkKey generates a key for one chunk of a run. The position is
// encoded BigEndian so iteration over the run prefix yields insertion order.
func makeChunkKey(runID string, position int) []byte {
	prefix := fmt.Sprintf("%s:%s:", chunkPrefix, runID)
	buf := make([]byte, len(prefix)+4)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint32(buf[offset:], uint32(position))
	return buf
}

// makeChunkRunPrefix generates the key prefix covering all chunks of a run.
func makeChunkRunPrefix(runID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", chunkPrefix, runID))
}

// makeRunKey generates a key for a run record by ID.
func makeRunKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", runPrefix, id))
}

// makeRunDateKey generates a composite key for the run date index.
// Format: prefix:timestamp:id
func makeRunDateKey(createdAt time.Time, id string) []byte {
	prefix := runDatePrefix + ":"
	buf := make([]byte, len(prefix)+8+len(id))
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	offset += 8
	copy(buf[offset:], id)
	return buf
}

// makePartialRunDateKey generates a partial key for range scans over the
// run date index.
func makePartialRunDateKey(createdAt time.Time) []byte {
	prefix := runDatePrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	return buf
}
