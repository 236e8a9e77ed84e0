package solver

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/lox/limitcfr/internal/fileutil"
)

// Blueprint persistence: one file per hub key, named by the key. Each file
// is a little-endian record stream:
//
//	u32 record_count
//	repeated: u16 key_len, key bytes, u8 actions,
//	          f64[3] regrets_sum, f64[3] strategy_sum
//
// The abstraction key bytes carry their own version magic, so a layout
// change shows up as unknown keys rather than silent corruption.

const recordFixedSize = 2 + 1 + 8*DefaultActionCount*2

// NewBranches creates an empty store covering every hub key.
func NewBranches() []*Branch {
	keys := AllHubKeys()
	out := make([]*Branch, 0, len(keys))
	for _, key := range keys {
		out = append(out, NewBranch(key))
	}
	return out
}

// SaveBranches writes every branch to its file under dir, atomically per
// file, creating the directory if needed.
func SaveBranches(dir string, branches []*Branch) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrBlueprintIO, dir, err)
	}
	for _, b := range branches {
		path := filepath.Join(dir, b.Key.FileName())
		if err := fileutil.WriteFileAtomic(path, encodeBranch(b), 0o644); err != nil {
			return fmt.Errorf("%w: write %s: %v", ErrBlueprintIO, path, err)
		}
	}
	return nil
}

// LoadBranches reads a full store from dir. A missing file simply yields an
// empty branch; a file that exists but cannot be decoded is an
// ErrBlueprintIO the caller may downgrade to "start fresh".
func LoadBranches(dir string) ([]*Branch, error) {
	keys := AllHubKeys()
	out := make([]*Branch, 0, len(keys))
	for _, key := range keys {
		path := filepath.Join(dir, key.FileName())
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			out = append(out, NewBranch(key))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrBlueprintIO, path, err)
		}
		b, err := decodeBranch(key, data)
		if err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", ErrBlueprintIO, path, err)
		}
		out = append(out, b)
	}
	return out, nil
}

func encodeBranch(b *Branch) []byte {
	keys := make([]string, 0, len(b.records))
	for k := range b.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf := make([]byte, 4, 4+len(keys)*(recordFixedSize+16))
	binary.LittleEndian.PutUint32(buf, uint32(len(keys)))

	for _, k := range keys {
		s := b.records[k]
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(k)))
		buf = append(buf, k...)
		buf = append(buf, uint8(s.Actions))
		for a := 0; a < DefaultActionCount; a++ {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(s.RegretsSum[a]))
		}
		for a := 0; a < DefaultActionCount; a++ {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(s.StrategySum[a]))
		}
	}
	return buf
}

func decodeBranch(key HubKey, data []byte) (*Branch, error) {
	if len(data) < 4 {
		return nil, errors.New("truncated header")
	}
	count := binary.LittleEndian.Uint32(data)
	data = data[4:]

	b := NewBranch(key)
	for i := uint32(0); i < count; i++ {
		if len(data) < 2 {
			return nil, fmt.Errorf("truncated record %d", i)
		}
		keyLen := int(binary.LittleEndian.Uint16(data))
		data = data[2:]
		if len(data) < keyLen+1+8*DefaultActionCount*2 {
			return nil, fmt.Errorf("truncated record %d", i)
		}
		abstractionKey := string(data[:keyLen])
		data = data[keyLen:]

		actions := int(data[0])
		data = data[1:]
		if actions < 2 || actions > DefaultActionCount {
			return nil, fmt.Errorf("record %d has %d actions", i, actions)
		}

		s := NewTrainingStrategy(actions)
		for a := 0; a < DefaultActionCount; a++ {
			s.RegretsSum[a] = math.Float64frombits(binary.LittleEndian.Uint64(data))
			data = data[8:]
		}
		for a := 0; a < DefaultActionCount; a++ {
			s.StrategySum[a] = math.Float64frombits(binary.LittleEndian.Uint64(data))
			data = data[8:]
		}
		b.records[abstractionKey] = s
	}
	if len(data) != 0 {
		return nil, fmt.Errorf("%d trailing bytes", len(data))
	}
	return b, nil
}
