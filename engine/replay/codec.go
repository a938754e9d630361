// Package replay records the commands of a run and plays them back.
// With the same food seed and configuration a run replays exactly.
package replay

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/1siamBot/snake/engine/core"
	"github.com/1siamBot/snake/engine/game"
)

const Version uint8 = 1

var magic = [4]byte{'S', 'N', 'K', 'R'}

var ErrBadHeader = errors.New("not a replay file")

// Header identifies the run a replay belongs to
type Header struct {
	Version uint8
	Variant game.Variant
	Seed1   uint64
	Seed2   uint64
}

// Encode writes the header to binary
func (h *Header) Encode(w io.Writer) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, h.Version); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint8(h.Variant)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, h.Seed1); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, h.Seed2)
}

// Decode reads a header from binary
func (h *Header) Decode(r io.Reader) error {
	var m [4]byte
	if _, err := io.ReadFull(r, m[:]); err != nil {
		return fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	if m != magic {
		return ErrBadHeader
	}
	if err := binary.Read(r, binary.LittleEndian, &h.Version); err != nil {
		return fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	if h.Version != Version {
		return fmt.Errorf("%w: unsupported version %d", ErrBadHeader, h.Version)
	}
	var variant uint8
	if err := binary.Read(r, binary.LittleEndian, &variant); err != nil {
		return fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	h.Variant = game.Variant(variant)
	if err := binary.Read(r, binary.LittleEndian, &h.Seed1); err != nil {
		return fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &h.Seed2); err != nil {
		return fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	return nil
}

// Entry is a command pinned to the number of ticks executed before it
type Entry struct {
	Step uint64
	Cmd  core.Command
}

// Encode writes an entry to binary
func (e *Entry) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, e.Step); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint8(e.Cmd.Type)); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, uint8(e.Cmd.Dir))
}

// Decode reads an entry from binary
func (e *Entry) Decode(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &e.Step); err != nil {
		return err
	}
	var typ, dir uint8
	if err := binary.Read(r, binary.LittleEndian, &typ); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &dir); err != nil {
		return err
	}
	e.Cmd = core.Command{Type: core.CommandType(typ), Dir: game.Direction(dir)}
	return nil
}
