package replay

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/1siamBot/snake/engine/core"
)

// Recorder streams applied commands to a replay file
type Recorder struct {
	Header Header
	file   *os.File
	writer *bufio.Writer
}

// NewRecorder creates the replay file and writes its header
func NewRecorder(path string, h Header) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	h.Version = Version
	w := bufio.NewWriter(f)
	if err := h.Encode(w); err != nil {
		f.Close()
		return nil, err
	}
	return &Recorder{Header: h, file: f, writer: w}, nil
}

// Record writes a command to the replay file
func (r *Recorder) Record(step uint64, cmd core.Command) error {
	e := Entry{Step: step, Cmd: cmd}
	return e.Encode(r.writer)
}

// Close flushes and closes the replay file
func (r *Recorder) Close() error {
	if err := r.writer.Flush(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}

// Replay is a loaded recording
type Replay struct {
	Header  Header
	Entries []Entry
}

// Load reads a replay file. A record cut short at the end of the file, as
// left by a crash, is dropped.
func Load(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(bufio.NewReader(f))
}

// Read decodes a replay from r
func Read(r io.Reader) (*Replay, error) {
	rep := &Replay{}
	if err := rep.Header.Decode(r); err != nil {
		return nil, err
	}
	for {
		var e Entry
		err := e.Decode(r)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rep.Entries = append(rep.Entries, e)
	}
	return rep, nil
}

// CommandsAt returns all commands recorded at a given step
func (r *Replay) CommandsAt(step uint64) []core.Command {
	var result []core.Command
	for _, e := range r.Entries {
		if e.Step == step {
			result = append(result, e.Cmd)
		}
	}
	return result
}

// Player delivers a replay's commands to the game loop in step order
type Player struct {
	entries []Entry
	next    int
}

func (r *Replay) Player() *Player {
	return &Player{entries: r.Entries}
}

// Due returns the undelivered commands recorded at or before step
func (p *Player) Due(step uint64) []core.Command {
	var out []core.Command
	for p.next < len(p.entries) && p.entries[p.next].Step <= step {
		out = append(out, p.entries[p.next].Cmd)
		p.next++
	}
	return out
}

// Finished reports whether every command has been delivered
func (p *Player) Finished() bool {
	return p.next >= len(p.entries)
}
