package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arloliu/alx/errs"
	"github.com/arloliu/alx/format"
	"github.com/arloliu/alx/section"
)

// Action is one kept entry of a record's action tail. Slot is the 1-based
// position of the entry in the tail; empty slots consume an index but are
// not emitted.
type Action struct {
	Slot  int
	Entry section.ActionEntry
}

// Record is one enemy record read from a container.
type Record struct {
	Identity int32
	// Offset is the byte offset of the record within its segment or file.
	Offset int
	// Tag is the provenance of the record: the file name, or the segment
	// name for records read from a multi-segment container.
	Tag     string
	Enemy   section.EnemyRecord
	Actions []Action
}

// Skip describes a record or file the parser could not read.
type Skip struct {
	Tag      string
	Identity int32
	Offset   int
	Err      error
}

// Result is the output of one Parse call.
type Result struct {
	Records []Record
	// Segments lists the descriptors of a multi-segment container, with
	// external names. It is empty for single-segment input.
	Segments []section.SegmentDescriptor
	Skipped  []Skip
}

// Parser reads ENP, EVP and DAT containers.
//
// A Parser holds only configuration and is safe for concurrent use.
type Parser struct {
	cfg *Config
}

// NewParser creates a parser.
func NewParser(opts ...Option) (*Parser, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Parser{cfg: cfg}, nil
}

// Parse is a shorthand for NewParser(opts...).Parse(data, name, kind).
func Parse(data []byte, name string, kind format.ContainerKind, opts ...Option) (*Result, error) {
	p, err := NewParser(opts...)
	if err != nil {
		return nil, err
	}

	return p.Parse(data, name, kind)
}

// Parse reads every record of data. name is the file name, used as the
// provenance tag and, for DAT files, to derive the record identity. With
// format.ContainerAuto the variant is picked from the name's extension.
//
// Structural problems (a bad multi-segment header) are returned as errors.
// Records that cannot be read are listed in Result.Skipped and logged.
func (p *Parser) Parse(data []byte, name string, kind format.ContainerKind) (*Result, error) {
	if kind == format.ContainerAuto {
		kind = format.KindFromName(name)
	}

	res := &Result{}
	var err error
	switch kind {
	case format.ContainerEVP:
		p.parseEVP(data, name, res)
	case format.ContainerDAT:
		p.parseDAT(data, name, res)
	default:
		err = p.parseENP(data, name, res)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	p.cfg.logger.Debug("container parsed",
		"file", name,
		"kind", kind.String(),
		"records", len(res.Records),
		"skipped", len(res.Skipped),
	)

	return res, nil
}

func (p *Parser) parseENP(data []byte, name string, res *Result) error {
	if !section.IsSegmented(data) {
		p.parseENPSegment(data, name, res)
		return nil
	}

	descs, err := p.readSegmentTable(data)
	if err != nil {
		return err
	}
	res.Segments = descs

	for _, d := range descs {
		if d.Offset < 0 || d.Size < 0 || d.End() > int64(len(data)) {
			p.skip(res, Skip{
				Tag:      d.Name,
				Identity: -1,
				Offset:   int(d.Offset),
				Err:      fmt.Errorf("%w: segment [%d, %d) exceeds %d bytes", errs.ErrTruncatedRecord, d.Offset, d.End(), len(data)),
			})

			continue
		}

		p.parseENPSegment(data[d.Offset:d.End()], d.Name, res)
	}

	return nil
}

// readSegmentTable parses the header and descriptor table of a multi-segment
// container and returns the descriptors with external names.
func (p *Parser) readSegmentTable(data []byte) ([]section.SegmentDescriptor, error) {
	engine := p.cfg.engine

	header, err := section.ParseSegmentHeader(data, engine)
	if err != nil {
		return nil, err
	}
	if header.TableSize() > len(data) {
		return nil, fmt.Errorf("%w: %d descriptors need %d bytes, have %d",
			errs.ErrCorruptHeader, header.Count, header.TableSize(), len(data))
	}

	descs := make([]section.SegmentDescriptor, 0, header.Count)
	off := section.SegmentHeaderSize
	for range int(header.Count) {
		d, err := section.ParseSegmentDescriptor(data[off:], engine)
		if err != nil {
			return nil, err
		}
		d.Name = ExternalName(d.Name, p.cfg.internalExt, p.cfg.externalExt)
		descs = append(descs, d)
		off += section.SegmentDescriptorSize
	}

	return descs, nil
}

// parseENPSegment reads a dynamic-header record container.
func (p *Parser) parseENPSegment(data []byte, tag string, res *Result) {
	if len(data) < section.NodeEntrySize {
		return
	}

	maxNodes := min(section.MaxENPNodes, len(data)/section.NodeEntrySize)
	nodes := make([]section.NodeEntry, 0, maxNodes)
	for i := range maxNodes {
		node, _ := section.ParseNodeEntry(data[i*section.NodeEntrySize:], p.cfg.engine)
		if node.IsTerminator() {
			break
		}
		if node.Offset < 0 || int(node.Offset) >= len(data) {
			p.cfg.logger.Debug("node offset out of bounds", "file", tag, "identity", node.Identity, "offset", node.Offset)
			continue
		}
		nodes = append(nodes, node)
	}

	for _, node := range nodes {
		p.readRecord(data, node.Identity, int(node.Offset), tag, res)
	}
}

// parseEVP reads a fixed-header record container. The event span between
// the node table and the records is not interpreted.
func (p *Parser) parseEVP(data []byte, tag string, res *Result) {
	if len(data) < section.EVPRecordsOffset {
		p.cfg.logger.Debug("event container too short", "file", tag, "size", len(data))
		return
	}

	for i := range section.EVPNodeCount {
		node, _ := section.ParseNodeEntry(data[i*section.NodeEntrySize:], p.cfg.engine)
		if node.Identity < 0 || node.Offset <= 0 || int(node.Offset) >= len(data) {
			continue
		}
		p.readRecord(data, node.Identity, int(node.Offset), tag, res)
	}
}

// parseDAT reads a headerless single-record file.
func (p *Parser) parseDAT(data []byte, name string, res *Result) {
	id, err := DATIdentity(name, p.cfg.bossPrefix)
	if err != nil {
		p.skip(res, Skip{Tag: name, Identity: -1, Err: err})
		return
	}

	p.readRecord(data, id, 0, name, res)
}

func (p *Parser) readRecord(data []byte, id int32, off int, tag string, res *Result) {
	if off+section.EnemyRecordSize > len(data) {
		p.skip(res, Skip{
			Tag:      tag,
			Identity: id,
			Offset:   off,
			Err:      fmt.Errorf("%w: record at %d needs %d bytes, have %d", errs.ErrTruncatedRecord, off, section.EnemyRecordSize, len(data)-off),
		})

		return
	}

	enemy, err := section.ParseEnemyRecord(data[off:], p.cfg.engine)
	if err != nil {
		p.skip(res, Skip{Tag: tag, Identity: id, Offset: off, Err: err})
		return
	}

	res.Records = append(res.Records, Record{
		Identity: id,
		Offset:   off,
		Tag:      tag,
		Enemy:    enemy,
		Actions:  p.readActions(data[off+section.EnemyRecordSize:]),
	})
}

// readActions reads an action tail. It stops at the terminator, after
// MaxActions entries, or when fewer than six bytes remain.
func (p *Parser) readActions(tail []byte) []Action {
	var actions []Action
	slot := 1
	for i := 0; i < section.MaxActions; i++ {
		off := i * section.ActionEntrySize
		entry, err := section.ParseActionEntry(tail[min(off, len(tail)):], p.cfg.engine)
		if err != nil || entry.IsTerminator() {
			break
		}
		if !entry.IsEmpty() {
			actions = append(actions, Action{Slot: slot, Entry: entry})
		}
		slot++
	}

	return actions
}

func (p *Parser) skip(res *Result, s Skip) {
	res.Skipped = append(res.Skipped, s)

	level := slog.LevelWarn
	if errors.Is(s.Err, errs.ErrUnknownIdentity) {
		level = slog.LevelInfo
	}
	p.cfg.logger.Log(context.Background(), level, "record skipped",
		"file", s.Tag,
		"identity", s.Identity,
		"offset", s.Offset,
		"error", s.Err,
	)
}
