package mbr

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/diskfs/go-mbrscan/sector"
)

// endOfChain is the value of the next-EBR link that terminates a chain
const endOfChain uint32 = 0

// logicalEntry is the partition carried by one EBR
type logicalEntry struct {
	// ebr is the absolute sector of the EBR the entry was read from
	ebr   uint64
	entry Entry
}

// absoluteStart of the logical partition. The entry is relative to its own EBR.
func (l logicalEntry) absoluteStart() uint64 {
	return l.ebr + uint64(l.entry.Start)
}

// chain walks the EBRs of one extended partition.
// Every EBR link is relative to base, the start of the extended partition.
type chain struct {
	sectors *sector.Reader
	cfg     config
	base    uint64
	current uint64
	visited map[uint64]struct{}
	ended   bool
	log     *logrus.Entry
}

func newChain(r *sector.Reader, cfg config, base uint64) *chain {
	return &chain{
		sectors: r,
		cfg:     cfg,
		base:    base,
		current: base,
		visited: map[uint64]struct{}{},
		log:     cfg.log.WithField("base", base),
	}
}

// next reads the EBR at the current position and advances along the link.
// It returns false once the chain has ended. A truncated EBR sector ends the
// chain without an error.
func (c *chain) next() (logicalEntry, bool, error) {
	if c.ended {
		return logicalEntry{}, false, nil
	}
	if _, seen := c.visited[c.current]; seen {
		c.ended = true
		c.log.WithField("lba", c.current).Warn("EBR chain loops back on itself")
		return logicalEntry{}, false, NewChainCycleError(c.base, c.current)
	}
	if c.cfg.maxChainLength > 0 && len(c.visited) >= c.cfg.maxChainLength {
		c.ended = true
		return logicalEntry{}, false, NewChainTooLongError(c.base, c.cfg.maxChainLength)
	}
	c.visited[c.current] = struct{}{}

	lba := c.current
	log := c.log.WithField("lba", lba)
	b, err := c.sectors.ReadSector(lba)
	if errors.Is(err, sector.ErrTruncatedRead) {
		log.Debugf("end of chain: %v", err)
		c.ended = true
		return logicalEntry{}, false, nil
	}
	if err != nil {
		c.ended = true
		return logicalEntry{}, false, fmt.Errorf("error reading EBR: %w", err)
	}
	if c.cfg.checkSignature && !hasBootSignature(b) {
		c.ended = true
		return logicalEntry{}, false, NewInvalidSignatureError(lba, b[signatureStart:])
	}

	first, err := entryAt(b, ebrFirstEntry)
	if err != nil {
		c.ended = true
		return logicalEntry{}, false, fmt.Errorf("error reading logical partition entry of EBR at sector %d: %w", lba, err)
	}
	link, err := entryAt(b, ebrNextEntry)
	if err != nil {
		c.ended = true
		return logicalEntry{}, false, fmt.Errorf("error reading next-EBR entry of EBR at sector %d: %w", lba, err)
	}

	if link.Start == endOfChain {
		log.Debug("last EBR in chain")
		c.ended = true
	} else {
		c.current = c.base + uint64(link.Start)
		log.WithField("next", c.current).Debug("following EBR link")
	}
	return logicalEntry{ebr: lba, entry: first}, true, nil
}
