package mbr

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/diskfs/go-mbrscan/partition/part"
	"github.com/diskfs/go-mbrscan/sector"
)

// first partition number Linux gives to a logical partition
const firstLogicalNumber = 5

type config struct {
	log            *logrus.Entry
	checkSignature bool
	maxChainLength int
}

// WalkOption configures a Walker
type WalkOption func(*config)

// WithLogger logs the traversal to the given entry. By default nothing is logged.
func WithLogger(log *logrus.Entry) WalkOption {
	return func(c *config) {
		c.log = log
	}
}

// WithSignatureCheck rejects an MBR or EBR sector that does not end in 0x55AA.
// By default the signature is ignored.
func WithSignatureCheck() WalkOption {
	return func(c *config) {
		c.checkSignature = true
	}
}

// WithMaxChainLength stops with ErrChainTooLong after n EBRs in one chain. 0 means no limit;
// loops are always caught regardless.
func WithMaxChainLength(n int) WalkOption {
	return func(c *config) {
		c.maxChainLength = n
	}
}

func newConfig(opts []WalkOption) config {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.log = logrus.NewEntry(l)
	}
	return cfg
}

// Walker lists the FAT32 and NTFS partitions of a disk, lazily, in the order
// they are found: primary slots 0 to 3, with the logical partitions of an
// extended partition in place of its slot.
//
//	w := mbr.NewWalker(f)
//	for w.Next() {
//	  rec := w.Record()
//	}
//	err := w.Err()
type Walker struct {
	sectors *sector.Reader
	cfg     config
	table   *Table
	slot    int
	chain   *chain
	logical int
	rec     part.Record
	err     error
	done    bool
}

// NewWalker walks the partition tables of src, which it reads but never writes
func NewWalker(src io.ReaderAt, opts ...WalkOption) *Walker {
	return &Walker{
		sectors: sector.NewReader(src),
		cfg:     newConfig(opts),
		logical: firstLogicalNumber,
	}
}

// Next advances to the next partition, which is then available from Record.
// It returns false when there are no more partitions or an error occurred.
func (w *Walker) Next() bool {
	for !w.done {
		if w.chain != nil {
			if w.nextLogical() {
				return true
			}
			continue
		}

		if w.table == nil {
			t, err := readTable(w.sectors, w.cfg)
			if err != nil {
				return w.fail(err)
			}
			w.table = t
		}
		if w.slot >= len(w.table.Partitions) {
			w.done = true
			break
		}

		i := w.slot
		w.slot++
		e := w.table.Partitions[i]
		log := w.cfg.log.WithFields(logrus.Fields{"slot": i, "type": e.Type})
		switch kind := Classify(e.Type); kind {
		case part.FAT32, part.NTFS:
			w.rec = part.Record{
				Kind:   kind,
				Start:  uint64(e.Start),
				Size:   e.Size,
				Number: i + 1,
			}
			return true
		case part.Extended:
			log.WithField("base", e.Start).Debug("entering extended partition")
			w.chain = newChain(w.sectors, w.cfg, uint64(e.Start))
		default:
			if !e.Empty() {
				log.Debug("skipping partition of unrecognized type")
			}
		}
	}
	return false
}

// nextLogical advances along the current chain until it yields a listed partition or ends
func (w *Walker) nextLogical() bool {
	for {
		le, ok, err := w.chain.next()
		if err != nil {
			w.chain = nil
			return w.fail(err)
		}
		if !ok {
			w.chain = nil
			return false
		}
		if le.entry.Empty() {
			continue
		}
		number := w.logical
		w.logical++
		kind := Classify(le.entry.Type)
		if !kind.Filesystem() {
			w.cfg.log.WithFields(logrus.Fields{"lba": le.ebr, "type": le.entry.Type}).Debug("skipping logical partition of unrecognized type")
			continue
		}
		w.rec = part.Record{
			Kind:    kind,
			Start:   le.absoluteStart(),
			Size:    le.entry.Size,
			Number:  number,
			Logical: true,
		}
		return true
	}
}

func (w *Walker) fail(err error) bool {
	w.err = err
	w.done = true
	return false
}

// Record the partition found by the last call to Next
func (w *Walker) Record() part.Record {
	return w.rec
}

// Err the error that stopped the walk, if any
func (w *Walker) Err() error {
	return w.err
}

// Table the primary partition table, nil until the first call to Next has read it
func (w *Walker) Table() *Table {
	return w.table
}

// Read walks the whole disk and returns every partition found. On error, the
// partitions found before it are returned along with it.
func Read(src io.ReaderAt, opts ...WalkOption) ([]part.Record, error) {
	var records []part.Record
	w := NewWalker(src, opts...)
	for w.Next() {
		records = append(records, w.Record())
	}
	return records, w.Err()
}
