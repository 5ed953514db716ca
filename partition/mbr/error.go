package mbr

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedEntry   = errors.New("malformed partition entry")
	ErrChainCycle       = errors.New("extended partition chain loops")
	ErrChainTooLong     = errors.New("extended partition chain too long")
	ErrInvalidSignature = errors.New("invalid boot signature")
)

type MalformedEntryError struct {
	length int
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("data for partition was %d bytes instead of expected %d", e.length, partitionEntrySize)
}

func (e *MalformedEntryError) Is(target error) bool {
	return target == ErrMalformedEntry
}

func NewMalformedEntryError(length int) *MalformedEntryError {
	return &MalformedEntryError{
		length: length,
	}
}

// ChainCycleError an EBR link pointed back at an EBR already visited in the same chain
type ChainCycleError struct {
	Base uint64
	LBA  uint64
}

func (e *ChainCycleError) Error() string {
	return fmt.Sprintf("EBR at sector %d already visited in chain starting at sector %d", e.LBA, e.Base)
}

func (e *ChainCycleError) Is(target error) bool {
	return target == ErrChainCycle
}

func NewChainCycleError(base, lba uint64) *ChainCycleError {
	return &ChainCycleError{
		Base: base,
		LBA:  lba,
	}
}

type ChainTooLongError struct {
	base uint64
	max  int
}

func (e *ChainTooLongError) Error() string {
	return fmt.Sprintf("chain starting at sector %d has more than %d EBRs", e.base, e.max)
}

func (e *ChainTooLongError) Is(target error) bool {
	return target == ErrChainTooLong
}

func NewChainTooLongError(base uint64, maxLength int) *ChainTooLongError {
	return &ChainTooLongError{
		base: base,
		max:  maxLength,
	}
}

type InvalidSignatureError struct {
	lba       uint64
	signature []byte
}

func (e *InvalidSignatureError) Error() string {
	return fmt.Sprintf("invalid boot signature %v in sector %d", e.signature, e.lba)
}

func (e *InvalidSignatureError) Is(target error) bool {
	return target == ErrInvalidSignature
}

func NewInvalidSignatureError(lba uint64, signature []byte) *InvalidSignatureError {
	return &InvalidSignatureError{
		lba:       lba,
		signature: signature,
	}
}
