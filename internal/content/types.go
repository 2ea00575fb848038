// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package content

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/ManuGH/readerpulse/internal/access"
)

var (
	// ErrNotFound is returned for unknown item IDs.
	ErrNotFound = errors.New("content not found")
	// ErrInvalidItem is returned when an item fails validation.
	ErrInvalidItem = errors.New("invalid content item")
)

// BlockKind enumerates renderable block types.
type BlockKind string

const (
	BlockParagraph BlockKind = "paragraph"
	BlockHeading   BlockKind = "heading"
	BlockQuote     BlockKind = "quote"
	BlockList      BlockKind = "list"
	BlockImage     BlockKind = "image"
	BlockCode      BlockKind = "code"
)

// Known reports whether k is a supported kind.
func (k BlockKind) Known() bool {
	switch k {
	case BlockParagraph, BlockHeading, BlockQuote, BlockList, BlockImage, BlockCode:
		return true
	default:
		return false
	}
}

// Block is one ordered unit of an article body.
type Block struct {
	Kind BlockKind `json:"kind" yaml:"kind"`
	Text string    `json:"text,omitempty" yaml:"text,omitempty"`
	// Src is set for image blocks.
	Src string `json:"src,omitempty" yaml:"src,omitempty"`
}

// Item is a stored article.
type Item struct {
	ID        string      `json:"id" yaml:"id"`
	Title     string      `json:"title" yaml:"title"`
	Path      string      `json:"path" yaml:"path"`
	Tier      access.Tier `json:"tier" yaml:"tier"`
	Blocks    []Block     `json:"blocks" yaml:"blocks"`
	UpdatedAt time.Time   `json:"updatedAt" yaml:"updatedAt,omitempty"`
}

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{0,127}$`)

// ValidID reports whether id may be used as a content identifier.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// Validate checks identifiers, tier and block kinds.
func (it Item) Validate() error {
	if !ValidID(it.ID) {
		return fmt.Errorf("%w: id %q", ErrInvalidItem, it.ID)
	}
	if it.Title == "" {
		return fmt.Errorf("%w: %s: empty title", ErrInvalidItem, it.ID)
	}
	if !it.Tier.Known() {
		return fmt.Errorf("%w: %s: unknown tier %q", ErrInvalidItem, it.ID, it.Tier)
	}
	for i, b := range it.Blocks {
		if !b.Kind.Known() {
			return fmt.Errorf("%w: %s: block %d: unknown kind %q", ErrInvalidItem, it.ID, i, b.Kind)
		}
		if b.Kind == BlockImage && b.Src == "" {
			return fmt.Errorf("%w: %s: block %d: image without src", ErrInvalidItem, it.ID, i)
		}
	}
	return nil
}

// Payload is what a reader receives. Blocks holds only the permitted prefix.
type Payload struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Path          string      `json:"path"`
	Tier          access.Tier `json:"tier"`
	Blocks        []Block     `json:"blocks"`
	HasFullAccess bool        `json:"hasFullAccess"`
	PreviewCount  int         `json:"previewCount"`
	HiddenCount   int         `json:"hiddenCount"`
}
