package magicstring

import "errors"

var (
	// ErrDeprecatedAPI is returned by Insert, which cannot tell which side of an offset the text belongs to.
	ErrDeprecatedAPI = errors.New("deprecated api")

	// ErrInvalidMove is returned when a move destination lies inside (or on the edge of) the moved range.
	ErrInvalidMove = errors.New("cannot move a selection inside itself")

	// ErrSplitOnEditedChunk is returned when an offset falls strictly inside overwritten content.
	ErrSplitOnEditedChunk = errors.New("cannot split a chunk that has already been edited")

	// ErrAlreadyEdited is returned by Update when the range already holds overwritten content and OverwriteOptions.Overwrite is false.
	ErrAlreadyEdited = errors.New("range has already been overwritten")

	// ErrSliceStartAnchor and ErrSliceEndAnchor are returned by Slice when an anchor falls inside overwritten content.
	ErrSliceStartAnchor = errors.New("cannot use replaced character as slice start anchor")
	ErrSliceEndAnchor   = errors.New("cannot use replaced character as slice end anchor")

	// ErrNonGlobalPattern is returned by ReplaceAll for a regular expression pattern that is not global.
	ErrNonGlobalPattern = errors.New("replaceAll requires a global pattern")

	// ErrUnsupportedReplacer is returned when a ReplacerFunc is passed to Replace or ReplaceAll.
	ErrUnsupportedReplacer = errors.New("replacer functions are not supported")

	// ErrOutOfRange is returned for offsets outside the original text, reversed ranges, and zero-length overwrites.
	ErrOutOfRange = errors.New("out of range")

	// ErrOverwriteAcrossMove is returned when an overwrite spans chunks that are no longer adjacent because of a Move.
	ErrOverwriteAcrossMove = errors.New("cannot overwrite across a split point")

	// ErrInvalidPattern is returned when a trim character class does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")
)
