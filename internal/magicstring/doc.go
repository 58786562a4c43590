// Package magicstring records localized edits against an immutable original string and renders the result, with source maps back to the original.
//
// A MagicString starts as a single chunk spanning the original text. Every operation addresses positions by original byte offset, no matter how many edits
// came before, and splits chunks as needed so that operations land on chunk boundaries:
//
//	s := magicstring.New("problems = 99", magicstring.Options{})
//	if err := s.Overwrite(0, 8, "answer", magicstring.OverwriteOptions{}); err != nil {
//		return err
//	}
//	if err := s.Overwrite(11, 13, "42", magicstring.OverwriteOptions{}); err != nil {
//		return err
//	}
//	s.Prepend("var ")
//	s.Append(";")
//	s.String() // "var answer = 42;"
//
// Each chunk renders as intro + content + outro. Text inserted with AppendLeft/PrependLeft lands in the outro of the chunk ending at the offset and travels
// with that chunk under Move; AppendRight/PrependRight use the intro of the chunk starting at the offset.
//
// Failed operations return an error wrapping one of the Err* sentinels and leave the rendered output unchanged. A MagicString is not safe for concurrent
// use; Clone returns an independent copy.
package magicstring
