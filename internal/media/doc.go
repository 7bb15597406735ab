// Package media reads the raw metadata document out of a media file.
//
// PNG files carry generation metadata in textual chunks (tEXt, zTXt, iTXt);
// every chunk becomes a keyword -> text entry of the document. JSON files
// are decoded as documents, and text files become {"parameters": text}.
//
// Formats without an embedded reader fall back to sidecar files found by the
// scanner (<name>.json, <name>.txt). Without one they fail with
// genmeta.ErrUnsupportedMedia.
package media
