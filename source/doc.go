// Package source turns user input into a text ready for address
// extraction.
//
// Input is either a literal string or a path to a plain text or gzip
// file. A kind of file is detected by gzip magic bytes, not by file
// extension. Directories and missing paths are treated as literal
// strings.
package source
