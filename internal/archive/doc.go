// Package archive wraps a decoded zip package and resolves entries by
// case-insensitive name, either at the archive root or under any directory.
package archive
