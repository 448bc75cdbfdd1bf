/*
Package compiler turns authored scripts into live session trees.

DecodeScript reads loosely typed documents (YAML, JSON, loam metadata) with
mapstructure and expands the shorthand forms. Validate checks a Script against
a step registry, and Compile builds the root *session.Session with every nested
session wired to the same observers, logger and answer memory.
*/
package compiler
