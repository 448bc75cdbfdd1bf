// Package loam loads scripts from a Loam repository: a directory of Markdown
// (with YAML frontmatter), YAML or JSON documents, one step per document.
package loam
