// Package render groups the visual outputs of wordchain.
//
// The [nodelink] subpackage draws the overlap graph as a Graphviz node-link
// diagram with the longest chain highlighted. Machine-readable exports live
// in [github.com/matzehuels/wordchain/pkg/io].
//
// [nodelink]: github.com/matzehuels/wordchain/pkg/render/nodelink
package render
