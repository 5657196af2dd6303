// Package io reads word lists and writes overlap graphs.
//
// # Input Format
//
// A word list is UTF-8 text with one item per line. Lines are split on "\n"
// exactly and nothing is filtered: a trailing newline yields a final empty
// item, and a "\r" before the newline stays part of the item. Empty items
// take part in the puzzle like any other item.
//
// # Graph Export
//
// [WriteJSON] writes the overlap graph of a solved list:
//
//	{
//	  "nodes": [
//	    {"id": 0, "item": "aaxx", "best": true},
//	    {"id": 1, "item": "xxyy", "best": true}
//	  ],
//	  "edges": [
//	    {"from": 0, "to": 1, "best": true}
//	  ],
//	  "path": [0, 1],
//	  "result": "aaxxyy"
//	}
//
// Node ids are item indices. "best" marks the nodes and edges of the chain
// in "path".
package io
