// Package pkg holds the libraries behind the wordchain command.
//
// Given a list of words, wordchain finds the longest chain in which every
// word starts with the last two characters of the previous one, and merges
// the chain into a single string by overlapping those characters.
//
//	aaxx, xxyy, yyzz, zzaa  ->  aaxxyyzzaa
//
// Packages, bottom-up:
//
//   - [chain]: overlap graph, exhaustive search, worker pool, Solver
//   - [cache]: result caching (none, file, redis)
//   - [config]: TOML configuration
//   - [io]: word list input and graph JSON export
//   - [render/nodelink]: Graphviz rendering of the overlap graph
//   - [observability]: metric hooks
//   - [errors]: coded errors shared by CLI and API
//   - [pipeline]: cache-aware solve orchestration
//
// Typical use:
//
//	items, _ := io.ImportItems("words.txt")
//	s, _ := chain.NewSolver(chain.Options{})
//	defer s.Close()
//	res, _ := s.Solve(items, "")
//	fmt.Println(res.Text)
//
// [chain]: github.com/matzehuels/wordchain/pkg/chain
// [cache]: github.com/matzehuels/wordchain/pkg/cache
// [config]: github.com/matzehuels/wordchain/pkg/config
// [io]: github.com/matzehuels/wordchain/pkg/io
// [render/nodelink]: github.com/matzehuels/wordchain/pkg/render/nodelink
// [observability]: github.com/matzehuels/wordchain/pkg/observability
// [errors]: github.com/matzehuels/wordchain/pkg/errors
// [pipeline]: github.com/matzehuels/wordchain/pkg/pipeline
package pkg
