// Package pkg holds the linebalance libraries.
//
// An instance flows through the packages in this order:
//
//	.alb / JSON file
//	      ↓
//	[instance]     parse and validate
//	      ↓
//	[preprocess]   precedence closure, setup summaries, station estimates
//	      ↓
//	[bounds]       LM1, LMS1, LM2, LM3
//	      ↓
//	[heuristic]    randomized-greedy orders split into stations
//
// [pipeline] runs these stages with caching ([cache]) and hooks
// ([observability]). [store] archives runs, [render] draws solutions and
// [config] loads the TOML configuration shared by the CLI and the server.
//
// [instance]: github.com/matzehuels/linebalance/pkg/instance
// [preprocess]: github.com/matzehuels/linebalance/pkg/preprocess
// [bounds]: github.com/matzehuels/linebalance/pkg/bounds
// [heuristic]: github.com/matzehuels/linebalance/pkg/heuristic
// [pipeline]: github.com/matzehuels/linebalance/pkg/pipeline
// [cache]: github.com/matzehuels/linebalance/pkg/cache
// [observability]: github.com/matzehuels/linebalance/pkg/observability
// [store]: github.com/matzehuels/linebalance/pkg/store
// [render]: github.com/matzehuels/linebalance/pkg/render
// [config]: github.com/matzehuels/linebalance/pkg/config
package pkg
