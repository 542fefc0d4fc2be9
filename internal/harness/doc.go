// Package harness runs conformance scenarios for the tree and graph builders.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	options:
//	  separator: "__"
//	  singular_prefix: "1_"
//	  strict: false
//	graph:
//	  strategy: builder      # builder | treelens
//	  lens: plain            # basic | localized | plain
//	  locale: en
//	result:
//	  head: { vars: [person, person__1_name] }
//	  results:
//	    bindings:
//	      - person: { type: uri, value: "http://x/1" }
//	        person__1_name: { type: literal, value: Ann }
//	expect_tree:
//	  person: [{ $uri: "http://x/1", name: Ann }]
//	assertions:
//	  - type: field_equals
//	    path: person[0].name
//	    value: Ann
//
// A scenario that sets expect_error (cardinality or classification) passes
// when tree building fails with that error and takes no graph or
// assertions.
//
// # Assertion Types
//
//   - field_equals: the value at path, rendered like a snapshot, equals value
//   - same_resource: every path resolves to the same resource instance
//   - via_contains: the resource at path was reached from the resource at
//     from through field key
//   - resource_count: the identity index holds count resources
//
// # Paths
//
// A path is a dot separated list of field keys, each optionally followed by
// list indexes: "person[0].knows[1].name". The empty path is the root.
//
// # Determinism
//
// Trees, graph snapshots and digests only depend on the scenario file, so
// golden snapshots (see RunWithGolden) are stable across runs.
package harness
