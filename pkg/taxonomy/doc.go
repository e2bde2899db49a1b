// Package taxonomy serves reference data (boroughs, executors, project types,
// ...) and validates input codes against it.
//
// A Source returns the codes of a Group. MemorySource holds them in memory and
// is usually built from a YAML seed with LoadYAML; RedisSource reads one Redis
// set per group so every instance shares the same data; Cached wraps any
// source with an expiring LRU and exposes Invalidate.
//
// Validators receive their source explicitly:
//
//	v := taxonomy.NewValidator(taxonomy.NewCached(taxonomy.NewRedisSource(client, ""), 64, 5*time.Minute))
//	res := v.Check(ctx,
//	    taxonomy.Ref{Target: "boroughId", Group: taxonomy.GroupBorough, Value: cmd.BoroughID},
//	    taxonomy.Ref{Target: "typeId", Group: taxonomy.GroupProjectType, Value: cmd.TypeID},
//	)
//
// Unknown codes are reported as core.CodeTaxonomy failures.
package taxonomy
