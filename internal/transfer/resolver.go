package transfer

import (
	"sort"

	"github.com/portctl/portctl/internal/port"
)

// ResolveDependencies expands a blueprint selection with the transitive
// closure of its relation targets, so a selective migration stays
// schema-consistent. The originally selected blueprints come first in their
// given order, followed by discovered dependencies in discovery order; the
// result is not topologically sorted. Resolving an already-closed set
// returns the same set. Pure function, no I/O.
func ResolveDependencies(all, selected []port.Record) []port.Record {
	lookup := make(map[string]port.Record, len(all))
	for _, bp := range all {
		if id := bp.String("identifier"); id != "" {
			lookup[id] = bp
		}
	}

	result := make([]port.Record, 0, len(selected))
	inResult := make(map[string]bool, len(selected))
	queue := make([]string, 0, len(selected))
	for _, bp := range selected {
		result = append(result, bp)
		if id := bp.String("identifier"); id != "" {
			inResult[id] = true
			queue = append(queue, id)
		}
	}

	// Breadth-first walk over relation targets. The visited set keeps
	// cyclic relation graphs from looping.
	visited := make(map[string]bool, len(selected))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true

		bp, ok := lookup[id]
		if !ok {
			continue
		}
		for _, target := range relationTargets(bp) {
			if inResult[target] {
				continue
			}
			dep, ok := lookup[target]
			if !ok {
				continue
			}
			result = append(result, dep)
			inResult[target] = true
			queue = append(queue, target)
		}
	}

	return result
}

// relationTargets returns the blueprint identifiers referenced by a
// blueprint's relations map, in stable (sorted relation key) order.
func relationTargets(blueprint port.Record) []string {
	relations, ok := blueprint["relations"].(map[string]any)
	if !ok || len(relations) == 0 {
		return nil
	}

	keys := make([]string, 0, len(relations))
	for k := range relations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	targets := make([]string, 0, len(keys))
	for _, k := range keys {
		relation, ok := relations[k].(map[string]any)
		if !ok {
			continue
		}
		if target, ok := relation["target"].(string); ok && target != "" {
			targets = append(targets, target)
		}
	}
	return targets
}
