// Package search provides a generic informed graph-search engine.
//
// One Engine implements both A* (priority = g + h) and Greedy Best-First
// (priority = h) over a caller-defined state space. The strategy is a
// priority function fixed at construction; everything else (frontier,
// explored set, node arena) is built fresh for each Search call and
// discarded when it returns.
//
// A state space is described by a Problem:
//
//	p := search.Problem[City, string, City]{
//	    Name:     "romania",
//	    GoalTest: func(c City) bool { return c == "Bucharest" },
//	    Successors: func(c City) ([]search.Successor[City, string], error) {
//	        return roads[c], nil
//	    },
//	    Key: search.IdentityKey[City],
//	}
//
//	engine, err := search.NewAStar[City, string, City](straightLine)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := engine.Search(ctx, p, "Arad")
//	if errors.Is(err, search.ErrNoSolution) {
//	    // frontier exhausted
//	}
//
// Guarantees:
//   - with an admissible and consistent heuristic and non-negative step
//     costs, A* returns a minimum-cost path
//   - each canonical state is expanded at most once per call
//   - identical inputs give identical results (FIFO tie-break)
//
// An Engine is safe for concurrent use; each Search call is single-threaded.
package search
