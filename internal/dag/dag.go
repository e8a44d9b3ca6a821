package dag

import (
	"fmt"
	"strings"
	"sync"
)

// CycleError indicates that the graph contains a cycle, preventing
// topological ordering.
type CycleError struct {
	// Cycle lists the nodes left unordered, in insertion order.
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// Graph is a directed graph keyed by string ids. An edge from A to B means A
// must complete before B starts. All operations are concurrency-safe.
type Graph struct {
	mutex sync.RWMutex
	// nodes tracks every node in insertion order for deterministic output.
	nodes []string
	// deps holds the predecessors of each node.
	deps map[string][]string
	// dependents holds the successors of each node.
	dependents map[string][]string
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		deps:       make(map[string][]string),
		dependents: make(map[string][]string),
	}
}

// AddNode adds a node. Adding an existing node is a no-op.
func (g *Graph) AddNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.addNode(id)
}

func (g *Graph) addNode(id string) {
	if _, ok := g.deps[id]; ok {
		return
	}
	g.deps[id] = nil
	g.nodes = append(g.nodes, id)
}

// AddEdge records that from must run before to. Both nodes are added if
// missing.
func (g *Graph) AddEdge(from, to string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.addNode(from)
	g.addNode(to)
	g.deps[to] = append(g.deps[to], from)
	g.dependents[from] = append(g.dependents[from], to)
}

// Nodes returns every node in insertion order.
func (g *Graph) Nodes() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return append([]string(nil), g.nodes...)
}

// Dependencies returns the direct predecessors of id.
func (g *Graph) Dependencies(id string) []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return append([]string(nil), g.deps[id]...)
}

// Closure returns the given roots together with everything they transitively
// depend on, in topological order.
func (g *Graph) Closure(roots ...string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	sub := New()
	var visit func(id string)
	visited := make(map[string]bool)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, dep := range g.deps[id] {
			visit(dep)
			sub.AddEdge(dep, id)
		}
		sub.AddNode(id)
	}
	for _, root := range roots {
		visit(root)
	}
	return sub.TopologicalSort()
}

// TopologicalSort returns a valid execution order using Kahn's algorithm.
// Nodes at the same level appear in insertion order. It returns a
// CycleError if the graph contains a cycle.
func (g *Graph) TopologicalSort() ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	if len(g.nodes) == 0 {
		return nil, nil
	}

	inDegree := make(map[string]int, len(g.nodes))
	for _, id := range g.nodes {
		inDegree[id] = len(g.deps[id])
	}

	queue := make([]string, 0, len(g.nodes))
	for _, id := range g.nodes {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	result := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		result = append(result, id)

		for _, dependent := range g.dependents[id] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(g.nodes) {
		var cycle []string
		for _, id := range g.nodes {
			if inDegree[id] > 0 {
				cycle = append(cycle, id)
			}
		}
		return nil, &CycleError{Cycle: cycle}
	}

	return result, nil
}
