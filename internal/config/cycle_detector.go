package config

import "sort"

// detectCycle returns the utility names participating in a cycle of
// dependsOn and executeIf references within a single template, or nil if the template's dependency graph is
// acyclic. Adapted from the teacher's step dependency cycle detector: same
// DFS-with-recursion-stack shape, generalized from step IDs to utility
// names.
func detectCycle(utilities []Utility) []string {
	graph := make(map[string][]string, len(utilities))
	for _, u := range utilities {
		graph[u.Name] = append(graph[u.Name], u.DependsOn...)
		if u.ExecuteIf != "" {
			graph[u.Name] = append(graph[u.Name], u.ExecuteIf)
		}
	}

	visiting := make(map[string]bool, len(utilities))
	visited := make(map[string]bool, len(utilities))
	var stack []string
	var cycle []string

	var dfs func(string) bool
	dfs = func(node string) bool {
		visiting[node] = true
		stack = append(stack, node)

		for _, dep := range graph[node] {
			if visited[dep] {
				continue
			}
			if visiting[dep] {
				idx := indexOf(stack, dep)
				if idx >= 0 {
					cycle = append([]string{}, stack[idx:]...)
					cycle = append(cycle, dep)
				}
				return true
			}
			if dfs(dep) {
				return true
			}
		}

		visiting[node] = false
		visited[node] = true
		stack = stack[:len(stack)-1]
		return false
	}

	names := make([]string, 0, len(utilities))
	for _, u := range utilities {
		names = append(names, u.Name)
	}
	sort.Strings(names)

	for _, name := range names {
		if visited[name] {
			continue
		}
		if dfs(name) {
			break
		}
	}

	return cycle
}

func indexOf(slice []string, target string) int {
	for i, v := range slice {
		if v == target {
			return i
		}
	}
	return -1
}
