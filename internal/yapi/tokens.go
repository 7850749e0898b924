package yapi

import (
	"sort"
	"strings"
)

// TokenTable maps project ids to bearer tokens, with one optional unscoped
// default token. It is built once at startup and immutable afterwards.
type TokenTable struct {
	tokens       map[string]string
	defaultToken string
}

// ParseTokens builds a TokenTable from a delimited credential string of the
// form "id:token[,id:token...]". An entry without a colon is treated as a
// bare default token. Duplicate ids and duplicate bare entries are resolved
// last-write-wins. Empty input yields an empty table.
func ParseTokens(raw string) *TokenTable {
	table := &TokenTable{tokens: make(map[string]string)}

	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		id, token, found := strings.Cut(entry, ":")
		if !found {
			table.defaultToken = entry
			continue
		}
		table.tokens[strings.TrimSpace(id)] = strings.TrimSpace(token)
	}

	return table
}

// TokenFor returns the token for a project id: the project-specific token
// if one was configured, else the default, else the empty string. Callers
// must treat an empty result as unauthenticated and fail the request.
func (t *TokenTable) TokenFor(projectID string) string {
	if token, ok := t.tokens[projectID]; ok {
		return token
	}
	return t.defaultToken
}

// ProjectIDs returns every project id with a scoped token, sorted for
// deterministic iteration.
func (t *TokenTable) ProjectIDs() []string {
	ids := make([]string, 0, len(t.tokens))
	for id := range t.tokens {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of project-scoped tokens.
func (t *TokenTable) Len() int {
	return len(t.tokens)
}
