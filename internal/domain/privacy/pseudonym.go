package privacy

import "fmt"

// AliasTable maps real identifiers to stable pseudonyms. The table is an
// explicit value owned by the caller: two exports that must share aliases
// share one table, and nothing leaks between unrelated exports. Not safe
// for concurrent use.
type AliasTable struct {
	prefix  string
	next    int
	byID    map[string]string
	byAlias map[string]string
}

func NewAliasTable(prefix string) *AliasTable {
	return &AliasTable{
		prefix:  prefix,
		byID:    map[string]string{},
		byAlias: map[string]string{},
	}
}

// Alias returns the pseudonym for id, assigning the next one on first
// use.
func (t *AliasTable) Alias(id string) string {
	if alias, ok := t.byID[id]; ok {
		return alias
	}
	t.next++
	alias := fmt.Sprintf("%s-%03d", t.prefix, t.next)
	t.byID[id] = alias
	t.byAlias[alias] = id
	return alias
}

// Resolve maps a pseudonym back to the real identifier.
func (t *AliasTable) Resolve(alias string) (string, bool) {
	id, ok := t.byAlias[alias]
	return id, ok
}

func (t *AliasTable) Len() int {
	return len(t.byID)
}
