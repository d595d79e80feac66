package bank

// MergeResolver records retired account ids and resolves them to their
// surviving account. Merges can chain, so resolution is a disjoint-set find
// with path compression.
type MergeResolver struct {
	parent map[string]string
}

func NewMergeResolver() *MergeResolver {
	return &MergeResolver{parent: make(map[string]string)}
}

// Resolve follows the merge chain for id to its fixed point. Unknown ids
// resolve to themselves.
func (m *MergeResolver) Resolve(id string) string {
	next, ok := m.parent[id]
	if !ok {
		return id
	}
	root := m.Resolve(next)
	m.parent[id] = root
	return root
}

// retire records that from's identifier now resolves to to.
func (m *MergeResolver) retire(from, to string) {
	m.parent[from] = to
}
