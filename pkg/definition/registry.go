package definition

import fabricator "github.com/goliatone/go-fabricator"

// Registry holds the fabricators compiled from one definition document.
// Fabricators are shared: an association target and a direct lookup of the
// same model hand back the same instance, so id counters stay scoped per
// model the way hand-built fabricators are.
type Registry struct {
	fabricators map[string]*fabricator.Fabricator
	order       []string
}

// Fabricator returns the fabricator for the named model.
func (r *Registry) Fabricator(name string) (*fabricator.Fabricator, bool) {
	if r == nil {
		return nil, false
	}
	fab, ok := r.fabricators[name]
	return fab, ok
}

// Models lists the defined model names in sorted order.
func (r *Registry) Models() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.order...)
}

// CleanAll resets every fabricator in the registry. Cleaning each entry
// directly (rather than only association roots) keeps the call idempotent
// regardless of which models have been created so far.
func (r *Registry) CleanAll() {
	if r == nil {
		return
	}
	for _, name := range r.order {
		r.fabricators[name].Clean()
	}
}
