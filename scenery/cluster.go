package scenery

// Instance is a placed model instance with its collider in model space.
type Instance struct {
	Placement
	Collider    Collider
	HasCollider bool
}

// Cluster owns the placements of one ClusterParams and the model they
// share. Placements are recomputed only when the model, seed, count, radius
// or center change; the model is realized and its collider synthesized once
// per model, on the first Mount.
type Cluster struct {
	params     ClusterParams
	ground     Ground
	placements []Placement
	placed     bool
	generation int

	model    Model
	collider Collider
	hasBox   bool
}

// NewCluster creates a cluster. Nothing is computed until it is used.
func NewCluster(p ClusterParams, ground Ground) *Cluster {
	return &Cluster{params: p, ground: ground}
}

// Params returns the current parameters.
func (c *Cluster) Params() ClusterParams {
	return c.params
}

// Generation counts how many times placements were computed.
func (c *Cluster) Generation() int {
	return c.generation
}

// SetParams updates the parameters and reports whether placements must be
// recomputed. Shadow flag changes never invalidate placements.
func (c *Cluster) SetParams(p ClusterParams) bool {
	old := c.params
	c.params = p
	if p.Model != old.Model {
		c.model = nil
		c.hasBox = false
	}
	if p.Model == old.Model &&
		p.EffectiveSeed() == old.EffectiveSeed() &&
		max(p.Count, 0) == max(old.Count, 0) &&
		p.Radius == old.Radius &&
		p.Center == old.Center {
		return false
	}
	c.placed = false
	return true
}

// Placements returns the instance poses, computing them if needed.
func (c *Cluster) Placements() []Placement {
	if !c.placed {
		c.placements = Place(c.params, c.ground)
		c.placed = true
		c.generation++
	}
	return c.placements
}

// Mount realizes the cluster's model and returns it with one Instance per
// placement.
func (c *Cluster) Mount() (Model, []Instance, error) {
	if c.model == nil {
		factory, err := Lookup(c.params.Model)
		if err != nil {
			return nil, nil, err
		}
		c.model = factory()
		c.collider, c.hasBox = ColliderFor(c.model)
	}

	placements := c.Placements()
	instances := make([]Instance, len(placements))
	for i, p := range placements {
		instances[i] = Instance{Placement: p, Collider: c.collider, HasCollider: c.hasBox}
	}
	return c.model, instances, nil
}
