package component

import "github.com/milk9111/fpsplayground/scenery"

// Scenery is a placed cluster of one model.
type Scenery struct {
	Cluster   *scenery.Cluster
	Model     scenery.Model
	Instances []scenery.Instance
}

var SceneryComponent = NewComponent[Scenery]()

// Renderable carries shadow flags for the renderer.
type Renderable struct {
	CastShadow    bool
	ReceiveShadow bool
}

var RenderableComponent = NewComponent[Renderable]()
